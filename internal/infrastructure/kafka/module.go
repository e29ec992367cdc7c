package kafka

import (
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Config — настройки Kafka. Переменные: CALCULATOR_KAFKA_BROKERS, CALCULATOR_KAFKA_TOPIC, CALCULATOR_KAFKA_GROUP_ID.
type Config struct {
	Brokers string `envconfig:"BROKERS" default:"localhost:9092"` // через запятую, если несколько
	Topic   string `envconfig:"TOPIC" default:"kawaiicalc.evaluations"`
	GroupID string `envconfig:"GROUP_ID" default:"kawaiicalc-analytics"` // для consumer group
	// BatchTimeout — сколько продюсер копит сообщения перед отправкой.
	BatchTimeout time.Duration `envconfig:"BATCH_TIMEOUT" default:"10ms"`
}

// brokersSlice возвращает список брокеров из строки (через запятую), пустые элементы отбрасываются.
func (c *Config) brokersSlice() []string {
	if c == nil || c.Brokers == "" {
		return []string{"localhost:9092"}
	}
	parts := strings.Split(c.Brokers, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"localhost:9092"}
	}
	return out
}

// Client — конфиг и фабрики продюсера/консьюмера. Подключение к брокеру при создании Writer/Reader.
type Client struct {
	cfg *Config
}

// New создаёт клиент по конфигу.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Client{cfg: cfg}
}

// Producer создаёт продюсера событий о вычислениях. После использования вызови Close().
func (c *Client) Producer() *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(c.cfg.brokersSlice()...),
		Topic:                  c.cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           c.cfg.BatchTimeout,
		AllowAutoTopicCreation: true,
	}
	return &Producer{w: w}
}

// Consumer создаёт консьюмера группы. После использования вызови Close().
func (c *Client) Consumer(h Handler, log *slog.Logger) *Consumer {
	if log == nil {
		log = slog.Default()
	}
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: c.cfg.brokersSlice(),
		Topic:   c.cfg.Topic,
		GroupID: c.cfg.GroupID,
	})
	return &Consumer{r: r, h: h, log: log}
}
