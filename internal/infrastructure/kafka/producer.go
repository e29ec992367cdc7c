package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"

	"kawaiiCalc/internal/ports"
)

var _ ports.IProducer = (*Producer)(nil)

// Producer — обёртка над kafka.Writer. Ключ сообщения выбирает партицию (Hash), одинаковые ключи идут по порядку.
type Producer struct {
	w *kafka.Writer
}

// NewProducer создаёт продюсера по конфигу.
func NewProducer(cfg *Config) *Producer {
	return New(cfg).Producer()
}

// Send отправляет одно сообщение.
func (p *Producer) Send(ctx context.Context, key, value []byte) error {
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
	})
}

// Close дожидается отправки накопленных сообщений и закрывает продюсера.
func (p *Producer) Close() error {
	return p.w.Close()
}
