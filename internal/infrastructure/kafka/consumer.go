package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"kawaiiCalc/internal/domain"
)

// maxHandleAttempts — сколько раз пробуем обработать сообщение, прежде чем пропустить его.
const maxHandleAttempts = 3

var handleBackoff = 500 * time.Millisecond

// Handler — получатель событий о вычислениях (use case калькулятора).
type Handler interface {
	HandleOperationEvent(ctx context.Context, op domain.Operation) error
}

// reader — часть kafka.Reader, которой пользуется консьюмер.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer читает события из топика, декодирует в domain.Operation и отдаёт в Handler.
type Consumer struct {
	r   reader
	h   Handler
	log *slog.Logger
}

// NewConsumer создаёт консьюмера по конфигу. После использования вызови Close().
func NewConsumer(cfg *Config, h Handler, log *slog.Logger) *Consumer {
	return New(cfg).Consumer(h, log)
}

// Run в цикле читает сообщения и коммитит их после обработки.
// Битые сообщения и сообщения, которые не удалось обработать за maxHandleAttempts попыток, пропускаются с коммитом.
// Выход по отмене ctx или при ошибке чтения/коммита.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer stopped", "error", err)
			return err
		}

		c.handle(ctx, msg)

		if err := c.r.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer stopped (commit)", "error", err)
			return err
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg kafka.Message) {
	attrs := []any{"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset}

	var op domain.Operation
	if err := json.Unmarshal(msg.Value, &op); err != nil {
		c.log.Warn("kafka unmarshal error, skip", append(attrs, "error", err)...)
		return
	}

	for attempt := 1; ; attempt++ {
		err := c.h.HandleOperationEvent(ctx, op)
		if err == nil {
			return
		}
		if attempt >= maxHandleAttempts || ctx.Err() != nil {
			c.log.Error("kafka handle failed, skip", append(attrs, "attempts", attempt, "error", err)...)
			return
		}
		c.log.Warn("kafka handle error, retry", append(attrs, "attempt", attempt, "error", err)...)
		select {
		case <-ctx.Done():
		case <-time.After(handleBackoff * time.Duration(attempt)):
		}
	}
}

// Close закрывает консьюмера.
func (c *Consumer) Close() error {
	return c.r.Close()
}
