package ports

//go:generate mockgen -source=analytics.go -destination=../mocks/analytics_mock.go -package=mocks

import (
	"context"

	"kawaiiCalc/internal/domain"
)

// IOperationAnalytics — запись вычислений в аналитическое хранилище (ClickHouse), вызывается консьюмером Kafka.
type IOperationAnalytics interface {
	WriteOperation(ctx context.Context, op domain.Operation) error
}
