package ports

//go:generate mockgen -source=cache.go -destination=../mocks/cache_mock.go -package=mocks

import "context"

// ICache — контракт кэша результатов операций. Ключ — операция ("2 × 3"), значение — результат.
// Ключи уникальны, дубликаты не хранятся.
type ICache interface {
	Get(ctx context.Context, key string) (value float64, found bool, err error)
	Set(ctx context.Context, key string, value float64) error
}
