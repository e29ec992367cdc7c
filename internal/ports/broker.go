package ports

//go:generate mockgen -source=broker.go -destination=../mocks/broker_mock.go -package=mocks

import "context"

// IProducer — публикация событий о вычислениях в брокер. Ключ — id сессии или ключ кэша, значение — JSON domain.Operation.
// Топик задаётся конфигом реализации.
type IProducer interface {
	Send(ctx context.Context, key, value []byte) error
}
