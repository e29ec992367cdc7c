package ports

//go:generate mockgen -source=session.go -destination=../mocks/session_mock.go -package=mocks

import (
	"context"

	"kawaiiCalc/internal/domain"
)

// ISessionStore — хранилище состояний калькулятора по id сессии.
// Update читает состояние, отдаёт его в fn и сохраняет результат атомарно; fn может вызываться повторно при конфликте.
// Отсутствующая сессия — domain.ErrSessionNotFound.
type ISessionStore interface {
	Create(ctx context.Context, id string, state domain.Keypad) error
	Get(ctx context.Context, id string) (domain.Keypad, error)
	Update(ctx context.Context, id string, fn func(state *domain.Keypad) error) (domain.Keypad, error)
	Delete(ctx context.Context, id string) error
}
