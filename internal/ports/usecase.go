package ports

//go:generate mockgen -source=usecase.go -destination=../mocks/usecase_mock.go -package=mocks

import (
	"context"

	"kawaiiCalc/internal/domain"
)

// ICalculatorUseCase — контракт бизнес-логики калькулятора: сессии клавиатуры, разовый расчёт, история, события из Kafka.
type ICalculatorUseCase interface {
	NewSession(ctx context.Context) (string, domain.Keypad, error)
	Session(ctx context.Context, id string) (domain.Keypad, error)
	Press(ctx context.Context, id string, keys ...domain.Key) (domain.Keypad, error)
	CloseSession(ctx context.Context, id string) error
	Calculate(ctx context.Context, number1, number2 float64, operation string) (*domain.Operation, error)
	History(ctx context.Context) ([]domain.Operation, error)
	HandleOperationEvent(ctx context.Context, op domain.Operation) error
}
