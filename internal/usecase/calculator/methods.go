package calculator

import (
	"context"
	"encoding/json"
	"fmt"

	"kawaiiCalc/internal/domain"
)

// Calculate — проверяет кэш; при промахе считает, сохраняет в БД и в кэш, публикует событие.
// Деление на ноль не ошибка: результат 0 и пометка в Message.
func (u *UseCase) Calculate(ctx context.Context, number1, number2 float64, operation string) (*domain.Operation, error) {
	op, err := domain.ParseOperator(operation)
	if err != nil {
		return nil, err
	}
	key := cacheKey(number1, number2, op.String())
	if cached, found, err := u.cache.Get(ctx, key); err == nil && found {
		rec := domain.Operation{
			Number1:   number1,
			Number2:   number2,
			Operation: op.String(),
			Result:    cached,
			Timestamp: u.now(),
		}
		if op == domain.OpDiv && number2 == 0 {
			rec.Message = domain.MessageDivisionByZero
		}
		return &rec, nil
	}

	ev, err := domain.Apply(number1, op, number2)
	if err != nil {
		return nil, err
	}
	rec := ev.Operation("", u.now())
	if err := u.record(ctx, key, rec); err != nil {
		return nil, err
	}
	evaluationsTotal.WithLabelValues(op.String(), "calculate").Inc()
	return &rec, nil
}

// record сохраняет вычисление в БД и в кэш, затем публикует в брокер (если он подключён). Ошибка брокера только логируется.
func (u *UseCase) record(ctx context.Context, key string, op domain.Operation) error {
	if err := u.repo.SaveOperation(ctx, op); err != nil {
		return fmt.Errorf("save operation: %w", err)
	}
	u.log.Info("operation saved", "key", key, "result", op.Result, "session", op.SessionID)

	if err := u.cache.Set(ctx, key, op.Result); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}

	if u.broker == nil {
		return nil
	}
	value, err := json.Marshal(op)
	if err != nil {
		return err
	}
	if err := u.broker.Send(ctx, []byte(key), value); err != nil {
		u.log.Warn("broker send", "key", key, "error", err)
	} else {
		u.log.Debug("operation published", "key", key, "result", op.Result)
	}
	return nil
}

// History — история операций (обвязка над репозиторием).
func (u *UseCase) History(ctx context.Context) ([]domain.Operation, error) {
	return u.repo.GetHistory(ctx)
}

// HandleOperationEvent вызывается консьюмером при получении сообщения из топика вычислений.
func (u *UseCase) HandleOperationEvent(ctx context.Context, op domain.Operation) error {
	if u.analytics == nil {
		return nil
	}
	if err := u.analytics.WriteOperation(ctx, op); err != nil {
		u.log.Warn("analytics write", "error", err)
		return err
	}
	u.log.Info("operation stored to click", "number1", op.Number1, "operation", op.Operation, "number2", op.Number2, "result", op.Result)

	return nil
}
