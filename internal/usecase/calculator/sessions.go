package calculator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"kawaiiCalc/internal/domain"
)

// NewSession заводит калькулятор в начальном состоянии и возвращает id сессии.
func (u *UseCase) NewSession(ctx context.Context) (string, domain.Keypad, error) {
	id := uuid.NewString()
	state := domain.NewKeypad()
	if err := u.sessions.Create(ctx, id, state); err != nil {
		return "", domain.Keypad{}, fmt.Errorf("create session: %w", err)
	}
	u.log.Debug("session created", "session", id)
	return id, state, nil
}

// Session возвращает текущее состояние калькулятора.
func (u *UseCase) Session(ctx context.Context, id string) (domain.Keypad, error) {
	return u.sessions.Get(ctx, id)
}

// Press применяет клавиши по порядку. Каждое "=" с отложенной операцией попадает в историю.
// Состояние сохраняется до записи истории: сбой истории логируется и не откатывает дисплей.
func (u *UseCase) Press(ctx context.Context, id string, keys ...domain.Key) (domain.Keypad, error) {
	var evals []domain.Evaluation
	state, err := u.sessions.Update(ctx, id, func(k *domain.Keypad) error {
		// fn может выполниться повторно при конфликте, считаем заново.
		evals = evals[:0]
		for _, key := range keys {
			if ev := k.Press(key); ev != nil {
				evals = append(evals, *ev)
			}
		}
		return nil
	})
	if err != nil {
		return domain.Keypad{}, fmt.Errorf("press: %w", err)
	}

	for _, key := range keys {
		keyPressesTotal.WithLabelValues(key.String()).Inc()
	}
	for _, ev := range evals {
		op := ev.Operation(id, u.now())
		key := cacheKey(ev.Left, ev.Right, ev.Operator.String())
		if err := u.record(ctx, key, op); err != nil {
			u.log.Error("record evaluation", "session", id, "key", key, "error", err)
			continue
		}
		evaluationsTotal.WithLabelValues(ev.Operator.String(), "keypad").Inc()
	}
	return state, nil
}

// CloseSession удаляет сессию.
func (u *UseCase) CloseSession(ctx context.Context, id string) error {
	return u.sessions.Delete(ctx, id)
}
