package calculator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"kawaiiCalc/internal/domain"
)

// storeWith возвращает реализацию Update поверх одного состояния в памяти.
func storeWith(state *domain.Keypad) func(context.Context, string, func(*domain.Keypad) error) (domain.Keypad, error) {
	return func(_ context.Context, _ string, fn func(*domain.Keypad) error) (domain.Keypad, error) {
		next := *state
		if err := fn(&next); err != nil {
			return domain.Keypad{}, err
		}
		*state = next
		return next, nil
	}
}

func keys(t *testing.T, labels ...string) []domain.Key {
	t.Helper()
	k, err := domain.ParseKeys(labels)
	require.NoError(t, err)
	return k
}

func TestNewSession(t *testing.T) {
	d, uc := newDeps(t)

	d.sessions.EXPECT().Create(gomock.Any(), gomock.Any(), domain.NewKeypad()).Return(nil)

	id, state, err := uc.NewSession(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, "0", state.Display)
}

func TestNewSession_StoreError(t *testing.T) {
	d, uc := newDeps(t)

	d.sessions.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	_, _, err := uc.NewSession(context.Background())
	assert.ErrorContains(t, err, "redis down")
}

// Цифры без "=" — в историю ничего не пишется
func TestPress_Digits(t *testing.T) {
	d, uc := newDeps(t)
	state := domain.NewKeypad()

	d.sessions.EXPECT().Update(gomock.Any(), "s1", gomock.Any()).DoAndReturn(storeWith(&state))

	got, err := uc.Press(context.Background(), "s1", keys(t, "1", "2", "3")...)

	require.NoError(t, err)
	assert.Equal(t, "123", got.Display)
	assert.Equal(t, "123", state.Display)
}

// "7 + 3 =" — вычисление попадает в БД, кэш и брокер с id сессии
func TestPress_EqualsRecordsOperation(t *testing.T) {
	d, uc := newDeps(t)
	state := domain.NewKeypad()

	want := domain.Operation{SessionID: "s1", Number1: 7, Number2: 3, Operation: "+", Result: 10, Timestamp: fixedNow}
	d.sessions.EXPECT().Update(gomock.Any(), "s1", gomock.Any()).DoAndReturn(storeWith(&state))
	gomock.InOrder(
		d.repo.EXPECT().SaveOperation(gomock.Any(), want).Return(nil),
		d.cache.EXPECT().Set(gomock.Any(), "7 + 3", 10.0).Return(nil),
		d.broker.EXPECT().Send(gomock.Any(), []byte("7 + 3"), gomock.Any()).Return(nil),
	)

	got, err := uc.Press(context.Background(), "s1", keys(t, "7", "+", "3", "=")...)

	require.NoError(t, err)
	assert.Equal(t, "10", got.Display)
	assert.True(t, got.ResetOnNextDigit)
	assert.False(t, got.HasPending())
}

// fn вызвана дважды (конфликт транзакции) — вычисление записано один раз
func TestPress_RetryRecordsOnce(t *testing.T) {
	d, uc := newDeps(t)

	d.sessions.EXPECT().Update(gomock.Any(), "s1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, fn func(*domain.Keypad) error) (domain.Keypad, error) {
			stale := domain.Keypad{Display: "2", PendingOperand: "2", PendingOperator: domain.OpMul}
			if err := fn(&stale); err != nil {
				return domain.Keypad{}, err
			}
			fresh := domain.Keypad{Display: "5", PendingOperand: "5", PendingOperator: domain.OpAdd}
			if err := fn(&fresh); err != nil {
				return domain.Keypad{}, err
			}
			return fresh, nil
		})
	d.repo.EXPECT().SaveOperation(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	d.cache.EXPECT().Set(gomock.Any(), "5 + 5", 10.0).Return(nil).Times(1)
	d.broker.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

	got, err := uc.Press(context.Background(), "s1", domain.EqualsKey())

	require.NoError(t, err)
	assert.Equal(t, "10", got.Display)
}

// Сбой истории не ломает нажатие
func TestPress_RecordFailureKeepsState(t *testing.T) {
	d, uc := newDeps(t)
	state := domain.Keypad{Display: "0", PendingOperand: "6", PendingOperator: domain.OpDiv, ResetOnNextDigit: false}

	d.sessions.EXPECT().Update(gomock.Any(), "s1", gomock.Any()).DoAndReturn(storeWith(&state))
	d.repo.EXPECT().SaveOperation(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	got, err := uc.Press(context.Background(), "s1", domain.EqualsKey())

	require.NoError(t, err)
	assert.Equal(t, "0", got.Display)
}

func TestPress_SessionNotFound(t *testing.T) {
	d, uc := newDeps(t)

	d.sessions.EXPECT().Update(gomock.Any(), "nope", gomock.Any()).Return(domain.Keypad{}, domain.ErrSessionNotFound)

	_, err := uc.Press(context.Background(), "nope", domain.DigitKey('1'))

	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionAndClose(t *testing.T) {
	d, uc := newDeps(t)
	state := domain.Keypad{Display: "42"}

	d.sessions.EXPECT().Get(gomock.Any(), "s1").Return(state, nil)
	d.sessions.EXPECT().Delete(gomock.Any(), "s1").Return(nil)

	got, err := uc.Session(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, state, got)
	require.NoError(t, uc.CloseSession(context.Background(), "s1"))
}
