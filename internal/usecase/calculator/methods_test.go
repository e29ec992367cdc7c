package calculator

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"kawaiiCalc/internal/domain"
	"kawaiiCalc/internal/mocks"
)

var fixedNow = time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC)

// newTestLogger создаёт логгер для тестов (выводит только ошибки, чтобы не засорять вывод).
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// deps — моки всех зависимостей UseCase.
type deps struct {
	repo      *mocks.MockIOperationRepository
	cache     *mocks.MockICache
	broker    *mocks.MockIProducer
	analytics *mocks.MockIOperationAnalytics
	sessions  *mocks.MockISessionStore
}

func newDeps(t *testing.T) (*deps, *UseCase) {
	ctrl := gomock.NewController(t)
	d := &deps{
		repo:      mocks.NewMockIOperationRepository(ctrl),
		cache:     mocks.NewMockICache(ctrl),
		broker:    mocks.NewMockIProducer(ctrl),
		analytics: mocks.NewMockIOperationAnalytics(ctrl),
		sessions:  mocks.NewMockISessionStore(ctrl),
	}
	uc := New(d.repo, d.cache, d.broker, d.analytics, d.sessions, newTestLogger())
	uc.now = func() time.Time { return fixedNow }
	return d, uc
}

// Cache Hit — результат берётся из кэша, БД не вызывается
func TestCalculate_CacheHit(t *testing.T) {
	d, uc := newDeps(t)

	// Мок не хранит данные — просто возвращает то, что указали.
	d.cache.EXPECT().
		Get(gomock.Any(), "10 + 5").
		Return(15.0, true, nil)

	result, err := uc.Calculate(context.Background(), 10, 5, "+")

	require.NoError(t, err)
	assert.Equal(t, 15.0, result.Result)
	assert.Equal(t, 10.0, result.Number1)
	assert.Equal(t, 5.0, result.Number2)
	assert.Equal(t, "+", result.Operation)
}

// Cache Miss — полный флоу: расчёт → БД → кэш → брокер
func TestCalculate_CacheMiss(t *testing.T) {
	d, uc := newDeps(t)

	want := domain.Operation{Number1: 10, Number2: 5, Operation: "×", Result: 50, Timestamp: fixedNow}
	gomock.InOrder(
		d.cache.EXPECT().Get(gomock.Any(), "10 × 5").Return(0.0, false, nil),
		d.repo.EXPECT().SaveOperation(gomock.Any(), want).Return(nil),
		d.cache.EXPECT().Set(gomock.Any(), "10 × 5", 50.0).Return(nil),
		d.broker.EXPECT().Send(gomock.Any(), []byte("10 × 5"), gomock.Any()).Return(nil),
	)

	// ASCII-синоним приводится к символу с клавиатуры
	result, err := uc.Calculate(context.Background(), 10, 5, "*")

	require.NoError(t, err)
	assert.Equal(t, want, *result)
}

// Деление на ноль — не ошибка, результат 0
func TestCalculate_DivisionByZero(t *testing.T) {
	d, uc := newDeps(t)

	d.cache.EXPECT().Get(gomock.Any(), "10 ÷ 0").Return(0.0, false, nil)
	d.repo.EXPECT().SaveOperation(gomock.Any(), gomock.Any()).Return(nil)
	d.cache.EXPECT().Set(gomock.Any(), "10 ÷ 0", 0.0).Return(nil)
	d.broker.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	result, err := uc.Calculate(context.Background(), 10, 0, "/")

	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Result)
	assert.Equal(t, domain.MessageDivisionByZero, result.Message)
}

// Неизвестная операция — ни кэш, ни БД не трогаем
func TestCalculate_UnknownOperation(t *testing.T) {
	_, uc := newDeps(t)

	result, err := uc.Calculate(context.Background(), 2, 3, "^")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrUnknownOperation)
}

// Ошибка БД — ошибка наружу, в кэш и брокер не пишем
func TestCalculate_RepoError(t *testing.T) {
	d, uc := newDeps(t)

	d.cache.EXPECT().Get(gomock.Any(), "1 + 1").Return(0.0, false, nil)
	d.repo.EXPECT().SaveOperation(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	result, err := uc.Calculate(context.Background(), 1, 1, "+")

	assert.Nil(t, result)
	assert.ErrorContains(t, err, "db down")
}

// Ошибка брокера только логируется
func TestCalculate_BrokerErrorIgnored(t *testing.T) {
	d, uc := newDeps(t)

	d.cache.EXPECT().Get(gomock.Any(), "2 - 1").Return(0.0, false, nil)
	d.repo.EXPECT().SaveOperation(gomock.Any(), gomock.Any()).Return(nil)
	d.cache.EXPECT().Set(gomock.Any(), "2 - 1", 1.0).Return(nil)
	d.broker.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("kafka down"))

	result, err := uc.Calculate(context.Background(), 2, 1, "-")

	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Result)
}

// История операций
func TestHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIOperationRepository(ctrl)

	expected := []domain.Operation{
		{ID: 1, Number1: 10, Number2: 5, Operation: "+", Result: 15},
		{ID: 2, Number1: 20, Number2: 4, Operation: "÷", Result: 5},
	}
	mockRepo.EXPECT().GetHistory(gomock.Any()).Return(expected, nil)

	// Для History не нужны остальные зависимости — передаём nil
	uc := New(mockRepo, nil, nil, nil, nil, newTestLogger())

	result, err := uc.History(context.Background())

	require.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, expected, result)
}

func TestHandleOperationEvent(t *testing.T) {
	d, uc := newDeps(t)
	op := domain.Operation{Number1: 7, Number2: 3, Operation: "+", Result: 10}

	d.analytics.EXPECT().WriteOperation(gomock.Any(), op).Return(nil)
	require.NoError(t, uc.HandleOperationEvent(context.Background(), op))

	d.analytics.EXPECT().WriteOperation(gomock.Any(), op).Return(errors.New("click down"))
	assert.Error(t, uc.HandleOperationEvent(context.Background(), op))
}
