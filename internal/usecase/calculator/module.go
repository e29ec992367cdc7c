package calculator

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"kawaiiCalc/internal/ports"
)

var keyPressesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "calculator_key_presses_total",
		Help: "Total number of keypad key presses applied to sessions",
	},
	[]string{"key"},
)

var evaluationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "calculator_evaluations_total",
		Help: "Total number of evaluations by operator and source",
	},
	[]string{"operation", "source"},
)

// cacheKey формирует читаемый ключ операции для кэша, например "1 + 1".
func cacheKey(number1, number2 float64, operation string) string {
	return strconv.FormatFloat(number1, 'f', -1, 64) + " " + operation + " " + strconv.FormatFloat(number2, 'f', -1, 64)
}

// UseCase — бизнес-логика калькулятора: сессии клавиатуры и учёт вычислений.
type UseCase struct {
	repo      ports.IOperationRepository
	cache     ports.ICache
	broker    ports.IProducer
	analytics ports.IOperationAnalytics
	sessions  ports.ISessionStore
	log       *slog.Logger
	now       func() time.Time
}

// New создаёт юзкейс калькулятора. Неиспользуемые в конкретном сценарии зависимости можно передать nil.
func New(repo ports.IOperationRepository, cache ports.ICache, broker ports.IProducer,
	analytics ports.IOperationAnalytics, sessions ports.ISessionStore, log *slog.Logger) *UseCase {
	if log == nil {
		log = slog.Default()
	}
	return &UseCase{
		repo:      repo,
		cache:     cache,
		broker:    broker,
		analytics: analytics,
		sessions:  sessions,
		log:       log,
		now:       time.Now,
	}
}
