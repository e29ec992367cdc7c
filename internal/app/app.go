// Package app собирает зависимости калькулятора и запускает HTTP- и gRPC-серверы.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	apigrpc "kawaiiCalc/internal/api/grpc"
	apihttp "kawaiiCalc/internal/api/http"
	"kawaiiCalc/internal/api/http/controllers/calculator"
	"kawaiiCalc/internal/api/http/controllers/keypad"
	"kawaiiCalc/internal/api/http/controllers/system"
	"kawaiiCalc/internal/infrastructure/click"
	"kawaiiCalc/internal/infrastructure/kafka"
	"kawaiiCalc/internal/infrastructure/mongo"
	"kawaiiCalc/internal/infrastructure/pg"
	"kawaiiCalc/internal/infrastructure/redis"
	"kawaiiCalc/internal/pkg/logger"
	"kawaiiCalc/internal/ports"
	calcUsecase "kawaiiCalc/internal/usecase/calculator"
)

const shutdownTimeout = 10 * time.Second

// App — приложение: конфиг и ресурсы, которые надо закрыть при остановке.
type App struct {
	cfg     Config
	log     *slog.Logger
	closers []io.Closer
}

// New создаёт приложение с конфигом (подключения открываются в Run).
func New(cfg Config) *App {
	log, logFile := logger.New(cfg.Log)
	// файл логов закрывается последним, после всех остальных ресурсов
	return &App{cfg: cfg, log: log, closers: []io.Closer{logFile}}
}

// repository открывает хранилище истории по cfg.Storage.
func (a *App) repository(ctx context.Context) (ports.IOperationRepository, error) {
	if a.cfg.Storage == StorageMongo {
		cli, err := mongo.New(ctx, &a.cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		a.closers = append(a.closers, cli)
		return mongo.NewOperationRepo(cli, a.log), nil
	}

	db, err := pg.New(&a.cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	a.closers = append(a.closers, db)
	if err := pg.Migrate(ctx, db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return pg.NewOperationRepo(db, a.log), nil
}

// Run подключает хранилища, запускает gRPC, HTTP и консьюмер аналитики. Блокируется до SIGINT/SIGTERM.
func (a *App) Run() error {
	slog.SetDefault(a.log)
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := a.repository(ctx)
	if err != nil {
		return err
	}

	rdb, err := redis.New(&a.cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	a.closers = append(a.closers, rdb)
	sessions := redis.NewSessionStore(rdb, a.cfg.Redis.SessionTTL, a.log)
	cache := redis.NewCache(rdb, a.cfg.Redis.ResultTTL, a.log)

	pingers := map[string]system.Pinger{
		"storage": repo,
		"redis":   rdb,
	}

	var (
		broker    ports.IProducer
		analytics ports.IOperationAnalytics
		ch        *click.Client
	)
	if a.cfg.Analytics {
		ch, err = click.New(&a.cfg.ClickHouse)
		if err != nil {
			return fmt.Errorf("clickhouse: %w", err)
		}
		a.closers = append(a.closers, ch)
		writer := click.NewOperationWriter(ch)
		if err := writer.EnsureTable(ctx); err != nil {
			return fmt.Errorf("clickhouse table: %w", err)
		}
		analytics = writer
		pingers["clickhouse"] = ch

		producer := kafka.NewProducer(&a.cfg.Kafka)
		a.closers = append(a.closers, producer)
		broker = producer
	}

	uc := calcUsecase.New(repo, cache, broker, analytics, sessions, a.log)

	grpcSrv := apigrpc.NewServer(a.cfg.Grpc, uc, a.log)

	httpSrv := apihttp.NewServer(a.cfg.Server, a.log)
	httpSrv.AddController(
		system.New(pingers, a.log),
		calculator.New(uc, a.log),
		keypad.New(uc, a.log),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpSrv.Start(gctx)
	})
	g.Go(func() error {
		return grpcSrv.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return grpcSrv.Stop(shutdownCtx)
	})
	if a.cfg.Analytics {
		consumer := kafka.NewConsumer(&a.cfg.Kafka, uc, a.log)
		a.closers = append(a.closers, consumer)
		g.Go(func() error {
			if err := consumer.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				// без аналитики калькулятор продолжает работать
				a.log.Error("analytics consumer stopped", "error", err)
			}
			return nil
		})
	}

	a.log.Info("application started",
		"http", a.cfg.Server.Addr(),
		"grpc", a.cfg.Grpc.Addr(),
		"storage", a.cfg.Storage,
		"analytics", a.cfg.Analytics)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	a.log.Info("application stopped")
	return nil
}

// close закрывает ресурсы в обратном порядке открытия.
func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.log.Warn("close resource", "error", err)
		}
	}
}
