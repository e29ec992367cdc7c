package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	apigrpc "kawaiiCalc/internal/api/grpc"
	"kawaiiCalc/internal/api/http"
	"kawaiiCalc/internal/infrastructure/click"
	"kawaiiCalc/internal/infrastructure/kafka"
	"kawaiiCalc/internal/infrastructure/mongo"
	"kawaiiCalc/internal/infrastructure/pg"
	"kawaiiCalc/internal/infrastructure/redis"
	"kawaiiCalc/internal/pkg/logger"
)

// AppName — префикс переменных окружения.
const AppName = "CALCULATOR"

// Хранилища истории вычислений.
const (
	StoragePostgres = "pg"
	StorageMongo    = "mongo"
)

// Config — конфиг приложения. Заполняется через envconfig с префиксом CALCULATOR:
// CALCULATOR_LOG_LEVEL, CALCULATOR_SERVER_PORT, CALCULATOR_DB_HOST, CALCULATOR_REDIS_SESSION_TTL и т.д.
type Config struct {
	Log    logger.Config     `envconfig:"LOG"`
	Server http.ServerConfig `envconfig:"SERVER"`
	Grpc   apigrpc.Config    `envconfig:"GRPC"`
	// Storage — где хранить историю: pg или mongo.
	Storage string       `envconfig:"STORAGE" default:"pg"`
	DB      pg.Config    `envconfig:"DB"`
	Mongo   mongo.Config `envconfig:"MONGO"`
	Redis   redis.Config `envconfig:"REDIS"`
	// Analytics включает публикацию вычислений в Kafka и запись в ClickHouse.
	Analytics  bool         `envconfig:"ANALYTICS" default:"true"`
	Kafka      kafka.Config `envconfig:"KAFKA"`
	ClickHouse click.Config `envconfig:"CLICKHOUSE"`
}

// Validate проверяет значения, которые envconfig не может проверить сам.
func (c *Config) Validate() error {
	switch c.Storage {
	case StoragePostgres, StorageMongo:
	default:
		return fmt.Errorf("unknown storage %q, want %s or %s", c.Storage, StoragePostgres, StorageMongo)
	}
	if c.Redis.SessionTTL < 0 {
		return errors.New("redis session ttl must not be negative")
	}
	return nil
}

// LoadCfg загружает конфиг: подтягивает .env из рабочей директории (godotenv), затем заполняет структуру из окружения (envconfig).
func LoadCfg(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		slog.Debug("config: .env not loaded, using environment", "error", err)
	}

	var cfg Config
	if err := envconfig.Process(AppName, &cfg); err != nil {
		return Config{}, fmt.Errorf("envconfig: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
