package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Config — настройки логирования. Переменные: CALCULATOR_LOG_LEVEL, CALCULATOR_LOG_FILE.
type Config struct {
	Level string `envconfig:"LEVEL" default:"info"`
	// File — файл для JSON-логов; пусто — только stderr.
	File string `envconfig:"FILE" default:"app.log"`
}

// ParseLevel переводит строку из конфига в уровень slog (debug, info, warn, error). Неизвестное значение даёт info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// closerFunc превращает функцию в io.Closer.
type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// New возвращает логгер: текст в stderr и JSON в файл, если он открылся.
// Closer закрывает файл логов; без файла он ничего не делает.
func New(cfg Config) (*slog.Logger, io.Closer) {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	stderr := slog.NewTextHandler(os.Stderr, opts)
	if cfg.File == "" {
		return slog.New(stderr), closerFunc(func() error { return nil })
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		log := slog.New(stderr)
		log.Warn("log file not opened, logging to stderr only", "file", cfg.File, "error", err)
		return log, closerFunc(func() error { return nil })
	}
	return slog.New(slogmulti.Fanout(stderr, slog.NewJSONHandler(f, opts))), f
}
