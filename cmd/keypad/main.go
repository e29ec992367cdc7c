// Команда keypad — калькулятор в терминале: клавиши вводятся строкой, дисплей печатается после каждой строки.
//
//	> 12 + 3 =
//	15
//	> 8÷0=
//	0
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/peterh/liner"

	"kawaiiCalc/internal/app"
	"kawaiiCalc/internal/domain"
	"kawaiiCalc/internal/pkg/logger"
)

const historyFile = ".kawaiicalc_history"

// tokens разбивает строку на подписи клавиш. Слово, которое не является клавишей целиком ("12+3="), режется по символам.
func tokens(line string) []string {
	var out []string
	for _, f := range strings.Fields(line) {
		if _, err := domain.ParseKey(f); err == nil {
			out = append(out, f)
			continue
		}
		for _, r := range f {
			out = append(out, string(r))
		}
	}
	return out
}

// prompt показывает отложенную операцию над дисплеем: "8 ÷ > ".
func prompt(k *domain.Keypad) string {
	if e := k.Expression(); e != "" {
		return e + " > "
	}
	return "> "
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

// lineReader — источник строк ввода; в терминале это *liner.State.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// pressLine применяет строку клавиш к калькулятору. При неизвестной клавише состояние не меняется.
func pressLine(k *domain.Keypad, input string, log *slog.Logger) error {
	keys, err := domain.ParseKeys(tokens(input))
	if err != nil {
		return err
	}
	for _, key := range keys {
		if ev := k.Press(key); ev != nil {
			log.Debug("evaluated", "left", ev.Left, "operator", ev.Operator.String(), "right", ev.Right,
				"result", ev.Result, "divide_by_zero", ev.DivideByZero)
		}
	}
	return nil
}

// repl читает строки, пока не встретит quit/exit, конец ввода или Ctrl+C, и печатает дисплей после каждой.
func repl(in lineReader, out io.Writer, log *slog.Logger) error {
	k := domain.NewKeypad()
	fmt.Fprintln(out, k.Display)
	for {
		input, err := in.Prompt(prompt(&k))
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return nil
			}
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			return nil
		}
		in.AppendHistory(input)

		if err := pressLine(&k, input, log); err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		fmt.Fprintln(out, k.Display)
	}
}

func run(log *slog.Logger) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	path := historyPath()
	if path != "" {
		if f, err := os.Open(path); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
		defer func() {
			f, err := os.Create(path)
			if err != nil {
				log.Warn("write history", "error", err)
				return
			}
			defer f.Close()
			if _, err := line.WriteHistory(f); err != nil {
				log.Warn("write history", "error", err)
			}
		}()
	}

	return repl(line, os.Stdout, log)
}

// logConfig — логирование терминального калькулятора: CALCULATOR_LOG_LEVEL, CALCULATOR_LOG_FILE.
// По умолчанию тише сервера и без файла, чтобы не мусорить в рабочей директории.
type logConfig struct {
	Level string `envconfig:"LEVEL" default:"warn"`
	File  string `envconfig:"FILE"`
}

func loadLogConfig() (logger.Config, error) {
	var cfg logConfig
	if err := envconfig.Process(app.AppName+"_LOG", &cfg); err != nil {
		return logger.Config{}, fmt.Errorf("envconfig: %w", err)
	}
	return logger.Config{Level: cfg.Level, File: cfg.File}, nil
}

func main() {
	cfg, err := loadLogConfig()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}
	log, logFile := logger.New(cfg)

	if err := run(log); err != nil {
		log.Error("keypad failed", "error", err)
		logFile.Close()
		os.Exit(1)
	}
	logFile.Close()
}
