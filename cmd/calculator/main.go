// Команда calculator — HTTP- и gRPC-сервер калькулятора.
package main

import (
	"log/slog"
	"os"

	"kawaiiCalc/internal/app"
)

func main() {
	cfg, err := app.LoadCfg()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	if err := app.New(cfg).Run(); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}
