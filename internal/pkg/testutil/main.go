package testutil

import (
	"context"
	"flag"
	"log"
	"testing"
	"time"
)

// StartFunc поднимает инфраструктуру для тестов пакета и возвращает функцию остановки.
type StartFunc func(ctx context.Context) (stop func(context.Context) error, err error)

// Main — тело TestMain для интеграционных тестов: поднимает контейнеры один раз перед тестами пакета
// и останавливает после. В режиме -short контейнеры не поднимаются, тесты сами себя пропускают через SkipShort.
//
//	func TestMain(m *testing.M) { os.Exit(testutil.Main(m, start)) }
func Main(m *testing.M, start StartFunc) int {
	flag.Parse()
	if testing.Short() {
		return m.Run()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	stop, err := start(ctx)
	if err != nil {
		log.Printf("test containers: %v", err)
		return 1
	}

	code := m.Run()

	if err := stop(ctx); err != nil {
		log.Printf("test containers terminate: %v", err)
	}
	return code
}

// SkipShort пропускает интеграционный тест в режиме -short.
func SkipShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}
}
