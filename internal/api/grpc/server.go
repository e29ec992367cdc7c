package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	calculatorv1 "github.com/AraxHub/calc-proto/gen/go/calculator/v1"
	"google.golang.org/grpc"

	"kawaiiCalc/internal/api/grpc/calculator"
	"kawaiiCalc/internal/api/grpc/interceptors"
	"kawaiiCalc/internal/ports"
)

// Config — настройки gRPC-сервера. Переменные: CALCULATOR_GRPC_HOST, CALCULATOR_GRPC_PORT.
type Config struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port string `envconfig:"PORT" default:"9090"`
}

// Addr возвращает "host:port".
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Server — gRPC-сервер разовых вычислений и истории.
type Server struct {
	grpc *grpc.Server
	addr string
	log  *slog.Logger
}

// NewServer создаёт gRPC-сервер и регистрирует CalculatorService.
func NewServer(cfg Config, uc ports.ICalculatorUseCase, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(
		interceptors.RecoveryUnaryInterceptor(log),
		interceptors.LoggingUnaryInterceptor(log),
	))
	calculatorv1.RegisterCalculatorServiceServer(s, calculator.New(uc, log))
	return &Server{grpc: s, addr: cfg.Addr(), log: log}
}

// Start слушает addr и принимает соединения (блокируется). Остановка через Stop().
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("grpc listen %s: %w", s.addr, err)
	}
	s.log.Info("grpc server listening", "addr", s.addr)
	return s.grpc.Serve(lis)
}

// Stop останавливает сервер; если ctx истёк раньше GracefulStop, соединения рвутся.
func (s *Server) Stop(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.grpc.Stop()
		return ctx.Err()
	}
}
