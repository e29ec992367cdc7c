// Package calculator — реализация gRPC CalculatorService поверх use case калькулятора.
package calculator

import (
	"context"
	"errors"
	"log/slog"

	calculatorv1 "github.com/AraxHub/calc-proto/gen/go/calculator/v1"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"kawaiiCalc/internal/domain"
	"kawaiiCalc/internal/ports"
)

// Server реализует calculatorv1.CalculatorServiceServer.
type Server struct {
	calculatorv1.UnimplementedCalculatorServiceServer
	uc  ports.ICalculatorUseCase
	log *slog.Logger
}

// New создаёт gRPC-сервис калькулятора.
func New(uc ports.ICalculatorUseCase, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{uc: uc, log: log}
}

// Calculate вычисляет number1 operation number2. Деление на ноль не ошибка: результат 0 и сообщение.
func (s *Server) Calculate(ctx context.Context, req *calculatorv1.CalculateRequest) (*calculatorv1.CalculateResponse, error) {
	op, err := s.uc.Calculate(ctx, req.GetNumber1(), req.GetNumber2(), req.GetOperation())
	if err != nil {
		if errors.Is(err, domain.ErrUnknownOperation) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		s.log.Error("calculate failed", "error", err)
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &calculatorv1.CalculateResponse{
		Result:  op.Result,
		Message: op.Message,
	}, nil
}

// History возвращает последние вычисления, новые сначала.
func (s *Server) History(ctx context.Context, _ *calculatorv1.HistoryRequest) (*calculatorv1.HistoryResponse, error) {
	list, err := s.uc.History(ctx)
	if err != nil {
		s.log.Error("history failed", "error", err)
		return nil, status.Error(codes.Internal, err.Error())
	}
	items := make([]*calculatorv1.HistoryItem, len(list))
	for i, op := range list {
		items[i] = &calculatorv1.HistoryItem{
			Id:                int32(op.ID),
			Number1:           op.Number1,
			Number2:           op.Number2,
			Operation:         op.Operation,
			Result:            op.Result,
			Message:           op.Message,
			TimestampUnixNano: op.Timestamp.UnixNano(),
		}
	}
	return &calculatorv1.HistoryResponse{Items: items}, nil
}
