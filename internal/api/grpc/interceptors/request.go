// Package interceptors — unary-интерцепторы gRPC-сервера.
package interceptors

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// LoggingUnaryInterceptor пишет в лог метод, latency_ms и grpc_code каждого вызова.
func LoggingUnaryInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		st := status.Convert(err)
		attrs := []any{
			"method", info.FullMethod,
			"latency_ms", time.Since(start).Milliseconds(),
			"grpc_code", st.Code().String(),
		}
		switch st.Code() {
		case codes.OK:
			log.Info("grpc request", attrs...)
		case codes.Internal, codes.Unknown:
			log.Error("grpc request", append(attrs, "error", st.Message())...)
		default:
			log.Warn("grpc request", append(attrs, "error", st.Message())...)
		}
		return resp, err
	}
}

// RecoveryUnaryInterceptor превращает панику в хэндлере в codes.Internal.
func RecoveryUnaryInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("grpc panic", "method", info.FullMethod, "panic", r, "stack", string(debug.Stack()))
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}
