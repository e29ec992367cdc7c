package interceptors

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var info = &grpc.UnaryServerInfo{FullMethod: "/calculator.v1.CalculatorService/Calculate"}

func TestLoggingUnaryInterceptor(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	_, err := LoggingUnaryInterceptor(log)(context.Background(), nil, info,
		func(context.Context, any) (any, error) {
			return nil, status.Error(codes.InvalidArgument, "unknown operation")
		})

	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "grpc_code=InvalidArgument")
	assert.Contains(t, buf.String(), "method=/calculator.v1.CalculatorService/Calculate")
}

func TestRecoveryUnaryInterceptor(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	resp, err := RecoveryUnaryInterceptor(log)(context.Background(), nil, info,
		func(context.Context, any) (any, error) {
			panic("boom")
		})

	assert.Nil(t, resp)
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Contains(t, buf.String(), "grpc panic")
}
