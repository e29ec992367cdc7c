package calculator

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	calculatorv1 "github.com/AraxHub/calc-proto/gen/go/calculator/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"kawaiiCalc/internal/domain"
	"kawaiiCalc/internal/mocks"
)

func TestServer_Calculate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		op       *domain.Operation
		err      error
		wantCode codes.Code
		want     *calculatorv1.CalculateResponse
	}{
		{
			name: "ok",
			op:   &domain.Operation{Result: 10},
			want: &calculatorv1.CalculateResponse{Result: 10},
		},
		{
			name: "деление на ноль",
			op:   &domain.Operation{Result: 0, Message: domain.MessageDivisionByZero},
			want: &calculatorv1.CalculateResponse{Result: 0, Message: domain.MessageDivisionByZero},
		},
		{
			name:     "неизвестная операция",
			err:      fmt.Errorf("%w: %q", domain.ErrUnknownOperation, "^"),
			wantCode: codes.InvalidArgument,
		},
		{
			name:     "сбой хранилища",
			err:      errors.New("db down"),
			wantCode: codes.Internal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := mocks.NewMockICalculatorUseCase(gomock.NewController(t))
			uc.EXPECT().Calculate(ctx, 7.0, 3.0, "+").Return(tt.op, tt.err)

			resp, err := New(uc, nil).Calculate(ctx, &calculatorv1.CalculateRequest{Number1: 7, Number2: 3, Operation: "+"})
			if tt.err != nil {
				assert.Equal(t, tt.wantCode, status.Code(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.GetResult(), resp.GetResult())
			assert.Equal(t, tt.want.GetMessage(), resp.GetMessage())
		})
	}
}

func TestServer_History(t *testing.T) {
	ctx := context.Background()
	at := time.Unix(0, 1_700_000_000_000_000_000)
	uc := mocks.NewMockICalculatorUseCase(gomock.NewController(t))
	uc.EXPECT().History(ctx).Return([]domain.Operation{
		{ID: 2, Number1: 1, Number2: 4, Operation: "÷", Result: 0.25, Timestamp: at},
	}, nil)

	resp, err := New(uc, nil).History(ctx, &calculatorv1.HistoryRequest{})
	require.NoError(t, err)
	require.Len(t, resp.GetItems(), 1)
	item := resp.GetItems()[0]
	assert.Equal(t, int32(2), item.GetId())
	assert.Equal(t, "÷", item.GetOperation())
	assert.Equal(t, 0.25, item.GetResult())
	assert.Equal(t, at.UnixNano(), item.GetTimestampUnixNano())
}

func TestServer_HistoryError(t *testing.T) {
	uc := mocks.NewMockICalculatorUseCase(gomock.NewController(t))
	uc.EXPECT().History(gomock.Any()).Return(nil, errors.New("db down"))

	_, err := New(uc, nil).History(context.Background(), &calculatorv1.HistoryRequest{})
	assert.Equal(t, codes.Internal, status.Code(err))
}
