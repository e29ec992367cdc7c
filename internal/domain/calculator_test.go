package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{name: "целое", in: 10, want: "10"},
		{name: "дробное", in: 0.25, want: "0.25"},
		{name: "отрицательное", in: -42.5, want: "-42.5"},
		{name: "минус ноль", in: math.Copysign(0, -1), want: "0"},
		{name: "большое без экспоненты", in: 1e20, want: "100000000000000000000"},
		{name: "большое с экспонентой", in: 1e21, want: "1e+21"},
		{name: "маленькое без экспоненты", in: 0.000001, want: "0.000001"},
		{name: "маленькое с экспонентой", in: 1.5e-7, want: "1.5e-7"},
		{name: "бесконечность", in: math.Inf(1), want: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.in))
		})
	}
}

func TestParseNumber(t *testing.T) {
	v, ok := ParseNumber("5.")
	assert.True(t, ok)
	assert.Equal(t, 5.0, v)

	_, ok = ParseNumber("-")
	assert.False(t, ok)
	_, ok = ParseNumber("inf")
	assert.False(t, ok)
}

func TestApply(t *testing.T) {
	tests := []struct {
		a, b   float64
		op     Operator
		want   float64
		divide bool
	}{
		{a: 10, b: 5, op: OpAdd, want: 15},
		{a: 10, b: 5, op: OpSub, want: 5},
		{a: 10, b: 5, op: OpMul, want: 50},
		{a: 10, b: 5, op: OpDiv, want: 2},
		{a: 10, b: 0, op: OpDiv, want: 0, divide: true},
		{a: math.MaxFloat64, b: 10, op: OpMul, want: 0},
	}
	for _, tt := range tests {
		ev, err := Apply(tt.a, tt.op, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ev.Result, "%v %s %v", tt.a, tt.op, tt.b)
		assert.Equal(t, tt.divide, ev.DivideByZero)
	}

	_, err := Apply(1, Operator("^"), 2)
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestParseOperator(t *testing.T) {
	for in, want := range map[string]Operator{"+": OpAdd, "-": OpSub, "*": OpMul, "×": OpMul, "/": OpDiv, "÷": OpDiv} {
		got, err := ParseOperator(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseOperator("mod")
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestEvaluation_Operation(t *testing.T) {
	at := time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC)
	op := Evaluation{Left: 6, Operator: OpDiv, Right: 0, DivideByZero: true}.Operation("s1", at)
	assert.Equal(t, Operation{
		SessionID: "s1",
		Number1:   6,
		Number2:   0,
		Operation: "÷",
		Result:    0,
		Message:   MessageDivisionByZero,
		Timestamp: at,
	}, op)
}
