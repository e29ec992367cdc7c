package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrUnknownOperation возвращается, когда операция не поддерживается.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrUnknownKey — нажата клавиша, которой нет на клавиатуре калькулятора.
	ErrUnknownKey = errors.New("unknown key")
	// ErrSessionNotFound — сессии нет в хранилище (не создавалась или истёк TTL).
	ErrSessionNotFound = errors.New("session not found")
)

// Operator — одна из четырёх арифметических операций. Значение — символ с клавиатуры.
type Operator string

// Константы арифметических операций.
const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "×"
	OpDiv Operator = "÷"
)

// ParseOperator принимает символ операции с клавиатуры или его ASCII-синоним (*, x, /).
func ParseOperator(s string) (Operator, error) {
	switch strings.TrimSpace(s) {
	case "+":
		return OpAdd, nil
	case "-", "−":
		return OpSub, nil
	case "×", "*", "x", "X":
		return OpMul, nil
	case "÷", "/", ":":
		return OpDiv, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperation, s)
}

func (o Operator) String() string {
	return string(o)
}

// Operation — запись об одной операции калькулятора.
type Operation struct {
	ID        int
	SessionID string
	Number1   float64
	Number2   float64
	Operation string
	Result    float64
	Message   string
	Timestamp time.Time
}

// MessageDivisionByZero пишется в Operation.Message, когда делитель был нулём и результат заменён на 0.
const MessageDivisionByZero = "division by zero"

// Evaluation — результат одного вычисления a op b.
type Evaluation struct {
	Left         float64
	Operator     Operator
	Right        float64
	Result       float64
	DivideByZero bool
}

// Apply вычисляет a op b. Деление на ноль даёт 0 (флаг DivideByZero), бесконечность и NaN тоже схлопываются в 0.
func Apply(a float64, op Operator, b float64) (Evaluation, error) {
	ev := Evaluation{Left: a, Operator: op, Right: b}
	switch op {
	case OpAdd:
		ev.Result = a + b
	case OpSub:
		ev.Result = a - b
	case OpMul:
		ev.Result = a * b
	case OpDiv:
		if b == 0 {
			ev.DivideByZero = true
			ev.Result = 0
		} else {
			ev.Result = a / b
		}
	default:
		return Evaluation{}, fmt.Errorf("%w: %q", ErrUnknownOperation, string(op))
	}
	if math.IsInf(ev.Result, 0) || math.IsNaN(ev.Result) {
		ev.Result = 0
	}
	return ev, nil
}

// Operation превращает вычисление в запись для истории.
func (e Evaluation) Operation(sessionID string, at time.Time) Operation {
	op := Operation{
		SessionID: sessionID,
		Number1:   e.Left,
		Number2:   e.Right,
		Operation: e.Operator.String(),
		Result:    e.Result,
		Timestamp: at,
	}
	if e.DivideByZero {
		op.Message = MessageDivisionByZero
	}
	return op
}

// FormatNumber печатает число так же, как его показывает дисплей:
// обычная запись в диапазоне [1e-6, 1e21), экспонента вне его, -0 печатается как 0.
func FormatNumber(v float64) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		// Go пишет экспоненту минимум двумя цифрами: 1e-07 -> 1e-7.
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseNumber разбирает строку дисплея. Нечисловая или бесконечная строка даёт ok == false.
func ParseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
