package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// press прогоняет подписи клавиш через новый калькулятор и возвращает его состояние.
func press(t *testing.T, labels ...string) Keypad {
	t.Helper()
	keys, err := ParseKeys(labels)
	require.NoError(t, err)
	k := NewKeypad()
	for _, key := range keys {
		k.Press(key)
	}
	return k
}

func TestKeypad_Display(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{name: "набор цифр", keys: []string{"1", "2", "3"}, want: "123"},
		{name: "ведущий ноль", keys: []string{"0", "0", "7"}, want: "7"},
		{name: "сложение", keys: []string{"7", "+", "3", "="}, want: "10"},
		{name: "операция сама с собой", keys: []string{"5", "+", "="}, want: "10"},
		{name: "деление на ноль", keys: []string{"6", "÷", "0", "="}, want: "0"},
		{name: "вычитание в минус", keys: []string{"3", "-", "8", "="}, want: "-5"},
		{name: "умножение ascii", keys: []string{"4", "*", "2", ".", "5", "="}, want: "10"},
		{name: "дробное деление", keys: []string{"1", "/", "4", "="}, want: "0.25"},
		{name: "две точки", keys: []string{"1", ".", ".", "5"}, want: "1.5"},
		{name: "точка с нуля", keys: []string{".", "5"}, want: "0.5"},
		{name: "процент", keys: []string{"5", "0", "%"}, want: "0.5"},
		{name: "новая операция отбрасывает старую", keys: []string{"2", "+", "3", "×", "4", "="}, want: "12"},
		{name: "цифра после результата", keys: []string{"2", "+", "2", "=", "9"}, want: "9"},
		{name: "повторное равно без операции", keys: []string{"2", "+", "2", "=", "="}, want: "4"},
		{name: "ноль со знаком", keys: []string{"0", "-", "0", "="}, want: "0"},
		{name: "точка после экспоненты", keys: []string{"1", "%", "%", "%", "%", "."}, want: "1e-8"},
		{name: "цифра после экспоненты", keys: []string{"1", "%", "%", "%", "%", "5"}, want: "1e-85"},
		{name: "плавающая точка", keys: []string{".", "1", "+", "0", ".", "2", "="}, want: "0.30000000000000004"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := press(t, tt.keys...)
			assert.Equal(t, tt.want, k.Display)
		})
	}
}

func TestKeypad_Clear(t *testing.T) {
	states := [][]string{
		{},
		{"1", "2"},
		{"1", "+"},
		{"1", "+", "2"},
		{"1", "+", "2", "="},
		{"9", "%", "."},
	}
	for _, keys := range states {
		k := press(t, keys...)
		k.Clear()
		assert.Equal(t, Keypad{Display: "0"}, k, "после %v", keys)
		assert.False(t, k.HasPending())
	}
}

func TestKeypad_Backspace(t *testing.T) {
	k := press(t, "1", "2")
	k.Backspace()
	assert.Equal(t, "1", k.Display)
	k.Backspace()
	assert.Equal(t, "0", k.Display)
	k.Backspace()
	assert.Equal(t, "0", k.Display)

	// после операции Backspace работает как Clear
	k = press(t, "4", "+")
	k.Backspace()
	assert.Equal(t, NewKeypad(), k)

	// "-" не число
	k = Keypad{Display: "-5"}
	k.Backspace()
	assert.Equal(t, "0", k.Display)

	k = Keypad{Display: "1e+21"}
	k.Backspace()
	assert.Equal(t, "1e+2", k.Display)
	k.Backspace()
	assert.Equal(t, "1", k.Display)
}

func TestKeypad_OperatorKeepsPendingPair(t *testing.T) {
	k := press(t, "8", "÷")
	assert.True(t, k.HasPending())
	assert.Equal(t, "8", k.PendingOperand)
	assert.Equal(t, OpDiv, k.PendingOperator)
	assert.True(t, k.ResetOnNextDigit)
	assert.Equal(t, "8 ÷", k.Expression())
	require.NoError(t, k.Validate())

	ev := k.Press(DigitKey('2'))
	assert.Nil(t, ev)
	ev = k.Press(EqualsKey())
	require.NotNil(t, ev)
	assert.Equal(t, Evaluation{Left: 8, Operator: OpDiv, Right: 2, Result: 4}, *ev)
	assert.Empty(t, k.PendingOperand)
	assert.Empty(t, k.PendingOperator)
	assert.Empty(t, k.Expression())
}

func TestKeypad_EqualsWithoutOperator(t *testing.T) {
	k := press(t, "4", "2")
	assert.Nil(t, k.Equals())
	assert.Equal(t, Keypad{Display: "42"}, k)
}

func TestKeypad_DivideByZeroFlag(t *testing.T) {
	k := press(t, "6", "÷", "0")
	ev := k.Equals()
	require.NotNil(t, ev)
	assert.True(t, ev.DivideByZero)
	assert.Equal(t, 0.0, ev.Result)
	assert.Equal(t, "0", k.Display)
}

func TestKeypad_DigitOverflowIgnored(t *testing.T) {
	k := Keypad{Display: "1e+308"}
	k.Digit('9')
	assert.Equal(t, "1e+308", k.Display)
}

func TestKeypad_Validate(t *testing.T) {
	assert.NoError(t, (&Keypad{Display: "0"}).Validate())
	assert.Error(t, (&Keypad{Display: ""}).Validate())
	assert.Error(t, (&Keypad{Display: "1", PendingOperand: "2"}).Validate())
	assert.Error(t, (&Keypad{Display: "1", PendingOperand: "2", PendingOperator: "^"}).Validate())
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		label string
		want  Key
	}{
		{"7", DigitKey('7')},
		{".", DecimalKey()},
		{"%", PercentKey()},
		{"x", OperatorKey(OpMul)},
		{"/", OperatorKey(OpDiv)},
		{"=", EqualsKey()},
		{"AC", ClearKey()},
		{"⌫", BackspaceKey()},
		{"backspace", BackspaceKey()},
	}
	for _, tt := range tests {
		got, err := ParseKey(tt.label)
		require.NoError(t, err, tt.label)
		assert.Equal(t, tt.want, got, tt.label)
	}

	_, err := ParseKey("sqrt")
	assert.ErrorIs(t, err, ErrUnknownKey)

	_, err = ParseKeys([]string{"1", "??"})
	assert.ErrorIs(t, err, ErrUnknownKey)
}
