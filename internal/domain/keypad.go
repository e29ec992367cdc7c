package domain

import (
	"fmt"
	"strings"
)

// KeyKind — тип клавиши.
type KeyKind int

const (
	KeyDigit KeyKind = iota + 1
	KeyDecimal
	KeyPercent
	KeyOperator
	KeyEquals
	KeyClear
	KeyBackspace
)

// Key — одно нажатие на клавиатуре калькулятора.
type Key struct {
	Kind     KeyKind
	Digit    byte     // '0'..'9', только для KeyDigit
	Operator Operator // только для KeyOperator
}

// Конструкторы клавиш, чтобы не собирать Key руками.
func DigitKey(d byte) Key { return Key{Kind: KeyDigit, Digit: d} }
func OperatorKey(op Operator) Key { return Key{Kind: KeyOperator, Operator: op} }
func DecimalKey() Key { return Key{Kind: KeyDecimal} }
func PercentKey() Key { return Key{Kind: KeyPercent} }
func EqualsKey() Key { return Key{Kind: KeyEquals} }
func ClearKey() Key { return Key{Kind: KeyClear} }
func BackspaceKey() Key { return Key{Kind: KeyBackspace} }

// ParseKey разбирает подпись клавиши: цифры, ".", "%", операции (включая *, x, /), "=", "AC", "⌫".
func ParseKey(label string) (Key, error) {
	s := strings.TrimSpace(label)
	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		return DigitKey(s[0]), nil
	}
	switch strings.ToLower(s) {
	case ".", ",":
		return DecimalKey(), nil
	case "%":
		return PercentKey(), nil
	case "=", "enter":
		return EqualsKey(), nil
	case "ac", "c", "clear", "esc":
		return ClearKey(), nil
	case "⌫", "backspace", "bs", "del":
		return BackspaceKey(), nil
	}
	if op, err := ParseOperator(s); err == nil {
		return OperatorKey(op), nil
	}
	return Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, label)
}

// ParseKeys разбирает несколько подписей подряд; на первой неизвестной возвращает ошибку.
func ParseKeys(labels []string) ([]Key, error) {
	keys := make([]Key, 0, len(labels))
	for _, l := range labels {
		k, err := ParseKey(l)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func (k Key) String() string {
	switch k.Kind {
	case KeyDigit:
		return string(k.Digit)
	case KeyDecimal:
		return "."
	case KeyPercent:
		return "%"
	case KeyOperator:
		return k.Operator.String()
	case KeyEquals:
		return "="
	case KeyClear:
		return "AC"
	case KeyBackspace:
		return "⌫"
	}
	return "?"
}

// Keypad — состояние калькулятора: дисплей, отложенный операнд и операция, флаг сброса дисплея.
// Отложенные операнд и операция либо оба заданы, либо оба пустые.
type Keypad struct {
	Display          string   `json:"display"`
	PendingOperand   string   `json:"pending_operand,omitempty"`
	PendingOperator  Operator `json:"pending_operator,omitempty"`
	ResetOnNextDigit bool     `json:"reset_on_next_digit"`
}

// NewKeypad возвращает калькулятор в начальном состоянии ("0", -, -, false).
func NewKeypad() Keypad {
	return Keypad{Display: "0"}
}

// HasPending сообщает, ждёт ли калькулятор второй операнд.
func (k *Keypad) HasPending() bool {
	return k.PendingOperator != ""
}

// Expression — строка над дисплеем: "<операнд> <операция>" или пусто.
func (k *Keypad) Expression() string {
	if !k.HasPending() {
		return ""
	}
	return k.PendingOperand + " " + k.PendingOperator.String()
}

// Validate проверяет состояние, прочитанное из хранилища.
func (k *Keypad) Validate() error {
	if _, ok := ParseNumber(k.Display); !ok {
		return fmt.Errorf("invalid display %q", k.Display)
	}
	if (k.PendingOperand == "") != (k.PendingOperator == "") {
		return fmt.Errorf("pending operand %q and operator %q must be set together", k.PendingOperand, string(k.PendingOperator))
	}
	if k.HasPending() {
		if _, err := ParseOperator(string(k.PendingOperator)); err != nil {
			return err
		}
		if _, ok := ParseNumber(k.PendingOperand); !ok {
			return fmt.Errorf("invalid pending operand %q", k.PendingOperand)
		}
	}
	return nil
}

// Press применяет одну клавишу. Для "=" с отложенной операцией возвращает вычисление, иначе nil.
func (k *Keypad) Press(key Key) *Evaluation {
	switch key.Kind {
	case KeyDigit:
		k.Digit(key.Digit)
	case KeyDecimal:
		k.Decimal()
	case KeyPercent:
		k.Percent()
	case KeyOperator:
		k.Operator(key.Operator)
	case KeyEquals:
		return k.Equals()
	case KeyClear:
		k.Clear()
	case KeyBackspace:
		k.Backspace()
	}
	return nil
}

// Digit дописывает цифру; при "0" на дисплее или поднятом флаге сброса заменяет дисплей.
func (k *Keypad) Digit(d byte) {
	if d < '0' || d > '9' {
		return
	}
	if k.Display == "0" || k.ResetOnNextDigit {
		k.Display = string(d)
		k.ResetOnNextDigit = false
		return
	}
	next := k.Display + string(d)
	// 1e+308 -> 1e+3089 уже не число.
	if _, ok := ParseNumber(next); !ok {
		return
	}
	k.Display = next
}

// Decimal дописывает точку, если её ещё нет. На экспоненциальном дисплее ("1e-8") точка игнорируется: "1e-8." не число.
func (k *Keypad) Decimal() {
	if strings.Contains(k.Display, ".") {
		return
	}
	next := k.Display + "."
	if _, ok := ParseNumber(next); !ok {
		return
	}
	k.Display = next
}

// Percent делит число на дисплее на 100.
func (k *Keypad) Percent() {
	v, _ := ParseNumber(k.Display)
	k.Display = FormatNumber(v / 100)
}

// Operator запоминает дисплей как левый операнд. Прежняя невычисленная операция теряется.
func (k *Keypad) Operator(op Operator) {
	k.PendingOperand = k.Display
	k.PendingOperator = op
	k.ResetOnNextDigit = true
}

// Equals вычисляет отложенную операцию. Без отложенной операции ничего не делает.
func (k *Keypad) Equals() *Evaluation {
	if !k.HasPending() {
		return nil
	}
	a, _ := ParseNumber(k.PendingOperand)
	b, _ := ParseNumber(k.Display)
	ev, err := Apply(a, k.PendingOperator, b)
	if err != nil {
		return nil
	}
	k.Display = FormatNumber(ev.Result)
	k.PendingOperand = ""
	k.PendingOperator = ""
	k.ResetOnNextDigit = true
	return &ev
}

// Clear возвращает все поля к начальным значениям.
func (k *Keypad) Clear() {
	*k = NewKeypad()
}

// Backspace стирает последний символ. После вычисления или выбора операции работает как Clear.
func (k *Keypad) Backspace() {
	if k.ResetOnNextDigit {
		k.Clear()
		return
	}
	s := k.Display
	for len(s) > 0 {
		s = s[:len(s)-1]
		if _, ok := ParseNumber(s); ok {
			k.Display = s
			return
		}
	}
	k.Display = "0"
}
