package keypad

import "kawaiiCalc/internal/domain"

// PressRequest — нажатия клавиш (POST /api/v1/sessions/:id/keys), по порядку.
type PressRequest struct {
	Keys []string `json:"keys" binding:"required,min=1"`
}

// SessionResponse — состояние калькулятора сессии.
type SessionResponse struct {
	ID               string `json:"id"`
	Display          string `json:"display"`
	Expression       string `json:"expression"`
	PendingOperand   string `json:"pending_operand,omitempty"`
	PendingOperator  string `json:"pending_operator,omitempty"`
	ResetOnNextDigit bool   `json:"reset_on_next_digit"`
}

func toResponse(id string, k domain.Keypad) SessionResponse {
	return SessionResponse{
		ID:               id,
		Display:          k.Display,
		Expression:       k.Expression(),
		PendingOperand:   k.PendingOperand,
		PendingOperator:  k.PendingOperator.String(),
		ResetOnNextDigit: k.ResetOnNextDigit,
	}
}

// ErrorResponse — ответ с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}
