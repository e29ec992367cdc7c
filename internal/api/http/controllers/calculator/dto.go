package calculator

import (
	"errors"
	"time"

	"kawaiiCalc/internal/domain"
)

// CalculateRequest — запрос на вычисление (POST /api/v1/calculate). Числа — указатели, чтобы 0 проходил required.
type CalculateRequest struct {
	Number1   *float64 `json:"number1" binding:"required"`
	Number2   *float64 `json:"number2" binding:"required"`
	Operation string   `json:"operation" binding:"required"`
}

// Validate проверяет операцию до вызова use case.
func (r CalculateRequest) Validate() error {
	if r.Number1 == nil || r.Number2 == nil {
		return errors.New("number1 and number2 are required")
	}
	_, err := domain.ParseOperator(r.Operation)
	return err
}

// CalculateResponse — ответ с результатом.
type CalculateResponse struct {
	Result  float64 `json:"result"`
	Display string  `json:"display,omitempty"`
	Message string  `json:"message,omitempty"`
}

// HistoryItem — одна запись в истории (GET /api/v1/history).
type HistoryItem struct {
	ID        int       `json:"id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	Number1   float64   `json:"number1"`
	Number2   float64   `json:"number2"`
	Operation string    `json:"operation"`
	Result    float64   `json:"result"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryResponse — ответ со списком операций.
type HistoryResponse struct {
	Items []HistoryItem `json:"items"`
}

// ErrorResponse — ответ с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}
