package calculator

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"kawaiiCalc/internal/domain"
	"kawaiiCalc/internal/mocks"
)

func newRouter(t *testing.T) (*gin.Engine, *mocks.MockICalculatorUseCase) {
	gin.SetMode(gin.TestMode)
	uc := mocks.NewMockICalculatorUseCase(gomock.NewController(t))
	r := gin.New()
	New(uc, slog.Default()).RegisterRoutes(r)
	return r, uc
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCalculate_OK(t *testing.T) {
	r, uc := newRouter(t)
	uc.EXPECT().Calculate(gomock.Any(), 7.0, 3.0, "+").Return(&domain.Operation{Result: 10}, nil)

	w := post(r, "/api/v1/calculate", `{"number1":7,"number2":3,"operation":"+"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":10,"display":"10"}`, w.Body.String())
}

// Ноль — валидное значение, деление на ноль отвечает 200 с пометкой
func TestCalculate_DivisionByZero(t *testing.T) {
	r, uc := newRouter(t)
	uc.EXPECT().Calculate(gomock.Any(), 6.0, 0.0, "/").
		Return(&domain.Operation{Result: 0, Message: domain.MessageDivisionByZero}, nil)

	w := post(r, "/api/v1/calculate", `{"number1":6,"number2":0,"operation":"/"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":0,"display":"0","message":"division by zero"}`, w.Body.String())
}

func TestCalculate_BadRequest(t *testing.T) {
	r, _ := newRouter(t)

	tests := map[string]string{
		"не JSON":              `{`,
		"нет второго числа":    `{"number1":1,"operation":"+"}`,
		"неизвестная операция": `{"number1":1,"number2":2,"operation":"^"}`,
	}
	for name, body := range tests {
		w := post(r, "/api/v1/calculate", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}
}

func TestCalculate_InternalError(t *testing.T) {
	r, uc := newRouter(t)
	uc.EXPECT().Calculate(gomock.Any(), 1.0, 1.0, "+").Return(nil, errors.New("db down"))

	w := post(r, "/api/v1/calculate", `{"number1":1,"number2":1,"operation":"+"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHistory(t *testing.T) {
	r, uc := newRouter(t)
	at := time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC)
	uc.EXPECT().History(gomock.Any()).Return([]domain.Operation{
		{ID: 1, SessionID: "s1", Number1: 7, Number2: 3, Operation: "+", Result: 10, Timestamp: at},
	}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[{"id":1,"session_id":"s1","number1":7,"number2":3,"operation":"+","result":10,"timestamp":"2026-02-08T12:00:00Z"}]}`, w.Body.String())
}
