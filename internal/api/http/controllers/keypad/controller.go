// Package keypad — HTTP-маршруты сессий клавиатуры калькулятора.
package keypad

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"kawaiiCalc/internal/domain"
	"kawaiiCalc/internal/ports"
)

// Controller — маршруты /api/v1/sessions.
type Controller struct {
	uc  ports.ICalculatorUseCase
	log *slog.Logger
}

// New создаёт контроллер клавиатуры.
func New(uc ports.ICalculatorUseCase, log *slog.Logger) *Controller {
	return &Controller{uc: uc, log: log}
}

// RegisterRoutes реализует http.Controller.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	sessions := r.Group("/api/v1/sessions")

	sessions.POST("", c.create)
	sessions.GET("/:id", c.get)
	sessions.DELETE("/:id", c.remove)
	sessions.POST("/:id/keys", c.press)
}

// @Summary Новая сессия калькулятора
// @Tags keypad
// @Produce json
// @Success 201 {object} SessionResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/sessions [post]
func (c *Controller) create(ctx *gin.Context) {
	id, state, err := c.uc.NewSession(ctx.Request.Context())
	if err != nil {
		c.fail(ctx, "create session failed", err)
		return
	}
	ctx.JSON(http.StatusCreated, toResponse(id, state))
}

// @Summary Состояние калькулятора
// @Tags keypad
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} SessionResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func (c *Controller) get(ctx *gin.Context) {
	id := ctx.Param("id")
	state, err := c.uc.Session(ctx.Request.Context(), id)
	if err != nil {
		c.fail(ctx, "get session failed", err)
		return
	}
	ctx.JSON(http.StatusOK, toResponse(id, state))
}

// @Summary Закрыть сессию
// @Tags keypad
// @Param id path string true "ID сессии"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sessions/{id} [delete]
func (c *Controller) remove(ctx *gin.Context) {
	if err := c.uc.CloseSession(ctx.Request.Context(), ctx.Param("id")); err != nil {
		c.fail(ctx, "close session failed", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// @Summary Нажать клавиши
// @Description Клавиши применяются по порядку: цифры, ".", "%", "+", "-", "×", "÷", "=", "AC", "⌫"
// @Tags keypad
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body PressRequest true "Клавиши"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sessions/{id}/keys [post]
func (c *Controller) press(ctx *gin.Context) {
	var req PressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.log.Warn("press bind failed", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}
	keys, err := domain.ParseKeys(req.Keys)
	if err != nil {
		c.fail(ctx, "press parse failed", err)
		return
	}

	id := ctx.Param("id")
	state, err := c.uc.Press(ctx.Request.Context(), id, keys...)
	if err != nil {
		c.fail(ctx, "press failed", err)
		return
	}
	ctx.JSON(http.StatusOK, toResponse(id, state))
}

// fail отвечает кодом по типу ошибки: 400 на неизвестную клавишу, 404 на отсутствующую сессию, иначе 500.
func (c *Controller) fail(ctx *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownKey):
		c.log.Warn(msg, "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrSessionNotFound):
		c.log.Warn(msg, "error", err)
		ctx.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		c.log.Error(msg, "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
