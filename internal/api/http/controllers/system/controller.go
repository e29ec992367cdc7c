package system

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger — зависимость, доступность которой проверяет readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Controller — системные маршруты: liveness, readiness, метрики.
type Controller struct {
	deps map[string]Pinger
	log  *slog.Logger
}

// New создаёт системный контроллер. deps — именованные зависимости для readiness (postgres, redis, ...).
func New(deps map[string]Pinger, log *slog.Logger) *Controller {
	return &Controller{deps: deps, log: log}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	r.GET("/liveness", c.live)
	r.GET("/readyness", c.ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (c *Controller) live(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (c *Controller) ready(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(c.deps))
	for name := range c.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	failed := gin.H{}
	for _, name := range names {
		if err := c.deps[name].Ping(pingCtx); err != nil {
			c.log.Warn("ready check failed", "dependency", name, "error", err)
			failed[name] = err.Error()
		}
	}
	if len(failed) > 0 {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "errors": failed})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}
