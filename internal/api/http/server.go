package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"kawaiiCalc/internal/api/http/middlewares"
)

// ServerConfig — настройки HTTP-сервера. Переменные: CALCULATOR_SERVER_HOST, CALCULATOR_SERVER_PORT, CALCULATOR_SERVER_CORS_ORIGINS.
type ServerConfig struct {
	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port string `envconfig:"PORT" default:"8080"`
	// CORSOrigins — страницы с клавиатурой калькулятора, которым разрешены запросы (через запятую).
	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173"`
}

// Addr возвращает "host:port".
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func (c ServerConfig) origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Controller — контракт: контроллер регистрирует свои маршруты на роутере.
type Controller interface {
	RegisterRoutes(r *gin.Engine)
}

// Server — API-сервер: конфиг и список контроллеров.
type Server struct {
	cfg         ServerConfig
	log         *slog.Logger
	controllers []Controller
	srv         *http.Server
}

// NewServer создаёт сервер с конфигом.
func NewServer(cfg ServerConfig, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{cfg: cfg, log: log}
}

// AddController добавляет один или несколько контроллеров.
func (s *Server) AddController(c ...Controller) {
	s.controllers = append(s.controllers, c...)
}

// Handler собирает роутер с мидлварями и маршрутами контроллеров.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	// Браузер шлёт preflight OPTIONS перед POST с JSON; без CORS-мидлвари он получит 404 и не отправит запрос.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.origins(),
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middlewares.RequestLogger(s.log))
	r.Use(middlewares.PrometheusMetrics)
	for _, c := range s.controllers {
		c.RegisterRoutes(r)
	}
	return r
}

// Start запускает сервер и блокируется до отмены ctx (SIGINT/SIGTERM), затем делает graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
