// Пакет server — HTTP-сервер реестра файлов с graceful shutdown.
// Без TLS — HTTP внутри кластера, TLS termination на reverse proxy.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	apierrors "github.com/bigkaa/gofilereg/internal/api/errors"
	"github.com/bigkaa/gofilereg/internal/api/handlers"
	"github.com/bigkaa/gofilereg/internal/api/middleware"
	"github.com/bigkaa/gofilereg/internal/config"
)

// Server — HTTP-сервер реестра файлов.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// NewRouter собирает chi-роутер со всеми маршрутами и middleware.
// Вынесен отдельно от New, чтобы тесты могли гонять запросы
// через httptest без запуска настоящего сервера.
func NewRouter(api *handlers.APIHandler, health *handlers.HealthHandler, jwtAuth *middleware.JWTAuth, logger *slog.Logger) chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestLogger(logger))
	// CORS открыт для всех origins: API обслуживает админ-панель,
	// которая может быть развёрнута на любом хосте.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apierrors.NotFound(w, "Маршрут не найден")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		// cors.Handler перехватывает только preflight с заголовком
		// Access-Control-Request-Method; голый OPTIONS доходит сюда
		// и отвечается успехом, а не 405.
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.WriteHeader(http.StatusOK)
			return
		}
		apierrors.MethodNotAllowed(w, "Метод не поддерживается")
	})

	// Публичные маршруты.
	router.Post("/api/login", api.Login)
	router.Get("/api/health", health.Health)
	router.Get("/api/ready", health.Ready)
	router.Get("/metrics", health.Metrics)

	// Маршруты реестра — только с валидным токеном.
	router.Group(func(r chi.Router) {
		r.Use(jwtAuth.Middleware())

		r.Get("/api/files", api.ListFiles)
		r.Post("/api/files", api.CreateFile)
		r.Get("/api/files/{id}", api.GetFile)
		r.Delete("/api/files/{id}", api.DeleteFile)
		r.Get("/api/categories", api.ListCategories)
	})

	return router
}

// New создаёт новый HTTP-сервер с настроенными routes и middleware.
func New(cfg *config.Config, logger *slog.Logger, router chi.Router) *Server {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	// Канал для ошибок сервера
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
