// Точка входа сервера файлового реестра.
// Загружает конфигурацию, подключается к PostgreSQL, применяет миграции,
// инициализирует пароль администратора, создаёт сервисный слой и API handlers,
// запускает HTTP-сервер с JWT middleware и graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/bigkaa/gofilereg/internal/api/handlers"
	"github.com/bigkaa/gofilereg/internal/api/middleware"
	"github.com/bigkaa/gofilereg/internal/auth"
	"github.com/bigkaa/gofilereg/internal/config"
	"github.com/bigkaa/gofilereg/internal/database"
	"github.com/bigkaa/gofilereg/internal/repository"
	"github.com/bigkaa/gofilereg/internal/server"
	"github.com/bigkaa/gofilereg/internal/service"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Сервер файлового реестра запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	// 3. Применение миграций БД
	logger.Info("Применение миграций БД...")
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Подключение к PostgreSQL (pgxpool)
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// 5. Репозитории
	fileRepo := repository.NewFileRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)

	// 6. Сервисный слой
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := service.NewAuthService(settingRepo, issuer, logger)
	cache := service.NewRecordCache(cfg.CacheSize, cfg.CacheTTL)
	registrySvc := service.NewRegistryService(fileRepo, cache, cfg.MaxDirectSize, logger)

	// 7. Инициализация пароля администратора (первый запуск)
	if err := authSvc.EnsureDefault(ctx, cfg.DefaultAdminPassword); err != nil {
		logger.Error("Ошибка инициализации пароля администратора", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 8. API handlers и middleware
	apiHandler := handlers.NewAPIHandler(authSvc, registrySvc, logger)
	healthHandler := handlers.NewHealthHandler(database.NewReadinessChecker(pool))
	jwtAuth := middleware.NewJWTAuth(issuer, logger)

	// 9. HTTP-сервер с graceful shutdown
	router := server.NewRouter(apiHandler, healthHandler, jwtAuth, logger)
	srv := server.New(cfg, logger, router)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка HTTP-сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
