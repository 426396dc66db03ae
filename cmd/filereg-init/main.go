// Утилита первичной настройки файлового реестра.
// Применяет миграции БД, устанавливает (или ротирует) пароль
// администратора и по флагу -seed заполняет реестр демонстрационными
// записями по одной на категорию.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bigkaa/gofilereg/internal/config"
	"github.com/bigkaa/gofilereg/internal/database"
	"github.com/bigkaa/gofilereg/internal/domain/model"
	"github.com/bigkaa/gofilereg/internal/repository"
	"github.com/bigkaa/gofilereg/internal/service"
)

func main() {
	password := flag.String("password", "", "новый пароль администратора; пустое значение — запрос из stdin")
	seed := flag.Bool("seed", false, "создать демонстрационные записи по одной на категорию")
	flag.Parse()

	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := config.SetupLogger(cfg)

	// 2. Применение миграций БД
	logger.Info("Применение миграций БД...")
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 3. Подключение к PostgreSQL
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	settingRepo := repository.NewSettingRepository(pool)
	fileRepo := repository.NewFileRepository(pool)
	authSvc := service.NewAuthService(settingRepo, nil, logger)

	// 4. Установка пароля администратора
	pw := *password
	if pw == "" {
		pw, err = readPassword()
		if err != nil {
			logger.Error("Ошибка чтения пароля", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	if err := authSvc.SetPassword(ctx, pw); err != nil {
		logger.Error("Ошибка установки пароля", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Пароль администратора установлен")

	// 5. Демонстрационные записи (по запросу)
	if *seed {
		if err := seedRecords(ctx, fileRepo); err != nil {
			logger.Error("Ошибка заполнения реестра", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Демонстрационные записи созданы",
			slog.Int("count", len(model.Categories)),
		)
	}
}

// readPassword запрашивает пароль из stdin.
func readPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Новый пароль администратора: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("чтение stdin: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// seedRecords создаёт по одной внешней ссылке на каждую категорию.
func seedRecords(ctx context.Context, files repository.FileRepository) error {
	for _, category := range model.Categories {
		url := fmt.Sprintf("https://example.com/%s", strings.ToLower(category))
		record := &model.FileRecord{
			Filename:     category,
			OriginalName: category,
			Category:     category,
			FileType:     "text/uri-list",
			StorageType:  model.StorageLink,
			FileURL:      &url,
		}
		if err := files.Create(ctx, record); err != nil {
			return fmt.Errorf("категория %s: %w", category, err)
		}
	}
	return nil
}
