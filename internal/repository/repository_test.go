package repository

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bigkaa/gofilereg/internal/config"
	"github.com/bigkaa/gofilereg/internal/database"
	"github.com/bigkaa/gofilereg/internal/domain/model"
)

// setupTestDB запускает PostgreSQL контейнер, применяет миграции.
// Возвращает pgxpool.Pool; контейнер и пул закрываются через t.Cleanup.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("Пропуск интеграционного теста: TEST_INTEGRATION не установлена")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("filereg_test"),
		postgres.WithUsername("filereg"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Не удалось запустить PostgreSQL контейнер: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Ошибка остановки контейнера: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Не удалось получить host контейнера: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Не удалось получить port контейнера: %v", err)
	}

	// Настраиваем env для config.Load()
	os.Setenv("FR_DB_HOST", host)
	os.Setenv("FR_DB_PORT", port.Port())
	os.Setenv("FR_DB_NAME", "filereg_test")
	os.Setenv("FR_DB_USER", "filereg")
	os.Setenv("FR_DB_PASSWORD", "test-password")
	os.Setenv("FR_DB_SSL_MODE", "disable")
	os.Setenv("FR_JWT_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// Применяем миграции
	if err := database.Migrate(cfg, logger); err != nil {
		t.Fatalf("Ошибка миграций: %v", err)
	}

	// Подключаемся
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		t.Fatalf("Ошибка подключения: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	return pool
}

// --- Тесты FileRepository ---

func TestFileCRUD(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewFileRepository(pool)

	data := []byte("содержимое тестового файла")
	description := "тестовая запись"
	f := &model.FileRecord{
		Filename:     "1700000000000_report.pdf",
		OriginalName: "report.pdf",
		Category:     "08_Templates",
		FileType:     "application/pdf",
		FileSize:     int64(len(data)),
		StorageType:  model.StorageDirect,
		FileData:     data,
		Description:  &description,
	}

	// Create
	if err := repo.Create(ctx, f); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}
	if f.ID == 0 {
		t.Error("ID не установлен")
	}
	if f.CreatedAt.IsZero() || f.UpdatedAt.IsZero() {
		t.Error("временные метки не установлены")
	}

	// GetByID — полная запись с содержимым
	got, err := repo.GetByID(ctx, f.ID)
	if err != nil {
		t.Fatalf("GetByID() ошибка: %v", err)
	}
	if got.OriginalName != "report.pdf" {
		t.Errorf("OriginalName = %q, хотели report.pdf", got.OriginalName)
	}
	if !bytes.Equal(got.FileData, data) {
		t.Error("GetByID() вернул не то содержимое")
	}
	if got.Description == nil || *got.Description != description {
		t.Errorf("Description = %v, хотели %q", got.Description, description)
	}

	// List — без содержимого
	records, err := repo.List(ctx, "")
	if err != nil {
		t.Fatalf("List() ошибка: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("List() вернул %d записей, хотели 1", len(records))
	}
	if records[0].FileData != nil {
		t.Error("List() не должен возвращать file_data")
	}
	if records[0].FileSize != int64(len(data)) {
		t.Errorf("FileSize = %d, хотели %d", records[0].FileSize, len(data))
	}

	// Delete
	if err := repo.Delete(ctx, f.ID); err != nil {
		t.Fatalf("Delete() ошибка: %v", err)
	}
	if _, err := repo.GetByID(ctx, f.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID(удалённый) = %v, хотели ErrNotFound", err)
	}
	if err := repo.Delete(ctx, f.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(удалённый) = %v, хотели ErrNotFound", err)
	}
}

func TestFileLink(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewFileRepository(pool)

	url := "https://example.com/gallery/pic.png"
	f := &model.FileRecord{
		Filename:     "pic.png",
		OriginalName: "pic.png",
		Category:     "02_Images",
		FileType:     "application/octet-stream",
		StorageType:  model.StorageLink,
		FileURL:      &url,
	}

	if err := repo.Create(ctx, f); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}

	got, err := repo.GetByID(ctx, f.ID)
	if err != nil {
		t.Fatalf("GetByID() ошибка: %v", err)
	}
	if got.StorageType != model.StorageLink {
		t.Errorf("StorageType = %q, хотели link", got.StorageType)
	}
	if got.FileURL == nil || *got.FileURL != url {
		t.Errorf("FileURL = %v, хотели %q", got.FileURL, url)
	}
	if got.FileData != nil {
		t.Error("link-запись не должна содержать file_data")
	}
}

func TestFileListOrderAndFilter(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewFileRepository(pool)

	urls := []struct {
		category string
		name     string
	}{
		{"02_Images", "a.png"},
		{"03_Scripts_&_Text", "b.mp4"},
		{"02_Images", "c.png"},
	}
	for _, u := range urls {
		url := "https://example.com/" + u.name
		f := &model.FileRecord{
			Filename:     u.name,
			OriginalName: u.name,
			Category:     u.category,
			FileType:     "application/octet-stream",
			StorageType:  model.StorageLink,
			FileURL:      &url,
		}
		if err := repo.Create(ctx, f); err != nil {
			t.Fatalf("Create(%s) ошибка: %v", u.name, err)
		}
	}

	// Новые первыми: при равных created_at — по убыванию id
	all, err := repo.List(ctx, "")
	if err != nil {
		t.Fatalf("List() ошибка: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List() вернул %d записей, хотели 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].CreatedAt.Equal(all[i].CreatedAt) && all[i-1].ID < all[i].ID {
			t.Error("записи не отсортированы по убыванию id при равных created_at")
		}
		if all[i-1].CreatedAt.Before(all[i].CreatedAt) {
			t.Error("записи не отсортированы: новые должны быть первыми")
		}
	}

	// Фильтр по категории
	images, err := repo.List(ctx, "02_Images")
	if err != nil {
		t.Fatalf("List(02_Images) ошибка: %v", err)
	}
	if len(images) != 2 {
		t.Errorf("List(02_Images) вернул %d записей, хотели 2", len(images))
	}

	// Categories — по возрастанию
	categories, err := repo.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories() ошибка: %v", err)
	}
	want := []string{"02_Images", "03_Scripts_&_Text"}
	if len(categories) != len(want) {
		t.Fatalf("Categories() = %v, хотели %v", categories, want)
	}
	for i := range want {
		if categories[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, хотели %q", i, categories[i], want[i])
		}
	}
}

// --- Тесты SettingRepository ---

func TestSettingUpsert(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewSettingRepository(pool)

	// Пустая таблица — ErrNotFound
	if _, err := repo.GetPasswordHash(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPasswordHash(пустая) = %v, хотели ErrNotFound", err)
	}

	// Первая запись
	if err := repo.SetPasswordHash(ctx, "hash-v1"); err != nil {
		t.Fatalf("SetPasswordHash() ошибка: %v", err)
	}
	hash, err := repo.GetPasswordHash(ctx)
	if err != nil {
		t.Fatalf("GetPasswordHash() ошибка: %v", err)
	}
	if hash != "hash-v1" {
		t.Errorf("hash = %q, хотели hash-v1", hash)
	}

	// Upsert — перезапись
	if err := repo.SetPasswordHash(ctx, "hash-v2"); err != nil {
		t.Fatalf("повторный SetPasswordHash() ошибка: %v", err)
	}
	hash, err = repo.GetPasswordHash(ctx)
	if err != nil {
		t.Fatalf("GetPasswordHash() ошибка: %v", err)
	}
	if hash != "hash-v2" {
		t.Errorf("hash = %q, хотели hash-v2", hash)
	}
}
