// Пакет repository — слой доступа к данным PostgreSQL.
// Все запросы — чистый SQL через pgx, без ORM.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bigkaa/gofilereg/internal/domain/model"
)

// Ошибки слоя репозиториев.
var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("запись не найдена")
)

// DBTX — интерфейс для выполнения SQL-запросов.
// Реализуется как *pgxpool.Pool, так и pgx.Tx, что позволяет
// использовать репозитории как внутри, так и вне транзакций.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// FileRepository — CRUD для таблицы files.
// Единственное хранилище реестра; внедряется в сервисный слой,
// что позволяет подменять его in-memory реализацией в тестах.
type FileRepository interface {
	// Create вставляет запись и заполняет ID, CreatedAt, UpdatedAt.
	Create(ctx context.Context, f *model.FileRecord) error
	// GetByID возвращает полную запись, включая file_data.
	GetByID(ctx context.Context, id int64) (*model.FileRecord, error)
	// List возвращает записи без file_data, новые первыми.
	// category == "" — без фильтрации.
	List(ctx context.Context, category string) ([]*model.FileRecord, error)
	// Delete удаляет запись; 0 затронутых строк — ErrNotFound.
	Delete(ctx context.Context, id int64) error
	// Categories возвращает различные значения категорий по возрастанию.
	Categories(ctx context.Context) ([]string, error)
}

// SettingRepository — доступ к таблице auth_settings.
// Используется единственная настройка: хэш пароля администратора.
type SettingRepository interface {
	// GetPasswordHash возвращает хэш пароля администратора или ErrNotFound.
	GetPasswordHash(ctx context.Context) (string, error)
	// SetPasswordHash сохраняет (upsert) хэш пароля администратора.
	SetPasswordHash(ctx context.Context, hash string) error
}
