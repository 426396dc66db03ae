package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/gofilereg/internal/domain/model"
)

// summaryColumns — столбцы таблицы files без file_data.
// Список отдаётся без бинарного содержимого ради экономии трафика.
const summaryColumns = `id, filename, original_name, category, file_type,
	file_size, storage_type, file_url, description, created_at, updated_at`

// fileRepo — реализация FileRepository поверх PostgreSQL.
type fileRepo struct {
	db DBTX
}

// NewFileRepository создаёт репозиторий файлового реестра.
func NewFileRepository(db DBTX) FileRepository {
	return &fileRepo{db: db}
}

func (r *fileRepo) Create(ctx context.Context, f *model.FileRecord) error {
	query := `
		INSERT INTO files (filename, original_name, category, file_type,
			file_size, storage_type, file_data, file_url, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		f.Filename, f.OriginalName, f.Category, f.FileType,
		f.FileSize, f.StorageType, f.FileData, f.FileURL, f.Description,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка вставки записи файла: %w", err)
	}
	return nil
}

func (r *fileRepo) GetByID(ctx context.Context, id int64) (*model.FileRecord, error) {
	query := `
		SELECT id, filename, original_name, category, file_type,
			file_size, storage_type, file_data, file_url, description,
			created_at, updated_at
		FROM files
		WHERE id = $1`

	f := &model.FileRecord{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.Filename, &f.OriginalName, &f.Category, &f.FileType,
		&f.FileSize, &f.StorageType, &f.FileData, &f.FileURL, &f.Description,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения файла: %w", err)
	}
	return f, nil
}

func (r *fileRepo) List(ctx context.Context, category string) ([]*model.FileRecord, error) {
	// Tie-break по id: записи, созданные в один момент,
	// сохраняют детерминированный порядок.
	query := fmt.Sprintf(`
		SELECT %s
		FROM files
		ORDER BY created_at DESC, id DESC`, summaryColumns)
	args := []any{}

	if category != "" {
		query = fmt.Sprintf(`
			SELECT %s
			FROM files
			WHERE category = $1
			ORDER BY created_at DESC, id DESC`, summaryColumns)
		args = append(args, category)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка файлов: %w", err)
	}
	defer rows.Close()

	var result []*model.FileRecord
	for rows.Next() {
		f := &model.FileRecord{}
		if err := rows.Scan(
			&f.ID, &f.Filename, &f.OriginalName, &f.Category, &f.FileType,
			&f.FileSize, &f.StorageType, &f.FileURL, &f.Description,
			&f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования файла: %w", err)
		}
		result = append(result, f)
	}
	return result, rows.Err()
}

func (r *fileRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления файла: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *fileRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT category FROM files ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения категорий: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("ошибка сканирования категории: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
