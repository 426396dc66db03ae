package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// settingAdminPassword — имя настройки с хэшем пароля администратора.
const settingAdminPassword = "admin_password"

// settingRepo — реализация SettingRepository поверх PostgreSQL.
type settingRepo struct {
	db DBTX
}

// NewSettingRepository создаёт репозиторий настроек аутентификации.
func NewSettingRepository(db DBTX) SettingRepository {
	return &settingRepo{db: db}
}

func (r *settingRepo) GetPasswordHash(ctx context.Context) (string, error) {
	var hash string
	err := r.db.QueryRow(ctx,
		`SELECT setting_value FROM auth_settings WHERE setting_name = $1`,
		settingAdminPassword,
	).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("ошибка чтения хэша пароля: %w", err)
	}
	return hash, nil
}

func (r *settingRepo) SetPasswordHash(ctx context.Context, hash string) error {
	query := `
		INSERT INTO auth_settings (setting_name, setting_value)
		VALUES ($1, $2)
		ON CONFLICT (setting_name) DO UPDATE SET
			setting_value = EXCLUDED.setting_value,
			updated_at = now()`

	if _, err := r.db.Exec(ctx, query, settingAdminPassword, hash); err != nil {
		return fmt.Errorf("ошибка сохранения хэша пароля: %w", err)
	}
	return nil
}
