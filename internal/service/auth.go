// auth.go — сервис аутентификации: хранилище учётных данных и
// выдача сессионных токенов.
// Единственная учётная запись — пароль администратора (bcrypt-хэш
// в auth_settings); сессия — stateless HS256 JWT с ролью admin.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bigkaa/gofilereg/internal/auth"
	"github.com/bigkaa/gofilereg/internal/repository"
)

// AuthService — проверка пароля администратора и выдача токенов.
type AuthService struct {
	settings repository.SettingRepository
	issuer   *auth.TokenIssuer
	logger   *slog.Logger
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(
	settings repository.SettingRepository,
	issuer *auth.TokenIssuer,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		settings: settings,
		issuer:   issuer,
		logger:   logger.With(slog.String("component", "auth_service")),
	}
}

// EnsureDefault инициализирует пароль администратора при первом запуске.
// Если хэш уже сохранён — ничего не делает. Это единственная мутация
// учётных данных вне явной административной ротации.
func (s *AuthService) EnsureDefault(ctx context.Context, defaultPassword string) error {
	_, err := s.settings.GetPasswordHash(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("проверка пароля администратора: %w", err)
	}

	hash, err := auth.HashPassword(defaultPassword)
	if err != nil {
		return fmt.Errorf("хэширование пароля по умолчанию: %w", err)
	}
	if err := s.settings.SetPasswordHash(ctx, hash); err != nil {
		return fmt.Errorf("сохранение пароля по умолчанию: %w", err)
	}

	s.logger.Warn("Установлен пароль администратора по умолчанию, смените его через filereg-init")
	return nil
}

// Login проверяет пароль и выдаёт bearer-токен с ролью admin.
// Пустой пароль — ErrValidation; отсутствие сохранённого хэша —
// ErrNotConfigured; несовпадение — ErrInvalidPassword.
func (s *AuthService) Login(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: пароль обязателен", ErrValidation)
	}

	hash, err := s.settings.GetPasswordHash(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrNotConfigured
		}
		return "", fmt.Errorf("чтение пароля администратора: %w", err)
	}

	if !auth.VerifyPassword(password, hash) {
		s.logger.Warn("Неудачная попытка входа")
		return "", ErrInvalidPassword
	}

	token, err := s.issuer.Issue()
	if err != nil {
		return "", fmt.Errorf("выдача токена: %w", err)
	}

	s.logger.Info("Администратор вошёл в систему")
	return token, nil
}

// SetPassword заменяет пароль администратора (административная ротация).
// Пароль короче минимальной длины — ErrValidation.
func (s *AuthService) SetPassword(ctx context.Context, newPassword string) error {
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return fmt.Errorf("%w: %s", ErrValidation, err.Error())
		}
		return fmt.Errorf("хэширование нового пароля: %w", err)
	}

	if err := s.settings.SetPasswordHash(ctx, hash); err != nil {
		return fmt.Errorf("сохранение нового пароля: %w", err)
	}

	s.logger.Info("Пароль администратора обновлён")
	return nil
}
