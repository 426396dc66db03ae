package config

import (
	"log/slog"
	"testing"
	"time"
)

// setEnvs устанавливает переменные окружения на время теста.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

// minimalEnvs возвращает минимальный набор обязательных переменных.
func minimalEnvs() map[string]string {
	return map[string]string{
		"FR_DB_HOST":     "localhost",
		"FR_DB_NAME":     "filereg",
		"FR_DB_USER":     "filereg",
		"FR_DB_PASSWORD": "secret",
		"FR_JWT_SECRET":  "0123456789abcdef0123456789abcdef",
	}
}

func TestLoad_MinimalConfig(t *testing.T) {
	setEnvs(t, minimalEnvs())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	// Проверяем значения по умолчанию
	if cfg.Port != 3001 {
		t.Errorf("Port = %d, ожидается 3001", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, ожидается Info", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, ожидается json", cfg.LogFormat)
	}
	if cfg.DBPort != 5432 {
		t.Errorf("DBPort = %d, ожидается 5432", cfg.DBPort)
	}
	if cfg.DBSSLMode != "disable" {
		t.Errorf("DBSSLMode = %q, ожидается disable", cfg.DBSSLMode)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, ожидается 24h", cfg.TokenTTL)
	}
	if cfg.DefaultAdminPassword != "afropop123" {
		t.Errorf("DefaultAdminPassword = %q, ожидается afropop123", cfg.DefaultAdminPassword)
	}
	if cfg.MaxDirectSize != 5*1024*1024 {
		t.Errorf("MaxDirectSize = %d, ожидается 5 MiB", cfg.MaxDirectSize)
	}
	if cfg.CacheSize != 256 {
		t.Errorf("CacheSize = %d, ожидается 256", cfg.CacheSize)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, ожидается 5m", cfg.CacheTTL)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, ожидается 5s", cfg.ShutdownTimeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	envs := minimalEnvs()
	envs["FR_PORT"] = "8080"
	envs["FR_LOG_LEVEL"] = "debug"
	envs["FR_LOG_FORMAT"] = "text"
	envs["FR_TOKEN_TTL"] = "1h"
	envs["FR_MAX_DIRECT_SIZE"] = "1048576"
	envs["FR_CACHE_SIZE"] = "16"
	setEnvs(t, envs)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, ожидается 8080", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, ожидается Debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, ожидается text", cfg.LogFormat)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, ожидается 1h", cfg.TokenTTL)
	}
	if cfg.MaxDirectSize != 1048576 {
		t.Errorf("MaxDirectSize = %d, ожидается 1048576", cfg.MaxDirectSize)
	}
	if cfg.CacheSize != 16 {
		t.Errorf("CacheSize = %d, ожидается 16", cfg.CacheSize)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	required := []string{"FR_DB_HOST", "FR_DB_NAME", "FR_DB_USER", "FR_DB_PASSWORD", "FR_JWT_SECRET"}

	for _, missing := range required {
		t.Run(missing, func(t *testing.T) {
			envs := minimalEnvs()
			envs[missing] = ""
			setEnvs(t, envs)

			if _, err := Load(); err == nil {
				t.Errorf("Load() без %s должен вернуть ошибку", missing)
			}
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"порт вне диапазона", "FR_PORT", "99999"},
		{"порт не число", "FR_PORT", "abc"},
		{"недопустимый уровень логирования", "FR_LOG_LEVEL", "trace"},
		{"недопустимый формат логов", "FR_LOG_FORMAT", "xml"},
		{"недопустимый SSL-режим", "FR_DB_SSL_MODE", "allow"},
		{"короткий JWT-секрет", "FR_JWT_SECRET", "short"},
		{"некорректный TTL токена", "FR_TOKEN_TTL", "сутки"},
		{"короткий пароль по умолчанию", "FR_DEFAULT_ADMIN_PASSWORD", "abc"},
		{"неположительный потолок размера", "FR_MAX_DIRECT_SIZE", "0"},
		{"неположительный размер кэша", "FR_CACHE_SIZE", "-1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			envs := minimalEnvs()
			envs[tc.key] = tc.value
			setEnvs(t, envs)

			if _, err := Load(); err == nil {
				t.Errorf("Load() с %s=%q должен вернуть ошибку", tc.key, tc.value)
			}
		})
	}
}

func TestDatabaseDSN(t *testing.T) {
	setEnvs(t, minimalEnvs())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	want := "host=localhost port=5432 dbname=filereg user=filereg password=secret sslmode=disable"
	if got := cfg.DatabaseDSN(); got != want {
		t.Errorf("DatabaseDSN() = %q, ожидается %q", got, want)
	}
}
