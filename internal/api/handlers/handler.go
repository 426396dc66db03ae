// handler.go — основной обработчик API файлового реестра.
// Делегирует запросы в сервисный слой и отображает доменные модели
// в JSON-ответы.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/bigkaa/gofilereg/internal/domain/model"
	"github.com/bigkaa/gofilereg/internal/service"
)

// APIHandler — обработчик всех endpoints файлового реестра.
type APIHandler struct {
	auth     *service.AuthService
	registry *service.RegistryService
	logger   *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(
	authSvc *service.AuthService,
	registry *service.RegistryService,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		auth:     authSvc,
		registry: registry,
		logger:   logger.With(slog.String("component", "api_handler")),
	}
}

// fileResponse — представление записи файла в API.
// Бинарное содержимое никогда не сериализуется в JSON.
type fileResponse struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	Category     string    `json:"category"`
	FileType     string    `json:"file_type"`
	FileSize     int64     `json:"file_size"`
	StorageType  string    `json:"storage_type"`
	FileURL      *string   `json:"file_url,omitempty"`
	Description  *string   `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// mapFileRecord конвертирует domain model в API-тип.
func mapFileRecord(f *model.FileRecord) fileResponse {
	return fileResponse{
		ID:           f.ID,
		Filename:     f.Filename,
		OriginalName: f.OriginalName,
		Category:     f.Category,
		FileType:     f.FileType,
		FileSize:     f.FileSize,
		StorageType:  f.StorageType,
		FileURL:      f.FileURL,
		Description:  f.Description,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
