// files.go — обработчики /api/files и /api/categories.
// Список, скачивание/redirect, создание (multipart или JSON), удаление.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/gofilereg/internal/api/errors"
	"github.com/bigkaa/gofilereg/internal/domain/model"
	"github.com/bigkaa/gofilereg/internal/service"
)

// maxUploadBytes — жёсткий предел чтения тела запроса (MaxBytesReader).
// Выше потолка прямого хранения: превышение лимита реестра должно
// дойти до сервисного слоя и вернуться понятной ошибкой, а тела
// больше предела обрываются на чтении, не буферизуясь в память.
const maxUploadBytes = 50 * 1024 * 1024

// ListFiles — GET /api/files.
// Возвращает записи без бинарного содержимого, новые первыми.
// Query-параметр category фильтрует по точному совпадению.
func (h *APIHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	records, err := h.registry.List(r.Context(), category)
	if err != nil {
		h.logger.Error("Ошибка получения списка файлов", "error", err)
		apierrors.InternalError(w, "Ошибка получения списка файлов")
		return
	}

	items := make([]fileResponse, len(records))
	for i, f := range records {
		items[i] = mapFileRecord(f)
	}

	writeJSON(w, http.StatusOK, items)
}

// GetFile — GET /api/files/{id}.
// direct — бинарное содержимое с Content-Type/Content-Disposition,
// link — 302 redirect на внешний URL.
func (h *APIHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.fileID(w, r)
	if !ok {
		return
	}

	record, err := h.registry.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			apierrors.NotFound(w, "Файл не найден")
		case errors.Is(err, service.ErrDataUnavailable):
			apierrors.NotFound(w, "Данные файла недоступны")
		default:
			h.logger.Error("Ошибка получения файла", "id", id, "error", err)
			apierrors.InternalError(w, "Ошибка получения файла")
		}
		return
	}

	if record.StorageType == model.StorageLink {
		http.Redirect(w, r, *record.FileURL, http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", record.FileType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", record.OriginalName))
	w.Header().Set("Content-Length", strconv.FormatInt(record.FileSize, 10))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(record.FileData)
}

// createRequest — JSON-тело POST /api/files для link-записей.
type createRequest struct {
	Category    string  `json:"category"`
	FileURL     string  `json:"file_url"`
	Description *string `json:"description"`
}

// createResponse — метаданные созданной записи плюс сообщение.
type createResponse struct {
	fileResponse
	Message string `json:"message"`
}

// CreateFile — POST /api/files.
// multipart/form-data: поле file (бинарный payload) либо file_url,
// плюс category (обязательно) и description.
// application/json: file_url + category + description.
func (h *APIHandler) CreateFile(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeCreate(w, r)
	if !ok {
		return
	}

	record, err := h.registry.Create(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation),
			errors.Is(err, service.ErrPayloadTooLarge):
			apierrors.ValidationError(w, err.Error())
		default:
			h.logger.Error("Ошибка создания записи файла", "error", err)
			apierrors.InternalError(w, "Ошибка создания записи файла")
		}
		return
	}

	writeJSON(w, http.StatusOK, createResponse{
		fileResponse: mapFileRecord(record),
		Message:      "Файл зарегистрирован",
	})
}

// decodeCreate разбирает multipart- или JSON-тело в CreateInput.
// При ошибке пишет ответ и возвращает ok=false.
func (h *APIHandler) decodeCreate(w http.ResponseWriter, r *http.Request) (service.CreateInput, bool) {
	var input service.CreateInput

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				apierrors.ValidationError(w, "Тело запроса превышает допустимый размер")
				return input, false
			}
			apierrors.ValidationError(w, "Некорректное multipart-тело")
			return input, false
		}

		input.Category = r.FormValue("category")
		input.FileURL = r.FormValue("file_url")
		if desc := r.FormValue("description"); desc != "" {
			input.Description = &desc
		}

		file, header, err := r.FormFile("file")
		if err == nil {
			defer file.Close()
			data, readErr := io.ReadAll(file)
			if readErr != nil {
				h.logger.Error("Ошибка чтения загруженного файла", "error", readErr)
				apierrors.InternalError(w, "Ошибка чтения загруженного файла")
				return input, false
			}
			input.Data = data
			input.OriginalName = header.Filename
			input.ContentType = header.Header.Get("Content-Type")
		} else if !errors.Is(err, http.ErrMissingFile) {
			apierrors.ValidationError(w, "Некорректное поле file")
			return input, false
		}

		return input, true
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			apierrors.ValidationError(w, "Тело запроса превышает допустимый размер")
			return input, false
		}
		apierrors.ValidationError(w, "Некорректный JSON")
		return input, false
	}

	input.Category = req.Category
	input.FileURL = req.FileURL
	input.Description = req.Description
	return input, true
}

// DeleteFile — DELETE /api/files/{id}.
func (h *APIHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.fileID(w, r)
	if !ok {
		return
	}

	if err := h.registry.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "Файл не найден")
			return
		}
		h.logger.Error("Ошибка удаления файла", "id", id, "error", err)
		apierrors.InternalError(w, "Ошибка удаления файла")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Файл удалён"})
}

// ListCategories — GET /api/categories.
// Различные категории реестра по возрастанию.
func (h *APIHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.registry.Categories(r.Context())
	if err != nil {
		h.logger.Error("Ошибка получения категорий", "error", err)
		apierrors.InternalError(w, "Ошибка получения категорий")
		return
	}

	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// fileID извлекает и валидирует path-параметр {id}.
// При ошибке пишет 400 и возвращает ok=false.
func (h *APIHandler) fileID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		apierrors.ValidationError(w, "Некорректный идентификатор файла")
		return 0, false
	}
	return id, true
}
