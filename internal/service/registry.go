// registry.go — сервис файлового реестра.
// Операции над единственным хранилищем: список, получение, создание,
// удаление, категории. Каждая операция — одна атомарная единица работы,
// межзаписных транзакций нет.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"time"

	"github.com/bigkaa/gofilereg/internal/domain/model"
	"github.com/bigkaa/gofilereg/internal/repository"
)

// externalLinkName — имя по умолчанию для ссылки без сегмента пути.
const externalLinkName = "External Link"

// CreateInput — валидированный вход операции создания записи.
// Должно быть задано ровно одно из Data/FileURL.
type CreateInput struct {
	// Category — категория, обязательна
	Category string
	// Description — описание, опционально
	Description *string
	// Data — бинарное содержимое загруженного файла
	Data []byte
	// OriginalName — имя загруженного файла
	OriginalName string
	// ContentType — MIME-тип загруженного файла
	ContentType string
	// FileURL — внешний URL вместо загрузки
	FileURL string
}

// RegistryService — бизнес-логика файлового реестра.
type RegistryService struct {
	files         repository.FileRepository
	cache         *RecordCache
	maxDirectSize int64
	logger        *slog.Logger
}

// NewRegistryService создаёт сервис реестра.
// maxDirectSize — потолок размера файла для прямого хранения в байтах.
func NewRegistryService(
	files repository.FileRepository,
	cache *RecordCache,
	maxDirectSize int64,
	logger *slog.Logger,
) *RegistryService {
	return &RegistryService{
		files:         files,
		cache:         cache,
		maxDirectSize: maxDirectSize,
		logger:        logger.With(slog.String("component", "registry_service")),
	}
}

// List возвращает записи реестра без бинарного содержимого,
// новые первыми. category == "" — весь реестр.
func (s *RegistryService) List(ctx context.Context, category string) ([]*model.FileRecord, error) {
	records, err := s.files.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("получение списка файлов: %w", err)
	}
	return records, nil
}

// Get возвращает полную запись, включая payload или URL.
// Запись с payload'ом, не соответствующим storage_type,
// считается повреждённой — ErrDataUnavailable, а не ErrNotFound.
func (s *RegistryService) Get(ctx context.Context, id int64) (*model.FileRecord, error) {
	record, ok := s.cache.Get(id)
	if !ok {
		var err error
		record, err = s.files.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("получение файла: %w", err)
		}
		s.cache.Set(id, record)
	}

	switch record.StorageType {
	case model.StorageDirect:
		if len(record.FileData) == 0 {
			return nil, ErrDataUnavailable
		}
	case model.StorageLink:
		if record.FileURL == nil || *record.FileURL == "" {
			return nil, ErrDataUnavailable
		}
	default:
		return nil, ErrDataUnavailable
	}

	return record, nil
}

// Create регистрирует новую запись: либо бинарный файл (direct),
// либо внешняя ссылка (link). Возвращает запись с назначенным id
// и временными метками; payload обратно не отдаётся.
func (s *RegistryService) Create(ctx context.Context, input CreateInput) (*model.FileRecord, error) {
	if input.Category == "" {
		return nil, fmt.Errorf("%w: категория обязательна", ErrValidation)
	}

	hasFile := len(input.Data) > 0
	hasURL := input.FileURL != ""

	switch {
	case !hasFile && !hasURL:
		return nil, fmt.Errorf("%w: требуется файл или URL", ErrValidation)
	case hasFile && hasURL:
		return nil, fmt.Errorf("%w: файл и URL одновременно недопустимы", ErrValidation)
	}

	record := &model.FileRecord{
		Category:    input.Category,
		Description: input.Description,
	}

	if hasFile {
		size := int64(len(input.Data))
		if size > s.maxDirectSize {
			return nil, fmt.Errorf("%w: максимум %d МиБ, используйте внешний URL",
				ErrPayloadTooLarge, s.maxDirectSize/(1024*1024))
		}

		record.StorageType = model.StorageDirect
		record.OriginalName = input.OriginalName
		// Префикс-метка времени защищает от коллизий имён
		record.Filename = fmt.Sprintf("%d_%s", time.Now().UnixMilli(), input.OriginalName)
		record.FileType = input.ContentType
		if record.FileType == "" {
			record.FileType = "application/octet-stream"
		}
		record.FileSize = size
		record.FileData = input.Data
	} else {
		name := nameFromURL(input.FileURL)
		fileURL := input.FileURL

		record.StorageType = model.StorageLink
		record.OriginalName = name
		record.Filename = name
		record.FileType = "application/octet-stream"
		record.FileSize = 0
		record.FileURL = &fileURL
	}

	if err := s.files.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("создание записи файла: %w", err)
	}

	s.cache.Set(record.ID, record)

	s.logger.Info("Файл зарегистрирован",
		slog.Int64("id", record.ID),
		slog.String("category", record.Category),
		slog.String("storage_type", record.StorageType),
		slog.Int64("size", record.FileSize),
	)

	return record, nil
}

// Delete удаляет запись реестра и инвалидирует кэш.
func (s *RegistryService) Delete(ctx context.Context, id int64) error {
	if err := s.files.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("удаление файла: %w", err)
	}

	s.cache.Delete(id)

	s.logger.Info("Файл удалён", slog.Int64("id", id))
	return nil
}

// Categories возвращает различные категории реестра по возрастанию.
func (s *RegistryService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.files.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение категорий: %w", err)
	}
	return categories, nil
}

// nameFromURL выводит имя записи из последнего сегмента пути URL.
// URL без осмысленного сегмента пути получает обобщённое имя.
func nameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return externalLinkName
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return externalLinkName
	}
	return name
}
