// memory.go — in-memory реализации репозиториев.
// Подменяют PostgreSQL в unit-тестах сервисного слоя и handlers;
// контракт (порядок списка, ErrNotFound, отсутствие file_data в списке)
// совпадает с SQL-реализациями.
package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bigkaa/gofilereg/internal/domain/model"
)

// MemoryFileRepository — потокобезопасное in-memory хранилище файлов.
type MemoryFileRepository struct {
	mu     sync.Mutex
	files  map[int64]*model.FileRecord
	nextID int64
}

// NewMemoryFileRepository создаёт пустое in-memory хранилище файлов.
func NewMemoryFileRepository() *MemoryFileRepository {
	return &MemoryFileRepository{
		files:  make(map[int64]*model.FileRecord),
		nextID: 1,
	}
}

func (r *MemoryFileRepository) Create(_ context.Context, f *model.FileRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	f.ID = r.nextID
	r.nextID++
	f.CreatedAt = now
	f.UpdatedAt = now

	stored := *f
	r.files[f.ID] = &stored
	return nil
}

func (r *MemoryFileRepository) GetByID(_ context.Context, id int64) (*model.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.files[id]
	if !ok {
		return nil, ErrNotFound
	}
	result := *f
	return &result, nil
}

func (r *MemoryFileRepository) List(_ context.Context, category string) ([]*model.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*model.FileRecord
	for _, f := range r.files {
		if category != "" && f.Category != category {
			continue
		}
		summary := *f
		summary.FileData = nil
		result = append(result, &summary)
	}

	// Новые первыми, tie-break по убыванию id
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *MemoryFileRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.files[id]; !ok {
		return ErrNotFound
	}
	delete(r.files, id)
	return nil
}

func (r *MemoryFileRepository) Categories(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{})
	for _, f := range r.files {
		seen[f.Category] = struct{}{}
	}
	result := make([]string, 0, len(seen))
	for c := range seen {
		result = append(result, c)
	}
	sort.Strings(result)
	return result, nil
}

// MemorySettingRepository — in-memory хранилище настроек аутентификации.
type MemorySettingRepository struct {
	mu   sync.Mutex
	hash string
}

// NewMemorySettingRepository создаёт пустое in-memory хранилище настроек.
func NewMemorySettingRepository() *MemorySettingRepository {
	return &MemorySettingRepository{}
}

func (r *MemorySettingRepository) GetPasswordHash(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hash == "" {
		return "", ErrNotFound
	}
	return r.hash, nil
}

func (r *MemorySettingRepository) SetPasswordHash(_ context.Context, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.hash = hash
	return nil
}
