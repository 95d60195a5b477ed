package archive

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[uuid.UUID]Record)}
}

func (r *MemoryRepository) Save(_ context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.ID] = rec
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id uuid.UUID) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Summary, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec.Summary())
	}
	slices.SortFunc(out, func(a, b Summary) int {
		return b.RecordedAt.Compare(a.RecordedAt)
	})
	return out, nil
}
