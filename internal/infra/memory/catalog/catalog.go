package infra_memory_catalog

import (
	"context"
	"sync"

	"github.com/humanbelnik/kinopick/internal/model"
)

// Storage keeps the catalog in process memory. Used when no persistent backend is configured.
type Storage struct {
	mu      sync.RWMutex
	catalog model.Catalog

	// Saves counts successful writes.
	saves int
}

func New(seed model.Catalog) *Storage {
	return &Storage{catalog: seed.Clone()}
}

func (s *Storage) Load(ctx context.Context) (model.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.catalog.Clone(), nil
}

func (s *Storage) Save(ctx context.Context, c model.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalog = c.Clone()
	s.saves++
	return nil
}

func (s *Storage) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.saves
}
