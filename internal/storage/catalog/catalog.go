package storage_catalog

import (
	"context"
	"sync"

	"github.com/humanbelnik/kinopick/internal/model"
)

type Repository interface {
	Load(ctx context.Context) (model.Catalog, error)
	Save(ctx context.Context, c model.Catalog) error
}

// Storage caches the last loaded catalog in memory in front of a backing repository.
// Callers always get a private copy.
type Storage struct {
	repo Repository

	mu     sync.Mutex
	cached model.Catalog
	valid  bool
}

func New(repo Repository) *Storage {
	return &Storage{repo: repo}
}

// Load takes the fast path from cache, otherwise loads from the repository and fills the cache.
func (s *Storage) Load(ctx context.Context) (model.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.valid {
		return s.cached.Clone(), nil
	}

	c, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.cached = c.Clone()
	s.valid = true
	return c, nil
}

// Save writes through and drops the cache whatever the outcome, so the next Load
// observes what the repository actually holds.
func (s *Storage) Save(ctx context.Context, c model.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invalidate()
	return s.repo.Save(ctx, c)
}

func (s *Storage) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invalidate()
}

func (s *Storage) invalidate() {
	s.cached = nil
	s.valid = false
}
