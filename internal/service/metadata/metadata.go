package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/humanbelnik/kinopick/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/time/rate"
)

var (
	ErrNotFound          = errors.New("no metadata for title")
	ErrLookupUnavailable = errors.New("metadata lookup unavailable")
)

//go:generate mockery --name=Provider --output=./mocks/provider --filename=provider.go
type Provider interface {
	Fetch(ctx context.Context, title string) (model.Metadata, error)
}

//go:generate mockery --name=Cache --output=./mocks/cache --filename=cache.go
type Cache interface {
	Get(key string) (model.Metadata, bool, error)
	Set(key string, m model.Metadata) error
}

// Service is a best-effort lookup: every failure degrades to model.UnavailableMetadata.
type Service struct {
	provider Provider
	cache    Cache
	limiter  *rate.Limiter
	logger   *slog.Logger
}

type Option func(*Service)

func WithCache(c Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithRateLimit caps outbound lookups; rps <= 0 leaves them unlimited.
func WithRateLimit(rps float64) Option {
	return func(s *Service) {
		if rps > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(provider Provider, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Fetch(ctx context.Context, title string) model.Metadata {
	m, err := s.lookup(ctx, title)
	if err != nil {
		s.logger.Warn("metadata lookup failed",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return model.UnavailableMetadata()
	}
	return m
}

func (s *Service) lookup(ctx context.Context, title string) (model.Metadata, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Metadata{}, ErrNotFound
	}

	key := s.cacheKey(title)
	if s.cache != nil {
		m, ok, err := s.cache.Get(key)
		if err != nil {
			s.logger.Debug("metadata cache read failed", slog.String("error", err.Error()))
		} else if ok {
			return m, nil
		}
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return model.Metadata{}, fmt.Errorf("%w: %w", ErrLookupUnavailable, err)
		}
	}

	m, err := s.provider.Fetch(ctx, title)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.Metadata{}, err
		}
		return model.Metadata{}, fmt.Errorf("%w: %w", ErrLookupUnavailable, err)
	}
	if strings.TrimSpace(m.Description) == "" {
		m.Description = model.NoDescription
	}

	if s.cache != nil {
		if err := s.cache.Set(key, m); err != nil {
			s.logger.Debug("metadata cache write failed", slog.String("error", err.Error()))
		}
	}
	return m, nil
}

func (s *Service) cacheKey(title string) string {
	return strings.Join(strings.Fields(cases.Fold().String(title)), " ")
}
