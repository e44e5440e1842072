package metadata

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/humanbelnik/kinopick/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	cache_mocks "github.com/humanbelnik/kinopick/internal/service/metadata/mocks/cache"
	provider_mocks "github.com/humanbelnik/kinopick/internal/service/metadata/mocks/provider"
)

type MetadataServiceUnitSuite struct {
	suite.Suite
}

type resources struct {
	provider *provider_mocks.Provider
	cache    *cache_mocks.Cache
	ctx      context.Context
}

func initResources(t provider.T) *resources {
	return &resources{
		provider: provider_mocks.NewProvider(t),
		cache:    cache_mocks.NewCache(t),
		ctx:      context.Background(),
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var alien = model.Metadata{
	PosterURL:   "https://image.tmdb.org/t/p/w500/alien.jpg",
	Description: "The crew of a commercial spacecraft encounters a deadly lifeform.",
}

func (s *MetadataServiceUnitSuite) TestFetch(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		title      string
		setupMocks func(r *resources)
		expected   model.Metadata
	}{
		{
			name:  "Should return provider metadata",
			title: "Alien",
			setupMocks: func(r *resources) {
				r.provider.On("Fetch", mock.Anything, "Alien").Return(alien, nil).Once()
			},
			expected: alien,
		},
		{
			name:  "Should degrade when title is unknown",
			title: "Unknown Film",
			setupMocks: func(r *resources) {
				r.provider.On("Fetch", mock.Anything, "Unknown Film").Return(model.Metadata{}, ErrNotFound).Once()
			},
			expected: model.UnavailableMetadata(),
		},
		{
			name:  "Should degrade when provider fails",
			title: "Alien",
			setupMocks: func(r *resources) {
				r.provider.On("Fetch", mock.Anything, "Alien").Return(model.Metadata{}, errors.New("connection reset")).Once()
			},
			expected: model.UnavailableMetadata(),
		},
		{
			name:  "Should fill empty description",
			title: "Alien",
			setupMocks: func(r *resources) {
				r.provider.On("Fetch", mock.Anything, "Alien").Return(model.Metadata{PosterURL: alien.PosterURL}, nil).Once()
			},
			expected: model.Metadata{PosterURL: alien.PosterURL, Description: model.NoDescription},
		},
		{
			name:       "Should not call provider for blank title",
			title:      "   ",
			setupMocks: func(r *resources) {},
			expected:   model.UnavailableMetadata(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			svc := New(r.provider, WithLogger(quietLogger()))
			got := svc.Fetch(r.ctx, tc.title)

			assert.Equal(t, tc.expected, got)
			r.provider.AssertExpectations(t)
		})
	}
}

func (s *MetadataServiceUnitSuite) TestFetchCached(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		title      string
		setupMocks func(r *resources)
		expected   model.Metadata
	}{
		{
			name:  "Should serve hit from cache",
			title: "  ALIEN ",
			setupMocks: func(r *resources) {
				r.cache.On("Get", "alien").Return(alien, true, nil).Once()
			},
			expected: alien,
		},
		{
			name:  "Should store successful lookup on miss",
			title: "Alien",
			setupMocks: func(r *resources) {
				r.cache.On("Get", "alien").Return(model.Metadata{}, false, nil).Once()
				r.provider.On("Fetch", mock.Anything, "Alien").Return(alien, nil).Once()
				r.cache.On("Set", "alien", alien).Return(nil).Once()
			},
			expected: alien,
		},
		{
			name:  "Should not store failed lookup",
			title: "Alien",
			setupMocks: func(r *resources) {
				r.cache.On("Get", "alien").Return(model.Metadata{}, false, nil).Once()
				r.provider.On("Fetch", mock.Anything, "Alien").Return(model.Metadata{}, ErrNotFound).Once()
			},
			expected: model.UnavailableMetadata(),
		},
		{
			name:  "Should fall through to provider when cache is down",
			title: "Alien",
			setupMocks: func(r *resources) {
				r.cache.On("Get", "alien").Return(model.Metadata{}, false, errors.New("dial tcp: refused")).Once()
				r.provider.On("Fetch", mock.Anything, "Alien").Return(alien, nil).Once()
				r.cache.On("Set", "alien", alien).Return(errors.New("dial tcp: refused")).Once()
			},
			expected: alien,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			svc := New(r.provider, WithCache(r.cache), WithLogger(quietLogger()))
			got := svc.Fetch(r.ctx, tc.title)

			assert.Equal(t, tc.expected, got)
			r.cache.AssertExpectations(t)
			r.provider.AssertExpectations(t)
		})
	}
}

func (s *MetadataServiceUnitSuite) TestRateLimitHonoursContext(t provider.T) {
	r := initResources(t)
	r.provider.On("Fetch", mock.Anything, "Alien").Return(alien, nil).Once()

	svc := New(r.provider, WithRateLimit(0.001), WithLogger(quietLogger()))
	assert.Equal(t, alien, svc.Fetch(r.ctx, "Alien"))

	ctx, cancel := context.WithTimeout(r.ctx, 20*time.Millisecond)
	defer cancel()
	assert.Equal(t, model.UnavailableMetadata(), svc.Fetch(ctx, "Alien"))
	r.provider.AssertExpectations(t)
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(MetadataServiceUnitSuite))
}
