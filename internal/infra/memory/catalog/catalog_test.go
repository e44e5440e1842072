package infra_memory_catalog

import (
	"context"
	"testing"

	"github.com/humanbelnik/kinopick/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	seed := model.Catalog{{Title: "Alien", Genres: []string{"Horror"}}}
	s := New(seed)

	seed[0].Viewed = true
	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, loaded[0].Viewed)

	loaded[0].Viewed = true
	again, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, again[0].Viewed)

	require.NoError(t, s.Save(ctx, loaded))
	again, err = s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, again[0].Viewed)
	assert.Equal(t, 1, s.Saves())
}

func TestStorageSaveHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(nil)
	assert.ErrorIs(t, s.Save(ctx, model.Catalog{{Title: "Alien"}}), context.Canceled)
	assert.Equal(t, 0, s.Saves())
}
