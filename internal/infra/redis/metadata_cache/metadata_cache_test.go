package infra_metadata_cache

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis"
	"github.com/humanbelnik/kinopick/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDriver(t *testing.T) (*Driver, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, "metadata", time.Hour), mr
}

func TestSetGet(t *testing.T) {
	d, mr := newDriver(t)

	m := model.Metadata{PosterURL: "https://img/alien.jpg", Description: "In space no one can hear you scream."}
	require.NoError(t, d.Set("alien", m))
	assert.True(t, mr.Exists("metadata:alien"))

	got, ok, err := d.Get("alien")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, m, got)
}

func TestGetMiss(t *testing.T) {
	d, _ := newDriver(t)

	_, ok, err := d.Get("heat")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEntryExpires(t *testing.T) {
	d, mr := newDriver(t)

	require.NoError(t, d.Set("alien", model.Metadata{Description: "x"}))
	mr.FastForward(2 * time.Hour)

	_, ok, err := d.Get("alien")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCorruptEntry(t *testing.T) {
	d, mr := newDriver(t)

	require.NoError(t, mr.Set("metadata:alien", "{not json"))

	_, ok, err := d.Get("alien")
	assert.Error(t, err)
	assert.False(t, ok)
}
