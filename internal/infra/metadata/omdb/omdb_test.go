package infra_metadata_omdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/humanbelnik/kinopick/internal/model"
	"github.com/humanbelnik/kinopick/internal/service/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, body string) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("apikey"))
		assert.Equal(t, "short", r.URL.Query().Get("plot"))
		assert.NotEmpty(t, r.URL.Query().Get("t"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	c, err := New("secret", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return c
}

func TestFetch(t *testing.T) {
	c := newTestClient(t, `{"Title":"Ghostbusters","Poster":"https://m.media-amazon.com/gb.jpg",`+
		`"Plot":"Three parapsychologists start a ghost-catching business.","Response":"True"}`)

	m, err := c.Fetch(context.Background(), "Ghostbusters")
	require.NoError(t, err)
	assert.Equal(t, model.Metadata{
		PosterURL:   "https://m.media-amazon.com/gb.jpg",
		Description: "Three parapsychologists start a ghost-catching business.",
	}, m)
}

func TestFetchNotAvailableFields(t *testing.T) {
	c := newTestClient(t, `{"Title":"Koyaanisqatsi","Poster":"N/A","Plot":"N/A","Response":"True"}`)

	m, err := c.Fetch(context.Background(), "Koyaanisqatsi")
	require.NoError(t, err)
	assert.Equal(t, model.Metadata{}, m)
}

func TestFetchMovieNotFound(t *testing.T) {
	c := newTestClient(t, `{"Response":"False","Error":"Movie not found!"}`)

	_, err := c.Fetch(context.Background(), "Nothing")
	assert.ErrorIs(t, err, metadata.ErrNotFound)
}

func TestFetchInvalidKey(t *testing.T) {
	c := newTestClient(t, `{"Response":"False","Error":"Invalid API key!"}`)

	_, err := c.Fetch(context.Background(), "Alien")
	assert.ErrorContains(t, err, "Invalid API key")
	assert.NotErrorIs(t, err, metadata.ErrNotFound)
}
