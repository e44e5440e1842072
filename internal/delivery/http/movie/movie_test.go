package http_movie

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	http_requestid_middleware "github.com/humanbelnik/kinopick/internal/delivery/http/middleware/requestid"
	"github.com/humanbelnik/kinopick/internal/model"
	storage_catalog "github.com/humanbelnik/kinopick/internal/storage/catalog"
	usecase_movie "github.com/humanbelnik/kinopick/internal/usecase/movie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readOnlyBackend struct {
	catalog model.Catalog
}

func (b readOnlyBackend) Load(context.Context) (model.Catalog, error) {
	return b.catalog.Clone(), nil
}

func (b readOnlyBackend) Save(context.Context, model.Catalog) error {
	return errors.New("read-only file system")
}

type posterMetadata struct{}

func (posterMetadata) Fetch(_ context.Context, title string) model.Metadata {
	return model.Metadata{PosterURL: "https://img.example/" + title + ".jpg", Description: "About " + title}
}

func newRouter(catalog model.Catalog) *gin.Engine {
	return newRouterWithLog(catalog, io.Discard)
}

func newRouterWithLog(catalog model.Catalog, w io.Writer) *gin.Engine {
	gin.SetMode(gin.TestMode)

	uc := usecase_movie.New(storage_catalog.New(readOnlyBackend{catalog: catalog}), posterMetadata{})
	c := New(uc, WithLogger(slog.New(slog.NewTextHandler(w, nil))))

	engine := gin.New()
	c.RegisterRoutes(engine.Group("/api/v1", http_requestid_middleware.RequestID()))
	return engine
}

func serve(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestPickMovieResponse(t *testing.T) {
	engine := newRouter(model.Catalog{{Title: "Heat", Genres: []string{"Crime"}}})

	rec := serve(engine, http.MethodPost, "/api/v1/movies/pick", `{"genre":"crime"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"picked":{"title":"Heat","genres":["Crime"],"viewed":false,`+
		`"poster_url":"https://img.example/Heat.jpg","description":"About Heat"}}`, rec.Body.String())
}

func TestPickMovieNoMatch(t *testing.T) {
	engine := newRouter(model.Catalog{{Title: "Heat", Genres: []string{"Crime"}, Viewed: true}})

	rec := serve(engine, http.MethodPost, "/api/v1/movies/pick", `{}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"picked":null,"message":"no unwatched movies match"}`, rec.Body.String())
}

func TestPickMovieByQuery(t *testing.T) {
	engine := newRouter(model.Catalog{
		{Title: "Heat", Genres: []string{"Crime"}},
		{Title: "Alien", Genres: []string{"Horror"}},
	})

	rec := serve(engine, http.MethodGet, "/api/v1/movies/pick?genre=HORROR", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Alien"`)
}

func TestPickMovieEmptyBody(t *testing.T) {
	engine := newRouter(model.Catalog{{Title: "Heat", Genres: []string{"Crime"}}})

	testCases := []struct {
		name          string
		contentLength int64
	}{
		{name: "no content", contentLength: 0},
		{name: "chunked", contentLength: -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/movies/pick", strings.NewReader(""))
			req.Header.Set("Content-Type", "application/json")
			req.ContentLength = tc.contentLength
			if tc.contentLength < 0 {
				req.TransferEncoding = []string{"chunked"}
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `"title":"Heat"`)
		})
	}
}

func TestLogsCarryRequestID(t *testing.T) {
	var logs bytes.Buffer
	engine := newRouterWithLog(model.Catalog{{Title: "Heat"}}, &logs)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/movies/viewed", strings.NewReader(`{"title":"Heat"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	id := rec.Header().Get(http_requestid_middleware.Header)
	require.NotEmpty(t, id)
	assert.Contains(t, logs.String(), "request_id="+id)
}

func TestPickMovieBadBody(t *testing.T) {
	engine := newRouter(model.Catalog{})

	rec := serve(engine, http.MethodPost, "/api/v1/movies/pick", `{"genre":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarkViewedStatuses(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		expected int
	}{
		{name: "persistence failure", body: `{"title":"Heat"}`, expected: http.StatusInternalServerError},
		{name: "unknown title", body: `{"title":"Alien"}`, expected: http.StatusNotFound},
		{name: "missing title", body: `{}`, expected: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			engine := newRouter(model.Catalog{{Title: "Heat"}})

			rec := serve(engine, http.MethodPost, "/api/v1/movies/viewed", tc.body)

			assert.Equal(t, tc.expected, rec.Code)
		})
	}
}

func TestGetMoviesEmptyGenresAsArray(t *testing.T) {
	engine := newRouter(model.Catalog{{Title: "Koyaanisqatsi"}})

	rec := serve(engine, http.MethodGet, "/api/v1/movies", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"movies":[{"title":"Koyaanisqatsi","genres":[],"viewed":false}],"total":1}`, rec.Body.String())
}
