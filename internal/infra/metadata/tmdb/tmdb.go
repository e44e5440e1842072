package infra_metadata_tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/humanbelnik/kinopick/internal/model"
	"github.com/humanbelnik/kinopick/internal/service/metadata"
)

const (
	DefaultBaseURL = "https://api.themoviedb.org/3"
	posterBaseURL  = "https://image.tmdb.org/t/p/w500"
)

type searchResult struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Overview   string `json:"overview"`
	PosterPath string `json:"poster_path"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ metadata.Provider = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func New(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Fetch uses the first search hit.
func (c *Client) Fetch(ctx context.Context, title string) (model.Metadata, error) {
	endpoint, err := url.Parse(c.baseURL + "/search/movie")
	if err != nil {
		return model.Metadata{}, fmt.Errorf("parse tmdb url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", title)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return model.Metadata{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Metadata{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Metadata{}, fmt.Errorf("tmdb search returned %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.Metadata{}, fmt.Errorf("decode tmdb response: %w", err)
	}
	if len(payload.Results) == 0 {
		return model.Metadata{}, metadata.ErrNotFound
	}

	first := payload.Results[0]
	m := model.Metadata{Description: strings.TrimSpace(first.Overview)}
	if first.PosterPath != "" {
		m.PosterURL = posterBaseURL + first.PosterPath
	}
	return m, nil
}
