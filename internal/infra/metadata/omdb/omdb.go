package infra_metadata_omdb

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

const DefaultBaseURL = "https://www.omdbapi.com"

// OMDb uses "N/A" for absent fields.
const notAvailable = "N/A"

type titleResponse struct {
	Title    string `json:"Title"`
	Poster   string `json:"Poster"`
	Plot     string `json:"Plot"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
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
		return nil, errors.New("omdb api key required")
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

func (c *Client) Fetch(ctx context.Context, title string) (model.Metadata, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("t", title)
	params.Set("plot", "short")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return model.Metadata{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Metadata{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Metadata{}, fmt.Errorf("omdb returned %d", resp.StatusCode)
	}

	var payload titleResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.Metadata{}, fmt.Errorf("decode omdb response: %w", err)
	}
	if !strings.EqualFold(payload.Response, "True") {
		if strings.Contains(strings.ToLower(payload.Error), "not found") {
			return model.Metadata{}, metadata.ErrNotFound
		}
		return model.Metadata{}, fmt.Errorf("omdb error: %s", payload.Error)
	}

	return model.Metadata{
		PosterURL:   available(payload.Poster),
		Description: available(payload.Plot),
	}, nil
}

func available(v string) string {
	v = strings.TrimSpace(v)
	if v == notAvailable {
		return ""
	}
	return v
}
