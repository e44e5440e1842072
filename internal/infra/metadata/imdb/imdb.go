package infra_metadata_imdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/humanbelnik/kinopick/internal/model"
	"github.com/humanbelnik/kinopick/internal/service/metadata"
	"golang.org/x/net/html"
)

const (
	DefaultBaseURL = "https://www.imdb.com"
	userAgent      = "Mozilla/5.0 (X11; Linux x86_64) kinopick/1.0"
	// Pages above this size are truncated before parsing.
	maxPageBytes = 4 << 20
)

var titlePath = regexp.MustCompile(`^/title/tt\d+/`)

// Client scrapes the public IMDb pages: a title search, then the first hit's Open Graph tags.
type Client struct {
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

func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Fetch(ctx context.Context, title string) (model.Metadata, error) {
	params := url.Values{}
	params.Set("q", title)
	params.Set("s", "tt")
	params.Set("ttype", "ft")

	doc, err := c.get(ctx, c.baseURL+"/find/?"+params.Encode())
	if err != nil {
		return model.Metadata{}, fmt.Errorf("imdb search: %w", err)
	}
	link := firstTitleLink(doc)
	if link == "" {
		return model.Metadata{}, metadata.ErrNotFound
	}

	page, err := c.get(ctx, c.baseURL+link)
	if err != nil {
		return model.Metadata{}, fmt.Errorf("imdb title page: %w", err)
	}

	meta := metaContent(page)
	m := model.Metadata{
		PosterURL:   meta["og:image"],
		Description: meta["og:description"],
	}
	if m.Description == "" {
		m.Description = meta["description"]
	}
	return m, nil
}

func (c *Client) get(ctx context.Context, target string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("imdb returned %d", resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// firstTitleLink returns the path of the first /title/tt.../ anchor, without query.
func firstTitleLink(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "a" {
		if href := attr(n, "href"); href != "" {
			if u, err := url.Parse(href); err == nil {
				if loc := titlePath.FindString(u.Path); loc != "" {
					return loc
				}
			}
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if link := firstTitleLink(child); link != "" {
			return link
		}
	}
	return ""
}

// metaContent collects <meta property|name=... content=...> pairs; the first occurrence wins.
func metaContent(doc *html.Node) map[string]string {
	out := make(map[string]string)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			key := attr(n, "property")
			if key == "" {
				key = attr(n, "name")
			}
			content := strings.TrimSpace(attr(n, "content"))
			if key != "" && content != "" {
				if _, seen := out[key]; !seen {
					out[key] = content
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return out
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}
