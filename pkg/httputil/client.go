// Package httputil provides the shared HTTP client used by all registry
// version sources.
//
// The client layers a byte-level response cache (see [cache.Cache]) under a
// small JSON/text fetch API. Registry endpoints are queried at most once per
// TTL window; a cache hit never touches the network. Failed requests are not
// retried: a registry that is down fails the whole upgrade pass and the user
// runs the command again.
package httputil

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/denoup/denoup/pkg/cache"
	apperrors "github.com/denoup/denoup/pkg/errors"
)

const httpTimeout = 10 * time.Second

// Client performs HTTP GETs with response caching and default headers.
type Client struct {
	http    *http.Client
	backend cache.Cache
	ttl     time.Duration
	headers map[string]string
}

// NewClient creates a Client with the given cache backend and default headers.
// A nil backend disables caching. Pass nil for headers if no default headers
// are needed.
func NewClient(backend cache.Cache, ttl time.Duration, headers map[string]string) *Client {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		backend: backend,
		ttl:     ttl,
		headers: headers,
	}
}

// Cached retrieves a value from the cache or executes fetch and caches the
// result. If refresh is true, the cache is bypassed and fetch is always
// called. The fetch function should populate v; on success, v is stored in
// the cache under key.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	if !refresh {
		if data, hit, _ := c.backend.Get(ctx, key); hit {
			if err := json.Unmarshal(data, v); err == nil {
				return nil
			}
			// Unreadable entry, fall through to a fresh fetch.
		}
	}
	if err := fetch(); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		_ = c.backend.Set(ctx, key, data, c.ttl)
	}
	return nil
}

// GetJSON performs an HTTP GET request and JSON-decodes the response into v.
// Malformed response bodies are reported as parse errors.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.doRequest(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeParse, err, "malformed JSON from %s", url)
	}
	return nil
}

// GetText performs an HTTP GET request and returns the response body as a
// string. Useful for non-JSON endpoints like Atom feeds or HTML pages.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	body, err := c.doRequest(ctx, url)
	if err != nil {
		return "", err
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeNetwork, err, "read body from %s", url)
	}
	return string(data), nil
}

func (c *Client) doRequest(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeNetwork, err, "request %s", url)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp.Body, nil
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "%s: not found", url)
	default:
		resp.Body.Close()
		return nil, apperrors.New(apperrors.ErrCodeNetwork, "status %d from %s", resp.StatusCode, url)
	}
}
