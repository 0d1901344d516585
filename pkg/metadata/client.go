package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/orgmap/pkg/buildinfo"
	"github.com/matzehuels/orgmap/pkg/errors"
	"github.com/matzehuels/orgmap/pkg/observability"
)

const (
	httpTimeout = 10 * time.Second

	// maxBodySize caps downloaded source documents.
	maxBodySize = 32 << 20
)

// Client downloads source documents over HTTP. Requests are made once;
// failures are reported, never retried.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client with a 10 second timeout. Headers are applied
// to every request; pass nil for none.
func NewClient(headers map[string]string) *Client {
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		headers: headers,
	}
}

// Fetch performs a GET request and returns the response body.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := errors.ValidateURL(url); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("Accept", "application/json, application/toml;q=0.9, */*;q=0.1")
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read body of %s", url)
	}
	return data, nil
}

// FetchSource fetches and decodes a source document. TOML is assumed when
// the URL path ends in .toml.
func (c *Client) FetchSource(ctx context.Context, url string) (*Source, error) {
	data, err := c.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return Decode(data, FormatFromPath(url))
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "source not found (status %d)", code)
	default:
		return errors.Wrap(errors.ErrCodeNetwork, fmt.Errorf("status %d", code), "unexpected response")
	}
}
