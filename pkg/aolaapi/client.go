// Package aolaapi is the HTTP client for the Aola Star data API.
//
// The client caches GET responses through a pluggable cache backend and
// retries transient failures with exponential backoff. All methods are safe
// for concurrent use.
package aolaapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vmoranv/aolachart/pkg/attr"
	"github.com/vmoranv/aolachart/pkg/cache"
)

const (
	httpTimeout = 10 * time.Second
	userAgent   = "aolachart/1.0"
)

var (
	// ErrNotFound is returned when the API has no resource for the request.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors,
	// 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrUnavailable is returned when the API responds but reports failure
	// in its envelope. Callers surface this as "no data" rather than
	// attempting partial computation.
	ErrUnavailable = errors.New("data source unavailable")
)

// envelope is the response wrapper used by the attribute endpoints.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// Activity is one entry of the existing-activities list.
type Activity struct {
	Name   string `json:"name"`
	Packet string `json:"packet"`
}

// Client talks to one API base URL with response caching and retries.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	baseURL string
}

// NewClient creates a client for the API at baseURL. A scheme-less base URL
// gets an http:// prefix; trailing slashes are stripped. Pass a NullCache to
// disable response caching.
func NewClient(baseURL string, backend cache.Cache, cacheTTL time.Duration) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL != "" && !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   backend,
		ttl:     cacheTTL,
		baseURL: baseURL,
	}
}

// BaseURL returns the normalized API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchAttributes retrieves the attribute catalogue.
func (c *Client) FetchAttributes(ctx context.Context) ([]attr.Attribute, error) {
	var attrs []attr.Attribute
	if err := c.getEnveloped(ctx, "/api/skill-attributes", &attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}

// FetchRelations retrieves the raw relation map for one attribute id.
func (c *Client) FetchRelations(ctx context.Context, id int) (attr.RawRelations, error) {
	var relations attr.RawRelations
	if err := c.getEnveloped(ctx, fmt.Sprintf("/api/attribute-relations/%d", id), &relations); err != nil {
		return nil, err
	}
	return relations, nil
}

// FetchActivities retrieves the existing-activities list. Unlike the
// attribute endpoints, this endpoint returns a bare JSON array.
func (c *Client) FetchActivities(ctx context.Context) ([]Activity, error) {
	var activities []Activity
	if err := c.getJSON(ctx, "/api/existing-activities", &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// getEnveloped fetches an endpoint wrapped in the {success, data} envelope
// and decodes data into v. A success=false envelope maps to ErrUnavailable.
func (c *Client) getEnveloped(ctx context.Context, endpoint string, v any) error {
	var env envelope
	if err := c.getJSON(ctx, endpoint, &env); err != nil {
		return err
	}
	if !env.Success {
		return fmt.Errorf("%w: %s", ErrUnavailable, endpoint)
	}
	return json.Unmarshal(env.Data, v)
}

// getJSON performs a cached GET of endpoint and decodes the body into v.
func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	url := c.baseURL + endpoint

	if data, ok, _ := c.cache.Get(ctx, url); ok {
		return json.Unmarshal(data, v)
	}

	var body []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		body, err = c.get(ctx, url)
		return err
	})
	if err != nil {
		return err
	}

	_ = c.cache.Set(ctx, url, body, c.ttl)
	return json.Unmarshal(body, v)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return cache.Retryable(fmt.Errorf("%w: status %d", ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
