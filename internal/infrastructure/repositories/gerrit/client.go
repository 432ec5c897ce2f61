package gerrit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
)

// magicPrefix is prepended to every JSON response to defeat XSSI.
const magicPrefix = ")]}'"

const defaultTimeout = 30 * time.Second

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// Client represents a Gerrit REST API client authenticated with HTTP basic auth.
// GET responses can be cached for the lifetime of the client; any write
// clears the cache.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client

	mu    sync.Mutex
	cache map[string][]byte
}

// NewClient creates a new Gerrit client from the settings.
func NewClient(settings *entities.Settings) *Client {
	return NewClientWithTransport(settings, http.DefaultTransport)
}

// NewClientWithTransport creates a client sending requests through base.
func NewClientWithTransport(settings *entities.Settings, base http.RoundTripper) *Client {
	timeout := settings.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	baseURL := settings.Endpoint
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Client{
		baseURL:  baseURL,
		username: settings.Username,
		password: settings.Password,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: newTransport(base, settings.RequestsPerSecond),
		},
		cache: make(map[string][]byte),
	}
}

// CloneURL returns the authenticated HTTP git URL of a project.
func (c *Client) CloneURL(repository string) string {
	return c.baseURL + "a/" + repository
}

// getJSON fetches path and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, path string, useCache bool, out interface{}) error {
	body, err := c.get(ctx, path, useCache)
	if err != nil {
		return err
	}
	return decodeJSON(body, out)
}

// get fetches path, consulting the response cache when useCache is set.
func (c *Client) get(ctx context.Context, path string, useCache bool) ([]byte, error) {
	if useCache {
		if cached, ok := c.cached(path); ok {
			mCacheHits.Inc()
			return cached, nil
		}
	}

	body, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[path] = body
	c.mu.Unlock()
	return body, nil
}

// send performs a write and decodes the JSON response into out when non-nil.
func (c *Client) send(ctx context.Context, method, path string, body, out interface{}) error {
	c.invalidate()

	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeJSON(resp, out)
}

func (c *Client) cached(path string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	body, ok := c.cache[path]
	return body, ok
}

func (c *Client) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.cache)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debugf("%s %s", method, path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	return stripMagicPrefix(respBody), nil
}

func stripMagicPrefix(body []byte) []byte {
	return bytes.TrimPrefix(body, []byte(magicPrefix))
}

func decodeJSON(body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
