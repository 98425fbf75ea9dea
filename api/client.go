// Package api is the single gateway to the SkillSense backend. Every view
// talks to the backend through one shared Client, which attaches the bearer
// token to outgoing requests and handles authentication failures globally.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/deAdler-alt/Skill-Sense/session"
)

var (
	// ErrUnauthorized is returned after a 401 response. The session has
	// already been cleared by the time a caller sees it.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConnectivity wraps transport-level failures (no response at all).
	ErrConnectivity = errors.New("cannot reach server")
)

// APIError is a non-401 error status carrying the backend's detail text.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// Client is the shared HTTP client. No retries, no request queuing.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Store
	log     *zap.Logger

	searchLimit int
	listLimit   int
}

// Option configures a Client.
type Option func(*Client)

// WithSearchLimit sets how many matches a search requests.
func WithSearchLimit(n int) Option {
	return func(c *Client) { c.searchLimit = n }
}

// WithListLimit sets how many profiles a directory listing requests.
func WithListLimit(n int) Option {
	return func(c *Client) { c.listLimit = n }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient builds the gateway client. sess supplies the bearer token and
// is cleared on any 401 response.
func NewClient(baseURL string, timeout time.Duration, sess *session.Store, log *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		http:        &http.Client{Timeout: timeout},
		session:     sess,
		log:         log,
		searchLimit: 3,
		listLimit:   100,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends req with the bearer token attached and maps failures to the
// error taxonomy. On 401 the session is cleared before the error is
// returned, so the caller's error path always runs after the cleanup.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if tok := c.session.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("url", req.URL.Path), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		if err := c.session.Clear(); err != nil {
			c.log.Error("failed to clear session", zap.Error(err))
		}
		c.log.Info("session rejected by backend", zap.String("url", req.URL.Path))
		return nil, ErrUnauthorized
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var body struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
			apiErr.Detail = body.Detail
		}
		resp.Body.Close()
		c.log.Warn("request rejected",
			zap.String("url", req.URL.Path),
			zap.Int("status", apiErr.Status),
			zap.String("detail", apiErr.Detail))
		return nil, apiErr
	}

	return resp, nil
}

// getJSON issues a GET and decodes the response body into out.
func (c *Client) getJSON(ctx context.Context, path string, query map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if len(query) > 0 {
		q := req.URL.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// getBytes issues a GET and returns the raw response body.
func (c *Client) getBytes(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}
	return data, nil
}
