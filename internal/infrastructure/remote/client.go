// Package remote implements the HTTP client for the hosted backend:
// account and session operations plus generic document-collection
// queries, scoped by a database/collection identifier pair.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Bash0121/FHU-social-club/internal/api/metrics"
	"github.com/Bash0121/FHU-social-club/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings required to reach the hosted backend.
type Config struct {
	Endpoint          string
	ProjectID         string
	Platform          string
	DatabaseID        string
	MembersCollection string
	EventsCollection  string
	Timeout           time.Duration
}

// Client is the sole point of contact with the hosted backend. It
// holds the bearer session token for the current device; all other
// state lives server-side.
type Client struct {
	http *http.Client
	cfg  Config
	log  zerolog.Logger

	mu    sync.Mutex
	token string
}

var _ ports.RemoteService = (*Client)(nil)

// NewClient builds a Client from an already-validated Config. Default
// timeout and events collection apply when unset.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.EventsCollection == "" {
		cfg.EventsCollection = "events"
	}
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
		log:  log,
	}
}

// apiError is a non-2xx response from the backend.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// errorEnvelope is the backend's canonical error body.
type errorEnvelope struct {
	Error string `json:"error"`
}

// do issues a single JSON request. The operation name labels metrics
// and logs; out, when non-nil, receives the decoded response body.
func (c *Client) do(ctx context.Context, operation, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", operation, err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Endpoint+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Project-Id", c.cfg.ProjectID)
	req.Header.Set("X-Platform", c.cfg.Platform)
	if token := c.sessionToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.RemoteRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RemoteRequestsTotal.WithLabelValues(operation, "error").Inc()
		return fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RemoteRequestsTotal.WithLabelValues(operation, "error").Inc()
		var env errorEnvelope
		_ = json.NewDecoder(resp.Body).Decode(&env)
		c.log.Debug().Str("operation", operation).Int("status", resp.StatusCode).Str("message", env.Error).Msg("backend error response")
		return &apiError{Status: resp.StatusCode, Message: env.Error}
	}

	metrics.RemoteRequestsTotal.WithLabelValues(operation, "ok").Inc()
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return nil
}

func (c *Client) sessionToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) setSessionToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) collectionPath(collection string) string {
	return fmt.Sprintf("/v1/databases/%s/collections/%s/documents", c.cfg.DatabaseID, collection)
}
