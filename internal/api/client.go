// Package api is the gateway to the AuChan backend REST API. All endpoints
// except login/register require a bearer token.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/petanihandal/auchan-cli/internal/common"
)

// DefaultBaseURL is the production backend.
const DefaultBaseURL = "https://backend-auchan-production.up.railway.app/api"

// Client talks to the backend API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	requestID  string
}

// NewClient creates a backend client. The token may be empty for the
// login/register calls.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		token:     token,
		requestID: uuid.NewString(),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// envelope is the response wrapper used by every backend endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// pageMeta carries server-side pagination totals.
type pageMeta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// PageMeta is the pagination metadata surfaced to list views.
type PageMeta struct {
	Total int
	Page  int
	Limit int
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Request-ID", c.requestID)

	return req, nil
}

// doJSON executes a JSON request and decodes the envelope's data field into
// out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	raw, err := c.execute(req)
	if err != nil {
		return err
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// execute runs the request, maps non-2xx statuses to the error taxonomy, and
// returns the envelope's data payload.
func (c *Client) execute(req *http.Request) (json.RawMessage, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		common.LogError(err, "backend request failed", common.Fields{
			"method": req.Method,
			"path":   req.URL.Path,
		})
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	common.LogDebug("backend request completed", common.Fields{
		"method": req.Method,
		"path":   req.URL.Path,
		"status": resp.StatusCode,
	})

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.statusError(resp.StatusCode, raw)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if env.Data == nil {
		// Some endpoints answer with a bare body.
		return raw, nil
	}
	return env.Data, nil
}

// statusError translates an HTTP status into the application error taxonomy,
// preserving the server's message text when one was sent.
func (c *Client) statusError(status int, body []byte) error {
	msg := serverMessage(body)

	var base error
	switch {
	case status == http.StatusUnauthorized:
		base = common.ErrUnauthorized
	case status == http.StatusForbidden:
		base = common.ErrForbidden
	case status == http.StatusNotFound:
		base = common.ErrNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		base = common.ErrInvalidInput
	case status >= 500:
		base = common.ErrServerError
	default:
		return fmt.Errorf("unexpected status %d: %s", status, msg)
	}

	if msg == "" {
		return fmt.Errorf("%w (status %d)", base, status)
	}
	return fmt.Errorf("%w: %s", base, msg)
}

// serverMessage extracts the message field from an error body, tolerating
// non-JSON responses.
func serverMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		return env.Message
	}
	return strings.TrimSpace(string(body))
}
