package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"storefront-client/internal/logger"
)

// Envelope is the backend's standard response wrapper. Most endpoints report
// success/message/data; the login endpoint responds with output instead.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Output  json.RawMessage `json:"output"`
}

// Client is the REST collaborator. It performs one HTTP exchange per call
// and never retries; retry is an explicit user action.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logger.Logger
	token   string
}

// NewClient creates a client for the given backend base URL.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  log,
	}
}

// SetToken arms the client with a bearer token for subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// ClearToken drops the bearer token at logout.
func (c *Client) ClearToken() {
	c.token = ""
}

// Get performs a GET request against path with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values, requestID string) (*Envelope, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, &TransportError{URL: fullURL, Message: err.Error(), Err: err}
	}

	return c.do(req, requestID)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}, requestID string) (*Envelope, error) {
	fullURL := c.baseURL + path

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{URL: fullURL, Message: err.Error(), Err: err}
	}

	return c.do(req, requestID)
}

func (c *Client) do(req *http.Request, requestID string) (*Envelope, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("api_request", fmt.Sprintf("%s %s", req.Method, req.URL.Path), requestID, nil)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("api_request_failed", "HTTP exchange failed", requestID, err, map[string]interface{}{
			"url": req.URL.String(),
		})
		return nil, &TransportError{URL: req.URL.String(), Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: req.URL.String(), Message: err.Error(), Err: err}
	}

	var envelope Envelope
	if len(raw) > 0 {
		// A malformed body on a non-2xx response is still a transport error,
		// so decode failures are only fatal for successful statuses.
		if err := json.Unmarshal(raw, &envelope); err != nil && resp.StatusCode < 400 {
			return nil, &TransportError{
				URL:     req.URL.String(),
				Message: "invalid JSON in response body",
				Err:     err,
			}
		}
	}

	if resp.StatusCode >= 400 {
		message := envelope.Message
		if message == "" {
			message = resp.Status
		}
		return nil, &TransportError{URL: req.URL.String(), Status: resp.StatusCode, Message: message}
	}

	return &envelope, nil
}
