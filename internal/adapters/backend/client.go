// Package backend is the HTTP client for the campus UKM service. All
// portal reads and writes go through it; the portal itself keeps no
// club or registration data.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnauthorized is returned when the backend rejects the bearer
// token. Callers tear the session down and send the visitor back to
// the login page.
var ErrUnauthorized = errors.New("backend rejected credentials")

// ErrNotFound is returned for 404 responses.
var ErrNotFound = errors.New("resource not found")

// APIError carries a non-2xx backend response that is neither a 401
// nor a 404. Message comes from the response body when the backend
// sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error %d", e.Status)
}

// Client calls the UKM backend.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New creates a client with the given timeout applied to every call.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// do issues a request and decodes a JSON response into out (skipped
// when out is nil). token may be empty for public endpoints.
// POST: non-2xx statuses are mapped to ErrUnauthorized, ErrNotFound
// or *APIError
func (c *Client) do(ctx context.Context, method, path, token string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 300:
		return &APIError{Status: resp.StatusCode, Message: readMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readMessage pulls the "message" field out of an error body, falling
// back to the raw text.
func readMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 4096))
	var wire struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &wire); err == nil && wire.Message != "" {
		return wire.Message
	}
	return string(bytes.TrimSpace(raw))
}
