// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents a failed conversion request.
type ClientError struct {
	Type       ErrorType
	Message    string
	StatusCode int  // HTTP status, set for engine failures
	Reported   bool // Message was decoded from the engine's {"error": ...} body
	Cause      error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches sentinel errors by type and message.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	return ok && t.Type == e.Type && t.Message == e.Message
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	// ErrTypeTransport means the request never completed (dial, reset, timeout).
	ErrTypeTransport
	// ErrTypeEngine means the engine answered with a non-2xx status.
	ErrTypeEngine
	// ErrTypeInvalidResponse means a 2xx body could not be decoded.
	ErrTypeInvalidResponse
)

func (t ErrorType) String() string {
	switch t {
	case ErrTypeTransport:
		return "transport"
	case ErrTypeEngine:
		return "engine"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	default:
		return "unknown"
	}
}

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &ClientError{Type: ErrTypeTransport, Message: "conversion engine unreachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTransport, Message: "request timed out"}
)

// maxResponseBytes bounds how much of a response body is decoded.
const maxResponseBytes = 8 << 20

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the conversion client.
type ClientConfig struct {
	// BaseURL is the engine base URL (default: http://127.0.0.1:7625)
	BaseURL string

	// Endpoint is the conversion path (default: /api/convert)
	Endpoint string

	// Timeout bounds a whole request; zero means the default, negative disables it.
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:  "http://127.0.0.1:7625",
		Endpoint: "/api/convert",
		Timeout:  30 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the conversion engine.
//
// The Client is safe for concurrent use, although the TUI never has more than
// one request in flight.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	defaults := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Endpoint == "" {
		config.Endpoint = defaults.Endpoint
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}

	httpClient := &http.Client{}
	if config.Timeout > 0 {
		httpClient.Timeout = config.Timeout
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}
}

// URL returns the full conversion endpoint URL.
func (c *Client) URL() string {
	base := strings.TrimRight(c.config.BaseURL, "/")
	endpoint := c.config.Endpoint
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return base + endpoint
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// =============================================================================
// CONVERSION
// =============================================================================

// Convert posts input to the engine and returns its decoded response.
//
// The returned Response always has a non-nil Errors slice. Failures are
// *ClientError values: ErrTypeTransport when no response arrived,
// ErrTypeEngine for a non-2xx status, ErrTypeInvalidResponse for an
// undecodable success body.
func (c *Client) Convert(ctx context.Context, input string) (*Response, error) {
	body, err := json.Marshal(Request{Input: input})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeTransport, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, &ClientError{Type: ErrTypeTransport, Message: ErrTimeout.Message, Cause: err}
		}
		return nil, &ClientError{Type: ErrTypeTransport, Message: ErrUnreachable.Message, Cause: err}
	}
	defer drainAndClose(resp.Body)

	limited := io.LimitReader(resp.Body, maxResponseBytes)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Try to read error message
		var engineErr EngineError
		if err := json.NewDecoder(limited).Decode(&engineErr); err == nil && engineErr.Error != "" {
			return nil, &ClientError{
				Type:       ErrTypeEngine,
				Message:    engineErr.Error,
				StatusCode: resp.StatusCode,
				Reported:   true,
			}
		}
		return nil, &ClientError{
			Type:       ErrTypeEngine,
			Message:    "conversion request failed: " + resp.Status,
			StatusCode: resp.StatusCode,
		}
	}

	var result Response
	if err := json.NewDecoder(limited).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	result.normalize()

	return &result, nil
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsTransport reports whether err means the request never produced a usable
// response: no connection, a timeout, or an undecodable success body.
func IsTransport(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTransport || clientErr.Type == ErrTypeInvalidResponse
	}
	return false
}

// IsEngine reports whether err is a failure status returned by the engine.
func IsEngine(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeEngine
	}
	return false
}

// EngineMessage returns the engine's own error text, or "" when the failure
// body was missing or undecodable.
func EngineMessage(err error) string {
	var clientErr *ClientError
	if errors.As(err, &clientErr) && clientErr.Type == ErrTypeEngine && clientErr.Reported {
		return clientErr.Message
	}
	return ""
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// Helper to drain response body
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, r)
	r.Close()
}
