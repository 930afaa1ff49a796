// Package sparkapi is the HTTP client for the Solo Sparks backend.
//
// Every operation returns a Result instead of a Go error: transport failures
// and non-2xx responses both land in the failure shape, and callers inspect
// Success (or Err) rather than relying on error returns.
package sparkapi

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

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"sparks/internal/platform/id"
	"sparks/internal/platform/logging"
)

const (
	HeaderRequestID = "X-Request-ID"
	maxBodyBytes    = 8 << 20
)

type Config struct {
	BaseURL string
	// Timeout of zero means no client-side timeout.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
	IDs        id.Generator
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	ids        id.Generator

	mu             sync.RWMutex
	token          string
	onUnauthorized func()
}

// Result is the uniform response shape: Data and Message on success, Error on failure.
type Result[T any] struct {
	Success bool
	Data    T
	Message string
	Error   string
	Status  int
}

// Err returns nil for a successful result and a *RequestError otherwise.
func (r Result[T]) Err() error {
	if r.Success {
		return nil
	}
	return &RequestError{Status: r.Status, Message: r.Error}
}

// RequestError carries the backend (or transport) message. Status is zero when
// no response was received.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func New(cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	ids := cfg.IDs
	if ids == nil {
		ids = id.UUID{}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logging.OrNop(cfg.Logger),
		ids:        ids,
	}
}

// SetToken installs the bearer credential attached to every subsequent request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

func (c *Client) HasToken() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// OnUnauthorized registers fn to run when a request that carried a credential
// is answered with 401.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) credential() (string, func()) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token, c.onUnauthorized
}

func callJSON[T any](ctx context.Context, c *Client, method, path string, payload any) Result[T] {
	var body io.Reader
	contentType := ""
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return Result[T]{Error: fmt.Sprintf("encode request: %v", err)}
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}
	return call[T](ctx, c, method, path, body, contentType)
}

func call[T any](ctx context.Context, c *Client, method, path string, body io.Reader, contentType string) Result[T] {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return Result[T]{Error: fmt.Sprintf("build request: %v", err)}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	requestID := c.ids.New()
	req.Header.Set(HeaderRequestID, requestID)

	token, onUnauthorized := c.credential()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("requestID", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return Result[T]{Error: networkMessage(err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.logger.Debug("request",
		zap.String("requestID", requestID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)
	if err != nil {
		return Result[T]{Status: resp.StatusCode, Error: networkMessage(err)}
	}

	if resp.StatusCode == http.StatusUnauthorized && token != "" && onUnauthorized != nil {
		onUnauthorized()
	}
	return decode[T](resp.StatusCode, raw)
}

func decode[T any](status int, raw []byte) Result[T] {
	ok := status >= 200 && status < 300
	trimmed := bytes.TrimSpace(raw)
	if !ok {
		msg := ""
		if gjson.ValidBytes(trimmed) {
			msg = gjson.GetBytes(trimmed, "message").String()
		}
		if msg == "" {
			msg = fmt.Sprintf("HTTP error! status: %d", status)
		}
		return Result[T]{Status: status, Error: msg}
	}

	out := Result[T]{Success: true, Status: status}
	if len(trimmed) == 0 {
		return out
	}
	if !gjson.ValidBytes(trimmed) {
		return Result[T]{Status: status, Error: "decode response: invalid JSON"}
	}

	payload := trimmed
	if data := gjson.GetBytes(trimmed, "data"); data.Exists() && data.Type != gjson.Null {
		payload = []byte(data.Raw)
	}
	if msg := gjson.GetBytes(trimmed, "message"); msg.Type == gjson.String {
		out.Message = msg.String()
	}
	if err := json.Unmarshal(payload, &out.Data); err != nil {
		return Result[T]{Status: status, Error: fmt.Sprintf("decode response: %v", err)}
	}
	return out
}

func networkMessage(err error) string {
	if err == nil || strings.TrimSpace(err.Error()) == "" {
		return "Network error"
	}
	return err.Error()
}
