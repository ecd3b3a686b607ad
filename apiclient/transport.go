package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config controls low-level transport behavior such as timeouts.
type Config struct {
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func defaultConfig() Config {
	return Config{
		DialTimeout:  3 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

// Transport is the low-level REST transport shared by every Client method.
// It sends one HTTP request per call against the v1.0 API rooted at
// baseURL and returns the raw response body, leaving JSON decoding to the
// caller (see parse in client.go).
type Transport struct {
	baseURL string
	client  *http.Client
	mock    func(method, path string, payload any) ([]byte, int, error)
}

// NewTransport creates a transport against the server at addr (host:port,
// no scheme).
func NewTransport(addr string) *Transport { return NewTransportWithConfig(addr, nil) }

// NewTransportWithConfig creates a transport with optional timeout
// configuration.
func NewTransportWithConfig(addr string, cfg *Config) *Transport {
	c := defaultConfig()
	if cfg != nil {
		c = *cfg
	}
	base := addr
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return &Transport{
		baseURL: strings.TrimSuffix(base, "/"),
		client: &http.Client{
			Timeout: c.ReadTimeout + c.WriteTimeout + c.DialTimeout,
		},
	}
}

// NewMockTransport creates a transport that returns canned responses
// without real networking. The responder receives the HTTP method, the
// API path (e.g. "/api/v1.0/devices") and the request payload, and
// returns the raw response body, HTTP status and error.
func NewMockTransport(responder func(method, path string, payload any) ([]byte, int, error)) *Transport {
	return &Transport{baseURL: "mock", mock: responder}
}

// Do issues one REST request and returns the raw response body along with
// the HTTP status code.
func (t *Transport) Do(method, path string, payload any) ([]byte, int, error) {
	return t.DoCtx(context.Background(), method, path, payload)
}

// DoCtx is like Do but honors the provided context.
func (t *Transport) DoCtx(ctx context.Context, method, path string, payload any) ([]byte, int, error) {
	if t.mock != nil {
		return t.mock(method, path, payload)
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	return respBytes, resp.StatusCode, nil
}
