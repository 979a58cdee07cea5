package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"
)

const defaultTimeout = 15 * time.Second

// Client wraps the remote storefront REST API. Every response is normalized
// into the {success, data, message} envelope before it reaches a service.
type Client struct {
	baseURL string
	tokens  TokenStore
	ua      string
	http    *http.Client
}

// NewClient creates a new API client.
func NewClient(baseURL string, tokens TokenStore, timeout time.Duration, ua string) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		ua:      ua,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Error is an API call that completed over HTTP but was rejected by the
// server (either a non-2xx status or an enveloped success:false).
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error: status=%d code=%s message=%s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error: status=%d message=%s", e.Status, e.Message)
}

// Get performs a GET request and decodes the envelope data into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

// Post performs a JSON POST request.
func (c *Client) Post(ctx context.Context, path string, in, out interface{}) error {
	body, err := encodeJSON(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, body, "application/json", out)
}

// Put performs a JSON PUT request.
func (c *Client) Put(ctx context.Context, path string, in, out interface{}) error {
	body, err := encodeJSON(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, body, "application/json", out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", out)
}

// PostForm performs a multipart POST request.
func (c *Client) PostForm(ctx context.Context, path string, form *Form, out interface{}) error {
	contentType, body, err := form.Encode()
	if err != nil {
		return fmt.Errorf("api request error: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, body, contentType, out)
}

// PutForm performs a multipart PUT request.
func (c *Client) PutForm(ctx context.Context, path string, form *Form, out interface{}) error {
	contentType, body, err := form.Encode()
	if err != nil {
		return fmt.Errorf("api request error: %w", err)
	}
	return c.do(ctx, http.MethodPut, path, body, contentType, out)
}

func encodeJSON(in interface{}) (io.Reader, error) {
	if in == nil {
		return nil, nil
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("api request error: %w", err)
	}
	return bytes.NewReader(payload), nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	if c == nil || c.http == nil {
		return fmt.Errorf("api request error: client is nil")
	}
	if strings.TrimSpace(c.baseURL) == "" {
		return fmt.Errorf("api config error: base_url is empty")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api request error: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyRequestError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api request error: failed to read body: %w", err)
	}

	return c.normalize(resp.StatusCode, raw, out)
}

// envelope probes the server's {success, data, message|error} wrapper.
// Success is a pointer so a body without the wrapper can be told apart
// from an explicit success:false.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
}

func (e envelope) errorInfo() (code, message string) {
	if len(e.Error) > 0 {
		var s string
		if json.Unmarshal(e.Error, &s) == nil && s != "" {
			return "", s
		}
		var obj struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(e.Error, &obj) == nil && (obj.Code != "" || obj.Message != "") {
			return obj.Code, obj.Message
		}
	}
	if e.Message != "" {
		return "", e.Message
	}
	return "", "request failed"
}

func (c *Client) normalize(status int, raw []byte, out interface{}) error {
	data := json.RawMessage(raw)

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Success != nil {
		if !*env.Success {
			code, message := env.errorInfo()
			return &Error{Status: status, Code: code, Message: message}
		}
		data = env.Data
	} else if status < 200 || status >= 300 {
		return &Error{Status: status, Message: fallbackMessage(raw)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api response error: %w", err)
	}
	return nil
}

func fallbackMessage(raw []byte) string {
	message := strings.TrimSpace(string(raw))
	if message == "" {
		return "request failed"
	}
	return message
}

func classifyRequestError(ctx context.Context, err error) error {
	if isTimeoutError(ctx, err) {
		return fmt.Errorf("api request timeout: %w", err)
	}
	if isNetworkError(err) {
		return fmt.Errorf("api network error: %w", err)
	}
	return fmt.Errorf("api request error: %w", err)
}

func isTimeoutError(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}

	return false
}
