package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/bizcards/internal/common"
	"github.com/dmitrijs2005/bizcards/internal/logging"
	"github.com/google/uuid"
)

const (
	DefaultTimeout = 15 * time.Second
	maxBodySize    = 8 << 20
)

// UnauthorizedFunc is called when the backend rejects a token with 401.
// rejected is the token the request carried.
type UnauthorizedFunc func(ctx context.Context, rejected string, err error)

type HTTPClient struct {
	baseURL        *url.URL
	http           *http.Client
	tokens         TokenSource
	onUnauthorized UnauthorizedFunc
	log            logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying client. Its transport is wrapped,
// not replaced.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		cp := *hc
		c.http = &cp
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

func WithUnauthorizedHandler(fn UnauthorizedFunc) Option {
	return func(c *HTTPClient) { c.onUnauthorized = fn }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient returns a client for the backend at baseURL. tokens may be
// nil for anonymous use.
func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: DefaultTimeout},
		tokens:  tokens,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.Transport = &authTransport{base: c.http.Transport}
	c.log = c.log.With("component", "directory-client")
	return c, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// Ping reports whether the backend answers at all. Any status below 500
// counts as reachable.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL.JoinPath("cards").String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return c.mapError(ctx, err)
	}
	_ = resp.Body.Close()

	if resp.StatusCode >= 500 {
		return &HTTPError{Method: http.MethodHead, Path: "/cards", StatusCode: resp.StatusCode}
	}
	return nil
}

func (c *HTTPClient) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// do sends body as JSON to path and returns the raw response body of a
// 2xx answer.
func (c *HTTPClient) do(ctx context.Context, method string, body any, path ...string) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	u := c.baseURL.JoinPath(path...)
	tok := c.token()

	req, err := http.NewRequestWithContext(withAuthToken(ctx, tok), method, u.String(), rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.mapError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, c.mapError(ctx, err)
	}

	c.log.Debug(ctx, "request done",
		"method", method,
		"path", u.Path,
		"status", resp.StatusCode,
		"request_id", req.Header.Get(common.RequestIDHeaderName),
		"duration", time.Since(start),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}

	herr := &HTTPError{Method: method, Path: u.Path, StatusCode: resp.StatusCode, Message: errorMessage(data)}
	if resp.StatusCode == http.StatusUnauthorized && tok != "" && c.onUnauthorized != nil {
		c.log.Warn(ctx, "token rejected by backend", "path", u.Path)
		c.onUnauthorized(ctx, tok, herr)
	}
	return nil, herr
}

func (c *HTTPClient) mapError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// errorMessage extracts a readable message from an error body, which the
// backend sends as plain text, a JSON string or an object with "message".
func errorMessage(data []byte) string {
	s := strings.TrimSpace(string(data))
	if s == "" {
		return ""
	}

	var str string
	if json.Unmarshal(data, &str) == nil {
		s = str
	} else {
		var obj struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(data, &obj) == nil {
			switch {
			case obj.Message != "":
				s = obj.Message
			case obj.Error != "":
				s = obj.Error
			}
		}
	}

	const limit = 200
	if r := []rune(s); len(r) > limit {
		s = string(r[:limit]) + "..."
	}
	return s
}

// decodeToken accepts the login response as plain text or a JSON string.
func decodeToken(data []byte) (string, error) {
	s := strings.TrimSpace(string(data))
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal([]byte(s), &s); err != nil {
			return "", fmt.Errorf("decode token: %w", err)
		}
	}
	if s = strings.TrimSpace(s); s == "" {
		return "", errors.New("decode token: empty response")
	}
	return s, nil
}
