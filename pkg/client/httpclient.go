package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	apperrors "ducktodo/pkg/errors"
	"ducktodo/pkg/logger"
	"ducktodo/pkg/middleware"
)

const (
	DefaultTimeout = 15 * time.Second
	// LongTimeout is used by calls that wait on generation work.
	LongTimeout = 60 * time.Second

	contentTypeJSON = "application/json"
	acceptDefault   = "application/json, text/plain, */*"
)

type Config struct {
	// BaseURL is the gateway origin plus the API base path, e.g. http://localhost:8080/api.
	BaseURL       string
	Timeout       time.Duration
	PrefixSegment string
	UserAgent     string
}

// Client is the single shared transport for every resource call. It is safe
// for concurrent use; the token store is the only shared mutable state.
type Client struct {
	cfg        Config
	httpClient *http.Client
	tokens     TokenStore
	notifier   Notifier
	navigator  Navigator
	saver      Saver
	logger     *logger.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying transport. Its Timeout is left as
// given; per-call deadlines come from the request context.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTransport keeps the default client, cookie jar included, and swaps its
// RoundTripper. Request ids and request logging then come from rt alone.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

func WithSaver(s Saver) Option {
	return func(c *Client) {
		c.saver = s
	}
}

func New(cfg Config, tokens TokenStore, notifier Notifier, nav Navigator, log *logger.Logger, opts ...Option) (*Client, error) {
	if tokens == nil {
		return nil, fmt.Errorf("client: token store is required")
	}
	if log == nil {
		log = logger.Discard()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.PrefixSegment == "" {
		cfg.PrefixSegment = DefaultPrefixSegment
	}
	if !IsAbsoluteURL(cfg.BaseURL) {
		return nil, fmt.Errorf("client: base URL %q must be an absolute http(s) URL", cfg.BaseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("client: failed to create cookie jar: %w", err)
	}

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{
			Jar: jar,
			Transport: middleware.Chain(http.DefaultTransport,
				middleware.RequestID(),
				middleware.RequestLogging(log),
			),
		},
		tokens:     tokens,
		notifier:   notifier,
		navigator:  nav,
		saver:      FileSaver{},
		logger:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// Tokens exposes the session token store the client reads and refreshes.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

type requestOptions struct {
	timeout time.Duration
	headers http.Header
}

type RequestOption func(*requestOptions)

// WithTimeout overrides the default deadline for one call.
func WithTimeout(d time.Duration) RequestOption {
	return func(o *requestOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		o.headers.Set(key, value)
	}
}

// Request describes one call before interception.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Body        io.Reader
	ContentType string
}

// StatusError is the original failure of a non-2xx exchange.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// Do runs r through the interceptors and returns the unwrapped data, or the
// whole body for passthrough responses.
func (c *Client) Do(ctx context.Context, r Request, opts ...RequestOption) (json.RawMessage, error) {
	_, body, err := c.exchange(ctx, r, opts)
	if err != nil {
		return nil, err
	}

	out := Classify(Discriminate(body))
	c.apply(out)
	if out.Failed() {
		return nil, out.Err(nil)
	}
	return out.Data, nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any, opts ...RequestOption) error {
	return c.call(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out, opts)
}

func (c *Client) Post(ctx context.Context, path string, body any, out any, opts ...RequestOption) error {
	return c.callJSON(ctx, http.MethodPost, path, body, out, opts)
}

func (c *Client) Put(ctx context.Context, path string, body any, out any, opts ...RequestOption) error {
	return c.callJSON(ctx, http.MethodPut, path, body, out, opts)
}

func (c *Client) Patch(ctx context.Context, path string, body any, out any, opts ...RequestOption) error {
	return c.callJSON(ctx, http.MethodPatch, path, body, out, opts)
}

func (c *Client) Delete(ctx context.Context, path string, query url.Values, out any, opts ...RequestOption) error {
	return c.call(ctx, Request{Method: http.MethodDelete, Path: path, Query: query}, out, opts)
}

func (c *Client) callJSON(ctx context.Context, method, path string, body any, out any, opts []RequestOption) error {
	payload := []byte("{}")
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = data
	}
	return c.call(ctx, Request{
		Method:      method,
		Path:        path,
		Body:        bytes.NewReader(payload),
		ContentType: contentTypeJSON,
	}, out, opts)
}

func (c *Client) call(ctx context.Context, r Request, out any, opts []RequestOption) error {
	data, err := c.Do(ctx, r, opts...)
	if err != nil {
		return err
	}
	return decodeInto(data, out)
}

// decodeInto stores data in out. A nil out discards it; *json.RawMessage and
// *[]byte receive the bytes as they are.
func decodeInto(data json.RawMessage, out any) error {
	switch t := out.(type) {
	case nil:
		return nil
	case *json.RawMessage:
		*t = append((*t)[:0], data...)
		return nil
	case *[]byte:
		*t = append((*t)[:0], data...)
		return nil
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return apperrors.Decode(err, data)
	}
	return nil
}

// exchange performs the request interceptor, the round trip and the
// transport-level error handling. A nil error means a 2xx response whose
// header token, if any, has already been captured.
func (c *Client) exchange(ctx context.Context, r Request, opts []RequestOption) (*http.Response, []byte, error) {
	ro := requestOptions{timeout: c.cfg.Timeout, headers: http.Header{}}
	for _, opt := range opts {
		opt(&ro)
	}

	ctx, cancel := context.WithTimeout(ctx, ro.timeout)
	defer cancel()

	target := joinURL(c.cfg.BaseURL, c.cfg.PrefixSegment, r.Path, r.Query)
	req, err := http.NewRequestWithContext(ctx, r.Method, target, r.Body)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.KindTransport, 0, "failed to create request")
	}

	req.Header.Set("Accept", acceptDefault)
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	if r.ContentType != "" {
		req.Header.Set("Content-Type", r.ContentType)
	}
	InjectToken(req.Header, c.currentToken())
	for key, values := range ro.headers {
		req.Header[key] = values
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, c.reject(ClassifyTransport(0, err.Error()), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, c.reject(ClassifyTransport(0, err.Error()), err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: body}
		out := ClassifyTransport(resp.StatusCode, errorMessage(body, statusErr))
		out.Raw = body
		return nil, nil, c.reject(out, statusErr)
	}

	if token, ok := CaptureHeaderToken(resp.Header); ok {
		c.saveToken(token)
	}
	return resp, body, nil
}

func (c *Client) reject(o Outcome, cause error) error {
	c.apply(o)
	return o.Err(cause)
}

// errorMessage prefers the message field of a JSON error body.
func errorMessage(body []byte, fallback error) string {
	var errResp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil {
		if msg := strings.TrimSpace(errResp.Message); msg != "" {
			return msg
		}
	}
	return fallback.Error()
}
