// Package api is the REST client for the HungryNow backend. Every method
// maps onto one backend route, performs no validation and returns the
// decoded envelope or an *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/hungrynow/hungrynow/pkg/errors"
	"github.com/hungrynow/hungrynow/pkg/httpclient"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8080/api"

// Credential is the bearer token a Client attaches to every request. The
// zero value makes anonymous requests.
type Credential struct {
	Token string
}

// Valid reports whether the credential carries a token.
func (c Credential) Valid() bool { return c.Token != "" }

// Envelope is the success body of every route except image upload.
type Envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
}

// Error is returned for non-2xx responses and transport failures. Message
// is safe to show to a user. Status is 0 when no response was received.
type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Options configures a Client.
type Options struct {
	BaseURL string
	// HTTP sends requests. Defaults to a single-attempt httpclient.Client.
	HTTP   httpclient.Doer
	Logger *slog.Logger
}

// Client is bound to one credential. Build a new Client when the
// credential changes.
type Client struct {
	baseURL string
	http    httpclient.Doer
	cred    Credential
	logger  *slog.Logger
}

// New creates a client that authenticates with cred.
func New(opts Options, cred Credential) (*Client, error) {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", base)
	}

	doer := opts.HTTP
	if doer == nil {
		doer = httpclient.New(httpclient.DefaultConfig())
	}
	l := opts.Logger
	if l == nil {
		l = slog.Default()
	}

	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		http:    doer,
		cred:    cred,
		logger:  l,
	}, nil
}

// Credential returns the credential the client was built with.
func (c *Client) Credential() Credential { return c.cred }

// BaseURL returns the backend root, without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// doJSON sends in (when non-nil) as JSON and decodes a 2xx body into out.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	var contentType string
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, contentType, body, out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	if body == nil {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.cred.Valid() {
		req.Header.Set("Authorization", "Bearer "+c.cred.Token)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		c.logger.DebugContext(ctx, "request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return &Error{Message: err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return toError(resp.StatusCode, httpclient.ParseResponseError(resp))
	}
	defer func() { _ = resp.Body.Close() }()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return &Error{
			Status:  resp.StatusCode,
			Message: "Unexpected response from server",
			Err:     fmt.Errorf("decode %s %s response: %w", method, path, err),
		}
	}
	return nil
}

func toError(status int, err error) *Error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return &Error{Status: status, Code: appErr.Code, Message: appErr.Message, Err: appErr}
	}
	return &Error{Status: status, Message: err.Error(), Err: err}
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsRejected reports whether the backend refused the request with a 4xx.
func IsRejected(err error) bool {
	return httpclient.IsClientError(StatusCode(err))
}

func pathID(id string) string {
	return "/" + url.PathEscape(id)
}
