// Package crmapi is the shared transport to the CRM REST API. Authenticated calls
// carry the session's bearer token through an oauth2.Transport.
package crmapi

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

	apperrors "github.com/softnova/crm-console/internal/errors"
	"github.com/softnova/crm-console/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
)

const (
	DefaultBaseURL = "http://localhost:3000/api"
	DefaultTimeout = 15 * time.Second

	maxErrorBody = 1 << 20
)

type Option func(*Client)

// WithHTTPClient replaces the underlying client. Its Transport becomes the base of
// the authenticated transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.anon = hc
	}
}

// WithTracer replaces the global console tracer
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = tracer
	}
}

// Client talks to the CRM. The zero value is not usable; build one with New.
type Client struct {
	baseURL *url.URL
	anon    *http.Client
	authed  *http.Client
	tracer  trace.Tracer
}

func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("[crmapi.New] invalid base url %q", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL: u,
		anon:    &http.Client{Timeout: timeout},
		tracer:  telemetry.Tracer(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithTokenSource returns a copy of c whose authenticated calls carry tokens from ts
func (c *Client) WithTokenSource(ts oauth2.TokenSource) *Client {
	base := c.anon.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	clone := *c
	clone.authed = &http.Client{
		Timeout:   c.anon.Timeout,
		Transport: &oauth2.Transport{Source: ts, Base: base},
	}
	return &clone
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) Leads() *LeadsService {
	return &LeadsService{client: c}
}

func (c *Client) Users() *UsersService {
	return &UsersService{client: c}
}

type call struct {
	method string
	path   string
	query  url.Values
	body   any
	out    any
	authed bool
}

func (c call) op() string {
	return c.method + " " + c.path
}

func (c *Client) do(ctx context.Context, req call) error {
	ctx, span := c.tracer.Start(ctx, "crmapi "+req.op(), trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", req.method),
		attribute.String("url.path", req.path),
	)

	err := c.roundTrip(ctx, req, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, req call, span trace.Span) error {
	hc := c.anon
	if req.authed {
		if c.authed == nil {
			return fmt.Errorf("%s: %w", req.op(), apperrors.ErrNoSession)
		}
		hc = c.authed
	}

	target := *c.baseURL
	target.Path = c.baseURL.Path + req.path
	if len(req.query) > 0 {
		target.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		encoded, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", req.op(), err)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target.String(), body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", req.op(), err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(httpReq)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoSession) {
			return fmt.Errorf("%s: %w", req.op(), apperrors.ErrNoSession)
		}
		return &apperrors.APIError{Kind: apperrors.ErrNetwork, Op: req.op(), Cause: err}
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &apperrors.APIError{
			Kind:       kindForStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Message:    serverMessage(data),
			Op:         req.op(),
		}
	}

	if req.out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apperrors.APIError{Kind: apperrors.ErrNetwork, StatusCode: resp.StatusCode, Op: req.op(), Cause: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, req.out); err != nil {
		return &apperrors.APIError{Kind: apperrors.ErrNetwork, StatusCode: resp.StatusCode, Op: req.op(), Cause: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func kindForStatus(status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.ErrAuthentication
	case http.StatusNotFound:
		return apperrors.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.ErrValidation
	default:
		return apperrors.ErrNetwork
	}
}

// serverMessage pulls the human-readable text out of an error payload. The CRM uses
// "mensaje"; "message" and "error" are accepted too.
func serverMessage(data []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"mensaje", "message", "error"} {
		if s, ok := payload[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
