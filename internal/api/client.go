// Package api is the Resource Client: one RPC-style POST per resource kind,
// with the operation carried in the body's integer Type field.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mediassist/internal/clinic"
	"mediassist/internal/metrics"
	"mediassist/internal/session"
)

// wireType maps operations to the backend's Type discriminator.
var wireType = map[clinic.Operation]int{
	clinic.OpCreate: 1,
	clinic.OpUpdate: 2,
	clinic.OpList:   4,
	clinic.OpDelete: 5,
}

// WireType returns the Type value sent for op.
func WireType(op clinic.Operation) (int, bool) {
	t, ok := wireType[op]
	return t, ok
}

// Result is the response envelope shared by every endpoint.
type Result struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Token   string          `json:"token,omitempty"`
	User    *session.User   `json:"user,omitempty"`
}

// Caller performs one resource call. *Client implements it.
type Caller interface {
	Call(ctx context.Context, kind clinic.Kind, op clinic.Operation, payload any) (*Result, error)
}

// Client talks to the clinic API. It is safe for concurrent use.
type Client struct {
	base    *url.URL
	http    *http.Client
	session *session.Session
	log     *zap.Logger
	metrics *metrics.Collector
}

type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

func WithMetrics(m *metrics.Collector) Option {
	return func(c *Client) { c.metrics = m }
}

// WithSession attaches the session whose token is sent as a bearer credential.
func WithSession(s *session.Session) Option {
	return func(c *Client) { c.session = s }
}

// NewClient returns a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing API base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("API base URL %q is not absolute", baseURL)
	}
	c := &Client{
		base:    u,
		http:    http.DefaultClient,
		session: &session.Session{},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *session.Session {
	return c.session
}

// Call posts payload to kind's endpoint with Type set for op. A response with
// success:false is returned as a Result, not an error.
func (c *Client) Call(ctx context.Context, kind clinic.Kind, op clinic.Operation, payload any) (*Result, error) {
	t, ok := wireType[op]
	if !ok {
		return nil, fmt.Errorf("operation %d has no wire type", op)
	}

	body, err := withType(payload, t)
	if err != nil {
		return nil, fmt.Errorf("encoding %s %s payload: %w", op, kind, err)
	}

	start := time.Now()
	res, err := c.post(ctx, kind.Endpoint(), body)
	elapsed := time.Since(start)

	outcome := "success"
	switch {
	case err != nil:
		outcome = "transport_error"
		var te *TransportError
		if errors.As(err, &te) {
			te.Kind, te.Op = kind, op
		}
		c.log.Warn("resource call failed",
			zap.String("kind", string(kind)),
			zap.Stringer("operation", op),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
	case !res.Success:
		outcome = "rejected"
		c.log.Info("resource call rejected",
			zap.String("kind", string(kind)),
			zap.Stringer("operation", op),
			zap.String("message", res.Message),
		)
	default:
		level := zap.DebugLevel
		if op.IsMutation() {
			level = zap.InfoLevel
		}
		c.log.Log(level, "resource call",
			zap.String("kind", string(kind)),
			zap.Stringer("operation", op),
			zap.Duration("elapsed", elapsed),
		)
	}
	c.metrics.ObserveCall(string(kind), op.String(), outcome, elapsed)

	return res, err
}

// post sends body to path and decodes the envelope.
func (c *Client) post(ctx context.Context, path string, body []byte) (*Result, error) {
	target := c.base.JoinPath(path).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Path: path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Path: path, StatusCode: resp.StatusCode, Err: err}
	}

	var res Result
	decodeErr := json.Unmarshal(raw, &res)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		te := &TransportError{
			Path:       path,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", http.StatusText(resp.StatusCode)),
		}
		if decodeErr == nil {
			te.Message = res.Message
		}
		return nil, te
	}
	if decodeErr != nil {
		return nil, &TransportError{Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", decodeErr)}
	}
	return &res, nil
}

// withType encodes payload as a JSON object and sets its Type member.
func withType(payload any, t int) ([]byte, error) {
	fields := map[string]json.RawMessage{}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("payload must encode as an object: %w", err)
		}
		if fields == nil {
			fields = map[string]json.RawMessage{}
		}
	}
	fields["Type"] = json.RawMessage(fmt.Sprint(t))
	return json.Marshal(fields)
}
