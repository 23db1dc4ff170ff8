package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// Request is a validated, wire-ready request: path, method, serialized
// body, and headers. Builders in the operation packages produce one
// Request per call; a Request keeps its idempotency key, so re-sending
// the same Request (a caller-level retry) reuses the same key while two
// independently built Requests never share one.
type Request struct {
	// Op names the operation for logs and transport errors,
	// e.g. "payments.create".
	Op     string
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte

	// IdempotencyKey is sent as X-Idempotency-Key when non-empty. Only
	// mutating creates carry one.
	IdempotencyKey string

	// NoAuth skips the Authorization header. Used by the OAuth token
	// endpoint, which authenticates through its body instead.
	NoAuth bool
}

// NewRequest builds a bodyless request.
func NewRequest(op, method, path string) *Request {
	return &Request{Op: op, Method: method, Path: path, Header: http.Header{}}
}

// NewJSONRequest builds a request with a JSON body. Extra carries
// undocumented pass-through fields merged into the serialized body after
// the typed ones; typed fields win on collision.
func NewJSONRequest(op, method, path string, body any, extra map[string]any) (*Request, error) {
	data, err := marshalBody(body, extra)
	if err != nil {
		return nil, err
	}
	r := NewRequest(op, method, path)
	r.Body = data
	return r, nil
}

// WithQuery sets the query string.
func (r *Request) WithQuery(q url.Values) *Request {
	r.Query = q
	return r
}

// WithHeader adds an extra header, e.g. X-Platform-ID.
func (r *Request) WithHeader(key, value string) *Request {
	r.Header.Set(key, value)
	return r
}

// Idempotent mints an idempotency key for the request if it does not
// have one yet. Called by builders of mutating create operations; a
// duplicate network submission of the same Request is then deduplicated
// server-side.
func (r *Request) Idempotent() *Request {
	if r.IdempotencyKey == "" {
		r.IdempotencyKey = uuid.NewString()
	}
	return r
}

// Response is the raw envelope handed to the resolver: status code and
// body bytes. It lives only between Do and Resolve.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Do performs exactly one authenticated HTTP exchange. No retries happen
// at this layer; callers own retry policy and can rely on the request's
// idempotency key when re-submitting creates. Network failures surface
// as *TransportError and never contain the access token.
func (c *Client) Do(ctx context.Context, r *Request) (*Response, error) {
	u := c.baseURL + r.Path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	var body io.Reader
	if len(r.Body) > 0 {
		body = bytes.NewReader(r.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, r.Method, u, body)
	if err != nil {
		return nil, &TransportError{Op: r.Op, Err: err}
	}

	httpReq.Header.Set("Accept", "application/json")
	if len(r.Body) > 0 {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if !r.NoAuth {
		httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
	if r.IdempotencyKey != "" {
		httpReq.Header.Set("X-Idempotency-Key", r.IdempotencyKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Op: r.Op, Timeout: isTimeout(ctx, err), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: r.Op, Timeout: isTimeout(ctx, err), Err: err}
	}

	c.logger.Debug().
		Str("op", r.Op).
		Str("method", r.Method).
		Str("path", r.Path).
		Int("status", resp.StatusCode).
		Msg("mercadopago request")

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// marshalBody serializes the typed options and layers the extra
// pass-through fields on top. Typed fields always win.
func marshalBody(body any, extra map[string]any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return data, nil
	}
	var merged map[string]any
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}
