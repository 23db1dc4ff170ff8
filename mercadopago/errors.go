package mercadopago

import (
	"errors"
	"fmt"
)

// ErrMissingToken is returned by ClientBuilder.Build when no access token
// was provided. Credentials are a construction-time concern, not a
// request-time one.
var ErrMissingToken = errors.New("access token is required")

// ValidationError reports a request that failed local validation before
// any network call was made. Field names the offending option field using
// its wire name (e.g. "transaction_amount", "payer.email").
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TransportError reports a network-level failure (timeout, connection
// refused, TLS failure). It never contains the access token.
type TransportError struct {
	Op      string
	Timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s: request timed out: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ErrorCause is one entry of the cause list MercadoPago attaches to error
// responses. The code values are documented per route.
type ErrorCause struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
	// The API returns a date with a UUID appended, e.g.
	// "08-09-2023T22:33:32UTC;c68defe3-5b82-4775-bc45-4349daa88bb0".
	Data string `json:"data"`
}

// APIError is a structured rejection from MercadoPago (4xx with a
// parseable error body). The code and causes are propagated verbatim.
type APIError struct {
	Status  int
	Code    string
	Message string
	Cause   []ErrorCause
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("mercadopago: API error (status %d, %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("mercadopago: API error (status %d): %s", e.Status, e.Message)
}

// IsUnauthorized reports whether the error indicates invalid credentials.
func (e *APIError) IsUnauthorized() bool {
	return e.Status == 401 || e.Status == 403
}

// IsNotFound reports whether the error indicates a missing resource.
func (e *APIError) IsNotFound() bool {
	return e.Status == 404
}

// MalformedSuccessError reports a 2xx response whose body did not match
// the expected resource schema. Callers can detect API drift instead of
// silently receiving a zero value. The raw body is retained.
type MalformedSuccessError struct {
	Status int
	Body   []byte
	Err    error
}

func (e *MalformedSuccessError) Error() string {
	return fmt.Sprintf("mercadopago: unexpected success body (status %d): %v", e.Status, e.Err)
}

func (e *MalformedSuccessError) Unwrap() error { return e.Err }

// MalformedErrorResponse reports a 4xx response whose body did not match
// the documented error schema. The raw body is retained for diagnostics.
type MalformedErrorResponse struct {
	Status int
	Body   []byte
	Err    error
}

func (e *MalformedErrorResponse) Error() string {
	return fmt.Sprintf("mercadopago: unparseable error body (status %d)", e.Status)
}

func (e *MalformedErrorResponse) Unwrap() error { return e.Err }

// ServerError reports a 5xx from MercadoPago. Potentially transient;
// retry policy is the caller's responsibility.
type ServerError struct {
	Status int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("mercadopago: server error (status %d)", e.Status)
}
