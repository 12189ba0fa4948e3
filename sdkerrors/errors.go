// Package sdkerrors defines the error taxonomy returned by the BinSolver client.
//
// Every error produced by the library is one of four concrete types:
//
//   - [*TransportError]: the request never produced an HTTP response
//     (DNS failure, refused connection, timeout, closed client).
//   - [*APIError]: the service answered with a non-2xx status.
//   - [*DecodeError]: the service answered 2xx but the body is malformed.
//   - [*ValidationError]: the caller-supplied request was rejected before
//     any network call.
//
// All of them satisfy [Error] and match [ErrBinSolver] with errors.Is, so
// callers can either branch on the concrete type with errors.As or treat
// every library failure uniformly:
//
//	resp, err := c.Pack(ctx, req)
//	var apiErr *sdkerrors.APIError
//	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnprocessableEntity {
//	    // fix the request
//	}
package sdkerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrBinSolver matches every error produced by this library.
var ErrBinSolver = errors.New("binsolver")

// Kind classifies library errors.
type Kind int

const (
	// KindUnknown is returned by KindOf for errors outside the taxonomy.
	KindUnknown Kind = iota
	// KindTransport marks network-level failures.
	KindTransport
	// KindAPI marks structured non-2xx responses.
	KindAPI
	// KindDecode marks malformed success responses.
	KindDecode
	// KindValidation marks rejected caller input.
	KindValidation
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAPI:
		return "api"
	case KindDecode:
		return "decode"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is the capability shared by all library errors.
type Error interface {
	error
	Kind() Kind
}

// TransportError represents a failure below HTTP: the request produced no
// response, so there is no status code.
type TransportError struct {
	// Op is the client operation ("health", "pack")
	Op string

	// URL is the request URL
	URL string

	// Timeout is true when the configured deadline expired
	Timeout bool

	// Err is the underlying network error
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("binsolver: %s %s: timeout: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("binsolver: %s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap returns the underlying error for error chain support.
func (e *TransportError) Unwrap() error { return e.Err }

// Is reports whether target is ErrBinSolver.
func (e *TransportError) Is(target error) bool { return target == ErrBinSolver }

// Kind implements Error.
func (e *TransportError) Kind() Kind { return KindTransport }

// APIError represents a non-2xx response from the service.
type APIError struct {
	// StatusCode is the HTTP status code
	StatusCode int

	// Message is the service message, or the raw body when it was not structured
	Message string

	// Code is the machine-readable error code; empty when the service sent none
	Code string

	// RequestID echoes the X-Request-ID response header when present
	RequestID string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("binsolver: api error %d: %s (%s)", e.StatusCode, e.Message, e.Code)
	}
	return fmt.Sprintf("binsolver: api error %d: %s", e.StatusCode, e.Message)
}

// Is reports whether target is ErrBinSolver.
func (e *APIError) Is(target error) bool { return target == ErrBinSolver }

// Kind implements Error.
func (e *APIError) Kind() Kind { return KindAPI }

// Temporary reports whether the status is one a caller may reasonably retry.
// The client itself never retries.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// DecodeError represents a success response whose body failed validation.
type DecodeError struct {
	// Field is the path of the offending field ("stats.placed"); empty when the
	// body as a whole could not be parsed
	Field string

	// Message describes the problem
	Message string

	// Status is the HTTP status of the response
	Status int

	// Body is the raw response body
	Body []byte

	// Err is the underlying parse error (if any)
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("binsolver: decode response: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("binsolver: decode response: %s", e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *DecodeError) Unwrap() error { return e.Err }

// Is reports whether target is ErrBinSolver.
func (e *DecodeError) Is(target error) bool { return target == ErrBinSolver }

// Kind implements Error.
func (e *DecodeError) Kind() Kind { return KindDecode }

// ValidationError represents rejected caller input.
type ValidationError struct {
	// Field is the path of the invalid field ("items[0].w")
	Field string

	// Message describes what is invalid about the field
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "binsolver: validation: " + e.Message
	}
	return fmt.Sprintf("binsolver: validation: %s: %s", e.Field, e.Message)
}

// Is reports whether target is ErrBinSolver.
func (e *ValidationError) Is(target error) bool { return target == ErrBinSolver }

// Kind implements Error.
func (e *ValidationError) Kind() Kind { return KindValidation }

// KindOf returns the kind of the first library error in err's chain.
func KindOf(err error) Kind {
	var e Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return KindUnknown
}

// IsTimeout reports whether err is a transport timeout.
func IsTimeout(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Timeout
}
