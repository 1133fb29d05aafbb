package sonarr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Common errors
var (
	// ErrInvalidURL indicates the base URL could not be used
	ErrInvalidURL = errors.New("invalid sonarr URL")
	// ErrInvalidCredential indicates the API key cannot be sent as a header value
	ErrInvalidCredential = errors.New("invalid sonarr API key")
	// ErrUnauthorized matches 401 and 403 responses
	ErrUnauthorized = errors.New("unauthorized: invalid API key")
	// ErrNotFound matches 404 responses
	ErrNotFound = errors.New("resource not found")
)

// maxErrorBody bounds the response body kept on a StatusError.
const maxErrorBody = 512

// ErrorKind classifies errors returned by the client.
type ErrorKind int

const (
	// KindUnknown is any error not produced by this package
	KindUnknown ErrorKind = iota
	// KindInvalidURL is a construction-time URL error
	KindInvalidURL
	// KindInvalidCredential is a construction-time API key error
	KindInvalidCredential
	// KindTransport is a network, connect or timeout failure
	KindTransport
	// KindHTTPStatus is a non-2xx response
	KindHTTPStatus
	// KindDecode is a 2xx response with an unexpected body
	KindDecode
)

// String returns the string representation of an ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidURL:
		return "invalid_url"
	case KindInvalidCredential:
		return "invalid_credential"
	case KindTransport:
		return "transport"
	case KindHTTPStatus:
		return "http_status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Kind reports which class of failure err belongs to.
func Kind(err error) ErrorKind {
	var (
		statusErr    *StatusError
		decodeErr    *DecodeError
		transportErr *TransportError
	)
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrInvalidURL):
		return KindInvalidURL
	case errors.Is(err, ErrInvalidCredential):
		return KindInvalidCredential
	case errors.As(err, &statusErr):
		return KindHTTPStatus
	case errors.As(err, &decodeErr):
		return KindDecode
	case errors.As(err, &transportErr):
		return KindTransport
	}
	return KindUnknown
}

// TransportError is returned when a request produced no HTTP response.
type TransportError struct {
	Method   string
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sonarr request %s %s failed: %v", e.Method, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError represents a non-2xx response from Sonarr
type StatusError struct {
	Method     string
	Endpoint   string
	StatusCode int
	// Message is the service-provided error text, when the body carried one
	Message string
	// Body is the raw response body, truncated
	Body string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("sonarr API error: %s %s: status %d: %s", e.Method, e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("sonarr API error: %s %s: status %d", e.Method, e.Endpoint, e.StatusCode)
}

// Is matches the status-based sentinels.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.IsNotFound()
	case ErrUnauthorized:
		return e.IsUnauthorized()
	}
	return false
}

// IsNotFound checks if the error indicates a not found response
func (e *StatusError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *StatusError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// DecodeError is returned when a successful response body does not match the
// expected shape.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode sonarr %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// newStatusError builds a StatusError, pulling the message out of Sonarr's
// error body when there is one. Sonarr answers with either
// {"message": "..."} or a validation array of {"errorMessage": "..."}.
func newStatusError(method, endpoint string, status int, body []byte) *StatusError {
	e := &StatusError{
		Method:     method,
		Endpoint:   endpoint,
		StatusCode: status,
		Body:       truncate(string(body), maxErrorBody),
	}

	var single struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &single); err == nil && single.Message != "" {
		e.Message = single.Message
		return e
	}

	var validation []struct {
		PropertyName string `json:"propertyName"`
		ErrorMessage string `json:"errorMessage"`
	}
	if err := json.Unmarshal(body, &validation); err == nil && len(validation) > 0 {
		e.Message = validation[0].ErrorMessage
		if validation[0].PropertyName != "" {
			e.Message = validation[0].PropertyName + ": " + e.Message
		}
		return e
	}

	if text := strings.TrimSpace(e.Body); text != "" && !strings.HasPrefix(text, "<") {
		e.Message = text
	}
	return e
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
