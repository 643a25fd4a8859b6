package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// GenericErrorMessage is used when a failed response carries no readable
// detail.
const GenericErrorMessage = "API request failed"

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
	RequestID  string
	// Structured is false when the body had no detail or message field and
	// Message holds the generic fallback.
	Structured bool
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("%s (status %d, request_id=%s)", e.Message, e.StatusCode, e.RequestID)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// TransportError wraps failures that happened before a response was read.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError is a client-side check that failed before any request was
// sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Kind classifies an error returned by the client.
type Kind int

const (
	KindNone Kind = iota
	KindTransport
	KindAPI
	KindAPIUnstructured
	KindValidation
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTransport:
		return "transport"
	case KindAPI:
		return "api"
	case KindAPIUnstructured:
		return "api_unstructured"
	case KindValidation:
		return "validation"
	}
	return "other"
}

// ErrorKind reports which class err belongs to.
func ErrorKind(err error) Kind {
	if err == nil {
		return KindNone
	}
	var apiErr *APIError
	var transportErr *TransportError
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &apiErr):
		if apiErr.Structured {
			return KindAPI
		}
		return KindAPIUnstructured
	case errors.As(err, &transportErr):
		return KindTransport
	}
	return KindOther
}

func statusIs(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// IsNotFound returns true if the error is a 404 not found.
func IsNotFound(err error) bool { return statusIs(err, http.StatusNotFound) }

// IsUnauthorized returns true if the server rejected the credentials.
func IsUnauthorized(err error) bool { return statusIs(err, http.StatusUnauthorized) }

// IsForbidden returns true if the caller's role may not perform the call.
func IsForbidden(err error) bool { return statusIs(err, http.StatusForbidden) }

// IsConflict returns true if the error is a 409 conflict.
func IsConflict(err error) bool { return statusIs(err, http.StatusConflict) }

// parseAPIError reads "detail" (falling back to "message") from a JSON error
// body. Anything else yields the generic message.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Message: GenericErrorMessage}
	var payload struct {
		Detail    json.RawMessage `json:"detail"`
		Message   string          `json:"message"`
		Code      string          `json:"code"`
		RequestID string          `json:"request_id"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}
	apiErr.Code = payload.Code
	apiErr.RequestID = payload.RequestID
	if msg := detailMessage(payload.Detail); msg != "" {
		apiErr.Message = msg
		apiErr.Structured = true
	} else if strings.TrimSpace(payload.Message) != "" {
		apiErr.Message = payload.Message
		apiErr.Structured = true
	}
	return apiErr
}

// detailMessage accepts a string detail or a list of {"msg": ...} entries.
func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
