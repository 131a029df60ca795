package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAuthExhausted is wrapped by the [*APIRequestError] returned when the
	// API keeps rejecting the token after every re-authentication attempt.
	ErrAuthExhausted = errors.New("authentication could not be re-established")

	// ErrClientClosed is returned by operations on a closed [Client].
	ErrClientClosed = errors.New("client is closed")
)

// AuthenticationError reports rejected credentials or a malformed
// authentication response.
type AuthenticationError struct {
	StatusCode int
	Body       string
	Reason     string
}

func (e *AuthenticationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("authentication failed (%d): %s", e.StatusCode, e.Reason)
	}

	return "authentication failed: " + e.Reason
}

// APIRequestError reports a failure status from a data endpoint, or the
// exhaustion of re-authentication attempts (see [ErrAuthExhausted]).
type APIRequestError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	cause      error
}

func (e *APIRequestError) Error() string {
	msg := fmt.Sprintf("%s %s returned %d: %s", e.Method, e.URL, e.StatusCode, errorMessageFromBody(e.Body))
	if e.cause != nil {
		return msg + ": " + e.cause.Error()
	}

	return msg
}

func (e *APIRequestError) Unwrap() error {
	return e.cause
}

// APIResponseError reports a successful status with a body that is not a JSON
// object.
type APIResponseError struct {
	URL        string
	StatusCode int
	Body       string
	cause      error
}

func (e *APIResponseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("unexpected response from %s: %v", e.URL, e.cause)
	}

	return "unexpected response from " + e.URL
}

func (e *APIResponseError) Unwrap() error {
	return e.cause
}

// errorMessageFromBody extracts the "error" field of a JSON error body, falls
// back to the raw body, and reports an empty body explicitly.
func errorMessageFromBody(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return "(empty error body)"
	}

	var payload struct {
		Error string `json:"error"`
	}

	if err := json.Unmarshal([]byte(body), &payload); err == nil && payload.Error != "" {
		return payload.Error
	}

	return body
}
