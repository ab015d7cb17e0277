package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies a failed request.
type ErrorCode int

const (
	ErrCodeTimeout    ErrorCode = iota // request or dial deadline
	ErrCodeConnection                  // refused, reset, DNS
	ErrCodeAuth                        // 401, 403
	ErrCodeNotFound                    // 404
	ErrCodeRateLimit                   // 429
	// ErrCodeValidation covers other 4xx answers and requests that could not
	// be built.
	ErrCodeValidation
	ErrCodeServer // 5xx
	// ErrCodeDecode is a 2xx answer whose body is not valid JSON.
	ErrCodeDecode
)

var codeNames = [...]string{
	ErrCodeTimeout:    "timeout",
	ErrCodeConnection: "connection",
	ErrCodeAuth:       "auth",
	ErrCodeNotFound:   "not_found",
	ErrCodeRateLimit:  "rate_limit",
	ErrCodeValidation: "validation",
	ErrCodeServer:     "server",
	ErrCodeDecode:     "decode",
}

func (c ErrorCode) String() string {
	if c >= 0 && int(c) < len(codeNames) {
		return codeNames[c]
	}
	return "unknown"
}

// Error is returned for every failed request.
type Error struct {
	// StatusCode is 0 when no response arrived.
	StatusCode int
	Code       ErrorCode
	// Type is the "type" of the API error envelope, e.g. "authentication".
	// Empty when the body carries none.
	Type string
	// Message is the API message when the body carries one.
	Message   string
	Retryable bool
	Body      []byte
	Err       error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode == 0:
		return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
	case e.Type != "":
		return fmt.Sprintf("httpclient: %s (HTTP %d, %s): %s", e.Code, e.StatusCode, e.Type, e.Message)
	default:
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func transportError(code ErrorCode, err error) *Error {
	return &Error{Code: code, Message: err.Error(), Retryable: true, Err: err}
}

// NewTimeoutError wraps a deadline that expired before a response arrived.
func NewTimeoutError(err error) *Error { return transportError(ErrCodeTimeout, err) }

// NewConnectionError wraps a failure to reach the server.
func NewConnectionError(err error) *Error { return transportError(ErrCodeConnection, err) }

// NewValidationError reports a request that could not be built.
func NewValidationError(msg string) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg}
}

// NewDecodeError reports a success body that is not valid JSON.
func NewDecodeError(statusCode int, body []byte, err error) *Error {
	return &Error{
		StatusCode: statusCode,
		Code:       ErrCodeDecode,
		Message:    fmt.Sprintf("decode response: %v", err),
		Body:       body,
		Err:        err,
	}
}

var statusCodes = map[int]ErrorCode{
	http.StatusUnauthorized:    ErrCodeAuth,
	http.StatusForbidden:       ErrCodeAuth,
	http.StatusNotFound:        ErrCodeNotFound,
	http.StatusTooManyRequests: ErrCodeRateLimit,
}

// ClassifyStatusCode turns a non-2xx answer into an *Error carrying the
// type and message of the API error envelope
// {"error":{"type":"...","message":"..."}}. It returns nil for 2xx.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	e := &Error{StatusCode: statusCode, Body: body, Code: ErrCodeServer}
	if code, ok := statusCodes[statusCode]; ok {
		e.Code = code
	} else if statusCode >= 400 && statusCode < 500 {
		e.Code = ErrCodeValidation
	}
	e.Retryable = e.Code == ErrCodeRateLimit || statusCode >= 500

	var env struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if len(body) > 0 && json.Unmarshal(body, &env) == nil {
		e.Type, e.Message = env.Error.Type, env.Error.Message
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("HTTP %d", statusCode)
	}
	return e
}

func codeOf(err error) (ErrorCode, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.Code, true
}

func is(err error, code ErrorCode) bool {
	c, ok := codeOf(err)
	return ok && c == code
}

func IsTimeout(err error) bool     { return is(err, ErrCodeTimeout) }
func IsConnection(err error) bool  { return is(err, ErrCodeConnection) }
func IsAuth(err error) bool        { return is(err, ErrCodeAuth) }
func IsNotFound(err error) bool    { return is(err, ErrCodeNotFound) }
func IsRateLimit(err error) bool   { return is(err, ErrCodeRateLimit) }
func IsServerError(err error) bool { return is(err, ErrCodeServer) }

// IsRetryable reports transport failures, 429s and 5xx answers.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}

// APIErrorType returns the API error type carried by err, or "".
func APIErrorType(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return ""
}
