package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
	"net/http"
)

// AppError is the error type shared by the client adapters and the twin.
type AppError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	// HTTPStatus is the status the twin answers with for this error.
	HTTPStatus int   `json:"-"`
	Cause      error `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying error and returns e.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges details into e and returns e.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	maps.Copy(e.Details, details)
	return e
}

// WithDetail sets one detail and returns e.
func (e *AppError) WithDetail(key string, value any) *AppError {
	return e.WithDetails(map[string]any{key: value})
}

// New creates an AppError. A zero httpStatus takes the status registered for
// code.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	if httpStatus == 0 {
		httpStatus = statusFor(code)
	}
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func newWith(code ErrorCode, message string, details map[string]any) *AppError {
	e := New(code, message, 0)
	if len(details) > 0 {
		e.Details = details
	}
	return e
}

// ClientNotBound reports that op needs a transport and none was configured.
func ClientNotBound(op string) *AppError {
	return newWith(ErrCodeClientNotBound, fmt.Sprintf("can't %s without a REST client", op),
		map[string]any{"operation": op})
}

// UnexpectedResponse reports a response envelope of the wrong shape.
func UnexpectedResponse(path, reason string) *AppError {
	e := newWith(ErrCodeUnexpectedResponse, fmt.Sprintf("unexpected response from %s: %s", path, reason),
		map[string]any{"path": path})
	e.HTTPStatus = http.StatusBadGateway
	return e
}

func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return newWith(ErrCodeNotFound, fmt.Sprintf("The requested %s was not found.", resource), details)
}

func InvalidInput(field, reason string) *AppError {
	var details map[string]any
	if field != "" {
		details = map[string]any{"field": field}
	}
	return newWith(ErrCodeInvalidInput, "Invalid input: "+reason, details)
}

// Validation is a bare validation failure. Callers attach field errors as
// details.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message, 0)
}

func MissingField(field string) *AppError {
	return newWith(ErrCodeMissingField, "Missing required field: "+field, map[string]any{"field": field})
}

func InvalidFormat(field, expectedFormat string) *AppError {
	return newWith(ErrCodeInvalidFormat,
		fmt.Sprintf("Invalid format for %s. Expected: %s", field, expectedFormat),
		map[string]any{"field": field, "expected_format": expectedFormat})
}

// ChatActive rejects resuming a chat whose thread is still open.
func ChatActive(chatID string) *AppError {
	return newWith(ErrCodeChatActive, "Chat is already active.", map[string]any{"chat_id": chatID})
}

// ChatInactive rejects events sent to a chat with no open thread.
func ChatInactive(chatID string) *AppError {
	return newWith(ErrCodeChatInactive, "Chat is inactive.", map[string]any{"chat_id": chatID})
}

func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return New(ErrCodeUnauthorized, reason, 0)
}

// InvalidToken reports credentials that failed verification.
func InvalidToken() *AppError {
	return New(ErrCodeInvalidToken, "Invalid access token.", 0)
}

// Forbidden reports an authenticated caller acting outside its rights.
func Forbidden(reason string) *AppError {
	if reason == "" {
		reason = "Access denied."
	}
	return New(ErrCodeForbidden, reason, 0)
}

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred.", 0).WithCause(cause)
}

// IsClientNotBound reports whether err is, or wraps, a configuration error
// raised because no transport was bound.
func IsClientNotBound(err error) bool {
	return HasCode(err, ErrCodeClientNotBound)
}

// IsUnexpectedResponse reports whether err is, or wraps, an envelope-shape
// error.
func IsUnexpectedResponse(err error) bool {
	return HasCode(err, ErrCodeUnexpectedResponse)
}

// IsValidation reports whether err carries one of the validation codes.
func IsValidation(err error) bool {
	return HasCode(err, ErrCodeInvalidInput, ErrCodeMissingField, ErrCodeInvalidFormat)
}

// HasCode reports whether err is, or wraps, an AppError with one of codes.
func HasCode(err error, codes ...ErrorCode) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return false
	}
	for _, c := range codes {
		if appErr.Code == c {
			return true
		}
	}
	return false
}

func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError finds the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
