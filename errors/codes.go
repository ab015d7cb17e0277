package errors

import "net/http"

// ErrorCode is a machine-readable error code.
type ErrorCode string

const (
	// ErrCodeClientNotBound: an operation that needs a transport ran on an
	// adapter constructed without one.
	ErrCodeClientNotBound ErrorCode = "CLIENT_NOT_BOUND"
	// ErrCodeUnexpectedResponse: the remote envelope did not have the shape
	// the caller asked for (missing list key, record without an id).
	ErrCodeUnexpectedResponse ErrorCode = "UNEXPECTED_RESPONSE"

	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField  ErrorCode = "MISSING_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"

	// ErrCodeChatActive and ErrCodeChatInactive reject actions that need a
	// chat in the other state.
	ErrCodeChatActive   ErrorCode = "CHAT_ACTIVE"
	ErrCodeChatInactive ErrorCode = "CHAT_INACTIVE"

	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// kinds maps a code to the chat-service error "type" and the status the twin
// answers with. Unlisted codes are internal errors.
var kinds = map[ErrorCode]struct {
	apiType string
	status  int
}{
	ErrCodeNotFound:      {"not_found", http.StatusNotFound},
	ErrCodeInvalidInput:  {"validation", http.StatusBadRequest},
	ErrCodeMissingField:  {"validation", http.StatusBadRequest},
	ErrCodeInvalidFormat: {"validation", http.StatusBadRequest},
	ErrCodeChatActive:    {"validation", http.StatusUnprocessableEntity},
	ErrCodeChatInactive:  {"chat_inactive", http.StatusUnprocessableEntity},
	ErrCodeUnauthorized:  {"authentication", http.StatusUnauthorized},
	ErrCodeInvalidToken:  {"authentication", http.StatusUnauthorized},
	ErrCodeForbidden:     {"authorization", http.StatusForbidden},
}

// APIType returns the chat-service error type reported for code.
func APIType(code ErrorCode) string {
	if k, ok := kinds[code]; ok {
		return k.apiType
	}
	return "internal"
}

func statusFor(code ErrorCode) int {
	if k, ok := kinds[code]; ok {
		return k.status
	}
	return http.StatusInternalServerError
}
