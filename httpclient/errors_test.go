package httpclient

import (
	"fmt"
	"testing"
)

func TestErrorCode_String(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeTimeout, "timeout"},
		{ErrCodeConnection, "connection"},
		{ErrCodeAuth, "auth"},
		{ErrCodeNotFound, "not_found"},
		{ErrCodeRateLimit, "rate_limit"},
		{ErrCodeValidation, "validation"},
		{ErrCodeServer, "server"},
		{ErrCodeDecode, "decode"},
		{ErrorCode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ErrorCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{StatusCode: 404, Code: ErrCodeNotFound, Message: "HTTP 404"}, "httpclient: not_found (HTTP 404): HTTP 404"},
		{&Error{StatusCode: 401, Code: ErrCodeAuth, Type: "authentication", Message: "Invalid access token"}, "httpclient: auth (HTTP 401, authentication): Invalid access token"},
		{&Error{Code: ErrCodeConnection, Message: "connection refused"}, "httpclient: connection: connection refused"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := NewValidationError("bad input")
	outer := &Error{Code: ErrCodeServer, Message: "wrapped", Err: inner}
	if outer.Unwrap() != inner {
		t.Error("Unwrap did not return inner error")
	}
}

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		code    int
		wantNil bool
		errCode ErrorCode
		retry   bool
	}{
		{200, true, 0, false},
		{201, true, 0, false},
		{204, true, 0, false},
		{400, false, ErrCodeValidation, false},
		{401, false, ErrCodeAuth, false},
		{403, false, ErrCodeAuth, false},
		{404, false, ErrCodeNotFound, false},
		{422, false, ErrCodeValidation, false},
		{429, false, ErrCodeRateLimit, true},
		{500, false, ErrCodeServer, true},
		{503, false, ErrCodeServer, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			err := ClassifyStatusCode(tt.code, nil)
			if tt.wantNil {
				if err != nil {
					t.Fatalf("expected nil, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Code != tt.errCode {
				t.Errorf("code = %s, want %s", err.Code, tt.errCode)
			}
			if err.Retryable != tt.retry {
				t.Errorf("retryable = %v, want %v", err.Retryable, tt.retry)
			}
			if err.Message != fmt.Sprintf("HTTP %d", tt.code) {
				t.Errorf("unexpected fallback message %q", err.Message)
			}
		})
	}
}

func TestClassifyStatusCode_APIErrorBody(t *testing.T) {
	body := []byte(`{"error":{"type":"validation","message":"Wrong format of request"}}`)
	err := ClassifyStatusCode(400, body)
	if err.Type != "validation" {
		t.Errorf("expected type validation, got %q", err.Type)
	}
	if err.Message != "Wrong format of request" {
		t.Errorf("expected API message, got %q", err.Message)
	}
	if string(err.Body) != string(body) {
		t.Error("expected raw body to be kept")
	}
	if APIErrorType(fmt.Errorf("wrapped: %w", err)) != "validation" {
		t.Error("APIErrorType should see through wrapping")
	}
}

func TestClassifyStatusCode_NonJSONBody(t *testing.T) {
	err := ClassifyStatusCode(502, []byte("<html>bad gateway</html>"))
	if err.Type != "" || err.Message != "HTTP 502" {
		t.Errorf("expected fallback message, got type=%q message=%q", err.Type, err.Message)
	}
}

func TestPredicates(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", ClassifyStatusCode(404, nil))
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should match wrapped error")
	}
	if IsAuth(wrapped) || IsServerError(wrapped) || IsRateLimit(wrapped) {
		t.Error("unexpected predicate match")
	}
	if !IsTimeout(NewTimeoutError(fmt.Errorf("deadline"))) {
		t.Error("IsTimeout should match")
	}
	if !IsConnection(NewConnectionError(fmt.Errorf("refused"))) {
		t.Error("IsConnection should match")
	}
	if !IsRetryable(ClassifyStatusCode(503, nil)) {
		t.Error("503 should be retryable")
	}
	if IsRetryable(fmt.Errorf("plain")) {
		t.Error("plain errors are not retryable")
	}
	if APIErrorType(fmt.Errorf("plain")) != "" {
		t.Error("plain errors have no API type")
	}
}
