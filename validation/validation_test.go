package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/livechat/errors"
)

type event struct {
	Type string `json:"type" validate:"required,event_type"`
	Text string `json:"text" validate:"required,max=16"`
}

type thread struct {
	Events []event `json:"events" validate:"min=1,dive"`
}

type chat struct {
	Thread thread `json:"thread"`
}

type startChat struct {
	Chat chat `json:"chat"`
}

type customer struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestValidate_Valid(t *testing.T) {
	req := startChat{Chat: chat{Thread: thread{Events: []event{{Type: "message", Text: "hi"}}}}}
	if err := Validate(req); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestValidate_NestedFieldPaths(t *testing.T) {
	req := startChat{Chat: chat{Thread: thread{Events: []event{{Type: "bogus", Text: ""}}}}}
	err := Validate(req)
	if !errors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "chat.thread.events[0].type: is not a supported event type") {
		t.Errorf("missing type message in %q", msg)
	}
	if !strings.Contains(msg, "chat.thread.events[0].text: is required") {
		t.Errorf("missing text message in %q", msg)
	}

	appErr, _ := errors.AsAppError(err)
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Errorf("expected 2 field errors in details, got %#v", appErr.Details["fields"])
	}
}

func TestValidate_EmptyEvents(t *testing.T) {
	err := Validate(startChat{})
	if err == nil || !strings.Contains(err.Error(), "must contain at least 1 items") {
		t.Errorf("expected min items error, got %v", err)
	}
}

func TestValidate_EmailAndMax(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"bad email", customer{Name: "X", Email: "nope"}, "email: must be a valid email address"},
		{"missing name", customer{}, "name: is required"},
		{"text too long", event{Type: "message", Text: strings.Repeat("a", 17)}, "text: must be at most 16 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidate_NonStruct(t *testing.T) {
	if err := Validate("not a struct"); !errors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestValidator_Chaining(t *testing.T) {
	err := New().
		Required("organization_id", "").
		Numeric("license_id", "12a").
		Custom(false, "chat_id", "is closed").
		Validate()
	if !errors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, part := range []string{
		"organization_id: is required",
		"license_id: must be numeric",
		"chat_id: is closed",
	} {
		if !strings.Contains(err.Error(), part) {
			t.Errorf("missing %q in %q", part, err.Error())
		}
	}
}

func TestValidator_Clean(t *testing.T) {
	v := New().Required("a", "x").Numeric("b", "12").Numeric("c", "").Custom(true, "d", "unused")
	if v.HasErrors() {
		t.Errorf("unexpected errors %v", v.Errors())
	}
	if err := v.Validate(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestParseInt(t *testing.T) {
	n, err := ParseInt("license_id", "12345")
	if err != nil || n != 12345 {
		t.Errorf("expected 12345, got %d (%v)", n, err)
	}

	_, err = ParseInt("license_id", "")
	if appErr, ok := errors.AsAppError(err); !ok || appErr.Code != errors.ErrCodeMissingField {
		t.Errorf("expected MISSING_FIELD, got %v", err)
	}

	_, err = ParseInt("license_id", "abc")
	if appErr, ok := errors.AsAppError(err); !ok || appErr.Code != errors.ErrCodeInvalidFormat {
		t.Errorf("expected INVALID_FORMAT, got %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("LicenseID"); got != "license_i_d" {
		t.Errorf("unexpected %q", got)
	}
	if got := toSnakeCase("ChatId"); got != "chat_id" {
		t.Errorf("unexpected %q", got)
	}
}
