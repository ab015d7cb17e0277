package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func jsonLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: level, Format: "json"}, "livechat-test", &buf)
	return l, &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line, got nothing")
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("invalid json log line %q: %v", line, err)
	}
	return m
}

func TestNewWithWriter_JSONFields(t *testing.T) {
	l, buf := jsonLogger(t, "debug")
	l.WithComponent("httpclient").Debug("request completed", Fields("method", "POST", "status", 201))

	m := decodeLine(t, buf)
	if m["message"] != "request completed" {
		t.Errorf("expected message, got %v", m["message"])
	}
	if m[FieldComponent] != "httpclient" {
		t.Errorf("expected component=httpclient, got %v", m[FieldComponent])
	}
	if m[FieldService] != "livechat-test" {
		t.Errorf("expected service tag, got %v", m[FieldService])
	}
	if m["method"] != "POST" {
		t.Errorf("expected method=POST, got %v", m["method"])
	}
}

func TestLevelFiltering(t *testing.T) {
	l, buf := jsonLogger(t, "warn")
	l.Debug("hidden")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warn line, got %q", buf.String())
	}
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	l, buf := jsonLogger(t, "not-a-level")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug suppressed at info, got %q", buf.String())
	}
	l.Info("shown")
	if buf.Len() == 0 {
		t.Error("expected info line")
	}
}

func TestWithContext_RequestID(t *testing.T) {
	l, buf := jsonLogger(t, "info")
	ctx := ContextWithRequestID(context.Background(), "req-1")
	l.WithContext(ctx).Info("hello")

	m := decodeLine(t, buf)
	if m[FieldRequestID] != "req-1" {
		t.Errorf("expected request_id=req-1, got %v", m[FieldRequestID])
	}
}

func TestWithContext_NoRequestID(t *testing.T) {
	l, _ := jsonLogger(t, "info")
	if got := l.WithContext(context.Background()); got != l {
		t.Error("expected the same logger when context carries no request id")
	}
}

func TestWithError(t *testing.T) {
	l, buf := jsonLogger(t, "info")
	l.WithError(errors.New("boom")).Error("failed")
	m := decodeLine(t, buf)
	if m["error"] != "boom" {
		t.Errorf("expected error=boom, got %v", m["error"])
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: FormatConsole, NoColor: true}, "livechat", &buf)
	l.Info("ready", Fields("addr", "127.0.0.1:8081"))
	line := buf.String()
	if !strings.Contains(line, "[LIV][INF]") || !strings.Contains(line, "addr:127.0.0.1:8081") {
		t.Errorf("unexpected console line %q", line)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("discarded")
	l.WithComponent("x").Error("discarded")
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected level info, got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format console, got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output stderr, got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp enabled")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "debug", Format: "json"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "ignored", "dangling")
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields: %v", m)
	}
	if len(m) != 2 {
		t.Errorf("expected 2 fields, got %d", len(m))
	}
}

func TestErrorAndHTTPFields(t *testing.T) {
	ef := ErrorFields(errors.New("boom"), FieldOperation, "send_event")
	if ef[FieldOperation] != "send_event" || ef[FieldError] != "boom" {
		t.Errorf("unexpected error fields: %v", ef)
	}
	if _, ok := ErrorFields(nil)[FieldError]; ok {
		t.Error("nil error must not add an error field")
	}
	hf := HTTPFields("POST", "/v3.4/customer/action/start_chat", 201, 1500*time.Millisecond)
	if hf[FieldDuration] != int64(1500) || hf[FieldStatus] != 201 {
		t.Errorf("unexpected http fields: %v", hf)
	}
}

func TestConfigValidateOutput(t *testing.T) {
	cfg := Config{Level: "info", Format: FormatJSON, Output: "file"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown output")
	}
}
