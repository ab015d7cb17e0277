package livechat

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "github.com/kbukum/livechat/errors"
	"github.com/kbukum/livechat/httpclient"
	"github.com/kbukum/livechat/logger"
	"github.com/kbukum/livechat/testutil"
)

func TestConfig_Defaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("expected default base url, got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"valid", Config{BaseURL: "http://localhost:8081", Timeout: time.Second}, ""},
		{"bad scheme", Config{BaseURL: "ftp://x", Timeout: time.Second}, "base_url"},
		{"no host", Config{BaseURL: "https://", Timeout: time.Second}, "base_url"},
		{"zero timeout", Config{BaseURL: "https://x"}, "timeout"},
		{"pat without account", Config{BaseURL: "https://x", Timeout: time.Second, PersonalAccessToken: "p"}, "account_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfig_Auth(t *testing.T) {
	bearer := Config{AccessToken: "tok", PersonalAccessToken: "pat", AccountID: "acc"}
	if h := bearer.Auth().Header(); h != "Bearer tok" {
		t.Errorf("access token should win, got %q", h)
	}
	pat := Config{PersonalAccessToken: "pat", AccountID: "acc"}
	if a := pat.Auth(); a == nil || a.Type != httpclient.AuthBasic || a.Username != "acc" || a.Password != "pat" {
		t.Errorf("unexpected PAT auth %+v", a)
	}
	if (&Config{}).Auth() != nil {
		t.Error("expected no auth")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	if _, err := New(Config{BaseURL: "not-a-url"}); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestNew_SendsActionsOverHTTP(t *testing.T) {
	var (
		gotPath, gotQuery, gotAuth string
		gotBody                    []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"chat_id":"C1","thread_id":"T1"}`))
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL, AccessToken: "agent-token"}, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	resp, err := c.StartChat(context.Background(), "42", "hi")
	if err != nil {
		t.Fatalf("StartChat failed: %v", err)
	}
	if id, _ := resp.String("thread_id"); id != "T1" {
		t.Errorf("unexpected response %v", resp)
	}
	if gotPath != StartChatPath || gotQuery != "organization_id=42" {
		t.Errorf("unexpected request %s?%s", gotPath, gotQuery)
	}
	if gotAuth != "Bearer agent-token" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	testutil.AssertJSONEqual(t, `{"chat":{"thread":{"events":[{"type":"message","text":"hi"}]}}}`, gotBody)
}

func TestNew_APIErrorIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"type": "validation", "message": "chat is inactive"},
		})
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL}, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	_, err = c.SendMessage(context.Background(), "42", "C1", "hi")
	if apperrors.IsAppError(err) {
		t.Fatalf("API failures must not be AppErrors, got %v", err)
	}
	if httpclient.APIErrorType(err) != "validation" {
		t.Errorf("expected API error type, got %v", err)
	}
}

func TestCustomers_List(t *testing.T) {
	r := testutil.NewRecordingRequester().OnGet(CustomersPath, map[string]any{
		"total": 2,
		"customers": []any{
			map[string]any{"id": "u1", "name": "Ann", "email": "ann@example.com"},
			map[string]any{"id": "u2", "name": "Bob"},
		},
	})
	page, err := newTestClient(r).Customers().List(context.Background(), nil, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page.Items) != 2 || page.Total != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Items[0].Path() != CustomersPath+"/u1" {
		t.Errorf("unexpected path %q", page.Items[0].Path())
	}
	name, err := page.Items[0].Name(context.Background())
	if err != nil || name != "Ann" {
		t.Errorf("expected Ann, got %q (%v)", name, err)
	}
	email, _ := page.Items[0].Email(context.Background())
	if email != "ann@example.com" {
		t.Errorf("unexpected email %q", email)
	}
	if r.CallCount() != 1 {
		t.Errorf("pre-populated attributes should not be refetched, got %d calls", r.CallCount())
	}
}

func TestChats_GetFetchesLazily(t *testing.T) {
	r := testutil.NewRecordingRequester().OnGet(ChatsPath+"/C1", map[string]any{
		"id":     "C1",
		"users":  []any{map[string]any{"id": "agent@x"}, map[string]any{"id": "cust-1"}, "bogus"},
		"thread": map[string]any{"id": "T9"},
	})
	chat := newTestClient(r).Chats().Get("C1")
	if r.CallCount() != 0 {
		t.Fatal("Get must not perform I/O")
	}
	users, err := chat.Users(context.Background())
	if err != nil {
		t.Fatalf("Users failed: %v", err)
	}
	if len(users) != 2 || users[0] != "agent@x" || users[1] != "cust-1" {
		t.Errorf("unexpected users %v", users)
	}
	thread, _ := chat.ThreadID(context.Background())
	if thread != "T9" {
		t.Errorf("unexpected thread %q", thread)
	}
	if r.CallCount() != 1 {
		t.Errorf("expected a single fetch, got %d", r.CallCount())
	}
}

func TestChats_NoClient(t *testing.T) {
	c := NewWithRequester(nil, WithLogger(logger.Nop()))
	if _, err := c.Chats().List(context.Background(), nil, false); !apperrors.IsClientNotBound(err) {
		t.Errorf("expected CLIENT_NOT_BOUND, got %v", err)
	}
	if _, err := c.Customers().Get("u1").Name(context.Background()); !apperrors.IsClientNotBound(err) {
		t.Errorf("expected CLIENT_NOT_BOUND on fetch, got %v", err)
	}
}

func TestSessionFields(t *testing.T) {
	got := SessionFields("a", "1", "b", "2", "dangling")
	if len(got) != 2 || got[0]["a"] != "1" || got[1]["b"] != "2" {
		t.Errorf("unexpected session fields %v", got)
	}
}
