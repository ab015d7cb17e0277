package rest_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/kbukum/livechat/errors"
	"github.com/kbukum/livechat/rest"
	"github.com/kbukum/livechat/testutil"
)

func TestInstance_LazyFetchOnce(t *testing.T) {
	req := testutil.NewRecordingRequester().OnGet(chatsPath+"/a1", map[string]any{"id": "a1", "thread_id": "t7"})
	chat := newChats(req).Get("a1")

	attrs, err := chat.Attributes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attrs["thread_id"] != "t7" {
		t.Errorf("expected thread_id t7, got %v", attrs["thread_id"])
	}
	attrs["thread_id"] = "mutated"

	again, err := chat.Attributes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again["thread_id"] != "t7" {
		t.Error("Attributes must return a copy")
	}
	if req.CallCount() != 1 {
		t.Errorf("expected a single fetch, got %d", req.CallCount())
	}
}

func TestInstance_GetMissingKeyFetchesOnce(t *testing.T) {
	req := testutil.NewRecordingRequester().OnGet(chatsPath+"/a1", map[string]any{"id": "a1", "users": []any{}})
	inst := rest.NewInstance(chatsPath+"/a1", req, rest.Attributes{"id": "a1"})

	v, err := inst.Get(context.Background(), "id")
	if err != nil || v != "a1" {
		t.Fatalf("expected pre-populated id, got %v (%v)", v, err)
	}
	if req.CallCount() != 0 {
		t.Fatal("pre-populated key must not fetch")
	}

	users, err := inst.Get(context.Background(), "users")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := users.([]any); !ok {
		t.Errorf("expected users list, got %T", users)
	}

	missing, err := inst.Get(context.Background(), "nope")
	if err != nil || missing != nil {
		t.Errorf("expected nil for unknown key, got %v (%v)", missing, err)
	}
	if req.CallCount() != 1 {
		t.Errorf("expected exactly one fetch, got %d", req.CallCount())
	}
}

func TestInstance_Refresh(t *testing.T) {
	req := testutil.NewRecordingRequester().OnGet(chatsPath+"/a1", map[string]any{"id": "a1", "active": true})
	inst := rest.NewInstance(chatsPath+"/a1", req, rest.Attributes{"id": "a1", "active": false})

	if err := inst.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := inst.Get(context.Background(), "active")
	if v != true {
		t.Errorf("expected refreshed value true, got %v", v)
	}
}

func TestInstance_NonObjectResponse(t *testing.T) {
	req := testutil.NewRecordingRequester().OnGet(chatsPath+"/a1", []any{1, 2})
	_, err := rest.NewInstance(chatsPath+"/a1", req, nil).Attributes(context.Background())
	if !errors.IsUnexpectedResponse(err) {
		t.Errorf("expected UNEXPECTED_RESPONSE, got %v", err)
	}
}

func TestInstance_IDAndString(t *testing.T) {
	inst := rest.NewInstance("/v3.4/agent/customers/c-9", nil, nil)
	if inst.ID() != "c-9" {
		t.Errorf("expected id c-9, got %s", inst.ID())
	}
	if inst.String() != "<Instance path=/v3.4/agent/customers/c-9>" {
		t.Errorf("unexpected String(): %s", inst.String())
	}
	if inst.Client() != nil {
		t.Error("expected nil client")
	}
}

func TestInstance_ConcurrentAccess(t *testing.T) {
	req := testutil.NewRecordingRequester().OnGet(chatsPath+"/a1", map[string]any{"id": "a1"})
	inst := newChats(req).Get("a1")

	var wg sync.WaitGroup
	for n := 0; n < 8; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := inst.Attributes(context.Background()); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	if req.CallCount() != 1 {
		t.Errorf("expected one fetch across goroutines, got %d", req.CallCount())
	}
}

func TestAttributes_Accessors(t *testing.T) {
	a := rest.Attributes{
		"s":    "x",
		"n":    json.Number("42"),
		"f":    float64(3),
		"ns":   "17",
		"big":  json.Number("12345678901"),
		"obj":  map[string]any{"k": "v"},
		"list": []any{"a"},
		"flag": true,
	}

	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"s", "x", true},
		{"n", "42", true},
		{"f", "3", true},
		{"big", "12345678901", true},
		{"flag", "true", true},
		{"obj", "", false},
		{"missing", "", false},
	}
	for _, tt := range tests {
		got, ok := a.String(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("String(%q) = %q,%v; want %q,%v", tt.key, got, ok, tt.want, tt.ok)
		}
	}

	if n, ok := a.Int("n"); !ok || n != 42 {
		t.Errorf("Int(n) = %d,%v", n, ok)
	}
	if n, ok := a.Int("ns"); !ok || n != 17 {
		t.Errorf("Int(ns) = %d,%v", n, ok)
	}
	if _, ok := a.Int("s"); ok {
		t.Error("Int(s) should fail")
	}
	if o, ok := a.Object("obj"); !ok || o["k"] != "v" {
		t.Errorf("Object(obj) = %v,%v", o, ok)
	}
	if l, ok := a.List("list"); !ok || len(l) != 1 {
		t.Errorf("List(list) = %v,%v", l, ok)
	}

	var nilAttrs rest.Attributes
	if c := nilAttrs.Clone(); c == nil {
		t.Error("Clone of nil should be non-nil")
	}
}
