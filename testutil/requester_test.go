package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestRecordingRequester_GetReplayAndRecord(t *testing.T) {
	r := NewRecordingRequester().OnGet("/chats", map[string]any{"total": 2})

	params := map[string]string{"limit": "10"}
	got, err := r.Get(context.Background(), "/chats", params, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", got)
	}
	if m["total"] != json.Number("2") {
		t.Errorf("expected json.Number 2, got %#v", m["total"])
	}

	params["limit"] = "changed"
	call, ok := r.LastCall()
	if !ok {
		t.Fatal("expected a recorded call")
	}
	if call.Method != http.MethodGet || call.Path != "/chats" {
		t.Errorf("unexpected call: %+v", call)
	}
	if call.Params["limit"] != "10" {
		t.Errorf("recorded params should be a copy, got %v", call.Params)
	}
}

func TestRecordingRequester_PostBody(t *testing.T) {
	r := NewRecordingRequester().OnPost("/customers", map[string]any{"id": "c1"})
	if _, err := r.Post(context.Background(), "/customers", map[string]any{"name": "X"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call, _ := r.LastCall()
	AssertJSONEqual(t, `{"name":"X"}`, call.Body)
}

func TestRecordingRequester_UnconfiguredAndFail(t *testing.T) {
	boom := errors.New("boom")
	r := NewRecordingRequester().Fail(http.MethodPost, "/x", boom)

	if _, err := r.Get(context.Background(), "/missing", nil, false); err == nil {
		t.Error("expected error for unconfigured path")
	}
	if _, err := r.Post(context.Background(), "/x", nil); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
	if r.CallCount() != 2 {
		t.Errorf("expected 2 calls, got %d", r.CallCount())
	}
	r.Reset()
	if r.CallCount() != 0 {
		t.Errorf("expected calls cleared, got %d", r.CallCount())
	}
}

func TestAssertJSONEqual_KeyOrder(t *testing.T) {
	AssertJSONEqual(t, `{"a":1,"b":[1,2]}`, []byte(`{"b":[1,2],"a":1}`))
}
