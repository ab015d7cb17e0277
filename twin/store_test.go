package twin

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
)

func TestStore_CustomersKeepCreationOrder(t *testing.T) {
	s := NewStore()
	a := s.CreateCustomer(Customer{Name: "a"})
	b := s.CreateCustomer(Customer{Name: "b"})

	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct ids, got %q and %q", a.ID, b.ID)
	}
	if a.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	got := s.Customers()
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "b" {
		t.Errorf("unexpected order: %+v", got)
	}
}

func TestStore_StartChatStampsEvents(t *testing.T) {
	s := NewStore()
	chat := s.StartChat("org", "cust", []Event{{Type: "message", Text: "hi"}})

	if !chat.Thread.Active || !chat.hasUser("cust") {
		t.Fatalf("unexpected chat %+v", chat)
	}
	e := chat.Thread.Events[0]
	if e.ID == "" || e.AuthorID != "cust" || e.Recipients != "all" || e.CreatedAt.IsZero() {
		t.Errorf("event not stamped: %+v", e)
	}
}

func TestStore_ChatsAreCopies(t *testing.T) {
	s := NewStore()
	chat := s.StartChat("org", "cust", []Event{{Type: "message", Text: "hi"}})
	chat.Users[0].ID = "mutated"
	chat.Thread.Events[0].Text = "mutated"

	got, _ := s.Chat(chat.ID)
	if got.Users[0].ID != "cust" || got.Thread.Events[0].Text != "hi" {
		t.Errorf("stored chat was modified through a returned copy: %+v", got)
	}
}

func TestStore_ThreadTransitions(t *testing.T) {
	s := NewStore()
	chat := s.StartChat("org", "cust", nil)

	if _, err := s.ResumeChat(chat.ID); !errors.Is(err, errChatActive) {
		t.Errorf("expected errChatActive, got %v", err)
	}
	if err := s.Deactivate(chat.ID); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}
	if _, err := s.AddEvent(chat.ID, "cust", Event{Type: "message", Text: "x"}); !errors.Is(err, errChatInactive) {
		t.Errorf("expected errChatInactive, got %v", err)
	}
	if err := s.AddUser(chat.ID, User{ID: "agent"}, true); !errors.Is(err, errChatInactive) {
		t.Errorf("expected errChatInactive, got %v", err)
	}
	if err := s.AddUser(chat.ID, User{ID: "agent"}, false); err != nil {
		t.Errorf("AddUser without active requirement failed: %v", err)
	}

	thread, err := s.ResumeChat(chat.ID)
	if err != nil {
		t.Fatalf("ResumeChat failed: %v", err)
	}
	if thread.ID == chat.Thread.ID || !thread.Active {
		t.Errorf("expected a new active thread, got %+v", thread)
	}
	if _, err := s.AddEvent(chat.ID, "cust", Event{Type: "message", Text: "back"}); err != nil {
		t.Errorf("AddEvent after resume failed: %v", err)
	}
}

func TestStore_MissingChat(t *testing.T) {
	s := NewStore()
	checks := map[string]error{}
	_, checks["resume"] = s.ResumeChat("nope")
	checks["deactivate"] = s.Deactivate("nope")
	_, checks["event"] = s.AddEvent("nope", "a", Event{})
	checks["user"] = s.AddUser("nope", User{ID: "a"}, false)

	for name, err := range checks {
		if !errors.Is(err, errChatNotFound) {
			t.Errorf("%s: expected errChatNotFound, got %v", name, err)
		}
	}
}

func TestStore_AddUserIsIdempotent(t *testing.T) {
	s := NewStore()
	chat := s.StartChat("org", "cust", nil)
	for i := 0; i < 2; i++ {
		if err := s.AddUser(chat.ID, User{ID: "agent", Type: "agent"}, true); err != nil {
			t.Fatalf("AddUser failed: %v", err)
		}
	}
	got, _ := s.Chat(chat.ID)
	if len(got.Users) != 2 {
		t.Errorf("expected 2 users, got %+v", got.Users)
	}
	if len(s.ChatsFor("agent")) != 1 || len(s.ChatsFor("stranger")) != 0 {
		t.Error("ChatsFor did not filter by participant")
	}
}

func TestStore_SnapshotLoadReset(t *testing.T) {
	s := NewStore()
	s.CreateCustomer(Customer{Name: "a"})
	s.StartChat("org", "cust", []Event{{Type: "message", Text: "hi"}})

	data := mustJSON(t, s.Snapshot())
	s.Reset()
	if len(s.Customers()) != 0 || len(s.Chats()) != 0 {
		t.Fatal("Reset left state behind")
	}
	if err := s.LoadState(data); err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if len(s.Customers()) != 1 || len(s.Chats()) != 1 {
		t.Errorf("state not restored: %+v", s.Snapshot())
	}
	if err := s.LoadState([]byte("{")); err == nil {
		t.Error("expected error for malformed state")
	}
}

func TestStore_ConcurrentEvents(t *testing.T) {
	s := NewStore()
	chat := s.StartChat("org", "cust", nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.AddEvent(chat.ID, "cust", Event{Type: "message", Text: "x"})
		}()
	}
	wg.Wait()

	got, _ := s.Chat(chat.ID)
	if len(got.Thread.Events) != 50 {
		t.Errorf("expected 50 events, got %d", len(got.Thread.Events))
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	return data
}
