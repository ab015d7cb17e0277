package twin

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// collection is an insertion-ordered map. Callers hold the store lock.
type collection[T any] struct {
	items map[string]T
	order []string
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{items: make(map[string]T)}
}

func (c *collection[T]) set(id string, item T) {
	if _, ok := c.items[id]; !ok {
		c.order = append(c.order, id)
	}
	c.items[id] = item
}

func (c *collection[T]) get(id string) (T, bool) {
	item, ok := c.items[id]
	return item, ok
}

func (c *collection[T]) list() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

func (c *collection[T]) snapshot() []T { return c.list() }

func (c *collection[T]) load(items []T, id func(T) string) {
	c.items = make(map[string]T, len(items))
	c.order = c.order[:0]
	for _, item := range items {
		c.set(id(item), item)
	}
}

// Store holds all twin state in memory. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	customers *collection[Customer]
	chats     *collection[Chat]
	now       func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		customers: newCollection[Customer](),
		chats:     newCollection[Chat](),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func newID() string { return uuid.NewString() }

// CreateCustomer stores c under a new id and returns it.
func (s *Store) CreateCustomer(c Customer) Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = newID()
	c.CreatedAt = s.now()
	s.customers.set(c.ID, c)
	return c
}

// Customer returns a customer by id.
func (s *Store) Customer(id string) (Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customers.get(id)
}

// Customers returns all customers in creation order.
func (s *Store) Customers() []Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customers.list()
}

// StartChat creates a chat for customerID with an active thread holding
// events. Event ids, authors and timestamps are filled in.
func (s *Store) StartChat(organizationID, customerID string, events []Event) Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	chat := Chat{
		ID:             newID(),
		OrganizationID: organizationID,
		Users:          []User{{ID: customerID, Type: "customer", Visibility: "all"}},
		Thread:         Thread{ID: newID(), Active: true},
		CreatedAt:      now,
	}
	for _, e := range events {
		chat.Thread.Events = append(chat.Thread.Events, s.stamp(e, customerID, now))
	}
	s.chats.set(chat.ID, chat)
	return chat.clone()
}

// Chat returns a chat by id.
func (s *Store) Chat(id string) (Chat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chat, ok := s.chats.get(id)
	return chat.clone(), ok
}

// Chats returns all chats in creation order.
func (s *Store) Chats() []Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.chats.list()
	for i := range out {
		out[i] = out[i].clone()
	}
	return out
}

// ChatsFor returns the chats userID takes part in.
func (s *Store) ChatsFor(userID string) []Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Chat
	for _, chat := range s.chats.list() {
		if chat.hasUser(userID) {
			out = append(out, chat.clone())
		}
	}
	return out
}

// ResumeChat starts a new active thread in chat id. It fails when the chat
// is missing or its thread is still active.
func (s *Store) ResumeChat(id string) (Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat, ok := s.chats.get(id)
	if !ok {
		return Thread{}, errChatNotFound
	}
	if chat.Thread.Active {
		return Thread{}, errChatActive
	}
	chat.Thread = Thread{ID: newID(), Active: true}
	s.chats.set(id, chat)
	return chat.Thread, nil
}

// Deactivate closes the current thread of chat id.
func (s *Store) Deactivate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat, ok := s.chats.get(id)
	if !ok {
		return errChatNotFound
	}
	chat.Thread.Active = false
	s.chats.set(id, chat)
	return nil
}

// AddEvent appends e to the current thread of chat id.
func (s *Store) AddEvent(id, authorID string, e Event) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat, ok := s.chats.get(id)
	if !ok {
		return Event{}, errChatNotFound
	}
	if !chat.Thread.Active {
		return Event{}, errChatInactive
	}
	e = s.stamp(e, authorID, s.now())
	chat.Thread.Events = append(chat.Thread.Events, e)
	s.chats.set(id, chat)
	return e, nil
}

// AddUser adds u to chat id. Adding a present user is a no-op.
func (s *Store) AddUser(id string, u User, requireActive bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat, ok := s.chats.get(id)
	if !ok {
		return errChatNotFound
	}
	if requireActive && !chat.Thread.Active {
		return errChatInactive
	}
	if !chat.hasUser(u.ID) {
		chat.Users = append(chat.Users, u)
		s.chats.set(id, chat)
	}
	return nil
}

func (s *Store) stamp(e Event, authorID string, now time.Time) Event {
	e.ID = newID()
	e.AuthorID = authorID
	e.CreatedAt = now
	if e.Recipients == "" {
		e.Recipients = "all"
	}
	return e
}

// State is the JSON form of the store used by the admin endpoints.
type State struct {
	Customers []Customer `json:"customers"`
	Chats     []Chat     `json:"chats"`
}

// Snapshot returns the full state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Customers: s.customers.snapshot(),
		Chats:     s.chats.snapshot(),
	}
}

// LoadState replaces the full state from its JSON form.
func (s *Store) LoadState(data []byte) error {
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers.load(st.Customers, func(c Customer) string { return c.ID })
	s.chats.load(st.Chats, func(c Chat) string { return c.ID })
	return nil
}

// Reset clears all state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = newCollection[Customer]()
	s.chats = newCollection[Chat]()
}
