package twin

import "time"

// Customer is a stored customer.
type Customer struct {
	ID            string              `json:"id"`
	Name          string              `json:"name,omitempty"`
	Email         string              `json:"email,omitempty"`
	Avatar        string              `json:"avatar,omitempty"`
	SessionFields []map[string]string `json:"session_fields,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// User is a chat participant.
type User struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Visibility string `json:"visibility,omitempty"`
}

// Event is a chat event.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Text       string    `json:"text"`
	AuthorID   string    `json:"author_id"`
	Recipients string    `json:"recipients"`
	CreatedAt  time.Time `json:"created_at"`
}

// Thread is one conversation within a chat.
type Thread struct {
	ID     string  `json:"id"`
	Active bool    `json:"active"`
	Events []Event `json:"events"`
}

// Chat is a stored chat. Thread is the current thread.
type Chat struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Users          []User    `json:"users"`
	Thread         Thread    `json:"thread"`
	CreatedAt      time.Time `json:"created_at"`
}

func (c Chat) hasUser(id string) bool {
	for _, u := range c.Users {
		if u.ID == id {
			return true
		}
	}
	return false
}

// clone copies the slices so stored chats are never shared with callers.
func (c Chat) clone() Chat {
	c.Users = append([]User(nil), c.Users...)
	c.Thread.Events = append([]Event(nil), c.Thread.Events...)
	return c
}
