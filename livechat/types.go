package livechat

// Event and participant constants.
const (
	EventTypeMessage = "message"
	RecipientsAll    = "all"
	RecipientsAgents = "agents"
	UserTypeCustomer = "customer"
	UserTypeAgent    = "agent"
)

// AgentTokenRequest is the body of an agent_token grant.
type AgentTokenRequest struct {
	LicenseID    string `json:"license_id"`
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ResponseType string `json:"response_type"`
}

// CookieTokenRequest is the body of a cookie grant.
type CookieTokenRequest struct {
	LicenseID    int64  `json:"license_id"`
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ResponseType string `json:"response_type"`
	RedirectURI  string `json:"redirect_uri"`
}

// Event is a chat event.
type Event struct {
	Type       string `json:"type"`
	Text       string `json:"text"`
	Recipients string `json:"recipients,omitempty"`
}

// MessageEvent returns a message event carrying text.
func MessageEvent(text string) Event {
	return Event{Type: EventTypeMessage, Text: text}
}

// Thread holds the events a chat starts with.
type Thread struct {
	Events []Event `json:"events"`
}

// NewChatPayload describes a chat to start.
type NewChatPayload struct {
	Thread Thread `json:"thread"`
}

// StartChatRequest is the body of start_chat.
type StartChatRequest struct {
	Chat NewChatPayload `json:"chat"`
}

// ChatRef identifies an existing chat.
type ChatRef struct {
	ID string `json:"id"`
}

// ResumeChatRequest is the body of resume_chat.
type ResumeChatRequest struct {
	Chat ChatRef `json:"chat"`
}

// SendEventRequest is the body of send_event.
type SendEventRequest struct {
	ChatID string `json:"chat_id"`
	Event  Event  `json:"event"`
}

// AddUserToChatRequest is the body of add_user_to_chat.
type AddUserToChatRequest struct {
	ChatID              string `json:"chat_id"`
	UserID              string `json:"user_id"`
	UserType            string `json:"user_type"`
	Visibility          string `json:"visibility"`
	RequireActiveThread bool   `json:"require_active_thread"`
}

// CreateCustomerRequest is the body of create_customer. SessionFields is a
// list of single-entry objects.
type CreateCustomerRequest struct {
	Name          string              `json:"name"`
	Email         string              `json:"email,omitempty"`
	AvatarURL     string              `json:"avatar,omitempty"`
	SessionFields []map[string]string `json:"session_fields,omitempty"`
}

// SessionFields builds session_fields entries from key/value pairs, one
// object per pair, in order. A trailing odd key is dropped.
func SessionFields(kv ...string) []map[string]string {
	out := make([]map[string]string, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, map[string]string{kv[i]: kv[i+1]})
	}
	return out
}
