package livechat

import (
	"context"
	"math"
	"net/url"
	"strings"

	"github.com/kbukum/livechat/rest"
)

// Action endpoints.
const (
	TokenPath            = "/customer/token"
	ListCustomersPath    = "/v3.4/agent/action/list_customers"
	StartChatPath        = "/v3.4/customer/action/start_chat"
	ResumeChatPath       = "/v3.4/customer/action/resume_chat"
	SendEventPath        = "/v3.4/customer/action/send_event"
	ListCustomerChatPath = "/v3.4/customer/action/list_chats"
	AddUserToChatPath    = "/v3.4/agent/action/add_user_to_chat"
	CreateCustomerPath   = "/v3.4/agent/action/create_customer"
)

// Grant types accepted by the token endpoint.
const (
	GrantAgentToken = "agent_token"
	GrantCookie     = "cookie"
)

// IssueCustomerToken asks for a customer access token on behalf of the
// authenticated agent.
func (c *Client) IssueCustomerToken(ctx context.Context, licenseID, clientID string) (rest.Attributes, error) {
	return c.action(ctx, "issue_customer_token", TokenPath, AgentTokenRequest{
		LicenseID:    licenseID,
		GrantType:    GrantAgentToken,
		ClientID:     clientID,
		ResponseType: "token",
	})
}

// CustomerTokenFromCookie exchanges the customer's session cookie for an
// access token. licenseID is sent as a JSON integer read from its leading
// digits, so "1520" and "1520abc" send 1520 and "abc" sends 0.
func (c *Client) CustomerTokenFromCookie(ctx context.Context, licenseID, clientID, redirectURI string) (rest.Attributes, error) {
	return c.action(ctx, "customer_token_from_cookie", TokenPath, CookieTokenRequest{
		LicenseID:    LeadingInt(licenseID),
		GrantType:    GrantCookie,
		ClientID:     clientID,
		ResponseType: "token",
		RedirectURI:  redirectURI,
	})
}

// ListCustomers lists the license's customers.
func (c *Client) ListCustomers(ctx context.Context) (rest.Attributes, error) {
	return c.action(ctx, "list_customers", ListCustomersPath, struct{}{})
}

// StartChat starts a chat with a single message event.
func (c *Client) StartChat(ctx context.Context, organizationID, text string) (rest.Attributes, error) {
	path := withQuery(StartChatPath, "organization_id", organizationID)
	return c.action(ctx, "start_chat", path, StartChatRequest{
		Chat: NewChatPayload{Thread: Thread{Events: []Event{MessageEvent(text)}}},
	})
}

// ResumeChat reopens an inactive chat.
func (c *Client) ResumeChat(ctx context.Context, organizationID, chatID string) (rest.Attributes, error) {
	path := withQuery(ResumeChatPath, "organization_id", organizationID)
	return c.action(ctx, "resume_chat", path, ResumeChatRequest{
		Chat: ChatRef{ID: chatID},
	})
}

// SendMessage sends a message event visible to everyone in the chat.
func (c *Client) SendMessage(ctx context.Context, organizationID, chatID, text string) (rest.Attributes, error) {
	path := withQuery(SendEventPath, "organization_id", organizationID)
	event := MessageEvent(text)
	event.Recipients = RecipientsAll
	return c.action(ctx, "send_event", path, SendEventRequest{
		ChatID: chatID,
		Event:  event,
	})
}

// ListCustomerChats lists the chats of the authenticated customer.
func (c *Client) ListCustomerChats(ctx context.Context, organizationID string) (rest.Attributes, error) {
	path := withQuery(ListCustomerChatPath, "organization_id", organizationID)
	return c.action(ctx, "list_customer_chats", path, struct{}{})
}

// AddUserToChat adds a customer to a chat, visible to all participants.
func (c *Client) AddUserToChat(ctx context.Context, licenseID, chatID, customerID string) (rest.Attributes, error) {
	path := withQuery(AddUserToChatPath, "license_id", licenseID)
	return c.action(ctx, "add_user_to_chat", path, AddUserToChatRequest{
		ChatID:              chatID,
		UserID:              customerID,
		UserType:            UserTypeCustomer,
		Visibility:          RecipientsAll,
		RequireActiveThread: false,
	})
}

// CreateCustomer creates a customer.
func (c *Client) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (rest.Attributes, error) {
	return c.action(ctx, "create_customer", CreateCustomerPath, req)
}

// withQuery appends key=value to path, escaping value.
func withQuery(path, key, value string) string {
	q := url.Values{}
	q.Set(key, value)
	return path + "?" + q.Encode()
}

// LeadingInt reads an integer from the start of s. Leading whitespace and
// one sign are allowed, single underscores may separate digits, and parsing
// stops at the first other character. No digits gives 0. Values beyond
// int64 saturate.
func LeadingInt(s string) int64 {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	var n uint64
	overflow := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == '_' && i > 0 && i+1 < len(s) && isDigit(s[i-1]) && isDigit(s[i+1]) {
			continue
		}
		if !isDigit(ch) {
			break
		}
		if n > (math.MaxUint64-9)/10 {
			overflow = true
			continue
		}
		n = n*10 + uint64(ch-'0')
	}
	switch {
	case neg && (overflow || n > math.MaxInt64+1):
		return math.MinInt64
	case neg:
		// n == 1<<63 wraps to MinInt64, which is the right answer.
		return -int64(n)
	case overflow || n > math.MaxInt64:
		return math.MaxInt64
	}
	return int64(n)
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }
