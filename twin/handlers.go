package twin

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/livechat/component"
	apperrors "github.com/kbukum/livechat/errors"
	"github.com/kbukum/livechat/validation"
)

type tokenRequest struct {
	LicenseID    json.Number `json:"license_id"`
	GrantType    string      `json:"grant_type" validate:"required,oneof=agent_token cookie"`
	ClientID     string      `json:"client_id" validate:"required"`
	ResponseType string      `json:"response_type" validate:"required,oneof=token"`
	RedirectURI  string      `json:"redirect_uri" validate:"required_if=GrantType cookie,omitempty,url"`
}

type eventPayload struct {
	Type       string `json:"type" validate:"required,event_type"`
	Text       string `json:"text" validate:"required"`
	Recipients string `json:"recipients" validate:"omitempty,oneof=all agents"`
}

type startChatRequest struct {
	Chat struct {
		Thread struct {
			Events []eventPayload `json:"events" validate:"min=1,dive"`
		} `json:"thread"`
	} `json:"chat"`
}

type resumeChatRequest struct {
	Chat struct {
		ID string `json:"id" validate:"required"`
	} `json:"chat"`
}

type sendEventRequest struct {
	ChatID string       `json:"chat_id" validate:"required"`
	Event  eventPayload `json:"event"`
}

type addUserRequest struct {
	ChatID              string `json:"chat_id" validate:"required"`
	UserID              string `json:"user_id" validate:"required"`
	UserType            string `json:"user_type" validate:"required,oneof=customer agent"`
	Visibility          string `json:"visibility" validate:"required,oneof=all agents"`
	RequireActiveThread bool   `json:"require_active_thread"`
}

type createCustomerRequest struct {
	Name          string              `json:"name" validate:"required,max=255"`
	Email         string              `json:"email" validate:"omitempty,email"`
	Avatar        string              `json:"avatar" validate:"omitempty,url"`
	SessionFields []map[string]string `json:"session_fields"`
}

type emptyRequest struct{}

// bind decodes the JSON body into req and validates it. An empty body
// decodes as {}.
func bind(c *gin.Context, req any) bool {
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(req); err != nil && err != io.EOF {
		respondError(c, apperrors.InvalidInput("body", fmt.Sprintf("malformed JSON: %v", err)))
		return false
	}
	if err := validation.Validate(req); err != nil {
		respondError(c, err)
		return false
	}
	return true
}

// requireQuery returns a required query parameter.
func requireQuery(c *gin.Context, key string) (string, bool) {
	v := c.Query(key)
	if err := validation.New().Required(key, v).Validate(); err != nil {
		respondError(c, err)
		return "", false
	}
	return v, true
}

func (s *Server) issueToken(c *gin.Context) {
	var req tokenRequest
	if !bind(c, &req) {
		return
	}
	licenseID, err := validation.ParseInt("license_id", req.LicenseID.String())
	if err != nil {
		respondError(c, err)
		return
	}
	// Cookie grants rely on the customer's session instead.
	if req.GrantType == "agent_token" {
		if err := s.agents.check(c.Request); err != nil {
			respondError(c, err)
			return
		}
	}

	customer := s.store.CreateCustomer(Customer{})
	token, ttl, err := s.tokens.Issue(customer.ID, licenseID, req.ClientID, req.GrantType)
	if err != nil {
		respondError(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token":    token,
		"entity_id":       customer.ID,
		"expires_in":      int(ttl.Seconds()),
		"token_type":      "Bearer",
		"license_id":      licenseID,
		"organization_id": s.cfg.OrganizationID,
	})
}

func (s *Server) listCustomersAction(c *gin.Context) {
	if !bind(c, &emptyRequest{}) {
		return
	}
	customers := s.store.Customers()
	c.JSON(http.StatusOK, gin.H{
		"customers":       customers,
		"total_customers": len(customers),
	})
}

func (s *Server) createCustomerAction(c *gin.Context) {
	var req createCustomerRequest
	if !bind(c, &req) {
		return
	}
	customer := s.store.CreateCustomer(Customer{
		Name:          req.Name,
		Email:         req.Email,
		Avatar:        req.Avatar,
		SessionFields: req.SessionFields,
	})
	c.JSON(http.StatusOK, gin.H{"customer_id": customer.ID})
}

func (s *Server) addUserToChat(c *gin.Context) {
	raw, ok := requireQuery(c, "license_id")
	if !ok {
		return
	}
	if err := validation.New().Numeric("license_id", raw).Validate(); err != nil {
		respondError(c, err)
		return
	}
	var req addUserRequest
	if !bind(c, &req) {
		return
	}
	user := User{ID: req.UserID, Type: req.UserType, Visibility: req.Visibility}
	if err := s.store.AddUser(req.ChatID, user, req.RequireActiveThread); err != nil {
		respondError(c, chatError(err, req.ChatID))
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (s *Server) startChat(c *gin.Context) {
	org, ok := requireQuery(c, "organization_id")
	if !ok {
		return
	}
	var req startChatRequest
	if !bind(c, &req) {
		return
	}
	events := make([]Event, 0, len(req.Chat.Thread.Events))
	for _, e := range req.Chat.Thread.Events {
		events = append(events, Event{Type: e.Type, Text: e.Text, Recipients: e.Recipients})
	}
	chat := s.store.StartChat(org, customerClaims(c).Subject, events)
	ids := make([]string, 0, len(chat.Thread.Events))
	for _, e := range chat.Thread.Events {
		ids = append(ids, e.ID)
	}
	c.JSON(http.StatusOK, gin.H{
		"chat_id":   chat.ID,
		"thread_id": chat.Thread.ID,
		"event_ids": ids,
	})
}

func (s *Server) resumeChat(c *gin.Context) {
	if _, ok := requireQuery(c, "organization_id"); !ok {
		return
	}
	var req resumeChatRequest
	if !bind(c, &req) {
		return
	}
	if !s.participant(c, req.Chat.ID) {
		return
	}
	thread, err := s.store.ResumeChat(req.Chat.ID)
	if err != nil {
		respondError(c, chatError(err, req.Chat.ID))
		return
	}
	c.JSON(http.StatusOK, gin.H{"thread_id": thread.ID})
}

func (s *Server) sendEvent(c *gin.Context) {
	if _, ok := requireQuery(c, "organization_id"); !ok {
		return
	}
	var req sendEventRequest
	if !bind(c, &req) {
		return
	}
	if !s.participant(c, req.ChatID) {
		return
	}
	event, err := s.store.AddEvent(req.ChatID, customerClaims(c).Subject, Event{
		Type:       req.Event.Type,
		Text:       req.Event.Text,
		Recipients: req.Event.Recipients,
	})
	if err != nil {
		respondError(c, chatError(err, req.ChatID))
		return
	}
	c.JSON(http.StatusOK, gin.H{"event_id": event.ID})
}

func (s *Server) listCustomerChats(c *gin.Context) {
	if _, ok := requireQuery(c, "organization_id"); !ok {
		return
	}
	if !bind(c, &emptyRequest{}) {
		return
	}
	chats := s.store.ChatsFor(customerClaims(c).Subject)
	if chats == nil {
		chats = []Chat{}
	}
	c.JSON(http.StatusOK, gin.H{
		"chats_summary": chats,
		"total_chats":   len(chats),
	})
}

// participant fails the request unless the token's customer is in chat id.
// A missing chat is reported as not found.
func (s *Server) participant(c *gin.Context, chatID string) bool {
	chat, ok := s.store.Chat(chatID)
	if !ok {
		respondError(c, chatError(errChatNotFound, chatID))
		return false
	}
	if !chat.hasUser(customerClaims(c).Subject) {
		respondError(c, apperrors.Forbidden("Customer is not a chat participant."))
		return false
	}
	return true
}

// --- resource lists ---

// listPage answers a list request with one page of items under listKey,
// the total count, and a next_page_uri while more items remain.
func listPage[T any](s *Server, c *gin.Context, listKey string, items []T) {
	size := s.cfg.PageSize
	if raw := c.Query("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			respondError(c, apperrors.InvalidFormat("page_size", "integer between 1 and 100"))
			return
		}
		size = n
	}
	page := 1
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(c, apperrors.InvalidFormat("page", "positive integer"))
			return
		}
		page = n
	}

	// Compare before multiplying so a huge page cannot overflow.
	start := len(items)
	if page-1 <= len(items)/size {
		start = min((page-1)*size, len(items))
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}

	body := gin.H{
		"total": len(items),
		"page":  page,
		listKey: items[start:end],
	}
	if end < len(items) {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page+1))
		q.Set("page_size", strconv.Itoa(size))
		body["next_page_uri"] = c.Request.URL.Path + "?" + q.Encode()
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) listCustomers(c *gin.Context) {
	listPage(s, c, "customers", s.store.Customers())
}

func (s *Server) getCustomer(c *gin.Context) {
	id := c.Param("id")
	customer, ok := s.store.Customer(id)
	if !ok {
		respondError(c, apperrors.NotFound("customer", id))
		return
	}
	c.JSON(http.StatusOK, customer)
}

// createCustomer backs ListResource.Create: the full customer is returned.
func (s *Server) createCustomer(c *gin.Context) {
	var req createCustomerRequest
	if !bind(c, &req) {
		return
	}
	customer := s.store.CreateCustomer(Customer{
		Name:          req.Name,
		Email:         req.Email,
		Avatar:        req.Avatar,
		SessionFields: req.SessionFields,
	})
	c.JSON(http.StatusCreated, customer)
}

func (s *Server) listChats(c *gin.Context) {
	listPage(s, c, "chats", s.store.Chats())
}

func (s *Server) getChat(c *gin.Context) {
	id := c.Param("id")
	chat, ok := s.store.Chat(id)
	if !ok {
		respondError(c, apperrors.NotFound("chat", id))
		return
	}
	c.JSON(http.StatusOK, chat)
}

// --- admin ---

func (s *Server) adminReset(c *gin.Context) {
	s.store.Reset()
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

func (s *Server) adminGetState(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Snapshot())
}

func (s *Server) adminLoadState(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, apperrors.InvalidInput("body", err.Error()))
		return
	}
	if err := s.store.LoadState(data); err != nil {
		respondError(c, apperrors.InvalidInput("body", err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "loaded"})
}

func (s *Server) adminDeactivateChat(c *gin.Context) {
	id := c.Param("id")
	if err := s.store.Deactivate(id); err != nil {
		respondError(c, chatError(err, id))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "inactive"})
}

// health answers for any server able to serve the request, including one
// mounted through Handler without Start.
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, component.Health{Name: componentName, Status: component.StatusHealthy})
}
