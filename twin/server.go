package twin

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/livechat/component"
	"github.com/kbukum/livechat/logger"
)

const componentName = "livechat-twin"

var (
	_ component.Component   = (*Server)(nil)
	_ component.Describable = (*Server)(nil)
)

// Server serves the twin API. It implements component.Component and can be
// reset between tests.
type Server struct {
	cfg     Config
	store   *Store
	tokens  *Tokens
	agents  *agentCredentials
	engine  *gin.Engine
	handler http.Handler
	log     *logger.Logger

	mu       sync.RWMutex
	srv      *http.Server
	listener net.Listener
}

// New creates a twin server. cfg defaults are applied; an invalid cfg is
// returned as an error.
func New(cfg Config, log *logger.Logger) (*Server, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:    cfg,
		store:  NewStore(),
		tokens: NewTokens(cfg),
		agents: newAgentCredentials(cfg.Agents),
		engine: gin.New(),
		log:    log.WithComponent("twin"),
	}
	s.routes()

	// h2c lets HTTP/2 clients talk to the twin without TLS.
	s.handler = h2c.NewHandler(s.engine, &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          time.Duration(cfg.IdleTimeout) * time.Second,
	})
	return s, nil
}

func (s *Server) routes() {
	e := s.engine
	e.Use(recovery(s.log), requestID(), bodyLimit(s.cfg.MaxBodyBytes), requestLogger(s.log))

	e.GET("/health", s.health)
	e.POST("/customer/token", s.issueToken)

	agent := e.Group("/v3.4/agent", agentAuth(s.agents))
	agent.POST("/action/list_customers", s.listCustomersAction)
	agent.POST("/action/create_customer", s.createCustomerAction)
	agent.POST("/action/add_user_to_chat", s.addUserToChat)
	agent.GET("/customers", s.listCustomers)
	agent.POST("/customers", s.createCustomer)
	agent.GET("/customers/:id", s.getCustomer)
	agent.GET("/chats", s.listChats)
	agent.GET("/chats/:id", s.getChat)

	customer := e.Group("/v3.4/customer/action", customerAuth(s.tokens))
	customer.POST("/start_chat", s.startChat)
	customer.POST("/resume_chat", s.resumeChat)
	customer.POST("/send_event", s.sendEvent)
	customer.POST("/list_chats", s.listCustomerChats)

	admin := e.Group("/admin")
	admin.POST("/reset", s.adminReset)
	admin.GET("/state", s.adminGetState)
	admin.POST("/state", s.adminLoadState)
	admin.POST("/chats/:id/deactivate", s.adminDeactivateChat)
}

// Handler returns the root handler, for mounting in httptest servers.
func (s *Server) Handler() http.Handler { return s.handler }

// Store returns the backing store.
func (s *Server) Store() *Store { return s.store }

// Tokens returns the customer token service.
func (s *Server) Tokens() *Tokens { return s.tokens }

// Name implements component.Component.
func (s *Server) Name() string { return componentName }

// Start binds the listener and serves in the background. It returns once the
// port is bound.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv != nil {
		return fmt.Errorf("twin already started on %s", s.listener.Addr())
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("twin failed to bind %s: %w", s.cfg.Addr, err)
	}
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.IdleTimeout) * time.Second,
	}
	s.srv, s.listener = srv, ln

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("twin server error", logger.ErrorFields(err))
		}
	}()

	s.log.Info("twin server started", logger.Fields("addr", ln.Addr().String()))
	return nil
}

// Stop shuts the server down with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err := s.srv.Shutdown(shutdownCtx)
	s.srv, s.listener = nil, nil
	if err != nil {
		return fmt.Errorf("twin shutdown: %w", err)
	}
	s.log.Info("twin server stopped")
	return nil
}

// Health implements component.Component.
func (s *Server) Health(context.Context) component.Health {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.srv == nil {
		return component.Health{Name: componentName, Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: componentName, Status: component.StatusHealthy}
}

// Reset clears all stored state.
func (s *Server) Reset(context.Context) error {
	s.store.Reset()
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.Addr
}

// BaseURL returns the URL clients should use.
func (s *Server) BaseURL() string {
	return "http://" + s.Addr()
}

// Describe implements component.Describable.
func (s *Server) Describe() component.Description {
	port := 0
	if _, p, err := net.SplitHostPort(s.Addr()); err == nil {
		port, _ = strconv.Atoi(p)
	}
	return component.Description{
		Name:    "LiveChat twin",
		Type:    "server",
		Details: s.Addr(),
		Port:    port,
	}
}
