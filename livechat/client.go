package livechat

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/metric"

	"github.com/kbukum/livechat/errors"
	"github.com/kbukum/livechat/httpclient"
	"github.com/kbukum/livechat/logger"
	"github.com/kbukum/livechat/observability"
	"github.com/kbukum/livechat/rest"
)

const serviceName = "livechat"

// Resource list paths.
const (
	CustomersPath = "/v3.4/agent/customers"
	ChatsPath     = "/v3.4/agent/chats"
)

// Client talks to the LiveChat API through a rest.Requester.
type Client struct {
	requester rest.Requester
	log       *logger.Logger
	metrics   *observability.Metrics
}

// Option customizes a Client.
type Option func(*options)

type options struct {
	log           *logger.Logger
	meterProvider metric.MeterProvider
	httpOptions   []httpclient.Option
}

// WithLogger sets the logger. Defaults to the global logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMeterProvider sets the meter provider used for action metrics.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// WithHTTPOptions passes options to the underlying httpclient. Ignored by
// NewWithRequester.
func WithHTTPOptions(opts ...httpclient.Option) Option {
	return func(o *options) { o.httpOptions = append(o.httpOptions, opts...) }
}

// New creates a Client that talks HTTP to cfg.BaseURL.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := collect(opts)

	httpOpts := o.httpOptions
	if o.log != nil {
		httpOpts = append([]httpclient.Option{httpclient.WithLogger(o.log)}, httpOpts...)
	}
	if o.meterProvider != nil {
		httpOpts = append([]httpclient.Option{httpclient.WithMeterProvider(o.meterProvider)}, httpOpts...)
	}
	hc, err := httpclient.New(cfg.httpConfig(), httpOpts...)
	if err != nil {
		return nil, fmt.Errorf("livechat: create http client: %w", err)
	}
	return newClient(hc, o), nil
}

// NewWithRequester creates a Client over an existing transport. A nil
// requester is allowed; every operation then fails with CLIENT_NOT_BOUND.
func NewWithRequester(r rest.Requester, opts ...Option) *Client {
	return newClient(r, collect(opts))
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newClient(r rest.Requester, o options) *Client {
	log := o.log
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	log = log.WithComponent(serviceName)

	meter := observability.Meter(observability.InstrumentationName)
	if o.meterProvider != nil {
		meter = o.meterProvider.Meter(observability.InstrumentationName)
	}
	metrics, err := observability.NewMetrics(meter)
	if err != nil {
		log.Warn("action metrics disabled", logger.ErrorFields(err))
		metrics = nil
	}

	// A typed nil would defeat the unbound check.
	return &Client{requester: rest.Bound(r), log: log, metrics: metrics}
}

// Requester returns the transport, or nil.
func (c *Client) Requester() rest.Requester { return c.requester }

// Customers returns the customer list.
func (c *Client) Customers() *rest.ListResource[*Customer] {
	return rest.NewListResource(CustomersPath, c.requester, NewCustomer, rest.WithListKey("customers"))
}

// Chats returns the agent chat list.
func (c *Client) Chats() *rest.ListResource[*Chat] {
	return rest.NewListResource(ChatsPath, c.requester, NewChat, rest.WithListKey("chats"))
}

// action POSTs body to path. Inputs are sent as given; the API is the
// authority on their validity and its errors come back unchanged.
func (c *Client) action(ctx context.Context, name, path string, body any) (_ rest.Attributes, err error) {
	if c.requester == nil {
		return nil, errors.ClientNotBound(name)
	}

	ctx, op := observability.StartOperation(ctx, c.metrics, serviceName, name)
	defer func() { op.End(ctx, err) }()

	resp, err := c.requester.Post(ctx, path, body)
	if err != nil {
		return nil, err
	}
	attrs, ok := rest.AsAttributes(resp)
	if !ok && resp != nil {
		return nil, errors.UnexpectedResponse(path, fmt.Sprintf("expected an object, got %T", resp))
	}
	c.log.WithContext(ctx).Debug("action completed", logger.Fields(
		logger.FieldOperation, name,
		logger.FieldDuration, op.Duration().Milliseconds(),
	))
	return attrs, nil
}
