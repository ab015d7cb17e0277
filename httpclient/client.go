package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/livechat/logger"
	"github.com/kbukum/livechat/observability"
)

// RequestIDHeader carries the request id to the API.
const RequestIDHeader = "X-Request-Id"

// Client is a configurable JSON HTTP client.
type Client struct {
	httpClient *http.Client
	config     Config
	log        *logger.Logger
	tracer     trace.Tracer
	metrics    *observability.Metrics
}

// Option customizes a Client.
type Option func(*options)

type options struct {
	httpClient     *http.Client
	log            *logger.Logger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// WithHTTPClient replaces the underlying *http.Client. Its Timeout is
// overwritten by Config.Timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithLogger sets the request logger. Defaults to the global logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTracerProvider sets the tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithMeterProvider sets the meter provider. Defaults to the global one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// New creates a new HTTP client with the given configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	hc := o.httpClient
	if hc == nil {
		hc = &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
	}
	hc.Timeout = cfg.Timeout

	log := o.log
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	tracer := observability.Tracer(observability.InstrumentationName)
	if o.tracerProvider != nil {
		tracer = o.tracerProvider.Tracer(observability.InstrumentationName)
	}
	meter := observability.Meter(observability.InstrumentationName)
	if o.meterProvider != nil {
		meter = o.meterProvider.Meter(observability.InstrumentationName)
	}
	metrics, err := observability.NewMetrics(meter)
	if err != nil {
		return nil, err
	}

	return &Client{
		httpClient: hc,
		config:     cfg,
		log:        log.WithComponent("httpclient"),
		tracer:     tracer,
		metrics:    metrics,
	}, nil
}

// Config returns the effective configuration.
func (c *Client) Config() Config { return c.config }

// Unwrap returns the underlying *http.Client for advanced use cases.
func (c *Client) Unwrap() *http.Client {
	return c.httpClient
}

// Get performs a GET and decodes the JSON response. With fullPath the path
// is a server-provided URI and is requested without PathPrefix.
func (c *Client) Get(ctx context.Context, path string, params map[string]string, fullPath bool) (any, error) {
	resp, err := c.Do(ctx, Request{
		Method:   http.MethodGet,
		Path:     path,
		FullPath: fullPath,
		Query:    params,
	})
	if err != nil {
		return nil, err
	}
	return decodeJSON(resp)
}

// Post performs a POST with a JSON body and decodes the JSON response.
// A query string in path is kept.
func (c *Client) Post(ctx context.Context, path string, body any) (any, error) {
	resp, err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}
	return decodeJSON(resp)
}

// Do executes an HTTP request and returns the complete response. Non-2xx
// responses are returned together with a classified *Error.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	requestID := logger.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = logger.ContextWithRequestID(ctx, requestID)
	}

	ctx, span := c.tracer.Start(ctx, observability.SpanHTTPRequest+" "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(observability.AttrHTTPMethod, req.Method),
			attribute.String(observability.AttrRequestID, requestID),
		),
	)
	defer span.End()

	start := time.Now()
	c.metrics.RecordRequestStart(ctx)

	resp, err := c.execute(ctx, req, requestID, span)

	duration := time.Since(start)
	status, code := "error", 0
	if resp != nil {
		code = resp.StatusCode
		status = strconv.Itoa(code)
		span.SetAttributes(attribute.Int(observability.AttrHTTPStatus, resp.StatusCode))
	}
	c.metrics.RecordRequestEnd(ctx, c.config.Name, req.Method, status, duration)

	log := c.log.WithContext(ctx)
	fields := logger.HTTPFields(req.Method, req.Path, code, duration)
	if err != nil {
		errType := "unknown"
		var e *Error
		if errors.As(err, &e) {
			errType = e.Code.String()
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(observability.AttrErrorType, errType))
		c.metrics.RecordError(ctx, errType, c.config.Name)
		log.WithError(err).Warn("request failed", fields)
		return resp, err
	}

	log.Debug("request completed", fields)
	return resp, nil
}

func (c *Client) execute(ctx context.Context, req Request, requestID string, span trace.Span) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set(RequestIDHeader, requestID)
	span.SetAttributes(attribute.String(observability.AttrHTTPURL, redactURL(httpReq.URL)))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil || isTimeout(err) {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
		RequestID:  requestID,
	}

	if classErr := ClassifyStatusCode(resp.StatusCode, body); classErr != nil {
		return result, classErr
	}
	return result, nil
}

// buildRequest constructs an *http.Request from the client config and request.
func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	target, err := c.resolve(req.Path, req.FullPath)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("resolve path %q: %v", req.Path, err))
	}

	if len(req.Query) > 0 {
		q := target.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		target.RawQuery = q.Encode()
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("encode body: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("create request: %v", err))
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.config.UserAgent)
	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if body != nil && httpReq.Header.Get("Content-Type") == "" && contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	auth := c.config.Auth
	if req.Auth != nil {
		auth = req.Auth
	}
	auth.apply(httpReq)

	return httpReq, nil
}

// resolve joins path onto the base URL. Absolute URLs are used unchanged.
func (c *Client) resolve(path string, fullPath bool) (*url.URL, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return url.Parse(path)
	}
	joined := path
	if !fullPath && c.config.PathPrefix != "" {
		joined = strings.TrimRight(c.config.PathPrefix, "/") + "/" + strings.TrimLeft(path, "/")
	}
	if c.config.BaseURL != "" {
		joined = strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(joined, "/")
	}
	return url.Parse(joined)
}

// encodeBody converts a body value into an io.Reader and content type.
func encodeBody(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case []byte:
		return bytes.NewReader(v), "application/json", nil
	case string:
		return strings.NewReader(v), "application/json", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// decodeJSON decodes a response body keeping numbers as json.Number. An
// empty body decodes to nil.
func decodeJSON(resp *Response) (any, error) {
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(resp.Body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, NewDecodeError(resp.StatusCode, resp.Body, err)
	}
	return v, nil
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

// redactURL drops user info before the URL is attached to a span.
func redactURL(u *url.URL) string {
	if u.User == nil {
		return u.String()
	}
	cp := *u
	cp.User = nil
	return cp.String()
}
