package httpclient

// Request describes an outbound HTTP request.
type Request struct {
	// Method is the HTTP method.
	Method string
	// Path is resolved against BaseURL and PathPrefix. An absolute http(s)
	// URL is used as-is.
	Path string
	// FullPath marks Path as a server-provided URI (a next-page link, for
	// example): PathPrefix is not applied and any query it carries is kept.
	FullPath bool
	// Query parameters are merged into the URL query.
	Query map[string]string
	// Headers are request-specific headers (merged over client defaults).
	Headers map[string]string
	// Body is JSON-encoded unless it is nil, []byte or string.
	Body any
	// Auth overrides the client-level auth for this request.
	Auth *AuthConfig
}

// Response is the result of an HTTP request.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	// RequestID is the X-Request-Id sent with the request.
	RequestID string
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
