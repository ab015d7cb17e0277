package rest

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/livechat/errors"
)

const (
	defaultIDKey       = "id"
	defaultTotalKey    = "total"
	defaultNextPageKey = "next_page_uri"
)

// ListResource lists, fetches, and creates resources of type T under a path.
type ListResource[T any] struct {
	path        string
	client      Requester
	newInstance Constructor[T]
	opts        listOptions
}

type listOptions struct {
	idKey       string
	listKey     string
	totalKey    string
	nextPageKey string
}

// Option configures a ListResource.
type Option func(*listOptions)

// WithIDKey sets the record field used to build instance paths. Defaults to "id".
func WithIDKey(key string) Option {
	return func(o *listOptions) { o.idKey = key }
}

// WithListKey reads list records from this envelope field instead of treating
// the whole envelope as the record sequence.
func WithListKey(key string) Option {
	return func(o *listOptions) { o.listKey = key }
}

// WithTotalKey sets the envelope field holding the server-side total.
// Defaults to "total".
func WithTotalKey(key string) Option {
	return func(o *listOptions) { o.totalKey = key }
}

// WithNextPageKey sets the envelope field holding the next page URI.
// Defaults to "next_page_uri".
func WithNextPageKey(key string) Option {
	return func(o *listOptions) { o.nextPageKey = key }
}

// Mutator adjusts create params before they are sent.
type Mutator func(params Attributes)

// NewListResource creates a list adapter. client may be nil, or a typed nil
// pointer; every operation that needs the network then fails with a
// CLIENT_NOT_BOUND error.
func NewListResource[T any](path string, client Requester, ctor Constructor[T], opts ...Option) *ListResource[T] {
	o := listOptions{
		idKey:       defaultIDKey,
		totalKey:    defaultTotalKey,
		nextPageKey: defaultNextPageKey,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &ListResource[T]{
		path:        path,
		client:      Bound(client),
		newInstance: ctor,
		opts:        o,
	}
}

// Path returns the base path.
func (l *ListResource[T]) Path() string { return l.path }

// String implements fmt.Stringer.
func (l *ListResource[T]) String() string {
	return fmt.Sprintf("<ListResource path=%s>", l.path)
}

// List fetches one page of resources. params are sent as query parameters.
//
// Each record becomes an instance at "{path}/{record[idKey]}"; a record
// without the id key keeps its attributes at "{path}/". With fullPath
// the list path is a next-page URI returned by the API; the query string and
// any extension on its last segment are dropped before building instance
// paths.
func (l *ListResource[T]) List(ctx context.Context, params map[string]string, fullPath bool) (*Page[T], error) {
	if l.client == nil {
		return nil, errors.ClientNotBound("get a resource list")
	}
	resp, err := l.client.Get(ctx, l.path, params, fullPath)
	if err != nil {
		return nil, err
	}

	records, err := l.records(resp)
	if err != nil {
		return nil, err
	}

	base := l.path
	if fullPath {
		base = pageBase(l.path)
	}

	items := make([]T, 0, len(records))
	for n, rec := range records {
		attrs, ok := AsAttributes(rec)
		if !ok {
			return nil, errors.UnexpectedResponse(l.path, fmt.Sprintf("record %d is %T, not an object", n, rec))
		}
		// A record without an id still counts; its path ends in "/".
		id, _ := attrs.String(l.opts.idKey)
		items = append(items, l.newInstance(base+"/"+id, l.client, attrs))
	}

	page := &Page[T]{Items: items, Total: len(items)}
	if env, ok := AsAttributes(resp); ok {
		if total, ok := env.Int(l.opts.totalKey); ok {
			page.Total = total
		}
		if next, ok := env.String(l.opts.nextPageKey); ok && next != "" {
			page.NextPageURI = next
			page.next = l.sibling(next).List
		}
	}
	return page, nil
}

// Get returns an instance for id without any network I/O. Whether id exists
// is only discovered when the instance fetches its attributes.
func (l *ListResource[T]) Get(id string) T {
	return l.newInstance(l.path+"/"+id, l.client, nil)
}

// Find is an alias for Get.
func (l *ListResource[T]) Find(id string) T {
	return l.Get(id)
}

// Create POSTs params, after applying mutators in order, to the list path and
// wraps the response as an instance at "{path}/{response[idKey]}", or
// "{path}/" when the response carries no id. The caller's params map is not
// modified.
func (l *ListResource[T]) Create(ctx context.Context, params Attributes, mutators ...Mutator) (T, error) {
	var zero T
	if l.client == nil {
		return zero, errors.ClientNotBound("create a resource")
	}

	body := params.Clone()
	for _, m := range mutators {
		if m != nil {
			m(body)
		}
	}

	resp, err := l.client.Post(ctx, l.path, body)
	if err != nil {
		return zero, err
	}
	attrs, ok := AsAttributes(resp)
	if !ok {
		return zero, errors.UnexpectedResponse(l.path, fmt.Sprintf("expected an object, got %T", resp))
	}
	id, _ := attrs.String(l.opts.idKey)
	return l.newInstance(l.path+"/"+id, l.client, attrs), nil
}

// Each lists the first page with default parameters and calls fn for every
// item in order. It stops at the first error fn returns.
func (l *ListResource[T]) Each(ctx context.Context, fn func(T) error) error {
	page, err := l.List(ctx, nil, false)
	if err != nil {
		return err
	}
	for _, item := range page.Items {
		if err := fn(item); err != nil {
			return err
		}
	}
	return nil
}

// Total asks the server for the number of resources using a page size of one.
// Prefer Page.Total when a List call is being made anyway.
func (l *ListResource[T]) Total(ctx context.Context) (int, error) {
	if l.client == nil {
		return 0, errors.ClientNotBound("get a resource total")
	}
	resp, err := l.client.Get(ctx, l.path, map[string]string{"page_size": "1"}, false)
	if err != nil {
		return 0, err
	}
	env, ok := AsAttributes(resp)
	if !ok {
		return 0, errors.UnexpectedResponse(l.path, fmt.Sprintf("expected an object, got %T", resp))
	}
	total, ok := env.Int(l.opts.totalKey)
	if !ok {
		return 0, errors.UnexpectedResponse(l.path, fmt.Sprintf("response has no %q field", l.opts.totalKey))
	}
	return total, nil
}

// records extracts the record sequence from a list envelope. A null list is
// an empty page.
func (l *ListResource[T]) records(resp any) ([]any, error) {
	src := resp
	if l.opts.listKey != "" {
		env, ok := AsAttributes(resp)
		if !ok {
			return nil, errors.UnexpectedResponse(l.path, fmt.Sprintf("expected an object envelope, got %T", resp))
		}
		v, ok := env[l.opts.listKey]
		if !ok {
			return nil, errors.UnexpectedResponse(l.path, fmt.Sprintf("missing list key %q", l.opts.listKey))
		}
		src = v
	}
	if src == nil {
		return nil, nil
	}
	records, ok := src.([]any)
	if !ok {
		return nil, errors.UnexpectedResponse(l.path, fmt.Sprintf("expected a list, got %T", src))
	}
	return records, nil
}

// sibling returns a list over the same resource type rooted at path.
func (l *ListResource[T]) sibling(path string) *ListResource[T] {
	return &ListResource[T]{
		path:        path,
		client:      l.client,
		newInstance: l.newInstance,
		opts:        l.opts,
	}
}

// pageBase turns a next-page URI into the base path of its records:
// "/v3.4/agent/customers.json?page=2" becomes "/v3.4/agent/customers".
func pageBase(uri string) string {
	if idx := strings.IndexAny(uri, "?#"); idx >= 0 {
		uri = uri[:idx]
	}
	dir, last := "", uri
	if idx := strings.LastIndex(uri, "/"); idx >= 0 {
		dir, last = uri[:idx+1], uri[idx+1:]
	}
	if idx := strings.Index(last, "."); idx >= 0 {
		last = last[:idx]
	}
	return dir + last
}
