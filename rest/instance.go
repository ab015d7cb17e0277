package rest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kbukum/livechat/errors"
)

// Constructor builds the instance type a ListResource hands out. attrs is nil
// when the instance was created without a round trip (ListResource.Get).
type Constructor[T any] func(path string, client Requester, attrs Attributes) T

// Instance is a single remote resource identified by its path. Attributes
// passed at construction are served as-is; anything else is fetched with a
// GET on the instance path the first time it is needed.
type Instance struct {
	path   string
	client Requester

	mu      sync.Mutex
	attrs   Attributes
	fetched bool
}

// NewInstance creates an instance. It matches Constructor[*Instance].
func NewInstance(path string, client Requester, attrs Attributes) *Instance {
	return &Instance{path: path, client: Bound(client), attrs: attrs}
}

// Path returns the resource path.
func (i *Instance) Path() string { return i.path }

// Client returns the transport the instance fetches itself with.
func (i *Instance) Client() Requester { return i.client }

// ID returns the last path segment.
func (i *Instance) ID() string {
	if idx := strings.LastIndex(i.path, "/"); idx >= 0 {
		return i.path[idx+1:]
	}
	return i.path
}

// Loaded reports whether any attributes are held locally.
func (i *Instance) Loaded() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.attrs != nil
}

// Attributes returns the resource attributes, fetching them if none are held.
// The returned map is a copy.
func (i *Instance) Attributes(ctx context.Context) (Attributes, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.attrs == nil {
		if err := i.fetchLocked(ctx); err != nil {
			return nil, err
		}
	}
	return i.attrs.Clone(), nil
}

// Get returns a single attribute. A key missing from pre-populated
// attributes triggers one fetch of the full resource before giving up.
func (i *Instance) Get(ctx context.Context, key string) (any, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if v, ok := i.attrs[key]; ok {
		return v, nil
	}
	if i.fetched {
		return nil, nil
	}
	if err := i.fetchLocked(ctx); err != nil {
		return nil, err
	}
	return i.attrs[key], nil
}

// Refresh discards local attributes and fetches the resource again.
func (i *Instance) Refresh(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.fetchLocked(ctx)
}

// String implements fmt.Stringer.
func (i *Instance) String() string {
	return fmt.Sprintf("<Instance path=%s>", i.path)
}

func (i *Instance) fetchLocked(ctx context.Context) error {
	if i.client == nil {
		return errors.ClientNotBound("fetch a resource")
	}
	resp, err := i.client.Get(ctx, i.path, nil, false)
	if err != nil {
		return err
	}
	attrs, ok := AsAttributes(resp)
	if !ok {
		return errors.UnexpectedResponse(i.path, fmt.Sprintf("expected an object, got %T", resp))
	}
	i.attrs = attrs
	i.fetched = true
	return nil
}
