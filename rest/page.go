package rest

import "context"

// Page is one page of a list response.
type Page[T any] struct {
	// Items are the instances in response order.
	Items []T
	// Total is the server-side count when the envelope reports one,
	// otherwise len(Items).
	Total int
	// NextPageURI is the API-provided link to the following page, if any.
	NextPageURI string

	next func(ctx context.Context, params map[string]string, fullPath bool) (*Page[T], error)
}

// Len returns the number of items on this page.
func (p *Page[T]) Len() int { return len(p.Items) }

// HasNext reports whether the server advertised a following page.
func (p *Page[T]) HasNext() bool { return p.next != nil }

// Next fetches the following page. On the last page it returns an empty page.
func (p *Page[T]) Next(ctx context.Context) (*Page[T], error) {
	if p.next == nil {
		return &Page[T]{}, nil
	}
	return p.next(ctx, nil, true)
}
