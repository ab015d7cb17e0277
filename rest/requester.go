package rest

import (
	"context"
	"reflect"
)

// Requester is the transport a ListResource delegates to. Responses are
// decoded JSON: map[string]any, []any, json.Number, string, bool or nil.
//
// Implementations report HTTP and decoding failures through their own error
// types; ListResource passes them through untouched.
type Requester interface {
	// Get issues a GET. When fullPath is true, path is a complete request URI
	// handed back by the API (a next-page link) and must not be prefixed.
	Get(ctx context.Context, path string, params map[string]string, fullPath bool) (any, error)

	// Post issues a POST with body encoded as JSON.
	Post(ctx context.Context, path string, body any) (any, error)
}

// Bound returns r, or nil when r holds a nil pointer or other nil reference.
// A typed nil stored in an interface is not == nil and would panic on use.
func Bound(r Requester) Requester {
	if r == nil {
		return nil
	}
	switch v := reflect.ValueOf(r); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice, reflect.Interface:
		if v.IsNil() {
			return nil
		}
	}
	return r
}
