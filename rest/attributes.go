package rest

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Attributes is a decoded JSON object.
type Attributes map[string]any

// AsAttributes converts a decoded JSON value into Attributes when it is an object.
func AsAttributes(v any) (Attributes, bool) {
	switch m := v.(type) {
	case Attributes:
		return m, true
	case map[string]any:
		return Attributes(m), true
	default:
		return nil, false
	}
}

// Clone returns a shallow copy. A nil receiver yields an empty, non-nil map.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// String returns the value under key rendered as a string. Numbers are
// formatted without exponent; missing keys and nested values yield false.
func (a Attributes) String(key string) (string, bool) {
	v, ok := a[key]
	if !ok {
		return "", false
	}
	return scalarString(v)
}

// Int returns the value under key as an int. Numeric strings are accepted.
func (a Attributes) Int(key string) (int, bool) {
	v, ok := a[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// Object returns the nested object under key.
func (a Attributes) Object(key string) (Attributes, bool) {
	return AsAttributes(a[key])
}

// List returns the array under key.
func (a Attributes) List(key string) ([]any, bool) {
	l, ok := a[key].([]any)
	return l, ok
}

func scalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case bool:
		return strconv.FormatBool(s), true
	case fmt.Stringer:
		return s.String(), true
	default:
		return "", false
	}
}
