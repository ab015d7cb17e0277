package testutil

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"
)

// DecodeJSON decodes data keeping numbers as json.Number.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// AssertJSONEqual fails the test unless got and want encode the same JSON
// value, ignoring key order and whitespace.
func AssertJSONEqual(t testing.TB, want string, got []byte) {
	t.Helper()
	w, err := DecodeJSON([]byte(want))
	if err != nil {
		t.Fatalf("invalid expected JSON %q: %v", want, err)
	}
	g, err := DecodeJSON(got)
	if err != nil {
		t.Fatalf("invalid JSON body %q: %v", string(got), err)
	}
	if !reflect.DeepEqual(w, g) {
		t.Errorf("JSON mismatch\nwant: %s\n got: %s", want, string(got))
	}
}
