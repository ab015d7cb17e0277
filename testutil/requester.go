package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// Call is one request seen by a RecordingRequester.
type Call struct {
	Method   string
	Path     string
	Params   map[string]string
	FullPath bool
	// Body is the JSON encoding of the POST body.
	Body []byte
}

type reply struct {
	value any
	err   error
}

// RecordingRequester is a fake transport that records calls and answers
// from canned replies keyed by method and path. It is safe for concurrent use.
type RecordingRequester struct {
	mu      sync.Mutex
	calls   []Call
	replies map[string]reply
}

// NewRecordingRequester creates an empty RecordingRequester.
func NewRecordingRequester() *RecordingRequester {
	return &RecordingRequester{replies: make(map[string]reply)}
}

// OnGet sets the decoded JSON value returned for GET path.
func (r *RecordingRequester) OnGet(path string, value any) *RecordingRequester {
	return r.set(http.MethodGet, path, reply{value: normalize(value)})
}

// OnPost sets the decoded JSON value returned for POST path.
func (r *RecordingRequester) OnPost(path string, value any) *RecordingRequester {
	return r.set(http.MethodPost, path, reply{value: normalize(value)})
}

// Fail makes method+path return err.
func (r *RecordingRequester) Fail(method, path string, err error) *RecordingRequester {
	return r.set(method, path, reply{err: err})
}

// Get implements rest.Requester.
func (r *RecordingRequester) Get(_ context.Context, path string, params map[string]string, fullPath bool) (any, error) {
	var copied map[string]string
	if params != nil {
		copied = make(map[string]string, len(params))
		for k, v := range params {
			copied[k] = v
		}
	}
	return r.record(Call{Method: http.MethodGet, Path: path, Params: copied, FullPath: fullPath})
}

// Post implements rest.Requester.
func (r *RecordingRequester) Post(_ context.Context, path string, body any) (any, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("testutil: encode body: %w", err)
	}
	return r.record(Call{Method: http.MethodPost, Path: path, Body: data})
}

// Calls returns a copy of the recorded calls in order.
func (r *RecordingRequester) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallCount returns the number of recorded calls.
func (r *RecordingRequester) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// LastCall returns the most recent call.
func (r *RecordingRequester) LastCall() (Call, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return Call{}, false
	}
	return r.calls[len(r.calls)-1], true
}

// Reset forgets recorded calls. Canned replies are kept.
func (r *RecordingRequester) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *RecordingRequester) set(method, path string, rep reply) *RecordingRequester {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies[method+" "+path] = rep
	return r
}

func (r *RecordingRequester) record(c Call) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
	rep, ok := r.replies[c.Method+" "+c.Path]
	if !ok {
		return nil, fmt.Errorf("testutil: no reply configured for %s %s", c.Method, c.Path)
	}
	return rep.value, rep.err
}

// normalize round-trips v through JSON with UseNumber, matching what the
// real transport hands back.
func normalize(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	out, err := DecodeJSON(data)
	if err != nil {
		return v
	}
	return out
}
