// Package testutil provides test doubles and lifecycle helpers for the
// livechat packages.
//
// RecordingRequester stands in for the HTTP transport behind a
// rest.ListResource or livechat.Client. It records every call and replays
// canned responses, so tests can assert exactly which requests were made,
// or that none were:
//
//	req := testutil.NewRecordingRequester()
//	req.OnGet("/v3.4/agent/chats", map[string]any{"chats": []any{}})
//	chats := rest.NewListResource("/v3.4/agent/chats", req, rest.NewInstance,
//	    rest.WithListKey("chats"))
//
// THelper starts TestComponents (the twin server) and stops them when the
// test ends:
//
//	srv := twin.New(twin.Config{})
//	testutil.T(t).Setup(srv)
package testutil
