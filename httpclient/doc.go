// Package httpclient is the JSON transport used by the livechat client.
//
// A Client resolves request paths against a base URL, applies default
// headers and authentication, tags every request with an X-Request-Id,
// and reports each call as an OpenTelemetry span, a set of metrics, and a
// structured log line. Non-2xx responses become classified *Error values.
//
// Get and Post decode the response body into plain JSON values
// (map[string]any, []any, json.Number, string, bool, nil), which makes a
// *Client satisfy rest.Requester.
//
//	c, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.livechatinc.com",
//	    Auth:    httpclient.BearerAuth(token),
//	})
//
//	resp, err := c.Get(ctx, "/v3.4/agent/chats", map[string]string{"limit": "10"}, false)
package httpclient
