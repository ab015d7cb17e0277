// Package twin is an in-memory stand-in for the LiveChat API, served with
// gin. It implements the token endpoint, the agent and customer actions, and
// the customer and chat resource lists with page_size paging and
// next_page_uri links.
//
// Agent routes accept any Bearer or Basic credentials. Customer routes
// require an access token issued by the twin's own /customer/token endpoint.
//
//	srv, _ := twin.New(twin.Config{Addr: "127.0.0.1:0"}, nil)
//	testutil.T(t).Setup(srv)
//	client, _ := livechat.New(livechat.Config{BaseURL: srv.BaseURL(), AccessToken: "agent"})
//
// State is inspected and replaced through /admin/state and cleared through
// /admin/reset or Reset.
package twin
