// Package livechat is a client for the LiveChat agent and customer APIs.
//
// A Client exposes two kinds of operations. Resource lists (Customers,
// Chats) list, fetch and create resources through rest.ListResource.
// Actions (StartChat, SendMessage, ...) are one-shot POSTs to fixed
// endpoints that return the raw response envelope.
//
//	client, err := livechat.New(livechat.Config{AccessToken: token})
//	if err != nil {
//	    return err
//	}
//	resp, err := client.StartChat(ctx, organizationID, "hi")
//
// Actions send their inputs as given and return API errors unchanged. A
// Client built without a transport fails every operation with a
// CLIENT_NOT_BOUND error before any I/O.
package livechat
