// Package rest maps the chat-service REST API onto typed resource lists.
//
// A ListResource lists, fetches, and creates sub-resources under one path
// prefix. It never talks HTTP itself; every request goes through a Requester
// (normally *httpclient.Client) and every record that comes back is wrapped in
// an instance built by a Constructor bound when the list is created.
//
// # Usage
//
//	chats := rest.NewListResource("/v3.4/agent/chats", client, NewChat,
//	    rest.WithListKey("chats"))
//
//	page, err := chats.List(ctx, map[string]string{"page_size": "25"}, false)
//	for _, chat := range page.Items {
//	    fmt.Println(chat.Path())
//	}
//
//	chat := chats.Get("PJ0MRSHTDG") // no request until an attribute is read
//
// A ListResource is immutable after construction and safe for concurrent
// use. Instances fetch their own attributes lazily.
package rest
