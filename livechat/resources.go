package livechat

import (
	"context"

	"github.com/kbukum/livechat/rest"
)

// Customer is a customer resource.
type Customer struct {
	*rest.Instance
}

// NewCustomer matches rest.Constructor[*Customer].
func NewCustomer(path string, client rest.Requester, attrs rest.Attributes) *Customer {
	return &Customer{Instance: rest.NewInstance(path, client, attrs)}
}

// Name returns the customer name, fetching the customer if needed.
func (c *Customer) Name(ctx context.Context) (string, error) {
	return stringAttr(ctx, c.Instance, "name")
}

// Email returns the customer email, fetching the customer if needed.
func (c *Customer) Email(ctx context.Context) (string, error) {
	return stringAttr(ctx, c.Instance, "email")
}

// Chat is an agent-side chat resource.
type Chat struct {
	*rest.Instance
}

// NewChat matches rest.Constructor[*Chat].
func NewChat(path string, client rest.Requester, attrs rest.Attributes) *Chat {
	return &Chat{Instance: rest.NewInstance(path, client, attrs)}
}

// Users returns the ids of the chat participants.
func (c *Chat) Users(ctx context.Context) ([]string, error) {
	v, err := c.Get(ctx, "users")
	if err != nil {
		return nil, err
	}
	list, _ := v.([]any)
	ids := make([]string, 0, len(list))
	for _, u := range list {
		if attrs, ok := rest.AsAttributes(u); ok {
			if id, ok := attrs.String("id"); ok {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

// ThreadID returns the id of the chat's current thread, or "".
func (c *Chat) ThreadID(ctx context.Context) (string, error) {
	v, err := c.Get(ctx, "thread")
	if err != nil {
		return "", err
	}
	thread, ok := rest.AsAttributes(v)
	if !ok {
		return "", nil
	}
	id, _ := thread.String("id")
	return id, nil
}

func stringAttr(ctx context.Context, i *rest.Instance, key string) (string, error) {
	v, err := i.Get(ctx, key)
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}
