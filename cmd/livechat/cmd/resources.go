package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/livechat/livechat"
	"github.com/kbukum/livechat/rest"
)

// attributed is satisfied by every resource instance.
type attributed interface {
	Attributes(ctx context.Context) (rest.Attributes, error)
}

// printPages prints up to pages pages of l as one JSON document. pages <= 0
// follows next-page links to the end.
func printPages[T attributed](ctx context.Context, s *session, l *rest.ListResource[T], pageSize, pages int) error {
	var params map[string]string
	if pageSize > 0 {
		params = map[string]string{"page_size": strconv.Itoa(pageSize)}
	}
	page, err := l.List(ctx, params, false)
	if err != nil {
		return err
	}
	total := page.Total

	var items []rest.Attributes
	for n := 1; ; n++ {
		for _, item := range page.Items {
			attrs, err := item.Attributes(ctx)
			if err != nil {
				return err
			}
			items = append(items, attrs)
		}
		if !page.HasNext() || (pages > 0 && n >= pages) {
			break
		}
		if page, err = page.Next(ctx); err != nil {
			return err
		}
	}
	return s.print(map[string]any{"total": total, "items": items})
}

func printInstance(ctx context.Context, s *session, i attributed) error {
	attrs, err := i.Attributes(ctx)
	if err != nil {
		return err
	}
	return s.print(attrs)
}

func newCustomersCmd(g *globalFlags) *cobra.Command {
	customersCmd := &cobra.Command{
		Use:   "customers",
		Short: "Manage customers (agent credentials)",
	}

	var pageSize, pages int
	var viaAction bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.run(cmd, func(ctx context.Context, s *session) error {
				if viaAction {
					attrs, err := s.client.ListCustomers(ctx)
					if err != nil {
						return err
					}
					return s.print(attrs)
				}
				return printPages(ctx, s, s.client.Customers(), pageSize, pages)
			})
		},
	}
	list.Flags().IntVar(&pageSize, "page-size", 0, "records per page (default: server default)")
	list.Flags().IntVar(&pages, "pages", 1, "pages to fetch, 0 for all")
	list.Flags().BoolVar(&viaAction, "action", false, "use the list_customers action instead of the resource list")

	get := &cobra.Command{
		Use:   "get CUSTOMER_ID",
		Short: "Show a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.run(cmd, func(ctx context.Context, s *session) error {
				return printInstance(ctx, s, s.client.Customers().Get(args[0]))
			})
		},
	}

	total := &cobra.Command{
		Use:   "total",
		Short: "Print the number of customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.run(cmd, func(ctx context.Context, s *session) error {
				n, err := s.client.Customers().Total(ctx)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(s.out, n)
				return err
			})
		},
	}

	var req livechat.CreateCustomerRequest
	var fields []string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kv, err := splitFields(fields)
			if err != nil {
				return err
			}
			req.SessionFields = livechat.SessionFields(kv...)
			return g.run(cmd, func(ctx context.Context, s *session) error {
				attrs, err := s.client.CreateCustomer(ctx, req)
				if err != nil {
					return err
				}
				return s.print(attrs)
			})
		},
	}
	create.Flags().StringVar(&req.Name, "name", "", "customer name")
	create.Flags().StringVar(&req.Email, "email", "", "customer email")
	create.Flags().StringVar(&req.AvatarURL, "avatar", "", "avatar URL")
	create.Flags().StringArrayVar(&fields, "field", nil, "session field as key=value, repeatable")

	customersCmd.AddCommand(list, get, total, create)
	return customersCmd
}

func newChatsCmd(g *globalFlags) *cobra.Command {
	chatsCmd := &cobra.Command{
		Use:   "chats",
		Short: "Browse chats (agent credentials)",
	}

	var pageSize, pages int
	list := &cobra.Command{
		Use:   "list",
		Short: "List chats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.run(cmd, func(ctx context.Context, s *session) error {
				return printPages(ctx, s, s.client.Chats(), pageSize, pages)
			})
		},
	}
	list.Flags().IntVar(&pageSize, "page-size", 0, "records per page (default: server default)")
	list.Flags().IntVar(&pages, "pages", 1, "pages to fetch, 0 for all")

	get := &cobra.Command{
		Use:   "get CHAT_ID",
		Short: "Show a chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.run(cmd, func(ctx context.Context, s *session) error {
				return printInstance(ctx, s, s.client.Chats().Get(args[0]))
			})
		},
	}

	users := &cobra.Command{
		Use:   "users CHAT_ID",
		Short: "List the ids of a chat's participants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.run(cmd, func(ctx context.Context, s *session) error {
				ids, err := s.client.Chats().Get(args[0]).Users(ctx)
				if err != nil {
					return err
				}
				return s.print(ids)
			})
		},
	}

	chatsCmd.AddCommand(list, get, users)
	return chatsCmd
}

// splitFields turns ["k=v", ...] into [k, v, ...].
func splitFields(fields []string) ([]string, error) {
	kv := make([]string, 0, 2*len(fields))
	for _, f := range fields {
		k, v, ok := strings.Cut(f, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --field %q, want key=value", f)
		}
		kv = append(kv, k, v)
	}
	return kv, nil
}
