package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func newTokenCmd(g *globalFlags) *cobra.Command {
	var licenseID, clientID, redirectURI string

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Issue customer access tokens",
	}

	agent := &cobra.Command{
		Use:   "agent",
		Short: "Issue a customer token with the agent's credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.run(cmd, func(ctx context.Context, s *session) error {
				attrs, err := s.client.IssueCustomerToken(ctx,
					orDefault(licenseID, s.cfg.LiveChat.LicenseID),
					orDefault(clientID, s.cfg.LiveChat.ClientID))
				if err != nil {
					return err
				}
				return s.print(attrs)
			})
		},
	}

	cookie := &cobra.Command{
		Use:   "cookie",
		Short: "Exchange the customer's session cookie for a token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.run(cmd, func(ctx context.Context, s *session) error {
				attrs, err := s.client.CustomerTokenFromCookie(ctx,
					orDefault(licenseID, s.cfg.LiveChat.LicenseID),
					orDefault(clientID, s.cfg.LiveChat.ClientID),
					orDefault(redirectURI, s.cfg.LiveChat.RedirectURI))
				if err != nil {
					return err
				}
				return s.print(attrs)
			})
		},
	}
	cookie.Flags().StringVar(&redirectURI, "redirect-uri", "", "redirect URI registered for the client")

	pf := tokenCmd.PersistentFlags()
	pf.StringVar(&licenseID, "license-id", "", "license id (default: livechat.license_id)")
	pf.StringVar(&clientID, "client-id", "", "OAuth client id (default: livechat.client_id)")

	tokenCmd.AddCommand(agent, cookie)
	return tokenCmd
}

// newChatCmd groups the chat actions. start, resume, send and list act as
// the customer; add-user acts as an agent.
func newChatCmd(g *globalFlags) *cobra.Command {
	var organizationID, licenseID string

	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Start, resume and message chats",
	}
	chatCmd.PersistentFlags().StringVar(&organizationID, "organization-id", "", "organization id (default: livechat.organization_id)")
	org := func(s *session) string { return orDefault(organizationID, s.cfg.LiveChat.OrganizationID) }

	start := &cobra.Command{
		Use:   "start TEXT",
		Short: "Start a chat with a first message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.run(cmd, func(ctx context.Context, s *session) error {
				attrs, err := s.client.StartChat(ctx, org(s), args[0])
				if err != nil {
					return err
				}
				return s.print(attrs)
			})
		},
	}

	resume := &cobra.Command{
		Use:   "resume CHAT_ID",
		Short: "Resume an inactive chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.run(cmd, func(ctx context.Context, s *session) error {
				attrs, err := s.client.ResumeChat(ctx, org(s), args[0])
				if err != nil {
					return err
				}
				return s.print(attrs)
			})
		},
	}

	send := &cobra.Command{
		Use:   "send CHAT_ID TEXT",
		Short: "Send a message to a chat",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.run(cmd, func(ctx context.Context, s *session) error {
				attrs, err := s.client.SendMessage(ctx, org(s), args[0], args[1])
				if err != nil {
					return err
				}
				return s.print(attrs)
			})
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the customer's chats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return g.run(cmd, func(ctx context.Context, s *session) error {
				attrs, err := s.client.ListCustomerChats(ctx, org(s))
				if err != nil {
					return err
				}
				return s.print(attrs)
			})
		},
	}

	addUser := &cobra.Command{
		Use:   "add-user CHAT_ID CUSTOMER_ID",
		Short: "Add a customer to a chat",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.run(cmd, func(ctx context.Context, s *session) error {
				attrs, err := s.client.AddUserToChat(ctx, orDefault(licenseID, s.cfg.LiveChat.LicenseID), args[0], args[1])
				if err != nil {
					return err
				}
				return s.print(attrs)
			})
		},
	}
	addUser.Flags().StringVar(&licenseID, "license-id", "", "license id (default: livechat.license_id)")

	chatCmd.AddCommand(start, resume, send, list, addUser)
	return chatCmd
}
