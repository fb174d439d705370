package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/yukikurage/printflow/internal/app"
	"github.com/yukikurage/printflow/internal/models"
	"github.com/yukikurage/printflow/internal/services"
)

func (c *cli) chatCmd() *cobra.Command {
	chat := &cobra.Command{Use: "chat", Short: "Team chat"}
	chat.AddCommand(&cobra.Command{
		Use:   "send <text>",
		Short: "Send a message as the current profile",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				msg, err := a.Chat.Send(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				if c.jsonOutput() {
					return printJSON(cmd.OutOrStdout(), msg)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "sent")
				return nil
			})
		},
	})
	chat.AddCommand(&cobra.Command{
		Use:   "log",
		Short: "Show the chat history, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				history, err := a.Chat.History(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if c.jsonOutput() {
					return printJSON(out, history)
				}

				tw := newTable(out)
				tw.AppendHeader(table.Row{"Time", "From", "Role", "Message"})
				for _, m := range history {
					sent := time.UnixMilli(m.Timestamp).Format("2006-01-02 15:04")
					tw.AppendRow(table.Row{sent, m.UserName, m.UserRole.Label(), m.Text})
				}
				tw.Render()
				return nil
			})
		},
	})
	return chat
}

func (c *cli) profileCmd() *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Show or change the operator profile"}
	profile.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				user, err := a.Profiles.Get()
				if err != nil {
					return err
				}
				return c.printUser(cmd, user)
			})
		},
	})
	profile.AddCommand(c.profileSetCmd())
	profile.AddCommand(&cobra.Command{
		Use:   "hash-pin <pin>",
		Short: "Print a DIRECTOR_PIN_HASH value for the given PIN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := services.HashPIN(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	})
	return profile
}

func (c *cli) profileSetCmd() *cobra.Command {
	var name, avatar, role, pin string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the profile name, avatar or role",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				user, err := a.Profiles.Get()
				if err != nil {
					return err
				}
				if flags.Changed("name") || flags.Changed("avatar") {
					if flags.Changed("name") {
						user.Name = name
					}
					if flags.Changed("avatar") {
						user.Avatar = avatar
					}
					if user, err = a.Profiles.Update(user.Name, user.Avatar); err != nil {
						return err
					}
				}
				if flags.Changed("role") {
					if user, err = a.Profiles.SwitchRole(models.Role(strings.ToUpper(role)), pin); err != nil {
						return err
					}
				}
				return c.printUser(cmd, user)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&avatar, "avatar", "", "avatar URL")
	cmd.Flags().StringVar(&role, "role", "", "role: DIRECTOR, MANAGER, DESIGNER or PRINTER")
	cmd.Flags().StringVar(&pin, "pin", "", "director PIN, when a role switch requires one")
	return cmd
}

func (c *cli) printUser(cmd *cobra.Command, user models.User) error {
	out := cmd.OutOrStdout()
	if c.jsonOutput() {
		return printJSON(out, user)
	}
	tw := newTable(out)
	tw.AppendRows([]table.Row{
		{"Name", user.Name},
		{"Role", user.Role.Label()},
		{"ID", user.ID},
	})
	tw.Render()
	return nil
}
