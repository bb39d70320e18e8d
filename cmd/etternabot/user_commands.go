package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"etternabot/internal/users"
)

func newUserCommand(ctx *commandContext) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage chat user registrations",
	}

	userCmd.AddCommand(newUserSetCommand(ctx))
	userCmd.AddCommand(newUserShowCommand(ctx))
	userCmd.AddCommand(newUserListCommand(ctx))
	userCmd.AddCommand(newUserRemoveCommand(ctx))

	return userCmd
}

func newUserSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <chat-user-id> <eo-username>",
		Short: "Register a chat user's EtternaOnline username",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			chatUserID, err := parseChatUserID(args[0])
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SetUsername(cmd.Context(), chatUserID, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %d as %s\n", chatUserID, args[1])
			return nil
		},
	}
}

func newUserShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <chat-user-id>",
		Short: "Show a chat user's registration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chatUserID, err := parseChatUserID(args[0])
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			username, err := store.Username(cmd.Context(), chatUserID)
			if errors.Is(err, users.ErrNotRegistered) {
				fmt.Fprintf(cmd.OutOrStdout(), "Chat user %d is not registered\n", chatUserID)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Chat user %d is registered as %s\n", chatUserID, username)
			return nil
		},
	}
}

func newUserListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all registrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			registrations, err := store.Registrations(cmd.Context())
			if err != nil {
				return err
			}
			if len(registrations) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No registrations")
				return nil
			}
			rows := make([][]string, 0, len(registrations))
			for _, reg := range registrations {
				rows = append(rows, []string{
					strconv.FormatInt(reg.ChatUserID, 10),
					reg.EOUsername,
					reg.UpdatedAt.Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Chat User", "EO Username", "Updated"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newUserRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <chat-user-id>",
		Short: "Remove a chat user's registration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chatUserID, err := parseChatUserID(args[0])
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.RemoveUsername(cmd.Context(), chatUserID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed registration for %d\n", chatUserID)
			return nil
		},
	}
}

func parseChatUserID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("chat user id must be numeric, got %q", value)
	}
	return id, nil
}
