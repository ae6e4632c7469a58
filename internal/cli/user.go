package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User management commands",
	}

	cmd.AddCommand(newUserRegisterCmd())
	cmd.AddCommand(newUserListCmd())
	cmd.AddCommand(newUserGroupsCmd())
	cmd.AddCommand(newUserAttachCmd())
	cmd.AddCommand(newUserDetachCmd())
	cmd.AddCommand(newUserDeregisterCmd())

	return cmd
}

func newUserRegisterCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user and save the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"username": name}
			var result RegisterResult

			if err := client.Post("/api/v1/users", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Username (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newUserListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered users",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result UserList

			if err := client.Get("/api/v1/users", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newUserGroupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List the groups you reference",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Group

			if err := client.Get("/api/v1/users/me/groups", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newUserAttachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attach <group-id>",
		Short: "Add an existing group to your reference list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("group id must be an integer")
			}

			req := map[string]int64{"id": id}
			if err := client.Post("/api/v1/users/me/groups", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Group attached")
			return nil
		},
	}
}

func newUserDetachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detach <group-id>",
		Short: "Remove a group from your reference list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/users/me/groups/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Group detached")
			return nil
		},
	}
}

func newUserDeregisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deregister",
		Short: "Delete your account, tokens and owned groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/users/me"); err != nil {
				return err
			}

			if err := cfg.ClearToken(); err != nil {
				return fmt.Errorf("failed to clear token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Account deleted")
			return nil
		},
	}
}
