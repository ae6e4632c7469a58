package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGroupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Group management commands",
	}

	cmd.AddCommand(newGroupCreateCmd())
	cmd.AddCommand(newGroupListCmd())
	cmd.AddCommand(newGroupGetCmd())
	cmd.AddCommand(newGroupUpdateCmd())
	cmd.AddCommand(newGroupDeleteCmd())
	cmd.AddCommand(newGroupAddGameCmd())
	cmd.AddCommand(newGroupRemoveGameCmd())

	return cmd
}

func newGroupCreateCmd() *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": name, "description": description}
			var result GroupCreated

			if err := client.Post("/api/v1/groups", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Group name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Group description (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func newGroupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []GroupDetails

			if err := client.Get("/api/v1/groups", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGroupGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a group's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GroupDetails

			if err := client.Get("/api/v1/groups/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGroupUpdateCmd() *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename or redescribe a group you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" && description == "" {
				return fmt.Errorf("--name or --description is required")
			}

			req := map[string]string{}
			if name != "" {
				req["name"] = name
			}
			if description != "" {
				req["description"] = description
			}

			if err := client.Patch("/api/v1/groups/"+args[0], req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Group updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New group name")
	cmd.Flags().StringVar(&description, "description", "", "New group description")

	return cmd
}

func newGroupDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a group you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/groups/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Group deleted")
			return nil
		},
	}
}

func newGroupAddGameCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add-game <id>",
		Short: "Add a catalog game to a group by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": name}
			var result GameAdded

			if err := client.Post("/api/v1/groups/"+args[0]+"/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Game added: %s", result.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Game name to search in the catalog (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newGroupRemoveGameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-game <id> <game-id>",
		Short: "Remove a game from a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/groups/" + args[0] + "/games/" + args[1]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game removed")
			return nil
		},
	}
}
