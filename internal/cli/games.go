package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Catalog search commands",
	}

	cmd.AddCommand(newGamesTopCmd())
	cmd.AddCommand(newGamesSearchCmd())
	cmd.AddCommand(newGamesGetCmd())

	return cmd
}

func newGamesTopCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "List the catalog's most popular games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Game

			if err := client.Get(fmt.Sprintf("/api/v1/games?top=%d", limit), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of games")

	return cmd
}

func newGamesSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <name>",
		Short: "Search the catalog by game name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Game

			path := "/api/v1/games?name=" + url.QueryEscape(args[0])
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGamesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Look a game up by catalog id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Game

			path := "/api/v1/games?id=" + url.QueryEscape(args[0])
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
