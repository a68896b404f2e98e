package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameHostCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGamePlayCmd())
	cmd.AddCommand(newGameStatusCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a private game and take a seat",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"player_id":   cfg.PlayerID,
				"player_name": cfg.PlayerName,
			}

			var result GameStatus

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameHostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "host",
		Short: "Host a game for two other players",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"host_id":   cfg.PlayerID,
				"host_name": cfg.PlayerName,
			}

			var result GameStatus

			if err := client.Post("/api/v1/games/host", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <code>",
		Short: "Join a game by its code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"code":        args[0],
				"player_id":   cfg.PlayerID,
				"player_name": cfg.PlayerName,
			}

			var result GameStatus

			if err := client.Post("/api/v1/games/join", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGamePlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <game-id> <rock|paper|scissors>",
		Short: "Submit a gesture",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"player_id": cfg.PlayerID,
				"gesture":   args[1],
			}

			var result SubmitResult

			path := fmt.Sprintf("/api/v1/games/%s/gesture", args[0])
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <game-id>",
		Short: "Poll a game's status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameStatus

			path := fmt.Sprintf("/api/v1/games/%s/status?player_id=%s", args[0], cfg.PlayerID)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
