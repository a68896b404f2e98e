package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Matchmaking commands",
	}

	cmd.AddCommand(newMatchFindCmd())
	cmd.AddCommand(newMatchStatusCmd())
	cmd.AddCommand(newMatchCancelCmd())

	return cmd
}

func newMatchFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find",
		Short: "Find an opponent or join the waiting queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"player_id":   cfg.PlayerID,
				"player_name": cfg.PlayerName,
			}

			var result MatchmakingStatus

			if err := client.Post("/api/v1/matchmaking", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check matchmaking status",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MatchmakingStatus

			path := fmt.Sprintf("/api/v1/matchmaking/status?player_id=%s", cfg.PlayerID)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Leave the waiting queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/matchmaking?player_id=%s", cfg.PlayerID)
			if err := client.Delete(path); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Left the waiting queue")
			return nil
		},
	}
}
