package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game management commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGamePlayersCmd())
	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameNextRoundCmd())
	cmd.AddCommand(newGameStopCmd())
	cmd.AddCommand(newGameJokerTargetCmd())
	cmd.AddCommand(newGameKickCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{}
			if password != "" {
				req["password"] = password
			}

			var result Game

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Game password (default: open game)")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Get game details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			var result Game

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s", code), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Game

			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	var name, password string

	cmd := &cobra.Command{
		Use:   "join <code>",
		Short: "Join a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			if name == "" {
				return fmt.Errorf("--name is required")
			}

			if password != "" {
				verifyReq := map[string]string{"password": password}
				if err := client.Post(fmt.Sprintf("/api/v1/games/%s/verify", code), verifyReq, nil); err != nil {
					return err
				}
			}

			req := map[string]string{
				"name":      name,
				"device_id": cfg.DeviceID,
			}
			var result Player

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/join", code), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	cmd.Flags().StringVar(&password, "password", "", "Game password")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newGamePlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players <code>",
		Short: "List players in a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			var result []Player

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/players", code), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameStartCmd() *cobra.Command {
	var jokers int

	cmd := &cobra.Command{
		Use:   "start <code>",
		Short: "Start a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			req := map[string]any{}
			if jokers > 0 {
				req["joker_target"] = jokers
			}

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/start", code), req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Game %s started", code))
			return nil
		},
	}

	cmd.Flags().IntVar(&jokers, "jokers", 0, "Number of jokers to deal (default: game setting)")

	return cmd
}

func newGameNextRoundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next-round <code>",
		Short: "Redeal roles for a new round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/next-round", code), nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("New round started in game %s", code))
			return nil
		},
	}
}

func newGameStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop <code>",
		Short: "Stop a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/stop", code), nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Game %s stopped", code))
			return nil
		},
	}
}

func newGameJokerTargetCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "joker-target <code>",
		Short: "Set how many jokers the next start deals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			req := map[string]int{"count": count}
			var result Game

			if err := client.Put(fmt.Sprintf("/api/v1/games/%s/joker-target", code), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "Number of jokers (required)")
	_ = cmd.MarkFlagRequired("count")

	return cmd
}

func newGameKickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kick <code> <player-id>",
		Short: "Remove a player from a game",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, playerID := args[0], args[1]

			if err := client.Delete(fmt.Sprintf("/api/v1/games/%s/players/%s", code, playerID)); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Kicked %s from game %s", playerID, code))
			return nil
		},
	}
}
