package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newMsgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "msg",
		Short: "Message commands",
	}

	cmd.AddCommand(newMsgPostCmd())
	cmd.AddCommand(newMsgListCmd())

	return cmd
}

func newMsgPostCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "post <code> <content...>",
		Short: "Post a message to a game",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]
			content := strings.Join(args[1:], " ")

			req := map[string]string{
				"player_id": from,
				"content":   content,
			}
			if to != "" {
				req["to_player_id"] = to
			}

			var result Message

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/messages", code), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Sending player id (required)")
	cmd.Flags().StringVar(&to, "to", "", "Recipient player id (makes the message private)")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

func newMsgListCmd() *cobra.Command {
	var viewer string

	cmd := &cobra.Command{
		Use:   "list <code>",
		Short: "List messages visible to a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]

			var result []Message

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/messages?viewer=%s", code, viewer), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&viewer, "viewer", "", "Viewing player id (required)")
	_ = cmd.MarkFlagRequired("viewer")

	return cmd
}
