package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "jokerctl",
		Short: "CLI tool for the joker party API",
		Long: `jokerctl is a CLI tool for interacting with the joker party JSON API.

It supports creating and joining games, running rounds, and messaging.
A stable device id is generated on first use so rejoining a game from
the same machine returns your existing player.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load or generate the device id if not provided via flag/env
			if err := cfg.LoadDeviceID(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: JOKERPARTY_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.DeviceID, "device", cfg.DeviceID, "Device id (env: JOKERPARTY_DEVICE)")
	rootCmd.PersistentFlags().StringVar(&cfg.DeviceFile, "device-file", cfg.DeviceFile, "Device id file path (env: JOKERPARTY_DEVICE_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newMsgCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
