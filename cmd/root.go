package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/tgift/internal/model"
)

var rootCmd = &cobra.Command{
	Use:   "tgift",
	Short: "Telegram gift alerts in your terminal",
	Long: `tgift polls the gift alert backend, keeps the newest alerts on disk
and shows them in a terminal UI together with the backend's liveness.

Run without a subcommand to start the UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the config file (default ~/.config/tgift/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides log.level)")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(resetCmd)
}

func resolveConfigPath(cmd *cobra.Command) string {
	if cmd.Flags().Changed("config") {
		p, _ := cmd.Flags().GetString("config")
		return p
	}
	if v := os.Getenv("TGIFT_CONFIG"); v != "" {
		return v
	}
	return model.DefaultConfigPath()
}

func resolveLogLevel(cmd *cobra.Command, cfg *model.AppConfig) string {
	if cmd.Flags().Changed("log-level") {
		lvl, _ := cmd.Flags().GetString("log-level")
		return lvl
	}
	return cfg.Log.Level
}
