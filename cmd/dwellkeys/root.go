package main

import (
	"fmt"
	"os"

	"github.com/aretw0/dwellkeys/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dwellkeys",
	Short: "dwellkeys is a dwell-activated on-screen keyboard with word prediction",
	Long: `dwellkeys turns sustained pointer or gaze presence into key presses and
completes words from a frequency-ranked vocabulary.

Configuration is read from --config (YAML) and DWELLKEYS_* environment variables.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "dwellkeys.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

func globalOptions(cmd *cobra.Command) cli.Options {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.Options{ConfigPath: path, Debug: debug}
}
