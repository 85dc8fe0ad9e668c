package main

import (
	"os"
	"strings"

	"github.com/aretw0/dwellkeys/internal/cli"
	"github.com/spf13/cobra"
)

var predictCmd = &cobra.Command{
	Use:   "predict <prefix>",
	Short: "Print word completions for a prefix",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		jsonOut, _ := cmd.Flags().GetBool("json")
		return cli.RunPredict(cmd.Context(), os.Stdout, cli.PredictOptions{
			Options: globalOptions(cmd),
			Prefix:  strings.Join(args, " "),
			Limit:   limit,
			JSON:    jsonOut,
		})
	},
}

func init() {
	rootCmd.AddCommand(predictCmd)
	predictCmd.Flags().IntP("limit", "n", 0, "Maximum number of suggestions (default: suggestion_limit)")
	predictCmd.Flags().Bool("json", false, "Output JSON")
}
