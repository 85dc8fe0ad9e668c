package main

import (
	"fmt"
	"os"

	"github.com/aretw0/dwellkeys/internal/cli"
	"github.com/spf13/cobra"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Manage vocabulary files",
}

var vocabValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a vocabulary file and report malformed entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")
		report, err := cli.RunValidate(cmd.Context(), os.Stdout, args[0])
		if err != nil {
			return err
		}
		if strict && len(report.Skipped) > 0 {
			return fmt.Errorf("%d malformed entries", len(report.Skipped))
		}
		return nil
	},
}

var vocabPushCmd = &cobra.Command{
	Use:   "push <file>",
	Short: "Replace the Redis vocabulary with the contents of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunPush(cmd.Context(), os.Stdout, cli.PushOptions{
			Options: globalOptions(cmd),
			Path:    args[0],
		})
	},
}

func init() {
	rootCmd.AddCommand(vocabCmd)
	vocabCmd.AddCommand(vocabValidateCmd, vocabPushCmd)
	vocabValidateCmd.Flags().Bool("strict", false, "Fail when any entry is malformed")
}
