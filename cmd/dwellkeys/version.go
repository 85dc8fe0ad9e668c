package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/dwellkeys"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dwellkeys",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dwellkeys version %s\n", strings.TrimSpace(dwellkeys.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
