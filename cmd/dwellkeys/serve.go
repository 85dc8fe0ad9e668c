package main

import (
	"github.com/aretw0/dwellkeys/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP interaction surface",
	Long: `Serves the keyboard over HTTP. Front-ends forward pointer events to
/targets/{id}/enter|leave|down and follow /events (SSE) for dwell progress and
state. Prometheus metrics are served on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		quiet, _ := cmd.Flags().GetBool("quiet")
		return cli.RunServe(cli.ServeOptions{
			Options: globalOptions(cmd),
			Addr:    addr,
			Quiet:   quiet,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (overrides http.addr)")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
