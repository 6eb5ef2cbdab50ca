// bugtap CLI - demo server for the bugtap debugging middleware.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build-time variables set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	root := &cobra.Command{
		Use:          "bugtap",
		Short:        "HTTP request debugging middleware",
		Long:         "bugtap instruments an HTTP pipeline, capturing timing and payload data as X-Bug-* headers and structured log records.",
		SilenceUsage: true,
	}
	root.AddCommand(newDemoCmd(), newVersionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bugtap %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		},
	}
}
