package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "cropcast", version)

		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			fmt.Fprintf(out, "  platform: %s/%s %s\n", runtime.GOOS, runtime.GOARCH, runtime.Version())
			fmt.Fprintf(out, "  endpoint: %s\n", cfg.Endpoint)
			fmt.Fprintf(out, "  timeout:  %s\n", cfg.Timeout)
		}
	},
}

func init() {
	versionCmd.Flags().BoolP("verbose", "v", false, "Also print platform and resolved service settings")
}
