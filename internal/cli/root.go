// Package cli implements the pgasync command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pgasync",
	Short: "Blocking dispatch adapter for pooled PostgreSQL access",
	Long: `pgasync runs blocking PostgreSQL work through a bounded dispatcher so
latency-sensitive callers never block on pool checkout or query execution.
The CLI exercises the same dispatch path the library exposes: connect, hand
the blocking closure to the dispatcher, await the future, and classify any
failure as a checkout error or a query error.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Database connection or checkout failed
  13 - Database operation failed`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
