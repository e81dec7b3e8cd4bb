package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "logbench",
	Short:   "Latency and throughput benchmark for Go logging libraries",
	Version: version,
	Long: `Logbench measures the hot-path cost of structured logging libraries
(slog, zap, logrus) under controlled concurrent load. It sweeps a
scenario matrix of async modes, sinks, producer counts, and message
sizes, and reports exact nearest-rank latency percentiles per cell.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print help
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). Errors are reported on stderr in the
// harness's own prefix form.
func Execute() error {
	err := RootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logbench: %v\n", err)
	}
	return err
}

func init() {
	RootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	RootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only print failures and the final summary")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print phase transitions and distribution tables")

	// Add subcommands to root command
	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(validateCmd)
}
