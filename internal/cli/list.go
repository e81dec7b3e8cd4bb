package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/logbench/internal/adapter"
	"github.com/wesleyorama2/logbench/internal/config"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered libraries, sinks, and the default matrix",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		def := config.Default()

		fmt.Fprintln(out, "Libraries:")
		for _, name := range adapter.Names() {
			fmt.Fprintf(out, "  %s\n", name)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Sinks:")
		for _, s := range def.Sinks {
			fmt.Fprintf(out, "  %s\n", s)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Default matrix:")
		fmt.Fprintf(out, "  async:     %s\n", joinBools(def.Async))
		fmt.Fprintf(out, "  producers: %s\n", joinInts(def.Producers))
		fmt.Fprintf(out, "  sizes:     %s\n", joinInts(def.MessageSizes))
		fmt.Fprintf(out, "  scenarios: %d (%d messages each, %d warm-up)\n",
			def.ScenarioCount(), def.TotalMessages, def.WarmupMessages)
	},
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}

// joinBools renders async modes in the 0/1 form the CSV rows use.
func joinBools(bs []bool) string {
	parts := make([]string, len(bs))
	for i, b := range bs {
		if b {
			parts[i] = "1"
		} else {
			parts[i] = "0"
		}
	}
	return strings.Join(parts, " ")
}
