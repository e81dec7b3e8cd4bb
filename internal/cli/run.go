package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/logbench/internal/config"
	"github.com/wesleyorama2/logbench/internal/output"
	"github.com/wesleyorama2/logbench/internal/report"
	"github.com/wesleyorama2/logbench/internal/sweep"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark sweep",
	Long: `Execute the scenario matrix and persist results.

Configuration layers, later overriding earlier: built-in defaults, the
--config file, LOGBENCH_* environment variables, then flags.

Examples:
  logbench run
  logbench run --libs zap,slog --producers 1,8 --total 500000
  logbench run --config bench.yaml --html report.html --timeout 20m`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSweep(cmd)
	},
}

// runSweep builds the effective configuration, arms the watchdog, and
// drives the sweep engine.
func runSweep(cmd *cobra.Command) error {
	cfg, err := buildRunConfig(cmd)
	if err != nil {
		return err
	}

	console := newConsole(cmd)

	watchdog := sweep.NewWatchdog(cfg.Timeout.GetDuration(0))
	watchdog.Start()
	defer watchdog.Stop()

	engine, err := sweep.NewEngine(cfg, console)
	if err != nil {
		return err
	}

	result, err := engine.Run(cmd.Context())
	if err != nil {
		return err
	}
	watchdog.Stop()

	if err := writeReports(cfg, console, result); err != nil {
		return err
	}

	console.PrintResultsTable(result.Rows)
	console.PrintSummary(len(result.Rows), result.Duration)
	return nil
}

// buildRunConfig layers defaults, config file, environment, and flags.
// Flags apply only when explicitly set, so a config file value survives
// unless the user overrides it on the command line.
func buildRunConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	var cfg *config.Config
	if configFile, _ := flags.GetString("config"); configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if flags.Changed("libs") {
		cfg.Libraries, _ = flags.GetStringSlice("libs")
	}
	if flags.Changed("async-modes") {
		cfg.Async, _ = flags.GetBoolSlice("async-modes")
	}
	if flags.Changed("sinks") {
		cfg.Sinks, _ = flags.GetStringSlice("sinks")
	}
	if flags.Changed("producers") {
		cfg.Producers, _ = flags.GetIntSlice("producers")
	}
	if flags.Changed("sizes") {
		cfg.MessageSizes, _ = flags.GetIntSlice("sizes")
	}
	if flags.Changed("total") {
		cfg.TotalMessages, _ = flags.GetInt("total")
	}
	if flags.Changed("warmup") {
		cfg.WarmupMessages, _ = flags.GetInt("warmup")
	}
	if flags.Changed("timeout") {
		d, _ := flags.GetDuration("timeout")
		cfg.Timeout = config.Duration(d)
	}
	if flags.Changed("out") {
		cfg.OutputDir, _ = flags.GetString("out")
	}
	if flags.Changed("csv") {
		cfg.CSVFile, _ = flags.GetString("csv")
	}
	if flags.Changed("json") {
		cfg.JSONFile, _ = flags.GetString("json")
	}
	if flags.Changed("html") {
		cfg.HTMLFile, _ = flags.GetString("html")
	}

	return cfg, nil
}

// newConsole creates the console from the root's persistent flags.
func newConsole(cmd *cobra.Command) *output.Console {
	quiet, _ := cmd.Flags().GetBool("quiet")
	verbose, _ := cmd.Flags().GetBool("verbose")
	noColor, _ := cmd.Flags().GetBool("no-color")

	return output.NewConsole(output.Config{
		Writer:  cmd.OutOrStdout(),
		Quiet:   quiet,
		Verbose: verbose,
		NoColor: noColor,
	})
}

// writeReports persists the optional JSON and HTML reports and echoes
// every artifact location. The CSV was already written row by row
// during the sweep.
func writeReports(cfg *config.Config, console *output.Console, result *sweep.Result) error {
	console.PathWritten("csv", cfg.CSVPath())

	if cfg.JSONPath() == "" && cfg.HTMLPath() == "" {
		return nil
	}

	doc := report.Document{
		GeneratedAt:    time.Now(),
		TotalMessages:  cfg.TotalMessages,
		WarmupMessages: cfg.WarmupMessages,
		Results:        result.Rows,
	}

	if path := cfg.JSONPath(); path != "" {
		if err := report.WriteJSON(doc, path); err != nil {
			return fmt.Errorf("write JSON report: %w", err)
		}
		console.PathWritten("json", path)
	}

	if path := cfg.HTMLPath(); path != "" {
		if err := report.GenerateHTML(doc, path); err != nil {
			return fmt.Errorf("write HTML report: %w", err)
		}
		console.PathWritten("html", path)
	}

	return nil
}

// registerRunFlags declares the run command's flag surface. Defaults
// mirror config.Default() so help output shows the real matrix, but
// only flags the user actually set override the layered configuration.
func registerRunFlags(cmd *cobra.Command) {
	def := config.Default()

	cmd.Flags().StringP("config", "c", "", "Configuration file (YAML)")
	cmd.Flags().StringSlice("libs", def.Libraries, "Libraries to benchmark")
	cmd.Flags().BoolSlice("async-modes", def.Async, "Async modes to sweep")
	cmd.Flags().StringSlice("sinks", def.Sinks, "Sinks to sweep (null, file)")
	cmd.Flags().IntSlice("producers", def.Producers, "Producer goroutine counts")
	cmd.Flags().IntSlice("sizes", def.MessageSizes, "Message payload sizes in bytes")
	cmd.Flags().Int("total", def.TotalMessages, "Messages per measured run")
	cmd.Flags().Int("warmup", def.WarmupMessages, "Warm-up messages per scenario")
	cmd.Flags().DurationP("timeout", "t", def.Timeout.GetDuration(0), "Whole-sweep deadline (0 disables the watchdog)")
	cmd.Flags().String("out", def.OutputDir, "Output directory")
	cmd.Flags().String("csv", def.CSVFile, "Latency CSV file name")
	cmd.Flags().String("json", "", "JSON results file name (empty disables)")
	cmd.Flags().String("html", "", "HTML report file name (empty disables)")
}

func init() {
	registerRunFlags(runCmd)
}
