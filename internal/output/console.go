// Package output provides console output for benchmark runs.
package output

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/wesleyorama2/logbench/internal/bench"
	"github.com/wesleyorama2/logbench/internal/metrics"
	"github.com/wesleyorama2/logbench/internal/report"
)

// logPrefix opens lifecycle lines so sweep logs stay greppable next to
// the libraries' own output.
const logPrefix = "[logbench]"

const bannerWidth = 56

// Console renders benchmark progress and results to a terminal.
type Console struct {
	writer  io.Writer
	scheme  *ColorScheme
	isTTY   bool
	quiet   bool
	verbose bool

	mu sync.Mutex
}

// Config contains configuration for Console.
type Config struct {
	Writer      io.Writer
	Quiet       bool
	Verbose     bool
	NoColor     bool
	ForceColors bool
	ForceTTY    bool
}

// NewConsole creates a new console output handler.
func NewConsole(config Config) *Console {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}

	isTTY := config.ForceTTY || isTerminal(config.Writer)
	useColors := config.ForceColors || (isTTY && supportsColors())
	if config.NoColor {
		useColors = false
	}

	scheme := DefaultColorScheme()
	if !useColors {
		scheme = NoColorScheme()
	}

	return &Console{
		writer:  config.Writer,
		scheme:  scheme,
		isTTY:   isTTY,
		quiet:   config.Quiet,
		verbose: config.Verbose,
	}
}

// isTerminal checks if the writer is a terminal.
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		if f == os.Stdout || f == os.Stderr {
			return checkIsTerminal(f)
		}
	}
	return false
}

// supportsColors checks if the terminal supports colors.
func supportsColors() bool {
	// Check for explicit color disable
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Check for explicit color enable
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	if runtime.GOOS == "windows" {
		return true
	}

	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		return false
	}
	return true
}

// IsTTY returns whether the output is a terminal.
func (c *Console) IsTTY() bool {
	return c.isTTY
}

// PrintHeader prints the sweep banner.
func (c *Console) PrintHeader(scenarios, totalMessages, warmupMessages int) {
	if c.quiet {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	line := strings.Repeat("━", bannerWidth)
	c.writeln(c.scheme.Dim.Sprint(line))
	c.writeln(fmt.Sprintf("%s  %s messages per scenario, %s warm-up",
		c.scheme.Highlight.Sprintf("logbench: %d scenarios", scenarios),
		formatNumber(int64(totalMessages)),
		formatNumber(int64(warmupMessages))))
	c.writeln(c.scheme.Dim.Sprint(line))
}

// ScenarioStart announces one scenario before it runs.
func (c *Console) ScenarioStart(lib string, sc bench.Scenario) {
	if c.quiet {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.writeln(fmt.Sprintf("%s Scenario start lib=%s async=%d sink=%s producers=%d bytes=%d total=%d",
		c.scheme.Dim.Sprint(logPrefix),
		c.scheme.Library.Sprint(lib),
		sc.AsyncBit(), sc.Sink, sc.Producers, sc.MessageBytes, sc.TotalMessages))
}

// PhaseChange traces executor phases in verbose mode.
func (c *Console) PhaseChange(phase bench.Phase, messages int) {
	if c.quiet || !c.verbose {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.writeln(c.scheme.Dim.Sprintf("  phase %s (%s messages)", phase, formatNumber(int64(messages))))
}

// PrintResult prints the one-line result for a finished scenario, plus
// the latency distribution in verbose mode.
func (c *Console) PrintResult(row report.Row) {
	if c.quiet {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.writeln(fmt.Sprintf("%s async=%d sink=%s producers=%d bytes=%d total=%d p50=%s p99=%s p999=%s throughput=%s msg/s",
		c.scheme.Library.Sprint(row.Library),
		row.Scenario.AsyncBit(),
		row.Scenario.Sink,
		row.Scenario.Producers,
		row.Scenario.MessageBytes,
		row.Scenario.TotalMessages,
		c.scheme.Latency.Sprintf("%dns", row.Summary.P50.Nanoseconds()),
		c.scheme.Latency.Sprintf("%dns", row.Summary.P99.Nanoseconds()),
		c.scheme.Latency.Sprintf("%dns", row.Summary.P999.Nanoseconds()),
		c.scheme.Throughput.Sprintf("%.2f", row.Throughput)))

	if c.verbose {
		c.printDistribution(row.Distribution)
	}
}

func (c *Console) printDistribution(s metrics.Snapshot) {
	c.writeln(c.scheme.Dim.Sprint("  distribution:"))

	rows := []struct {
		label string
		value time.Duration
	}{
		{"min", s.Min},
		{"p10", s.P10},
		{"p50", s.P50},
		{"p90", s.P90},
		{"p99", s.P99},
		{"p99.9", s.P999},
		{"max", s.Max},
		{"mean", s.Mean},
		{"stddev", s.StdDev},
	}
	for _, r := range rows {
		c.writeln(fmt.Sprintf("    %-7s %s", r.label, formatDurationShort(r.value)))
	}
}

// ScenarioFailed reports a failed scenario. Failures print even in
// quiet mode.
func (c *Console) ScenarioFailed(lib string, sc bench.Scenario, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writeln(fmt.Sprintf("%s %s %s: %v",
		c.scheme.Error.Sprint("✗"),
		c.scheme.Library.Sprint(lib),
		sc.String(), err))
}

// PathWritten reports an output artifact location.
func (c *Console) PathWritten(label, path string) {
	if c.quiet {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.writeln(fmt.Sprintf("  %-5s %s", label+":", c.scheme.Param.Sprint(path)))
}

// PrintResultsTable renders all completed scenarios as a table. The
// best-throughput row of each sink gets a marker, since comparing
// backends at the same sink is the point of the sweep.
func (c *Console) PrintResultsTable(rows []report.Row) {
	if c.quiet || len(rows) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	best := make(map[bench.SinkKind]float64)
	for _, row := range rows {
		if row.Throughput > best[row.Scenario.Sink] {
			best[row.Scenario.Sink] = row.Throughput
		}
	}

	c.writeln("")
	c.writeln(c.scheme.Highlight.Sprint("Results"))
	c.writeln(c.scheme.Dim.Sprintf("  %-8s %-5s %-5s %9s %7s %12s %12s %16s",
		"lib", "async", "sink", "producers", "bytes", "p50", "p99", "throughput"))

	for _, row := range rows {
		marker := "  "
		if row.Throughput > 0 && row.Throughput == best[row.Scenario.Sink] {
			marker = c.scheme.Highlight.Sprint("▸ ")
		}
		c.writeln(fmt.Sprintf("%s%-8s %-5d %-5s %9d %7d %12s %12s %12s msg/s",
			marker,
			row.Library,
			row.Scenario.AsyncBit(),
			row.Scenario.Sink,
			row.Scenario.Producers,
			row.Scenario.MessageBytes,
			formatDurationShort(row.Summary.P50),
			formatDurationShort(row.Summary.P99),
			formatNumber(int64(row.Throughput))))
	}
}

// PrintSummary prints the final sweep summary.
func (c *Console) PrintSummary(completed int, elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.quiet {
		c.writeln(fmt.Sprintf("%s %d scenarios in %s",
			c.scheme.Success.Sprint("✓"), completed, formatDuration(elapsed)))
		return
	}

	line := strings.Repeat("━", bannerWidth)
	c.writeln("")
	c.writeln(c.scheme.Dim.Sprint(line))
	c.writeln(fmt.Sprintf("%s %d scenarios in %s",
		c.scheme.Success.Sprint("Completed"), completed, formatDuration(elapsed)))
	c.writeln(c.scheme.Dim.Sprint(line))
}

// writeln writes to the output with a newline.
func (c *Console) writeln(s string) {
	fmt.Fprintln(c.writer, s)
}

// Helper functions

// formatDuration formats a duration in a human-readable format.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %02ds", m, s)
}

// formatDurationShort formats a latency in a short format.
func formatDurationShort(d time.Duration) string {
	if d < time.Microsecond {
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// formatNumber formats a number with thousands separators.
func formatNumber(n int64) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	var result strings.Builder
	offset := len(str) % 3
	if offset > 0 {
		result.WriteString(str[:offset])
	}
	for i := offset; i < len(str); i += 3 {
		if result.Len() > 0 {
			result.WriteString(",")
		}
		result.WriteString(str[i : i+3])
	}
	return result.String()
}
