package main

import (
	"fmt"
	"os"
	"time"

	"github.com/wesleyorama2/logbench/internal/bench"
	"github.com/wesleyorama2/logbench/internal/metrics"
	"github.com/wesleyorama2/logbench/internal/report"
)

// Developer utility: renders the HTML template from synthetic rows so
// template changes can be reviewed without a twenty-minute sweep.
func main() {
	doc := createSampleDocument()

	outputPath := "sample-report.html"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	if err := report.GenerateHTML(doc, outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sample report generated: %s\n", outputPath)
}

func createSampleDocument() report.Document {
	us := func(n float64) time.Duration { return time.Duration(n * float64(time.Microsecond)) }

	return report.Document{
		GeneratedAt:    time.Now(),
		TotalMessages:  200000,
		WarmupMessages: 4096,
		Results: []report.Row{
			sampleRow("slog", false, bench.SinkNull, 1, us(0.21), us(0.48), us(1.9), 3100000),
			sampleRow("zap", false, bench.SinkNull, 1, us(0.14), us(0.31), us(1.2), 4800000),
			sampleRow("logrus", false, bench.SinkNull, 1, us(1.9), us(4.2), us(11.0), 480000),
			sampleRow("slog", true, bench.SinkNull, 4, us(0.9), us(14.0), us(92.0), 2400000),
			sampleRow("zap", true, bench.SinkNull, 4, us(0.7), us(9.5), us(61.0), 3500000),
			sampleRow("logrus", true, bench.SinkNull, 4, us(3.8), us(33.0), us(180.0), 390000),
			sampleRow("slog", true, bench.SinkFile, 16, us(1.4), us(26.0), us(210.0), 1100000),
			sampleRow("zap", true, bench.SinkFile, 16, us(1.1), us(19.0), us(150.0), 1600000),
			sampleRow("logrus", true, bench.SinkFile, 16, us(5.2), us(58.0), us(420.0), 260000),
		},
	}
}

func sampleRow(lib string, async bool, sink bench.SinkKind, producers int,
	p50, p99, p999 time.Duration, throughput float64) report.Row {

	const total = 200000

	return report.Row{
		Library: lib,
		Scenario: bench.Scenario{
			Async:         async,
			Sink:          sink,
			Producers:     producers,
			MessageBytes:  200,
			TotalMessages: total,
		},
		Summary: bench.Summary{
			P50:  p50,
			P99:  p99,
			P999: p999,
		},
		Throughput: throughput,
		Duration:   time.Duration(float64(total) / throughput * float64(time.Second)),
		Distribution: metrics.Snapshot{
			Min:    p50 * 6 / 10,
			Max:    p999 * 3,
			Mean:   p50 * 11 / 10,
			StdDev: p50 / 2,
			P10:    p50 * 8 / 10,
			P50:    p50,
			P90:    p99 * 7 / 10,
			P99:    p99,
			P999:   p999,
			Count:  total,
		},
	}
}
