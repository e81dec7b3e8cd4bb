// Package report persists benchmark results: the append-only latency
// CSV, the full JSON document, and a standalone HTML page.
package report

import (
	"time"

	"github.com/wesleyorama2/logbench/internal/bench"
	"github.com/wesleyorama2/logbench/internal/metrics"
)

// Row is one finished scenario ready for reporting.
type Row struct {
	Library      string           `json:"library"`
	Scenario     bench.Scenario   `json:"scenario"`
	Summary      bench.Summary    `json:"summary"`
	Throughput   float64          `json:"throughputPerSec"`
	Duration     time.Duration    `json:"measuredNanos"`
	Distribution metrics.Snapshot `json:"distribution"`
}

// NewRow builds a report row from an executed scenario, deriving the
// HDR distribution from the run's raw samples.
func NewRow(res bench.Result) Row {
	return Row{
		Library:      res.Library,
		Scenario:     res.Scenario,
		Summary:      res.Summary,
		Throughput:   res.Throughput,
		Duration:     res.Duration,
		Distribution: metrics.Summarize(res.Samples),
	}
}

// Document is the complete output of one sweep.
type Document struct {
	GeneratedAt    time.Time `json:"generatedAt"`
	TotalMessages  int       `json:"totalMessages"`
	WarmupMessages int       `json:"warmupMessages"`
	Results        []Row     `json:"results"`
}
