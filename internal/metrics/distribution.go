// Package metrics derives latency distributions for reports from the raw
// samples a benchmark run captures.
//
// The measurement core keeps raw timestamps only and computes its exact
// nearest-rank percentiles itself; anything that wants a richer view of a
// run (the verbose console table, the JSON and HTML reports) builds a
// Distribution from the run's samples afterwards and reads a Snapshot.
package metrics

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Histogram bounds. Samples are recorded in nanoseconds; the floor is a
// single nanosecond because a synchronous null sink completes well below
// a microsecond.
const (
	histogramMin     = int64(1)
	histogramMax     = int64(time.Minute)
	histogramSigFigs = 3
)

// Distribution accumulates latency samples into an HDR histogram.
//
// # Thread Safety
//
// Distribution is not safe for concurrent use. It is built after a run
// completes, on the goroutine assembling the report.
type Distribution struct {
	hist *hdrhistogram.Histogram
}

// NewDistribution returns an empty distribution covering 1ns to 1min at
// three significant figures.
func NewDistribution() *Distribution {
	return &Distribution{
		hist: hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs),
	}
}

// Record adds one latency sample, clamped to the trackable range.
func (d *Distribution) Record(sample time.Duration) {
	v := sample.Nanoseconds()
	if v < histogramMin {
		v = histogramMin
	}
	if v > histogramMax {
		v = histogramMax
	}
	d.hist.RecordValue(v)
}

// RecordAll adds every sample in the slice.
func (d *Distribution) RecordAll(samples []time.Duration) {
	for _, s := range samples {
		d.Record(s)
	}
}

// Count returns the number of recorded samples.
func (d *Distribution) Count() int64 {
	return d.hist.TotalCount()
}

// Reset empties the distribution for reuse.
func (d *Distribution) Reset() {
	d.hist.Reset()
}

// Snapshot is a point-in-time summary of a distribution. All values are
// histogram-resolution approximations in nanoseconds; the benchmark's
// headline p50/p99/p99.9 figures come from an exact sort instead.
type Snapshot struct {
	Min    time.Duration `json:"min"`
	Max    time.Duration `json:"max"`
	Mean   time.Duration `json:"mean"`
	StdDev time.Duration `json:"stdDev"`
	P10    time.Duration `json:"p10"`
	P50    time.Duration `json:"p50"`
	P90    time.Duration `json:"p90"`
	P99    time.Duration `json:"p99"`
	P999   time.Duration `json:"p999"`
	Count  int64         `json:"count"`
}

// Snapshot summarizes the samples recorded so far. An empty distribution
// yields a zero snapshot.
func (d *Distribution) Snapshot() Snapshot {
	if d.hist.TotalCount() == 0 {
		return Snapshot{}
	}
	return Snapshot{
		Min:    time.Duration(d.hist.Min()),
		Max:    time.Duration(d.hist.Max()),
		Mean:   time.Duration(d.hist.Mean()),
		StdDev: time.Duration(d.hist.StdDev()),
		P10:    time.Duration(d.hist.ValueAtQuantile(10)),
		P50:    time.Duration(d.hist.ValueAtQuantile(50)),
		P90:    time.Duration(d.hist.ValueAtQuantile(90)),
		P99:    time.Duration(d.hist.ValueAtQuantile(99)),
		P999:   time.Duration(d.hist.ValueAtQuantile(99.9)),
		Count:  d.hist.TotalCount(),
	}
}

// Summarize builds a one-shot snapshot from a sample slice.
func Summarize(samples []time.Duration) Snapshot {
	d := NewDistribution()
	d.RecordAll(samples)
	return d.Snapshot()
}
