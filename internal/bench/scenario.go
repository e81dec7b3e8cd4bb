// Package bench implements the measurement core of the logging benchmark:
// a pre-allocated latency recorder with cross-goroutine completion tokens,
// a barrier-synchronized multi-producer workload runner, and a scenario
// executor that sequences warm-up and measured passes into a result.
package bench

import (
	"fmt"
)

// SinkKind identifies the destination a logging backend writes to.
type SinkKind string

const (
	// SinkNull discards every message after signaling completion.
	SinkNull SinkKind = "null"

	// SinkFile appends every message to a per-library log file.
	SinkFile SinkKind = "file"
)

// ParseSinkKind converts a string into a SinkKind.
func ParseSinkKind(s string) (SinkKind, error) {
	switch SinkKind(s) {
	case SinkNull:
		return SinkNull, nil
	case SinkFile:
		return SinkFile, nil
	}
	return "", fmt.Errorf("unknown sink kind: %q", s)
}

// Scenario is one point in the benchmark configuration sweep.
//
// A Scenario is created once per sweep entry and is read-only for the
// duration of a run.
type Scenario struct {
	// Async routes messages through the adapter's queued consumer
	// instead of completing them on the producer goroutine.
	Async bool `json:"async" yaml:"async"`

	// Sink is the message destination (null or file).
	Sink SinkKind `json:"sink" yaml:"sink"`

	// Producers is the number of concurrent producer goroutines.
	Producers int `json:"producers" yaml:"producers"`

	// MessageBytes is the payload size of every logged message.
	MessageBytes int `json:"messageBytes" yaml:"messageBytes"`

	// TotalMessages is the message count of the measured run.
	TotalMessages int `json:"totalMessages" yaml:"totalMessages"`
}

// AsyncBit returns the async flag as 1 or 0, the form used by the CSV
// rows and console lines.
func (s Scenario) AsyncBit() int {
	if s.Async {
		return 1
	}
	return 0
}

// String renders the scenario parameters in the key=value form shared by
// console lines and error messages. The message total is omitted because
// warm-up and measured passes report different counts.
func (s Scenario) String() string {
	return fmt.Sprintf("async=%d sink=%s producers=%d bytes=%d",
		s.AsyncBit(), s.Sink, s.Producers, s.MessageBytes)
}
