package bench

import (
	"fmt"
	"time"
)

// Phase identifies a point in a scenario's execution, reported through
// the executor's phase callback.
type Phase string

const (
	PhaseWarmupStart  Phase = "warmup-start"
	PhaseWarmupDone   Phase = "warmup-done"
	PhaseMeasureStart Phase = "measure-start"
	PhaseMeasureDone  Phase = "measure-done"
)

// PhaseFunc observes phase transitions during Execute. messages is the
// message count of the phase that starts or just finished.
type PhaseFunc func(phase Phase, messages int)

// Result aggregates everything one scenario run produced.
type Result struct {
	// Library is the adapter's reported library name.
	Library string `json:"library"`

	// Scenario is the configuration that was run.
	Scenario Scenario `json:"scenario"`

	// Summary holds the nearest-rank latency percentiles.
	Summary Summary `json:"summary"`

	// Throughput is messages per second over the measured window, zero
	// when no positive duration was measured.
	Throughput float64 `json:"throughput"`

	// Duration is the measured wall-clock window, from barrier release
	// to after the final flush.
	Duration time.Duration `json:"duration"`

	// Samples are the completed latency samples, for report-side
	// distribution rendering. Dropped once reports are built.
	Samples []time.Duration `json:"-"`
}

// Executor sequences the two passes of one scenario: a warm-up run with
// neither recording nor duration measurement, then the measured run.
// It is a thin sequencer; its one hard responsibility is that warm-up
// state never leaks into the measured summary, which holds because
// warm-up traffic claims no recorder slots.
type Executor struct {
	adapter Adapter

	// OnPhase, when set, observes warm-up and measure transitions.
	// The core has no output dependency; callers map phases to console
	// lines.
	OnPhase PhaseFunc
}

// NewExecutor returns an Executor for the given adapter.
func NewExecutor(adapter Adapter) *Executor {
	return &Executor{adapter: adapter}
}

func (e *Executor) phase(p Phase, messages int) {
	if e.OnPhase != nil {
		e.OnPhase(p, messages)
	}
}

// Execute runs warm-up then the measured pass for one scenario and
// reduces the recorder into a Result.
//
// The recorder is sized to the scenario's message total and handed to
// the adapter before any traffic, so the sink can report completions.
// Throughput is computed only when the measured duration is strictly
// positive. A claim or completion deficit after the measured run is
// reported as an error wrapping ErrIncompleteCapture.
func (e *Executor) Execute(scenario Scenario, warmupMessages int) (Result, error) {
	rec := NewRecorder(scenario.TotalMessages)

	if err := e.adapter.Prepare(scenario, rec); err != nil {
		return Result{}, fmt.Errorf("prepare %s: %w", e.adapter.LibraryName(), err)
	}

	e.phase(PhaseWarmupStart, warmupMessages)
	if _, err := RunWorkload(e.adapter, rec, scenario, warmupMessages, false, false); err != nil {
		return Result{}, fmt.Errorf("warm-up: %w", err)
	}
	e.phase(PhaseWarmupDone, warmupMessages)

	e.phase(PhaseMeasureStart, scenario.TotalMessages)
	dur, err := RunWorkload(e.adapter, rec, scenario, scenario.TotalMessages, true, true)
	if err != nil {
		return Result{}, fmt.Errorf("measured run: %w", err)
	}
	e.phase(PhaseMeasureDone, scenario.TotalMessages)

	if got := rec.Recorded(); got != scenario.TotalMessages {
		return Result{}, fmt.Errorf("%w: recorded %d of %d samples",
			ErrIncompleteCapture, got, scenario.TotalMessages)
	}

	summary, err := rec.Finalize()
	if err != nil {
		return Result{}, err
	}

	throughput := 0.0
	if dur > 0 {
		throughput = float64(scenario.TotalMessages) / dur.Seconds()
	}

	return Result{
		Library:    e.adapter.LibraryName(),
		Scenario:   scenario,
		Summary:    summary,
		Throughput: throughput,
		Duration:   dur,
		Samples:    rec.Durations(),
	}, nil
}
