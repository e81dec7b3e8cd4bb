package bench

import (
	"errors"
	"testing"
)

func TestExecuteWarmupIsolation(t *testing.T) {
	adapter := newCountingAdapter()
	exec := NewExecutor(adapter)
	scenario := Scenario{Sink: SinkNull, Producers: 4, MessageBytes: 40, TotalMessages: 1000}

	result, err := exec.Execute(scenario, 100)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := len(result.Samples); got != 1000 {
		t.Errorf("measured samples = %d, want 1000 regardless of warm-up", got)
	}
	if got := adapter.logs.Load(); got != 1100 {
		t.Errorf("total logs = %d, want 1100 (100 warm-up + 1000 measured)", got)
	}
	if result.Library != "counting" {
		t.Errorf("Library = %q, want %q", result.Library, "counting")
	}
}

func TestExecutePhaseSequence(t *testing.T) {
	adapter := newCountingAdapter()
	exec := NewExecutor(adapter)

	var phases []Phase
	var counts []int
	exec.OnPhase = func(phase Phase, messages int) {
		phases = append(phases, phase)
		counts = append(counts, messages)
	}

	scenario := Scenario{Sink: SinkNull, Producers: 2, TotalMessages: 200}
	if _, err := exec.Execute(scenario, 50); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	wantPhases := []Phase{PhaseWarmupStart, PhaseWarmupDone, PhaseMeasureStart, PhaseMeasureDone}
	wantCounts := []int{50, 50, 200, 200}
	if len(phases) != len(wantPhases) {
		t.Fatalf("phases = %v, want %v", phases, wantPhases)
	}
	for i := range wantPhases {
		if phases[i] != wantPhases[i] {
			t.Errorf("phase[%d] = %s, want %s", i, phases[i], wantPhases[i])
		}
		if counts[i] != wantCounts[i] {
			t.Errorf("count[%d] = %d, want %d", i, counts[i], wantCounts[i])
		}
	}
}

func TestExecuteThroughput(t *testing.T) {
	adapter := newCountingAdapter()
	exec := NewExecutor(adapter)
	scenario := Scenario{Sink: SinkNull, Producers: 2, TotalMessages: 500}

	result, err := exec.Execute(scenario, 0)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Duration <= 0 {
		t.Errorf("Duration = %v, want > 0", result.Duration)
	}
	if result.Throughput <= 0 {
		t.Errorf("Throughput = %v, want > 0", result.Throughput)
	}
	if result.Summary.P50 > result.Summary.P99 || result.Summary.P99 > result.Summary.P999 {
		t.Errorf("percentiles not monotonic: %+v", result.Summary)
	}
}

func TestExecuteZeroProducersZeroMessages(t *testing.T) {
	adapter := newCountingAdapter()
	exec := NewExecutor(adapter)
	scenario := Scenario{Sink: SinkNull, Producers: 0, TotalMessages: 0}

	result, err := exec.Execute(scenario, 0)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Duration != 0 {
		t.Errorf("Duration = %v, want 0", result.Duration)
	}
	if result.Throughput != 0 {
		t.Errorf("Throughput = %v, want 0", result.Throughput)
	}
	if adapter.flushes.Load() == 0 {
		t.Error("adapter never flushed")
	}
}

func TestExecuteDetectsLostCompletions(t *testing.T) {
	adapter := &droppingAdapter{}
	exec := NewExecutor(adapter)
	scenario := Scenario{Sink: SinkNull, Producers: 2, TotalMessages: 100}

	_, err := exec.Execute(scenario, 0)
	if !errors.Is(err, ErrIncompleteCapture) {
		t.Errorf("Execute() error = %v, want ErrIncompleteCapture", err)
	}
}

type failingAdapter struct {
	countingAdapter
	prepareErr error
}

func (a *failingAdapter) Prepare(_ Scenario, _ *Recorder) error {
	return a.prepareErr
}

func TestExecutePrepareError(t *testing.T) {
	wantErr := errors.New("sink unavailable")
	adapter := &failingAdapter{prepareErr: wantErr}
	exec := NewExecutor(adapter)

	_, err := exec.Execute(Scenario{Sink: SinkNull, Producers: 1, TotalMessages: 10}, 0)
	if !errors.Is(err, wantErr) {
		t.Errorf("Execute() error = %v, want wrapped %v", err, wantErr)
	}
}
