package bench

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

// countingAdapter completes every token synchronously and tracks traffic.
type countingAdapter struct {
	rec      *Recorder
	logs     atomic.Int64
	flushes  atomic.Int64
	mu       sync.Mutex
	payloads map[string]struct{}
}

func newCountingAdapter() *countingAdapter {
	return &countingAdapter{payloads: make(map[string]struct{})}
}

func (a *countingAdapter) LibraryName() string { return "counting" }

func (a *countingAdapter) Prepare(_ Scenario, rec *Recorder) error {
	a.rec = rec
	return nil
}

func (a *countingAdapter) Log(tok Token, message string) {
	a.logs.Add(1)
	a.mu.Lock()
	a.payloads[message] = struct{}{}
	a.mu.Unlock()
	if a.rec != nil {
		a.rec.Complete(tok)
	}
}

func (a *countingAdapter) Flush() error {
	a.flushes.Add(1)
	return nil
}

// droppingAdapter loses every completion, simulating a buggy backend.
type droppingAdapter struct {
	countingAdapter
}

func (a *droppingAdapter) Log(tok Token, _ string) {
	a.logs.Add(1)
}

func TestDistributeMessages(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		producers int
		expected  []int
	}{
		{"remainder to first producers", 10, 3, []int{4, 3, 3}},
		{"even split", 6, 3, []int{2, 2, 2}},
		{"fewer messages than producers", 2, 4, []int{1, 1, 0, 0}},
		{"zero messages", 0, 4, []int{0, 0, 0, 0}},
		{"single producer", 5, 1, []int{5}},
		{"zero producers", 5, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistributeMessages(tt.total, tt.producers)
			if len(got) != len(tt.expected) {
				t.Fatalf("DistributeMessages(%d, %d) = %v, want %v",
					tt.total, tt.producers, got, tt.expected)
			}
			sum := 0
			for i, share := range got {
				if share != tt.expected[i] {
					t.Errorf("share[%d] = %d, want %d", i, share, tt.expected[i])
				}
				sum += share
			}
			if tt.producers > 0 && sum != tt.total {
				t.Errorf("shares sum to %d, want %d", sum, tt.total)
			}
		})
	}
}

func TestMakeMessage(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		index    int
		expected string
	}{
		{"empty payload", 0, 3, ""},
		{"first producer", 4, 0, "AAAA"},
		{"second producer", 4, 1, "BBBB"},
		{"alphabet wraps", 3, 26, "AAA"},
		{"last letter", 2, 25, "ZZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MakeMessage(tt.size, tt.index); got != tt.expected {
				t.Errorf("MakeMessage(%d, %d) = %q, want %q", tt.size, tt.index, got, tt.expected)
			}
		})
	}

	if got := len(MakeMessage(1024, 7)); got != 1024 {
		t.Errorf("len(MakeMessage(1024, 7)) = %d, want 1024", got)
	}
}

func TestRunWorkloadZeroProducers(t *testing.T) {
	adapter := newCountingAdapter()
	rec := NewRecorder(10)
	scenario := Scenario{Sink: SinkNull, Producers: 0, TotalMessages: 10}

	dur, err := RunWorkload(adapter, rec, scenario, 10, true, true)
	if err != nil {
		t.Fatalf("RunWorkload() error = %v", err)
	}
	if dur != 0 {
		t.Errorf("duration = %v, want 0", dur)
	}
	if got := adapter.flushes.Load(); got != 1 {
		t.Errorf("flushes = %d, want 1", got)
	}
	if got := adapter.logs.Load(); got != 0 {
		t.Errorf("logs = %d, want 0", got)
	}
}

func TestRunWorkloadDeliversAllMessages(t *testing.T) {
	adapter := newCountingAdapter()
	rec := NewRecorder(1000)
	scenario := Scenario{Sink: SinkNull, Producers: 4, MessageBytes: 40, TotalMessages: 1000}

	dur, err := RunWorkload(adapter, rec, scenario, 1000, true, true)
	if err != nil {
		t.Fatalf("RunWorkload() error = %v", err)
	}
	if dur <= 0 {
		t.Errorf("duration = %v, want > 0", dur)
	}
	if got := adapter.logs.Load(); got != 1000 {
		t.Errorf("logs = %d, want 1000", got)
	}
	if got := rec.Recorded(); got != 1000 {
		t.Errorf("Recorded() = %d, want 1000", got)
	}
	if _, err := rec.Finalize(); err != nil {
		t.Errorf("Finalize() error = %v", err)
	}
}

func TestRunWorkloadWarmupMode(t *testing.T) {
	adapter := newCountingAdapter()
	rec := NewRecorder(100)
	scenario := Scenario{Sink: SinkNull, Producers: 4, TotalMessages: 100}

	dur, err := RunWorkload(adapter, rec, scenario, 64, false, false)
	if err != nil {
		t.Fatalf("RunWorkload() error = %v", err)
	}
	if dur != 0 {
		t.Errorf("warm-up duration = %v, want 0", dur)
	}
	if got := adapter.logs.Load(); got != 64 {
		t.Errorf("logs = %d, want 64", got)
	}
	if got := rec.Recorded(); got != 0 {
		t.Errorf("Recorded() after warm-up = %d, want 0", got)
	}
}

func TestRunWorkloadPerProducerPayloads(t *testing.T) {
	adapter := newCountingAdapter()
	rec := NewRecorder(30)
	scenario := Scenario{Sink: SinkNull, Producers: 3, MessageBytes: 4, TotalMessages: 30}

	if _, err := RunWorkload(adapter, rec, scenario, 30, true, true); err != nil {
		t.Fatalf("RunWorkload() error = %v", err)
	}

	adapter.mu.Lock()
	defer adapter.mu.Unlock()
	for _, want := range []string{"AAAA", "BBBB", "CCCC"} {
		if _, ok := adapter.payloads[want]; !ok {
			t.Errorf("payload %q not logged", want)
		}
	}
	if len(adapter.payloads) != 3 {
		t.Errorf("distinct payloads = %d, want 3", len(adapter.payloads))
	}
}

func TestRunWorkloadCapacityErrorSurfaces(t *testing.T) {
	adapter := newCountingAdapter()
	rec := NewRecorder(10)
	scenario := Scenario{Sink: SinkNull, Producers: 4, TotalMessages: 100}

	_, err := RunWorkload(adapter, rec, scenario, 100, true, true)
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("RunWorkload() error = %v, want ErrCapacityExceeded", err)
	}
	// Producers are joined and the adapter drained even on failure.
	if got := adapter.flushes.Load(); got != 1 {
		t.Errorf("flushes = %d, want 1", got)
	}
}
