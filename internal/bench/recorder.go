package bench

import (
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"
)

// ErrCapacityExceeded is returned by Begin when every pre-allocated
// sample slot has already been claimed.
var ErrCapacityExceeded = errors.New("latency recorder capacity exceeded")

// ErrIncompleteCapture is returned when a run claimed sample slots that
// never received a completion, or claimed fewer slots than the run was
// expected to produce. It always indicates an adapter bug (a lost or
// missing message), not a recorder bug.
var ErrIncompleteCapture = errors.New("incomplete latency capture")

// invalidSlot marks a token that never claimed a slot.
const invalidSlot = ^uint64(0)

// tokenActiveBit flags an encoded token as recording.
const tokenActiveBit = uint64(1) << 63

// Token is the opaque handle correlating a message's emission with its
// eventual completion. It binds a sample-slot index and a recording flag,
// is produced by Begin, passed by value through the adapter and its sink,
// and consumed exactly once by Complete.
type Token struct {
	slot   uint64
	active bool
}

// Active reports whether this token records latency. Warm-up tokens are
// inactive and make Complete a no-op.
func (t Token) Active() bool {
	return t.active
}

// Slot returns the sample-slot index claimed by this token. Only
// meaningful when Active is true.
func (t Token) Slot() uint64 {
	return t.slot
}

// Encode packs the token into a single integer so adapters can thread it
// through a logging pipeline as an ordinary numeric field. An inactive
// token encodes to zero.
func (t Token) Encode() uint64 {
	if !t.active {
		return 0
	}
	return tokenActiveBit | t.slot
}

// DecodeToken reverses Encode. Values without the recording flag decode
// to an inactive token.
func DecodeToken(v uint64) Token {
	if v&tokenActiveBit == 0 {
		return Token{slot: invalidSlot}
	}
	return Token{slot: v &^ tokenActiveBit, active: true}
}

// sample is one entry of the pre-allocated slot arena. The producer
// goroutine writes start at Begin; whichever goroutine runs the sink
// writes end at Complete. A zero end means the slot was never completed.
type sample struct {
	start time.Time
	end   time.Time
}

// Recorder correlates begin/end timestamps across goroutines and reduces
// the collected samples into percentile statistics.
//
// The sample arena is sized at construction and never grows, so the timed
// path performs no allocation. Slot indices are claimed through a single
// atomic counter; every token owns a unique index for its lifetime, so
// slot writes need no locking and Begin/Complete stay contention-free
// beyond that one atomic.
//
// # Thread Safety
//
// Begin is safe for all producer goroutines concurrently. Complete is
// safe from any goroutine, including a sink consumer that is not the
// producer. Finalize, Recorded and Durations must only run after all
// producer and sink activity has quiesced.
type Recorder struct {
	samples []sample
	next    atomic.Int64
}

// Summary holds the latency percentiles of one measured run, computed by
// nearest-rank selection on the sorted samples.
type Summary struct {
	P50  time.Duration `json:"p50"`
	P99  time.Duration `json:"p99"`
	P999 time.Duration `json:"p999"`
}

// NewRecorder pre-allocates capacity sample slots. Capacity must be at
// least the message total of the run that will use this recorder; each
// scenario gets its own instance.
func NewRecorder(capacity int) *Recorder {
	return &Recorder{samples: make([]sample, capacity)}
}

// Begin claims the next sample slot and stamps its start time.
//
// When record is false no slot is claimed and no clock is read: warm-up
// traffic consumes neither capacity nor timer overhead, and the returned
// token is inactive. When record is true the slot index comes from one
// atomic increment; ErrCapacityExceeded is reported once the arena is
// exhausted.
func (r *Recorder) Begin(record bool) (Token, error) {
	if !record {
		return Token{slot: invalidSlot}, nil
	}
	slot := r.next.Add(1) - 1
	if slot >= int64(len(r.samples)) {
		return Token{slot: invalidSlot}, ErrCapacityExceeded
	}
	r.samples[slot].start = time.Now()
	return Token{slot: uint64(slot), active: true}, nil
}

// Complete stamps the end time of the token's slot. It is a no-op for
// inactive tokens and may run on a different goroutine than the Begin
// call. Completing the same token twice is a logic error the adapter
// must not trigger.
func (r *Recorder) Complete(tok Token) {
	if !tok.active {
		return
	}
	r.samples[tok.slot].end = time.Now()
}

// Recorded returns the number of claimed slots, clamped to capacity.
func (r *Recorder) Recorded() int {
	n := r.next.Load()
	if n > int64(len(r.samples)) {
		n = int64(len(r.samples))
	}
	return int(n)
}

// Capacity returns the size of the slot arena.
func (r *Recorder) Capacity() int {
	return len(r.samples)
}

// Durations returns a snapshot of the completed samples as durations,
// in slot order. Claimed slots missing a completion are skipped.
func (r *Recorder) Durations() []time.Duration {
	claimed := r.Recorded()
	out := make([]time.Duration, 0, claimed)
	for i := 0; i < claimed; i++ {
		s := &r.samples[i]
		if s.end.IsZero() {
			continue
		}
		out = append(out, s.end.Sub(s.start))
	}
	return out
}

// Finalize reduces the completed samples into a Summary.
//
// It must run single-threaded after the run has quiesced. Any claimed
// slot without an end timestamp makes the whole capture unusable and is
// reported through ErrIncompleteCapture with the deficit, never silently
// folded into a skewed percentile. With zero samples the percentiles are
// zero. Finalize sorts a snapshot, so repeat calls on an unmodified
// recorder return identical summaries.
func (r *Recorder) Finalize() (Summary, error) {
	claimed := r.Recorded()
	durations := make([]time.Duration, 0, claimed)
	missing := 0
	for i := 0; i < claimed; i++ {
		s := &r.samples[i]
		if s.end.IsZero() {
			missing++
			continue
		}
		durations = append(durations, s.end.Sub(s.start))
	}
	if missing > 0 {
		return Summary{}, fmt.Errorf("%w: %d of %d claimed samples missing completion",
			ErrIncompleteCapture, missing, claimed)
	}
	if len(durations) == 0 {
		return Summary{}, nil
	}

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	return Summary{
		P50:  nearestRank(durations, 0.50),
		P99:  nearestRank(durations, 0.99),
		P999: nearestRank(durations, 0.999),
	}, nil
}

// nearestRank picks the percentile value from an ascending sample set:
// rank = ceil(p*n) clamped to [1, n], value at rank-1.
func nearestRank(sorted []time.Duration, percentile float64) time.Duration {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	rank := percentile * float64(n)
	index := int(rank)
	if float64(index) < rank {
		index++
	}
	if index < 1 {
		index = 1
	}
	if index > n {
		index = n
	}
	return sorted[index-1]
}
