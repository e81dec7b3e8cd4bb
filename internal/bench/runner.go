package bench

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// DistributeMessages splits total across producers as evenly as possible:
// every producer gets total/producers messages and the first
// total%producers producers get one extra, so the shares always sum to
// total exactly.
func DistributeMessages(total, producers int) []int {
	if producers <= 0 {
		return nil
	}
	shares := make([]int, producers)
	base := total / producers
	rem := total % producers
	for i := range shares {
		shares[i] = base
		if i < rem {
			shares[i]++
		}
	}
	return shares
}

// MakeMessage builds the deterministic payload for one producer: size
// repetitions of a letter derived from the producer index, so repeated
// runs log byte-identical content.
func MakeMessage(size, producerIndex int) string {
	if size <= 0 {
		return ""
	}
	fill := byte('A' + producerIndex%26)
	return strings.Repeat(string(fill), size)
}

// RunWorkload drives total messages through the adapter from
// scenario.Producers concurrent producer goroutines and returns the
// measured wall-clock duration.
//
// Every producer builds its payload, signals readiness, then blocks until
// the controlling goroutine has seen all ready signals. The controller
// captures the start timestamp (only when measureDuration is set) and
// releases every producer at once, so the measured window never includes
// goroutine startup jitter. Once released, a producer issues its share of
// Begin/Log calls in a tight loop with no further blocking of its own;
// whatever the adapter's Log does under load is exactly what is being
// measured.
//
// After all producers have finished, the adapter is flushed before the
// end timestamp is taken: throughput reflects messages durably reaching
// the sink, not merely being enqueued.
//
// Edge cases:
//   - scenario.Producers == 0 flushes the adapter and returns a zero
//     duration without spawning goroutines.
//   - measureDuration == false (warm-up) always returns a zero duration,
//     signaling callers not to derive throughput from it.
//
// A recorder or flush error is fatal to the run; producers already
// started are always joined before the error surfaces.
func RunWorkload(adapter Adapter, rec *Recorder, scenario Scenario, total int, recordLatency, measureDuration bool) (time.Duration, error) {
	if scenario.Producers == 0 {
		if err := adapter.Flush(); err != nil {
			return 0, fmt.Errorf("flush: %w", err)
		}
		return 0, nil
	}

	shares := DistributeMessages(total, scenario.Producers)

	var (
		ready    sync.WaitGroup
		done     sync.WaitGroup
		start    = make(chan struct{})
		errMu    sync.Mutex
		firstErr error
	)

	fail := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
	}

	ready.Add(scenario.Producers)
	done.Add(scenario.Producers)
	for i := 0; i < scenario.Producers; i++ {
		go func(index, share int) {
			defer done.Done()
			payload := MakeMessage(scenario.MessageBytes, index)
			ready.Done()
			<-start
			for n := 0; n < share; n++ {
				tok, err := rec.Begin(recordLatency)
				if err != nil {
					fail(fmt.Errorf("producer %d: %w", index, err))
					return
				}
				adapter.Log(tok, payload)
			}
		}(i, shares[i])
	}

	ready.Wait()
	var t0 time.Time
	if measureDuration {
		t0 = time.Now()
	}
	close(start)
	done.Wait()

	if err := adapter.Flush(); err != nil {
		fail(fmt.Errorf("flush: %w", err))
	}

	errMu.Lock()
	err := firstErr
	errMu.Unlock()
	if err != nil {
		return 0, err
	}
	if !measureDuration {
		return 0, nil
	}
	return time.Since(t0), nil
}
