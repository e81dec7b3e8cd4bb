package sweep

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// ExitTimeout is the process exit code when the watchdog fires. It
// matches the code the timeout(1) utility uses for the same condition.
const ExitTimeout = 124

const watchdogInterval = 200 * time.Millisecond

// Watchdog terminates the process when the sweep overruns its deadline.
//
// A hung backend (a stalled async consumer, a blocked file sink) would
// otherwise leave the benchmark running forever; the watchdog turns
// that into a bounded failure. It polls rather than sleeps so Stop can
// disarm it promptly after a sweep that finishes early.
type Watchdog struct {
	timeout  time.Duration
	interval time.Duration

	// out, exit, and now are replaceable for tests.
	out  io.Writer
	exit func(code int)
	now  func() time.Time

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatchdog creates a watchdog for the given timeout. A zero or
// negative timeout disables it.
func NewWatchdog(timeout time.Duration) *Watchdog {
	return &Watchdog{
		timeout:  timeout,
		interval: watchdogInterval,
		out:      os.Stderr,
		exit:     os.Exit,
		now:      time.Now,
	}
}

// Start arms the watchdog. It returns immediately; the deadline check
// runs on its own goroutine until the watchdog fires or Stop is called.
func (w *Watchdog) Start() {
	if w.timeout <= 0 {
		return
	}

	w.stop = make(chan struct{})
	w.done = make(chan struct{})
	deadline := w.now().Add(w.timeout)
	go w.watch(deadline)
}

func (w *Watchdog) watch(deadline time.Time) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			if w.now().After(deadline) {
				fmt.Fprintf(w.out, "logbench: timeout reached after %ds, terminating benchmark\n",
					int(w.timeout.Seconds()))
				w.exit(ExitTimeout)
				return
			}
		}
	}
}

// Stop disarms the watchdog and waits for its goroutine to finish.
// Safe to call repeatedly, and a no-op when the watchdog never started.
func (w *Watchdog) Stop() {
	if w.stop == nil {
		return
	}
	w.stopOnce.Do(func() { close(w.stop) })
	<-w.done
}
