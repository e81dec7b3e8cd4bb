package adapter

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/wesleyorama2/logbench/internal/bench"
)

// defaultQueueSize is the floor for the async queue; the queue grows to
// twice the scenario's message total so a measured run never recycles
// capacity mid-flight.
const defaultQueueSize = 8192

// sink is the delivery end of an adapter: it receives each message
// together with its token, reports completion to the recorder, and then
// disposes of the message bytes. Completion is reported on arrival,
// before any file I/O, so latency measures the backend pipeline rather
// than disk speed.
type sink interface {
	consume(tok bench.Token, line string)
	flush() error
	close() error
}

// nullSink completes tokens and discards every message.
type nullSink struct {
	rec *bench.Recorder
}

func (s *nullSink) consume(tok bench.Token, _ string) {
	s.rec.Complete(tok)
}

func (s *nullSink) flush() error { return nil }
func (s *nullSink) close() error { return nil }

// fileSink completes tokens and appends each message, newline-terminated,
// to a per-library log file. The file is truncated when the sink is
// built, so every scenario starts from an empty file.
type fileSink struct {
	rec *bench.Recorder

	mu sync.Mutex
	f  *os.File
	w  *bufio.Writer
}

func newFileSink(rec *bench.Recorder, path string) (*fileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sink directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open sink file: %w", err)
	}
	return &fileSink{rec: rec, f: f, w: bufio.NewWriter(f)}, nil
}

func (s *fileSink) consume(tok bench.Token, line string) {
	s.rec.Complete(tok)
	s.mu.Lock()
	s.w.WriteString(line)
	s.w.WriteByte('\n')
	s.mu.Unlock()
}

func (s *fileSink) flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("flush sink file: %w", err)
	}
	return nil
}

func (s *fileSink) close() error {
	if err := s.flush(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}

// asyncItem is one queued message awaiting the consumer goroutine.
type asyncItem struct {
	tok  bench.Token
	line string
}

// asyncSink decouples producers from the wrapped sink through a bounded
// queue drained by a single consumer goroutine, the shape of an async
// logging backend. Enqueueing blocks once the queue is full; that
// backpressure is part of what the benchmark measures. Completion fires
// on the consumer goroutine when the wrapped sink consumes the message.
type asyncSink struct {
	inner sink
	ch    chan asyncItem

	pending      sync.WaitGroup
	consumerDone chan struct{}
	closeOnce    sync.Once
	closeErr     error
}

func newAsyncSink(inner sink, queueSize int) *asyncSink {
	s := &asyncSink{
		inner:        inner,
		ch:           make(chan asyncItem, queueSize),
		consumerDone: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *asyncSink) run() {
	defer close(s.consumerDone)
	for item := range s.ch {
		s.inner.consume(item.tok, item.line)
		s.pending.Done()
	}
}

func (s *asyncSink) consume(tok bench.Token, line string) {
	s.pending.Add(1)
	s.ch <- asyncItem{tok: tok, line: line}
}

// flush blocks until the consumer has drained every enqueued message,
// then flushes the wrapped sink.
func (s *asyncSink) flush() error {
	s.pending.Wait()
	return s.inner.flush()
}

func (s *asyncSink) close() error {
	s.closeOnce.Do(func() {
		close(s.ch)
		<-s.consumerDone
		s.closeErr = s.inner.close()
	})
	return s.closeErr
}

// queueSize returns the async queue capacity for a scenario:
// max(defaultQueueSize, 2*total).
func queueSize(totalMessages int) int {
	if n := 2 * totalMessages; n > defaultQueueSize {
		return n
	}
	return defaultQueueSize
}

// buildSink assembles the sink chain for one scenario: the terminal sink
// selected by the scenario's kind, wrapped in an async queue when the
// scenario is asynchronous.
func buildSink(scenario bench.Scenario, rec *bench.Recorder, filePath string) (sink, error) {
	var s sink
	switch scenario.Sink {
	case bench.SinkNull:
		s = &nullSink{rec: rec}
	case bench.SinkFile:
		fs, err := newFileSink(rec, filePath)
		if err != nil {
			return nil, err
		}
		s = fs
	default:
		return nil, fmt.Errorf("unknown sink kind: %q", scenario.Sink)
	}
	if scenario.Async {
		s = newAsyncSink(s, queueSize(scenario.TotalMessages))
	}
	return s, nil
}
