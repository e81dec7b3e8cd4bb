package bench

// Adapter is the uniform contract a logging backend exposes to the
// measurement core.
//
// The core never looks inside a backend: it hands every message a token
// from the recorder, and the backend's sink reports the message's arrival
// by calling Complete on that token, possibly from a consumer goroutine
// that is not the producer. Concrete adapters live in internal/adapter;
// anything satisfying this interface can be benchmarked.
type Adapter interface {
	// LibraryName identifies the wrapped library in reports ("zap",
	// "logrus", "slog", ...).
	LibraryName() string

	// Prepare wires the recorder into the backend's sink for the given
	// scenario so completions are reported. Called once per scenario,
	// before any Log call.
	Prepare(scenario Scenario, rec *Recorder) error

	// Log emits one message through the backend, eventually triggering
	// rec.Complete(tok). It must be safe to call from all producer
	// goroutines concurrently. Blocking here (an async queue under
	// backpressure, a slow writer) is part of the measured latency.
	Log(tok Token, message string)

	// Flush blocks until every outstanding message has been durably
	// processed by the sink.
	Flush() error
}
