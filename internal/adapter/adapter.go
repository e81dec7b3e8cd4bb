// Package adapter wraps concrete logging libraries behind the uniform
// contract the measurement core consumes.
//
// Every adapter threads the encoded correlation token through its
// library's own structured-field pipeline to a measuring sink installed
// at the library's extension point (slog.Handler, zapcore.Core,
// logrus.Hook), so a message's completion is observed exactly where the
// library hands it off, on whatever goroutine the library uses.
package adapter

import (
	"fmt"
	"path/filepath"

	"github.com/wesleyorama2/logbench/internal/bench"
)

// tokenField is the field key carrying the encoded token through a
// library's pipeline.
const tokenField = "tok"

// Library names as reported by LibraryName and accepted by New.
const (
	LibSlog   = "slog"
	LibZap    = "zap"
	LibLogrus = "logrus"
)

// Names lists the available adapters in their default sweep order.
func Names() []string {
	return []string{LibSlog, LibZap, LibLogrus}
}

// New returns the adapter wrapping the named library. File sinks write
// under outputDir as <name>_sink.log.
func New(name, outputDir string) (bench.Adapter, error) {
	switch name {
	case LibSlog:
		return newSlogAdapter(outputDir), nil
	case LibZap:
		return newZapAdapter(outputDir), nil
	case LibLogrus:
		return newLogrusAdapter(outputDir), nil
	}
	return nil, fmt.Errorf("unknown logging library: %q", name)
}

// sinkHost carries the per-scenario sink chain shared by all adapters:
// building a fresh chain at Prepare (closing the previous scenario's),
// flushing it, and tearing it down at Close.
type sinkHost struct {
	dir   string
	chain sink
}

// reset closes any existing chain and builds the one for the given
// scenario. The file sink path is derived from the library name.
func (h *sinkHost) reset(scenario bench.Scenario, rec *bench.Recorder, lib string) (sink, error) {
	if h.chain != nil {
		if err := h.chain.close(); err != nil {
			return nil, fmt.Errorf("close previous sink: %w", err)
		}
		h.chain = nil
	}
	s, err := buildSink(scenario, rec, filepath.Join(h.dir, lib+"_sink.log"))
	if err != nil {
		return nil, err
	}
	h.chain = s
	return s, nil
}

// Flush blocks until every outstanding message has reached the terminal
// sink.
func (h *sinkHost) Flush() error {
	if h.chain == nil {
		return nil
	}
	return h.chain.flush()
}

// Close tears down the sink chain. Adapters are closed by the sweep
// engine after their last scenario.
func (h *sinkHost) Close() error {
	if h.chain == nil {
		return nil
	}
	err := h.chain.close()
	h.chain = nil
	return err
}
