package adapter

import (
	"context"
	"io"
	"log/slog"

	"github.com/wesleyorama2/logbench/internal/bench"
)

// slogHandler is the measuring slog.Handler: it pulls the token attr out
// of each record and hands the message to the sink chain.
type slogHandler struct {
	s sink
}

var _ slog.Handler = (*slogHandler)(nil)

func (h *slogHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *slogHandler) Handle(_ context.Context, r slog.Record) error {
	var tok bench.Token
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tokenField && a.Value.Kind() == slog.KindUint64 {
			tok = bench.DecodeToken(a.Value.Uint64())
			return false
		}
		return true
	})
	h.s.consume(tok, r.Message)
	return nil
}

// The harness never installs contextual attrs or groups; records carry
// only the message and the token.
func (h *slogHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *slogHandler) WithGroup(string) slog.Handler      { return h }

// slogAdapter benchmarks the standard library's log/slog through a
// custom handler.
type slogAdapter struct {
	sinkHost
	logger *slog.Logger
}

var _ bench.Adapter = (*slogAdapter)(nil)
var _ io.Closer = (*slogAdapter)(nil)

func newSlogAdapter(outputDir string) *slogAdapter {
	return &slogAdapter{sinkHost: sinkHost{dir: outputDir}}
}

func (a *slogAdapter) LibraryName() string { return LibSlog }

func (a *slogAdapter) Prepare(scenario bench.Scenario, rec *bench.Recorder) error {
	s, err := a.reset(scenario, rec, LibSlog)
	if err != nil {
		return err
	}
	a.logger = slog.New(&slogHandler{s: s})
	return nil
}

func (a *slogAdapter) Log(tok bench.Token, message string) {
	if a.logger == nil {
		return
	}
	a.logger.LogAttrs(context.Background(), slog.LevelInfo, message,
		slog.Uint64(tokenField, tok.Encode()))
}
