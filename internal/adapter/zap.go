package adapter

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wesleyorama2/logbench/internal/bench"
)

// zapCore is the measuring zapcore.Core: it reads the token field from
// each entry's fields and hands the message to the sink chain.
type zapCore struct {
	s sink
}

var _ zapcore.Core = (*zapCore)(nil)

func (c *zapCore) Enabled(zapcore.Level) bool { return true }

func (c *zapCore) With([]zapcore.Field) zapcore.Core { return c }

func (c *zapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	return ce.AddCore(ent, c)
}

func (c *zapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	var tok bench.Token
	for i := range fields {
		f := &fields[i]
		if f.Key == tokenField && f.Type == zapcore.Uint64Type {
			tok = bench.DecodeToken(uint64(f.Integer))
			break
		}
	}
	c.s.consume(tok, ent.Message)
	return nil
}

func (c *zapCore) Sync() error { return c.s.flush() }

// zapAdapter benchmarks go.uber.org/zap through a custom core.
type zapAdapter struct {
	sinkHost
	logger *zap.Logger
}

var _ bench.Adapter = (*zapAdapter)(nil)
var _ io.Closer = (*zapAdapter)(nil)

func newZapAdapter(outputDir string) *zapAdapter {
	return &zapAdapter{sinkHost: sinkHost{dir: outputDir}}
}

func (a *zapAdapter) LibraryName() string { return LibZap }

func (a *zapAdapter) Prepare(scenario bench.Scenario, rec *bench.Recorder) error {
	s, err := a.reset(scenario, rec, LibZap)
	if err != nil {
		return err
	}
	a.logger = zap.New(&zapCore{s: s})
	return nil
}

func (a *zapAdapter) Log(tok bench.Token, message string) {
	if a.logger == nil {
		return
	}
	a.logger.Info(message, zap.Uint64(tokenField, tok.Encode()))
}
