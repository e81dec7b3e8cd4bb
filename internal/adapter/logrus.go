package adapter

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/wesleyorama2/logbench/internal/bench"
)

// logrusHook is the measuring logrus.Hook: it reads the token from the
// entry's fields and hands the message to the sink chain. Hooks are
// logrus's extension point, so delivery is observed before the logger's
// own (discarded) write.
type logrusHook struct {
	s sink
}

var _ logrus.Hook = (*logrusHook)(nil)

func (h *logrusHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.InfoLevel}
}

func (h *logrusHook) Fire(entry *logrus.Entry) error {
	var tok bench.Token
	if v, ok := entry.Data[tokenField]; ok {
		if enc, ok := v.(uint64); ok {
			tok = bench.DecodeToken(enc)
		}
	}
	h.s.consume(tok, entry.Message)
	return nil
}

// discardFormatter keeps the logger's own write path trivial; the hook
// is the delivery path.
type discardFormatter struct{}

func (discardFormatter) Format(*logrus.Entry) ([]byte, error) { return nil, nil }

// logrusAdapter benchmarks github.com/sirupsen/logrus through a hook on
// a dedicated logger instance.
type logrusAdapter struct {
	sinkHost
	logger *logrus.Logger
}

var _ bench.Adapter = (*logrusAdapter)(nil)
var _ io.Closer = (*logrusAdapter)(nil)

func newLogrusAdapter(outputDir string) *logrusAdapter {
	return &logrusAdapter{sinkHost: sinkHost{dir: outputDir}}
}

func (a *logrusAdapter) LibraryName() string { return LibLogrus }

func (a *logrusAdapter) Prepare(scenario bench.Scenario, rec *bench.Recorder) error {
	s, err := a.reset(scenario, rec, LibLogrus)
	if err != nil {
		return err
	}

	// A fresh logger per scenario so hooks never accumulate.
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetFormatter(discardFormatter{})
	logger.SetLevel(logrus.InfoLevel)
	logger.AddHook(&logrusHook{s: s})
	a.logger = logger
	return nil
}

func (a *logrusAdapter) Log(tok bench.Token, message string) {
	if a.logger == nil {
		return
	}
	a.logger.WithField(tokenField, tok.Encode()).Info(message)
}
