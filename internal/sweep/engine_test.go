package sweep

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wesleyorama2/logbench/internal/config"
	"github.com/wesleyorama2/logbench/internal/output"
)

// testConfig returns a minimal single-cell configuration writing into a
// temporary directory.
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Libraries = []string{"slog"}
	cfg.Async = []bool{false}
	cfg.Sinks = []string{"null"}
	cfg.Producers = []int{1}
	cfg.MessageSizes = []int{16}
	cfg.TotalMessages = 64
	cfg.WarmupMessages = 8
	cfg.OutputDir = t.TempDir()
	return cfg
}

func testConsole(buf *bytes.Buffer) *output.Console {
	return output.NewConsole(output.Config{Writer: buf, NoColor: true})
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Libraries = []string{"glog"}

	_, err := NewEngine(cfg, testConsole(&bytes.Buffer{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestEngine_ScenarioCount(t *testing.T) {
	cfg := testConfig(t)
	cfg.Libraries = []string{"slog", "zap", "logrus"}
	cfg.Async = []bool{false, true}
	cfg.Sinks = []string{"null", "file"}
	cfg.Producers = []int{1, 4, 16}
	cfg.MessageSizes = []int{40, 200, 1024}

	engine, err := NewEngine(cfg, testConsole(&bytes.Buffer{}))
	require.NoError(t, err)

	assert.Equal(t, 108, engine.ScenarioCount())
}

func TestEngine_Run_SingleScenario(t *testing.T) {
	cfg := testConfig(t)
	var buf bytes.Buffer

	engine, err := NewEngine(cfg, testConsole(&buf))
	require.NoError(t, err)

	result, err := engine.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	row := result.Rows[0]
	assert.Equal(t, "slog", row.Library)
	assert.Equal(t, 64, row.Scenario.TotalMessages)
	assert.True(t, row.Throughput > 0, "should have measured throughput")
	assert.True(t, result.Duration > 0)
	assert.True(t, result.EndTime.After(result.StartTime))

	out := buf.String()
	assert.Contains(t, out, "Scenario start lib=slog")
	assert.Contains(t, out, "p50=")

	// CSV persisted incrementally: header plus one row.
	data, err := os.ReadFile(cfg.CSVPath())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "slog,0,null,1,16,64")
}

func TestEngine_Run_FullMatrix(t *testing.T) {
	cfg := testConfig(t)
	cfg.Async = []bool{false, true}
	cfg.Sinks = []string{"null", "file"}
	cfg.Producers = []int{1, 2}
	cfg.MessageSizes = []int{8}
	cfg.TotalMessages = 24
	cfg.WarmupMessages = 4

	var buf bytes.Buffer
	engine, err := NewEngine(cfg, testConsole(&buf))
	require.NoError(t, err)

	result, err := engine.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Rows, 8)
	assert.Equal(t, 8, engine.ScenarioCount())

	// Sweep order: async, then sink, then producers.
	assert.Equal(t, 0, result.Rows[0].Scenario.AsyncBit())
	assert.Equal(t, 1, result.Rows[4].Scenario.AsyncBit())
	assert.Equal(t, 1, result.Rows[0].Scenario.Producers)
	assert.Equal(t, 2, result.Rows[1].Scenario.Producers)

	data, err := os.ReadFile(cfg.CSVPath())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 9, "header plus one line per scenario")

	// The file sink scenarios leave a log behind.
	info, err := os.Stat(filepath.Join(cfg.OutputDir, "slog_sink.log"))
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)

	t.Logf("sweep of %d scenarios took %v", len(result.Rows), result.Duration)
}

func TestEngine_Run_ContextCancelled(t *testing.T) {
	cfg := testConfig(t)
	engine, err := NewEngine(cfg, testConsole(&bytes.Buffer{}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := engine.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result.Rows)
}

func TestEngine_Run_ReusableAfterCompletion(t *testing.T) {
	cfg := testConfig(t)
	cfg.TotalMessages = 16
	cfg.WarmupMessages = 2

	engine, err := NewEngine(cfg, testConsole(&bytes.Buffer{}))
	require.NoError(t, err)

	_, err = engine.Run(context.Background())
	require.NoError(t, err)

	// A second run appends to the same CSV rather than rewriting it.
	_, err = engine.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.CSVPath())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 3)
}

func TestEngine_Run_AllLibraries(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping multi-library sweep in short mode")
	}

	cfg := testConfig(t)
	cfg.Libraries = []string{"slog", "zap", "logrus"}
	cfg.Async = []bool{true}
	cfg.Sinks = []string{"null"}
	cfg.TotalMessages = 128
	cfg.WarmupMessages = 16

	engine, err := NewEngine(cfg, testConsole(&bytes.Buffer{}))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := engine.Run(ctx)
	require.NoError(t, err)

	require.Len(t, result.Rows, 3)
	libs := make([]string, 0, 3)
	for _, row := range result.Rows {
		libs = append(libs, row.Library)
		assert.Equal(t, int64(128), row.Distribution.Count)
	}
	assert.Equal(t, []string{"slog", "zap", "logrus"}, libs)
}
