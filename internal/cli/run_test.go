package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/wesleyorama2/logbench/internal/config"
)

// newTestRunCommand builds a command with the run flag surface plus the
// root's persistent flags, isolated from the shared RootCmd state.
func newTestRunCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "run"}
	registerRunFlags(cmd)
	cmd.Flags().Bool("no-color", true, "")
	cmd.Flags().Bool("quiet", false, "")
	cmd.Flags().Bool("verbose", false, "")
	cmd.SetContext(context.Background())
	return cmd
}

func setFlags(t *testing.T, cmd *cobra.Command, flags map[string]string) {
	t.Helper()
	for name, value := range flags {
		require.NoError(t, cmd.Flags().Set(name, value), "setting --%s", name)
	}
}

func TestBuildRunConfig_Defaults(t *testing.T) {
	cmd := newTestRunCommand()

	cfg, err := buildRunConfig(cmd)
	require.NoError(t, err)

	def := config.Default()
	assert.Equal(t, def.Libraries, cfg.Libraries)
	assert.Equal(t, def.TotalMessages, cfg.TotalMessages)
	assert.Equal(t, def.WarmupMessages, cfg.WarmupMessages)
	assert.Equal(t, def.OutputDir, cfg.OutputDir)
	assert.Equal(t, def.CSVFile, cfg.CSVFile)
	assert.Empty(t, cfg.JSONFile)
}

func TestBuildRunConfig_FlagOverrides(t *testing.T) {
	cmd := newTestRunCommand()
	setFlags(t, cmd, map[string]string{
		"libs":        "zap",
		"async-modes": "true",
		"producers":   "2,8",
		"total":       "5000",
		"timeout":     "90s",
		"json":        "out.json",
	})

	cfg, err := buildRunConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, []string{"zap"}, cfg.Libraries)
	assert.Equal(t, []bool{true}, cfg.Async)
	assert.Equal(t, []int{2, 8}, cfg.Producers)
	assert.Equal(t, 5000, cfg.TotalMessages)
	assert.Equal(t, 90*time.Second, cfg.Timeout.GetDuration(0))
	assert.Equal(t, "out.json", cfg.JSONFile)

	// Untouched fields keep their defaults.
	assert.Equal(t, config.Default().MessageSizes, cfg.MessageSizes)
}

func TestBuildRunConfig_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
libraries: [logrus]
totalMessages: 9000
warmupMessages: 100
`), 0o644))

	cmd := newTestRunCommand()
	setFlags(t, cmd, map[string]string{
		"config": path,
		"total":  "1234",
	})

	cfg, err := buildRunConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, []string{"logrus"}, cfg.Libraries)
	assert.Equal(t, 100, cfg.WarmupMessages)
	// An explicit flag beats the file.
	assert.Equal(t, 1234, cfg.TotalMessages)
}

func TestBuildRunConfig_EnvBetweenFileAndFlags(t *testing.T) {
	t.Setenv(config.EnvTotal, "777")
	t.Setenv(config.EnvWarmup, "11")

	cmd := newTestRunCommand()
	setFlags(t, cmd, map[string]string{"warmup": "55"})

	cfg, err := buildRunConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, 777, cfg.TotalMessages, "env overrides defaults")
	assert.Equal(t, 55, cfg.WarmupMessages, "flag overrides env")
}

func TestBuildRunConfig_MalformedEnv(t *testing.T) {
	t.Setenv(config.EnvTotal, "a-lot")

	cmd := newTestRunCommand()
	_, err := buildRunConfig(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.EnvTotal)
}

func TestBuildRunConfig_MissingConfigFile(t *testing.T) {
	cmd := newTestRunCommand()
	setFlags(t, cmd, map[string]string{"config": filepath.Join(t.TempDir(), "nope.yaml")})

	_, err := buildRunConfig(cmd)
	require.Error(t, err)
}

func TestRunSweep_EndToEnd(t *testing.T) {
	outDir := t.TempDir()
	cmd := newTestRunCommand()
	setFlags(t, cmd, map[string]string{
		"libs":        "slog",
		"async-modes": "false",
		"sinks":       "null",
		"producers":   "1",
		"sizes":       "16",
		"total":       "64",
		"warmup":      "8",
		"out":         outDir,
		"json":        "results.json",
		"html":        "report.html",
	})

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)

	require.NoError(t, runSweep(cmd))

	// CSV, JSON, and HTML all landed in the output directory.
	csvData, err := os.ReadFile(filepath.Join(outDir, "latency.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(csvData), "slog,0,null,1,16,64")

	jsonData, err := os.ReadFile(filepath.Join(outDir, "results.json"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), gjson.GetBytes(jsonData, "results.#").Int())
	assert.Equal(t, "slog", gjson.GetBytes(jsonData, "results.0.library").String())
	assert.Equal(t, int64(64), gjson.GetBytes(jsonData, "totalMessages").Int())

	htmlData, err := os.ReadFile(filepath.Join(outDir, "report.html"))
	require.NoError(t, err)
	assert.Contains(t, string(htmlData), "<!DOCTYPE html>")

	out := buf.String()
	assert.Contains(t, out, "Scenario start lib=slog")
	assert.Contains(t, out, "Completed 1 scenarios")
	assert.Contains(t, out, "results.json")
	assert.Contains(t, out, "report.html")
}

func TestRunSweep_InvalidLibrary(t *testing.T) {
	cmd := newTestRunCommand()
	setFlags(t, cmd, map[string]string{
		"libs": "glog",
		"out":  t.TempDir(),
	})
	cmd.SetOut(new(bytes.Buffer))

	err := runSweep(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
