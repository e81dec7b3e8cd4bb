// Package sweep provides the orchestrator for the benchmark matrix.
package sweep

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/wesleyorama2/logbench/internal/adapter"
	"github.com/wesleyorama2/logbench/internal/bench"
	"github.com/wesleyorama2/logbench/internal/config"
	"github.com/wesleyorama2/logbench/internal/output"
	"github.com/wesleyorama2/logbench/internal/report"
)

// Engine walks the scenario matrix and executes every combination.
//
// It coordinates:
//   - Adapter construction, one per library, reused across that
//     library's scenarios
//   - Scenario execution through the measurement executor
//   - Incremental CSV persistence after every scenario
//   - Console lifecycle output
//
// Example usage:
//
//	cfg := config.Default()
//	engine, _ := sweep.NewEngine(cfg, console)
//	result, _ := engine.Run(context.Background())
type Engine struct {
	cfg     *config.Config
	console *output.Console

	mu      sync.Mutex
	running bool
}

// Result contains the outcome of a full sweep.
type Result struct {
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Duration  time.Duration `json:"duration"`

	// Rows holds one entry per completed scenario, in execution order.
	Rows []report.Row `json:"results"`
}

// NewEngine creates a sweep engine for the given configuration.
func NewEngine(cfg *config.Config, console *output.Console) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Engine{
		cfg:     cfg,
		console: console,
	}, nil
}

// ScenarioCount returns the number of matrix cells the sweep will run.
func (e *Engine) ScenarioCount() int {
	return e.cfg.ScenarioCount()
}

// Run executes the full scenario matrix in order: library, async mode,
// sink, producer count, message size.
//
// Scenarios run strictly one at a time so that no two measurements
// contend for the scheduler. The first failure aborts the sweep; rows
// collected before the failure are returned alongside the error. The
// context is checked between scenarios, not during one.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return nil, fmt.Errorf("sweep is already running")
	}
	e.running = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	startTime := time.Now()
	e.console.PrintHeader(e.ScenarioCount(), e.cfg.TotalMessages, e.cfg.WarmupMessages)

	var rows []report.Row
	var runErr error
	for _, lib := range e.cfg.Libraries {
		libRows, err := e.runLibrary(ctx, lib)
		rows = append(rows, libRows...)
		if err != nil {
			runErr = err
			break
		}
	}

	result := &Result{
		StartTime: startTime,
		EndTime:   time.Now(),
		Duration:  time.Since(startTime),
		Rows:      rows,
	}

	return result, runErr
}

// runLibrary executes every matrix cell for one library over a single
// adapter instance, then closes the adapter so buffered sink output is
// flushed before the next library starts.
func (e *Engine) runLibrary(ctx context.Context, lib string) ([]report.Row, error) {
	ad, err := adapter.New(lib, e.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("create %s adapter: %w", lib, err)
	}

	exec := bench.NewExecutor(ad)
	exec.OnPhase = e.console.PhaseChange

	rows, runErr := e.runMatrix(ctx, lib, exec)

	if closer, ok := ad.(io.Closer); ok {
		if cerr := closer.Close(); cerr != nil && runErr == nil {
			runErr = fmt.Errorf("close %s adapter: %w", lib, cerr)
		}
	}

	return rows, runErr
}

// runMatrix iterates async mode, sink, producer count, and message size
// for one library.
func (e *Engine) runMatrix(ctx context.Context, lib string, exec *bench.Executor) ([]report.Row, error) {
	var rows []report.Row

	for _, async := range e.cfg.Async {
		for _, sinkName := range e.cfg.Sinks {
			kind, err := bench.ParseSinkKind(sinkName)
			if err != nil {
				return rows, fmt.Errorf("sink %q: %w", sinkName, err)
			}

			for _, producers := range e.cfg.Producers {
				for _, size := range e.cfg.MessageSizes {
					select {
					case <-ctx.Done():
						return rows, ctx.Err()
					default:
					}

					scenario := bench.Scenario{
						Async:         async,
						Sink:          kind,
						Producers:     producers,
						MessageBytes:  size,
						TotalMessages: e.cfg.TotalMessages,
					}

					row, err := e.runScenario(lib, scenario, exec)
					if err != nil {
						return rows, err
					}
					rows = append(rows, row)
				}
			}
		}
	}

	return rows, nil
}

// runScenario executes one matrix cell and persists its CSV row before
// returning, so results survive a later abort.
func (e *Engine) runScenario(lib string, scenario bench.Scenario, exec *bench.Executor) (report.Row, error) {
	e.console.ScenarioStart(lib, scenario)

	res, err := exec.Execute(scenario, e.cfg.WarmupMessages)
	if err != nil {
		e.console.ScenarioFailed(lib, scenario, err)
		return report.Row{}, fmt.Errorf("%s %s: %w", lib, scenario, err)
	}

	row := report.NewRow(res)
	if err := report.AppendCSV(e.cfg.CSVPath(), row); err != nil {
		return report.Row{}, fmt.Errorf("append csv: %w", err)
	}

	e.console.PrintResult(row)
	return row, nil
}
