package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// csvHeader matches the long-standing column layout consumed by the
// plotting scripts; changing it breaks downstream tooling.
var csvHeader = []string{
	"lib", "async", "sink", "producers", "msg_bytes", "total",
	"p50_ns", "p99_ns", "p999_ns", "throughput",
}

// AppendCSV appends one result row to the CSV at path, writing the
// header first when the file is missing or empty. Appending per
// scenario means a sweep that dies mid-run still leaves every finished
// row on disk.
func AppendCSV(path string, row Row) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}

	needHeader, err := csvNeedsHeader(path)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}

	w := csv.NewWriter(f)
	if needHeader {
		if err := w.Write(csvHeader); err != nil {
			f.Close()
			return fmt.Errorf("write csv header: %w", err)
		}
	}
	if err := w.Write(csvRecord(row)); err != nil {
		f.Close()
		return fmt.Errorf("write csv row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write csv: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close csv: %w", err)
	}
	return nil
}

func csvNeedsHeader(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat csv: %w", err)
	}
	return info.Size() == 0, nil
}

func csvRecord(row Row) []string {
	return []string{
		row.Library,
		strconv.Itoa(row.Scenario.AsyncBit()),
		string(row.Scenario.Sink),
		strconv.Itoa(row.Scenario.Producers),
		strconv.Itoa(row.Scenario.MessageBytes),
		strconv.Itoa(row.Scenario.TotalMessages),
		strconv.FormatInt(row.Summary.P50.Nanoseconds(), 10),
		strconv.FormatInt(row.Summary.P99.Nanoseconds(), 10),
		strconv.FormatInt(row.Summary.P999.Nanoseconds(), 10),
		strconv.FormatFloat(row.Throughput, 'f', 2, 64),
	}
}
