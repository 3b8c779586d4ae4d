package executor

import (
	"DuneArchive/types"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const statusHeader = "timestamp,operation,status"

// openStatusLog opens the csv status log for appending and writes the header
// if the file is new or empty.
func openStatusLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create status log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open status log: %w", err)
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat status log: %w", err)
	}
	if stat.Size() == 0 {
		if _, err := f.WriteString(statusHeader + "\n"); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write status log header: %w", err)
		}
	}
	return f, nil
}

// openOutput truncates the output file; it only ever holds the current run.
func openOutput(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}
	return f, nil
}

func (ex *Executor) writeStatus(line string, success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	row := fmt.Sprintf("%d,%s,%s\n", ex.now().Unix(), line, status)
	if _, err := ex.status.WriteString(row); err != nil {
		ex.log.Error("failed to write status log", "error", err)
	}
}

func (ex *Executor) writeOutput(line string) {
	if _, err := ex.output.WriteString(line + "\n"); err != nil {
		ex.log.Error("failed to write output", "error", err)
	}
}

func formatRecord(rec types.Record) string {
	cells := make([]string, len(rec.Values))
	for i, v := range rec.Values {
		cells[i] = formatValue(v)
	}
	return strings.Join(cells, " ")
}

func formatValue(val any) string {
	if val == nil {
		return ""
	}
	s, err := types.ToString(val)
	if err != nil {
		return fmt.Sprintf("%v", val)
	}
	return s
}
