package executor

import (
	storageengine "DuneArchive/storage_engine"
	"DuneArchive/types"
	"log/slog"
	"os"
	"time"
)

// Result is the outcome of one input line.
type Result struct {
	Line    int
	Text    string // the line as read, trimmed
	Op      types.OperationType
	Skipped bool // blank or comment line
	Success bool
	Message string
	Rows    []string // search results, one space-joined record each
	Err     error
}

// Summary counts the outcomes of a run.
type Summary struct {
	Lines     int
	Skipped   int
	Succeeded int
	Failed    int
}

// Executor runs command lines against a storage engine and records every
// outcome in the status log and, for searches and parse failures, in the
// output file.
type Executor struct {
	engine *storageengine.StorageEngine
	status *os.File
	output *os.File
	log    *slog.Logger
	now    func() time.Time
}
