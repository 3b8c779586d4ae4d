package executor

/*
this file dispatches parsed command lines to the storage engine, one line at a
time, and records the outcome of every line.


 ============================================================================
 ARCHITECTURE OVERVIEW
 ============================================================================

 input line
     ↓
 parser.ParseLine ── parse error ──→ output.txt "Line N: Failed - ..."
     ↓
 Executor.execute  (switch on statement type)
     ↓
     ├─→ StorageEngine.CreateType
     ├─→ StorageEngine.Insert
     ├─→ StorageEngine.SearchRecords ──→ output.txt, one line per record
     └─→ StorageEngine.DeleteByKey
     ↓
 log.csv  "<unix seconds>,<line>,success|failure"

A failing line never stops the run. A panic while executing a line is
recovered and reported as an internal error of that line.
*/

import (
	"DuneArchive/config"
	"DuneArchive/logging"
	"DuneArchive/query_parser/parser"
	storageengine "DuneArchive/storage_engine"
	"DuneArchive/types"
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// NewExecutor opens the status log (appending, header written once when the
// file is new) and truncates the output file.
func NewExecutor(engine *storageengine.StorageEngine, cfg config.Config) (*Executor, error) {
	status, err := openStatusLog(cfg.StatusLogPath())
	if err != nil {
		return nil, err
	}
	output, err := openOutput(cfg.OutputFilePath())
	if err != nil {
		status.Close()
		return nil, err
	}

	return &Executor{
		engine: engine,
		status: status,
		output: output,
		log:    logging.WithComponent("executor"),
		now:    time.Now,
	}, nil
}

func (ex *Executor) Close() error {
	serr := ex.status.Close()
	oerr := ex.output.Close()
	if serr != nil {
		return serr
	}
	return oerr
}

// Run processes every line of r, whatever its length. It stops early only if
// ctx is cancelled or r cannot be read.
func (ex *Executor) Run(ctx context.Context, r io.Reader) (Summary, error) {
	var sum Summary

	br := bufio.NewReader(r)
	lineNo := 0
	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return sum, fmt.Errorf("failed to read input: %w", readErr)
		}
		if raw == "" && readErr == io.EOF {
			break
		}
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		lineNo++
		res := ex.ProcessLine(lineNo, strings.TrimRight(raw, "\r\n"))

		sum.Lines++
		switch {
		case res.Skipped:
			sum.Skipped++
		case res.Success:
			sum.Succeeded++
		default:
			sum.Failed++
		}
		if readErr == io.EOF {
			break
		}
	}

	ex.log.Info("run finished",
		"lines", sum.Lines,
		"succeeded", sum.Succeeded,
		"failed", sum.Failed,
		"skipped", sum.Skipped,
	)
	return sum, nil
}

// ProcessLine parses and executes one line and records its outcome.
func (ex *Executor) ProcessLine(lineNo int, raw string) (res Result) {
	text := strings.TrimSpace(raw)
	res = Result{Line: lineNo, Text: text}

	defer func() {
		if r := recover(); r != nil {
			err := types.Internal(fmt.Errorf("panic: %v", r))
			res.Success = false
			res.Err = err
			res.Message = err.Error()
			ex.log.Error("line panicked", "line", lineNo, "text", text, "panic", r)
			ex.writeOutput(fmt.Sprintf("Line %d: Critical error - %s", lineNo, res.Message))
			ex.writeStatus(text, false)
		}
	}()

	stmt, err := parser.ParseLine(text)
	if err != nil {
		res.Err = err
		res.Message = "Invalid operation format: " + err.Error()
		logging.WithError(ex.log, err).Debug("parse failed", "line", lineNo, "text", text)
		ex.writeOutput(fmt.Sprintf("Line %d: Failed - %s", lineNo, res.Message))
		ex.writeStatus(text, false)
		return res
	}
	if _, ok := stmt.(*parser.EmptyStmt); ok {
		res.Skipped = true
		res.Success = true
		return res
	}

	ex.execute(stmt, &res)

	if res.Err != nil {
		res.Err = types.Internal(res.Err)
		res.Message = res.Err.Error()
		logging.WithError(ex.log, res.Err).Debug("line failed",
			"line", lineNo,
			"op", res.Op.String(),
		)
	} else {
		ex.log.Debug("line done", "line", lineNo, "op", res.Op.String(), "success", res.Success, "message", res.Message)
	}

	for _, row := range res.Rows {
		ex.writeOutput(row)
	}
	ex.writeStatus(text, res.Success)
	return res
}

func (ex *Executor) execute(stmt parser.Statement, res *Result) {
	switch s := stmt.(type) {
	case *parser.CreateTypeStmt:
		res.Op = types.OpCreateType
		ex.execCreateType(s, res)
	case *parser.CreateRecordStmt:
		res.Op = types.OpCreateRecord
		ex.execCreateRecord(s, res)
	case *parser.SearchRecordStmt:
		res.Op = types.OpSearchRecord
		ex.execSearchRecord(s, res)
	case *parser.DeleteRecordStmt:
		res.Op = types.OpDeleteRecord
		ex.execDeleteRecord(s, res)
	default:
		res.Err = fmt.Errorf("unsupported statement %T", stmt)
	}
}
