package executor

import (
	"DuneArchive/query_parser/parser"
	"fmt"
)

// execSearchRecord reports a search without matches as a failed line, the
// engine itself treats it as an empty result.
func (ex *Executor) execSearchRecord(stmt *parser.SearchRecordStmt, res *Result) {
	records, err := ex.engine.SearchRecords(stmt.TypeName, stmt.Key)
	if err != nil {
		res.Err = err
		return
	}
	if len(records) == 0 {
		res.Message = "No matching records found"
		return
	}

	res.Rows = make([]string, len(records))
	for i, rec := range records {
		res.Rows[i] = formatRecord(rec)
	}
	res.Success = true
	res.Message = fmt.Sprintf("Found %d records", len(records))
}
