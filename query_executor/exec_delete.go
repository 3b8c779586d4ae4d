package executor

import (
	"DuneArchive/query_parser/parser"
	"fmt"
)

func (ex *Executor) execDeleteRecord(stmt *parser.DeleteRecordStmt, res *Result) {
	deleted, err := ex.engine.DeleteByKey(stmt.TypeName, stmt.Key)
	if err != nil {
		res.Err = err
		return
	}
	if !deleted {
		res.Message = "No matching record found"
		return
	}
	res.Success = true
	res.Message = fmt.Sprintf("Deleted record from type '%s'", stmt.TypeName)
}
