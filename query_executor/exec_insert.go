package executor

import (
	"DuneArchive/query_parser/parser"
	"fmt"
)

func (ex *Executor) execCreateRecord(stmt *parser.CreateRecordStmt, res *Result) {
	values := make([]any, len(stmt.Values))
	for i, v := range stmt.Values {
		values[i] = v
	}

	rid, err := ex.engine.Insert(stmt.TypeName, values)
	if err != nil {
		res.Err = err
		return
	}
	res.Success = true
	res.Message = fmt.Sprintf("Created record in type '%s' at %s", stmt.TypeName, rid)
}
