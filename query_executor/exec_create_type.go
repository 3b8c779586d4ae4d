package executor

import (
	"DuneArchive/query_parser/parser"
	"DuneArchive/types"
	"fmt"
)

func (ex *Executor) execCreateType(stmt *parser.CreateTypeStmt, res *Result) {
	specs := make([]types.FieldSpec, len(stmt.Fields))
	for i, f := range stmt.Fields {
		specs[i] = types.FieldSpec{Name: f.Name, TypeTag: f.Type}
	}

	def, err := ex.engine.CreateType(stmt.TypeName, stmt.FieldCount, stmt.PrimaryKey, specs)
	if err != nil {
		res.Err = err
		return
	}
	res.Success = true
	res.Message = fmt.Sprintf("Created type '%s'", def.Name)
}
