package parser

// Statement is a generic interface for all statements
type Statement interface{}

// EmptyStmt is a blank or comment-only line; it is skipped, not executed.
type EmptyStmt struct{}

// create type <name> <fieldCount> <pk> <field> <type> ...
type CreateTypeStmt struct {
	TypeName   string
	FieldCount int
	PrimaryKey int // 1-based, as written
	Fields     []FieldDef
}

type FieldDef struct {
	Name string
	Type string
}

// create record <name> <value>...
type CreateRecordStmt struct {
	TypeName string
	Values   []string
}

// search record <name> <key>
type SearchRecordStmt struct {
	TypeName string
	Key      string
}

// delete record <name> <key>
type DeleteRecordStmt struct {
	TypeName string
	Key      string
}
