package lex

type TokenKind int

const (
	// identifier: type names, field names, string values
	IDENT TokenKind = iota

	// keywords
	CREATE
	SEARCH
	DELETE
	TYPE
	RECORD

	INT
	COMMENT
	END
)

type Token struct {
	Kind  TokenKind
	Value string
}

func (tk TokenKind) String() string {
	switch tk {
	case IDENT:
		return "IDENT"
	case CREATE:
		return "CREATE"
	case SEARCH:
		return "SEARCH"
	case DELETE:
		return "DELETE"
	case TYPE:
		return "TYPE"
	case RECORD:
		return "RECORD"
	case INT:
		return "INT"
	case COMMENT:
		return "COMMENT"
	case END:
		return "END"
	default:
		return "UNKNOWN"
	}
}

func (t Token) String() string {
	if t.Kind == END {
		return "end of line"
	}
	return t.Kind.String() + " " + t.Value
}
