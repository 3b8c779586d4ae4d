package parser

import (
	lex "DuneArchive/query_parser/lexer"
)

// create type <name> <fieldCount> <pk> <field> <type> [<field> <type>...]
//
// Only the shape of the line is checked here. Whether the count matches the
// pairs, the key index is in range, and the type tags are known is up to the
// catalog.
func (p *Parser) parseCreateType() (*CreateTypeStmt, error) {
	p.nextToken() // consume TYPE

	typeName, err := p.word(ErrExpectedName)
	if err != nil {
		return nil, err
	}
	fieldCount, err := p.integer("field count")
	if err != nil {
		return nil, err
	}
	pk, err := p.integer("primary key index")
	if err != nil {
		return nil, err
	}

	var fields []FieldDef
	for p.curToken.Kind != lex.END {
		name := p.curToken.Value
		p.nextToken()
		tag, err := p.word(ErrUnpairedField)
		if err != nil {
			return nil, err
		}
		fields = append(fields, FieldDef{Name: name, Type: tag})
	}

	return &CreateTypeStmt{
		TypeName:   typeName,
		FieldCount: fieldCount,
		PrimaryKey: pk,
		Fields:     fields,
	}, nil
}
