package parser

import (
	lex "DuneArchive/query_parser/lexer"
)

// create record <name> <value>...
func (p *Parser) parseCreateRecord() (*CreateRecordStmt, error) {
	p.nextToken() // consume RECORD

	typeName, err := p.word(ErrExpectedName)
	if err != nil {
		return nil, err
	}

	values := []string{}
	for p.curToken.Kind != lex.END {
		values = append(values, p.curToken.Value)
		p.nextToken()
	}
	if len(values) == 0 {
		return nil, ErrExpectedValues
	}

	return &CreateRecordStmt{TypeName: typeName, Values: values}, nil
}

// <name> <key> after "search record" / "delete record"
func (p *Parser) parseKeyCommand() (string, string, error) {
	p.nextToken() // consume RECORD

	typeName, err := p.word(ErrExpectedName)
	if err != nil {
		return "", "", err
	}
	key, err := p.word(ErrExpectedKey)
	if err != nil {
		return "", "", err
	}
	if err := p.expectEnd(); err != nil {
		return "", "", err
	}
	return typeName, key, nil
}
