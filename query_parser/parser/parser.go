package parser

import (
	lex "DuneArchive/query_parser/lexer"
	"fmt"
	"strconv"
)

type Parser struct {
	l         *lex.Lexer
	curToken  lex.Token
	peekToken lex.Token
}

func New(l *lex.Lexer) *Parser {
	p := &Parser{l: l}
	p.nextToken()
	p.nextToken()
	return p
}

// ParseLine parses one line of input.
func ParseLine(line string) (Statement, error) {
	return New(lex.New(line)).ParseStatement()
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) expect(kind lex.TokenKind) error {
	if p.curToken.Kind != kind {
		return fmt.Errorf("expected %s, got %s", kind, p.curToken)
	}
	return nil
}

// Entry point
func (p *Parser) ParseStatement() (Statement, error) {
	switch p.curToken.Kind {
	case lex.END, lex.COMMENT:
		return &EmptyStmt{}, nil
	case lex.CREATE:
		p.nextToken()
		switch p.curToken.Kind {
		case lex.TYPE:
			stmt, err := p.parseCreateType()
			if err != nil {
				return nil, err
			}
			return stmt, nil
		case lex.RECORD:
			stmt, err := p.parseCreateRecord()
			if err != nil {
				return nil, err
			}
			return stmt, nil
		}
		return nil, fmt.Errorf("%w: create %s", ErrUnknownCommand, p.curToken.Value)
	case lex.SEARCH:
		p.nextToken()
		if err := p.expect(lex.RECORD); err != nil {
			return nil, err
		}
		typeName, key, err := p.parseKeyCommand()
		if err != nil {
			return nil, err
		}
		return &SearchRecordStmt{TypeName: typeName, Key: key}, nil
	case lex.DELETE:
		p.nextToken()
		if err := p.expect(lex.RECORD); err != nil {
			return nil, err
		}
		typeName, key, err := p.parseKeyCommand()
		if err != nil {
			return nil, err
		}
		return &DeleteRecordStmt{TypeName: typeName, Key: key}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, p.curToken.Value)
}

/*


-------------------parser helpers-------------------



*/

// word consumes any non-END token as a plain word. Keywords are allowed
// here so that a type or value may be spelled like one.
func (p *Parser) word(missing error) (string, error) {
	if p.curToken.Kind == lex.END {
		return "", missing
	}
	w := p.curToken.Value
	p.nextToken()
	return w, nil
}

func (p *Parser) integer(what string) (int, error) {
	if p.curToken.Kind != lex.INT {
		return 0, fmt.Errorf("%w for %s, got %s", ErrExpectedInt, what, p.curToken)
	}
	n, err := strconv.Atoi(p.curToken.Value)
	if err != nil {
		return 0, fmt.Errorf("%w for %s: %s", ErrExpectedInt, what, p.curToken.Value)
	}
	p.nextToken()
	return n, nil
}

func (p *Parser) expectEnd() error {
	if p.curToken.Kind != lex.END {
		return fmt.Errorf("%w: %s", ErrUnexpectedTokens, p.curToken.Value)
	}
	return nil
}
