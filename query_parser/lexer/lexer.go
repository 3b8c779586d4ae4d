package lex

import (
	"strings"
)

// Lexer splits one command line into whitespace-separated words. Any run of
// non-blank bytes is a single word, so values may contain punctuation. A line
// whose first word starts with '#' is a single COMMENT token; later on the
// line '#' is ordinary text.
type Lexer struct {
	input   string
	pos     int
	readPos int
	ch      byte
	started bool
}

func New(input string) *Lexer {
	l := &Lexer{
		input:   input,
		pos:     0,
		readPos: 0,
		ch:      0,
	}
	l.readChar()
	return l
}

func (l *Lexer) NextToken() Token {
	l.skipWhiteSpaces()

	if l.atEnd() {
		return Token{Kind: END, Value: ""}
	}
	if l.ch == '#' && !l.started {
		l.started = true
		return Token{Kind: COMMENT, Value: l.readRest()}
	}

	l.started = true
	word := l.readWord()
	if isInteger(word) {
		return Token{Kind: INT, Value: word}
	}
	return Token{Kind: KeyIdentKind(word), Value: word}
}

// Tokens returns every token up to, but not including, END.
func (l *Lexer) Tokens() []Token {
	var toks []Token
	for tok := l.NextToken(); tok.Kind != END; tok = l.NextToken() {
		toks = append(toks, tok)
	}
	return toks
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

// atEnd reports whether the whole input has been consumed. NUL is an
// ordinary byte, not a terminator.
func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\v' || ch == '\f'
}

func (l *Lexer) skipWhiteSpaces() {
	for !l.atEnd() && isSpace(l.ch) {
		l.readChar()
	}
}

func (l *Lexer) readWord() string {
	start := l.pos
	for !l.atEnd() && !isSpace(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readRest() string {
	start := l.pos
	for !l.atEnd() {
		l.readChar()
	}
	return strings.TrimRight(l.input[start:l.pos], "\r\n")
}

// isInteger reports whether word is an optionally signed run of digits.
func isInteger(word string) bool {
	digits := strings.TrimLeft(word, "+-")
	if len(word)-len(digits) > 1 || digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

func KeyIdentKind(str string) TokenKind {
	switch strings.ToUpper(str) {
	case "CREATE":
		return CREATE
	case "SEARCH":
		return SEARCH
	case "DELETE":
		return DELETE
	case "TYPE":
		return TYPE
	case "RECORD":
		return RECORD
	default:
		return IDENT
	}
}
