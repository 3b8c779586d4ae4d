package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextToken(t *testing.T) {
	l := New("  create RECORD human Mua'Dib -42 +7 4x\t# not a comment\r\n")

	want := []Token{
		{Kind: CREATE, Value: "create"},
		{Kind: RECORD, Value: "RECORD"},
		{Kind: IDENT, Value: "human"},
		{Kind: IDENT, Value: "Mua'Dib"},
		{Kind: INT, Value: "-42"},
		{Kind: INT, Value: "+7"},
		{Kind: IDENT, Value: "4x"},
		{Kind: IDENT, Value: "#"},
		{Kind: IDENT, Value: "not"},
		{Kind: IDENT, Value: "a"},
		{Kind: IDENT, Value: "comment"},
	}
	assert.Equal(t, want, l.Tokens())
	assert.Equal(t, END, l.NextToken().Kind)
}

func TestNextToken_Comment(t *testing.T) {
	l := New("   # create type x 1 1 a int")
	tok := l.NextToken()
	assert.Equal(t, COMMENT, tok.Kind)
	assert.Equal(t, "# create type x 1 1 a int", tok.Value)
	assert.Equal(t, END, l.NextToken().Kind)
}

func TestIsInteger(t *testing.T) {
	for word, want := range map[string]bool{
		"0":    true,
		"-1":   true,
		"+12":  true,
		"":     false,
		"-":    false,
		"--1":  false,
		"1.5":  false,
		"1e3":  false,
		"12ab": false,
	} {
		assert.Equal(t, want, isInteger(word), word)
	}
}

func TestNextToken_NulIsPartOfWord(t *testing.T) {
	l := New("search record human Paul\x00Atreides \x00")

	want := []Token{
		{Kind: SEARCH, Value: "search"},
		{Kind: RECORD, Value: "record"},
		{Kind: IDENT, Value: "human"},
		{Kind: IDENT, Value: "Paul\x00Atreides"},
		{Kind: IDENT, Value: "\x00"},
	}
	assert.Equal(t, want, l.Tokens())
	assert.Equal(t, END, l.NextToken().Kind)
}

func TestNextToken_Empty(t *testing.T) {
	assert.Empty(t, New("").Tokens())
	assert.Empty(t, New(" \t ").Tokens())
}
