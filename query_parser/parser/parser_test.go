package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine_Commands(t *testing.T) {
	tests := []struct {
		line string
		want Statement
	}{
		{"", &EmptyStmt{}},
		{"   ", &EmptyStmt{}},
		{"# comment", &EmptyStmt{}},
		{
			"create type human 3 1 name str age int city str",
			&CreateTypeStmt{
				TypeName:   "human",
				FieldCount: 3,
				PrimaryKey: 1,
				Fields: []FieldDef{
					{Name: "name", Type: "str"},
					{Name: "age", Type: "int"},
					{Name: "city", Type: "str"},
				},
			},
		},
		{
			"CREATE TYPE worm 1 1 id int",
			&CreateTypeStmt{TypeName: "worm", FieldCount: 1, PrimaryKey: 1, Fields: []FieldDef{{Name: "id", Type: "int"}}},
		},
		{
			"create record human Paul 15 Caladan",
			&CreateRecordStmt{TypeName: "human", Values: []string{"Paul", "15", "Caladan"}},
		},
		{"search record human Paul", &SearchRecordStmt{TypeName: "human", Key: "Paul"}},
		{"delete record worm -3", &DeleteRecordStmt{TypeName: "worm", Key: "-3"}},
		{"search record human record", &SearchRecordStmt{TypeName: "human", Key: "record"}},
		{"search record human Paul\x00Atreides", &SearchRecordStmt{TypeName: "human", Key: "Paul\x00Atreides"}},
		{"create record human Paul\x00 15 Caladan", &CreateRecordStmt{TypeName: "human", Values: []string{"Paul\x00", "15", "Caladan"}}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			stmt, err := ParseLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stmt)
		})
	}
}

func TestParseLine_Errors(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"select * from human", ErrUnknownCommand},
		{"create table human", ErrUnknownCommand},
		{"create", ErrUnknownCommand},
		{"create type", ErrExpectedName},
		{"create type human x 1 a int", ErrExpectedInt},
		{"create type human 1 one a int", ErrExpectedInt},
		{"create type human 2 1 a int b", ErrUnpairedField},
		{"create record human", ErrExpectedValues},
		{"create record", ErrExpectedName},
		{"search record human", ErrExpectedKey},
		{"delete record", ErrExpectedName},
		{"search record human a b", ErrUnexpectedTokens},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			stmt, err := ParseLine(tt.line)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, stmt)
		})
	}
}

func TestParseLine_MissingRecordKeyword(t *testing.T) {
	_, err := ParseLine("search human Paul")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected RECORD")
}
