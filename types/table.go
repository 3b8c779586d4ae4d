package types

import (
	"fmt"
	"strings"
)

type FieldType uint8

const (
	FieldInvalid FieldType = iota
	FieldInt
	FieldString
)

const (
	// IntWidth is the on-disk width of every integer field.
	IntWidth = 8
	// DefaultStringWidth is the width given to string fields unless configured otherwise.
	DefaultStringWidth = 32
)

// Tag returns the lowercase token used for the type in the catalog file and
// on the command surface.
func (ft FieldType) Tag() string {
	switch ft {
	case FieldInt:
		return "int"
	case FieldString:
		return "str"
	default:
		return "invalid"
	}
}

func (ft FieldType) String() string {
	return strings.ToUpper(ft.Tag())
}

// ParseFieldType maps a type tag (case-insensitive) to its FieldType.
func ParseFieldType(tag string) (FieldType, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "int":
		return FieldInt, nil
	case "str":
		return FieldString, nil
	}
	return FieldInvalid, Errorf(ErrInvalidDefinition, "unsupported field type: %s", tag)
}

// FieldSpec is a field as supplied by a caller, before widths are assigned.
type FieldSpec struct {
	Name    string
	TypeTag string
}

// Field is one fixed-width column of a type.
type Field struct {
	Name  string
	Type  FieldType
	Width int
}

// TypeDefinition is the schema of a record type. PrimaryKey is 0-based.
type TypeDefinition struct {
	Name       string
	Fields     []Field
	PrimaryKey int
}

func (td TypeDefinition) KeyField() Field {
	return td.Fields[td.PrimaryKey]
}

// RecordWidth is the number of bytes a record of this type occupies,
// validity byte included.
func (td TypeDefinition) RecordWidth() int {
	width := 1
	for _, f := range td.Fields {
		width += f.Width
	}
	return width
}

func (td TypeDefinition) String() string {
	parts := make([]string, len(td.Fields))
	for i, f := range td.Fields {
		parts[i] = fmt.Sprintf("%s:%s(%d)", f.Name, f.Type.Tag(), f.Width)
	}
	return fmt.Sprintf("%s{pk=%s %s}", td.Name, td.KeyField().Name, strings.Join(parts, ","))
}

// Layout is a TypeDefinition with the byte offset of every field resolved.
type Layout struct {
	Def       TypeDefinition
	Offsets   []int
	KeyOffset int
}

func (l *Layout) KeyField() Field {
	return l.Def.KeyField()
}
