package parser

import "errors"

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrExpectedName     = errors.New("expected type name")
	ErrExpectedInt      = errors.New("expected integer")
	ErrExpectedValues   = errors.New("expected at least one value")
	ErrExpectedKey      = errors.New("expected key value")
	ErrUnpairedField    = errors.New("field name without a type")
	ErrUnexpectedTokens = errors.New("unexpected tokens at end of line")
)
