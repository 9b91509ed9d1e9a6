package asm

import (
	"errors"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/translate"
)

var f = translate.From

var (
	ErrSyntax             = errors.New(f("syntax error"))
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelInvalid       = errors.New(f("label invalid"))
	ErrOrgBackwards       = errors.New(f(".org moves backwards"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrOperandsInvalid    = errors.New(f("operands invalid"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrRange              = errors.New(f("value out of range"))
	ErrOverflow           = errors.New(f("program exceeds memory"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrLine attaches the source position to an assembler error.
type ErrLine struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrLine) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrLine) Unwrap() error {
	return err.Err
}
