package cpu

import (
	"errors"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/translate"
)

var (
	// ErrStackOverflow is returned when CALL finds all stack slots in use.
	ErrStackOverflow = errors.New(translate.From("stack overflow"))
	// ErrStackUnderflow is returned when RET finds the stack empty.
	ErrStackUnderflow = errors.New(translate.From("stack underflow"))
)
