// Package disasm renders CHIP-8 instruction words as assembler text.
//
// The output uses Cowgod's mnemonics with $-prefixed hex operands and is
// accepted by package asm, so a listing can be reassembled.
package disasm

import (
	"fmt"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/cpu"
)

// Format returns the assembler text for a decoded instruction. Words that
// decode to no instruction are shown as .word data.
func Format(in cpu.Instruction) string {
	x, y := in.X, in.Y
	switch in.Op {
	case cpu.OpCLS, cpu.OpRET:
		return in.Op.String()
	case cpu.OpJP, cpu.OpCALL:
		return fmt.Sprintf("%s $%03X", in.Op, in.NNN)
	case cpu.OpJPV0:
		return fmt.Sprintf("JP V0, $%03X", in.NNN)
	case cpu.OpSEImm, cpu.OpSNEImm, cpu.OpLDImm, cpu.OpADDImm, cpu.OpRND:
		return fmt.Sprintf("%s V%X, $%02X", in.Op, x, in.KK)
	case cpu.OpSEReg, cpu.OpSNEReg, cpu.OpLDReg, cpu.OpOR, cpu.OpAND, cpu.OpXOR,
		cpu.OpADDReg, cpu.OpSUB, cpu.OpSUBN:
		return fmt.Sprintf("%s V%X, V%X", in.Op, x, y)
	case cpu.OpSHR, cpu.OpSHL:
		// Vy is ignored when executing but kept so the word reassembles.
		if y != 0 {
			return fmt.Sprintf("%s V%X, V%X", in.Op, x, y)
		}
		return fmt.Sprintf("%s V%X", in.Op, x)
	case cpu.OpLDI:
		return fmt.Sprintf("LD I, $%03X", in.NNN)
	case cpu.OpDRW:
		return fmt.Sprintf("DRW V%X, V%X, $%X", x, y, in.N)
	case cpu.OpSKP, cpu.OpSKNP:
		return fmt.Sprintf("%s V%X", in.Op, x)
	case cpu.OpLDVxDT:
		return fmt.Sprintf("LD V%X, DT", x)
	case cpu.OpLDVxK:
		return fmt.Sprintf("LD V%X, K", x)
	case cpu.OpLDDTVx:
		return fmt.Sprintf("LD DT, V%X", x)
	case cpu.OpLDSTVx:
		return fmt.Sprintf("LD ST, V%X", x)
	case cpu.OpADDI:
		return fmt.Sprintf("ADD I, V%X", x)
	case cpu.OpLDF:
		return fmt.Sprintf("LD F, V%X", x)
	case cpu.OpLDB:
		return fmt.Sprintf("LD B, V%X", x)
	case cpu.OpLDStore:
		return fmt.Sprintf("LD [I], V%X", x)
	case cpu.OpLDLoad:
		return fmt.Sprintf("LD V%X, [I]", x)
	}
	return dataWord(in.Word)
}

// Word decodes and formats a single instruction word.
func Word(w uint16) string {
	return Format(cpu.Decode(w))
}

func dataWord(w uint16) string {
	return fmt.Sprintf(".word $%04X", w)
}

// canonical reports whether assembling Format(in) gives back in.Word.
// 5xyN and 9xyN execute for any N but only N == 0 is written by the assembler.
func canonical(in cpu.Instruction) bool {
	switch in.Op {
	case cpu.OpSEReg, cpu.OpSNEReg:
		return in.N == 0
	}
	return true
}
