package asm

import (
	"fmt"
	"strings"
)

// Operand kinds used in instruction signatures.
const (
	kindV     = "V"
	kindValue = "n"
)

// keywords are the fixed operand names besides registers.
var keywords = map[string]bool{
	"I": true, "[I]": true, "DT": true, "ST": true, "K": true, "F": true, "B": true,
}

// operandKind classifies one operand as a register, a keyword or a value.
func operandKind(tok string) string {
	u := strings.ToUpper(tok)
	if len(u) == 2 && u[0] == 'V' && strings.IndexByte("0123456789ABCDEF", u[1]) >= 0 {
		return kindV
	}
	if keywords[u] {
		return u
	}
	return kindValue
}

// operands evaluates the operands of one instruction, keeping the first error.
type operands struct {
	asm     *Assembler
	symbols map[string]int
	args    []string
	err     error
}

func (o *operands) fail(err error) uint16 {
	if o.err == nil {
		o.err = err
	}
	return 0
}

func (o *operands) reg(i int) uint16 {
	u := strings.ToUpper(o.args[i])
	return uint16(strings.IndexByte("0123456789ABCDEF", u[1]))
}

func (o *operands) x(i int) uint16 { return o.reg(i) << 8 }
func (o *operands) y(i int) uint16 { return o.reg(i) << 4 }

func (o *operands) imm(i int, limit int) uint16 {
	v, err := o.asm.ranged(o.args[i], o.symbols, limit)
	if err != nil {
		return o.fail(err)
	}
	return uint16(v)
}

func (o *operands) kk(i int) uint16     { return o.imm(i, 0xFF) }
func (o *operands) nnn(i int) uint16    { return o.imm(i, 0xFFF) }
func (o *operands) nibble(i int) uint16 { return o.imm(i, 0xF) }

// form is one accepted operand signature of a mnemonic.
type form struct {
	sig   string
	build func(o *operands) uint16
}

var forms = map[string][]form{
	"CLS": {{"", func(*operands) uint16 { return 0x00E0 }}},
	"RET": {{"", func(*operands) uint16 { return 0x00EE }}},
	"SYS": {{"n", func(o *operands) uint16 { return o.nnn(0) }}},
	"JP": {
		{"n", func(o *operands) uint16 { return 0x1000 | o.nnn(0) }},
		{"V,n", func(o *operands) uint16 {
			if o.reg(0) != 0 {
				return o.fail(fmt.Errorf("%w: JP base must be V0", ErrRegisterInvalid))
			}
			return 0xB000 | o.nnn(1)
		}},
	},
	"CALL": {{"n", func(o *operands) uint16 { return 0x2000 | o.nnn(0) }}},
	"SE": {
		{"V,n", func(o *operands) uint16 { return 0x3000 | o.x(0) | o.kk(1) }},
		{"V,V", func(o *operands) uint16 { return 0x5000 | o.x(0) | o.y(1) }},
	},
	"SNE": {
		{"V,n", func(o *operands) uint16 { return 0x4000 | o.x(0) | o.kk(1) }},
		{"V,V", func(o *operands) uint16 { return 0x9000 | o.x(0) | o.y(1) }},
	},
	"LD": {
		{"V,n", func(o *operands) uint16 { return 0x6000 | o.x(0) | o.kk(1) }},
		{"V,V", func(o *operands) uint16 { return 0x8000 | o.x(0) | o.y(1) }},
		{"I,n", func(o *operands) uint16 { return 0xA000 | o.nnn(1) }},
		{"V,DT", func(o *operands) uint16 { return 0xF007 | o.x(0) }},
		{"V,K", func(o *operands) uint16 { return 0xF00A | o.x(0) }},
		{"DT,V", func(o *operands) uint16 { return 0xF015 | o.x(1) }},
		{"ST,V", func(o *operands) uint16 { return 0xF018 | o.x(1) }},
		{"F,V", func(o *operands) uint16 { return 0xF029 | o.x(1) }},
		{"B,V", func(o *operands) uint16 { return 0xF033 | o.x(1) }},
		{"[I],V", func(o *operands) uint16 { return 0xF055 | o.x(1) }},
		{"V,[I]", func(o *operands) uint16 { return 0xF065 | o.x(0) }},
	},
	"ADD": {
		{"V,n", func(o *operands) uint16 { return 0x7000 | o.x(0) | o.kk(1) }},
		{"V,V", func(o *operands) uint16 { return 0x8004 | o.x(0) | o.y(1) }},
		{"I,V", func(o *operands) uint16 { return 0xF01E | o.x(1) }},
	},
	"OR":   {{"V,V", func(o *operands) uint16 { return 0x8001 | o.x(0) | o.y(1) }}},
	"AND":  {{"V,V", func(o *operands) uint16 { return 0x8002 | o.x(0) | o.y(1) }}},
	"XOR":  {{"V,V", func(o *operands) uint16 { return 0x8003 | o.x(0) | o.y(1) }}},
	"SUB":  {{"V,V", func(o *operands) uint16 { return 0x8005 | o.x(0) | o.y(1) }}},
	"SUBN": {{"V,V", func(o *operands) uint16 { return 0x8007 | o.x(0) | o.y(1) }}},
	"SHR": {
		{"V", func(o *operands) uint16 { return 0x8006 | o.x(0) }},
		{"V,V", func(o *operands) uint16 { return 0x8006 | o.x(0) | o.y(1) }},
	},
	"SHL": {
		{"V", func(o *operands) uint16 { return 0x800E | o.x(0) }},
		{"V,V", func(o *operands) uint16 { return 0x800E | o.x(0) | o.y(1) }},
	},
	"RND":  {{"V,n", func(o *operands) uint16 { return 0xC000 | o.x(0) | o.kk(1) }}},
	"DRW":  {{"V,V,n", func(o *operands) uint16 { return 0xD000 | o.x(0) | o.y(1) | o.nibble(2) }}},
	"SKP":  {{"V", func(o *operands) uint16 { return 0xE09E | o.x(0) }}},
	"SKNP": {{"V", func(o *operands) uint16 { return 0xE0A1 | o.x(0) }}},
}

// encode assembles one instruction.
func (asm *Assembler) encode(op string, args []string, symbols map[string]int) (uint16, error) {
	candidates, ok := forms[op]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrInstructionInvalid, op)
	}

	kinds := make([]string, len(args))
	for i, arg := range args {
		kinds[i] = operandKind(arg)
	}
	sig := strings.Join(kinds, ",")

	for _, fm := range candidates {
		if fm.sig != sig {
			continue
		}
		o := &operands{asm: asm, symbols: symbols, args: args}
		w := fm.build(o)
		if o.err != nil {
			return 0, o.err
		}
		return w, nil
	}
	return 0, fmt.Errorf("%w: %s %s", ErrOperandsInvalid, op, strings.Join(args, ", "))
}
