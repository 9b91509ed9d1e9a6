package asm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assemble(t *testing.T, lines ...string) *Program {
	t.Helper()
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	return prog
}

func words(data []byte) []uint16 {
	out := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		out = append(out, uint16(data[i])<<8|uint16(data[i+1]))
	}
	return out
}

func TestAssembler_Empty(t *testing.T) {
	prog := assemble(t, "")
	assert.Equal(t, uint16(Origin), prog.Origin)
	assert.Empty(t, prog.Bytes)
	assert.Empty(t, prog.Lines)
}

func TestAssembler_AllInstructions(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		src  string
		want uint16
	}{
		{"CLS", 0x00E0},
		{"RET", 0x00EE},
		{"SYS $123", 0x0123},
		{"JP $345", 0x1345},
		{"JP V0, $345", 0xB345},
		{"CALL $345", 0x2345},
		{"SE V1, $42", 0x3142},
		{"SE V1, V2", 0x5120},
		{"SNE V1, 66", 0x4142},
		{"SNE VA, VB", 0x9AB0},
		{"LD V1, 0x42", 0x6142},
		{"LD V1, V2", 0x8120},
		{"LD I, $FFF", 0xAFFF},
		{"LD V3, DT", 0xF307},
		{"LD V3, K", 0xF30A},
		{"LD DT, V3", 0xF315},
		{"LD ST, V3", 0xF318},
		{"LD F, V3", 0xF329},
		{"LD B, V3", 0xF333},
		{"LD [I], V3", 0xF355},
		{"LD V3, [I]", 0xF365},
		{"ADD V1, 0b101", 0x7105},
		{"ADD V1, V2", 0x8124},
		{"ADD I, V3", 0xF31E},
		{"OR V1, V2", 0x8121},
		{"AND V1, V2", 0x8122},
		{"XOR V1, V2", 0x8123},
		{"SUB V1, V2", 0x8125},
		{"SUBN V1, V2", 0x8127},
		{"SHR V1", 0x8106},
		{"SHR V1, V2", 0x8126},
		{"SHL V1", 0x810E},
		{"RND V1, $FF", 0xC1FF},
		{"DRW V1, V2, 5", 0xD125},
		{"SKP VE", 0xEE9E},
		{"SKNP VE", 0xEEA1},
		{"ld v1, 'A'", 0x6141},
	}
	for _, tt := range tests {
		prog := assemble(t, tt.src)
		if assert.Len(prog.Bytes, 2, tt.src) {
			assert.Equal(tt.want, words(prog.Bytes)[0], "%s", tt.src)
		}
	}
}

func TestAssembler_LabelsAndForwardReferences(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		"start:  CALL sub     ; forward",
		"        JP start",
		"sub:    LD V0, 1",
		"        RET",
	)
	assert.Equal([]uint16{0x2204, 0x1200, 0x6001, 0x00EE}, words(prog.Bytes))
	assert.Equal(uint16(0x200), prog.Labels["start"])
	assert.Equal(uint16(0x204), prog.Labels["sub"])
	assert.Len(prog.Lines, 4)
	assert.Equal(3, prog.Lines[2].LineNo)
	assert.Equal(uint16(0x204), prog.Lines[2].Addr)
}

func TestAssembler_Directives(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t,
		".equ SPEED 3",
		"        LD V1, SPEED",
		"        LD I, sprite",
		"        .org $208",
		"sprite: .byte $F0, 0x90, ';', ','",
		"        .word $1234",
	)
	assert.Equal([]byte{
		0x61, 0x03,
		0xA2, 0x08,
		0x00, 0x00, 0x00, 0x00,
		0xF0, 0x90, ';', ',',
		0x12, 0x34,
	}, prog.Bytes)
}

func TestAssembler_Expressions(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("LIVES", 3)
	prog, err := asm.Parse(strings.NewReader(strings.Join([]string{
		".equ ROW $(LIVES * 2)",
		"        LD V1, $(ROW + 1)",
		"        LD I, $(FONT + 5 * 0xA)",
		"        JP $(end - 2)",
		"end:",
	}, "\n")))
	require.NoError(t, err)
	assert.Equal([]uint16{0x6107, 0xA082, 0x1204}, words(prog.Bytes))
}

func TestAssembler_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
		line int
	}{
		{"unknown mnemonic", "CLS\nFOO V1", ErrInstructionInvalid, 2},
		{"bad operands", "LD V1", ErrOperandsInvalid, 1},
		{"byte range", "LD V1, 256", ErrRange, 1},
		{"address range", "JP $1000", ErrRange, 1},
		{"nibble range", "DRW V0, V1, 16", ErrRange, 1},
		{"jp base", "JP V1, $200", ErrRegisterInvalid, 1},
		{"duplicate label", "a: CLS\na: CLS", ErrLabelDuplicate, 2},
		{"duplicate equ", ".equ A 1\n.equ A 2", ErrEquateDuplicate, 2},
		{"equ syntax", ".equ A", ErrEquateSyntax, 1},
		{"org backwards", "CLS\n.org $200", ErrOrgBackwards, 2},
		{"overflow", ".org $FFF\nCLS", ErrOverflow, 2},
		{"unbalanced", "LD V1, $(1", ErrSyntax, 1},
		{"label named like a keyword", "CLS\nB: JP B", ErrLabelInvalid, 2},
		{"label named like a register", "vA: CLS", ErrLabelInvalid, 1},
		{"equ named like a keyword", ".equ DT 3", ErrLabelInvalid, 1},
		{"equ named like a register", "CLS\n.equ VF 1", ErrLabelInvalid, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asm := &Assembler{}
			_, err := asm.Parse(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			var le *ErrLine
			require.True(t, errors.As(err, &le))
			assert.Equal(t, tt.line, le.LineNo)
		})
	}
}

func TestAssembler_MissingLabel(t *testing.T) {
	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("JP nowhere"))
	var missing ErrLabelMissing
	require.True(t, errors.As(err, &missing), "got %v", err)
	assert.Equal(t, ErrLabelMissing("nowhere"), missing)
}

func TestAssembler_BadExpression(t *testing.T) {
	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader(`LD V1, $("x")`))
	var bad ErrParseExpression
	require.True(t, errors.As(err, &bad), "got %v", err)
}
