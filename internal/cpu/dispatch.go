package cpu

// Op identifies one instruction of the CHIP-8 set.
type Op uint8

const (
	OpNOP     Op = iota // any word with no defined instruction
	OpCLS               // 00E0
	OpRET               // 00EE
	OpJP                // 1nnn
	OpCALL              // 2nnn
	OpSEImm             // 3xkk
	OpSNEImm            // 4xkk
	OpSEReg             // 5xy0
	OpLDImm             // 6xkk
	OpADDImm            // 7xkk
	OpLDReg             // 8xy0
	OpOR                // 8xy1
	OpAND               // 8xy2
	OpXOR               // 8xy3
	OpADDReg            // 8xy4
	OpSUB               // 8xy5
	OpSHR               // 8xy6
	OpSUBN              // 8xy7
	OpSHL               // 8xyE
	OpSNEReg            // 9xy0
	OpLDI               // Annn
	OpJPV0              // Bnnn
	OpRND               // Cxkk
	OpDRW               // Dxyn
	OpSKP               // Ex9E
	OpSKNP              // ExA1
	OpLDVxDT            // Fx07
	OpLDVxK             // Fx0A
	OpLDDTVx            // Fx15
	OpLDSTVx            // Fx18
	OpADDI              // Fx1E
	OpLDF               // Fx29
	OpLDB               // Fx33
	OpLDStore           // Fx55
	OpLDLoad            // Fx65

	opCount
)

var opNames = [opCount]string{
	OpNOP:     "NOP",
	OpCLS:     "CLS",
	OpRET:     "RET",
	OpJP:      "JP",
	OpCALL:    "CALL",
	OpSEImm:   "SE",
	OpSNEImm:  "SNE",
	OpSEReg:   "SE",
	OpLDImm:   "LD",
	OpADDImm:  "ADD",
	OpLDReg:   "LD",
	OpOR:      "OR",
	OpAND:     "AND",
	OpXOR:     "XOR",
	OpADDReg:  "ADD",
	OpSUB:     "SUB",
	OpSHR:     "SHR",
	OpSUBN:    "SUBN",
	OpSHL:     "SHL",
	OpSNEReg:  "SNE",
	OpLDI:     "LD",
	OpJPV0:    "JP",
	OpRND:     "RND",
	OpDRW:     "DRW",
	OpSKP:     "SKP",
	OpSKNP:    "SKNP",
	OpLDVxDT:  "LD",
	OpLDVxK:   "LD",
	OpLDDTVx:  "LD",
	OpLDSTVx:  "LD",
	OpADDI:    "ADD",
	OpLDF:     "LD",
	OpLDB:     "LD",
	OpLDStore: "LD",
	OpLDLoad:  "LD",
}

// String returns the instruction mnemonic.
func (o Op) String() string {
	if o >= opCount {
		return "???"
	}
	return opNames[o]
}

// NumOps is the number of distinct Op values, OpNOP included.
const NumOps = int(opCount)

// Instruction is a decoded instruction word.
type Instruction struct {
	Op   Op
	Word uint16
	X    byte   // bits 11-8
	Y    byte   // bits 7-4
	N    byte   // bits 3-0
	KK   byte   // bits 7-0
	NNN  uint16 // bits 11-0
}

// Decode resolves an instruction word. It never fails: words outside the
// instruction set decode to OpNOP.
func Decode(w uint16) Instruction {
	return Instruction{
		Op:   primary[w>>12](w),
		Word: w,
		X:    byte(w>>8) & 0xF,
		Y:    byte(w>>4) & 0xF,
		N:    byte(w) & 0xF,
		KK:   byte(w),
		NNN:  w & 0x0FFF,
	}
}

// primary is indexed by the top nibble. Single-instruction families return
// their Op directly, the others re-index a secondary table.
var primary = [16]func(w uint16) Op{
	0x0: family0,
	0x1: direct(OpJP),
	0x2: direct(OpCALL),
	0x3: direct(OpSEImm),
	0x4: direct(OpSNEImm),
	0x5: direct(OpSEReg),
	0x6: direct(OpLDImm),
	0x7: direct(OpADDImm),
	0x8: family8,
	0x9: direct(OpSNEReg),
	0xA: direct(OpLDI),
	0xB: direct(OpJPV0),
	0xC: direct(OpRND),
	0xD: direct(OpDRW),
	0xE: familyE,
	0xF: familyF,
}

// Secondary tables. Unlisted slots are zero, which is OpNOP.
var (
	table0 = [0xE + 1]Op{
		0x0: OpCLS,
		0xE: OpRET,
	}
	table8 = [0xE + 1]Op{
		0x0: OpLDReg,
		0x1: OpOR,
		0x2: OpAND,
		0x3: OpXOR,
		0x4: OpADDReg,
		0x5: OpSUB,
		0x6: OpSHR,
		0x7: OpSUBN,
		0xE: OpSHL,
	}
	tableE = [0xE + 1]Op{
		0x1: OpSKNP,
		0xE: OpSKP,
	}
	tableF = [0x65 + 1]Op{
		0x07: OpLDVxDT,
		0x0A: OpLDVxK,
		0x15: OpLDDTVx,
		0x18: OpLDSTVx,
		0x1E: OpADDI,
		0x29: OpLDF,
		0x33: OpLDB,
		0x55: OpLDStore,
		0x65: OpLDLoad,
	}
)

func direct(op Op) func(uint16) Op {
	return func(uint16) Op { return op }
}

// lookup returns table[i], or OpNOP past the end of the table.
func lookup(table []Op, i int) Op {
	if i >= len(table) {
		return OpNOP
	}
	return table[i]
}

// Only 00E0 and 00EE are defined in family 0. Other 0nnn words are machine
// code calls on the original hardware and run as no-ops here.
func family0(w uint16) Op {
	if w&0x0F00 != 0 || w&0x00F0 != 0x00E0 {
		return OpNOP
	}
	return lookup(table0[:], int(w&0xF))
}

func family8(w uint16) Op {
	return lookup(table8[:], int(w&0xF))
}

// ExA1 and Ex9E are told apart by the low nibble; the middle nibble must match.
func familyE(w uint16) Op {
	op := lookup(tableE[:], int(w&0xF))
	switch {
	case op == OpSKP && w&0xFF != 0x9E:
		return OpNOP
	case op == OpSKNP && w&0xFF != 0xA1:
		return OpNOP
	}
	return op
}

func familyF(w uint16) Op {
	return lookup(tableF[:], int(w&0xFF))
}

type handler func(c *CPU, in Instruction) error

// handlers is indexed by Op.
var handlers = [opCount]handler{
	OpNOP:     opNOP,
	OpCLS:     opCLS,
	OpRET:     opRET,
	OpJP:      opJP,
	OpCALL:    opCALL,
	OpSEImm:   opSEImm,
	OpSNEImm:  opSNEImm,
	OpSEReg:   opSEReg,
	OpLDImm:   opLDImm,
	OpADDImm:  opADDImm,
	OpLDReg:   opLDReg,
	OpOR:      opOR,
	OpAND:     opAND,
	OpXOR:     opXOR,
	OpADDReg:  opADDReg,
	OpSUB:     opSUB,
	OpSHR:     opSHR,
	OpSUBN:    opSUBN,
	OpSHL:     opSHL,
	OpSNEReg:  opSNEReg,
	OpLDI:     opLDI,
	OpJPV0:    opJPV0,
	OpRND:     opRND,
	OpDRW:     opDRW,
	OpSKP:     opSKP,
	OpSKNP:    opSKNP,
	OpLDVxDT:  opLDVxDT,
	OpLDVxK:   opLDVxK,
	OpLDDTVx:  opLDDTVx,
	OpLDSTVx:  opLDSTVx,
	OpADDI:    opADDI,
	OpLDF:     opLDF,
	OpLDB:     opLDB,
	OpLDStore: opLDStore,
	OpLDLoad:  opLDLoad,
}
