package cpu

import "testing"

func TestDecode_Families(t *testing.T) {
	tests := []struct {
		word uint16
		want Op
	}{
		{0x00E0, OpCLS},
		{0x00EE, OpRET},
		{0x0000, OpNOP},
		{0x0123, OpNOP},
		{0x01E0, OpNOP},
		{0x00E5, OpNOP},
		{0x1234, OpJP},
		{0x2234, OpCALL},
		{0x3A12, OpSEImm},
		{0x4A12, OpSNEImm},
		{0x5AB0, OpSEReg},
		{0x6A12, OpLDImm},
		{0x7A12, OpADDImm},
		{0x8AB0, OpLDReg},
		{0x8AB1, OpOR},
		{0x8AB2, OpAND},
		{0x8AB3, OpXOR},
		{0x8AB4, OpADDReg},
		{0x8AB5, OpSUB},
		{0x8AB6, OpSHR},
		{0x8AB7, OpSUBN},
		{0x8ABE, OpSHL},
		{0x8AB8, OpNOP},
		{0x8ABF, OpNOP},
		{0x9AB0, OpSNEReg},
		{0xA123, OpLDI},
		{0xB123, OpJPV0},
		{0xCA12, OpRND},
		{0xDAB5, OpDRW},
		{0xEA9E, OpSKP},
		{0xEAA1, OpSKNP},
		{0xEA9F, OpNOP},
		{0xEA1E, OpNOP},
		{0xEAB1, OpNOP},
		{0xFA07, OpLDVxDT},
		{0xFA0A, OpLDVxK},
		{0xFA15, OpLDDTVx},
		{0xFA18, OpLDSTVx},
		{0xFA1E, OpADDI},
		{0xFA29, OpLDF},
		{0xFA33, OpLDB},
		{0xFA55, OpLDStore},
		{0xFA65, OpLDLoad},
		{0xFA66, OpNOP},
		{0xFAFF, OpNOP},
		{0xFA00, OpNOP},
	}
	for _, tt := range tests {
		if got := Decode(tt.word).Op; got != tt.want {
			t.Fatalf("Decode(%#04x) got %v(%d) want %v(%d)", tt.word, got, got, tt.want, tt.want)
		}
	}
}

func TestDecode_Fields(t *testing.T) {
	in := Decode(0xD3A7)
	if in.X != 0x3 || in.Y != 0xA || in.N != 0x7 || in.KK != 0xA7 || in.NNN != 0x3A7 || in.Word != 0xD3A7 {
		t.Fatalf("fields got %+v", in)
	}
}

func TestDecode_EveryWordHasHandler(t *testing.T) {
	for w := 0; w <= 0xFFFF; w++ {
		op := Decode(uint16(w)).Op
		if op >= opCount || handlers[op] == nil {
			t.Fatalf("word %#04x decoded to %d without handler", w, op)
		}
	}
}

func TestDecode_EachOpReachable(t *testing.T) {
	seen := make(map[Op]bool)
	for w := 0; w <= 0xFFFF; w++ {
		seen[Decode(uint16(w)).Op] = true
	}
	if len(seen) != NumOps {
		t.Fatalf("reachable ops got %d want %d", len(seen), NumOps)
	}
}

func TestOp_String(t *testing.T) {
	if OpCLS.String() != "CLS" || OpSUBN.String() != "SUBN" || OpNOP.String() != "NOP" {
		t.Fatalf("mnemonics got %s %s %s", OpCLS, OpSUBN, OpNOP)
	}
	if Op(200).String() != "???" {
		t.Fatalf("out of range op got %q", Op(200).String())
	}
}
