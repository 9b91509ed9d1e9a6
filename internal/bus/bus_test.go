package bus

import (
	"errors"
	"testing"
)

func TestBus_ReadWrite(t *testing.T) {
	b := New()

	b.Write(0x0200, 0x42)
	if got := b.Read(0x0200); got != 0x42 {
		t.Fatalf("read got %02x, want 42", got)
	}

	// addresses wrap at 12 bits
	b.Write(0x1205, 0x99)
	if got := b.Read(0x0205); got != 0x99 {
		t.Fatalf("wrapped write got %02x, want 99", got)
	}
	if got := b.Read(0xF205); got != 0x99 {
		t.Fatalf("wrapped read got %02x, want 99", got)
	}
}

func TestBus_Read16(t *testing.T) {
	b := New()
	b.Write(0x0300, 0xA2)
	b.Write(0x0301, 0x1E)
	if got := b.Read16(0x0300); got != 0xA21E {
		t.Fatalf("Read16 got %04x, want A21E", got)
	}

	// word at the last address wraps to address 0
	b.Write(0x0FFF, 0x12)
	b.Write(0x0000, 0x34)
	if got := b.Read16(0x0FFF); got != 0x1234 {
		t.Fatalf("Read16 at end got %04x, want 1234", got)
	}
}

func TestBus_Load(t *testing.T) {
	b := New()
	if err := b.Load(0x0200, []byte{1, 2, 3}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i, want := range []byte{1, 2, 3} {
		if got := b.Read(0x0200 + uint16(i)); got != want {
			t.Fatalf("mem[%#04x] got %d want %d", 0x0200+i, got, want)
		}
	}

	// exactly filling memory is fine
	if err := b.Load(0x0200, make([]byte, MemorySize-0x0200)); err != nil {
		t.Fatalf("Load full: %v", err)
	}
}

func TestBus_LoadOutOfRange(t *testing.T) {
	b := New()
	b.Write(0x0FFF, 0x77)
	err := b.Load(0x0200, make([]byte, MemorySize-0x0200+1))
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Load error got %v, want ErrOutOfRange", err)
	}
	if got := b.Read(0x0200); got != 0 {
		t.Fatalf("partial load wrote %02x at 0x200", got)
	}
	if got := b.Read(0x0FFF); got != 0x77 {
		t.Fatalf("partial load clobbered end of memory: %02x", got)
	}
}

func TestBus_SnapshotRestore(t *testing.T) {
	b := New()
	b.Write(0x0050, 0xF0)
	b.Write(0x0FFE, 0x0F)
	snap := b.Snapshot()

	b.Reset()
	if got := b.Read(0x0050); got != 0 {
		t.Fatalf("Reset left %02x at 0x50", got)
	}
	if err := b.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if b.Read(0x0050) != 0xF0 || b.Read(0x0FFE) != 0x0F {
		t.Fatalf("Restore mismatch")
	}
	if err := b.Restore(snap[:10]); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("short Restore error got %v", err)
	}
}
