package bus

import (
	"errors"
	"fmt"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/translate"
)

const (
	// MemorySize is the size of the flat address space.
	MemorySize = 4096
	// AddrMask keeps every address inside [0, MemorySize).
	AddrMask = MemorySize - 1
)

// ErrOutOfRange is returned by Load when the data would run past the end of memory.
var ErrOutOfRange = errors.New(translate.From("load out of range"))

// Bus is the 4 KiB CHIP-8 memory. Addresses wrap at 12 bits, so no access
// can leave the address space.
type Bus struct {
	mem [MemorySize]byte
}

func New() *Bus {
	return &Bus{}
}

func (b *Bus) Read(addr uint16) byte {
	return b.mem[addr&AddrMask]
}

func (b *Bus) Write(addr uint16, value byte) {
	b.mem[addr&AddrMask] = value
}

// Read16 returns the big-endian word at addr and addr+1.
func (b *Bus) Read16(addr uint16) uint16 {
	return uint16(b.Read(addr))<<8 | uint16(b.Read(addr+1))
}

// Load copies data into memory starting at addr. Nothing is written if the
// copy would cross the end of memory.
func (b *Bus) Load(addr uint16, data []byte) error {
	if int(addr)+len(data) > MemorySize {
		return fmt.Errorf("%w: %d bytes at %#04x", ErrOutOfRange, len(data), addr)
	}
	copy(b.mem[addr:], data)
	return nil
}

// Reset zeroes all of memory.
func (b *Bus) Reset() {
	b.mem = [MemorySize]byte{}
}

// Snapshot returns a copy of memory for machine snapshots and tools.
func (b *Bus) Snapshot() []byte {
	out := make([]byte, MemorySize)
	copy(out, b.mem[:])
	return out
}

// Restore replaces memory with a snapshot taken by Snapshot.
func (b *Bus) Restore(data []byte) error {
	if len(data) != MemorySize {
		return fmt.Errorf("%w: snapshot is %d bytes", ErrOutOfRange, len(data))
	}
	copy(b.mem[:], data)
	return nil
}
