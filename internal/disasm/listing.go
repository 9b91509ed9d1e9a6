package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/cpu"
)

// Line is one entry of a listing.
type Line struct {
	Addr uint16
	Word uint16 // the data byte for a trailing odd byte
	Size int    // 2, or 1 for a trailing odd byte
	Text string
}

func (l Line) String() string {
	if l.Size == 1 {
		return fmt.Sprintf("%03X: %02X    %s", l.Addr, l.Word, l.Text)
	}
	return fmt.Sprintf("%03X: %04X  %s", l.Addr, l.Word, l.Text)
}

// Listing disassembles data as consecutive words starting at origin. Every
// line reassembles to the bytes it came from.
func Listing(data []byte, origin uint16) []Line {
	lines := make([]Line, 0, len(data)/2+1)
	addr := origin
	for i := 0; i+1 < len(data); i += 2 {
		w := uint16(data[i])<<8 | uint16(data[i+1])
		in := cpu.Decode(w)
		text := Format(in)
		if !canonical(in) {
			text = dataWord(w)
		}
		lines = append(lines, Line{Addr: addr, Word: w, Size: 2, Text: text})
		addr += 2
	}
	if len(data)%2 == 1 {
		b := data[len(data)-1]
		lines = append(lines, Line{Addr: addr, Word: uint16(b), Size: 1, Text: fmt.Sprintf(".byte $%02X", b)})
	}
	return lines
}

// Source joins the listing text into assembler input.
func Source(lines []Line) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Write prints lines with their address and raw bytes.
func Write(w io.Writer, lines []Line) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l.String()); err != nil {
			return err
		}
	}
	return nil
}
