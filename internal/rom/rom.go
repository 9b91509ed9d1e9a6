// Package rom loads CHIP-8 program images.
//
// An image is raw bytes with no header: it is copied verbatim to 0x200 and
// must fit in the memory above that address.
package rom

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"strings"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/translate"
)

const (
	// LoadAddress is where images are copied to.
	LoadAddress = 0x200
	// MaxSize is the largest image that fits between LoadAddress and the end of memory.
	MaxSize = 4096 - LoadAddress
)

// ErrTooLarge is returned for images longer than MaxSize.
var ErrTooLarge = errors.New(translate.From("program image too large"))

// Image is a validated program image.
type Image struct {
	Name  string // base file name without extension
	Path  string // empty for in-memory images
	Data  []byte
	Size  int
	CRC32 uint32
	SHA1  string // hex
}

// Read loads and validates the image at path.
func Read(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rom %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	img, err := Parse(data, name)
	if err != nil {
		return nil, fmt.Errorf("read rom %s: %w", path, err)
	}
	img.Path = path
	return img, nil
}

// Parse validates data as a program image. The data is copied. An empty
// image is valid and runs as a field of zero words.
func Parse(data []byte, name string) (*Image, error) {
	if len(data) > MaxSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), MaxSize)
	}
	sum := sha1.Sum(data)
	return &Image{
		Name:  name,
		Data:  append([]byte(nil), data...),
		Size:  len(data),
		CRC32: crc32.ChecksumIEEE(data),
		SHA1:  hex.EncodeToString(sum[:]),
	}, nil
}

// Words returns the number of whole instruction words in the image.
func (img *Image) Words() int { return img.Size / 2 }

func (img *Image) String() string {
	return fmt.Sprintf("%s (%d bytes, crc32 %08x)", img.Name, img.Size, img.CRC32)
}
