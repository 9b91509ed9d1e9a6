package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// KeyMap assigns a keyboard key to each hex keypad digit.
type KeyMap [16]ebiten.Key

// The COSMAC VIP keypad laid over the left side of a QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var defaultKeyMap = KeyMap{
	0x1: ebiten.Key1, 0x2: ebiten.Key2, 0x3: ebiten.Key3, 0xC: ebiten.Key4,
	0x4: ebiten.KeyQ, 0x5: ebiten.KeyW, 0x6: ebiten.KeyE, 0xD: ebiten.KeyR,
	0x7: ebiten.KeyA, 0x8: ebiten.KeyS, 0x9: ebiten.KeyD, 0xE: ebiten.KeyF,
	0xA: ebiten.KeyZ, 0x0: ebiten.KeyX, 0xB: ebiten.KeyC, 0xF: ebiten.KeyV,
}

// DefaultKeyMap returns the COSMAC layout.
func DefaultKeyMap() KeyMap { return defaultKeyMap }

// DefaultKeyNames returns the default layout in config file form.
func DefaultKeyNames() map[string]string {
	names := make(map[string]string, 16)
	for digit, k := range defaultKeyMap {
		names[fmt.Sprintf("%X", digit)] = keyName(k)
	}
	return names
}

var keysByName = func() map[string]ebiten.Key {
	m := make(map[string]ebiten.Key)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		name := strings.ToLower(k.String())
		m[name] = k
		if d, ok := strings.CutPrefix(name, "digit"); ok {
			m[d] = k
		}
	}
	return m
}()

// ParseKey resolves a key name such as "Q", "1", "Digit1" or "ArrowUp".
func ParseKey(name string) (ebiten.Key, error) {
	k, ok := keysByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown key %q", name)
	}
	return k, nil
}

func keyName(k ebiten.Key) string {
	return strings.TrimPrefix(k.String(), "Digit")
}

// ParseKeyMap builds a KeyMap from config entries. Digits missing from
// names keep their default key.
func ParseKeyMap(names map[string]string) (KeyMap, error) {
	km := defaultKeyMap
	for digit, name := range names {
		d, err := strconv.ParseUint(digit, 16, 8)
		if err != nil || d > 0xF {
			return km, fmt.Errorf("keypad digit %q is not 0-F", digit)
		}
		k, err := ParseKey(name)
		if err != nil {
			return km, err
		}
		km[d] = k
	}
	return km, nil
}

// Pressed reads the keyboard into keypad form.
func (km KeyMap) Pressed() (keys [16]bool) {
	for digit, k := range km {
		keys[digit] = ebiten.IsKeyPressed(k)
	}
	return keys
}

// Lines describes the mapping for the key binding screen.
func (km KeyMap) Lines() []string {
	lines := make([]string, 0, 16)
	for digit, k := range km {
		lines = append(lines, fmt.Sprintf("%X: %s", digit, keyName(k)))
	}
	return lines
}
