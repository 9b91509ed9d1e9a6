package ui

import "strings"

// DebugPrint glyphs are 6x16 pixels.
const (
	glyphW = 6
	lineH  = 14
)

// maxCharsForText is how many glyphs fit in width after a left margin.
func maxCharsForText(width, margin int) int {
	n := (width - 2*margin) / glyphW
	if n < 1 {
		n = 1
	}
	return n
}

// truncateText cuts s to max runes, marking the cut with "...".
func truncateText(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// wrapText breaks s on spaces into lines of at most max runes. Words
// longer than a line are split.
func wrapText(s string, max int) []string {
	if max < 1 {
		max = 1
	}
	var lines []string
	var cur []rune
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		for len(w) > max {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = nil
			}
			lines = append(lines, string(w[:max]))
			w = w[max:]
		}
		switch {
		case len(cur) == 0:
			cur = w
		case len(cur)+1+len(w) <= max:
			cur = append(append(cur, ' '), w...)
		default:
			lines = append(lines, string(cur))
			cur = w
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}
