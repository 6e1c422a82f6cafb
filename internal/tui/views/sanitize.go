package views

import (
	"strings"

	"github.com/rivo/tview"
)

// cleanText drops codepoints tcell renders badly and escapes tview colour
// tags, so names coming from the directory are shown verbatim.
func cleanText(s string) string {
	return tview.Escape(strings.Map(func(r rune) rune {
		if dropRune(r) {
			return -1
		}
		return r
	}, s))
}

// dropRune reports whether r breaks cell width accounting: skin tone
// modifiers, the zero width joiner and variation selectors.
func dropRune(r rune) bool {
	switch {
	case r >= 0x1F3FB && r <= 0x1F3FF:
		return true
	case r == 0x200D:
		return true
	case r >= 0xFE00 && r <= 0xFE0F:
		return true
	case r >= 0xE0100 && r <= 0xE01EF:
		return true
	}
	return false
}
