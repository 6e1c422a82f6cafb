package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// Menu lists keyboard shortcut hints, one per line.
type Menu struct {
	*tview.TextView
	theme *Theme
	hints []MenuHint
}

// NewMenu creates a new menu hint list.
func NewMenu(theme *Theme) *Menu {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	tv.SetBorderPadding(0, 0, 2, 0)

	m := &Menu{TextView: tv}
	m.Restyle(theme)
	return m
}

// Restyle switches the palette and redraws.
func (m *Menu) Restyle(theme *Theme) {
	m.theme = theme
	m.SetBackgroundColor(theme.BgColor)
	m.SetTextColor(theme.FgColor)
	m.Update(m.hints)
}

// Update renders hints.
func (m *Menu) Update(hints []MenuHint) {
	m.hints = hints
	m.Clear()
	kc := Tag(m.theme.MenuKeyColor)
	for _, h := range hints {
		_, _ = fmt.Fprintf(m, "[%s::b]<%s>[-:-:-] %s\n", kc, h.Key, tview.Escape(h.Description))
	}
}
