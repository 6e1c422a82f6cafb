package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// Logo displays a compact ASCII art logo with a caption underneath.
type Logo struct {
	*tview.TextView
	theme   *Theme
	caption string
}

// NewLogo creates a new logo component.
func NewLogo(theme *Theme, caption string) *Logo {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	l := &Logo{TextView: tv, caption: caption}
	l.Restyle(theme)
	return l
}

// Restyle switches the palette and redraws.
func (l *Logo) Restyle(theme *Theme) {
	l.theme = theme
	l.SetBackgroundColor(theme.BgColor)
	l.render()
}

// SetCaption replaces the line under the art.
func (l *Logo) SetCaption(caption string) {
	l.caption = caption
	l.render()
}

func (l *Logo) render() {
	l.Clear()
	accent := Tag(l.theme.AccentColor)
	fg := Tag(l.theme.FgColor)

	_, _ = fmt.Fprintf(l,
		"[%s::b]╔╦╗╔═╗[-:-:-]\n"+
			"[%s::b] ║ ║ ╦[-:-:-]\n"+
			"[%s::b] ╩ ╚═╝[-:-:-]\n"+
			"[%s]%s[-:-:-]",
		accent, accent, accent, fg, tview.Escape(l.caption),
	)
}
