package views

import (
	"fmt"

	"github.com/matheus3301/tgclone/internal/tui/ui"
	"github.com/rivo/tview"
)

// HelpSection is one titled group of bindings.
type HelpSection struct {
	Title string
	Hints []ui.MenuHint
}

// HelpView displays the key binding reference.
type HelpView struct {
	*tview.TextView
	theme    *ui.Theme
	tr       Translator
	sections func() []HelpSection
}

// NewHelpView creates a help view. sections is called on every redraw so
// the text follows the active language.
func NewHelpView(theme *ui.Theme, tr Translator, sections func() []HelpSection) *HelpView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)

	hv := &HelpView{
		TextView: tv,
		tr:       tr,
		sections: sections,
	}
	hv.Restyle(theme)
	return hv
}

// Name implements ui.Component.
func (hv *HelpView) Name() string { return PageHelp }

// Hints implements ui.Component.
func (hv *HelpView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: hv.tr.T("close")},
	}
}

// Restyle implements ui.Component.
func (hv *HelpView) Restyle(theme *ui.Theme) {
	hv.theme = theme
	styleBox(hv.Box, theme)
	hv.SetTextColor(theme.FgColor)
	hv.Relabel()
}

// Relabel implements ui.Component.
func (hv *HelpView) Relabel() {
	hv.SetTitle(" " + hv.tr.T("help") + " ")
	hv.Clear()
	if hv.sections == nil {
		return
	}
	kc := ui.Tag(hv.theme.MenuKeyColor)
	for _, s := range hv.sections() {
		_, _ = fmt.Fprintf(hv, "\n  [::b]%s[-:-:-]\n\n", tview.Escape(s.Title))
		for _, h := range s.Hints {
			_, _ = fmt.Fprintf(hv, "  [%s]%-10s[-] %s\n", kc, h.Key, tview.Escape(h.Description))
		}
	}
}
