package views

import (
	"fmt"

	"github.com/matheus3301/tgclone/internal/contacts"
	"github.com/matheus3301/tgclone/internal/tui/ui"
	"github.com/rivo/tview"
)

// ContactInfo is the main pane: details of the selected contact, or a
// placeholder when nothing is selected.
type ContactInfo struct {
	*tview.TextView
	theme   *ui.Theme
	tr      Translator
	contact *contacts.Contact
}

// NewContactInfo creates the main pane.
func NewContactInfo(theme *ui.Theme, tr Translator) *ContactInfo {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBorder(true)

	ci := &ContactInfo{TextView: tv, tr: tr}
	ci.Restyle(theme)
	return ci
}

// Restyle switches the palette and redraws.
func (ci *ContactInfo) Restyle(theme *ui.Theme) {
	ci.theme = theme
	styleBox(ci.Box, theme)
	ci.SetTextColor(theme.FgColor)
	ci.render()
}

// Relabel redraws in the active language.
func (ci *ContactInfo) Relabel() { ci.render() }

// Update shows c, or the placeholder when c is nil.
func (ci *ContactInfo) Update(c *contacts.Contact) {
	ci.contact = c
	ci.render()
}

func (ci *ContactInfo) render() {
	ci.Clear()
	c := ci.contact
	if c == nil {
		ci.SetTitle("")
		ci.SetTextAlign(tview.AlignCenter)
		_, _ = fmt.Fprintf(ci, "\n\n\n[%s]%s[-]", ui.Tag(ci.theme.MutedColor), tview.Escape(ci.tr.T("select_chat")))
		return
	}

	ci.SetTextAlign(tview.AlignLeft)
	ci.SetTitle(" " + cleanText(c.Name) + " ")

	label := ui.Tag(ci.theme.MutedColor)
	value := ui.Tag(ci.theme.FgColor)
	presence := cleanText(c.LastSeen)
	if c.Status == contacts.StatusOnline {
		presence = ci.tr.T("online")
	}

	_, _ = fmt.Fprintf(ci,
		"\n [%s::b]%s[-:-:-]\n"+
			" [%s]%s:[-] [%s]●[-] [%s]%s[-]\n"+
			" [%s]%s[-]\n"+
			" [%s]%s[-]",
		value, cleanText(c.Name),
		label, tview.Escape(ci.tr.T("status")), c.Status.Color(), value, tview.Escape(ci.tr.T(c.Status.LabelKey())),
		label, presence,
		label, tview.Escape(c.ID),
	)
}
