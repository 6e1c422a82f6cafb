package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// AccountData is what the header shows about the signed-in user.
type AccountData struct {
	Session     string
	Name        string
	Status      string
	StatusColor string
	Contacts    int
	Theme       string
	Language    string
}

// AccountInfo displays account metadata in the header.
type AccountInfo struct {
	*tview.TextView
	theme  *Theme
	data   *AccountData
	labels []string
}

// NewAccountInfo creates a new account info panel.
func NewAccountInfo(theme *Theme) *AccountInfo {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBorderPadding(0, 0, 1, 1)

	ai := &AccountInfo{
		TextView: tv,
		labels:   []string{"Session", "Name", "Status", "Contacts", "Theme", "Language"},
	}
	ai.Restyle(theme)
	return ai
}

// Restyle switches the palette and redraws.
func (ai *AccountInfo) Restyle(theme *Theme) {
	ai.theme = theme
	ai.SetBackgroundColor(theme.BgColor)
	ai.Update(ai.data)
}

// SetLabels replaces the row titles, in the order session, name, status,
// contacts, theme, language. Short lists are ignored.
func (ai *AccountInfo) SetLabels(labels ...string) {
	if len(labels) < 6 {
		return
	}
	ai.labels = labels
	ai.Update(ai.data)
}

// Update renders data.
func (ai *AccountInfo) Update(data *AccountData) {
	ai.data = data
	ai.Clear()
	if data == nil {
		return
	}
	labels := ai.labels

	fg := Tag(ai.theme.FgColor)
	val := Tag(ai.theme.AccentColor)
	dot := data.StatusColor
	if dot == "" {
		dot = "gray"
	}

	_, _ = fmt.Fprintf(ai,
		"[%s::b]%s:[-:-:-] [%s]%s[-]\n"+
			"[%s::b]%s:[-:-:-] [%s]%s[-]\n"+
			"[%s::b]%s:[-:-:-] [%s]●[-] %s\n"+
			"[%s::b]%s:[-:-:-] [%s]%d[-]\n"+
			"[%s::b]%s:[-:-:-] [%s]%s[-]\n"+
			"[%s::b]%s:[-:-:-] [%s]%s[-]",
		fg, labels[0], val, tview.Escape(data.Session),
		fg, labels[1], val, tview.Escape(data.Name),
		fg, labels[2], dot, tview.Escape(data.Status),
		fg, labels[3], val, data.Contacts,
		fg, labels[4], val, data.Theme,
		fg, labels[5], val, data.Language,
	)
}
