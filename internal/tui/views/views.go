package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/tgclone/internal/tui/ui"
	"github.com/rivo/tview"
)

// Translator resolves display text. *i18n.Translator implements it.
type Translator interface {
	T(key string, args ...any) string
}

// Page names.
const (
	PageSignup     = "signup"
	PageChat       = "chat"
	PageAddContact = "add_contact"
	PageSettings   = "settings"
	PageProfile    = "edit_profile"
	PageHelp       = "help"
)

// centered wraps p in a grid that keeps it width x height in the middle of
// the screen.
func centered(p tview.Primitive, width, height int) *tview.Grid {
	return tview.NewGrid().
		SetColumns(0, width, 0).
		SetRows(0, height, 0).
		AddItem(p, 1, 1, 1, 1, 0, 0, true)
}

func styleInput(in *tview.InputField, theme *ui.Theme) {
	in.SetBackgroundColor(theme.BgColor)
	in.SetFieldBackgroundColor(theme.FieldBgColor)
	in.SetFieldTextColor(theme.FgColor)
	in.SetLabelColor(theme.FgColor)
	in.SetPlaceholderTextColor(theme.MutedColor)
}

func styleButton(b *tview.Button, theme *ui.Theme) {
	b.SetStyle(tcellStyle(theme.BgColor, theme.AccentColor))
	b.SetActivatedStyle(tcellStyle(theme.AccentColor, theme.FgColor))
}

func styleBox(b *tview.Box, theme *ui.Theme) {
	b.SetBackgroundColor(theme.BgColor)
	b.SetBorderColor(theme.BorderColor)
	b.SetTitleColor(theme.TitleColor)
}

func tcellStyle(fg, bg tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fg).Background(bg)
}
