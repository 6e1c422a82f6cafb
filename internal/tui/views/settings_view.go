package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/tgclone/internal/prefs"
	"github.com/matheus3301/tgclone/internal/tui/ui"
	"github.com/rivo/tview"
)

// languageNames are shown in their own language, so they are not
// translated.
var languageNames = map[prefs.Language]string{
	prefs.English: "English",
	prefs.French:  "Français",
	prefs.Spanish: "Español",
	prefs.German:  "Deutsch",
	prefs.Russian: "Русский",
	prefs.Amharic: "አማርኛ",
}

var themeKeys = map[prefs.Theme]string{
	prefs.Light: "light_mode",
	prefs.Dark:  "dark_mode",
	prefs.Black: "black_mode",
}

// SettingsView is the appearance and language panel.
type SettingsView struct {
	*tview.Grid
	theme      *ui.Theme
	tr         Translator
	focus      func(tview.Primitive)
	frame      *tview.Flex
	themes     *tview.List
	languages  *tview.List
	help       *tview.Button
	logout     *tview.Button
	current    prefs.Theme
	lang       prefs.Language
	onTheme    func(prefs.Theme)
	onLanguage func(prefs.Language)
	onHelp     func()
	onLogout   func()
}

// NewSettingsView creates the settings panel.
func NewSettingsView(theme *ui.Theme, tr Translator, focus func(tview.Primitive)) *SettingsView {
	if focus == nil {
		focus = func(tview.Primitive) {}
	}
	sv := &SettingsView{
		tr:        tr,
		focus:     focus,
		themes:    tview.NewList().ShowSecondaryText(false),
		languages: tview.NewList().ShowSecondaryText(false),
		help:      tview.NewButton(""),
		logout:    tview.NewButton(""),
		current:   prefs.DefaultTheme,
		lang:      prefs.DefaultLanguage,
	}
	sv.themes.SetBorder(true)
	sv.languages.SetBorder(true)

	lists := tview.NewFlex().
		AddItem(sv.themes, 0, 1, true).
		AddItem(sv.languages, 0, 1, false)
	buttons := tview.NewFlex().
		AddItem(sv.help, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false).
		AddItem(sv.logout, 0, 1, false)

	sv.frame = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(lists, 0, 1, true).
		AddItem(buttons, 1, 0, false)
	sv.frame.SetBorder(true).SetBorderPadding(0, 1, 1, 1)

	sv.help.SetSelectedFunc(func() {
		if sv.onHelp != nil {
			sv.onHelp()
		}
	})
	sv.logout.SetSelectedFunc(func() {
		if sv.onLogout != nil {
			sv.onLogout()
		}
	})

	order := []tview.Primitive{sv.themes, sv.languages, sv.help, sv.logout}
	next := func(from tview.Primitive, delta int) {
		for i, p := range order {
			if p == from {
				focus(order[(i+delta+len(order))%len(order)])
				return
			}
		}
	}
	for _, l := range []*tview.List{sv.themes, sv.languages} {
		l.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
			switch ev.Key() {
			case tcell.KeyTab:
				next(l, 1)
				return nil
			case tcell.KeyBacktab:
				next(l, -1)
				return nil
			}
			return ev
		})
	}
	for _, b := range []*tview.Button{sv.help, sv.logout} {
		b.SetExitFunc(func(key tcell.Key) {
			switch key {
			case tcell.KeyTab, tcell.KeyRight:
				next(b, 1)
			case tcell.KeyBacktab, tcell.KeyLeft:
				next(b, -1)
			}
		})
	}

	sv.Grid = centered(sv.frame, 60, 16)
	sv.Restyle(theme)
	return sv
}

// Name implements ui.Component.
func (sv *SettingsView) Name() string { return PageSettings }

// Hints implements ui.Component.
func (sv *SettingsView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: sv.tr.T("settings")},
		{Key: "Tab", Description: sv.tr.T("language")},
		{Key: "Esc", Description: sv.tr.T("close")},
	}
}

// Restyle implements ui.Component.
func (sv *SettingsView) Restyle(theme *ui.Theme) {
	sv.theme = theme
	sv.SetBackgroundColor(theme.BgColor)
	styleBox(sv.frame.Box, theme)
	sv.frame.SetBorderColor(theme.BorderFocusColor)
	for _, l := range []*tview.List{sv.themes, sv.languages} {
		styleBox(l.Box, theme)
		l.SetMainTextColor(theme.FgColor)
		l.SetSelectedTextColor(theme.ListCursorFg)
		l.SetSelectedBackgroundColor(theme.ListCursorBg)
	}
	styleButton(sv.help, theme)
	sv.logout.SetStyle(tcellStyle(theme.BgColor, theme.ErrorColor))
	sv.logout.SetActivatedStyle(tcellStyle(theme.ErrorColor, theme.BgColor))
	sv.Relabel()
}

// Relabel implements ui.Component.
func (sv *SettingsView) Relabel() {
	sv.frame.SetTitle(" " + sv.tr.T("settings") + " ")
	sv.themes.SetTitle(" " + sv.tr.T("appearance") + " ")
	sv.languages.SetTitle(" " + sv.tr.T("language") + " ")
	sv.help.SetLabel(sv.tr.T("help"))
	sv.logout.SetLabel(sv.tr.T("logout"))
	sv.render()
}

// SetOnTheme sets the callback for picking a theme.
func (sv *SettingsView) SetOnTheme(fn func(prefs.Theme)) { sv.onTheme = fn }

// SetOnLanguage sets the callback for picking a language.
func (sv *SettingsView) SetOnLanguage(fn func(prefs.Language)) { sv.onLanguage = fn }

// SetOnHelp sets the callback for the help button.
func (sv *SettingsView) SetOnHelp(fn func()) { sv.onHelp = fn }

// SetOnLogout sets the callback for the logout button.
func (sv *SettingsView) SetOnLogout(fn func()) { sv.onLogout = fn }

// Update marks the active theme and language.
func (sv *SettingsView) Update(t prefs.Theme, l prefs.Language) {
	sv.current = t
	sv.lang = l
	sv.render()
}

func (sv *SettingsView) render() {
	themeAt := sv.themes.GetCurrentItem()
	langAt := sv.languages.GetCurrentItem()

	sv.themes.Clear()
	for _, t := range prefs.Themes {
		sv.themes.AddItem(check(t == sv.current)+sv.tr.T(themeKeys[t]), "", 0, func() {
			if sv.onTheme != nil {
				sv.onTheme(t)
			}
		})
	}
	sv.languages.Clear()
	for _, l := range prefs.Languages {
		sv.languages.AddItem(check(l == sv.lang)+languageNames[l], "", 0, func() {
			if sv.onLanguage != nil {
				sv.onLanguage(l)
			}
		})
	}
	sv.themes.SetCurrentItem(themeAt)
	sv.languages.SetCurrentItem(langAt)
}

func check(on bool) string {
	if on {
		return "✓ "
	}
	return "  "
}

// ThemeItems returns the theme list entries as displayed.
func (sv *SettingsView) ThemeItems() []string {
	return listItems(sv.themes)
}

// LanguageItems returns the language list entries as displayed.
func (sv *SettingsView) LanguageItems() []string {
	return listItems(sv.languages)
}

func listItems(l *tview.List) []string {
	items := make([]string, l.GetItemCount())
	for i := range items {
		items[i], _ = l.GetItemText(i)
	}
	return items
}
