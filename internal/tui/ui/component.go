package ui

import "github.com/rivo/tview"

// MenuHint describes a keyboard shortcut for display in the menu.
type MenuHint struct {
	Key         string
	Description string
}

// Component is implemented by every page of the TUI.
type Component interface {
	tview.Primitive
	Name() string
	Hints() []MenuHint
	// Restyle re-applies colours after a theme change.
	Restyle(theme *Theme)
	// Relabel redraws translated text after a language change.
	Relabel()
}
