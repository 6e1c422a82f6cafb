package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
)

// Crumbs is a breadcrumb bar showing the page stack.
type Crumbs struct {
	*tview.TextView
	theme *Theme
	label func(page string) string
	stack []string
}

// NewCrumbs creates a breadcrumb bar. label maps a page name to its
// display text; nil shows page names as-is.
func NewCrumbs(theme *Theme, label func(page string) string) *Crumbs {
	if label == nil {
		label = func(page string) string { return page }
	}
	tv := tview.NewTextView().
		SetDynamicColors(true)
	c := &Crumbs{TextView: tv, label: label}
	c.Restyle(theme)
	return c
}

// Restyle switches the palette and redraws.
func (c *Crumbs) Restyle(theme *Theme) {
	c.theme = theme
	c.SetBackgroundColor(theme.BgColor)
	c.Update(c.stack)
}

// Update renders the trail for stack.
func (c *Crumbs) Update(stack []string) {
	c.stack = stack
	c.Clear()
	if len(stack) == 0 {
		return
	}

	parts := make([]string, 0, len(stack))
	for i, name := range stack {
		fg, bg, attr := c.theme.CrumbInactiveFg, c.theme.CrumbInactiveBg, ""
		if i == len(stack)-1 {
			fg, bg, attr = c.theme.CrumbActiveFg, c.theme.CrumbActiveBg, "b"
		}
		parts = append(parts, fmt.Sprintf("[%s:%s:%s] %s [-:-:-]",
			Tag(fg), Tag(bg), attr, tview.Escape(c.label(name))))
	}
	_, _ = fmt.Fprint(c, strings.Join(parts, " "))
}
