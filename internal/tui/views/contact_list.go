package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/tgclone/internal/contacts"
	"github.com/matheus3301/tgclone/internal/tui/ui"
	"github.com/rivo/tview"
)

// ContactList is the sidebar: a filter box over the directory table.
type ContactList struct {
	*tview.Flex
	theme    *ui.Theme
	tr       Translator
	focus    func(tview.Primitive)
	filter   *tview.InputField
	table    *tview.Table
	contacts []contacts.Contact
	filtered bool
	onSelect func(id string)
	onFilter func(text string)
}

// NewContactList creates the sidebar.
func NewContactList(theme *ui.Theme, tr Translator, focus func(tview.Primitive)) *ContactList {
	if focus == nil {
		focus = func(tview.Primitive) {}
	}
	filter := tview.NewInputField().SetFieldWidth(0)
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false)

	cl := &ContactList{
		Flex: tview.NewFlex().
			SetDirection(tview.FlexRow).
			AddItem(filter, 1, 0, false).
			AddItem(table, 0, 1, true),
		tr:     tr,
		focus:  focus,
		filter: filter,
		table:  table,
	}
	cl.SetBorder(true)

	filter.SetChangedFunc(func(text string) {
		if cl.onFilter != nil {
			cl.onFilter(text)
		}
	})
	filter.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEscape:
			filter.SetText("")
			focus(table)
		case tcell.KeyEnter, tcell.KeyTab, tcell.KeyDown:
			focus(table)
		}
	})
	table.SetSelectedFunc(func(row, _ int) {
		if id := cl.idAt(row); id != "" && cl.onSelect != nil {
			cl.onSelect(id)
		}
	})

	cl.Restyle(theme)
	return cl
}

// Name implements ui.Component.
func (cl *ContactList) Name() string { return PageChat }

// Hints implements ui.Component.
func (cl *ContactList) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: cl.tr.T("select_chat")},
		{Key: "/", Description: cl.tr.T("search_contacts")},
	}
}

// Restyle implements ui.Component.
func (cl *ContactList) Restyle(theme *ui.Theme) {
	cl.theme = theme
	styleBox(cl.Box, theme)
	styleInput(cl.filter, theme)
	cl.table.SetBackgroundColor(theme.BgColor)
	cl.table.SetSelectedStyle(tcellStyle(theme.ListCursorFg, theme.ListCursorBg))
	cl.render()
}

// Relabel implements ui.Component.
func (cl *ContactList) Relabel() {
	cl.render()
}

// SetOnSelect sets the callback for Enter on a contact.
func (cl *ContactList) SetOnSelect(fn func(id string)) { cl.onSelect = fn }

// SetOnFilter sets the callback fired as the filter text changes.
func (cl *ContactList) SetOnFilter(fn func(text string)) { cl.onFilter = fn }

// FocusFilter moves focus to the filter box.
func (cl *ContactList) FocusFilter() { cl.focus(cl.filter) }

// FilterText returns the typed filter.
func (cl *ContactList) FilterText() string { return cl.filter.GetText() }

// SetFilterText replaces the filter text, firing the filter callback.
func (cl *ContactList) SetFilterText(text string) { cl.filter.SetText(text) }

// Update shows list. filtered tells the empty state which message to use.
func (cl *ContactList) Update(list []contacts.Contact, filtered bool) {
	cl.contacts = list
	cl.filtered = filtered
	cl.render()
}

func (cl *ContactList) render() {
	cl.SetTitle(fmt.Sprintf(" %s (%d) ", cl.tr.T("contacts"), len(cl.contacts)))
	cl.filter.SetLabel("/ ")
	cl.filter.SetPlaceholder(cl.tr.T("search_contacts"))

	row, _ := cl.table.GetSelection()
	cl.table.Clear()

	if len(cl.contacts) == 0 {
		msg, hint := cl.tr.T("no_contacts"), cl.tr.T("add_your_first_contact")
		if cl.filtered {
			msg, hint = cl.tr.T("no_contacts_found"), cl.tr.T("try_different_search")
		}
		cl.table.SetCell(0, 0, tview.NewTableCell(" "+msg).
			SetSelectable(false).
			SetTextColor(cl.theme.FgColor).
			SetExpansion(1))
		cl.table.SetCell(1, 0, tview.NewTableCell(" "+hint).
			SetSelectable(false).
			SetTextColor(cl.theme.MutedColor).
			SetExpansion(1))
		return
	}

	for i, c := range cl.contacts {
		name := cleanText(c.Name)
		if c.UnreadCount > 0 {
			name = fmt.Sprintf("%s (%d)", name, c.UnreadCount)
		}
		dot := tcell.GetColor(c.Status.Color())
		cl.table.SetCell(i, 0, tview.NewTableCell(" ●").SetTextColor(dot))
		cl.table.SetCell(i, 1, tview.NewTableCell(name).
			SetTextColor(cl.theme.FgColor).
			SetExpansion(1))
		cl.table.SetCell(i, 2, tview.NewTableCell(cl.presence(c)+" ").
			SetTextColor(cl.theme.MutedColor).
			SetAlign(tview.AlignRight))
	}
	if row >= len(cl.contacts) {
		row = len(cl.contacts) - 1
	}
	if row < 0 {
		row = 0
	}
	cl.table.Select(row, 0)
}

// presence translates the built-in presence strings and leaves free-form
// last-seen text alone.
func (cl *ContactList) presence(c contacts.Contact) string {
	switch {
	case c.Status == contacts.StatusOnline:
		return cl.tr.T("online")
	case c.LastSeen == contacts.DefaultLastSeen:
		return cl.tr.T("never")
	default:
		return cleanText(c.LastSeen)
	}
}

func (cl *ContactList) idAt(row int) string {
	if row < 0 || row >= len(cl.contacts) {
		return ""
	}
	return cl.contacts[row].ID
}

// SelectedID returns the contact under the cursor.
func (cl *ContactList) SelectedID() string {
	row, _ := cl.table.GetSelection()
	return cl.idAt(row)
}

// Rows returns the cell text of each table row.
func (cl *ContactList) Rows() []string {
	var rows []string
	for r := 0; r < cl.table.GetRowCount(); r++ {
		var line string
		for c := 0; c < cl.table.GetColumnCount(); c++ {
			if cell := cl.table.GetCell(r, c); cell != nil {
				line += cell.Text
			}
		}
		rows = append(rows, line)
	}
	return rows
}
