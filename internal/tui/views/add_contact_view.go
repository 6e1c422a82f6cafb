package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/tgclone/internal/contacts"
	"github.com/matheus3301/tgclone/internal/flow"
	"github.com/matheus3301/tgclone/internal/tui/ui"
	"github.com/rivo/tview"
)

// AddContactView is the search-and-add dialog. It renders whatever the
// flow reports and forwards intents; it holds no flow state of its own.
type AddContactView struct {
	*tview.Grid
	theme    *ui.Theme
	tr       Translator
	focus    func(tview.Primitive)
	frame    *tview.Flex
	desc     *tview.TextView
	input    *tview.InputField
	search   *tview.Button
	status   *tview.TextView
	results  *tview.Table
	add      *tview.Button
	cancel   *tview.Button
	state    flow.State
	items    []contacts.Candidate
	selected string
	statusTx string
	failed   bool
	onSearch func(query string)
	onChoose func(id string)
	onAdd    func()
	onCancel func()
}

// NewAddContactView creates the dialog.
func NewAddContactView(theme *ui.Theme, tr Translator, focus func(tview.Primitive)) *AddContactView {
	if focus == nil {
		focus = func(tview.Primitive) {}
	}
	av := &AddContactView{
		tr:      tr,
		focus:   focus,
		desc:    tview.NewTextView().SetWrap(true),
		input:   tview.NewInputField().SetFieldWidth(0),
		search:  tview.NewButton(""),
		status:  tview.NewTextView().SetDynamicColors(true),
		results: tview.NewTable().SetSelectable(true, false),
		add:     tview.NewButton(""),
		cancel:  tview.NewButton(""),
		state:   flow.Idle,
	}

	searchRow := tview.NewFlex().
		AddItem(av.input, 0, 1, true).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(av.search, 12, 0, false)
	buttons := tview.NewFlex().
		AddItem(tview.NewBox(), 0, 1, false).
		AddItem(av.cancel, 12, 0, false).
		AddItem(tview.NewBox(), 2, 0, false).
		AddItem(av.add, 16, 0, false)

	av.frame = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(av.desc, 2, 0, false).
		AddItem(searchRow, 1, 0, true).
		AddItem(av.status, 2, 0, false).
		AddItem(av.results, 0, 1, false).
		AddItem(buttons, 1, 0, false)
	av.frame.SetBorder(true).SetBorderPadding(1, 0, 2, 2)

	av.input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			av.doSearch()
		case tcell.KeyTab, tcell.KeyDown:
			av.move(av.input, 1)
		case tcell.KeyBacktab:
			av.move(av.input, -1)
		case tcell.KeyEscape:
			av.doCancel()
		}
	})
	av.search.SetSelectedFunc(av.doSearch)
	av.add.SetSelectedFunc(av.doAdd)
	av.cancel.SetSelectedFunc(av.doCancel)
	av.results.SetSelectedFunc(func(row, _ int) {
		if row >= 0 && row < len(av.items) && av.onChoose != nil {
			av.onChoose(av.items[row].ID)
		}
	})
	av.results.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyTab:
			av.move(av.results, 1)
		case tcell.KeyBacktab:
			av.move(av.results, -1)
		case tcell.KeyEscape:
			av.doCancel()
		}
	})
	for _, btn := range []*tview.Button{av.search, av.add, av.cancel} {
		btn.SetExitFunc(func(key tcell.Key) {
			switch key {
			case tcell.KeyTab, tcell.KeyRight:
				av.move(btn, 1)
			case tcell.KeyBacktab, tcell.KeyLeft:
				av.move(btn, -1)
			case tcell.KeyEscape:
				av.doCancel()
			}
		})
	}

	av.Grid = centered(av.frame, 64, 20)
	av.Restyle(theme)
	return av
}

func (av *AddContactView) focusables() []tview.Primitive {
	return []tview.Primitive{av.input, av.search, av.results, av.cancel, av.add}
}

func (av *AddContactView) move(from tview.Primitive, delta int) {
	items := av.focusables()
	for i, p := range items {
		if p == from {
			av.focus(items[(i+delta+len(items))%len(items)])
			return
		}
	}
}

func (av *AddContactView) doSearch() {
	if av.onSearch != nil {
		av.onSearch(av.input.GetText())
	}
}

func (av *AddContactView) doAdd() {
	if av.state != flow.Results || av.selected == "" || av.onAdd == nil {
		return
	}
	av.onAdd()
}

func (av *AddContactView) doCancel() {
	if av.onCancel != nil {
		av.onCancel()
	}
}

// Name implements ui.Component.
func (av *AddContactView) Name() string { return PageAddContact }

// Hints implements ui.Component.
func (av *AddContactView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: av.tr.T("search")},
		{Key: "Tab", Description: av.tr.T("search_results")},
		{Key: "Esc", Description: av.tr.T("cancel")},
	}
}

// Restyle implements ui.Component.
func (av *AddContactView) Restyle(theme *ui.Theme) {
	av.theme = theme
	av.SetBackgroundColor(theme.BgColor)
	styleBox(av.frame.Box, theme)
	av.frame.SetBorderColor(theme.BorderFocusColor)
	av.desc.SetBackgroundColor(theme.BgColor)
	av.desc.SetTextColor(theme.MutedColor)
	av.status.SetBackgroundColor(theme.BgColor)
	styleInput(av.input, theme)
	av.results.SetBackgroundColor(theme.BgColor)
	av.results.SetSelectedStyle(tcellStyle(theme.ListCursorFg, theme.ListCursorBg))
	styleButton(av.search, theme)
	styleButton(av.add, theme)
	av.cancel.SetStyle(tcellStyle(theme.FgColor, theme.FieldBgColor))
	av.cancel.SetActivatedStyle(tcellStyle(theme.BgColor, theme.FgColor))
	av.Relabel()
}

// Relabel implements ui.Component.
func (av *AddContactView) Relabel() {
	av.frame.SetTitle(" " + av.tr.T("add_contact") + " ")
	av.desc.SetText(av.tr.T("add_contact_description"))
	av.input.SetPlaceholder(av.tr.T("search_by_username_or_phone"))
	av.search.SetLabel(av.tr.T("search"))
	av.cancel.SetLabel(av.tr.T("cancel"))
	av.render()
}

// SetOnSearch sets the callback for submitting the query.
func (av *AddContactView) SetOnSearch(fn func(query string)) { av.onSearch = fn }

// SetOnChoose sets the callback for picking a result.
func (av *AddContactView) SetOnChoose(fn func(id string)) { av.onChoose = fn }

// SetOnAdd sets the callback for the add button.
func (av *AddContactView) SetOnAdd(fn func()) { av.onAdd = fn }

// SetOnCancel sets the callback for closing the dialog.
func (av *AddContactView) SetOnCancel(fn func()) { av.onCancel = fn }

// Open clears the dialog and focuses the search box.
func (av *AddContactView) Open() {
	av.input.SetText("")
	av.Update(flow.Idle, nil, "", "", false)
	av.focus(av.input)
}

// Query returns the typed search text.
func (av *AddContactView) Query() string { return av.input.GetText() }

// Update renders a flow snapshot. status is the translated status line,
// drawn in the error colour when failed is set.
func (av *AddContactView) Update(state flow.State, items []contacts.Candidate, selected, status string, failed bool) {
	av.state = state
	av.failed = failed
	av.items = items
	av.selected = selected
	av.statusTx = status
	av.render()
}

func (av *AddContactView) render() {
	color := ui.Tag(av.theme.MutedColor)
	if av.failed {
		color = ui.Tag(av.theme.ErrorColor)
	}
	av.status.SetText(fmt.Sprintf("[%s]%s[-]", color, tview.Escape(av.statusTx)))

	label := av.tr.T("add_contact")
	switch {
	case av.state == flow.Adding:
		label = av.tr.T("adding")
	case av.selected == "":
		av.add.SetStyle(tcellStyle(av.theme.MutedColor, av.theme.FieldBgColor))
	default:
		styleButton(av.add, av.theme)
	}
	av.add.SetLabel(label)

	row, _ := av.results.GetSelection()
	av.results.Clear()
	for i, c := range av.items {
		mark := "( )"
		if c.ID == av.selected {
			mark = "(•)"
		}
		name := cleanText(c.Name)
		if name == "" {
			name = contacts.DefaultName
		}
		presence := cleanText(c.LastSeen)
		if c.IsOnline || c.Status == contacts.StatusOnline {
			presence = av.tr.T("online")
		}
		av.results.SetCell(i, 0, tview.NewTableCell(mark+" ").SetTextColor(av.theme.AccentColor))
		av.results.SetCell(i, 1, tview.NewTableCell("●").SetTextColor(tcell.GetColor(c.Status.Color())))
		av.results.SetCell(i, 2, tview.NewTableCell(" "+name).SetTextColor(av.theme.FgColor).SetExpansion(1))
		av.results.SetCell(i, 3, tview.NewTableCell(presence).SetTextColor(av.theme.MutedColor).SetAlign(tview.AlignRight))
	}
	if len(av.items) > 0 {
		av.results.Select(min(max(row, 0), len(av.items)-1), 0)
	}
}

// Marks returns the radio mark of each result row, in order.
func (av *AddContactView) Marks() []string {
	marks := make([]string, av.results.GetRowCount())
	for r := range marks {
		marks[r] = av.results.GetCell(r, 0).Text
	}
	return marks
}

// Status returns the status line text.
func (av *AddContactView) Status() string {
	return av.status.GetText(true)
}
