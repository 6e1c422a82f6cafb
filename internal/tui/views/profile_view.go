package views

import (
	"fmt"
	"unicode/utf8"

	"github.com/matheus3301/tgclone/internal/contacts"
	"github.com/matheus3301/tgclone/internal/profile"
	"github.com/matheus3301/tgclone/internal/tui/ui"
	"github.com/rivo/tview"
)

// ProfileView edits the signed-in user and shows their share code.
type ProfileView struct {
	*tview.Grid
	theme    *ui.Theme
	tr       Translator
	focus    func(tview.Primitive)
	layout   *tview.Flex
	form     *tview.Form
	name     *tview.InputField
	status   *tview.DropDown
	bio      *tview.TextArea
	hint     *tview.TextView
	share    *tview.TextView
	statuses []contacts.Status
	user     profile.User
	errText  string
	onSave   func(profile.Edit)
	onCancel func()
}

// NewProfileView creates the profile editor.
func NewProfileView(theme *ui.Theme, tr Translator, focus func(tview.Primitive)) *ProfileView {
	if focus == nil {
		focus = func(tview.Primitive) {}
	}
	pv := &ProfileView{
		tr:       tr,
		focus:    focus,
		form:     tview.NewForm(),
		name:     tview.NewInputField().SetFieldWidth(30),
		status:   tview.NewDropDown(),
		bio:      tview.NewTextArea().SetWordWrap(true),
		hint:     tview.NewTextView().SetDynamicColors(true).SetWrap(true),
		share:    tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter),
		statuses: profile.Statuses(),
	}
	pv.bio.SetSize(4, 30)
	pv.bio.SetChangedFunc(pv.renderHint)

	pv.form.AddFormItem(pv.name).
		AddFormItem(pv.status).
		AddFormItem(pv.bio).
		AddButton("", pv.doSave).
		AddButton("", pv.doCancel)
	pv.form.SetCancelFunc(pv.doCancel)

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(pv.form, 0, 1, true).
		AddItem(pv.hint, 3, 0, false)
	pv.layout = tview.NewFlex().
		AddItem(left, 0, 3, true).
		AddItem(pv.share, 0, 2, false)
	pv.layout.SetBorder(true).SetBorderPadding(0, 0, 1, 1)

	pv.Grid = centered(pv.layout, 84, 24)
	pv.Restyle(theme)
	return pv
}

func (pv *ProfileView) doSave() {
	if pv.onSave != nil {
		pv.onSave(pv.Edit())
	}
}

func (pv *ProfileView) doCancel() {
	if pv.onCancel != nil {
		pv.onCancel()
	}
}

// Name implements ui.Component.
func (pv *ProfileView) Name() string { return PageProfile }

// Hints implements ui.Component.
func (pv *ProfileView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Tab", Description: pv.tr.T("edit_profile")},
		{Key: "Esc", Description: pv.tr.T("cancel")},
	}
}

// Restyle implements ui.Component.
func (pv *ProfileView) Restyle(theme *ui.Theme) {
	pv.theme = theme
	pv.SetBackgroundColor(theme.BgColor)
	styleBox(pv.layout.Box, theme)
	pv.layout.SetBorderColor(theme.BorderFocusColor)
	pv.form.SetBackgroundColor(theme.BgColor)
	pv.form.SetFieldBackgroundColor(theme.FieldBgColor)
	pv.form.SetFieldTextColor(theme.FgColor)
	pv.form.SetLabelColor(theme.FgColor)
	pv.form.SetButtonBackgroundColor(theme.AccentColor)
	pv.form.SetButtonTextColor(theme.BgColor)
	pv.status.SetListStyles(
		tcellStyle(theme.FgColor, theme.FieldBgColor),
		tcellStyle(theme.ListCursorFg, theme.ListCursorBg),
	)
	pv.hint.SetBackgroundColor(theme.BgColor)
	pv.share.SetBackgroundColor(theme.BgColor)
	pv.share.SetTextColor(theme.FgColor)
	pv.Relabel()
}

// Relabel implements ui.Component.
func (pv *ProfileView) Relabel() {
	pv.layout.SetTitle(" " + pv.tr.T("edit_profile") + " ")
	pv.name.SetLabel(pv.tr.T("display_name"))
	pv.status.SetLabel(pv.tr.T("status"))
	pv.bio.SetLabel(pv.tr.T("bio"))
	pv.bio.SetPlaceholder(pv.tr.T("bio_placeholder"))
	pv.form.GetButton(0).SetLabel(pv.tr.T("save_changes"))
	pv.form.GetButton(1).SetLabel(pv.tr.T("cancel"))

	at, _ := pv.status.GetCurrentOption()
	labels := make([]string, len(pv.statuses))
	for i, s := range pv.statuses {
		labels[i] = pv.tr.T(s.LabelKey())
	}
	pv.status.SetOptions(labels, nil)
	if at >= 0 {
		pv.status.SetCurrentOption(at)
	}
	pv.renderHint()
	pv.renderShare()
}

// SetOnSave sets the callback for the save button.
func (pv *ProfileView) SetOnSave(fn func(profile.Edit)) { pv.onSave = fn }

// SetOnCancel sets the callback for cancel and Esc.
func (pv *ProfileView) SetOnCancel(fn func()) { pv.onCancel = fn }

// Load fills the form from u and clears any error.
func (pv *ProfileView) Load(u profile.User) {
	pv.user = u
	pv.errText = ""
	pv.name.SetText(u.Name)
	pv.bio.SetText(u.Bio, false)
	idx := 0
	for i, s := range pv.statuses {
		if s == u.Status {
			idx = i
		}
	}
	pv.status.SetCurrentOption(idx)
	pv.renderHint()
	pv.renderShare()
}

// Open loads u and focuses the first field.
func (pv *ProfileView) Open(u profile.User) {
	pv.Load(u)
	pv.form.SetFocus(0)
	pv.focus(pv.form)
}

// Edit returns the values currently in the form.
func (pv *ProfileView) Edit() profile.Edit {
	e := profile.Edit{
		Name: pv.name.GetText(),
		Bio:  pv.bio.GetText(),
	}
	if i, _ := pv.status.GetCurrentOption(); i >= 0 && i < len(pv.statuses) {
		e.Status = pv.statuses[i]
	}
	return e
}

// ShowError shows msg under the form; "" clears it.
func (pv *ProfileView) ShowError(msg string) {
	pv.errText = msg
	pv.renderHint()
}

func (pv *ProfileView) renderHint() {
	n := utf8.RuneCountInString(pv.bio.GetText())
	countColor := pv.theme.MutedColor
	if n > profile.BioMaxLen {
		countColor = pv.theme.ErrorColor
	}
	text := fmt.Sprintf("[%s]%s[-] [%s]%d/%d[-]",
		ui.Tag(pv.theme.MutedColor), tview.Escape(pv.tr.T("bio_description")),
		ui.Tag(countColor), n, profile.BioMaxLen)
	if pv.errText != "" {
		text += fmt.Sprintf("\n[%s]%s[-]", ui.Tag(pv.theme.ErrorColor), tview.Escape(pv.errText))
	}
	pv.hint.SetText(text)
}

func (pv *ProfileView) renderShare() {
	pv.share.Clear()
	if pv.user.ID == "" {
		return
	}
	code, err := profile.ShareCode(pv.user, "")
	if err != nil {
		_, _ = fmt.Fprintf(pv.share, "\n[%s]%s[-]", ui.Tag(pv.theme.ErrorColor), tview.Escape(err.Error()))
		return
	}
	_, _ = fmt.Fprintf(pv.share, "%s\n%s", tview.Escape(pv.tr.T("share_profile")), code)
}

// ShareText returns the share pane contents.
func (pv *ProfileView) ShareText() string {
	return pv.share.GetText(true)
}

// HintText returns the counter and error lines.
func (pv *ProfileView) HintText() string {
	return pv.hint.GetText(true)
}
