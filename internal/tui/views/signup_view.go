package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/tgclone/internal/signup"
	"github.com/matheus3301/tgclone/internal/tui/ui"
	"github.com/rivo/tview"
)

type signupField struct {
	field signup.Field
	label string // translation key
	input *tview.InputField
	err   *tview.TextView
	rule  signup.Rule
}

// SignupView is the account creation form.
type SignupView struct {
	*tview.Grid
	theme    *ui.Theme
	tr       Translator
	focus    func(tview.Primitive)
	frame    *tview.Flex
	logo     *ui.Logo
	title    *tview.TextView
	subtitle *tview.TextView
	fields   []*signupField
	submit   *tview.Button
	status   *tview.TextView
	terms    *tview.TextView
	login    *tview.Button
	busy     bool
	onSubmit func(signup.Form)
	onLogin  func()
}

// NewSignupView creates the sign-up form. focus moves keyboard focus and
// may be nil in tests.
func NewSignupView(theme *ui.Theme, tr Translator, focus func(tview.Primitive)) *SignupView {
	if focus == nil {
		focus = func(tview.Primitive) {}
	}
	sv := &SignupView{
		theme:    theme,
		tr:       tr,
		focus:    focus,
		logo:     ui.NewLogo(theme, ""),
		title:    tview.NewTextView().SetTextAlign(tview.AlignCenter).SetDynamicColors(true),
		subtitle: tview.NewTextView().SetTextAlign(tview.AlignCenter),
		submit:   tview.NewButton(""),
		status:   tview.NewTextView().SetTextAlign(tview.AlignCenter),
		terms:    tview.NewTextView().SetTextAlign(tview.AlignCenter).SetWrap(true),
		login:    tview.NewButton(""),
	}

	labels := map[signup.Field]string{
		signup.FieldUsername: "username",
		signup.FieldPhone:    "phone_number",
		signup.FieldPassword: "password",
		signup.FieldConfirm:  "confirm_password",
	}
	for _, f := range signup.Fields {
		sf := &signupField{
			field: f,
			label: labels[f],
			input: tview.NewInputField().SetFieldWidth(0),
			err:   tview.NewTextView().SetDynamicColors(true),
		}
		if f == signup.FieldPassword || f == signup.FieldConfirm {
			sf.input.SetMaskCharacter('*')
		}
		sf.input.SetChangedFunc(func(string) {
			if sf.rule != "" {
				sf.rule = ""
				sv.renderError(sf)
			}
		})
		sv.fields = append(sv.fields, sf)
	}

	sv.submit.SetSelectedFunc(sv.doSubmit)
	sv.login.SetSelectedFunc(func() {
		if sv.onLogin != nil {
			sv.onLogin()
		}
	})
	sv.wireNavigation()

	sv.frame = tview.NewFlex().SetDirection(tview.FlexRow)
	sv.frame.SetBorder(true).SetBorderPadding(0, 0, 2, 2)
	sv.frame.AddItem(sv.logo, 4, 0, false).
		AddItem(sv.title, 1, 0, false).
		AddItem(sv.subtitle, 2, 0, false)
	for i, sf := range sv.fields {
		sv.frame.AddItem(sf.input, 1, 0, i == 0).
			AddItem(sf.err, 1, 0, false)
	}
	sv.frame.AddItem(sv.submit, 1, 0, false).
		AddItem(sv.status, 1, 0, false).
		AddItem(sv.terms, 2, 0, false).
		AddItem(sv.login, 1, 0, false)

	sv.Grid = centered(sv.frame, 56, 26)
	sv.Restyle(theme)
	sv.Relabel()
	return sv
}

// focusables lists the primitives Tab cycles through.
func (sv *SignupView) focusables() []tview.Primitive {
	items := make([]tview.Primitive, 0, len(sv.fields)+2)
	for _, sf := range sv.fields {
		items = append(items, sf.input)
	}
	return append(items, sv.submit, sv.login)
}

func (sv *SignupView) move(from tview.Primitive, delta int) {
	items := sv.focusables()
	for i, p := range items {
		if p == from {
			sv.focus(items[(i+delta+len(items))%len(items)])
			return
		}
	}
}

func (sv *SignupView) wireNavigation() {
	for i, sf := range sv.fields {
		last := i == len(sv.fields)-1
		in := sf.input
		in.SetDoneFunc(func(key tcell.Key) {
			switch key {
			case tcell.KeyEnter:
				if last {
					sv.doSubmit()
					return
				}
				sv.move(in, 1)
			case tcell.KeyTab, tcell.KeyDown:
				sv.move(in, 1)
			case tcell.KeyBacktab, tcell.KeyUp:
				sv.move(in, -1)
			}
		})
	}
	for _, btn := range []*tview.Button{sv.submit, sv.login} {
		btn.SetExitFunc(func(key tcell.Key) {
			switch key {
			case tcell.KeyTab, tcell.KeyDown:
				sv.move(btn, 1)
			case tcell.KeyBacktab, tcell.KeyUp:
				sv.move(btn, -1)
			}
		})
	}
}

func (sv *SignupView) doSubmit() {
	if sv.busy || sv.onSubmit == nil {
		return
	}
	sv.onSubmit(sv.Form())
}

// Name implements ui.Component.
func (sv *SignupView) Name() string { return PageSignup }

// Hints implements ui.Component.
func (sv *SignupView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Tab", Description: sv.tr.T("next")},
		{Key: "Enter", Description: sv.tr.T("sign_up")},
	}
}

// Restyle implements ui.Component.
func (sv *SignupView) Restyle(theme *ui.Theme) {
	sv.theme = theme
	sv.SetBackgroundColor(theme.BgColor)
	styleBox(sv.frame.Box, theme)
	sv.logo.Restyle(theme)
	for _, tv := range []*tview.TextView{sv.title, sv.subtitle, sv.status, sv.terms} {
		tv.SetBackgroundColor(theme.BgColor)
		tv.SetTextColor(theme.FgColor)
	}
	sv.subtitle.SetTextColor(theme.MutedColor)
	sv.terms.SetTextColor(theme.MutedColor)
	for _, sf := range sv.fields {
		styleInput(sf.input, theme)
		sf.err.SetBackgroundColor(theme.BgColor)
		sv.renderError(sf)
	}
	styleButton(sv.submit, theme)
	sv.login.SetStyle(tcellStyle(theme.AccentColor, theme.BgColor))
	sv.login.SetActivatedStyle(tcellStyle(theme.BgColor, theme.AccentColor))
	sv.Relabel()
}

// Relabel implements ui.Component.
func (sv *SignupView) Relabel() {
	sv.logo.SetCaption(sv.tr.T("app_title"))
	sv.title.SetText(fmt.Sprintf("[::b]%s", tview.Escape(sv.tr.T("create_account"))))
	sv.subtitle.SetText(sv.tr.T("sign_up_subtitle"))
	for _, sf := range sv.fields {
		sf.input.SetLabel(fmt.Sprintf("%-18s", sv.tr.T(sf.label)))
		sv.renderError(sf)
	}
	sv.renderBusy()
	sv.terms.SetText(sv.tr.T("terms_notice"))
	sv.login.SetLabel(sv.tr.T("have_account") + " " + sv.tr.T("log_in"))
}

// SetOnSubmit sets the callback run with the typed form.
func (sv *SignupView) SetOnSubmit(fn func(signup.Form)) { sv.onSubmit = fn }

// SetOnLogin sets the callback for the log-in link.
func (sv *SignupView) SetOnLogin(fn func()) { sv.onLogin = fn }

// Form returns the typed values.
func (sv *SignupView) Form() signup.Form {
	var f signup.Form
	for _, sf := range sv.fields {
		v := sf.input.GetText()
		switch sf.field {
		case signup.FieldUsername:
			f.Username = v
		case signup.FieldPhone:
			f.Phone = v
		case signup.FieldPassword:
			f.Password = v
		case signup.FieldConfirm:
			f.ConfirmPassword = v
		}
	}
	return f
}

// SetValue fills one input.
func (sv *SignupView) SetValue(f signup.Field, value string) {
	for _, sf := range sv.fields {
		if sf.field == f {
			sf.input.SetText(value)
		}
	}
}

// ShowErrors replaces the inline errors with errs and focuses the first
// field that has one.
func (sv *SignupView) ShowErrors(errs signup.Errors) {
	var first tview.Primitive
	for _, sf := range sv.fields {
		sf.rule = errs[sf.field]
		sv.renderError(sf)
		if sf.rule != "" && first == nil {
			first = sf.input
		}
	}
	if first != nil {
		sv.focus(first)
	}
}

// ErrorText returns the error shown under field f.
func (sv *SignupView) ErrorText(f signup.Field) string {
	for _, sf := range sv.fields {
		if sf.field == f {
			return sf.err.GetText(true)
		}
	}
	return ""
}

func (sv *SignupView) renderError(sf *signupField) {
	if sf.rule == "" {
		sf.err.SetText("")
		return
	}
	sf.err.SetText(fmt.Sprintf("[%s]%s[-]", ui.Tag(sv.theme.ErrorColor), tview.Escape(sv.tr.T(string(sf.rule)))))
}

// SetBusy shows the creating-account state and ignores submits while set.
func (sv *SignupView) SetBusy(busy bool) {
	sv.busy = busy
	sv.renderBusy()
}

// Busy reports whether a submit is in flight.
func (sv *SignupView) Busy() bool { return sv.busy }

func (sv *SignupView) renderBusy() {
	if sv.busy {
		sv.submit.SetLabel(sv.tr.T("creating_account"))
		sv.status.SetText(sv.tr.T("creating_account"))
		return
	}
	sv.submit.SetLabel(sv.tr.T("sign_up"))
	sv.status.SetText("")
}

// Reset clears all inputs and errors.
func (sv *SignupView) Reset() {
	for _, sf := range sv.fields {
		sf.input.SetText("")
		sf.rule = ""
		sv.renderError(sf)
	}
	sv.SetBusy(false)
}

// FirstInput is where focus goes when the page opens.
func (sv *SignupView) FirstInput() tview.Primitive {
	return sv.fields[0].input
}
