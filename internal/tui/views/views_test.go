package views

import (
	"strings"
	"testing"
	"time"

	"github.com/matheus3301/tgclone/internal/contacts"
	"github.com/matheus3301/tgclone/internal/flow"
	"github.com/matheus3301/tgclone/internal/i18n"
	"github.com/matheus3301/tgclone/internal/prefs"
	"github.com/matheus3301/tgclone/internal/profile"
	"github.com/matheus3301/tgclone/internal/signup"
	"github.com/matheus3301/tgclone/internal/tui/model"
	"github.com/matheus3301/tgclone/internal/tui/ui"
)

func translator(t *testing.T) *i18n.Translator {
	t.Helper()
	b, err := i18n.Default()
	if err != nil {
		t.Fatalf("i18n.Default: %v", err)
	}
	return i18n.New(b, prefs.English)
}

func TestSignupViewErrors(t *testing.T) {
	tr := translator(t)
	sv := NewSignupView(ui.ThemeFor(prefs.Light), tr, nil)

	sv.SetValue(signup.FieldUsername, "ab")
	sv.SetValue(signup.FieldPhone, "+1 555")
	sv.SetValue(signup.FieldPassword, "Secret#123")
	sv.SetValue(signup.FieldConfirm, "Secret#123")
	sv.ShowErrors(signup.Validate(sv.Form()))

	if got := sv.ErrorText(signup.FieldUsername); got != "Username must be at least 3 characters" {
		t.Errorf("username error = %q", got)
	}
	for _, f := range []signup.Field{signup.FieldPhone, signup.FieldPassword, signup.FieldConfirm} {
		if got := sv.ErrorText(f); got != "" {
			t.Errorf("%s error = %q, want none", f, got)
		}
	}

	tr.SetLanguage(prefs.French)
	sv.Relabel()
	if got := sv.ErrorText(signup.FieldUsername); got == "" || got == "Username must be at least 3 characters" {
		t.Errorf("error not relabelled: %q", got)
	}

	// Typing clears the field's error.
	sv.SetValue(signup.FieldUsername, "abc")
	if got := sv.ErrorText(signup.FieldUsername); got != "" {
		t.Errorf("error after edit = %q", got)
	}
}

func TestSignupViewSubmit(t *testing.T) {
	sv := NewSignupView(ui.ThemeFor(prefs.Dark), translator(t), nil)
	var got []signup.Form
	sv.SetOnSubmit(func(f signup.Form) { got = append(got, f) })

	sv.SetValue(signup.FieldUsername, "john")
	sv.doSubmit()
	sv.SetBusy(true)
	sv.doSubmit()

	if len(got) != 1 || got[0].Username != "john" {
		t.Fatalf("submits = %+v, want one for john", got)
	}

	sv.Reset()
	if sv.Busy() || sv.Form() != (signup.Form{}) {
		t.Errorf("Reset left busy=%v form=%+v", sv.Busy(), sv.Form())
	}
}

func TestContactListEmptyStates(t *testing.T) {
	cl := NewContactList(ui.ThemeFor(prefs.Light), translator(t), nil)

	cl.Update(nil, false)
	rows := cl.Rows()
	if len(rows) != 2 || !strings.Contains(rows[0], "No contacts yet") || !strings.Contains(rows[1], "Add your first contact") {
		t.Errorf("empty rows = %q", rows)
	}

	cl.Update(nil, true)
	if rows := cl.Rows(); !strings.Contains(rows[0], "No contacts found") {
		t.Errorf("filtered empty rows = %q", rows)
	}
	if cl.SelectedID() != "" {
		t.Error("empty list has a selection")
	}
}

func TestContactListRows(t *testing.T) {
	cl := NewContactList(ui.ThemeFor(prefs.Black), translator(t), nil)
	var picked string
	cl.SetOnSelect(func(id string) { picked = id })

	cl.Update([]contacts.Contact{
		{ID: "c1", Name: "Alex bob", Status: contacts.StatusOffline, LastSeen: "2 hours ago"},
		{ID: "c2", Name: "bob Smith", Status: contacts.StatusOnline, IsOnline: true, UnreadCount: 2},
		{ID: "c3", Name: "Unknown", Status: contacts.StatusOffline, LastSeen: contacts.DefaultLastSeen},
	}, false)

	rows := cl.Rows()
	want := []string{
		" ●Alex bob2 hours ago ",
		" ●bob Smith (2)Online ",
		" ●UnknownNever ",
	}
	for i, w := range want {
		if rows[i] != w {
			t.Errorf("row %d = %q, want %q", i, rows[i], w)
		}
	}
	if cl.SelectedID() != "c1" {
		t.Errorf("SelectedID() = %q, want c1", cl.SelectedID())
	}

	cl.table.Select(1, 0)
	if picked != "" {
		t.Fatal("moving the cursor must not select")
	}
	if cl.SelectedID() != "c2" {
		t.Errorf("SelectedID() = %q, want c2", cl.SelectedID())
	}
}

func TestAddContactViewRender(t *testing.T) {
	av := NewAddContactView(ui.ThemeFor(prefs.Light), translator(t), nil)
	adds := 0
	av.SetOnAdd(func() { adds++ })

	items := []contacts.Candidate{
		{ID: "search-1", Name: "bob Smith", Status: contacts.StatusOnline, IsOnline: true},
		{ID: "search-2", Name: "Alex bob", Status: contacts.StatusOffline, LastSeen: "2 hours ago"},
		{ID: "search-3", Name: "bob Johnson", Status: contacts.StatusAway, IsOnline: true},
	}

	av.Update(flow.Results, items, "", "Search Results", false)
	av.doAdd()
	if adds != 0 {
		t.Error("add fired without a selection")
	}

	av.Update(flow.Results, items, "search-2", "Search Results", false)
	if got := av.Marks(); strings.Join(got, "|") != "( ) |(•) |( ) " {
		t.Errorf("Marks() = %q", got)
	}
	av.doAdd()
	if adds != 1 {
		t.Errorf("adds = %d, want 1", adds)
	}

	av.Update(flow.Adding, items, "search-2", "Adding...", false)
	av.doAdd()
	if adds != 1 {
		t.Error("add fired while adding")
	}
	if av.Status() != "Adding..." {
		t.Errorf("Status() = %q", av.Status())
	}

	av.Open()
	if len(av.Marks()) != 0 || av.Query() != "" {
		t.Error("Open() did not clear the dialog")
	}
}

func TestSettingsViewMarksCurrent(t *testing.T) {
	sv := NewSettingsView(ui.ThemeFor(prefs.Light), translator(t), nil)
	sv.Update(prefs.Dark, prefs.Russian)

	themes := sv.ThemeItems()
	if len(themes) != 3 || themes[1] != "✓ Dark" || themes[0] != "  Light" {
		t.Errorf("ThemeItems() = %q", themes)
	}
	langs := sv.LanguageItems()
	if len(langs) != len(prefs.Languages) || langs[4] != "✓ Русский" {
		t.Errorf("LanguageItems() = %q", langs)
	}
}

func TestProfileViewRoundTrip(t *testing.T) {
	pv := NewProfileView(ui.ThemeFor(prefs.Dark), translator(t), nil)
	u := profile.User{ID: "user-1", Name: "Jo", Status: contacts.StatusBusy, Bio: "hello"}
	pv.Load(u)

	e := pv.Edit()
	if e != profile.EditOf(u) {
		t.Errorf("Edit() = %+v, want %+v", e, profile.EditOf(u))
	}
	if !strings.Contains(pv.HintText(), "5/140") {
		t.Errorf("HintText() = %q", pv.HintText())
	}
	if share := pv.ShareText(); !strings.HasPrefix(share, "Scan to add me") || !strings.ContainsAny(share, "█▀▄") {
		t.Errorf("ShareText() = %q", share)
	}

	pv.ShowError("Display name is required")
	if !strings.Contains(pv.HintText(), "Display name is required") {
		t.Error("error not shown")
	}
	pv.Load(u)
	if strings.Contains(pv.HintText(), "required") {
		t.Error("Load() kept the old error")
	}
}

func TestStatusBarFlash(t *testing.T) {
	sb := NewStatusBar(ui.ThemeFor(prefs.Light))
	sb.now = func() time.Time { return time.Date(2026, 1, 1, 9, 30, 0, 0, time.UTC) }
	sb.SetSession("main")
	sb.SetHints([]ui.MenuHint{{Key: "a", Description: "Add Contact"}})

	if got := sb.GetText(true); got != " main   | 09:30 | <a> Add Contact" {
		t.Errorf("text = %q", got)
	}

	sb.SetFlash(&model.FlashMessage{Text: "Contact added", Level: model.FlashInfo})
	if got := sb.GetText(true); !strings.HasSuffix(got, "| Contact added") {
		t.Errorf("text = %q", got)
	}
}
