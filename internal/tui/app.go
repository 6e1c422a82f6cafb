package tui

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/tgclone/internal/bus"
	"github.com/matheus3301/tgclone/internal/contacts"
	"github.com/matheus3301/tgclone/internal/prefs"
	"github.com/matheus3301/tgclone/internal/profile"
	"github.com/matheus3301/tgclone/internal/signup"
	"github.com/matheus3301/tgclone/internal/tui/keys"
	"github.com/matheus3301/tgclone/internal/tui/model"
	"github.com/matheus3301/tgclone/internal/tui/ui"
	"github.com/matheus3301/tgclone/internal/tui/views"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

// Navigator is the pair of opaque page transitions the app exposes.
type Navigator interface {
	signup.Navigator
	GoLogin()
}

var _ Navigator = (*App)(nil)

var crumbKeys = map[string]string{
	views.PageSignup:     "create_account",
	views.PageChat:       "contacts",
	views.PageAddContact: "add_contact",
	views.PageSettings:   "settings",
	views.PageProfile:    "edit_profile",
	views.PageHelp:       "help",
}

// App is the main TUI application shell.
type App struct {
	app       *tview.Application
	root      *tview.Flex
	pages     *ui.Pages
	vm        *model.ViewModel
	bus       *bus.Bus
	logger    *zap.Logger
	registry  *keys.Registry
	theme     *ui.Theme
	account   *ui.AccountInfo
	menu      *ui.Menu
	logo      *ui.Logo
	crumbs    *ui.Crumbs
	prompt    *ui.Prompt
	statusBar *views.StatusBar
	signupV   *views.SignupView
	contactsV *views.ContactList
	infoV     *views.ContactInfo
	addV      *views.AddContactView
	settingsV *views.SettingsView
	profileV  *views.ProfileView
	helpV     *views.HelpView
	header    *tview.Flex
	chat      *tview.Flex
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewApp creates the TUI application over vm. Store events are read from b.
func NewApp(vm *model.ViewModel, b *bus.Bus, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	theme := ui.ThemeFor(vm.Theme())
	theme.Apply()

	a := &App{
		app:      tview.NewApplication(),
		pages:    ui.NewPages(),
		vm:       vm,
		bus:      b,
		logger:   logger,
		registry: keys.NewRegistry(),
		theme:    theme,
		ctx:      ctx,
		cancel:   cancel,
	}
	focus := func(p tview.Primitive) { a.app.SetFocus(p) }

	a.account = ui.NewAccountInfo(theme)
	a.menu = ui.NewMenu(theme)
	a.logo = ui.NewLogo(theme, "")
	a.crumbs = ui.NewCrumbs(theme, func(page string) string { return vm.T(crumbKeys[page]) })
	a.prompt = ui.NewPrompt(theme)
	a.statusBar = views.NewStatusBar(theme)
	a.signupV = views.NewSignupView(theme, vm, focus)
	a.contactsV = views.NewContactList(theme, vm, focus)
	a.infoV = views.NewContactInfo(theme, vm)
	a.addV = views.NewAddContactView(theme, vm, focus)
	a.settingsV = views.NewSettingsView(theme, vm, focus)
	a.profileV = views.NewProfileView(theme, vm, focus)
	a.helpV = views.NewHelpView(theme, vm, a.helpSections)

	vm.SetNavigator(a)
	a.statusBar.SetSession(vm.Session())

	a.setupBindings()
	a.setupCallbacks()
	a.setupLayout()
	a.relabel()

	return a
}

func (a *App) components() []ui.Component {
	return []ui.Component{a.signupV, a.contactsV, a.addV, a.settingsV, a.profileV, a.helpV}
}

func (a *App) setupBindings() {
	a.registry.AddGlobal("theme", &keys.Action{
		Key: tcell.KeyCtrlT, Label: "Ctrl-T",
		Description: "theme", Visible: true,
		Handler: func() { a.vm.CycleTheme() },
	})
	a.registry.AddGlobal("help", &keys.Action{
		Key: tcell.KeyRune, Rune: '?',
		Description: "help", Visible: true,
		Handler: a.showHelp,
	})
	a.registry.AddGlobal("quit", &keys.Action{
		Key: tcell.KeyRune, Rune: 'q',
		Description: "quit", Visible: false,
		Handler: a.Stop,
	})

	chat := views.PageChat
	a.registry.AddView(chat, "add", &keys.Action{
		Key: tcell.KeyRune, Rune: 'a',
		Description: "add_contact", Visible: true,
		Handler: a.showAddContact,
	})
	a.registry.AddView(chat, "filter", &keys.Action{
		Key: tcell.KeyRune, Rune: '/',
		Description: "search_contacts", Visible: true,
		Handler: a.contactsV.FocusFilter,
	})
	a.registry.AddView(chat, "profile", &keys.Action{
		Key: tcell.KeyRune, Rune: 'p',
		Description: "edit_profile", Visible: true,
		Handler: a.showProfile,
	})
	a.registry.AddView(chat, "settings", &keys.Action{
		Key: tcell.KeyRune, Rune: 's',
		Description: "settings", Visible: true,
		Handler: a.showSettings,
	})
	a.registry.AddView(chat, "cycle", &keys.Action{
		Key: tcell.KeyRune, Rune: 't',
		Description: "theme", Visible: false,
		Handler: func() { a.vm.CycleTheme() },
	})
	a.registry.AddView(chat, "command", &keys.Action{
		Key: tcell.KeyRune, Rune: ':',
		Description: "command", Visible: false,
		Handler: a.activatePrompt,
	})
	a.registry.AddView(chat, "logout", &keys.Action{
		Key: tcell.KeyRune, Rune: 'L',
		Description: "logout", Visible: true,
		Handler: a.GoLogin,
	})
}

func (a *App) setupCallbacks() {
	a.signupV.SetOnSubmit(a.submitSignup)
	a.signupV.SetOnLogin(a.GoLogin)

	a.contactsV.SetOnFilter(func(text string) {
		a.vm.SetFilter(text)
		a.refreshContacts()
	})
	a.contactsV.SetOnSelect(a.vm.SelectContact)

	a.addV.SetOnSearch(func(query string) {
		go func() {
			if err := a.vm.Search(a.ctx, query); err != nil {
				a.logger.Debug("search ended", zap.String("query", query), zap.Error(err))
			}
			a.app.QueueUpdateDraw(a.renderFlow)
		}()
	})
	a.addV.SetOnChoose(func(id string) {
		if err := a.vm.Choose(id); err != nil {
			a.logger.Debug("choose failed", zap.String("id", id), zap.Error(err))
		}
		a.renderFlow()
	})
	a.addV.SetOnAdd(func() {
		go func() {
			_, err := a.vm.Add(a.ctx)
			a.app.QueueUpdateDraw(func() {
				if err == nil && a.pages.Current() == views.PageAddContact {
					a.closeTop()
				}
				a.renderFlow()
				a.renderStatus()
			})
		}()
	})
	a.addV.SetOnCancel(a.closeTop)

	a.settingsV.SetOnTheme(func(t prefs.Theme) {
		if err := a.vm.SetTheme(t); err != nil {
			a.vm.Flash.Err(err.Error())
			a.renderStatus()
		}
	})
	a.settingsV.SetOnLanguage(func(l prefs.Language) {
		if err := a.vm.SetLanguage(l); err != nil {
			a.vm.Flash.Err(err.Error())
			a.renderStatus()
		}
	})
	a.settingsV.SetOnHelp(a.showHelp)
	a.settingsV.SetOnLogout(a.GoLogin)

	a.profileV.SetOnSave(func(e profile.Edit) {
		if _, err := a.vm.SaveProfile(e); err != nil {
			a.profileV.ShowError(err.Error())
			return
		}
		a.closeTop()
		a.renderAccount()
		a.renderStatus()
	})
	a.profileV.SetOnCancel(a.closeTop)

	a.prompt.SetOnSubmit(func(text string) {
		a.deactivatePrompt()
		a.runCommand(ParseCommand(text))
	})
	a.prompt.SetOnCancel(a.deactivatePrompt)

	a.pages.SetOnChange(func(stack []string) {
		a.crumbs.Update(stack)
		a.renderHints()
	})
}

func (a *App) setupLayout() {
	a.header = tview.NewFlex().
		AddItem(a.account, 0, 2, false).
		AddItem(a.menu, 0, 2, false).
		AddItem(a.logo, 24, 0, false)

	body := tview.NewFlex().
		AddItem(a.contactsV, 40, 0, true).
		AddItem(a.infoV, 0, 1, false)

	a.chat = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.header, 7, 0, false).
		AddItem(a.crumbs, 1, 0, false).
		AddItem(body, 0, 1, true)

	a.pages.AddPage(views.PageSignup, a.signupV, true, false)
	a.pages.AddPage(views.PageChat, a.chat, true, false)
	a.pages.AddPage(views.PageAddContact, a.addV, true, false)
	a.pages.AddPage(views.PageSettings, a.settingsV, true, false)
	a.pages.AddPage(views.PageProfile, a.profileV, true, false)
	a.pages.AddPage(views.PageHelp, a.helpV, true, false)
	a.pages.Reset(views.PageSignup)

	a.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.prompt, 0, 0, false).
		AddItem(a.statusBar, 1, 0, false)

	a.app.SetRoot(a.root, true)
	a.app.SetFocus(a.signupV.FirstInput())

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		current := a.pages.Current()
		focused := a.app.GetFocus()

		if focused == a.prompt.InputField {
			return event
		}

		switch event.Key() {
		case tcell.KeyEscape:
			if a.pages.Depth() > 1 {
				a.closeTop()
				return nil
			}
		case tcell.KeyCtrlT:
			a.vm.CycleTheme()
			return nil
		}

		// Let text input widgets handle all keys normally.
		switch focused.(type) {
		case *tview.InputField, *tview.TextArea:
			return event
		}

		if a.registry.HandleEvent(current, event) {
			return nil
		}
		return event
	})
}

// GoChatHome implements signup.Navigator. Safe to call from any goroutine.
func (a *App) GoChatHome() {
	a.app.QueueUpdateDraw(func() {
		a.pages.Reset(views.PageChat)
		a.refreshContacts()
		a.renderAccount()
		a.statusBar.SetUser(a.vm.User().Name)
		a.app.SetFocus(a.contactsV)
	})
}

// GoLogin leaves the session and returns to the sign-up page, which links
// to log in. Must run on the UI goroutine.
func (a *App) GoLogin() {
	a.vm.Logout()
	a.infoV.Update(nil)
	a.contactsV.SetFilterText("")
	a.signupV.Reset()
	a.statusBar.SetUser("")
	a.pages.Reset(views.PageSignup)
	a.app.SetFocus(a.signupV.FirstInput())
	a.renderStatus()
}

func (a *App) submitSignup(form signup.Form) {
	a.signupV.SetBusy(true)
	a.statusBar.SetBusy(true)
	go func() {
		errs, err := a.vm.SignUp(a.ctx, form)
		a.app.QueueUpdateDraw(func() {
			a.signupV.SetBusy(false)
			a.statusBar.SetBusy(false)
			if errs.HasErrors() {
				a.signupV.ShowErrors(errs)
			}
			if err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Info("sign-up rejected", zap.Error(err))
			}
			a.renderStatus()
		})
	}()
}

func (a *App) showAddContact() {
	a.vm.OpenAddContact()
	a.pages.PushOverlay(views.PageAddContact)
	a.addV.Open()
	a.renderFlow()
}

func (a *App) showSettings() {
	a.settingsV.Update(a.vm.Theme(), a.vm.Language())
	a.pages.PushOverlay(views.PageSettings)
	a.app.SetFocus(a.settingsV)
}

func (a *App) showProfile() {
	a.pages.PushOverlay(views.PageProfile)
	a.profileV.Open(a.vm.User())
}

func (a *App) showHelp() {
	a.pages.Push(views.PageHelp)
	a.app.SetFocus(a.helpV)
}

// closeTop pops the top page and puts focus back where it belongs.
func (a *App) closeTop() {
	switch a.pages.Pop() {
	case "":
		return
	case views.PageAddContact:
		a.vm.OpenAddContact()
	}
	switch a.pages.Current() {
	case views.PageChat:
		a.app.SetFocus(a.contactsV)
	case views.PageSettings:
		a.app.SetFocus(a.settingsV)
	case views.PageSignup:
		a.app.SetFocus(a.signupV.FirstInput())
	}
}

func (a *App) activatePrompt() {
	a.prompt.Activate(a.vm.T("app_title"))
	a.root.ResizeItem(a.prompt, 3, 0)
	a.app.SetFocus(a.prompt)
}

func (a *App) deactivatePrompt() {
	a.root.ResizeItem(a.prompt, 0, 0)
	if a.pages.Current() == views.PageChat {
		a.app.SetFocus(a.contactsV)
	}
}

func (a *App) runCommand(cmd Command) {
	switch cmd.Name {
	case "quit":
		a.Stop()
	case "help":
		a.showHelp()
	case "add":
		a.showAddContact()
	case "settings":
		a.showSettings()
	case "profile":
		a.showProfile()
	case "logout":
		a.GoLogin()
	case "filter":
		a.contactsV.SetFilterText(cmd.Args)
	case "theme":
		if cmd.Args == "" {
			a.vm.CycleTheme()
			return
		}
		t, err := prefs.ParseTheme(cmd.Args)
		if err == nil {
			err = a.vm.SetTheme(t)
		}
		if err != nil {
			a.vm.Flash.Err(err.Error())
		}
	case "lang":
		l, err := prefs.ParseLanguage(cmd.Args)
		if err == nil {
			err = a.vm.SetLanguage(l)
		}
		if err != nil {
			a.vm.Flash.Err(err.Error())
		}
	default:
		a.vm.Flash.Warn(":" + cmd.Name + "?")
	}
	a.renderStatus()
}

func (a *App) helpSections() []views.HelpSection {
	return []views.HelpSection{
		{Title: a.vm.T("contacts"), Hints: a.registry.Hints(views.PageChat, a.vm.T)},
		{Title: a.vm.T("add_contact"), Hints: a.addV.Hints()},
		{Title: a.vm.T("edit_profile"), Hints: a.profileV.Hints()},
		{Title: a.vm.T("settings"), Hints: a.settingsV.Hints()},
	}
}

// restyle swaps the palette on every widget.
func (a *App) restyle(t prefs.Theme) {
	a.theme = ui.ThemeFor(t)
	a.theme.Apply()
	for _, c := range a.components() {
		c.Restyle(a.theme)
	}
	a.infoV.Restyle(a.theme)
	a.account.Restyle(a.theme)
	a.menu.Restyle(a.theme)
	a.logo.Restyle(a.theme)
	a.crumbs.Restyle(a.theme)
	a.prompt.Restyle(a.theme)
	a.statusBar.Restyle(a.theme)
	a.renderAccount()
}

// relabel redraws translated text on every widget.
func (a *App) relabel() {
	for _, c := range a.components() {
		c.Relabel()
	}
	a.infoV.Relabel()
	a.logo.SetCaption(a.vm.T("app_title"))
	a.account.SetLabels(
		a.vm.T("session"),
		a.vm.T("display_name"),
		a.vm.T("status"),
		a.vm.T("contacts"),
		a.vm.T("theme"),
		a.vm.T("language"),
	)
	a.crumbs.Update(a.pages.Stack())
	a.settingsV.Update(a.vm.Theme(), a.vm.Language())
	a.renderAccount()
	a.renderFlow()
	a.renderHints()
}

func (a *App) refreshContacts() {
	a.contactsV.Update(a.vm.Contacts(), a.vm.Filter() != "")
	a.renderAccount()
}

func (a *App) renderAccount() {
	u := a.vm.User()
	a.account.Update(&ui.AccountData{
		Session:     a.vm.Session(),
		Name:        u.Name,
		Status:      a.vm.T(u.Status.LabelKey()),
		StatusColor: u.Status.Color(),
		Contacts:    a.vm.ContactCount(),
		Theme:       a.vm.T(string(a.vm.Theme()) + "_mode"),
		Language:    string(a.vm.Language()),
	})
}

func (a *App) renderFlow() {
	a.addV.Update(a.vm.FlowState(), a.vm.Results(), a.vm.Selected(), a.vm.FlowStatus(), a.vm.FlowFailed())
}

func (a *App) renderHints() {
	current := a.pages.Current()
	a.menu.Update(a.registry.Hints(current, a.vm.T))
	for _, c := range a.components() {
		if c.Name() == current {
			a.statusBar.SetHints(c.Hints())
			return
		}
	}
	a.statusBar.SetHints(nil)
}

func (a *App) renderStatus() {
	a.statusBar.SetFlash(a.vm.Flash.Get())
}

// handleEvent applies a store event on the UI goroutine.
func (a *App) handleEvent(evt bus.Event) {
	switch evt.Kind {
	case bus.ThemeChanged:
		a.restyle(a.vm.Theme())
	case bus.LanguageChanged:
		a.relabel()
	case bus.ContactAdded:
		if c, ok := evt.Payload.(contacts.Contact); ok {
			a.vm.ContactAdded(c)
		}
		a.refreshContacts()
	case bus.ContactSelected:
		id, _ := evt.Payload.(string)
		if c, ok := a.vm.Contact(id); ok {
			a.infoV.Update(&c)
		} else {
			a.infoV.Update(nil)
		}
	case bus.FlowChanged:
		a.renderFlow()
	}
	a.renderStatus()
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	subs := make([]<-chan bus.Event, 0, 3)
	for _, ns := range []string{"prefs.", "contacts.", "flow."} {
		ch, unsub := a.bus.Subscribe(ns, 32)
		defer unsub()
		subs = append(subs, ch)
	}
	go a.eventLoop(subs[0], subs[1], subs[2])

	err := a.app.Run()
	a.cancel()
	return err
}

func (a *App) eventLoop(prefsCh, contactsCh, flowCh <-chan bus.Event) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	apply := func(evt bus.Event) {
		a.app.QueueUpdateDraw(func() { a.handleEvent(evt) })
	}
	for {
		select {
		case evt := <-prefsCh:
			apply(evt)
		case evt := <-contactsCh:
			apply(evt)
		case evt := <-flowCh:
			apply(evt)
		case <-ticker.C:
			a.app.QueueUpdateDraw(a.renderStatus)
		case <-a.ctx.Done():
			return
		}
	}
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
