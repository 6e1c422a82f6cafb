package model

import (
	"context"
	"errors"
	"sync"

	"github.com/matheus3301/tgclone/internal/contacts"
	"github.com/matheus3301/tgclone/internal/flow"
	"github.com/matheus3301/tgclone/internal/i18n"
	"github.com/matheus3301/tgclone/internal/prefs"
	"github.com/matheus3301/tgclone/internal/profile"
	"github.com/matheus3301/tgclone/internal/signup"
	"go.uber.org/zap"
)

// Deps are the collaborators a ViewModel drives. Everything except Logger
// is required.
type Deps struct {
	Session    string
	Prefs      *prefs.Store
	Directory  *contacts.Directory
	Flow       *flow.Flow
	Registrar  signup.Registrar
	Profile    *profile.Editor
	Translator *i18n.Translator
	Logger     *zap.Logger
}

// ViewModel turns user intents into store calls and keeps the small bits
// of UI state that belong to no store (the sidebar filter and the flash).
// It never touches tview, so views can stay dumb.
type ViewModel struct {
	Flash Flash

	session   string
	prefs     *prefs.Store
	dir       *contacts.Directory
	flow      *flow.Flow
	submitter *signup.Submitter
	profile   *profile.Editor
	tr        *i18n.Translator
	logger    *zap.Logger

	mu     sync.RWMutex
	filter string
	nav    signup.Navigator
}

// NewViewModel wires a ViewModel over d.
func NewViewModel(d Deps) *ViewModel {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	vm := &ViewModel{
		session: d.Session,
		prefs:   d.Prefs,
		dir:     d.Directory,
		flow:    d.Flow,
		profile: d.Profile,
		tr:      d.Translator,
		logger:  logger,
	}
	vm.submitter = signup.NewSubmitter(d.Registrar, vm, logger)
	return vm
}

// SetNavigator sets where a successful sign-up navigates to.
func (vm *ViewModel) SetNavigator(nav signup.Navigator) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.nav = nav
}

// GoChatHome implements signup.Navigator by forwarding to the navigator.
func (vm *ViewModel) GoChatHome() {
	vm.mu.RLock()
	nav := vm.nav
	vm.mu.RUnlock()
	if nav != nil {
		nav.GoChatHome()
	}
}

// T translates key in the active language.
func (vm *ViewModel) T(key string, args ...any) string {
	return vm.tr.T(key, args...)
}

// Session returns the session name.
func (vm *ViewModel) Session() string { return vm.session }

// Theme returns the active theme.
func (vm *ViewModel) Theme() prefs.Theme { return vm.prefs.Theme() }

// Language returns the active language.
func (vm *ViewModel) Language() prefs.Language { return vm.prefs.Language() }

// SetTheme switches the palette.
func (vm *ViewModel) SetTheme(t prefs.Theme) error {
	return vm.prefs.SetTheme(t)
}

// CycleTheme advances light, dark, black.
func (vm *ViewModel) CycleTheme() prefs.Theme {
	return vm.prefs.CycleTheme()
}

// SetLanguage switches the display language and re-binds the translator.
// Unknown languages leave both untouched.
func (vm *ViewModel) SetLanguage(l prefs.Language) error {
	if err := vm.prefs.SetLanguage(l); err != nil {
		return err
	}
	vm.tr.SetLanguage(vm.prefs.Language())
	return nil
}

// Filter returns the sidebar filter text.
func (vm *ViewModel) Filter() string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.filter
}

// SetFilter sets the sidebar filter text.
func (vm *ViewModel) SetFilter(filter string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.filter = filter
}

// Contacts returns the directory entries matching the sidebar filter.
func (vm *ViewModel) Contacts() []contacts.Contact {
	return vm.dir.List(vm.Filter())
}

// ContactCount is the size of the unfiltered directory.
func (vm *ViewModel) ContactCount() int {
	return vm.dir.Len()
}

// Contact looks up a directory entry.
func (vm *ViewModel) Contact(id string) (contacts.Contact, bool) {
	return vm.dir.Get(id)
}

// SelectContact forwards the selection to the directory.
func (vm *ViewModel) SelectContact(id string) {
	vm.dir.Select(id)
}

// SignUp submits the form. Field problems come back as Errors for the form
// to show inline; anything else is flashed. Both are also returned as err.
func (vm *ViewModel) SignUp(ctx context.Context, f signup.Form) (signup.Errors, error) {
	reg, err := vm.submitter.Submit(ctx, f)
	if err == nil {
		vm.profile.Replace(profile.New(reg.UserID, reg.Username))
		return nil, nil
	}

	var verr *signup.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Fields, err
	case errors.Is(err, signup.ErrUsernameTaken):
		return signup.Errors{signup.FieldUsername: signup.UsernameTaken}, err
	default:
		vm.Flash.Err(vm.T("sign_up_failed", err))
		return nil, err
	}
}

// User returns the signed-in user.
func (vm *ViewModel) User() profile.User {
	return vm.profile.User()
}

// SaveProfile applies e to the user. Failures come back translated.
func (vm *ViewModel) SaveProfile(e profile.Edit) (profile.User, error) {
	u, err := vm.profile.Apply(e)
	if err != nil {
		return u, errors.New(vm.ProfileErrorText(err))
	}
	vm.Flash.Info(vm.T("profile_saved"))
	return u, nil
}

// ProfileErrorText is the display text for a profile.Update failure.
func (vm *ViewModel) ProfileErrorText(err error) string {
	switch {
	case errors.Is(err, profile.ErrNameRequired):
		return vm.T("err_name_required")
	case errors.Is(err, profile.ErrBioTooLong):
		return vm.T("err_bio_too_long")
	default:
		return err.Error()
	}
}

// OpenAddContact starts a fresh search-and-add round.
func (vm *ViewModel) OpenAddContact() {
	vm.flow.Reset()
}

// FlowState returns the search-and-add state.
func (vm *ViewModel) FlowState() flow.State {
	return vm.flow.State()
}

// Results returns the candidates of the last search.
func (vm *ViewModel) Results() []contacts.Candidate {
	return vm.flow.Results()
}

// Selected returns the chosen candidate ID, if any.
func (vm *ViewModel) Selected() string {
	c, ok := vm.flow.Selected()
	if !ok {
		return ""
	}
	return c.ID
}

// Search runs a contact search. Stale and empty-query results are dropped
// silently; the flow state carries everything else.
func (vm *ViewModel) Search(ctx context.Context, query string) error {
	_, err := vm.flow.Search(ctx, query)
	if errors.Is(err, flow.ErrStale) || errors.Is(err, contacts.ErrEmptyQuery) {
		return nil
	}
	return err
}

// Choose picks a candidate from the results.
func (vm *ViewModel) Choose(id string) error {
	return vm.flow.Choose(id)
}

// Add commits the chosen candidate. Failures are flashed; success is
// announced by the directory on the bus.
func (vm *ViewModel) Add(ctx context.Context) (contacts.Contact, error) {
	c, err := vm.flow.Add(ctx)
	switch {
	case errors.Is(err, flow.ErrStale):
		return c, err
	case err != nil:
		vm.Flash.Err(vm.T("add_failed", err))
		return c, err
	}
	return c, nil
}

// FlowStatus is the one-line status under the add-contact search box.
func (vm *ViewModel) FlowStatus() string {
	switch vm.flow.State() {
	case flow.Searching:
		return vm.T("searching")
	case flow.Empty:
		return vm.T("no_users_found") + " · " + vm.T("try_different_search")
	case flow.Adding:
		return vm.T("adding")
	case flow.Results:
		return vm.T("search_results")
	default:
		if vm.FlowFailed() {
			return vm.T("search_failed", vm.flow.Err())
		}
		return vm.T("enter_username_or_phone")
	}
}

// FlowFailed reports whether the last search failed and nothing has been
// submitted since.
func (vm *ViewModel) FlowFailed() bool {
	switch vm.flow.State() {
	case flow.Failed:
		return true
	case flow.Idle:
		return vm.flow.Err() != nil
	}
	return false
}

// ContactAdded flashes the added toast for c.
func (vm *ViewModel) ContactAdded(c contacts.Contact) {
	vm.Flash.Info(vm.T("contact_added") + ": " + vm.T("contact_added_description", c.Name))
}

// Logout abandons in-flight work and clears session UI state.
func (vm *ViewModel) Logout() {
	vm.flow.Reset()
	vm.SetFilter("")
	vm.Flash.Clear()
	vm.logger.Info("logged out", zap.String("user_id", vm.profile.User().ID))
}
