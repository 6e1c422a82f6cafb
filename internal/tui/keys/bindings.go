package keys

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/tgclone/internal/tui/ui"
)

// Action represents a keybinding action.
type Action struct {
	Key         tcell.Key
	Rune        rune
	Label       string // key as shown in hints, e.g. "Ctrl-T"
	Description string
	Handler     func()
	Visible     bool
}

// Matches returns true if the event matches this action.
func (a *Action) Matches(ev *tcell.EventKey) bool {
	if a.Key != tcell.KeyRune {
		return ev.Key() == a.Key
	}
	return ev.Key() == tcell.KeyRune && ev.Rune() == a.Rune
}

func (a *Action) label() string {
	switch {
	case a.Label != "":
		return a.Label
	case a.Key == tcell.KeyRune:
		return string(a.Rune)
	default:
		return tcell.KeyNames[a.Key]
	}
}

type scope struct {
	names   []string
	actions map[string]*Action
}

func (s *scope) add(name string, a *Action) {
	if s.actions == nil {
		s.actions = make(map[string]*Action)
	}
	if _, ok := s.actions[name]; !ok {
		s.names = append(s.names, name)
	}
	s.actions[name] = a
}

func (s *scope) each(fn func(*Action) bool) bool {
	if s == nil {
		return false
	}
	for _, n := range s.names {
		if fn(s.actions[n]) {
			return true
		}
	}
	return false
}

// Registry holds keybindings organized by scope. Bindings keep their
// registration order so hints render the same way every time.
type Registry struct {
	global scope
	views  map[string]*scope
}

// NewRegistry creates a new keybinding registry.
func NewRegistry() *Registry {
	return &Registry{views: make(map[string]*scope)}
}

// AddGlobal registers a global keybinding. Re-registering a name replaces
// the action in place.
func (r *Registry) AddGlobal(name string, action *Action) {
	r.global.add(name, action)
}

// AddView registers a view-specific keybinding.
func (r *Registry) AddView(view, name string, action *Action) {
	s, ok := r.views[view]
	if !ok {
		s = &scope{}
		r.views[view] = s
	}
	s.add(name, action)
}

// Hints returns visible bindings for view, view-specific ones first.
// describe, if non-nil, turns an action description into display text.
func (r *Registry) Hints(view string, describe func(string) string) []ui.MenuHint {
	if describe == nil {
		describe = func(s string) string { return s }
	}
	var hints []ui.MenuHint
	collect := func(a *Action) bool {
		if a.Visible {
			hints = append(hints, ui.MenuHint{Key: a.label(), Description: describe(a.Description)})
		}
		return false
	}
	r.views[view].each(collect)
	r.global.each(collect)
	return hints
}

// HandleEvent dispatches a key event to the first matching action, trying
// view bindings before global ones. Returns true if a handler ran.
func (r *Registry) HandleEvent(view string, ev *tcell.EventKey) bool {
	run := func(a *Action) bool {
		if !a.Matches(ev) {
			return false
		}
		if a.Handler != nil {
			a.Handler()
		}
		return true
	}
	if r.views[view].each(run) {
		return true
	}
	return r.global.each(run)
}
