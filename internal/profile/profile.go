// Package profile holds the signed-in user and the rules for editing it.
package profile

import (
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/matheus3301/tgclone/internal/contacts"
)

// BioMaxLen is the maximum bio length in runes.
const BioMaxLen = 140

var (
	// ErrNameRequired is returned when the edited display name is blank.
	ErrNameRequired = errors.New("profile: display name is required")
	// ErrBioTooLong is returned when the bio exceeds BioMaxLen runes.
	ErrBioTooLong = errors.New("profile: bio is too long")
)

// User is the signed-in identity. Avatar and Bio may be empty.
type User struct {
	ID     string
	Name   string
	Avatar string
	Status contacts.Status
	Bio    string
}

// New returns a user with the status defaulted to online.
func New(id, name string) User {
	return User{ID: id, Name: name, Status: contacts.StatusOnline}
}

// Statuses returns the selector entries in display order.
func Statuses() []contacts.Status {
	return append([]contacts.Status(nil), contacts.KnownStatuses...)
}

// Edit is the editable subset of User.
type Edit struct {
	Name   string
	Bio    string
	Status contacts.Status
}

// EditOf returns the current editable values of u.
func EditOf(u User) Edit {
	return Edit{Name: u.Name, Bio: u.Bio, Status: u.Status}
}

// Update applies e to u. The name is trimmed; a status outside the
// selector falls back to its first entry.
func Update(u User, e Edit) (User, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return u, ErrNameRequired
	}
	if utf8.RuneCountInString(e.Bio) > BioMaxLen {
		return u, ErrBioTooLong
	}
	status := e.Status
	if !status.Known() {
		status = contacts.StatusOnline
	}
	u.Name = name
	u.Bio = e.Bio
	u.Status = status
	return u, nil
}

// Editor guards the session's single User.
type Editor struct {
	mu   sync.RWMutex
	user User
}

// NewEditor starts editing u.
func NewEditor(u User) *Editor {
	return &Editor{user: u}
}

// User returns the current user.
func (e *Editor) User() User {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.user
}

// Apply validates and stores edit, returning the new user.
func (e *Editor) Apply(edit Edit) (User, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	u, err := Update(e.user, edit)
	if err != nil {
		return e.user, err
	}
	e.user = u
	return u, nil
}

// Replace swaps in a new user, e.g. after sign-up.
func (e *Editor) Replace(u User) {
	e.mu.Lock()
	e.user = u
	e.mu.Unlock()
}
