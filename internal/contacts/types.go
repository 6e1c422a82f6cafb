package contacts

import "strings"

// Status is a presence value. The four well-known values drive colours and
// labels; anything else is carried through as free-form text.
type Status string

const (
	StatusOnline  Status = "online"
	StatusAway    Status = "away"
	StatusBusy    Status = "busy"
	StatusOffline Status = "offline"
)

// KnownStatuses lists the selectable statuses in display order.
var KnownStatuses = []Status{StatusOnline, StatusAway, StatusBusy, StatusOffline}

// ParseStatus normalizes s. Empty input yields "".
func ParseStatus(s string) Status {
	return Status(strings.ToLower(strings.TrimSpace(s)))
}

// Known reports whether s is one of KnownStatuses.
func (s Status) Known() bool {
	switch s {
	case StatusOnline, StatusAway, StatusBusy, StatusOffline:
		return true
	}
	return false
}

// Color returns the tview colour name used for the presence dot.
// Unrecognized statuses render gray.
func (s Status) Color() string {
	switch s {
	case StatusOnline:
		return "green"
	case StatusAway:
		return "yellow"
	case StatusBusy:
		return "red"
	default:
		return "gray"
	}
}

// LabelKey returns the translation key for the status label.
func (s Status) LabelKey() string {
	if !s.Known() {
		return "status_" + string(StatusOffline)
	}
	return "status_" + string(s)
}

// Contact is a directory entry. All fields are resolved when the contact is
// added, so readers never have to apply defaults.
type Contact struct {
	ID          string
	Name        string
	Avatar      string
	Status      Status
	LastSeen    string
	UnreadCount int
	IsOnline    bool
}

// Presence is the one-line presence text shown under a contact's name.
func (c Contact) Presence() string {
	if c.Status == StatusOnline {
		return "Online"
	}
	return c.LastSeen
}

// Initial returns the first rune of the name, used as an avatar fallback.
func (c Contact) Initial() string {
	for _, r := range c.Name {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// Candidate is a contact-shaped record produced by a search. Zero values
// mean "not provided"; Directory.Add fills them in.
type Candidate struct {
	ID       string
	Name     string
	Avatar   string
	Status   Status
	LastSeen string
	IsOnline bool
}

// Defaults applied to fields a candidate leaves empty.
const (
	DefaultName     = "Unknown"
	DefaultLastSeen = "Never"
	DefaultStatus   = StatusOffline
)
