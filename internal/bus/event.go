package bus

import "time"

// Event kinds published by the client-side stores and the add-contact flow.
const (
	ThemeChanged    = "prefs.theme_changed"
	LanguageChanged = "prefs.language_changed"
	ContactAdded    = "contacts.added"
	ContactSelected = "contacts.selected"
	FlowChanged     = "flow.state_changed"
)

// Event represents a domain event published on the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}
