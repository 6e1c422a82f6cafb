package contacts

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/matheus3301/tgclone/internal/bus"
	"golang.org/x/text/cases"
)

// SelectFunc receives the id passed to Directory.Select.
type SelectFunc func(id string)

// Directory is the ordered, in-memory contact list for the current session.
// Only ids are unique; names may repeat.
type Directory struct {
	mu       sync.RWMutex
	contacts []Contact
	bus      *bus.Bus
	onSelect SelectFunc
	newID    func() string
}

// NewDirectory creates an empty directory publishing on b (which may be nil).
func NewDirectory(b *bus.Bus) *Directory {
	return &Directory{bus: b, newID: newContactID}
}

func newContactID() string {
	// v7 ids are time ordered and monotonic within the process.
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return "contact-" + id.String()
}

// OnSelect registers the selection handler.
func (d *Directory) OnSelect(fn SelectFunc) {
	d.mu.Lock()
	d.onSelect = fn
	d.mu.Unlock()
}

// Add stores a new contact built from c and returns it. Missing fields get
// defaults and the candidate id is replaced by a fresh directory id.
func (d *Directory) Add(c Candidate) Contact {
	contact := Contact{
		Name:     c.Name,
		Avatar:   c.Avatar,
		Status:   c.Status,
		LastSeen: c.LastSeen,
		IsOnline: c.IsOnline,
	}
	if contact.Name == "" {
		contact.Name = DefaultName
	}
	if contact.Status == "" {
		contact.Status = DefaultStatus
	}
	if contact.LastSeen == "" {
		contact.LastSeen = DefaultLastSeen
	}

	d.mu.Lock()
	contact.ID = d.newID()
	d.contacts = append(d.contacts, contact)
	d.mu.Unlock()

	d.bus.Emit(bus.ContactAdded, contact)
	return contact
}

// List returns the contacts whose name contains filter, ignoring case, in
// insertion order. An empty filter returns every contact.
func (d *Directory) List(filter string) []Contact {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if filter == "" {
		out := make([]Contact, len(d.contacts))
		copy(out, d.contacts)
		return out
	}

	fold := cases.Fold()
	needle := fold.String(filter)
	out := make([]Contact, 0, len(d.contacts))
	for _, c := range d.contacts {
		if strings.Contains(fold.String(c.Name), needle) {
			out = append(out, c)
		}
	}
	return out
}

// Get looks a contact up by id.
func (d *Directory) Get(id string) (Contact, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, c := range d.contacts {
		if c.ID == id {
			return c, true
		}
	}
	return Contact{}, false
}

// Len returns the number of stored contacts.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.contacts)
}

// Select forwards id to the selection handler. The directory is not
// changed and unknown ids are forwarded as-is.
func (d *Directory) Select(id string) {
	d.mu.RLock()
	fn := d.onSelect
	d.mu.RUnlock()

	if fn != nil {
		fn(id)
	}
	d.bus.Emit(bus.ContactSelected, id)
}
