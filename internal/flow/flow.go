package flow

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/matheus3301/tgclone/internal/bus"
	"github.com/matheus3301/tgclone/internal/contacts"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single search or commit call.
const DefaultTimeout = 5 * time.Second

var (
	// ErrNoSelection is returned by Add when no candidate was chosen.
	ErrNoSelection = errors.New("flow: no candidate selected")
	// ErrStale is returned to a caller whose search was superseded by a
	// newer one or by Reset. Its results were discarded.
	ErrStale = errors.New("flow: superseded by a newer request")
)

// Flow drives the search-and-add surface: query the remote directory, pick
// one candidate and import it into the local Directory.
type Flow struct {
	svc     contacts.Service
	dir     *contacts.Directory
	machine *Machine
	logger  *zap.Logger
	timeout time.Duration

	mu       sync.Mutex
	gen      uint64
	cancel   context.CancelFunc
	query    string
	results  []contacts.Candidate
	selected *contacts.Candidate
	lastErr  error
}

// New creates a flow over svc and dir. A zero timeout uses DefaultTimeout.
func New(svc contacts.Service, dir *contacts.Directory, b *bus.Bus, logger *zap.Logger, timeout time.Duration) *Flow {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Flow{
		svc:     svc,
		dir:     dir,
		machine: NewMachine(b),
		logger:  logger,
		timeout: timeout,
	}
}

// State returns the current flow state.
func (f *Flow) State() State { return f.machine.Current() }

// Query returns the most recently submitted query.
func (f *Flow) Query() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.query
}

// Results returns a copy of the candidates from the last successful search.
func (f *Flow) Results() []contacts.Candidate {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]contacts.Candidate, len(f.results))
	copy(out, f.results)
	return out
}

// Selected returns the chosen candidate, if any.
func (f *Flow) Selected() (contacts.Candidate, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selected == nil {
		return contacts.Candidate{}, false
	}
	return *f.selected, true
}

// Err returns the error of the last failed search or add, or ErrNoMatches
// after an empty search. It is cleared by the next Search and by Reset.
func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Search runs query against the service. Only the newest call may resolve
// the flow; an older call that returns later gets ErrStale.
func (f *Flow) Search(ctx context.Context, query string) ([]contacts.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, contacts.ErrEmptyQuery
	}

	f.mu.Lock()
	if f.machine.Current() == Added {
		f.machine.Reset()
	}
	if err := f.machine.Transition(Searching); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	if f.cancel != nil {
		f.cancel()
	}
	f.gen++
	gen := f.gen
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	f.cancel = cancel
	f.query = query
	f.results = nil
	f.selected = nil
	f.lastErr = nil
	f.mu.Unlock()

	results, err := f.svc.Search(ctx, query)
	cancel()

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		f.logger.Debug("discarding stale search", zap.String("query", query))
		return nil, ErrStale
	}
	f.cancel = nil

	if err == nil && len(results) == 0 {
		err = contacts.ErrNoMatches
	}
	switch {
	case errors.Is(err, contacts.ErrNoMatches):
		f.lastErr = err
		_ = f.machine.Transition(Empty)
		return nil, err
	case err != nil:
		f.lastErr = err
		f.logger.Warn("contact search failed", zap.String("query", query), zap.Error(err))
		_ = f.machine.Transition(Failed)
		_ = f.machine.Transition(Idle)
		return nil, err
	}

	f.results = results
	_ = f.machine.Transition(Results)
	out := make([]contacts.Candidate, len(results))
	copy(out, results)
	return out, nil
}

// Choose selects the candidate with id from the current results.
func (f *Flow) Choose(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.machine.Current() != Results {
		return ErrNoSelection
	}
	for i := range f.results {
		if f.results[i].ID == id {
			c := f.results[i]
			f.selected = &c
			return nil
		}
	}
	return contacts.ErrNotFound
}

// Add commits the selected candidate and imports it into the directory. On
// failure the directory is left untouched and the flow returns to Results
// with the same candidates and selection, ready for another Choose or Add.
func (f *Flow) Add(ctx context.Context) (contacts.Contact, error) {
	f.mu.Lock()
	if f.selected == nil || f.machine.Current() != Results {
		f.mu.Unlock()
		return contacts.Contact{}, ErrNoSelection
	}
	if err := f.machine.Transition(Adding); err != nil {
		f.mu.Unlock()
		return contacts.Contact{}, err
	}
	chosen := *f.selected
	gen := f.gen
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	f.cancel = cancel
	f.mu.Unlock()

	committed, err := f.svc.Commit(ctx, chosen)
	cancel()

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		return contacts.Contact{}, ErrStale
	}
	f.cancel = nil
	if err != nil {
		f.lastErr = err
		f.logger.Warn("contact add failed", zap.String("candidate", chosen.ID), zap.Error(err))
		_ = f.machine.Transition(Failed)
		_ = f.machine.Transition(Results)
		return contacts.Contact{}, err
	}

	contact := f.dir.Add(committed)
	f.logger.Info("contact added", zap.String("id", contact.ID), zap.String("name", contact.Name))
	_ = f.machine.Transition(Added)
	return contact, nil
}

// Reset abandons any in-flight call and returns the flow to Idle.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.gen++
	f.query = ""
	f.results = nil
	f.selected = nil
	f.lastErr = nil
	f.machine.Reset()
}
