package flow

import (
	"fmt"
	"slices"
	"sync"

	"github.com/matheus3301/tgclone/internal/bus"
)

// State is a step of the search-and-add surface.
type State string

const (
	Idle      State = "IDLE"
	Searching State = "SEARCHING"
	Results   State = "RESULTS"
	Empty     State = "EMPTY"
	Failed    State = "FAILED"
	Adding    State = "ADDING"
	Added     State = "ADDED"
)

// validTransitions defines allowed state transitions. Searching may re-enter
// itself when a newer query supersedes one in flight. Failed is transient:
// a failed search falls back to Idle, a failed add back to Results so the
// user can pick again.
var validTransitions = map[State][]State{
	Idle:      {Searching},
	Searching: {Searching, Results, Empty, Failed},
	Results:   {Searching, Adding},
	Empty:     {Searching},
	Failed:    {Idle, Results},
	Adding:    {Added, Failed},
	Added:     {Idle},
}

// Machine tracks and enforces flow state transitions.
type Machine struct {
	mu      sync.RWMutex
	current State
	bus     *bus.Bus
}

// NewMachine creates a state machine starting in Idle.
func NewMachine(b *bus.Bus) *Machine {
	return &Machine{current: Idle, bus: b}
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Transition attempts to move to a new state. Returns error if transition is invalid.
func (m *Machine) Transition(to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !slices.Contains(validTransitions[m.current], to) {
		return fmt.Errorf("flow: invalid transition from %s to %s", m.current, to)
	}
	m.set(to)
	return nil
}

// Reset forces the machine back to Idle from any state.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != Idle {
		m.set(Idle)
	}
}

func (m *Machine) set(to State) {
	from := m.current
	m.current = to
	m.bus.Emit(bus.FlowChanged, Change{From: from, To: to})
}

// Change is the payload for flow.state_changed events.
type Change struct {
	From State
	To   State
}
