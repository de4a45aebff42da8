package caseroom

import (
	"sync"
)

// SeedFunc builds a fresh initial state.
type SeedFunc func() State

// Workspace owns the current State. Writers replace the whole value under
// the lock; readers get a State they can keep since Apply never mutates.
type Workspace struct {
	mu    sync.RWMutex
	state State
	seed  SeedFunc
}

// NewWorkspace creates a workspace seeded by seed.
func NewWorkspace(seed SeedFunc) *Workspace {
	return &Workspace{
		state: seed(),
		seed:  seed,
	}
}

// Snapshot returns the current state.
func (w *Workspace) Snapshot() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// Inject validates ev and applies it.
func (w *Workspace) Inject(ev AlertEvent) (Change, error) {
	if err := ev.Validate(); err != nil {
		return Change{}, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	next, change := Apply(w.state, ev)
	w.state = next
	return change, nil
}

// SetConnection updates the feed connection indicator.
func (w *Workspace) SetConnection(c ConnectionState) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.state.Connection = c
}

// Reset restores the seed state, keeping the connection indicator.
func (w *Workspace) Reset() {
	fresh := w.seed()

	w.mu.Lock()
	defer w.mu.Unlock()

	fresh.Connection = w.state.Connection
	w.state = fresh
}
