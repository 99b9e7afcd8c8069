package document

import "sync"

// Awareness is the local session state of a page: feature flags and the
// block that currently holds editing focus.
type Awareness struct {
	mu      sync.RWMutex
	flags   map[string]bool
	focused string
}

// NewAwareness creates session state seeded with flags
func NewAwareness(flags map[string]bool) *Awareness {
	a := &Awareness{flags: make(map[string]bool, len(flags))}
	for name, on := range flags {
		a.flags[name] = on
	}
	return a
}

// Flag reports whether the named flag is enabled
func (a *Awareness) Flag(name string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.flags[name]
}

// SetFlag enables or disables a flag for the rest of the session
func (a *Awareness) SetFlag(name string, on bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.flags[name] = on
}

// Focused returns the id of the focused block, "" when nothing is focused
func (a *Awareness) Focused() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.focused
}

func (a *Awareness) setFocused(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	changed := a.focused != id
	a.focused = id
	return changed
}
