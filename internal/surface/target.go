package surface

import "errors"

// Phase selects when a listener runs during Dispatch
type Phase int

const (
	// Bubble listeners run after every capture listener
	Bubble Phase = iota
	// Capture listeners run first, ahead of the target's own bindings
	Capture
)

// Listener handles a key event. Returned errors are collected by Dispatch.
type Listener func(ev *KeyEvent) error

type registration struct {
	fn      Listener
	phase   Phase
	removed bool
}

// Target is something key events are dispatched to: a rich text or the
// window. It is owned by the event loop goroutine and is not safe for
// concurrent use.
type Target struct {
	listeners []*registration
}

// AddListener registers fn for the given phase and returns a function that
// removes it. Calling the returned function more than once is harmless.
func (t *Target) AddListener(fn Listener, phase Phase) func() {
	reg := &registration{fn: fn, phase: phase}
	t.listeners = append(t.listeners, reg)
	return func() {
		if reg.removed {
			return
		}
		reg.removed = true
		for i, r := range t.listeners {
			if r == reg {
				t.listeners = append(t.listeners[:i:i], t.listeners[i+1:]...)
				break
			}
		}
	}
}

// ListenerCount returns the number of listeners registered for phase
func (t *Target) ListenerCount(phase Phase) int {
	n := 0
	for _, r := range t.listeners {
		if r.phase == phase {
			n++
		}
	}
	return n
}

// Dispatch runs capture listeners, then bubble listeners, each in
// registration order. Listeners added during dispatch wait for the next
// event; listeners removed during dispatch do not run. A stopped event
// skips the remaining listeners. Listener errors do not stop dispatch.
func (t *Target) Dispatch(ev *KeyEvent) error {
	snapshot := append([]*registration(nil), t.listeners...)

	var errs []error
	for _, phase := range []Phase{Capture, Bubble} {
		for _, reg := range snapshot {
			if reg.phase != phase || reg.removed {
				continue
			}
			if ev.PropagationStopped() {
				return errors.Join(errs...)
			}
			if err := reg.fn(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
