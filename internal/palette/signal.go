package palette

import "errors"

// ErrAlreadyEnded is returned when a second terminal action is attempted
var ErrAlreadyEnded = errors.New("palette interaction already ended")

// EndKind tells how an interaction ended
type EndKind int

const (
	Aborted EndKind = iota
	Committed
)

func (k EndKind) String() string {
	if k == Committed {
		return "committed"
	}
	return "aborted"
}

// Ended is the result of an interaction. Search is set for commits only.
type Ended struct {
	Kind   EndKind
	Search string
}

// Signal fires exactly once, with the result of the interaction. It is
// created by the palette's owner and handed to the palette.
type Signal struct {
	ended     *Ended
	listeners []func(Ended)
}

// NewSignal creates an unfired signal
func NewSignal() *Signal {
	return &Signal{}
}

// OnEnd registers fn to run synchronously when the signal fires.
// Registering on a fired signal calls fn immediately.
func (s *Signal) OnEnd(fn func(Ended)) {
	if s.ended != nil {
		fn(*s.ended)
		return
	}
	s.listeners = append(s.listeners, fn)
}

// Abort fires the signal without payload
func (s *Signal) Abort() error {
	return s.fire(Ended{Kind: Aborted})
}

// Commit fires the signal with the final search string
func (s *Signal) Commit(search string) error {
	return s.fire(Ended{Kind: Committed, Search: search})
}

// Result returns the result once the signal has fired
func (s *Signal) Result() (Ended, bool) {
	if s.ended == nil {
		return Ended{}, false
	}
	return *s.ended, true
}

// Fired reports whether the signal has fired
func (s *Signal) Fired() bool {
	return s.ended != nil
}

func (s *Signal) fire(e Ended) error {
	if s.ended != nil {
		return ErrAlreadyEnded
	}
	s.ended = &e
	listeners := s.listeners
	s.listeners = nil
	for _, fn := range listeners {
		fn(e)
	}
	return nil
}
