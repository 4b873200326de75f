// Package ready implements the process-wide "document ready" latch.
//
// A Signal collects continuations until it fires. Firing drains them exactly
// once, in registration order, and permanently marks the signal as fired;
// anything subscribing afterwards runs immediately.
package ready

import "sync"

// Signal is a one-shot latch. The zero value is ready to use.
type Signal struct {
	mu      sync.Mutex
	fired   bool
	pending []func()
}

// New returns an unfired Signal.
func New() *Signal {
	return &Signal{}
}

// Subscribe registers fn to run when the signal fires. If it already fired,
// fn runs before Subscribe returns.
func (s *Signal) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	if s.fired {
		s.mu.Unlock()
		fn()
		return
	}
	s.pending = append(s.pending, fn)
	s.mu.Unlock()
}

// Fire marks the signal fired and runs every pending continuation. It returns
// false, doing nothing, when the signal had already fired.
func (s *Signal) Fire() bool {
	s.mu.Lock()
	if s.fired {
		s.mu.Unlock()
		return false
	}
	s.fired = true
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	// Continuations may subscribe again; those run inline since fired is set.
	for _, fn := range pending {
		fn()
	}
	return true
}

// Fired reports whether Fire has been called.
func (s *Signal) Fired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fired
}

// Pending returns the number of continuations waiting for the signal.
func (s *Signal) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
