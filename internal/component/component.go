// Package component holds the lifecycle contract shared by generic UI units
// that attach behavior to an existing surface, such as the wizard.
package component

import "fmt"

// Binder is implemented by every attachable UI unit. Bind wires the unit to
// its surface and returns the unit for chaining.
type Binder[T any] interface {
	Bind() T
}

// State is the lifecycle position of a unit.
type State int

const (
	Constructed State = iota
	Bound
)

func (s State) String() string {
	switch s {
	case Constructed:
		return "constructed"
	case Bound:
		return "bound"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Base tracks the lifecycle of a unit. Embed it and call Activate at the top
// of Bind.
type Base struct {
	state State
}

// Activate moves the unit to Bound. It returns false when the unit was
// already bound, in which case Bind must not wire anything again.
func (b *Base) Activate() bool {
	if b.state == Bound {
		return false
	}
	b.state = Bound
	return true
}

// State returns the current lifecycle state.
func (b *Base) State() State {
	return b.state
}
