// Package errs defines the error taxonomy shared by the view engine.
//
// Every failure raised by the engine wraps exactly one of these sentinels so
// callers can branch with errors.Is. The engine never retries or recovers on
// its own; propagation is always the caller's responsibility.
package errs

import "errors"

var (
	// ErrInvalidArgument reports a bad or missing argument, such as an empty
	// component name or a mount point that cannot be resolved.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict reports a duplicate sibling id.
	ErrConflict = errors.New("conflict")
	// ErrNotFound reports an unresolvable component, template or channel.
	ErrNotFound = errors.New("not found")
	// ErrOutOfRange reports a step index with no corresponding step.
	ErrOutOfRange = errors.New("out of range")
	// ErrPrecondition reports misuse of a lifecycle contract.
	ErrPrecondition = errors.New("precondition violation")

	// ErrNoChannel is returned when no host channel is configured.
	ErrNoChannel = errors.New("host channel not set")
	// ErrTimeout is returned when the host does not reply in time.
	ErrTimeout = errors.New("host reply timed out")
)
