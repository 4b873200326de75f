package surface

import (
	"fmt"

	"github.com/specialistvlad/superlumen/internal/errs"
)

// Target names a mount point: either a CSS selector or an element.
type Target interface {
	Resolve(doc *Document) (*Element, error)
}

// Selector is a Target resolved against the whole document.
type Selector string

// Resolve returns the first element matching the selector.
func (s Selector) Resolve(doc *Document) (*Element, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty selector", errs.ErrInvalidArgument)
	}
	el, err := doc.Query(string(s))
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, fmt.Errorf("%w: selector %q matches nothing", errs.ErrInvalidArgument, string(s))
	}
	return el, nil
}

// Resolve returns e itself when it belongs to doc.
func (e *Element) Resolve(doc *Document) (*Element, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: nil element", errs.ErrInvalidArgument)
	}
	if e.doc != doc {
		return nil, fmt.Errorf("%w: element belongs to another document", errs.ErrInvalidArgument)
	}
	return e, nil
}

// ResolveTarget resolves t, treating a nil target as invalid.
func ResolveTarget(doc *Document, t Target) (*Element, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: no target", errs.ErrInvalidArgument)
	}
	return t.Resolve(doc)
}
