// Package wizard implements a step sequence: an ordered list of sibling step
// elements inside one container, exactly one of them active.
//
// The active step is not stored. It is whichever direct child of the
// container carrying the wizard-step class also carries the active class.
package wizard

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/specialistvlad/superlumen/internal/component"
	"github.com/specialistvlad/superlumen/internal/errs"
	"github.com/specialistvlad/superlumen/internal/surface"
)

// Class names and selectors the wizard relies on.
const (
	StepSelector         = ".wizard-step"
	ActiveClass          = "active"
	NextSelector         = ".button-next"
	BackSelector         = ".button-back"
	DefaultFocusSelector = ".wizard-default-focus"
	enterSelector        = "input, select, textarea"
)

var enterTargets = regexp.MustCompile(`(?i)^(input|select|textarea|body)$`)

// ChangeFunc observes a transition between two step indexes. from is -1 when
// no step was active.
type ChangeFunc func(from, to int)

// Wizard moves the active mark between steps.
type Wizard struct {
	component.Base

	container *surface.Element
	observers []ChangeFunc
}

var _ component.Binder[*Wizard] = (*Wizard)(nil)

// New creates a wizard over container, which must be attached to its
// document. When no step is active the first one is activated.
func New(container *surface.Element) (*Wizard, error) {
	if container == nil || !container.Attached() {
		return nil, fmt.Errorf("%w: invalid wizard container element", errs.ErrInvalidArgument)
	}
	w := &Wizard{container: container}
	if w.ActiveIndex() < 0 && w.Len() > 0 {
		if err := w.GoTo(0); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Container returns the element holding the steps.
func (w *Wizard) Container() *surface.Element { return w.container }

// Steps returns the step elements in document order.
func (w *Wizard) Steps() []*surface.Element {
	steps, _ := w.container.ChildrenMatching(StepSelector)
	return steps
}

// Len returns the number of steps.
func (w *Wizard) Len() int { return len(w.Steps()) }

// ActiveIndex returns the index of the active step, or -1.
func (w *Wizard) ActiveIndex() int {
	return slices.IndexFunc(w.Steps(), func(s *surface.Element) bool {
		return s.HasClass(ActiveClass)
	})
}

// Active returns the active step, or nil.
func (w *Wizard) Active() *surface.Element {
	steps := w.Steps()
	if i := w.ActiveIndex(); i >= 0 {
		return steps[i]
	}
	return nil
}

// OnChange registers fn to run after every transition.
func (w *Wizard) OnChange(fn ChangeFunc) {
	w.observers = append(w.observers, fn)
}

// Next activates the following step. It does nothing on the last step.
func (w *Wizard) Next() {
	if i := w.ActiveIndex(); i < w.Len()-1 {
		_ = w.GoTo(i + 1)
	}
}

// Back activates the preceding step. It does nothing on the first step.
func (w *Wizard) Back() {
	if i := w.ActiveIndex(); i > 0 {
		_ = w.GoTo(i - 1)
	}
}

// GoToStart activates the first step.
func (w *Wizard) GoToStart() error { return w.GoTo(0) }

// GoToEnd activates the last step.
func (w *Wizard) GoToEnd() error { return w.GoTo(w.Len() - 1) }

// GoToStep activates step, which must be one of the wizard's steps.
func (w *Wizard) GoToStep(step *surface.Element) error {
	i := slices.Index(w.Steps(), step)
	if i < 0 {
		return fmt.Errorf("%w: element is not a step of this wizard", errs.ErrOutOfRange)
	}
	return w.GoTo(i)
}

// GoTo activates the step at index. Going to the active step does nothing.
// After a transition, focus moves to the step's default focus element if it
// has one.
func (w *Wizard) GoTo(index int) error {
	steps := w.Steps()
	if index < 0 || index >= len(steps) {
		return fmt.Errorf("%w: unable to find wizard step at index %d", errs.ErrOutOfRange, index)
	}
	from := w.ActiveIndex()
	if from == index {
		return nil
	}
	for _, s := range steps {
		s.RemoveClass(ActiveClass)
	}
	target := steps[index]
	target.AddClass(ActiveClass)
	if focus, _ := target.Query(DefaultFocusSelector); focus != nil {
		focus.Focus()
	}
	for _, fn := range w.observers {
		fn(from, index)
	}
	return nil
}

// Bind wires the next and back buttons of every step, and the Enter key on
// step inputs and on the document body. Binding twice does nothing.
//
// Handlers already registered on a next or back button run first; if one of
// them prevents the default action the wizard does not move.
func (w *Wizard) Bind() *Wizard {
	if !w.Activate() {
		return w
	}
	for _, step := range w.Steps() {
		w.each(step, NextSelector, surface.EventClick, func(ev *surface.Event) {
			if !ev.DefaultPrevented() {
				w.Next()
			}
		})
		w.each(step, BackSelector, surface.EventClick, func(ev *surface.Event) {
			if !ev.DefaultPrevented() {
				w.Back()
			}
		})
		w.each(step, enterSelector, surface.EventKeyPress, w.onEnter)
	}
	if body := w.container.Document().Body(); body != nil {
		body.On(surface.EventKeyPress, w.onEnter)
	}
	return w
}

func (w *Wizard) each(step *surface.Element, sel, typ string, h surface.Handler) {
	els, _ := step.QueryAll(sel)
	for _, el := range els {
		el.On(typ, h)
	}
}

// onEnter clicks the active step's next button, unless it is disabled.
func (w *Wizard) onEnter(ev *surface.Event) {
	if ev.Key != surface.KeyEnter || !w.container.Visible() {
		return
	}
	focused := w.container.Document().ActiveElement()
	if focused == nil || !enterTargets.MatchString(focused.Tag()) {
		return
	}
	active := w.Active()
	if active == nil {
		return
	}
	next, _ := active.Query(NextSelector)
	if next == nil || next.Disabled() {
		return
	}
	next.Click()
	ev.PreventDefault()
	ev.StopPropagation()
}
