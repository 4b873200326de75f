package surface

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Event types dispatched by the helpers in this package.
const (
	EventClick    = "click"
	EventKeyPress = "keypress"
	EventChange   = "change"
	EventInput    = "input"
	EventSubmit   = "submit"
)

// KeyEnter is the Key of an Enter press.
const KeyEnter = "Enter"

// Event travels from its target up to the document root.
type Event struct {
	Type   string
	Key    string
	Target *Element
	// Current is the element whose handler is running.
	Current *Element

	defaultPrevented bool
	stopped          bool
}

// PreventDefault marks the default action as cancelled.
func (ev *Event) PreventDefault() { ev.defaultPrevented = true }

// DefaultPrevented reports whether a handler called PreventDefault.
func (ev *Event) DefaultPrevented() bool { return ev.defaultPrevented }

// StopPropagation keeps the event from reaching further ancestors. The
// remaining handlers on the current element still run.
func (ev *Event) StopPropagation() { ev.stopped = true }

// Handler reacts to an event.
type Handler func(ev *Event)

// On registers h for events of type typ reaching e.
func (e *Element) On(typ string, h Handler) {
	byType, ok := e.doc.handlers[e.node]
	if !ok {
		byType = make(map[string][]Handler)
		e.doc.handlers[e.node] = byType
	}
	byType[typ] = append(byType[typ], h)
}

// Off removes every handler of type typ registered on e.
func (e *Element) Off(typ string) {
	if byType, ok := e.doc.handlers[e.node]; ok {
		delete(byType, typ)
	}
}

// Dispatch delivers ev to e and then to each ancestor in turn. It returns
// false when a handler prevented the default action.
func (e *Element) Dispatch(ev *Event) bool {
	if ev.Target == nil {
		ev.Target = e
	}
	for n := e.node; n != nil; n = n.Parent {
		hs := e.doc.handlers[n][ev.Type]
		if len(hs) > 0 {
			ev.Current = e.doc.wrap(n)
			for _, h := range append([]Handler(nil), hs...) {
				h(ev)
			}
		}
		if ev.stopped {
			break
		}
	}
	ev.Current = nil
	return !ev.defaultPrevented
}

// Click dispatches a click. Disabled form controls ignore clicks, as in a
// browser; the return value reports whether the click was delivered.
func (e *Element) Click() bool {
	if e.Disabled() && isFormControl(e.node) {
		return false
	}
	e.Dispatch(&Event{Type: EventClick})
	return true
}

// Press dispatches a keypress of key and returns the event so callers can
// inspect it.
func (e *Element) Press(key string) *Event {
	ev := &Event{Type: EventKeyPress, Key: key}
	e.Dispatch(ev)
	return ev
}

// Trigger dispatches a bare event of type typ.
func (e *Element) Trigger(typ string) *Event {
	ev := &Event{Type: typ}
	e.Dispatch(ev)
	return ev
}

func isFormControl(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Button, atom.Input, atom.Select, atom.Textarea, atom.Option, atom.Fieldset:
		return true
	}
	return false
}
