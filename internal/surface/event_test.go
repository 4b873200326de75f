package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch_Bubbles(t *testing.T) {
	doc := mustParse(t)
	btn := doc.MustQuery("#go")

	var seen []string
	btn.On(EventClick, func(ev *Event) { seen = append(seen, "button") })
	doc.MustQuery("#f").On(EventClick, func(ev *Event) {
		assert.Same(t, btn, ev.Target)
		seen = append(seen, ev.Current.ID())
	})
	doc.Body().On(EventClick, func(ev *Event) { seen = append(seen, "body") })
	doc.Root().On(EventClick, func(ev *Event) { seen = append(seen, "document") })

	assert.True(t, btn.Click())
	assert.Equal(t, []string{"button", "f", "body", "document"}, seen)
}

func TestDispatch_StopPropagation(t *testing.T) {
	doc := mustParse(t)
	btn := doc.MustQuery("#go")

	var seen []string
	btn.On(EventClick, func(ev *Event) {
		ev.StopPropagation()
		seen = append(seen, "first")
	})
	btn.On(EventClick, func(ev *Event) { seen = append(seen, "second") })
	doc.Body().On(EventClick, func(ev *Event) { seen = append(seen, "body") })

	btn.Click()
	assert.Equal(t, []string{"first", "second"}, seen)
}

func TestDispatch_PreventDefault(t *testing.T) {
	doc := mustParse(t)
	name := doc.MustQuery("#name")
	doc.Body().On(EventKeyPress, func(ev *Event) {
		if ev.Key == KeyEnter {
			ev.PreventDefault()
		}
	})

	ev := name.Press(KeyEnter)
	assert.True(t, ev.DefaultPrevented())

	ev = name.Press("a")
	assert.False(t, ev.DefaultPrevented())
}

func TestClick_DisabledControl(t *testing.T) {
	doc := mustParse(t)
	btn := doc.MustQuery("#go")
	clicks := 0
	btn.On(EventClick, func(*Event) { clicks++ })

	btn.SetDisabled(true)
	assert.False(t, btn.Click())
	assert.Equal(t, 0, clicks)

	btn.SetDisabled(false)
	assert.True(t, btn.Click())
	assert.Equal(t, 1, clicks)
}

func TestOff_And_Discard(t *testing.T) {
	doc := mustParse(t)
	btn := doc.MustQuery("#go")
	clicks := 0
	btn.On(EventClick, func(*Event) { clicks++ })

	btn.Off(EventClick)
	btn.Click()
	assert.Equal(t, 0, clicks)

	btn.On(EventClick, func(*Event) { clicks++ })
	doc.MustQuery("#main").Discard()
	btn.Click()
	assert.Equal(t, 0, clicks)

	again, err := doc.Query("#go")
	require.NoError(t, err)
	assert.Nil(t, again)
}
