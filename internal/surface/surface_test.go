package surface

import (
	"testing"

	"github.com/specialistvlad/superlumen/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html><html><head></head><body>
<div id="main" class="panel">
  <form id="f">
    <input id="name" value="alice">
    <textarea id="notes">hello</textarea>
    <select id="net"><option value="a">A</option><option value="b" selected>B</option></select>
    <button id="go" class="button-next">Go</button>
  </form>
</div>
<div id="hidden" hidden><span id="inner">x</span></div>
</body></html>`

func mustParse(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseString(page)
	require.NoError(t, err)
	return doc
}

func TestQuery_StableIdentity(t *testing.T) {
	doc := mustParse(t)

	a, err := doc.Query("#main")
	require.NoError(t, err)
	b, err := doc.Query("div.panel")
	require.NoError(t, err)

	require.NotNil(t, a)
	assert.Same(t, a, b)
	assert.Equal(t, "main", a.ID())
}

func TestQuery_DescendantsOnly(t *testing.T) {
	doc := mustParse(t)
	main := doc.MustQuery("#main")

	self, err := main.Query("#main")
	require.NoError(t, err)
	assert.Nil(t, self)

	all, err := doc.QueryAll("div")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestQuery_InvalidSelector(t *testing.T) {
	doc := mustParse(t)
	_, err := doc.Query("div[")
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestClasses(t *testing.T) {
	doc := mustParse(t)
	el := doc.MustQuery("#main")

	el.AddClass("active-about", "panel")
	assert.Equal(t, []string{"panel", "active-about"}, el.Classes())

	el.RemoveClass("panel")
	assert.False(t, el.HasClass("panel"))
	assert.True(t, el.HasClass("active-about"))

	el.SetClassName("  x   y ")
	assert.Equal(t, []string{"x", "y"}, el.Classes())

	el.RemoveClass("x", "y")
	_, ok := el.Attr("class")
	assert.False(t, ok)
}

func TestFormState(t *testing.T) {
	doc := mustParse(t)

	name := doc.MustQuery("#name")
	assert.Equal(t, "alice", name.Value())
	name.SetValue("bob")
	assert.Equal(t, "bob", name.Value())

	notes := doc.MustQuery("#notes")
	assert.Equal(t, "hello", notes.Value())
	notes.SetValue("bye")
	assert.Equal(t, "bye", notes.Value())

	net := doc.MustQuery("#net")
	assert.Equal(t, "b", net.Value())
	net.SetValue("a")
	assert.Equal(t, "a", net.Value())

	btn := doc.MustQuery("#go")
	assert.False(t, btn.Disabled())
	btn.SetDisabled(true)
	assert.True(t, btn.Disabled())
}

func TestVisible(t *testing.T) {
	doc := mustParse(t)

	assert.True(t, doc.MustQuery("#main").Visible())
	assert.False(t, doc.MustQuery("#inner").Visible())

	main := doc.MustQuery("#main")
	main.SetAttr("style", "display: none")
	assert.False(t, main.Visible())

	detached := doc.CreateElement("div")
	assert.False(t, detached.Visible())
}

func TestStructure(t *testing.T) {
	doc := mustParse(t)
	body := doc.Body()

	el := doc.CreateElement("DIV")
	assert.Equal(t, "div", el.Tag())
	assert.False(t, el.Attached())

	require.NoError(t, body.AppendChild(el))
	assert.True(t, el.Attached())
	assert.Same(t, body, el.Parent())
	assert.Equal(t, len(body.Children())-1, el.Index())

	require.NoError(t, el.SetInnerHTML(`<p class="a">one</p><p>two</p>`))
	assert.Equal(t, "onetwo", el.Text())
	inner, err := el.InnerHTML()
	require.NoError(t, err)
	assert.Equal(t, `<p class="a">one</p><p>two</p>`, inner)

	ps, err := el.ChildrenMatching(".a")
	require.NoError(t, err)
	assert.Len(t, ps, 1)

	closest, err := ps[0].Closest("body")
	require.NoError(t, err)
	assert.Same(t, body, closest)

	el.Remove()
	assert.False(t, el.Attached())
	el.Remove()
	assert.Nil(t, el.Parent())
}

func TestAppendChild_Rejects(t *testing.T) {
	doc := mustParse(t)
	other := NewDocument()
	main := doc.MustQuery("#main")

	err := main.AppendChild(other.CreateElement("div"))
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	err = doc.MustQuery("#f").AppendChild(main)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestFocus(t *testing.T) {
	doc := mustParse(t)
	assert.Same(t, doc.Body(), doc.ActiveElement())

	name := doc.MustQuery("#name")
	name.Focus()
	assert.True(t, name.Focused())

	doc.MustQuery("#main").Discard()
	assert.Same(t, doc.Body(), doc.ActiveElement())
}

func TestTarget(t *testing.T) {
	doc := mustParse(t)

	el, err := ResolveTarget(doc, Selector("#main"))
	require.NoError(t, err)
	assert.Equal(t, "main", el.ID())

	same, err := ResolveTarget(doc, el)
	require.NoError(t, err)
	assert.Same(t, el, same)

	testCases := []struct {
		name   string
		target Target
	}{
		{"nil target", nil},
		{"empty selector", Selector("")},
		{"no match", Selector("#missing")},
		{"nil element", (*Element)(nil)},
		{"foreign element", NewDocument().Body()},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveTarget(doc, tc.target)
			require.ErrorIs(t, err, errs.ErrInvalidArgument)
		})
	}
}
