package surface

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/specialistvlad/superlumen/internal/errs"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const emptyPage = "<!DOCTYPE html><html><head></head><body></body></html>"

// Document owns a parsed HTML tree plus the per-element state that HTML itself
// does not carry: event handlers and input focus.
type Document struct {
	root     *html.Node
	elements map[*html.Node]*Element
	handlers map[*html.Node]map[string][]Handler
	active   *html.Node
}

// Parse reads a full HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &Document{
		root:     root,
		elements: make(map[*html.Node]*Element),
		handlers: make(map[*html.Node]map[string][]Handler),
	}, nil
}

// ParseString is Parse over a string.
func ParseString(page string) (*Document, error) {
	return Parse(strings.NewReader(page))
}

// NewDocument returns an empty page with a head and a body.
func NewDocument() *Document {
	doc, err := ParseString(emptyPage)
	if err != nil {
		// The html parser accepts any input; this cannot happen.
		panic(err)
	}
	return doc
}

// Root returns the document node. Handlers registered on it see every
// bubbling event.
func (d *Document) Root() *Element {
	return d.wrap(d.root)
}

// Body returns the <body> element. The html parser always synthesizes one.
func (d *Document) Body() *Element {
	var body *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			body = n
			return false
		}
		return true
	})
	return d.wrap(body)
}

// Query returns the first element in document order matching sel, or nil.
func (d *Document) Query(sel string) (*Element, error) {
	return d.Root().Query(sel)
}

// QueryAll returns every element in document order matching sel.
func (d *Document) QueryAll(sel string) ([]*Element, error) {
	return d.Root().QueryAll(sel)
}

// MustQuery is Query for selectors known to be valid; it returns nil when
// nothing matches.
func (d *Document) MustQuery(sel string) *Element {
	el, err := d.Query(sel)
	if err != nil {
		panic(err)
	}
	return el
}

// CreateElement creates a detached element owned by this document.
func (d *Document) CreateElement(tag string) *Element {
	tag = strings.ToLower(tag)
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	return d.wrap(n)
}

// Focus moves input focus to el.
func (d *Document) Focus(el *Element) {
	if el == nil || el.doc != d {
		return
	}
	d.active = el.node
}

// ActiveElement returns the focused element, or the body when nothing
// attached has focus.
func (d *Document) ActiveElement() *Element {
	if d.active != nil && d.wrap(d.active).Attached() {
		return d.wrap(d.active)
	}
	return d.Body()
}

// HTML renders the whole document.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{doc: d, node: n}
	d.elements[n] = el
	return el
}

// forget drops cached state for n and its subtree.
func (d *Document) forget(n *html.Node) {
	walk(n, func(c *html.Node) bool {
		delete(d.elements, c)
		delete(d.handlers, c)
		if d.active == c {
			d.active = nil
		}
		return true
	})
}

func compile(sel string) (cascadia.Selector, error) {
	s, err := cascadia.Compile(sel)
	if err != nil {
		return nil, fmt.Errorf("%w: selector %q: %v", errs.ErrInvalidArgument, sel, err)
	}
	return s, nil
}

// walk visits n and its descendants depth first, stopping when visit returns
// false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}
