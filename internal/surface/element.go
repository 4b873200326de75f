package surface

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/superlumen/internal/errs"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is a handle on one node of a Document.
type Element struct {
	doc  *Document
	node *html.Node
}

// Document returns the owning document.
func (e *Element) Document() *Document { return e.doc }

// Tag returns the lower-case tag name.
func (e *Element) Tag() string { return e.node.Data }

// ID returns the id attribute.
func (e *Element) ID() string {
	v, _ := e.Attr("id")
	return v
}

// Attr returns the value of attribute key and whether it is present.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets attribute key to val, adding it if missing.
func (e *Element) SetAttr(key, val string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			e.node.Attr[i].Val = val
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes attribute key.
func (e *Element) RemoveAttr(key string) {
	e.node.Attr = slices.DeleteFunc(e.node.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == key
	})
}

// Classes returns the class list in attribute order.
func (e *Element) Classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

// HasClass reports whether name is in the class list.
func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.Classes(), name)
}

// AddClass appends names that are not present yet.
func (e *Element) AddClass(names ...string) {
	classes := e.Classes()
	for _, name := range names {
		if name != "" && !slices.Contains(classes, name) {
			classes = append(classes, name)
		}
	}
	e.setClasses(classes)
}

// RemoveClass drops names from the class list.
func (e *Element) RemoveClass(names ...string) {
	classes := slices.DeleteFunc(e.Classes(), func(c string) bool {
		return slices.Contains(names, c)
	})
	e.setClasses(classes)
}

// RemoveClassFunc drops every class for which match returns true.
func (e *Element) RemoveClassFunc(match func(string) bool) {
	e.setClasses(slices.DeleteFunc(e.Classes(), match))
}

// SetClassName replaces the whole class attribute.
func (e *Element) SetClassName(className string) {
	e.setClasses(strings.Fields(className))
}

func (e *Element) setClasses(classes []string) {
	if len(classes) == 0 {
		e.RemoveAttr("class")
		return
	}
	e.SetAttr("class", strings.Join(classes, " "))
}

// Parent returns the parent element, or nil for a detached element or the
// document itself.
func (e *Element) Parent() *Element {
	return e.doc.wrap(e.node.Parent)
}

// Children returns the element children.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// ChildrenMatching returns the element children matching sel.
func (e *Element) ChildrenMatching(sel string) ([]*Element, error) {
	s, err := compile(sel)
	if err != nil {
		return nil, err
	}
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && s.Match(c) {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out, nil
}

// Query returns the first descendant matching sel, or nil.
func (e *Element) Query(sel string) (*Element, error) {
	s, err := compile(sel)
	if err != nil {
		return nil, err
	}
	var found *html.Node
	for c := e.node.FirstChild; c != nil && found == nil; c = c.NextSibling {
		walk(c, func(n *html.Node) bool {
			if n.Type == html.ElementNode && s.Match(n) {
				found = n
				return false
			}
			return true
		})
	}
	return e.doc.wrap(found), nil
}

// QueryAll returns every descendant matching sel in document order.
func (e *Element) QueryAll(sel string) ([]*Element, error) {
	s, err := compile(sel)
	if err != nil {
		return nil, err
	}
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(n *html.Node) bool {
			if n.Type == html.ElementNode && s.Match(n) {
				out = append(out, e.doc.wrap(n))
			}
			return true
		})
	}
	return out, nil
}

// Matches reports whether e itself matches sel.
func (e *Element) Matches(sel string) (bool, error) {
	s, err := compile(sel)
	if err != nil {
		return false, err
	}
	return e.node.Type == html.ElementNode && s.Match(e.node), nil
}

// Closest returns e or its nearest ancestor matching sel, or nil.
func (e *Element) Closest(sel string) (*Element, error) {
	s, err := compile(sel)
	if err != nil {
		return nil, err
	}
	for n := e.node; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && s.Match(n) {
			return e.doc.wrap(n), nil
		}
	}
	return nil, nil
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	if other == nil || other.doc != e.doc {
		return false
	}
	for n := other.node; n != nil; n = n.Parent {
		if n == e.node {
			return true
		}
	}
	return false
}

// Attached reports whether e is part of the document tree.
func (e *Element) Attached() bool {
	for n := e.node; n != nil; n = n.Parent {
		if n == e.doc.root {
			return true
		}
	}
	return false
}

// AppendChild moves child to the end of e's children.
func (e *Element) AppendChild(child *Element) error {
	if child == nil || child.doc != e.doc {
		return fmt.Errorf("%w: element belongs to another document", errs.ErrInvalidArgument)
	}
	if child.Contains(e) {
		return fmt.Errorf("%w: cannot append an element to its own subtree", errs.ErrInvalidArgument)
	}
	child.detach()
	e.node.AppendChild(child.node)
	return nil
}

// Remove detaches e from its parent. Handlers stay registered so the element
// can be attached again.
func (e *Element) Remove() {
	e.detach()
}

// Discard detaches e and drops every handler and cached handle in its subtree.
func (e *Element) Discard() {
	e.detach()
	e.doc.forget(e.node)
}

func (e *Element) detach() {
	if e.node.Parent != nil {
		e.node.Parent.RemoveChild(e.node)
	}
}

// Index returns the position of e among its parent's element children, or -1.
func (e *Element) Index() int {
	p := e.Parent()
	if p == nil {
		return -1
	}
	return slices.Index(p.Children(), e)
}

// InnerHTML renders the children of e.
func (e *Element) InnerHTML() (string, error) {
	var buf bytes.Buffer
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// OuterHTML renders e itself.
func (e *Element) OuterHTML() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, e.node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SetInnerHTML replaces the children of e with the parsed fragment.
func (e *Element) SetInnerHTML(fragment string) error {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), e.contextNode())
	if err != nil {
		return fmt.Errorf("failed to parse fragment: %w", err)
	}
	e.clear()
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

func (e *Element) contextNode() *html.Node {
	if e.node.Type == html.ElementNode {
		return e.node
	}
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}

func (e *Element) clear() {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		e.doc.forget(c)
		c = next
	}
}

// Text returns the concatenated text content of e.
func (e *Element) Text() string {
	var sb strings.Builder
	walk(e.node, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		return true
	})
	return sb.String()
}

// SetText replaces the children of e with a single text node.
func (e *Element) SetText(text string) {
	e.clear()
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Value returns the form value of an input, textarea or select.
func (e *Element) Value() string {
	switch e.node.DataAtom {
	case atom.Textarea:
		return e.Text()
	case atom.Select:
		opts, _ := e.QueryAll("option")
		if len(opts) == 0 {
			return ""
		}
		chosen := opts[0]
		for _, o := range opts {
			if _, ok := o.Attr("selected"); ok {
				chosen = o
				break
			}
		}
		if v, ok := chosen.Attr("value"); ok {
			return v
		}
		return chosen.Text()
	default:
		v, _ := e.Attr("value")
		return v
	}
}

// SetValue sets the form value. For a select it marks the matching option.
func (e *Element) SetValue(v string) {
	switch e.node.DataAtom {
	case atom.Textarea:
		e.SetText(v)
	case atom.Select:
		opts, _ := e.QueryAll("option")
		for _, o := range opts {
			ov, ok := o.Attr("value")
			if !ok {
				ov = o.Text()
			}
			if ov == v {
				o.SetAttr("selected", "")
			} else {
				o.RemoveAttr("selected")
			}
		}
	default:
		e.SetAttr("value", v)
	}
}

// Disabled reports whether the disabled attribute is set.
func (e *Element) Disabled() bool {
	_, ok := e.Attr("disabled")
	return ok
}

// SetDisabled toggles the disabled attribute.
func (e *Element) SetDisabled(disabled bool) {
	e.toggleAttr("disabled", disabled)
}

// Checked reports whether the checked attribute is set.
func (e *Element) Checked() bool {
	_, ok := e.Attr("checked")
	return ok
}

// SetChecked toggles the checked attribute.
func (e *Element) SetChecked(checked bool) {
	e.toggleAttr("checked", checked)
}

func (e *Element) toggleAttr(key string, on bool) {
	if on {
		e.SetAttr(key, "")
		return
	}
	e.RemoveAttr(key)
}

// Visible reports whether e is attached and neither it nor an ancestor is
// hidden by the hidden attribute or an inline display:none.
func (e *Element) Visible() bool {
	if !e.Attached() {
		return false
	}
	for n := e.node; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		el := e.doc.wrap(n)
		if _, ok := el.Attr("hidden"); ok {
			return false
		}
		style, _ := el.Attr("style")
		if strings.Contains(strings.ReplaceAll(strings.ToLower(style), " ", ""), "display:none") {
			return false
		}
	}
	return true
}

// SetVisible toggles the hidden attribute.
func (e *Element) SetVisible(visible bool) {
	e.toggleAttr("hidden", !visible)
}

// Focus gives e input focus.
func (e *Element) Focus() {
	e.doc.Focus(e)
}

// Focused reports whether e has input focus.
func (e *Element) Focused() bool {
	return e.doc.ActiveElement() == e
}
