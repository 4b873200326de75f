// Package surface is the rendering surface of the view engine: a mutable HTML
// document built on golang.org/x/net/html, queried with CSS selectors
// compiled by cascadia, with a minimal bubbling event model.
//
// Elements keep a stable identity: asking the document twice for the same
// node yields the same *Element, so elements can be compared with ==.
//
// A Document is not safe for concurrent use. Like every other part of the
// view tree it is only touched from the UI loop.
package surface
