package app

import (
	"strings"

	"github.com/specialistvlad/superlumen/internal/surface"
)

const (
	templatesSegment = "templates/"
	bodyViewModelKey = "data-view-model"
)

// ResolveLocation extracts the component name from a page location such as
// file:///app/templates/about/index.html. It reports false when the location
// is not under a templates directory or points at a nested directory.
func ResolveLocation(href string) (string, bool) {
	i := strings.Index(href, templatesSegment)
	if i < 0 {
		return "", false
	}
	rest := href[i+len(templatesSegment):]
	if j := strings.IndexAny(rest, "?#"); j >= 0 {
		rest = rest[:j]
	}
	// drop the last path segment
	slash := strings.LastIndex(rest, "/")
	if slash <= 0 {
		return "", false
	}
	name := rest[:slash]
	if strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}

// BodyViewModel returns the component named by the data-view-model attribute
// of the document body.
func BodyViewModel(doc *surface.Document) string {
	body := doc.Body()
	if body == nil {
		return ""
	}
	name, _ := body.Attr(bodyViewModelKey)
	return strings.TrimSpace(name)
}
