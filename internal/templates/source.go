// Package templates serves the HTML fragments and pages of view-model
// components from a file system, and watches a template directory for edits.
//
// A component named "about" owns the directory about/, holding view.html
// (the fragment mounted by its view-model) and optionally index.html (a full
// page that boots the component as the root view-model).
package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"sync"

	"github.com/specialistvlad/superlumen/internal/errs"
)

// File names inside a component directory.
const (
	ViewFile = "view.html"
	PageFile = "index.html"
)

// Source reads component templates from an fs.FS and caches them until
// invalidated.
type Source struct {
	fsys fs.FS

	mu    sync.RWMutex
	cache map[string]string
}

// New creates a source over fsys.
func New(fsys fs.FS) *Source {
	return &Source{fsys: fsys, cache: make(map[string]string)}
}

// Dir creates a source over a directory on disk.
func Dir(dir string) *Source {
	return New(os.DirFS(dir))
}

// Template returns the view fragment of component name.
func (s *Source) Template(name string) (string, error) {
	return s.read(name, ViewFile)
}

// Page returns the full page of component name.
func (s *Source) Page(name string) (string, error) {
	return s.read(name, PageFile)
}

func (s *Source) read(name, file string) (string, error) {
	if name == "" || !fs.ValidPath(name) || path.Base(name) != name {
		return "", fmt.Errorf("%w: invalid component name '%s'", errs.ErrInvalidArgument, name)
	}
	key := path.Join(name, file)

	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	b, err := fs.ReadFile(s.fsys, key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: template '%s'", errs.ErrNotFound, key)
		}
		return "", fmt.Errorf("failed to read template '%s': %w", key, err)
	}

	s.mu.Lock()
	s.cache[key] = string(b)
	s.mu.Unlock()
	return string(b), nil
}

// Names lists every component directory holding a view fragment, sorted.
func (s *Source) Names() ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := fs.Stat(s.fsys, path.Join(e.Name(), ViewFile)); err == nil {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Invalidate drops cached files of the given components, or everything when
// called without names.
func (s *Source) Invalidate(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(names) == 0 {
		s.cache = make(map[string]string)
		return
	}
	for _, name := range names {
		delete(s.cache, path.Join(name, ViewFile))
		delete(s.cache, path.Join(name, PageFile))
	}
}
