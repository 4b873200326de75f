package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/specialistvlad/superlumen/internal/templates"
	"github.com/specialistvlad/superlumen/internal/viewmodel"
)

// Module is the interface that every component package must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered factories for a single application instance.
type Registry struct {
	source *templates.Source

	mu        sync.RWMutex
	factories map[string]viewmodel.Factory
}

var _ viewmodel.Resolver = (*Registry)(nil)

// New creates an empty registry resolving templates from source.
func New(source *templates.Source) *Registry {
	return &Registry{
		source:    source,
		factories: make(map[string]viewmodel.Factory),
	}
}

// Source returns the template source used by Resolve.
func (r *Registry) Source() *templates.Source {
	return r.source
}

// Register maps name to factory. It panics on an empty name, a nil factory
// or a name registered twice.
func (r *Registry) Register(name string, factory viewmodel.Factory) {
	if name == "" {
		panic("component name must not be empty")
	}
	if factory == nil {
		panic(fmt.Sprintf("component '%s' registered with a nil factory", name))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("component with name '%s' already registered", name))
	}
	slog.Debug("Registering component.", "name", name)
	r.factories[name] = factory
}

// RegisterModules lets each module register its components.
func (r *Registry) RegisterModules(modules ...Module) {
	for _, m := range modules {
		m.Register(r)
	}
}

// Names returns the registered component names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}
