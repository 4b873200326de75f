package registry

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/superlumen/internal/errs"
	"github.com/specialistvlad/superlumen/internal/viewmodel"
)

// Resolve returns the factory and template of component name. A registered
// component without a view template resolves with an empty template.
func (r *Registry) Resolve(name string) (viewmodel.Definition, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return viewmodel.Definition{}, fmt.Errorf("%w: no component registered as '%s'", errs.ErrNotFound, name)
	}

	def := viewmodel.Definition{Name: name, Factory: factory}
	if r.source == nil {
		return def, nil
	}
	tmpl, err := r.source.Template(name)
	switch {
	case err == nil:
		def.Template = tmpl
	case errors.Is(err, errs.ErrNotFound):
	default:
		return viewmodel.Definition{}, fmt.Errorf("failed to load template of component '%s': %w", name, err)
	}
	return def, nil
}
