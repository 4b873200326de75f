package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/superlumen/internal/ctxlog"
)

// Validate performs a parity check between registered components and the
// template directory. A component without a view template is an error; a
// template directory without a component is only logged.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if r.source == nil {
		logger.Warn("Registry has no template source, skipping validation.")
		return nil
	}

	available, err := r.source.Names()
	if err != nil {
		return fmt.Errorf("registry validation failed: %w", err)
	}
	templates := make(map[string]struct{}, len(available))
	for _, name := range available {
		templates[name] = struct{}{}
	}

	var problems []string
	registered := r.Names()
	for _, name := range registered {
		if _, ok := templates[name]; !ok {
			problems = append(problems, fmt.Sprintf("component '%s': registered in Go but has no view template", name))
		}
	}
	for _, name := range available {
		if !r.Has(name) {
			logger.Warn("Template directory has no registered component.", "component", name)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	logger.Debug("Registry validated.", "components", len(registered))
	return nil
}
