package app

import (
	"github.com/specialistvlad/superlumen/internal/registry"
	"github.com/specialistvlad/superlumen/internal/screens"
)

// coreModules is the definitive list of all component modules that are
// compiled into the superlumen binary.
var coreModules = []registry.Module{
	screens.Module{},
}
