package viewmodel

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/specialistvlad/superlumen/internal/config"
	"github.com/specialistvlad/superlumen/internal/hostapi"
	"github.com/specialistvlad/superlumen/internal/ready"
	"github.com/specialistvlad/superlumen/internal/surface"
	"github.com/specialistvlad/superlumen/internal/window"
)

// ViewModel is implemented by every mountable component. The unexported
// method is only satisfied by embedding Node, so Node on its own is never a
// ViewModel.
type ViewModel interface {
	// Render wires the component to its surface. It runs once per mount.
	Render(ctx context.Context) error
	viewNode() *Node
}

// NodeOf returns the tree node embedded in vm.
func NodeOf(vm ViewModel) *Node {
	if vm == nil {
		return nil
	}
	return vm.viewNode()
}

// Factory creates a fresh, unmounted view-model.
type Factory func() ViewModel

// Destroyer is implemented by view-models that need to release resources
// when torn down. OnTeardown runs after the children are gone and before the
// surface is released.
type Destroyer interface {
	OnTeardown()
}

// Definition is a resolved component.
type Definition struct {
	Name     string
	Factory  Factory
	Template string
}

// Resolver maps component names to definitions.
type Resolver interface {
	Resolve(name string) (Definition, error)
}

// Env is what a tree needs from the outside world. Every node of a tree
// shares the Env of its root.
type Env struct {
	Resolver Resolver
	Document *surface.Document
	Ready    *ready.Signal
	Host     *hostapi.Client
	// Config is read once per node at construction. Nil means an empty
	// snapshot.
	Config config.Provider
	Window window.Window
	Logger *slog.Logger
}

// State is the lifecycle position of a node.
type State int

const (
	Constructed State = iota
	Waiting
	Rendering
	Active
	TornDown
)

func (s State) String() string {
	switch s {
	case Constructed:
		return "constructed"
	case Waiting:
		return "waiting"
	case Rendering:
		return "rendering"
	case Active:
		return "active"
	case TornDown:
		return "torn-down"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
