package viewmodel

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/specialistvlad/superlumen/internal/config"
	"github.com/specialistvlad/superlumen/internal/ctxlog"
	"github.com/specialistvlad/superlumen/internal/errs"
	"github.com/specialistvlad/superlumen/internal/hostapi"
	"github.com/specialistvlad/superlumen/internal/nodeid"
	"github.com/specialistvlad/superlumen/internal/surface"
	"github.com/specialistvlad/superlumen/internal/window"
)

// Node carries the tree bookkeeping of a view-model. Embed it by value.
type Node struct {
	self   ViewModel
	id     string
	name   string
	env    *Env
	parent *Node
	// children is in insertion order, which is also render and teardown
	// order.
	children []ViewModel
	surface  *surface.Element
	owns     bool
	config   config.Snapshot
	state    State
	renders  int
	logger   *slog.Logger
}

func (n *Node) viewNode() *Node { return n }

// ID returns the node id, unique among its siblings.
func (n *Node) ID() string { return n.id }

// Name returns the component name the node was created from.
func (n *Node) Name() string { return n.name }

// State returns the lifecycle state.
func (n *Node) State() State { return n.state }

// Live reports whether the node is mounted and not torn down. Reply callbacks
// must check it before touching the surface.
func (n *Node) Live() bool {
	return n.state != TornDown && n.surface != nil
}

// Surface returns the element the node renders into, or nil after teardown.
func (n *Node) Surface() *surface.Element { return n.surface }

// Config returns the snapshot read at construction.
func (n *Node) Config() config.Snapshot { return n.config }

// Document returns the shared document.
func (n *Node) Document() *surface.Document {
	if n.env == nil {
		return nil
	}
	return n.env.Document
}

// Host returns the host API client, which may be nil.
func (n *Node) Host() *hostapi.Client {
	if n.env == nil {
		return nil
	}
	return n.env.Host
}

// Window returns the window shell, which may be nil.
func (n *Node) Window() window.Window {
	if n.env == nil {
		return nil
	}
	return n.env.Window
}

// Logger returns a logger tagged with the node's name and id.
func (n *Node) Logger() *slog.Logger {
	if n.logger == nil {
		return slog.Default()
	}
	return n.logger
}

// Parent returns the owning view-model, or nil for the root and for nodes
// that were torn down.
func (n *Node) Parent() ViewModel {
	if n.parent == nil {
		return nil
	}
	return n.parent.self
}

// Root walks the parent chain to the top.
func (n *Node) Root() ViewModel {
	top := n
	for top.parent != nil {
		top = top.parent
	}
	return top.self
}

// Path returns the address of the node: the ids from just below the root
// down to the node itself.
func (n *Node) Path() nodeid.Address {
	var ids []string
	for cur := n; cur.parent != nil; cur = cur.parent {
		ids = append(ids, cur.id)
	}
	slices.Reverse(ids)
	return nodeid.Address{Path: ids}
}

// Children returns a copy of the direct children in insertion order.
func (n *Node) Children() []ViewModel {
	return slices.Clone(n.children)
}

// Child returns the direct child with id, or nil.
func (n *Node) Child(id string) ViewModel {
	if i := n.indexID(id); i >= 0 {
		return n.children[i]
	}
	return nil
}

// Contains reports whether vm is a direct child.
func (n *Node) Contains(vm ViewModel) bool {
	return n.indexOf(vm) >= 0
}

// ContainsID reports whether a direct child has id.
func (n *Node) ContainsID(id string) bool {
	return n.indexID(id) >= 0
}

// Find resolves addr relative to n.
func (n *Node) Find(addr nodeid.Address) ViewModel {
	cur := n
	for _, id := range addr.Path {
		i := cur.indexID(id)
		if i < 0 {
			return nil
		}
		cur = cur.children[i].viewNode()
	}
	return cur.self
}

// Walk visits n and its descendants depth first in insertion order. It stops
// when fn returns false.
func (n *Node) Walk(fn func(ViewModel) bool) bool {
	if !fn(n.self) {
		return false
	}
	for _, c := range slices.Clone(n.children) {
		if !c.viewNode().Walk(fn) {
			return false
		}
	}
	return true
}

// Query returns the first element under the node's surface matching sel, or
// nil when nothing matches or the node is not live.
func (n *Node) Query(sel string) (*surface.Element, error) {
	if !n.Live() {
		return nil, nil
	}
	return n.surface.Query(sel)
}

// QueryAll returns every element under the node's surface matching sel.
func (n *Node) QueryAll(sel string) ([]*surface.Element, error) {
	if !n.Live() {
		return nil, nil
	}
	return n.surface.QueryAll(sel)
}

func (n *Node) indexOf(vm ViewModel) int {
	if vm == nil {
		return -1
	}
	target := vm.viewNode()
	return slices.IndexFunc(n.children, func(c ViewModel) bool {
		return c.viewNode() == target
	})
}

func (n *Node) indexID(id string) int {
	return slices.IndexFunc(n.children, func(c ViewModel) bool {
		return c.viewNode().id == id
	})
}

// init binds a freshly constructed view-model into the tree. It must run
// before any other method of the node.
func (n *Node) init(ctx context.Context, self ViewModel, env *Env, name, id string, parent *Node) {
	n.self = self
	n.env = env
	n.name = name
	n.id = id
	n.parent = parent

	base := env.Logger
	if base == nil {
		base = ctxlog.FromContext(ctx)
	}
	n.logger = base.With("view", name, "view_id", id)

	if env.Config != nil {
		snap, err := env.Config.ReadConfig(ctx)
		if err != nil {
			n.logger.Warn("Failed to read configuration, using an empty snapshot", "error", err)
		} else {
			n.config = snap
		}
	}
}

// schedule queues the first render behind the ready signal.
func (n *Node) schedule(ctx context.Context) {
	n.state = Waiting
	n.env.Ready.Subscribe(func() { n.render(ctx) })
}

func (n *Node) render(ctx context.Context) {
	if n.state == TornDown {
		n.logger.Debug("Skipping render of torn down view-model")
		return
	}
	n.state = Rendering
	n.renders++
	ctx = ctxlog.WithLogger(ctx, n.logger)
	n.logger.Debug("Rendering view-model", "render", n.renders)
	if err := n.self.Render(ctx); err != nil {
		n.logger.Error("View-model render failed", "error", err)
	}
	if n.state == Rendering {
		n.state = Active
	}
}

// Mount creates the root of a tree over target. The root renders into target
// but does not own it, so teardown leaves it in the document.
func Mount(ctx context.Context, env *Env, name string, target surface.Target) (ViewModel, error) {
	if env == nil || env.Resolver == nil || env.Document == nil || env.Ready == nil {
		return nil, fmt.Errorf("%w: environment needs a resolver, a document and a ready signal", errs.ErrInvalidArgument)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: component name is empty", errs.ErrInvalidArgument)
	}
	el, err := surface.ResolveTarget(env.Document, target)
	if err != nil {
		return nil, err
	}
	def, err := env.Resolver.Resolve(name)
	if err != nil {
		return nil, err
	}
	vm, err := construct(def)
	if err != nil {
		return nil, err
	}

	n := vm.viewNode()
	n.init(ctx, vm, env, name, nodeid.New(), nil)
	n.surface = el
	n.logger.Info("Mounted root view-model")
	n.schedule(ctx)
	return vm, nil
}

func construct(def Definition) (ViewModel, error) {
	if def.Factory == nil {
		return nil, fmt.Errorf("%w: component '%s' has no factory", errs.ErrPrecondition, def.Name)
	}
	vm := def.Factory()
	if vm == nil {
		return nil, fmt.Errorf("%w: factory of '%s' returned nil", errs.ErrPrecondition, def.Name)
	}
	if vm.viewNode().self != nil {
		return nil, fmt.Errorf("%w: factory of '%s' returned an instance that is already mounted", errs.ErrPrecondition, def.Name)
	}
	return vm, nil
}

// Add resolves component name, mounts a new instance under target and
// appends it to the children. An empty id generates one. Every validation
// happens before the document or the tree is touched.
func (n *Node) Add(ctx context.Context, name string, target surface.Target, id string) (ViewModel, error) {
	if n.state == TornDown || n.env == nil {
		return nil, fmt.Errorf("%w: cannot add to a view-model that is not mounted", errs.ErrPrecondition)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: component name is empty", errs.ErrInvalidArgument)
	}
	el, err := surface.ResolveTarget(n.env.Document, target)
	if err != nil {
		return nil, err
	}
	def, err := n.env.Resolver.Resolve(name)
	if err != nil {
		return nil, err
	}
	if id == "" {
		id = n.freshID()
	} else if err := nodeid.Validate(id); err != nil {
		return nil, err
	}
	if n.ContainsID(id) {
		return nil, fmt.Errorf("%w: id '%s' is already in use", errs.ErrConflict, id)
	}
	vm, err := construct(def)
	if err != nil {
		return nil, err
	}

	div := n.env.Document.CreateElement("div")
	div.SetClassName("view view-" + name)
	div.SetAttr("id", "view-"+id)
	div.SetAttr("data-view-model-id", id)
	if err := div.SetInnerHTML(def.Template); err != nil {
		return nil, err
	}

	child := vm.viewNode()
	child.init(ctx, vm, n.env, name, id, n)

	if err := el.AppendChild(div); err != nil {
		return nil, err
	}
	el.RemoveClassFunc(func(c string) bool { return strings.HasPrefix(c, "active-") })
	el.AddClass("active-" + name)
	child.surface = div
	child.owns = true

	n.children = append(n.children, vm)
	child.logger.Debug("Added view-model", "parent_id", n.id, "children", len(n.children))
	child.schedule(ctx)
	return vm, nil
}

func (n *Node) freshID() string {
	for {
		id := nodeid.New()
		if !n.ContainsID(id) {
			return id
		}
	}
}

// Remove tears down and excises the direct child vm. It returns false when vm
// is not a direct child.
func (n *Node) Remove(vm ViewModel) bool {
	return n.removeAt(n.indexOf(vm))
}

// RemoveID tears down and excises the direct child with id.
func (n *Node) RemoveID(id string) bool {
	return n.removeAt(n.indexID(id))
}

func (n *Node) removeAt(i int) bool {
	if i < 0 {
		return false
	}
	child := n.children[i]
	child.viewNode().Teardown()
	// OnTeardown hooks may have reshaped the children already.
	n.excise(child)
	return true
}

func (n *Node) excise(vm ViewModel) {
	if i := n.indexOf(vm); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
}

// RemoveAll tears down every direct child in insertion order and clears the
// children.
func (n *Node) RemoveAll() {
	children := n.children
	n.children = nil
	for _, c := range children {
		c.viewNode().Teardown()
	}
}

// Teardown tears down the children first, then calls OnTeardown, releases
// the owned surface and leaves the parent's children. Calling it again is a
// no-op.
func (n *Node) Teardown() {
	if n.state == TornDown {
		return
	}
	n.state = TornDown
	n.RemoveAll()
	if d, ok := n.self.(Destroyer); ok {
		d.OnTeardown()
	}
	if n.owns && n.surface != nil {
		n.surface.Discard()
	}
	n.surface = nil
	if n.parent != nil {
		n.parent.excise(n.self)
	}
	n.parent = nil
	if n.logger != nil {
		n.logger.Debug("Tore down view-model")
	}
}

// Reload refreshes an owned surface from the component template and, when
// the node was already rendered, renders it again. Children are torn down.
func (n *Node) Reload(ctx context.Context) error {
	if !n.Live() {
		return fmt.Errorf("%w: view-model is not live", errs.ErrPrecondition)
	}
	n.RemoveAll()
	if n.owns {
		def, err := n.env.Resolver.Resolve(n.name)
		if err != nil {
			return err
		}
		if err := n.surface.SetInnerHTML(def.Template); err != nil {
			return err
		}
	}
	if n.state == Active {
		n.render(ctx)
	}
	return nil
}
