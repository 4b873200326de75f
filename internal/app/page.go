package app

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/specialistvlad/superlumen/internal/errs"
	"github.com/specialistvlad/superlumen/internal/ready"
	"github.com/specialistvlad/superlumen/internal/surface"
	"github.com/specialistvlad/superlumen/internal/viewmodel"
)

// ReadyClass marks the body once the document is ready.
const ReadyClass = "view-ready"

// page is one opened document with its view-model tree.
type page struct {
	view  string
	doc   *surface.Document
	ready *ready.Signal
	root  viewmodel.ViewModel
}

func (p *page) close() {
	if p == nil || p.root == nil {
		return
	}
	viewmodel.NodeOf(p.root).Teardown()
}

// loadPage parses the page of component name, or wraps its view fragment in
// a shell page when the component ships no index.html.
func (a *App) loadPage(name string) (*surface.Document, error) {
	markup, err := a.source.Page(name)
	if errors.Is(err, errs.ErrNotFound) {
		var view string
		view, err = a.source.Template(name)
		markup = shellPage(name, view)
	}
	if err != nil {
		return nil, err
	}
	return surface.ParseString(markup)
}

func shellPage(name, view string) string {
	return `<!DOCTYPE html><html><head><title>Superlumen</title></head><body ` +
		bodyViewModelKey + `="` + html.EscapeString(name) + `">` + view + `</body></html>`
}

// open replaces the current page with the page of component name, mounts its
// root view-model on the body and fires ready. Must run on the UI loop.
func (a *App) open(ctx context.Context, name string) error {
	doc, err := a.loadPage(name)
	if err != nil {
		return fmt.Errorf("failed to load page '%s': %w", name, err)
	}
	root := BodyViewModel(doc)
	if root == "" {
		root = name
	}

	signal := ready.New()
	signal.Subscribe(func() {
		doc.Body().AddClass(ReadyClass)
	})
	env := &viewmodel.Env{
		Resolver: a.registry,
		Document: doc,
		Ready:    signal,
		Host:     a.host,
		Window:   a.window,
		Logger:   a.logger,
	}
	if a.host != nil {
		env.Config = a.host
	}

	previous := a.page
	a.page = nil
	previous.close()

	vm, err := viewmodel.Mount(ctx, env, root, surface.Selector("body"))
	if err != nil {
		return fmt.Errorf("failed to mount view-model '%s': %w", root, err)
	}
	a.page = &page{view: name, doc: doc, ready: signal, root: vm}
	signal.Fire()
	a.logger.Info("📄 Page opened", "view", name, "root", root)
	return nil
}

// navigate is the development host's loadTemplate hook. It runs on the UI
// loop while the current page is still handling an event, so the switch is
// posted.
func (a *App) navigate(name string) {
	if !a.registry.Has(name) {
		a.logger.Warn("Cannot navigate to an unregistered view-model.", "view", name)
		return
	}
	a.loop.Post(func() {
		if err := a.open(a.ctx, name); err != nil {
			a.logger.Error("Navigation failed", "view", name, "error", err)
		}
	})
}

// reload refreshes every mounted instance of component name after its
// templates changed on disk. Must run on the UI loop.
func (a *App) reload(ctx context.Context, name string) {
	a.source.Invalidate(name)
	if a.page == nil {
		return
	}
	rootNode := viewmodel.NodeOf(a.page.root)
	if rootNode.Name() == name || a.page.view == name {
		if err := a.open(ctx, a.page.view); err != nil {
			a.logger.Error("Failed to reopen page", "view", a.page.view, "error", err)
		}
		return
	}

	var matches []*viewmodel.Node
	rootNode.Walk(func(vm viewmodel.ViewModel) bool {
		if n := viewmodel.NodeOf(vm); n.Name() == name {
			matches = append(matches, n)
		}
		return true
	})
	for _, n := range matches {
		// an ancestor in matches may already have torn it down
		if !n.Live() {
			continue
		}
		if err := n.Reload(ctx); err != nil {
			a.logger.Error("Failed to reload view-model", "view", name, "view_id", n.ID(), "error", err)
			continue
		}
		a.logger.Info("♻️ Reloaded view-model", "view", name, "view_id", n.ID())
	}
}
