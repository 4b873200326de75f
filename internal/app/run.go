package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/specialistvlad/superlumen/internal/ctxlog"
	"github.com/specialistvlad/superlumen/internal/errs"
	"github.com/specialistvlad/superlumen/internal/hostapi"
	"github.com/specialistvlad/superlumen/internal/templates"
)

// Run opens the start page and runs the UI loop until ctx is cancelled or
// the window is closed. With Once it settles the pending work and returns.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.ctx = ctx
	a.logger.Debug("App.Run method started.")

	view, err := a.startView()
	if err != nil {
		return err
	}

	ch, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := ch.Close(); err != nil {
			a.logger.Warn("Failed to close host channel", "error", err)
		}
	}()
	a.host = hostapi.NewClient(ch)

	if err := a.open(ctx, view); err != nil {
		return err
	}
	defer func() {
		a.page.close()
		a.page = nil
	}()

	if a.config.Once {
		n := a.loop.Drain()
		a.logger.Debug("UI loop drained.", "tasks", n)
		return a.dump()
	}

	if a.config.Watch {
		stop, err := a.watch(ctx)
		if err != nil {
			return err
		}
		defer stop()
	}

	a.healthCheckServer()
	go func() {
		select {
		case <-a.window.Closed():
			a.logger.Debug("Window closed, stopping UI loop.")
			a.loop.Stop()
		case <-a.loop.Done():
		}
	}()

	a.logger.Info("🚀 UI loop running", "view", view)
	err = a.loop.Run(ctx)
	a.loop.Stop()
	if closeErr := a.closeHealthCheckServer(); closeErr != nil {
		a.logger.Warn("Health check server did not shut down cleanly", "error", closeErr)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("ui loop failed: %w", err)
	}
	a.logger.Info("🏁 UI loop finished.")

	a.logger.Debug("App.Run method finished.")
	return a.dump()
}

// startView picks the component to open: the explicit view, then the one
// named by the location, then the configured default.
func (a *App) startView() (string, error) {
	view := a.config.View
	if view == "" && a.config.Location != "" {
		name, ok := ResolveLocation(a.config.Location)
		if !ok {
			a.logger.Warn("No view-model found for location.", "location", a.config.Location)
		}
		view = name
	}
	if view == "" {
		view = a.model.DefaultView
	}
	if view == "" {
		return "", fmt.Errorf("%w: no view-model to open, set a view, a location or default_view", errs.ErrPrecondition)
	}
	if !a.registry.Has(view) {
		return "", fmt.Errorf("%w: view-model '%s' is not registered", errs.ErrNotFound, view)
	}
	return view, nil
}

// watch hot-reloads components whose templates change on disk.
func (a *App) watch(ctx context.Context) (func(), error) {
	if a.templatesDir == "" {
		return nil, fmt.Errorf("%w: watch needs a templates directory on disk", errs.ErrPrecondition)
	}
	w, err := templates.NewWatcher(a.templatesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create template watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", a.templatesDir, err)
	}
	a.logger.Info("👀 Watching templates", "dir", a.templatesDir)

	go func() {
		for name := range w.Changes {
			a.logger.Debug("Template changed.", "view", name)
			a.loop.Post(func() { a.reload(ctx, name) })
		}
	}()
	return w.Stop, nil
}

// dump writes the final document when requested.
func (a *App) dump() error {
	if a.config.Dump == "" || a.page == nil {
		return nil
	}
	markup, err := a.page.doc.HTML()
	if err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}
	if a.config.Dump == DumpStdout {
		_, err = fmt.Fprintln(a.outW, markup)
		return err
	}
	if err := os.WriteFile(a.config.Dump, []byte(markup), 0o644); err != nil {
		return fmt.Errorf("failed to write document dump: %w", err)
	}
	a.logger.Debug("Document written.", "path", a.config.Dump)
	return nil
}
