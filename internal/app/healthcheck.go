package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/specialistvlad/superlumen/internal/ctxlog"
	"github.com/specialistvlad/superlumen/internal/viewmodel"
)

// healthHandler reports that the UI loop is accepting work.
func (app *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(app.ctx)
	logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	if err := app.loop.Call(r.Context(), func() {}); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// viewsHandler serves the mounted view-model tree as JSON.
func (app *App) viewsHandler(w http.ResponseWriter, r *http.Request) {
	var (
		info    viewmodel.Info
		mounted bool
	)
	err := app.loop.Call(r.Context(), func() {
		if app.page != nil {
			info, mounted = viewmodel.Describe(app.page.root), true
		}
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if !mounted {
		http.Error(w, "no page is open", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(info); err != nil {
		ctxlog.FromContext(app.ctx).Warn("Failed to write view tree", "error", err)
	}
}

// documentHandler serves the current document.
func (app *App) documentHandler(w http.ResponseWriter, r *http.Request) {
	var (
		markup    string
		renderErr error
	)
	err := app.loop.Call(r.Context(), func() {
		if app.page == nil {
			renderErr = errors.New("no page is open")
			return
		}
		markup, renderErr = app.page.doc.HTML()
	})
	if err == nil {
		err = renderErr
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, markup)
}

func (app *App) healthMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", app.healthHandler)
	mux.HandleFunc("/views", app.viewsHandler)
	mux.HandleFunc("/document", app.documentHandler)
	return mux
}

// healthCheckServer initializes and runs the health check HTTP server.
func (app *App) healthCheckServer() {
	logger := ctxlog.FromContext(app.ctx)
	logger.Debug("Configuring health check server.")
	if app.config.HealthcheckPort <= 0 {
		logger.Debug("Health check server not started: disabled")
		return
	}

	addr := fmt.Sprintf(":%d", app.config.HealthcheckPort)

	// Create the server instance and store it on the app struct.
	app.httpServer = &http.Server{
		Addr:    addr,
		Handler: app.healthMux(),
	}

	go func() {
		logger.Info("🩺 Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		// ListenAndServe will return an error on graceful shutdown.
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Health check server failed unexpectedly", "error", err)
		}
	}()
}

func (app *App) closeHealthCheckServer() error {
	logger := ctxlog.FromContext(app.ctx)
	logger.Debug("Closing health check server...")

	if app.httpServer == nil {
		logger.Debug("Health check server was not running.")
		return nil
	}

	// The run context may already be cancelled at this point.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(app.ctx), 5*time.Second)
	defer cancel()

	logger.Info("🩺 Shutting down health check server...")
	if err := app.httpServer.Shutdown(ctx); err != nil {
		logger.Error("Health check server shutdown failed", "error", err)
		return err
	}

	logger.Debug("Health check server shut down gracefully.")
	return nil
}
