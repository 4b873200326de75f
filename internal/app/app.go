package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/specialistvlad/superlumen/internal/config"
	"github.com/specialistvlad/superlumen/internal/ctxlog"
	"github.com/specialistvlad/superlumen/internal/hostapi"
	"github.com/specialistvlad/superlumen/internal/registry"
	"github.com/specialistvlad/superlumen/internal/screens"
	"github.com/specialistvlad/superlumen/internal/templates"
	"github.com/specialistvlad/superlumen/internal/uiloop"
	"github.com/specialistvlad/superlumen/internal/window"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx    context.Context
	outW   io.Writer
	logger *slog.Logger

	config       *Config
	model        *config.Model
	source       *templates.Source
	templatesDir string // empty when serving the embedded templates
	registry     *registry.Registry

	loop   *uiloop.Loop
	window window.Window
	host   *hostapi.Client

	// page is only touched on the UI loop once Run has started.
	page       *page
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var configPaths []string
	if appConfig.ConfigPath != "" {
		configPaths = append(configPaths, appConfig.ConfigPath)
	}

	model, err := loader.Load(ctx, configPaths...)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	if appConfig.HostURL != "" {
		model.Host.URL = appConfig.HostURL
	}
	if appConfig.TemplatesDir != "" {
		model.TemplatesDir = appConfig.TemplatesDir
	}
	logger.Debug("Configuration loaded.", "templates_dir", model.TemplatesDir, "host", model.Host.URL, "networks", len(model.Networks))

	source, dir := openTemplates(appConfig, model)
	if dir == "" {
		logger.Debug("Serving embedded templates.")
	} else {
		logger.Debug("Serving templates from disk.", "dir", dir)
	}

	reg := registry.New(source)
	if len(modules) == 0 {
		modules = coreModules
	}
	reg.RegisterModules(modules...)
	logger.Debug("All Go modules registered.", "count", len(modules), "components", reg.Names())

	if err := reg.Validate(ctx); err != nil {
		// This is a programmer error (mismatch between code and templates), so we panic.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		ctx:          ctx,
		outW:         outW,
		logger:       logger,
		config:       appConfig,
		model:        model,
		source:       source,
		templatesDir: dir,
		registry:     reg,
		loop:         uiloop.New(),
		window:       window.NewLog(logger, true),
	}
}

// openTemplates prefers an explicit directory, then the configured one when
// it exists on disk, and falls back to the templates compiled into the binary.
func openTemplates(appConfig *Config, model *config.Model) (*templates.Source, string) {
	dir := model.TemplatesDir
	if appConfig.TemplatesDir == "" {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			dir = ""
		}
	}
	if dir == "" {
		return templates.New(screens.Templates()), ""
	}
	return templates.Dir(dir), dir
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Model returns the loaded configuration model.
func (a *App) Model() *config.Model {
	return a.model
}
