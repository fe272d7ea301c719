// Package app wires the loader, registry, builder, and engine into a
// runnable application instance with its own isolated logger.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/attrflow/internal/config"
	"github.com/vk/attrflow/internal/ctxlog"
	"github.com/vk/attrflow/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	model    *config.Model
	config   *Config
}

// NewApp constructs a fully initialized App: logger, loaded declaration
// model, and a registry populated by the given modules (the built-in set
// when none are supplied). Startup failures are programmer or configuration
// errors and panic; main recovers to present them cleanly.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("logger configured")

	model, err := loader.Load(ctx, appConfig.FlowPath)
	if err != nil {
		panic(fmt.Errorf("failed to load flow declarations: %w", err))
	}
	logger.Debug("declarations loaded", "attributes", len(model.Attributes))

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("updater modules registered", "count", len(modules))

	if err := reg.Validate(model); err != nil {
		panic(err)
	}
	logger.Debug("registry validation passed")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		model:    model,
		config:   appConfig,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Model returns the loaded declaration model. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}
