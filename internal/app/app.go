// Package app wires the experiment-grid components into a runnable
// application: it loads search spaces, expands them, validates the expanded
// lists against the duplicate guard, and persists one experiment record per
// configuration.
package app

import (
	"io"
	"log/slog"

	"github.com/vk/expgridgo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. The registry may
// be pre-populated with named search-space groups; a nil registry gets an
// empty one.
func NewApp(outW io.Writer, appConfig *Config, reg *registry.Registry) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	if reg == nil {
		reg = registry.New()
	}
	logger.Debug("Search-space registry ready.", "groups", reg.Names())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
