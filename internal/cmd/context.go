package cmd

import (
	"context"

	"github.com/jmgilman/paiqm/internal/config"
	"github.com/jmgilman/paiqm/internal/launcher"
)

type contextKey string

const (
	configKey    contextKey = "config"
	loaderKey    contextKey = "loader"
	managerKey   contextKey = "manager"
	verbosityKey contextKey = "verbosity"
)

// WithConfig adds the config to the context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// ConfigFromContext retrieves the config from context.
func ConfigFromContext(ctx context.Context) *config.Config {
	cfg, ok := ctx.Value(configKey).(*config.Config)
	if !ok {
		return nil
	}
	return cfg
}

// WithLoader adds the config loader to the context.
func WithLoader(ctx context.Context, loader *config.Loader) context.Context {
	return context.WithValue(ctx, loaderKey, loader)
}

// LoaderFromContext retrieves the config loader from context.
func LoaderFromContext(ctx context.Context) *config.Loader {
	loader, ok := ctx.Value(loaderKey).(*config.Loader)
	if !ok {
		return nil
	}
	return loader
}

// WithManager adds the lifecycle manager to the context.
func WithManager(ctx context.Context, mgr *launcher.Manager) context.Context {
	return context.WithValue(ctx, managerKey, mgr)
}

// ManagerFromContext retrieves the lifecycle manager from context.
func ManagerFromContext(ctx context.Context) *launcher.Manager {
	mgr, ok := ctx.Value(managerKey).(*launcher.Manager)
	if !ok {
		return nil
	}
	return mgr
}

func withVerbosity(ctx context.Context, v int) context.Context {
	return context.WithValue(ctx, verbosityKey, v)
}

func verbosityFromContext(ctx context.Context) int {
	v, _ := ctx.Value(verbosityKey).(int)
	return v
}
