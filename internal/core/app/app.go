// Package app wires the engine packages into a running application:
// module registry, providers, mock installer, resolver and the
// attribute-docs store.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"docscope/internal/core/config"
	"docscope/internal/data/attrdocs"
	"docscope/internal/engine/members"
	"docscope/internal/engine/mock"
	"docscope/internal/engine/registry"
	"docscope/internal/engine/resolver"
)

type App struct {
	Config    *config.Config
	Registry  *registry.Registry
	Providers *registry.ProviderFinder
	Resolver  *resolver.Resolver

	mu        sync.Mutex
	mocks     *mock.Installer
	attrStore *attrdocs.Store
}

func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	reg := registry.New()
	providers := registry.NewProviderFinder()
	reg.AppendFinder(providers)

	a := &App{
		Config:    cfg,
		Registry:  reg,
		Providers: providers,
		Resolver:  resolver.New(reg, members.SafeGetAttr),
	}
	a.Resolver.SetWarnRate(cfg.Resolve.WarnsPerSec)

	if len(cfg.Mock.Modules) > 0 {
		inst, err := mock.Install(reg, cfg.Mock.Modules)
		if err != nil {
			return nil, fmt.Errorf("install mock modules: %w", err)
		}
		a.mocks = inst
	}

	if cfg.DB.Enabled {
		store, err := attrdocs.Open(cfg.DB.Path, cfg.DB.ProjectKey, cfg.DB.BusyTimeout)
		if err != nil {
			return nil, fmt.Errorf("open attr docs store: %w", err)
		}
		a.attrStore = store
	}

	return a, nil
}

// Mocks returns the active installer, nil when no modules are mocked.
func (a *App) Mocks() *mock.Installer {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mocks
}

// AttrStore returns the analyzer-facts store, nil when the database is
// disabled.
func (a *App) AttrStore() *attrdocs.Store {
	return a.attrStore
}

// Analyzer returns the member-enumeration analyzer, nil when disabled.
func (a *App) Analyzer() members.Analyzer {
	if a.attrStore == nil {
		return nil
	}
	return a.attrStore
}

// Reload swaps in a new configuration. Only the mock module set is
// applied live; database and observability settings need a restart.
func (a *App) Reload(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.mocks != nil {
		a.mocks.Disable()
		a.mocks = nil
	}
	if len(cfg.Mock.Modules) > 0 {
		inst, err := mock.Install(a.Registry, cfg.Mock.Modules)
		if err != nil {
			return fmt.Errorf("install mock modules: %w", err)
		}
		a.mocks = inst
	}

	a.Config = cfg
	slog.Info("configuration reloaded", "mocked_patterns", len(cfg.Mock.Modules))
	return nil
}

func (a *App) Close(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.mocks != nil {
		a.mocks.Disable()
		a.mocks = nil
	}
	if a.attrStore != nil {
		err := a.attrStore.Close()
		a.attrStore = nil
		return err
	}
	return nil
}
