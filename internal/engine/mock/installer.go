package mock

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gobwas/glob"
	"github.com/google/uuid"

	"docscope/internal/core/errors"
	"docscope/internal/engine/object"
	"docscope/internal/engine/registry"
	"docscope/internal/shared/observability"
	"docscope/internal/shared/util"
)

type pattern struct {
	raw  string
	glob glob.Glob // nil for literal dotted names
}

func (p pattern) matches(name string) bool {
	if p.glob != nil {
		return p.glob.Match(name)
	}
	return util.HasDottedPrefix(name, p.raw)
}

func compilePatterns(names []string) ([]pattern, error) {
	out := make([]pattern, 0, len(names))
	for _, raw := range names {
		if raw == "" {
			return nil, errors.New(errors.CodeValidationError, "mock pattern must not be empty")
		}
		p := pattern{raw: raw}
		if util.ContainsGlobMeta(raw) {
			g, err := glob.Compile(raw, '.')
			if err != nil {
				return nil, errors.Wrap(err, errors.CodeValidationError,
					fmt.Sprintf("invalid mock pattern %q", raw))
			}
			p.glob = g
		}
		out = append(out, p)
	}
	return out, nil
}

// Installer is a mock registration: a finder spliced into the registry
// plus the list of module names it actually mocked. It owns exactly the
// cache entries it created and reverses only those on teardown.
type Installer struct {
	ID       uuid.UUID
	reg      *registry.Registry
	patterns []pattern

	mu        sync.Mutex
	mocked    []string
	mockedSet map[string]bool
	installed bool
}

// Install splices a mock finder at the front of the registry's chain.
// The registration stays active until Disable is called.
func Install(reg *registry.Registry, names []string) (*Installer, error) {
	patterns, err := compilePatterns(names)
	if err != nil {
		return nil, err
	}
	inst := &Installer{
		ID:        uuid.New(),
		reg:       reg,
		patterns:  patterns,
		mockedSet: make(map[string]bool),
		installed: true,
	}
	reg.InsertFinder(inst)
	slog.Debug("mock finder installed", "registration", inst.ID, "patterns", names)
	return inst, nil
}

// WithMock installs the mock set for the duration of fn and guarantees
// teardown on every exit path, panics included.
func WithMock(reg *registry.Registry, names []string, fn func() error) error {
	inst, err := Install(reg, names)
	if err != nil {
		return err
	}
	defer inst.Disable()
	return fn()
}

// Matches applies the configured matching rule: exact name, dotted-prefix
// nesting, or glob for metacharacter patterns.
func (i *Installer) Matches(name string) bool {
	for _, p := range i.patterns {
		if p.matches(name) {
			return true
		}
	}
	return false
}

func (i *Installer) FindModule(name string) (registry.Loader, bool) {
	if !i.Matches(name) {
		return nil, false
	}
	return mockLoader{installer: i}, true
}

type mockLoader struct {
	installer *Installer
}

func (l mockLoader) LoadModule(name string) (object.Object, error) {
	l.installer.recordMocked(name)
	slog.Debug("adding a mock module", "module", name)
	observability.MockModulesCreatedTotal.Inc()
	observability.ImportAttemptsTotal.WithLabelValues(observability.OutcomeMocked).Inc()
	return NewModule(name), nil
}

func (i *Installer) recordMocked(name string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.mockedSet[name] {
		return
	}
	i.mockedSet[name] = true
	i.mocked = append(i.mocked, name)
	observability.MockedModules.Set(float64(len(i.mocked)))
}

// MockedModules lists the module names this registration mocked, in
// creation order.
func (i *Installer) MockedModules() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]string, len(i.mocked))
	copy(out, i.mocked)
	return out
}

// Invalidate purges previously mocked names from the module cache without
// disabling future mocking.
func (i *Installer) Invalidate() {
	i.mu.Lock()
	mocked := i.mocked
	i.mocked = nil
	i.mockedSet = make(map[string]bool)
	i.mu.Unlock()

	for _, name := range mocked {
		i.reg.Evict(name)
	}
	observability.MockedModules.Set(0)
}

// Disable removes the finder and purges every name this registration
// mocked. Disabling twice is a no-op.
func (i *Installer) Disable() {
	i.mu.Lock()
	if !i.installed {
		i.mu.Unlock()
		return
	}
	i.installed = false
	i.mu.Unlock()

	i.reg.RemoveFinder(i)
	i.Invalidate()
	slog.Debug("mock finder disabled", "registration", i.ID)
}
