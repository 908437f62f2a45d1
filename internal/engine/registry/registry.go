// Package registry implements the module resolution machinery: a process
// module cache plus an ordered chain of module finders. Importing a name
// consults the cache first, then each finder in order; a finder that does
// not claim the name defers to the next one.
package registry

import (
	"fmt"
	"log/slog"
	"sync"

	"docscope/internal/core/errors"
	"docscope/internal/engine/object"
	"docscope/internal/shared/observability"
)

// Loader materializes a module object for a claimed name.
type Loader interface {
	LoadModule(name string) (object.Object, error)
}

// Finder claims module names. Returning ok=false defers to the next
// finder in the chain and is never an error.
type Finder interface {
	FindModule(name string) (Loader, bool)
}

// LoadPanic marks a module whose provider terminated uncontrolled during
// its own initialization.
type LoadPanic struct {
	Module string
	Value  interface{}
}

func (p *LoadPanic) Error() string {
	return fmt.Sprintf("module %q panicked during initialization: %v", p.Module, p.Value)
}

// Registry owns the module cache and the finder chain.
type Registry struct {
	mu      sync.Mutex
	modules map[string]object.Object
	finders []Finder
}

func New() *Registry {
	return &Registry{modules: make(map[string]object.Object)}
}

// Import resolves name to a module object. An already-cached name returns
// the identical cached object without re-running any finder.
func (r *Registry) Import(name string) (object.Object, error) {
	r.mu.Lock()
	if mod, ok := r.modules[name]; ok {
		r.mu.Unlock()
		slog.Debug("import cache hit", "module", name)
		observability.ImportAttemptsTotal.WithLabelValues(observability.OutcomeCached).Inc()
		return mod, nil
	}
	finders := make([]Finder, len(r.finders))
	copy(finders, r.finders)
	r.mu.Unlock()

	for _, finder := range finders {
		loader, ok := finder.FindModule(name)
		if !ok {
			continue
		}
		mod, err := safeLoad(loader, name)
		if err != nil {
			observability.ImportAttemptsTotal.WithLabelValues(observability.OutcomeFailed).Inc()
			return nil, errors.AddContext(
				errors.Wrap(err, errors.CodeImportFailure, fmt.Sprintf("cannot load module %q", name)),
				errors.CtxModule, name)
		}
		r.mu.Lock()
		r.modules[name] = mod
		r.mu.Unlock()
		slog.Debug("import loaded", "module", name)
		observability.ImportAttemptsTotal.WithLabelValues(observability.OutcomeOK).Inc()
		return mod, nil
	}

	observability.ImportAttemptsTotal.WithLabelValues(observability.OutcomeFailed).Inc()
	return nil, errors.AddContext(
		errors.New(errors.CodeImportFailure, fmt.Sprintf("no module named %q", name)),
		errors.CtxModule, name)
}

// safeLoad runs the loader, converting an uncontrolled panic in module
// initialization into a LoadPanic error.
func safeLoad(loader Loader, name string) (mod object.Object, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			mod = nil
			err = &LoadPanic{Module: name, Value: rec}
		}
	}()
	return loader.LoadModule(name)
}

// Cached returns the cached module for name, if any.
func (r *Registry) Cached(name string) (object.Object, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	mod, ok := r.modules[name]
	return mod, ok
}

// Register places a module in the cache directly, bypassing the finders.
func (r *Registry) Register(name string, mod object.Object) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules[name] = mod
}

// Evict removes name from the module cache. Absent names are ignored.
func (r *Registry) Evict(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.modules, name)
}

// InsertFinder puts f at the front of the chain so it wins over existing
// finders.
func (r *Registry) InsertFinder(f Finder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finders = append([]Finder{f}, r.finders...)
}

// AppendFinder puts f at the back of the chain.
func (r *Registry) AppendFinder(f Finder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finders = append(r.finders, f)
}

// RemoveFinder removes f from the chain. Removing a finder that is not
// installed (or was removed out-of-band) is a no-op.
func (r *Registry) RemoveFinder(f Finder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.finders[:0]
	for _, existing := range r.finders {
		if existing != f {
			kept = append(kept, existing)
		}
	}
	r.finders = kept
}
