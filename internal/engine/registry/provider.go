package registry

import (
	"docscope/internal/engine/object"
)

// Provider builds the module object for a registered name. Providers run
// at most once per name; the registry caches the result.
type Provider func() (object.Object, error)

// ProviderFinder resolves module names through registered provider
// functions, the way an embedded runtime registers its package set.
type ProviderFinder struct {
	providers map[string]Provider
}

func NewProviderFinder() *ProviderFinder {
	return &ProviderFinder{providers: make(map[string]Provider)}
}

// RegisterProvider binds name to a provider. Submodules register under
// their own full dotted name.
func (f *ProviderFinder) RegisterProvider(name string, p Provider) {
	f.providers[name] = p
}

func (f *ProviderFinder) FindModule(name string) (Loader, bool) {
	p, ok := f.providers[name]
	if !ok {
		return nil, false
	}
	return providerLoader(p), true
}

type providerLoader Provider

func (l providerLoader) LoadModule(name string) (object.Object, error) {
	return l()
}
