package provider

import "sync"

// Registry caches providers by name. Lookups take the read lock; the
// first use of a name upgrades to the write lock, re-checks for a racing
// registration, and only then invokes the factory. Exactly one provider
// exists per name for the registry's lifetime.
type Registry struct {
	factory Factory

	mu        sync.RWMutex
	providers map[string]Provider
}

func NewRegistry(f Factory) *Registry {
	return &Registry{
		factory:   f,
		providers: make(map[string]Provider),
	}
}

// Get returns the provider registered under name, creating it on first
// use. A failed registration is reported exactly once, to the caller whose
// lookup ran the factory; the name is served by a disabled provider from
// then on, with no further attempts.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	p, ok := r.providers[name]
	r.mu.RUnlock()
	if ok {
		return p, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.providers[name]; ok {
		return p, nil
	}
	p, err := r.factory(name)
	if err != nil || p == nil {
		p = Disabled(name)
	}
	r.providers[name] = p
	return p, err
}

// Has reports whether name is already registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.providers[name]
	return ok
}

// Len reports the number of cached providers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers)
}
