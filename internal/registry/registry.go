// Package registry holds named search-space factories. Experiment groups
// are registered under a name at startup and looked up by that name at run
// time, instead of loading configuration logic from file paths dynamically.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vk/expgridgo/internal/grid"
)

// ErrUnknownSpace reports a lookup of a name that was never registered.
var ErrUnknownSpace = errors.New("unknown search space")

// Factory builds a search space on demand. Factories must be pure: two
// calls return equal spaces.
type Factory func() grid.SearchSpace

// Registry maps group names to search-space factories for a single
// application instance.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// New creates and initializes an empty Registry instance.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under the given name. Registering the same name
// twice is a programmer error and fails.
func (r *Registry) Register(name string, f Factory) error {
	if name == "" {
		return errors.New("registry: search space name must not be empty")
	}
	if f == nil {
		return fmt.Errorf("registry: factory for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("registry: search space %q registered twice", name)
	}
	r.factories[name] = f
	return nil
}

// Get returns the search space registered under name.
func (r *Registry) Get(name string) (grid.SearchSpace, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownSpace, name, r.Names())
	}
	return f(), nil
}

// Names returns all registered group names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
