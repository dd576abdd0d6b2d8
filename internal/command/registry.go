package command

import (
	"fmt"
	"sort"
	"sync"
)

// Config represents command-specific configuration (opaque to the host).
// Plugin manifests use it to preset prompt defaults.
type Config map[string]any

// String returns the string value for key, or fallback when absent.
func (c Config) String(key, fallback string) string {
	if c == nil {
		return fallback
	}
	if v, ok := c[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// Factory constructs a command with the provided configuration.
type Factory func(Config) (Command, error)

// Registry maintains known command factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register installs a command factory. Returns an error if the ID exists.
func (r *Registry) Register(id string, factory Factory) error {
	if id == "" {
		return fmt.Errorf("command: id is required")
	}
	if factory == nil {
		return fmt.Errorf("command: factory is required for %s", id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[id]; exists {
		return fmt.Errorf("command: %s already registered", id)
	}
	r.factories[id] = factory
	return nil
}

// MustRegister panics if registration fails.
func (r *Registry) MustRegister(id string, factory Factory) {
	if err := r.Register(id, factory); err != nil {
		panic(err)
	}
}

// Resolve constructs a command by ID.
func (r *Registry) Resolve(id string, cfg Config) (Command, error) {
	r.mu.RLock()
	factory, ok := r.factories[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("command: unknown id %s", id)
	}
	cmd, err := factory(cfg)
	if err != nil {
		return nil, err
	}
	if err := cmd.Info().Validate(); err != nil {
		return nil, err
	}
	return cmd, nil
}

// Has reports whether an ID is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[id]
	return ok
}

// IDs returns a sorted list of registered command identifiers.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
