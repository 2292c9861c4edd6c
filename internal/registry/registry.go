package registry

import (
	"fmt"
	"slices"
	"sync"

	"appi/internal/compositor"
	"appi/internal/config"
)

// Factory builds a component value from its declaration in a graph file.
// Every call must return a new value: two declarations of the same type are
// two components.
type Factory func(cfg config.ComponentConfig) (any, error)

// Registry maps component type names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory for typeName.
func (r *Registry) Register(typeName string, factory Factory) error {
	if typeName == "" {
		return fmt.Errorf("component type has empty name")
	}
	if factory == nil {
		return fmt.Errorf("cannot register nil factory for component type %s", typeName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[typeName]; exists {
		return fmt.Errorf("component type %s already registered", typeName)
	}

	r.factories[typeName] = factory
	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// registering built-in types at startup.
func (r *Registry) MustRegister(typeName string, factory Factory) {
	if err := r.Register(typeName, factory); err != nil {
		panic(err)
	}
}

// Get returns the factory for typeName.
func (r *Registry) Get(typeName string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[typeName]
	return factory, exists
}

// Types returns the registered type names, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for name := range r.factories {
		types = append(types, name)
	}
	slices.Sort(types)
	return types
}

// Build turns a loaded graph file into a compositor graph.
//
// Args:
//   - cfg: a graph file that passed config validation
//
// Returns:
//   - compositor.Graph: one item per declared component, in file order, with
//     names taken from the file and deps pointing at the built values
//   - error: when a type is not registered, a factory fails or a dependency
//     names an undeclared component
func (r *Registry) Build(cfg config.GraphConfig) (compositor.Graph, error) {
	built := make(map[string]any, len(cfg.Components))
	graph := make(compositor.Graph, len(cfg.Components))

	for i, comp := range cfg.Components {
		factory, ok := r.Get(comp.Type)
		if !ok {
			return nil, fmt.Errorf("component %q has unknown type %q", comp.Name, comp.Type)
		}
		value, err := factory(comp)
		if err != nil {
			return nil, fmt.Errorf("failed to build component %q of type %s: %w", comp.Name, comp.Type, err)
		}
		built[comp.Name] = value
		graph[i] = compositor.Item{Component: value, Name: comp.Name}
	}

	for i, comp := range cfg.Components {
		deps := make([]any, 0, len(comp.Deps))
		for _, name := range comp.Deps {
			dep, ok := built[name]
			if !ok {
				return nil, fmt.Errorf("component %q depends on undeclared component %q", comp.Name, name)
			}
			deps = append(deps, dep)
		}
		graph[i].Deps = deps
	}

	return graph, nil
}
