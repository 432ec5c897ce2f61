package repositories

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/gerritforge/internal/domain/engine"
)

// StrategyRegistry manages the available change sync strategies.
type StrategyRegistry struct {
	strategies map[string]engine.StrategyFactory
}

// NewStrategyRegistry creates an empty strategy registry.
func NewStrategyRegistry() *StrategyRegistry {
	return &StrategyRegistry{
		strategies: make(map[string]engine.StrategyFactory),
	}
}

// Register adds a strategy factory under the given name (e.g. "push").
func (r *StrategyRegistry) Register(name string, factory engine.StrategyFactory) {
	r.strategies[name] = factory
}

// Get returns the factory registered under name.
func (r *StrategyRegistry) Get(name string) (engine.StrategyFactory, error) {
	factory, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy: %q (available: %v)", name, r.Names())
	}
	return factory, nil
}

// Names returns the registered strategy names, sorted.
func (r *StrategyRegistry) Names() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
