package search

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pvera/gridpath/pathfind/grid"
)

// Canonical algorithm names used by the registry, the CLI, and the API.
const (
	AlgoBFS   = "bfs"
	AlgoDFS   = "dfs"
	AlgoDLS   = "dls"
	AlgoUCS   = "ucs"
	AlgoAStar = "astar"
	AlgoBDS   = "bds"
)

// Registry maps algorithm names to implementations. New algorithms plug in
// through Register without touching any call site; callers resolve by name
// at run time.
type Registry struct {
	mu    sync.RWMutex
	algos map[string]Func
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		algos: make(map[string]Func),
	}
}

// Default returns a registry pre-populated with the six built-in algorithms.
func Default() *Registry {
	r := NewRegistry()
	r.algos[AlgoBFS] = BFS
	r.algos[AlgoDFS] = DFS
	r.algos[AlgoDLS] = DLS
	r.algos[AlgoUCS] = UCS
	r.algos[AlgoAStar] = AStar
	r.algos[AlgoBDS] = BDS
	return r
}

// Register adds an algorithm under the given name. Registering an empty name,
// a nil function, or a name that already exists is an error.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" {
		return fmt.Errorf("%w: algorithm name cannot be empty", ErrInvalidParameter)
	}
	if fn == nil {
		return fmt.Errorf("%w: algorithm function cannot be nil", ErrInvalidParameter)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.algos[name]; exists {
		return fmt.Errorf("%w: algorithm %q already registered", ErrInvalidParameter, name)
	}
	r.algos[name] = fn
	return nil
}

// Get resolves a name to its algorithm function.
func (r *Registry) Get(name string) (Func, error) {
	r.mu.RLock()
	fn, exists := r.algos[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownAlgorithm, name, r.Names())
	}
	return fn, nil
}

// Names returns all registered algorithm names, sorted for deterministic
// listings.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.algos))
	for name := range r.algos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run resolves name and executes the algorithm on g.
func (r *Registry) Run(name string, g *grid.Grid, opts Options) (*Result, error) {
	fn, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return fn(g, opts)
}
