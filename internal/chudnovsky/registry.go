package chudnovsky

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates engines by name.
type Factory interface {
	// Get returns the engine registered under name.
	Get(name string) (Engine, error)
	// List returns the registered names in sorted order.
	List() []string
	// Has reports whether name is registered.
	Has(name string) bool
}

// DefaultFactory is a thread-safe registry that caches engine instances.
type DefaultFactory struct {
	mu       sync.RWMutex
	creators map[string]func() coreEngine
	engines  map[string]Engine
}

// NewDefaultFactory returns a factory with the "sequential" and "chunked"
// engines registered.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators: make(map[string]func() coreEngine),
		engines:  make(map[string]Engine),
	}
	f.Register("sequential", func() coreEngine { return &SequentialEngine{} })
	f.Register("chunked", func() coreEngine { return &ChunkedEngine{} })
	return f
}

// Register adds or replaces an engine creator.
func (f *DefaultFactory) Register(name string, creator func() coreEngine) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creators[name] = creator
	delete(f.engines, name)
}

// Get returns a cached engine, creating it on first use.
func (f *DefaultFactory) Get(name string) (Engine, error) {
	f.mu.RLock()
	if eng, ok := f.engines[name]; ok {
		f.mu.RUnlock()
		return eng, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	if eng, ok := f.engines[name]; ok {
		return eng, nil
	}
	creator, ok := f.creators[name]
	if !ok {
		return nil, fmt.Errorf("unknown engine: %s", name)
	}
	eng := NewEngine(creator())
	f.engines[name] = eng
	return eng, nil
}

// List returns the registered engine names, sorted.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is registered.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.creators[name]
	return ok
}
