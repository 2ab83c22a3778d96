package effects

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps effect names to constructors. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewRegistry returns a registry holding the built-in Resize, Blur and Grayscale effects.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	r.Register(NameResize, NewResize)
	r.Register(NameBlur, NewBlur)
	r.Register(NameGrayscale, NewGrayscale)
	return r
}

func NewEmptyRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Register adds ctor under name unless the name is taken or ctor is nil.
// The first registration wins; it reports whether ctor was inserted.
func (r *Registry) Register(name string, ctor Constructor) bool {
	if ctor == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ctors[name]; ok {
		return false
	}
	r.ctors[name] = ctor
	return true
}

// Unregister removes name, reporting whether it was present.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ctors[name]; !ok {
		return false
	}
	delete(r.ctors, name)
	return true
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[name]
	return ok
}

// Create builds a fresh effect registered under name.
func (r *Registry) Create(name string) (Effect, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}
	return ctor(), nil
}

// Names lists registered names. The result is sorted, but it is a set.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
