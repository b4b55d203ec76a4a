package handler

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/LeJamon/goQortald/internal/core/tx"
)

// ErrNoHandler is returned for transaction types without a registered handler.
var ErrNoHandler = errors.New("no handler registered for transaction type")

// Registry manages handler factories by transaction type.
// It provides thread-safe registration and lookup.
type Registry struct {
	mu        sync.RWMutex
	factories map[tx.Type]Factory
}

// NewRegistry creates a new handler registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[tx.Type]Factory),
	}
}

// Register adds the factory for a transaction type.
// Returns an error if one is already registered for that type.
func (r *Registry) Register(t tx.Type, f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[t]; exists {
		return fmt.Errorf("handler already registered for transaction type: %s", t)
	}

	r.factories[t] = f
	return nil
}

// MustRegister adds a factory and panics if registration fails.
// Useful for init() functions.
func (r *Registry) MustRegister(t tx.Type, f Factory) {
	if err := r.Register(t, f); err != nil {
		panic(err)
	}
}

// Get returns the factory for a transaction type, or nil.
func (r *Registry) Get(t tx.Type) Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.factories[t]
}

// Has returns true if a factory is registered for the transaction type.
func (r *Registry) Has(t tx.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.factories[t]
	return exists
}

// Types returns all registered transaction types in tag order.
func (r *Registry) Types() []tx.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]tx.Type, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// New binds the registered handler for t's type to t.
func (r *Registry) New(env *Env, t tx.Transaction) (Handler, error) {
	f := r.Get(t.TxType())
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoHandler, t.TxType())
	}
	return f(env, t)
}

// DefaultRegistry is the global handler registry.
var DefaultRegistry = NewRegistry()

// Register adds a factory to the default registry.
func Register(t tx.Type, f Factory) error {
	return DefaultRegistry.Register(t, f)
}

// MustRegister adds a factory to the default registry, panicking on error.
func MustRegister(t tx.Type, f Factory) {
	DefaultRegistry.MustRegister(t, f)
}

// Get returns a factory from the default registry.
func Get(t tx.Type) Factory {
	return DefaultRegistry.Get(t)
}

// New binds a handler from the default registry.
func New(env *Env, t tx.Transaction) (Handler, error) {
	return DefaultRegistry.New(env, t)
}

// Typed asserts the record kind a factory expects.
func Typed[T tx.Transaction](t tx.Transaction) (T, error) {
	typed, ok := t.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: got %T for %s", tx.ErrWrongType, t, t.TxType())
	}
	return typed, nil
}
