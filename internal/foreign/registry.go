package foreign

import (
	"fmt"
	"sort"
	"sync"
)

// Type is a registered native type with its slot layout flattened
// across the parent chain (parent slots first).
type Type struct {
	key      string
	parent   *Type
	slots    []Slot
	index    map[string]int
	postInit func(*Object) error
}

// Key returns the foreign type identifier
func (t *Type) Key() string {
	return t.key
}

// Parent returns the parent type, or nil for a root type
func (t *Type) Parent() *Type {
	return t.parent
}

// Slots returns a copy of the flattened slot layout
func (t *Type) Slots() []Slot {
	out := make([]Slot, len(t.slots))
	copy(out, t.slots)
	return out
}

// Slot looks up a slot by name
func (t *Type) Slot(name string) (Slot, bool) {
	i, ok := t.index[name]
	if !ok {
		return Slot{}, false
	}
	return t.slots[i], true
}

// IsSubtypeOf reports whether t is other or derives from it
func (t *Type) IsSubtypeOf(other *Type) bool {
	for cur := t; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}
	return false
}

// Allocate creates a zero-valued object of this type
func (t *Type) Allocate() *Object {
	return newObject(t)
}

// Registry manages all native types known to the process
type Registry struct {
	types map[string]*Type
	mu    sync.RWMutex
}

// NewRegistry creates a new type registry
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]*Type),
	}
}

// Register registers a native type. The parent, if any, must already be registered.
func (r *Registry) Register(info TypeInfo) (*Type, error) {
	if info.Key == "" {
		return nil, fmt.Errorf("native type key must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[info.Key]; exists {
		return nil, fmt.Errorf("native type %s is already registered", info.Key)
	}

	t := &Type{
		key:   info.Key,
		index: make(map[string]int),
	}

	if info.Parent != "" {
		parent, ok := r.types[info.Parent]
		if !ok {
			return nil, fmt.Errorf("native type %s: parent %s not registered", info.Key, info.Parent)
		}
		t.parent = parent
		t.slots = append(t.slots, parent.slots...)
		for name, i := range parent.index {
			t.index[name] = i
		}
	}

	for _, slot := range info.Slots {
		if slot.Name == "" {
			return nil, fmt.Errorf("native type %s: slot name must not be empty", info.Key)
		}
		if _, dup := t.index[slot.Name]; dup {
			return nil, fmt.Errorf("native type %s: duplicate slot %s", info.Key, slot.Name)
		}
		t.index[slot.Name] = len(t.slots)
		t.slots = append(t.slots, slot)
	}

	t.postInit = info.PostInit

	r.types[info.Key] = t
	return t, nil
}

// Unregister removes a native type. A type that is still the parent of
// another registered type cannot be removed.
func (r *Registry) Unregister(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.types[key]
	if !ok {
		return fmt.Errorf("native type %s is not registered", key)
	}
	for _, other := range r.types {
		if other.parent == t {
			return fmt.Errorf("native type %s is the parent of %s", key, other.key)
		}
	}
	delete(r.types, key)
	return nil
}

// Lookup retrieves a native type by key
func (r *Registry) Lookup(key string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[key]
	return t, ok
}

// List returns all registered type keys in sorted order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.types))
	for key := range r.types {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
