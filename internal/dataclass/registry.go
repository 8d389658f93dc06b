package dataclass

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ffibind/ffibind/internal/foreign"
)

// Registry manages all decorated classes in the process. Each class is
// computed once when defined and only read afterwards.
type Registry struct {
	classes map[string]*Class
	order   []string
	types   *foreign.Registry
	logger  *zap.Logger
	mu      sync.RWMutex
}

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithLogger sets the registry logger
func WithLogger(logger *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates a class registry over the given native types
func NewRegistry(types *foreign.Registry, opts ...RegistryOption) *Registry {
	r := &Registry{
		classes: make(map[string]*Class),
		types:   types,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Types returns the native type registry
func (r *Registry) Types() *foreign.Registry {
	return r.types
}

// Define decorates a class: it collects the fields over the bases,
// synthesizes the constructor signature, binds the constructor and
// publishes the class.
func (r *Registry) Define(def ClassDef) (*Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.classes[def.Name]; exists {
		return nil, configErrorf(ErrDuplicateClass, def.Name, "", "class is already defined")
	}

	bases := make([]*Class, 0, len(def.Bases))
	baseSets := make([]*FieldSet, 0, len(def.Bases))
	for _, name := range def.Bases {
		base, ok := r.classes[name]
		if !ok {
			return nil, configErrorf(ErrUnknownBase, def.Name, "", "unknown base class %q", name)
		}
		bases = append(bases, base)
		baseSets = append(baseSets, base.fields)
	}

	typ, err := r.resolveType(def, bases)
	if err != nil {
		return nil, err
	}

	fields, err := Collect(def.Name, def.Members, baseSets, def.Options.KwOnly)
	if err != nil {
		return nil, err
	}

	sig, err := BuildSignature(def.Name, fields, SignatureOptions{
		KwOnly:     def.Options.KwOnly,
		InitSubset: def.Options.InitSubset,
	})
	if err != nil {
		return nil, err
	}

	opts := def.Options
	if opts.InitSubset != nil {
		opts.InitSubset = append([]string(nil), opts.InitSubset...)
	}

	class := &Class{
		name:      def.Name,
		typ:       typ,
		bases:     bases,
		options:   opts,
		fields:    fields,
		signature: sig,
		ctor:      Bind(sig, fields),
	}
	r.classes[def.Name] = class
	r.order = append(r.order, def.Name)

	r.logger.Debug("class defined",
		zap.String("class", def.Name),
		zap.String("type", typ.Key()),
		zap.Strings("fields", fields.Names()),
		zap.String("signature", sig.String()),
	)
	return class, nil
}

// resolveType finds the foreign type of a class. A class without a type
// key inherits the type of its last base.
func (r *Registry) resolveType(def ClassDef, bases []*Class) (*foreign.Type, error) {
	var typ *foreign.Type
	switch {
	case def.TypeKey != "":
		t, ok := r.types.Lookup(def.TypeKey)
		if !ok {
			return nil, configErrorf(ErrUnknownForeignType, def.Name, "",
				"unknown foreign type %q", def.TypeKey)
		}
		typ = t
	case len(bases) > 0:
		typ = bases[len(bases)-1].typ
	default:
		return nil, configErrorf(ErrUnknownForeignType, def.Name, "", "class has no foreign type")
	}

	for _, base := range bases {
		if !typ.IsSubtypeOf(base.typ) {
			return nil, configErrorf(ErrIncompatibleBaseType, def.Name, "",
				"foreign type %q does not derive from %q of base %s", typ.Key(), base.typ.Key(), base.name)
		}
	}
	return typ, nil
}

// Undefine removes a class. A class that is still a base of another
// defined class cannot be removed. Instances already constructed keep
// working.
func (r *Registry) Undefine(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	class, ok := r.classes[name]
	if !ok {
		return fmt.Errorf("class %s is not defined", name)
	}
	for _, other := range r.classes {
		for _, base := range other.bases {
			if base == class {
				return fmt.Errorf("class %s is a base of %s", name, other.name)
			}
		}
	}

	delete(r.classes, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.logger.Debug("class removed", zap.String("class", name))
	return nil
}

// Get retrieves a class by name
func (r *Registry) Get(name string) (*Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.classes[name]
	return c, ok
}

// FieldSet returns the resolved field set of a defined class
func (r *Registry) FieldSet(name string) (*FieldSet, bool) {
	c, ok := r.Get(name)
	if !ok {
		return nil, false
	}
	return c.fields, true
}

// List returns class names in definition order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Count returns the number of defined classes
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.classes)
}
