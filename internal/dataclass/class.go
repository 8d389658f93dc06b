package dataclass

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ffibind/ffibind/internal/foreign"
)

// ClassOptions are the class-level decoration directives
type ClassOptions struct {
	// KwOnly makes every constructor parameter keyword-only
	KwOnly bool

	// InitSubset, when non-nil, limits the constructor parameters to the
	// named fields. Excluded fields still receive their defaults.
	InitSubset []string
}

// ClassDef is the explicit description of a decorated class
type ClassDef struct {
	Name    string
	TypeKey string // foreign type identifier

	// Bases are already-defined class names, most-base first
	Bases   []string
	Members []Member
	Options ClassOptions
}

// Class is a decorated class: resolved fields, synthesized signature and
// bound constructor. It is immutable once published by a Registry.
type Class struct {
	name      string
	typ       *foreign.Type
	bases     []*Class
	options   ClassOptions
	fields    *FieldSet
	signature *Signature
	ctor      *Constructor
}

// Name returns the class name
func (c *Class) Name() string {
	return c.name
}

// TypeKey returns the foreign type identifier
func (c *Class) TypeKey() string {
	return c.typ.Key()
}

// Bases returns the direct bases, most-base first
func (c *Class) Bases() []*Class {
	out := make([]*Class, len(c.bases))
	copy(out, c.bases)
	return out
}

// Options returns the decoration directives
func (c *Class) Options() ClassOptions {
	return c.options
}

// Fields returns the resolved field set
func (c *Class) Fields() *FieldSet {
	return c.fields
}

// Signature returns the synthesized constructor signature
func (c *Class) Signature() *Signature {
	return c.signature
}

// New constructs an instance. On any error no instance is returned.
func (c *Class) New(args []any, kwargs map[string]any) (*Instance, error) {
	obj := c.typ.Allocate()
	if err := c.ctor.Call(obj, args, kwargs); err != nil {
		return nil, err
	}
	if err := obj.RunPostInit(); err != nil {
		return nil, &TypeError{
			Code:    ErrNativeInit,
			Class:   c.name,
			Message: "native initializer failed",
			Cause:   err,
		}
	}
	return &Instance{class: c, obj: obj}, nil
}

// Instance is one constructed object of a decorated class
type Instance struct {
	class *Class
	obj   *foreign.Object
}

// Class returns the instance's class
func (i *Instance) Class() *Class {
	return i.class
}

// ID returns the foreign object handle
func (i *Instance) ID() uuid.UUID {
	return i.obj.ID()
}

// Object returns the underlying foreign object
func (i *Instance) Object() *foreign.Object {
	return i.obj
}

// Get reads a field
func (i *Instance) Get(name string) (any, error) {
	if _, ok := i.class.fields.Get(name); !ok {
		return nil, typeErrorf(ErrUnknownAttribute, i.class.name, name,
			"%s object has no attribute %q", i.class.name, name)
	}
	v, ok := i.obj.Get(name)
	if !ok {
		return nil, typeErrorf(ErrUnknownAttribute, i.class.name, name,
			"%s object has no attribute %q; it was never assigned", i.class.name, name)
	}
	return v, nil
}

// Set writes a field, with the same slot coercion as construction
func (i *Instance) Set(name string, value any) error {
	if _, ok := i.class.fields.Get(name); !ok {
		return typeErrorf(ErrUnknownAttribute, i.class.name, name,
			"%s object has no attribute %q", i.class.name, name)
	}
	if err := i.obj.AssignSlot(name, value); err != nil {
		return &TypeError{
			Code:    ErrSlotType,
			Class:   i.class.name,
			Field:   name,
			Message: "cannot assign attribute",
			Cause:   err,
		}
	}
	return nil
}

// FieldValue is one field of an instance
type FieldValue struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Values returns every assigned field value in field order. Fields left
// unassigned by the constructor are omitted.
func (i *Instance) Values() []FieldValue {
	fields := i.class.fields.Fields()
	out := make([]FieldValue, 0, len(fields))
	for _, f := range fields {
		v, ok := i.obj.Get(f.name)
		if !ok {
			continue
		}
		out = append(out, FieldValue{Name: f.name, Value: v})
	}
	return out
}

// String renders the instance as Name(field=value, ...)
func (i *Instance) String() string {
	var b strings.Builder
	b.WriteString(i.class.name)
	b.WriteByte('(')
	for n, fv := range i.Values() {
		if n > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%s", fv.Name, formatValue(fv.Value))
	}
	b.WriteByte(')')
	return b.String()
}

// MarshalJSON implements json.Marshaler
func (i *Instance) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Class  string       `json:"class"`
		Type   string       `json:"type"`
		ID     string       `json:"id"`
		Fields []FieldValue `json:"fields"`
	}{
		Class:  i.class.name,
		Type:   i.class.TypeKey(),
		ID:     i.obj.ID().String(),
		Fields: i.Values(),
	})
}
