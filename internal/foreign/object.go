package foreign

import (
	"fmt"

	"github.com/google/uuid"
)

// Object is one instance of a native type. Named slots live in native
// storage; any other name is kept as a host-side attribute.
type Object struct {
	id    uuid.UUID
	typ   *Type
	slots []any
	attrs map[string]any
}

func newObject(t *Type) *Object {
	slots := make([]any, len(t.slots))
	for i, slot := range t.slots {
		slots[i] = slot.Kind.zero()
	}
	return &Object{
		id:    uuid.New(),
		typ:   t,
		slots: slots,
		attrs: make(map[string]any),
	}
}

// ID returns the object's handle
func (o *Object) ID() uuid.UUID {
	return o.id
}

// Type returns the object's native type
func (o *Object) Type() *Type {
	return o.typ
}

// CheckSlot reports whether value could be assigned to name without
// touching the object.
func (o *Object) CheckSlot(name string, value any) error {
	slot, ok := o.typ.Slot(name)
	if !ok {
		return nil
	}
	_, err := slot.Coerce(value)
	return err
}

// AssignSlot stores value under name, routing it to the native slot when
// the type declares one and to a host attribute otherwise.
func (o *Object) AssignSlot(name string, value any) error {
	i, ok := o.typ.index[name]
	if !ok {
		o.attrs[name] = value
		return nil
	}
	v, err := o.typ.slots[i].Coerce(value)
	if err != nil {
		return err
	}
	o.slots[i] = v
	return nil
}

// Get reads a slot or host attribute
func (o *Object) Get(name string) (any, bool) {
	if i, ok := o.typ.index[name]; ok {
		return o.slots[i], true
	}
	v, ok := o.attrs[name]
	return v, ok
}

// IsNative reports whether name is backed by a native slot
func (o *Object) IsNative(name string) bool {
	_, ok := o.typ.index[name]
	return ok
}

// RunPostInit runs the post-init hook of the object's own type
func (o *Object) RunPostInit() error {
	if o.typ.postInit == nil {
		return nil
	}
	if err := o.typ.postInit(o); err != nil {
		return fmt.Errorf("native init %s: %w", o.typ.key, err)
	}
	return nil
}
