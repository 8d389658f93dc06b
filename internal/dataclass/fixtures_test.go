package dataclass

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ffibind/ffibind/internal/foreign"
)

// newTestingRegistry mirrors the testing.* native classes: a three level
// hierarchy, an init subset class and a class-level keyword-only class.
func newTestingRegistry(t *testing.T, opts ...RegistryOption) *Registry {
	t.Helper()

	types := foreign.NewRegistry()
	mustType(t, types, foreign.TypeInfo{
		Key: "testing.TestCxxClassBase",
		Slots: []foreign.Slot{
			{Name: "v_i64", Kind: foreign.KindInt64},
			{Name: "v_i32", Kind: foreign.KindInt32},
		},
		PostInit: func(o *foreign.Object) error {
			i64, _ := o.Get("v_i64")
			i32, _ := o.Get("v_i32")
			if err := o.AssignSlot("v_i64", i64.(int64)+1); err != nil {
				return err
			}
			return o.AssignSlot("v_i32", i32.(int32)+2)
		},
	})
	mustType(t, types, foreign.TypeInfo{
		Key:    "testing.TestCxxClassDerived",
		Parent: "testing.TestCxxClassBase",
		Slots: []foreign.Slot{
			{Name: "v_f64", Kind: foreign.KindFloat64},
			{Name: "v_f32", Kind: foreign.KindFloat32},
		},
	})
	mustType(t, types, foreign.TypeInfo{
		Key:    "testing.TestCxxClassDerivedDerived",
		Parent: "testing.TestCxxClassDerived",
		Slots: []foreign.Slot{
			{Name: "v_str", Kind: foreign.KindString},
			{Name: "v_bool", Kind: foreign.KindBool},
		},
	})
	mustType(t, types, foreign.TypeInfo{
		Key: "testing.TestCxxInitSubset",
		Slots: []foreign.Slot{
			{Name: "required_field", Kind: foreign.KindInt64},
			{Name: "optional_field", Kind: foreign.KindInt64},
		},
	})
	mustType(t, types, foreign.TypeInfo{
		Key: "testing.TestCxxKwOnly",
		Slots: []foreign.Slot{
			{Name: "x", Kind: foreign.KindInt64},
			{Name: "y", Kind: foreign.KindInt64},
			{Name: "z", Kind: foreign.KindInt64},
			{Name: "w", Kind: foreign.KindInt64},
		},
	})

	r := NewRegistry(types, opts...)
	defs := []ClassDef{
		{
			Name:    "TestCxxClassBase",
			TypeKey: "testing.TestCxxClassBase",
			Members: []Member{
				Annotate("v_i64", "int"),
				Annotate("v_i32", "int"),
			},
		},
		{
			Name:    "TestCxxClassDerived",
			TypeKey: "testing.TestCxxClassDerived",
			Bases:   []string{"TestCxxClassBase"},
			Members: []Member{
				Annotate("v_f64", "float"),
				Declare("v_f32", "float", MustField(WithDefault(8.0), WithKwOnly(true))),
			},
		},
		{
			Name:    "TestCxxClassDerivedDerived",
			TypeKey: "testing.TestCxxClassDerivedDerived",
			Bases:   []string{"TestCxxClassDerived"},
			Members: []Member{
				Declare("v_str", "str", MustField(WithDefault("default"), WithKwOnly(true))),
				Annotate("v_bool", "bool"),
			},
		},
		{
			Name:    "TestCxxInitSubset",
			TypeKey: "testing.TestCxxInitSubset",
			Members: []Member{
				Annotate("required_field", "int"),
				Assign("optional_field", "int", -1),
				Assign("note", "str", "py-default"),
			},
			Options: ClassOptions{InitSubset: []string{"required_field"}},
		},
		{
			Name:    "TestCxxKwOnly",
			TypeKey: "testing.TestCxxKwOnly",
			Members: []Member{
				Annotate("x", "int"),
				Annotate("y", "int"),
				Annotate("z", "int"),
				Assign("w", "int", 100),
			},
			Options: ClassOptions{KwOnly: true},
		},
	}
	for _, def := range defs {
		_, err := r.Define(def)
		require.NoError(t, err, "define %s", def.Name)
	}
	return r
}

func mustType(t *testing.T, r *foreign.Registry, info foreign.TypeInfo) {
	t.Helper()
	_, err := r.Register(info)
	require.NoError(t, err)
}

func mustClass(t *testing.T, r *Registry, name string) *Class {
	t.Helper()
	c, ok := r.Get(name)
	require.True(t, ok, "class %s not defined", name)
	return c
}

func mustGet(t *testing.T, inst *Instance, name string) any {
	t.Helper()
	v, err := inst.Get(name)
	require.NoError(t, err)
	return v
}

// fieldSetOf collects a standalone field set, failing the test on error
func fieldSetOf(t *testing.T, members []Member, bases ...*FieldSet) *FieldSet {
	t.Helper()
	fs, err := Collect("T", members, bases, false)
	require.NoError(t, err)
	return fs
}
