package dataclass

// Member is one entry of a class body: a field declaration or the
// keyword-only marker.
type Member struct {
	name     string
	typeName string
	field    *Field
	value    any
	hasValue bool
	kwMarker bool
}

// KWOnly is the class body marker after which every field whose
// keyword-only setting is unset becomes keyword-only.
var KWOnly = Member{kwMarker: true}

// Annotate declares a field by name and type only
func Annotate(name, typeName string) Member {
	return Member{name: name, typeName: typeName}
}

// Assign declares a field with a plain assigned value, which becomes its default
func Assign(name, typeName string, value any) Member {
	return Member{name: name, typeName: typeName, value: value, hasValue: true}
}

// Declare declares a field with an explicit descriptor
func Declare(name, typeName string, f *Field) Member {
	return Member{name: name, typeName: typeName, field: f}
}

// IsKWOnlyMarker reports whether m is the keyword-only marker
func (m Member) IsKWOnlyMarker() bool {
	return m.kwMarker
}

// Name returns the declared field name
func (m Member) Name() string {
	return m.name
}

// descriptor turns the member into a named Field with its kw_only still unresolved
func (m Member) descriptor() *Field {
	if m.field != nil {
		return m.field.clone(m.name, m.typeName)
	}
	f := &Field{init: true}
	if m.hasValue {
		f.defaultValue = m.value
		f.hasDefault = true
	}
	return f.clone(m.name, m.typeName)
}

// Collect resolves the field set of a class. Bases are supplied most-base
// first; each is overlaid in turn and then the class's own members.
// A redeclared name replaces the earlier descriptor and keeps its
// position. Unset keyword-only settings on the class's own fields resolve
// to true after a KWOnly marker, else to classKwOnly.
func Collect(class string, members []Member, bases []*FieldSet, classKwOnly bool) (*FieldSet, error) {
	set := newFieldSet()
	for _, base := range bases {
		if base == nil {
			continue
		}
		for _, f := range base.fields {
			set.overlay(f)
		}
	}

	seen := make(map[string]bool, len(members))
	afterMarker := false
	for _, m := range members {
		if m.kwMarker {
			if afterMarker {
				return nil, configErrorf(ErrDuplicateKWOnly, class, "",
					"KW_ONLY marker may only be used once")
			}
			afterMarker = true
			continue
		}
		if m.name == "" {
			return nil, configErrorf(ErrEmptyFieldName, class, "", "field name must not be empty")
		}
		if seen[m.name] {
			return nil, configErrorf(ErrDuplicateField, class, m.name,
				"field %q declared more than once", m.name)
		}
		seen[m.name] = true

		f := m.descriptor()
		if !f.kwOnly.IsSet() {
			f.kwOnly = KwOnlyOf(afterMarker || classKwOnly)
		}
		set.overlay(f)
	}

	return set, nil
}
