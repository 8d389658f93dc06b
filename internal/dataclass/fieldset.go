package dataclass

// FieldSet is the resolved, ordered field list of a class. It is
// immutable once returned by Collect.
type FieldSet struct {
	fields []*Field
	index  map[string]int
}

func newFieldSet() *FieldSet {
	return &FieldSet{index: make(map[string]int)}
}

// overlay replaces an existing field in place or appends a new one
func (s *FieldSet) overlay(f *Field) {
	if i, ok := s.index[f.name]; ok {
		s.fields[i] = f
		return
	}
	s.index[f.name] = len(s.fields)
	s.fields = append(s.fields, f)
}

// Len returns the number of fields
func (s *FieldSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// Fields returns the fields in resolution order
func (s *FieldSet) Fields() []*Field {
	if s == nil {
		return nil
	}
	out := make([]*Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Names returns the field names in resolution order
func (s *FieldSet) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.name
	}
	return names
}

// Get looks up a field by name
func (s *FieldSet) Get(name string) (*Field, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i], true
}

// Position returns the index of name in resolution order, or -1
func (s *FieldSet) Position(name string) int {
	if s == nil {
		return -1
	}
	i, ok := s.index[name]
	if !ok {
		return -1
	}
	return i
}
