package dataclass

import (
	"fmt"
	"strings"
)

// ParamKind tags how a constructor parameter may be supplied
type ParamKind int

const (
	PositionalOrKeyword ParamKind = iota
	KeywordOnly
)

// String returns the string representation of the parameter kind
func (k ParamKind) String() string {
	switch k {
	case PositionalOrKeyword:
		return "positional_or_keyword"
	case KeywordOnly:
		return "keyword_only"
	default:
		return "unknown"
	}
}

// Parameter is one constructor parameter
type Parameter struct {
	Name string
	Kind ParamKind
	Type string

	field *Field
}

// Required reports whether the parameter has no default
func (p Parameter) Required() bool {
	return !p.field.HasDefault()
}

// Default returns the plain default bound at signature-build time.
// Parameters backed by a default factory report false.
func (p Parameter) Default() (any, bool) {
	return p.field.Default()
}

// HasFactory reports whether the default is produced per instance
func (p Parameter) HasFactory() bool {
	return p.field.HasFactory()
}

// DefaultString renders the default as it appears in a signature, or ""
// for a required parameter
func (p Parameter) DefaultString() string {
	switch {
	case p.field.HasFactory():
		return "<factory>"
	case p.field.hasDefault:
		return formatValue(p.field.defaultValue)
	default:
		return ""
	}
}

// String renders the parameter as it appears in a signature
func (p Parameter) String() string {
	if p.Required() {
		return p.Name
	}
	return p.Name + "=" + p.DefaultString()
}

// SignatureOptions carries the class-level directives that shape a signature
type SignatureOptions struct {
	// KwOnly forces every parameter to be keyword-only
	KwOnly bool

	// InitSubset, when non-nil, restricts the parameters to the named fields
	InitSubset []string
}

// Signature is the ordered parameter list of a synthesized constructor:
// positional-or-keyword parameters first, then keyword-only ones.
type Signature struct {
	class      string
	params     []Parameter
	index      map[string]int
	positional int
}

// BuildSignature derives the constructor signature of a class from its
// resolved field set.
func BuildSignature(class string, fields *FieldSet, opts SignatureOptions) (*Signature, error) {
	selected, err := selectInitFields(class, fields, opts.InitSubset)
	if err != nil {
		return nil, err
	}

	var positional, kwOnly []*Field
	for _, f := range selected {
		if opts.KwOnly || f.kwOnly == KwOnlyTrue {
			kwOnly = append(kwOnly, f)
		} else {
			positional = append(positional, f)
		}
	}

	var firstDefault *Field
	for _, f := range positional {
		if f.HasDefault() {
			if firstDefault == nil {
				firstDefault = f
			}
			continue
		}
		if firstDefault != nil {
			return nil, configErrorf(ErrDefaultOrder, class, f.name,
				"non-default argument %q follows default argument %q", f.name, firstDefault.name)
		}
	}

	sig := &Signature{
		class:      class,
		params:     make([]Parameter, 0, len(selected)),
		index:      make(map[string]int, len(selected)),
		positional: len(positional),
	}
	for _, f := range positional {
		sig.add(f, PositionalOrKeyword)
	}
	for _, f := range kwOnly {
		sig.add(f, KeywordOnly)
	}
	return sig, nil
}

func selectInitFields(class string, fields *FieldSet, subset []string) ([]*Field, error) {
	if subset == nil {
		var out []*Field
		for _, f := range fields.Fields() {
			if f.init {
				out = append(out, f)
			}
		}
		return out, nil
	}

	wanted := make(map[string]bool, len(subset))
	for _, name := range subset {
		f, ok := fields.Get(name)
		if !ok {
			return nil, configErrorf(ErrUnknownSubsetField, class, name,
				"init subset names unknown field %q", name)
		}
		if !f.init {
			return nil, configErrorf(ErrSubsetNonInitField, class, name,
				"field %q has init=false and cannot be a constructor parameter", name)
		}
		wanted[name] = true
	}

	var out []*Field
	for _, f := range fields.Fields() {
		if wanted[f.name] {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *Signature) add(f *Field, kind ParamKind) {
	s.index[f.name] = len(s.params)
	s.params = append(s.params, Parameter{
		Name:  f.name,
		Kind:  kind,
		Type:  f.typeName,
		field: f,
	})
}

// Parameters returns the parameters in call order
func (s *Signature) Parameters() []Parameter {
	out := make([]Parameter, len(s.params))
	copy(out, s.params)
	return out
}

// Names returns the parameter names in call order
func (s *Signature) Names() []string {
	names := make([]string, len(s.params))
	for i, p := range s.params {
		names[i] = p.Name
	}
	return names
}

// Lookup finds a parameter by name
func (s *Signature) Lookup(name string) (Parameter, bool) {
	i, ok := s.index[name]
	if !ok {
		return Parameter{}, false
	}
	return s.params[i], true
}

// Has reports whether name is a parameter
func (s *Signature) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// PositionalCount returns the number of positional-or-keyword parameters
func (s *Signature) PositionalCount() int {
	return s.positional
}

// Len returns the total number of parameters
func (s *Signature) Len() int {
	return len(s.params)
}

// String renders the signature, e.g. "(a, b=1, *, c, d=<factory>)"
func (s *Signature) String() string {
	parts := make([]string, 0, len(s.params)+1)
	for i, p := range s.params {
		if i == s.positional {
			parts = append(parts, "*")
		}
		parts = append(parts, p.String())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case string:
		return fmt.Sprintf("%q", val)
	case bool:
		if val {
			return "True"
		}
		return "False"
	default:
		return fmt.Sprintf("%v", val)
	}
}
