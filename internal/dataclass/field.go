// Package dataclass binds declaratively described fields onto foreign
// object types. It resolves field descriptors across a class hierarchy,
// synthesizes a constructor signature and binds constructor calls onto
// native slots.
package dataclass

// KwOnly is the keyword-only setting of a field. Unset defers to the
// enclosing class when the field is collected.
type KwOnly int

const (
	KwOnlyUnset KwOnly = iota
	KwOnlyFalse
	KwOnlyTrue
)

// String returns the string representation of the setting
func (k KwOnly) String() string {
	switch k {
	case KwOnlyUnset:
		return "unset"
	case KwOnlyFalse:
		return "false"
	case KwOnlyTrue:
		return "true"
	default:
		return "unknown"
	}
}

// KwOnlyOf converts a bool into a set KwOnly value
func KwOnlyOf(b bool) KwOnly {
	if b {
		return KwOnlyTrue
	}
	return KwOnlyFalse
}

// IsSet reports whether the setting is explicit
func (k KwOnly) IsSet() bool {
	return k == KwOnlyTrue || k == KwOnlyFalse
}

// Field describes one declared attribute of a class.
type Field struct {
	name     string
	typeName string

	defaultValue any
	hasDefault   bool
	factory      func() any

	kwOnly   KwOnly
	init     bool
	metadata map[string]any
}

// FieldOption configures a Field
type FieldOption func(*fieldConfig)

type fieldConfig struct {
	defaultValue any
	hasDefault   bool
	factory      func() any
	kwOnly       KwOnly
	init         bool
	metadata     map[string]any
}

// WithDefault sets a default value shared by every instance
func WithDefault(v any) FieldOption {
	return func(c *fieldConfig) {
		c.defaultValue = v
		c.hasDefault = true
	}
}

// WithDefaultFactory sets a factory invoked once per constructed instance
func WithDefaultFactory(fn func() any) FieldOption {
	return func(c *fieldConfig) {
		c.factory = fn
	}
}

// WithKwOnly marks the field keyword-only (or explicitly positional)
func WithKwOnly(b bool) FieldOption {
	return func(c *fieldConfig) {
		c.kwOnly = KwOnlyOf(b)
	}
}

// WithInit controls whether the field is a constructor parameter
func WithInit(b bool) FieldOption {
	return func(c *fieldConfig) {
		c.init = b
	}
}

// WithMetadata attaches free-form metadata to the field
func WithMetadata(md map[string]any) FieldOption {
	return func(c *fieldConfig) {
		c.metadata = md
	}
}

// NewField creates a field descriptor. Supplying both a default and a
// default factory is a configuration error.
func NewField(opts ...FieldOption) (*Field, error) {
	cfg := fieldConfig{init: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.hasDefault && cfg.factory != nil {
		return nil, configErrorf(ErrConflictingDefaults, "", "",
			"cannot specify both default and default_factory")
	}

	f := &Field{
		defaultValue: cfg.defaultValue,
		hasDefault:   cfg.hasDefault,
		factory:      cfg.factory,
		kwOnly:       cfg.kwOnly,
		init:         cfg.init,
	}
	if cfg.metadata != nil {
		f.metadata = make(map[string]any, len(cfg.metadata))
		for k, v := range cfg.metadata {
			f.metadata[k] = v
		}
	}
	return f, nil
}

// MustField is like NewField but panics on error. It is meant for
// package-level class declarations.
func MustField(opts ...FieldOption) *Field {
	f, err := NewField(opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Name returns the field name. It is empty until the field is collected.
func (f *Field) Name() string {
	return f.name
}

// Type returns the declared type name
func (f *Field) Type() string {
	return f.typeName
}

// KwOnly returns the keyword-only setting
func (f *Field) KwOnly() KwOnly {
	return f.kwOnly
}

// Init reports whether the field is a constructor parameter
func (f *Field) Init() bool {
	return f.init
}

// Default returns the plain default value, if one was given
func (f *Field) Default() (any, bool) {
	return f.defaultValue, f.hasDefault
}

// HasDefault reports whether the field has a default or a default factory
func (f *Field) HasDefault() bool {
	return f.hasDefault || f.factory != nil
}

// HasFactory reports whether the field carries an explicit default factory
func (f *Field) HasFactory() bool {
	return f.factory != nil
}

// DefaultFactory returns a zero-argument function producing the default.
// A plain default is wrapped so the factory returns that value. Nil when
// the field is required.
func (f *Field) DefaultFactory() func() any {
	if f.factory != nil {
		return f.factory
	}
	if f.hasDefault {
		v := f.defaultValue
		return func() any { return v }
	}
	return nil
}

// Metadata returns the value stored under key
func (f *Field) Metadata(key string) (any, bool) {
	v, ok := f.metadata[key]
	return v, ok
}

// MetadataMap returns a copy of the field metadata, nil when there is none
func (f *Field) MetadataMap() map[string]any {
	if len(f.metadata) == 0 {
		return nil
	}
	out := make(map[string]any, len(f.metadata))
	for k, v := range f.metadata {
		out[k] = v
	}
	return out
}

// defaultValueFor produces the default for one new instance
func (f *Field) defaultValueFor() any {
	if f.factory != nil {
		return f.factory()
	}
	return f.defaultValue
}

// clone returns a named copy. Metadata is shared; it is never mutated
// after NewField.
func (f *Field) clone(name, typeName string) *Field {
	c := *f
	c.name = name
	c.typeName = typeName
	return &c
}
