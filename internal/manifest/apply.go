package manifest

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ffibind/ffibind/internal/dataclass"
	"github.com/ffibind/ffibind/internal/foreign"
)

// Factory produces a fresh default value per constructed instance
type Factory func() any

// DefaultFactories are the named default factories available to every manifest
var DefaultFactories = map[string]Factory{
	"list": func() any { return []any{} },
	"dict": func() any { return map[string]any{} },
	"uuid": func() any { return uuid.NewString() },
}

// Loader applies manifests to a type registry and a class registry
type Loader struct {
	types     *foreign.Registry
	classes   *dataclass.Registry
	factories map[string]Factory
	applied   []*Manifest
}

// NewLoader creates a loader that defines into classes. Native types are
// registered in the class registry's type registry.
func NewLoader(classes *dataclass.Registry) *Loader {
	factories := make(map[string]Factory, len(DefaultFactories))
	for name, fn := range DefaultFactories {
		factories[name] = fn
	}
	return &Loader{
		types:     classes.Types(),
		classes:   classes,
		factories: factories,
	}
}

// RegisterFactory makes a named default factory available to manifests
func (l *Loader) RegisterFactory(name string, fn Factory) {
	l.factories[name] = fn
}

// Factories returns the sorted names of the available factories
func (l *Loader) Factories() []string {
	names := make([]string, 0, len(l.factories))
	for name := range l.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Manifests returns the manifests applied so far, in order
func (l *Loader) Manifests() []*Manifest {
	out := make([]*Manifest, len(l.applied))
	copy(out, l.applied)
	return out
}

// LoadFiles loads and applies each manifest file in order
func (l *Loader) LoadFiles(paths ...string) error {
	for _, path := range paths {
		m, err := Load(path)
		if err != nil {
			return err
		}
		if err := l.Apply(m); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// Apply registers every native type and then defines every class, in
// document order. It stops at the first error and removes whatever it
// had registered, so a failed manifest leaves both registries unchanged.
func (l *Loader) Apply(m *Manifest) (err error) {
	var types, classes []string
	defer func() {
		if err == nil {
			return
		}
		for i := len(classes) - 1; i >= 0; i-- {
			_ = l.classes.Undefine(classes[i])
		}
		for i := len(types) - 1; i >= 0; i-- {
			_ = l.types.Unregister(types[i])
		}
	}()

	for _, td := range m.Types {
		info, err := typeInfo(td)
		if err != nil {
			return err
		}
		if _, err := l.types.Register(info); err != nil {
			return err
		}
		types = append(types, td.Key)
	}

	for _, cd := range m.Classes {
		def, err := l.classDef(cd)
		if err != nil {
			return err
		}
		if _, err := l.classes.Define(def); err != nil {
			return err
		}
		classes = append(classes, cd.Name)
	}

	l.applied = append(l.applied, m)
	return nil
}

func typeInfo(td TypeDecl) (foreign.TypeInfo, error) {
	info := foreign.TypeInfo{
		Key:    td.Key,
		Parent: td.Parent,
		Slots:  make([]foreign.Slot, 0, len(td.Slots)),
	}
	for _, sd := range td.Slots {
		kind, err := foreign.ParseSlotKind(sd.Kind)
		if err != nil {
			return foreign.TypeInfo{}, fmt.Errorf("type %s: %w", td.Key, err)
		}
		info.Slots = append(info.Slots, foreign.Slot{Name: sd.Name, Kind: kind})
	}
	return info, nil
}

func (l *Loader) classDef(cd ClassDecl) (dataclass.ClassDef, error) {
	def := dataclass.ClassDef{
		Name:    cd.Name,
		TypeKey: cd.Type,
		Bases:   cd.Bases,
		Options: dataclass.ClassOptions{
			KwOnly: cd.KwOnly,
		},
		Members: make([]dataclass.Member, 0, len(cd.Fields)),
	}
	if cd.Init != nil {
		def.Options.InitSubset = append([]string{}, (*cd.Init)...)
	}

	for _, fd := range cd.Fields {
		m, err := l.member(fd)
		if err != nil {
			return dataclass.ClassDef{}, fmt.Errorf("class %s: %w", cd.Name, err)
		}
		def.Members = append(def.Members, m)
	}
	return def, nil
}

func (l *Loader) member(fd FieldDecl) (dataclass.Member, error) {
	if fd.KwOnlyMarker {
		return dataclass.KWOnly, nil
	}

	var opts []dataclass.FieldOption
	if fd.Default != nil {
		v, err := decodeValue(fd.Default)
		if err != nil {
			return dataclass.Member{}, fmt.Errorf("field %s: default: %w", fd.Name, err)
		}
		if fd.DefaultFactory == "" && fd.KwOnly == nil && fd.Init == nil && fd.Metadata == nil {
			return dataclass.Assign(fd.Name, fd.Type, v), nil
		}
		opts = append(opts, dataclass.WithDefault(v))
	}
	if fd.DefaultFactory != "" {
		fn, ok := l.factories[fd.DefaultFactory]
		if !ok {
			return dataclass.Member{}, fmt.Errorf("field %s: unknown default_factory %q", fd.Name, fd.DefaultFactory)
		}
		opts = append(opts, dataclass.WithDefaultFactory(fn))
	}
	if fd.KwOnly != nil {
		opts = append(opts, dataclass.WithKwOnly(*fd.KwOnly))
	}
	if fd.Init != nil {
		opts = append(opts, dataclass.WithInit(*fd.Init))
	}
	if fd.Metadata != nil {
		opts = append(opts, dataclass.WithMetadata(fd.Metadata))
	}

	if len(opts) == 0 {
		return dataclass.Annotate(fd.Name, fd.Type), nil
	}

	f, err := dataclass.NewField(opts...)
	if err != nil {
		return dataclass.Member{}, err
	}
	return dataclass.Declare(fd.Name, fd.Type, f), nil
}

func decodeValue(n *yaml.Node) (any, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseScalar decodes a YAML scalar literal: 1 is an int, 1.5 a float,
// true a bool, null nil, and anything else a string.
func ParseScalar(s string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("invalid value %q: %w", s, err)
	}
	switch v.(type) {
	case map[string]any, []any:
		return s, nil
	}
	return v, nil
}
