// Package manifest loads class manifests: YAML documents declaring native
// types and the decorated classes bound to them.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is one decoded manifest document
type Manifest struct {
	Types   []TypeDecl  `yaml:"types"`
	Classes []ClassDecl `yaml:"classes"`

	// Source is the file the manifest was read from, if any
	Source string `yaml:"-"`
}

// TypeDecl declares a native type
type TypeDecl struct {
	Key    string     `yaml:"key"`
	Parent string     `yaml:"parent,omitempty"`
	Slots  []SlotDecl `yaml:"slots,omitempty"`
}

// SlotDecl declares one native slot
type SlotDecl struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind,omitempty"`
}

// ClassDecl declares a decorated class. A nil Init means every field is
// a constructor parameter; an empty one means none is.
type ClassDecl struct {
	Name   string      `yaml:"name"`
	Type   string      `yaml:"type,omitempty"`
	Bases  []string    `yaml:"bases,omitempty"`
	KwOnly bool        `yaml:"kw_only,omitempty"`
	Init   *[]string   `yaml:"init,omitempty"`
	Fields []FieldDecl `yaml:"fields,omitempty"`
}

// FieldDecl declares one class body member. A member with kw_only_marker
// set is the keyword-only divider and carries nothing else.
type FieldDecl struct {
	Name         string `yaml:"name,omitempty"`
	Type         string `yaml:"type,omitempty"`
	KwOnlyMarker bool   `yaml:"kw_only_marker,omitempty"`

	// Default is the raw `default:` node, nil when the key is absent. An
	// explicit `default: null` is a non-nil node tagged !!null.
	Default *yaml.Node `yaml:"-"`

	DefaultFactory string         `yaml:"default_factory,omitempty"`
	KwOnly         *bool          `yaml:"kw_only,omitempty"`
	Init           *bool          `yaml:"init,omitempty"`
	Metadata       map[string]any `yaml:"metadata,omitempty"`
}

// fieldDeclFields has FieldDecl's fields without its methods
type fieldDeclFields FieldDecl

// UnmarshalYAML decodes every key but `default`, whose node is kept as is
func (f *FieldDecl) UnmarshalYAML(value *yaml.Node) error {
	var p fieldDeclFields
	if err := value.Decode(&p); err != nil {
		return err
	}
	*f = FieldDecl(p)

	if value.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(value.Content); i += 2 {
			if value.Content[i].Value == "default" {
				f.Default = value.Content[i+1]
			}
		}
	}
	return nil
}

// MarshalYAML writes the default node back under `default`
func (f FieldDecl) MarshalYAML() (any, error) {
	return struct {
		fieldDeclFields `yaml:",inline"`
		Default         *yaml.Node `yaml:"default,omitempty"`
	}{fieldDeclFields(f), f.Default}, nil
}

// Parse decodes a manifest document
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads and decodes a manifest file
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Source = path
	return m, nil
}

// Merge concatenates manifests into one document, keeping type and
// class order. Applying the result is equivalent to applying each input
// in turn.
func Merge(ms ...*Manifest) *Manifest {
	merged := &Manifest{Types: []TypeDecl{}, Classes: []ClassDecl{}}
	for _, m := range ms {
		merged.Types = append(merged.Types, m.Types...)
		merged.Classes = append(merged.Classes, m.Classes...)
	}
	return merged
}

// Marshal encodes a manifest back to YAML
func Marshal(m *Manifest) ([]byte, error) {
	return yaml.Marshal(m)
}

func (m *Manifest) validate() error {
	for i, t := range m.Types {
		if t.Key == "" {
			return fmt.Errorf("types[%d]: key is required", i)
		}
	}
	for i, c := range m.Classes {
		if c.Name == "" {
			return fmt.Errorf("classes[%d]: name is required", i)
		}
		for j, f := range c.Fields {
			if f.KwOnlyMarker {
				if f.Name != "" || f.Default != nil || f.DefaultFactory != "" || f.KwOnly != nil || f.Init != nil {
					return fmt.Errorf("class %s: fields[%d]: kw_only_marker takes no other keys", c.Name, j)
				}
				continue
			}
			if f.Name == "" {
				return fmt.Errorf("class %s: fields[%d]: name is required", c.Name, j)
			}
		}
	}
	return nil
}
