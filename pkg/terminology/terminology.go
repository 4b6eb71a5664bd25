// Package terminology loads controlled vocabularies that supply the
// normative property definitions used during validation. A terminology
// file is a YAML document listing property definitions; the same shape
// doubles as the fixture format of the odml command line tooling. It is
// not the odML document wire format, which lives outside this module.
package terminology

import (
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/g-node/odml-go/pkg/errors"
	"github.com/g-node/odml-go/pkg/odml"
)

// Definition is the normative description of one property as recorded
// in a terminology.
type Definition struct {
	Name            string `yaml:"name" json:"name"`
	Definition      string `yaml:"definition,omitempty" json:"definition,omitempty"`
	Type            string `yaml:"type,omitempty" json:"type,omitempty"`
	Unit            string `yaml:"unit,omitempty" json:"unit,omitempty"`
	Dependency      string `yaml:"dependency,omitempty" json:"dependency,omitempty"`
	DependencyValue string `yaml:"dependency_value,omitempty" json:"dependency_value,omitempty"`
	Mapping         string `yaml:"mapping,omitempty" json:"mapping,omitempty"`
	Values          []any  `yaml:"values,omitempty" json:"values,omitempty"`
}

// Terminology is a named collection of property definitions.
type Terminology struct {
	Name       string       `yaml:"name" json:"name"`
	Definition string       `yaml:"definition,omitempty" json:"definition,omitempty"`
	Properties []Definition `yaml:"properties" json:"properties"`
}

// Load reads a terminology from a YAML stream.
func Load(r io.Reader) (*Terminology, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", "terminology", err)
	}
	return Unmarshal(data)
}

// LoadFile reads a terminology from a YAML file.
func LoadFile(path string) (*Terminology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	t, err := Unmarshal(data)
	if err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return t, nil
}

// Unmarshal parses a terminology from YAML bytes.
func Unmarshal(data []byte) (*Terminology, error) {
	var t Terminology
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, errors.NewParseError("yaml", "", err.Error(), err)
	}
	if t.Name == "" {
		return nil, errors.NewConstructionError("terminology", "name is mandatory", nil)
	}
	return &t, nil
}

// Marshal renders the terminology as YAML.
func (t *Terminology) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, errors.WrapParse("yaml", t.Name, err)
	}
	return data, nil
}

// Contains reports whether the terminology defines a property of that
// name. Names are compared case-insensitively.
func (t *Terminology) Contains(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}

// Lookup returns the raw definition of a property by name.
func (t *Terminology) Lookup(name string) (*Definition, bool) {
	for i := range t.Properties {
		if strings.EqualFold(t.Properties[i].Name, name) {
			return &t.Properties[i], true
		}
	}
	return nil, false
}

// Property builds the reference property for a name, suitable for
// passing to (*odml.Property).Validate or Merge.
func (t *Terminology) Property(name string) (*odml.Property, error) {
	def, ok := t.Lookup(name)
	if !ok {
		return nil, errors.ErrNotFound
	}
	return def.Build()
}

// Build materializes a definition as an odml property.
func (d *Definition) Build() (*odml.Property, error) {
	p, err := odml.NewProperty(d.Name)
	if err != nil {
		return nil, err
	}
	p.SetDefinition(d.Definition)
	p.SetDependency(d.Dependency)
	p.SetDependencyValue(d.DependencyValue)
	if d.Mapping != "" {
		p.SetMappingString(d.Mapping)
	}

	var opts []odml.ValueOption
	if d.Unit != "" {
		opts = append(opts, odml.WithUnit(d.Unit))
	}
	if typ, ok := odml.ParseType(d.Type); ok {
		opts = append(opts, odml.WithType(typ))
	}
	for _, content := range d.Values {
		p.AddValue(content, opts...)
	}
	// A definition may declare type and unit without listing values. Both
	// live on values, so an empty placeholder carries them.
	if len(d.Values) == 0 && len(opts) > 0 {
		p.AddValue("", opts...)
	}
	return p, nil
}

// Section materializes the whole terminology as a flat section, with
// every definition turned into a property.
func (t *Terminology) Section() (*odml.Section, error) {
	section := odml.NewSection(t.Name)
	for i := range t.Properties {
		p, err := t.Properties[i].Build()
		if err != nil {
			return nil, err
		}
		section.Add(p)
	}
	return section, nil
}

// FromSection records the properties of a section as definitions,
// preserving name, metadata and value contents.
func FromSection(section *odml.Section) *Terminology {
	t := &Terminology{Name: section.Name()}
	for _, p := range section.Properties() {
		def := Definition{
			Name:            p.Name(),
			Definition:      p.Definition(),
			Type:            p.Type().String(),
			Unit:            p.UnitAt(0),
			Dependency:      p.Dependency(),
			DependencyValue: p.DependencyValue(),
		}
		if p.Mapping() != nil {
			def.Mapping = p.Mapping().String()
		}
		def.Values = p.Values()
		t.Properties = append(t.Properties, def)
	}
	return t
}
