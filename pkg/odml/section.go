package odml

import (
	"strings"

	"github.com/g-node/odml-go/pkg/logging"
)

// Section is a minimal flat container of properties. It satisfies the
// Container contract for tooling and tests; the full odML section tree
// with parent/child navigation lives outside this module.
type Section struct {
	name       string
	properties []*Property
}

// NewSection creates a flat section with the given name.
func NewSection(name string) *Section {
	return &Section{name: name}
}

// Name returns the section name.
func (s *Section) Name() string { return s.name }

// SetName renames the section.
func (s *Section) SetName(name string) { s.name = name }

// Path returns the absolute path of the section.
func (s *Section) Path() string { return "/" + s.name }

// Add appends a property to the section, taking ownership. A property
// with the same name is refused.
func (s *Section) Add(p *Property) bool {
	if p == nil {
		logging.Error().Str("section", s.name).Msg("property to add must not be nil")
		return false
	}
	if s.ContainsProperty(p.Name()) {
		logging.Error().Str("section", s.name).Str("property", p.Name()).
			Msg("property already exists in section")
		return false
	}
	p.SetContainer(s)
	s.properties = append(s.properties, p)
	return true
}

// ContainsProperty reports whether a property of that name exists.
// Names are compared case-insensitively.
func (s *Section) ContainsProperty(name string) bool {
	return s.Property(name) != nil
}

// Property returns the property of that name, or nil.
func (s *Section) Property(name string) *Property {
	for _, p := range s.properties {
		if strings.EqualFold(p.Name(), name) {
			return p
		}
	}
	return nil
}

// Properties returns all properties in insertion order.
func (s *Section) Properties() []*Property {
	return s.properties
}
