package odml

import (
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/g-node/odml-go/pkg/errors"
	"github.com/g-node/odml-go/pkg/logging"
)

// Property is the building block that actually stores metadata: an ordered
// collection of same-typed values under one name, plus the descriptive and
// dependency information attached to that name.
//
// A Property exclusively owns its value sequence. Callers must not retain
// value handles across a removal or merge call on the owning property, since
// indices may shift and identities may be replaced.
type Property struct {
	name            string
	definition      string
	dependency      string
	dependencyValue string
	mapping         *url.URL
	values          []*Value

	container Container // parent container, non-owning
}

// NewProperty creates a property with the given name and no values.
// An empty or path-like name (containing '/') is a fatal construction error.
func NewProperty(name string) (*Property, error) {
	if name == "" {
		return nil, errors.NewNameError(name, "name is mandatory and must not be empty")
	}
	if strings.Contains(name, "/") {
		return nil, errors.NewNameError(name, "name must not be like a path")
	}
	return &Property{name: name}, nil
}

// NewPropertyWithValue creates a property holding a single value.
func NewPropertyWithValue(name string, content any, opts ...ValueOption) (*Property, error) {
	p, err := NewProperty(name)
	if err != nil {
		return nil, err
	}
	v, err := NewValue(content, opts...)
	if err != nil {
		return nil, err
	}
	v.property = p
	p.values = append(p.values, v)
	return p, nil
}

// Name returns the property name.
func (p *Property) Name() string { return p.name }

// SetName sets the property name. Invariants are not re-checked here;
// use CheckNameStyle for normalization.
func (p *Property) SetName(name string) { p.name = name }

// Definition returns the definition of this property, or an empty string.
func (p *Property) Definition() string { return p.definition }

// SetDefinition sets the definition that tells what this property means.
func (p *Property) SetDefinition(definition string) { p.definition = definition }

// Dependency returns the name of the sibling property this one depends on.
func (p *Property) Dependency() string { return p.dependency }

// SetDependency sets the name of the sibling property this one depends on.
func (p *Property) SetDependency(dependency string) { p.dependency = dependency }

// DependencyValue returns the value the dependency sibling must hold to
// make this property meaningful.
func (p *Property) DependencyValue() string { return p.dependencyValue }

// SetDependencyValue sets the value the dependency sibling must hold.
func (p *Property) SetDependencyValue(dependencyValue string) {
	p.dependencyValue = dependencyValue
}

// Mapping returns the terminology locator of this property, or nil.
func (p *Property) Mapping() *url.URL { return p.mapping }

// SetMapping sets the terminology locator of this property.
func (p *Property) SetMapping(mapping *url.URL) { p.mapping = mapping }

// SetMappingString parses and sets the terminology locator. A parse
// failure is reported and leaves the mapping unchanged.
func (p *Property) SetMappingString(mapping string) bool {
	u, err := url.Parse(mapping)
	if err != nil {
		logging.Err(err).Str("property", p.name).Str("mapping", mapping).
			Msg("invalid mapping URL")
		return false
	}
	p.mapping = u
	return true
}

// RemoveMapping removes the terminology locator from this property.
func (p *Property) RemoveMapping() { p.mapping = nil }

// Container returns the parent container of this property, or nil.
func (p *Property) Container() Container { return p.container }

// SetContainer sets the parent container of this property. May be nil.
func (p *Property) SetContainer(c Container) { p.container = c }

// Len returns the number of stored values.
func (p *Property) Len() int { return len(p.values) }

// AddValue adds a new value to this property. The call is refused when
// content is nil or when a value with equal content already exists. When
// no unit is given the unit of the first existing value is adopted. A
// declared type that differs from the property's established type is
// warned about but not blocked; if no type was established yet, the new
// type is adopted for all values.
func (p *Property) AddValue(content any, opts ...ValueOption) bool {
	if content == nil {
		logging.Err(errors.ErrNilContent).Str("property", p.name).
			Msg("the value to add must not be nil")
		return false
	}
	v := &Value{content: content}
	for _, opt := range opts {
		opt(v)
	}
	declared := v.typ
	if v.typ == "" {
		v.typ = InferType(content)
	}
	if v.unit == "" && len(p.values) > 0 {
		v.unit = p.values[0].unit
	}
	if p.IndexOf(content) >= 0 {
		logging.Err(errors.ErrDuplicateValue).Str("property", p.name).
			Msg("value to add already exists in property")
		return false
	}
	v.property = p
	p.values = append(p.values, v)

	if declared != "" && len(p.values) > 1 {
		established := p.values[0].typ
		if established != "" && !declared.Equal(established) {
			logging.Warn().Str("property", p.name).
				Str("type", declared.String()).
				Str("established", established.String()).
				Int("index", len(p.values)-1).
				Msg("type of newly added value differs from the established type of the property")
		} else if established == "" {
			p.SetType(declared)
		}
	}
	return true
}

// AppendFrom appends all values of another property to this one,
// transferring ownership.
func (p *Property) AppendFrom(other *Property) {
	for _, v := range other.values {
		v.property = p
		p.values = append(p.values, v)
	}
}

// SetValue replaces the content of a single-valued property. The call is
// refused when more than one value is stored.
func (p *Property) SetValue(content any) bool {
	if len(p.values) > 1 {
		logging.Error().Str("property", p.name).
			Msg("property has more than one value, an index must be specified")
		return false
	}
	return p.SetValueAt(content, 0)
}

// SetValueAt replaces the value at the given index with a fresh value
// holding the new content. Out-of-range indices fail without change.
// When this property is named "name" and the content is textual, the
// owning container is renamed to that content.
func (p *Property) SetValueAt(content any, index int) bool {
	if index < 0 || index >= len(p.values) {
		logging.Err(errors.ErrIndexOutOfRange).Str("property", p.name).Int("index", index).
			Msg("specified index out of range")
		return false
	}
	v, err := NewValue(content)
	if err != nil {
		logging.Err(err).Str("property", p.name).Msg("error trying to initialize value")
		return false
	}
	v.property = p
	p.values[index] = v

	if strings.EqualFold(p.name, "name") {
		if text, ok := content.(string); ok && p.container != nil {
			p.container.SetName(text)
		}
	}
	return true
}

// Value returns the content at the given index, or nil when the index is
// out of bounds.
func (p *Property) Value(index int) any {
	if index < 0 || index >= len(p.values) {
		logging.Err(errors.ErrIndexOutOfRange).Str("property", p.name).Int("index", index).
			Msg("value index out of range")
		return nil
	}
	return p.values[index].content
}

// FirstValue returns the content of the first value, or nil.
func (p *Property) FirstValue() any {
	return p.Value(0)
}

// ValueAt returns the whole value record at the given index, or nil when
// the index is out of bounds.
func (p *Property) ValueAt(index int) *Value {
	if index < 0 || index >= len(p.values) {
		logging.Err(errors.ErrIndexOutOfRange).Str("property", p.name).Int("index", index).
			Msg("value index out of range")
		return nil
	}
	return p.values[index]
}

// Values returns the contents of all values in order.
func (p *Property) Values() []any {
	contents := make([]any, 0, len(p.values))
	for _, v := range p.values {
		contents = append(contents, v.content)
	}
	return contents
}

// IndexOf returns the index of the first value with equal content, or -1.
func (p *Property) IndexOf(content any) int {
	return p.IndexOfFrom(content, 0)
}

// IndexOfFrom returns the index of the first value with equal content,
// searching forward from start, or -1.
func (p *Property) IndexOfFrom(content any, start int) int {
	if start < 0 {
		start = 0
	}
	for i := start; i < len(p.values); i++ {
		if p.values[i].ContentEquals(content) {
			return i
		}
	}
	return -1
}

// RemoveValue removes the first value with equal content. Missing values
// fail without change.
func (p *Property) RemoveValue(content any) bool {
	if content == nil {
		logging.Err(errors.ErrNilContent).Str("property", p.name).
			Msg("value for removal must not be nil")
		return false
	}
	index := p.IndexOf(content)
	if index < 0 {
		logging.Err(errors.ErrValueNotFound).Str("property", p.name).
			Msg("value for removal does not exist")
		return false
	}
	p.values = append(p.values[:index], p.values[index+1:]...)
	return true
}

// RemoveValueAt removes the value at the given index. Out-of-range
// indices fail without change.
func (p *Property) RemoveValueAt(index int) bool {
	if index < 0 || index >= len(p.values) {
		logging.Err(errors.ErrIndexOutOfRange).Str("property", p.name).Int("index", index).
			Msg("specified index for removing value out of range")
		return false
	}
	p.values = append(p.values[:index], p.values[index+1:]...)
	return true
}

// RemoveEmptyValues drops all values without content. Compaction runs
// from the end so indices stay valid during iteration.
func (p *Property) RemoveEmptyValues() {
	for i := len(p.values) - 1; i >= 0; i-- {
		if p.values[i].IsEmpty() {
			p.RemoveValueAt(i)
		}
	}
}

// IsEmpty reports whether this property stores no values, or only values
// without content.
func (p *Property) IsEmpty() bool {
	for _, v := range p.values {
		if !v.IsEmpty() {
			return false
		}
	}
	return true
}

// Type returns the data type of this property, taken from the first
// value. All values share one type.
func (p *Property) Type() Type {
	if len(p.values) == 0 {
		return ""
	}
	return p.values[0].typ
}

// SetType sets the data type on all values. Overwrites old content.
func (p *Property) SetType(t Type) {
	for _, v := range p.values {
		v.typ = t
	}
}

// Unit returns the unit of a single-valued property. More than one value
// requires UnitAt to disambiguate.
func (p *Property) Unit() string {
	if len(p.values) > 1 {
		logging.Error().Str("property", p.name).
			Msg("property has more than one value, an index must be specified for the unit")
		return ""
	}
	return p.UnitAt(0)
}

// UnitAt returns the unit of the value at the given index, or an empty
// string when the index is out of bounds.
func (p *Property) UnitAt(index int) string {
	if index < 0 || index >= len(p.values) {
		return ""
	}
	return p.values[index].unit
}

// SetUnit sets the unit on all values. Overwrites old content.
func (p *Property) SetUnit(unit string) {
	if len(p.values) > 1 {
		logging.Warn().Str("property", p.name).
			Msg("setting the unit changes the unit of all stored values")
	}
	for _, v := range p.values {
		v.unit = unit
	}
}

// SetUnitAt sets the unit of the value at the given index.
func (p *Property) SetUnitAt(unit string, index int) bool {
	if index < 0 || index >= len(p.values) {
		logging.Err(errors.ErrIndexOutOfRange).Str("property", p.name).Int("index", index).
			Msg("index for setting unit out of range")
		return false
	}
	p.values[index].unit = unit
	return true
}

// Reference returns the reference id of a single-valued property.
func (p *Property) Reference() string {
	if len(p.values) > 1 {
		logging.Error().Str("property", p.name).
			Msg("property has more than one value, an index must be specified for the reference")
		return ""
	}
	return p.ReferenceAt(0)
}

// ReferenceAt returns the reference id of the value at the given index,
// or an empty string when the index is out of bounds.
func (p *Property) ReferenceAt(index int) string {
	if index < 0 || index >= len(p.values) {
		return ""
	}
	return p.values[index].reference
}

// ValueReferences returns the reference ids of all values in order.
func (p *Property) ValueReferences() []string {
	refs := make([]string, 0, len(p.values))
	for _, v := range p.values {
		refs = append(refs, v.reference)
	}
	return refs
}

// SetReference sets the reference id of a single-valued property.
func (p *Property) SetReference(reference string) bool {
	if len(p.values) > 1 {
		logging.Error().Str("property", p.name).
			Msg("property has more than one value, an index must be specified for the reference")
		return false
	}
	return p.SetReferenceAt(reference, 0)
}

// SetReferenceAt sets the reference id of the value at the given index.
func (p *Property) SetReferenceAt(reference string, index int) bool {
	if index < 0 || index >= len(p.values) {
		logging.Err(errors.ErrIndexOutOfRange).Str("property", p.name).Int("index", index).
			Msg("index for setting reference out of range")
		return false
	}
	p.values[index].reference = reference
	return true
}

// UncertaintyAt returns the error estimate of the value at the given
// index, or nil when none is stored or the index is out of bounds.
func (p *Property) UncertaintyAt(index int) any {
	if index < 0 || index >= len(p.values) {
		return nil
	}
	u := p.values[index].uncertainty
	if s, ok := u.(string); ok && s == "" {
		return nil
	}
	return u
}

// ValueUncertainties returns the error estimates of all values in order.
func (p *Property) ValueUncertainties() []any {
	uncertainties := make([]any, 0, len(p.values))
	for _, v := range p.values {
		uncertainties = append(uncertainties, v.uncertainty)
	}
	return uncertainties
}

// SetUncertainty sets the error estimate of a single-valued property.
func (p *Property) SetUncertainty(uncertainty any) bool {
	if len(p.values) > 1 {
		logging.Error().Str("property", p.name).
			Msg("property has more than one value, an index must be specified for the uncertainty")
		return false
	}
	return p.SetUncertaintyAt(uncertainty, 0)
}

// SetUncertaintyAt sets the error estimate of the value at the given index.
func (p *Property) SetUncertaintyAt(uncertainty any, index int) bool {
	if index < 0 || index >= len(p.values) {
		logging.Err(errors.ErrIndexOutOfRange).Str("property", p.name).Int("index", index).
			Msg("index for setting uncertainty out of range")
		return false
	}
	p.values[index].uncertainty = uncertainty
	return true
}

// ValueDefinitionAt returns the definition of the value at the given
// index, or an empty string.
func (p *Property) ValueDefinitionAt(index int) string {
	if index < 0 || index >= len(p.values) {
		return ""
	}
	return p.values[index].definition
}

// ValueDefinitions returns the definitions of all values in order.
func (p *Property) ValueDefinitions() []string {
	definitions := make([]string, 0, len(p.values))
	for _, v := range p.values {
		definitions = append(definitions, v.definition)
	}
	return definitions
}

// SetValueDefinition sets the definition of a single-valued property's value.
func (p *Property) SetValueDefinition(definition string) bool {
	if len(p.values) > 1 {
		logging.Error().Str("property", p.name).
			Msg("property has more than one value, an index must be specified for the definition")
		return false
	}
	return p.SetValueDefinitionAt(definition, 0)
}

// SetValueDefinitionAt sets the definition of the value at the given index.
func (p *Property) SetValueDefinitionAt(definition string, index int) bool {
	if index < 0 || index >= len(p.values) {
		logging.Err(errors.ErrIndexOutOfRange).Str("property", p.name).Int("index", index).
			Msg("index for setting value definition out of range")
		return false
	}
	p.values[index].definition = definition
	return true
}

// FilenameAt returns the filename of the value at the given index, or an
// empty string.
func (p *Property) FilenameAt(index int) string {
	if index < 0 || index >= len(p.values) {
		return ""
	}
	return p.values[index].filename
}

// SetFilename sets the filename associated with the first value.
func (p *Property) SetFilename(filename string) bool {
	return p.SetFilenameAt(filename, 0)
}

// SetFilenameAt sets the filename of the value at the given index. The
// property type must be binary for a filename to be meaningful.
func (p *Property) SetFilenameAt(filename string, index int) bool {
	if index < 0 || index >= len(p.values) {
		logging.Err(errors.ErrIndexOutOfRange).Str("property", p.name).Int("index", index).
			Msg("index of value for setting filename out of range")
		return false
	}
	if !p.Type().Equal(TypeBinary) {
		logging.Error().Str("property", p.name).
			Msg("type of property must be binary if a filename shall be set")
		return false
	}
	p.values[index].filename = filename
	return true
}

// ChecksumAt returns the checksum of the value at the given index, or an
// empty string. Checksums are read-only.
func (p *Property) ChecksumAt(index int) string {
	if index < 0 || index >= len(p.values) {
		return ""
	}
	return p.values[index].checksum
}

// EncoderAt returns the encoder of the value at the given index, or an
// empty string. Encoders are read-only.
func (p *Property) EncoderAt(index int) string {
	if index < 0 || index >= len(p.values) {
		return ""
	}
	return p.values[index].encoder
}

// TextAt returns the content at the given index rendered as text.
func (p *Property) TextAt(index int) string {
	v := p.ValueAt(index)
	if v == nil {
		return ""
	}
	return v.Text()
}

// NumberAt returns the content at the given index as a float. NaN is
// returned when the index is out of bounds or conversion fails.
func (p *Property) NumberAt(index int) float64 {
	v := p.ValueAt(index)
	if v == nil {
		return math.NaN()
	}
	return v.Float()
}

// DateAt returns the date component of the content at the given index.
func (p *Property) DateAt(index int) (time.Time, bool) {
	v := p.ValueAt(index)
	if v == nil {
		return time.Time{}, false
	}
	return v.Date()
}

// TimeAt returns the time component of the content at the given index.
func (p *Property) TimeAt(index int) (time.Time, bool) {
	v := p.ValueAt(index)
	if v == nil {
		return time.Time{}, false
	}
	return v.Time()
}

// Copy returns a deep copy of this property. The copy is detached from
// any container.
func (p *Property) Copy() *Property {
	clone := &Property{
		name:            p.name,
		definition:      p.definition,
		dependency:      p.dependency,
		dependencyValue: p.dependencyValue,
	}
	if p.mapping != nil {
		u := *p.mapping
		clone.mapping = &u
	}
	clone.values = make([]*Value, 0, len(p.values))
	for _, v := range p.values {
		c := v.Copy()
		c.property = clone
		clone.values = append(clone.values, c)
	}
	return clone
}

// String returns the property name.
func (p *Property) String() string {
	return p.name
}
