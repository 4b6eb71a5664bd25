package odml

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/g-node/odml-go/pkg/errors"
	"github.com/g-node/odml-go/pkg/logging"
)

// Value is a single typed datum with unit, uncertainty and provenance
// metadata. A Value is owned by exactly one Property; the back-reference
// to the owner is a non-owning association.
type Value struct {
	content     any
	unit        string
	uncertainty any
	typ         Type
	filename    string
	definition  string
	reference   string
	checksum    string
	encoder     string

	property *Property // owning property, nil until attached
}

// ValueOption configures a Value at construction time.
type ValueOption func(*Value)

// WithUnit sets the unit of the value.
func WithUnit(unit string) ValueOption {
	return func(v *Value) { v.unit = unit }
}

// WithUncertainty sets the error estimate of the value.
func WithUncertainty(uncertainty any) ValueOption {
	return func(v *Value) { v.uncertainty = uncertainty }
}

// WithType fixes the data type of the value.
func WithType(t Type) ValueOption {
	return func(v *Value) { v.typ = t }
}

// WithFilename sets the default filename, meaningful for binary content only.
func WithFilename(filename string) ValueOption {
	return func(v *Value) { v.filename = filename }
}

// WithDefinition sets the descriptive definition of the value.
func WithDefinition(definition string) ValueOption {
	return func(v *Value) { v.definition = definition }
}

// WithReference sets the reference id of the value.
func WithReference(reference string) ValueOption {
	return func(v *Value) { v.reference = reference }
}

// NewValue creates a Value from content. Nil content is a fatal
// construction error. When no type is given the type is inferred
// from the content.
func NewValue(content any, opts ...ValueOption) (*Value, error) {
	if content == nil {
		return nil, errors.NewConstructionError("value", "content must not be nil", errors.ErrNilContent)
	}
	v := &Value{content: content}
	for _, opt := range opts {
		opt(v)
	}
	if v.typ == "" {
		v.typ = InferType(content)
	}
	return v, nil
}

// Content returns the typed payload of the value.
func (v *Value) Content() any {
	return v.content
}

// SetContent replaces the payload. Nil content is refused.
func (v *Value) SetContent(content any) bool {
	if content == nil {
		logging.Error().Msg("value content must not be nil")
		return false
	}
	v.content = content
	return true
}

// Unit returns the unit of the value.
func (v *Value) Unit() string { return v.unit }

// SetUnit sets the unit of the value.
func (v *Value) SetUnit(unit string) { v.unit = unit }

// Uncertainty returns the error estimate of the value.
func (v *Value) Uncertainty() any { return v.uncertainty }

// SetUncertainty sets the error estimate of the value.
func (v *Value) SetUncertainty(uncertainty any) { v.uncertainty = uncertainty }

// Type returns the data type of the value.
func (v *Value) Type() Type { return v.typ }

// SetType sets the data type of the value.
func (v *Value) SetType(t Type) { v.typ = t }

// Filename returns the default filename stored for binary content.
func (v *Value) Filename() string { return v.filename }

// SetFilename sets the default filename for binary content.
func (v *Value) SetFilename(filename string) { v.filename = filename }

// Definition returns the definition of the value.
func (v *Value) Definition() string { return v.definition }

// SetDefinition sets the definition of the value.
func (v *Value) SetDefinition(definition string) { v.definition = definition }

// Reference returns the reference id of the value.
func (v *Value) Reference() string { return v.reference }

// SetReference sets the reference id of the value.
func (v *Value) SetReference(reference string) { v.reference = reference }

// Checksum returns the checksum recorded for binary content. Read-only.
func (v *Value) Checksum() string { return v.checksum }

// Encoder returns the encoder recorded for binary content. Read-only.
func (v *Value) Encoder() string { return v.encoder }

// Property returns the owning property, or nil if the value is detached.
func (v *Value) Property() *Property { return v.property }

// IsEmpty reports whether the value carries no content.
func (v *Value) IsEmpty() bool {
	if v.content == nil {
		return true
	}
	if s, ok := v.content.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// ContentEquals reports whether the value holds the given content.
// Equality considers content only, side fields are ignored.
func (v *Value) ContentEquals(content any) bool {
	return contentEqual(v.content, content)
}

// Text returns the content rendered as text.
func (v *Value) Text() string {
	if v.content == nil {
		return ""
	}
	return fmt.Sprint(v.content)
}

// Float returns the content interpreted as a float. Conversion failure
// is reported and NaN is returned.
func (v *Value) Float() float64 {
	switch c := v.content.(type) {
	case float64:
		return c
	case float32:
		return float64(c)
	case int:
		return float64(c)
	case int64:
		return float64(c)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.Text()), 64)
	if err != nil {
		logging.Err(errors.NewConversionError("float", v.content, err)).
			Msg("value can not be converted to float")
		return math.NaN()
	}
	return f
}

// Int returns the content interpreted as an integer. Conversion failure
// is reported and false is returned as the second result.
func (v *Value) Int() (int64, bool) {
	switch c := v.content.(type) {
	case int:
		return int64(c), true
	case int64:
		return c, true
	case int32:
		return int64(c), true
	}
	i, err := strconv.ParseInt(strings.TrimSpace(v.Text()), 10, 64)
	if err != nil {
		logging.Err(errors.NewConversionError("int", v.content, err)).
			Msg("value can not be converted to int")
		return 0, false
	}
	return i, true
}

// Date returns the date component of the content (yyyy-MM-dd). The zero
// time and false are returned when the content has no date interpretation.
func (v *Value) Date() (time.Time, bool) {
	if t, ok := v.content.(time.Time); ok {
		year, month, day := t.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, t.Location()), true
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(v.Text()))
	if err != nil {
		logging.Err(errors.NewConversionError("date", v.content, err)).
			Msg("value could not be converted to a date entry")
		return time.Time{}, false
	}
	return t, true
}

// Time returns the time-of-day component of the content (HH:mm:ss). The
// zero time and false are returned when the content has no time interpretation.
func (v *Value) Time() (time.Time, bool) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(v.Text()))
	if err != nil {
		logging.Err(errors.NewConversionError("time", v.content, err)).
			Msg("value could not be converted to a time entry")
		return time.Time{}, false
	}
	return t, true
}

// Validate checks this value against the reference property drawn from a
// terminology. Discrepancies are returned as warnings; the value is
// never modified.
func (v *Value) Validate(reference *Property) []Warning {
	if reference == nil {
		return nil
	}
	var warnings []Warning
	if v.typ != "" && reference.Type() != "" && !v.typ.Equal(reference.Type()) {
		warnings = append(warnings, Warning{
			Field: "type",
			Message: fmt.Sprintf("value type %q differs from terminology type %q",
				v.typ, reference.Type()),
		})
	}
	refUnit := reference.UnitAt(0)
	if v.unit != "" && refUnit != "" && !strings.EqualFold(v.unit, refUnit) {
		warnings = append(warnings, Warning{
			Field: "unit",
			Message: fmt.Sprintf("value unit %q differs from terminology unit %q",
				v.unit, refUnit),
		})
	}
	return warnings
}

// Copy returns a detached deep copy of the value.
func (v *Value) Copy() *Value {
	clone := *v
	clone.property = nil
	if b, ok := v.content.([]byte); ok {
		clone.content = append([]byte(nil), b...)
	}
	return &clone
}

// contentEqual implements content-only equality between payloads.
func contentEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return sa == sb
		}
	}
	return reflect.DeepEqual(a, b)
}
