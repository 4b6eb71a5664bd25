package odml

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/g-node/odml-go/pkg/errors"
)

// MergePolicy defines how conflicts are resolved when two same-named
// properties are merged.
type MergePolicy int

const (
	// ThisOverridesOther keeps local information and only fills gaps
	// from the other property.
	ThisOverridesOther MergePolicy = iota
	// OtherOverridesThis lets the other property's information replace
	// local information on conflict.
	OtherOverridesThis
	// Combine keeps local information and fuses value side fields,
	// appending values the property does not hold yet.
	Combine
)

// String returns the string representation of a MergePolicy.
func (p MergePolicy) String() string {
	switch p {
	case ThisOverridesOther:
		return "this-overrides-other"
	case OtherOverridesThis:
		return "other-overrides-this"
	case Combine:
		return "combine"
	default:
		return "unknown"
	}
}

// ParseMergePolicy parses a merge policy name.
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "this-overrides-other", "this":
		return ThisOverridesOther, nil
	case "other-overrides-this", "other":
		return OtherOverridesThis, nil
	case "combine":
		return Combine, nil
	}
	return 0, fmt.Errorf("unknown merge policy %q", s)
}

// Merge combines another property into this one under the given policy.
//
// The call is gated by preconditions checked before anything is touched:
// names must match case-insensitively, and type, mapping target,
// definition and first-value unit must match case-insensitively whenever
// both sides declare them. A failed gate aborts the whole call with a
// merge error and neither side is modified.
//
// Information present on only one side is adopted irrespective of the
// policy. The policy decides conflicts on the dependency fields and on
// the side fields of matching values.
func (p *Property) Merge(other *Property, policy MergePolicy) error {
	if other == nil {
		return errors.NewOperationError("merge", p.name, "other property is nil", nil)
	}
	if !strings.EqualFold(p.name, other.name) {
		return errors.NewMergeError(p.name, "name", p.name, other.name)
	}
	if p.Type() != "" && other.Type() != "" && !p.Type().Equal(other.Type()) {
		return errors.NewMergeError(p.name, "type", p.Type().String(), other.Type().String())
	}
	if p.mapping != nil && other.mapping != nil && !mappingTargetEqual(p.mapping, other.mapping) {
		return errors.NewMergeError(p.name, "mapping", p.mapping.String(), other.mapping.String())
	}
	if p.definition != "" && other.definition != "" && !strings.EqualFold(p.definition, other.definition) {
		return errors.NewMergeError(p.name, "definition", p.definition, other.definition)
	}
	if p.UnitAt(0) != "" && other.UnitAt(0) != "" && !strings.EqualFold(p.UnitAt(0), other.UnitAt(0)) {
		return errors.NewMergeError(p.name, "unit", p.UnitAt(0), other.UnitAt(0))
	}

	// Scalar fields: fill in whatever is missing locally.
	if p.definition == "" {
		p.definition = other.definition
	}
	if p.Type() == "" && other.Type() != "" {
		p.SetType(other.Type())
	}
	if p.UnitAt(0) == "" && other.UnitAt(0) != "" {
		p.SetUnit(other.UnitAt(0))
	}
	if p.mapping == nil && other.mapping != nil {
		u := *other.mapping
		p.mapping = &u
	}
	if p.dependency == "" {
		p.dependency = other.dependency
	} else if policy == OtherOverridesThis && other.dependency != "" {
		p.dependency = other.dependency
	}
	if p.dependencyValue == "" {
		p.dependencyValue = other.dependencyValue
	} else if policy == OtherOverridesThis && other.dependencyValue != "" {
		p.dependencyValue = other.dependencyValue
	}

	for _, ov := range other.values {
		index := p.IndexOf(ov.content)
		if index >= 0 {
			p.mergeValueAt(index, ov, policy)
			continue
		}
		switch policy {
		case Combine:
			p.AddValue(ov.content,
				WithReference(ov.reference),
				WithUncertainty(ov.uncertainty),
				WithFilename(ov.filename),
				WithDefinition(ov.definition))
		case OtherOverridesThis:
			// Only a single-valued property gets its value replaced
			// wholesale; the side fields are reconciled afterwards.
			if len(p.values) == 1 {
				p.SetValueAt(ov.content, 0)
				p.mergeValueAt(0, ov, policy)
			}
		case ThisOverridesOther:
			// Local values win, nothing new is introduced.
		}
	}
	return nil
}

// mergeValueAt reconciles the side fields of the value at index with the
// matching value of the other property. Information that exists on one
// side only is accepted irrespective of the policy; conflicts follow it.
func (p *Property) mergeValueAt(index int, other *Value, policy MergePolicy) {
	v := p.values[index]
	switch policy {
	case ThisOverridesOther:
		if v.definition == "" {
			v.definition = other.definition
		}
		if emptyUncertainty(v.uncertainty) {
			v.uncertainty = other.uncertainty
		}
		if v.filename == "" {
			v.filename = other.filename
		}
		if v.reference == "" {
			v.reference = other.reference
		}
	case OtherOverridesThis:
		if v.definition == "" || other.definition != "" {
			v.definition = other.definition
		}
		if emptyUncertainty(v.uncertainty) || !emptyUncertainty(other.uncertainty) {
			v.uncertainty = other.uncertainty
		}
		if v.filename == "" || other.filename != "" {
			v.filename = other.filename
		}
		if v.reference == "" || other.reference != "" {
			v.reference = other.reference
		}
	case Combine:
		if v.definition == "" {
			v.definition = other.definition
		} else if other.definition != "" {
			v.definition = v.definition + "\n" + other.definition
		}
		if emptyUncertainty(v.uncertainty) {
			v.uncertainty = other.uncertainty
		}
		if v.filename == "" {
			v.filename = other.filename
		}
		if v.reference == "" {
			v.reference = other.reference
		}
	}
}

// emptyUncertainty reports whether an error estimate is absent.
func emptyUncertainty(u any) bool {
	if u == nil {
		return true
	}
	if s, ok := u.(string); ok {
		return s == ""
	}
	return false
}

// mappingTargetEqual compares two terminology locators ignoring the
// fragment, so both may point at different anchors of one entry file.
func mappingTargetEqual(a, b *url.URL) bool {
	ca, cb := *a, *b
	ca.Fragment = ""
	cb.Fragment = ""
	return ca.String() == cb.String()
}
