package odml

import (
	"fmt"
	"strings"

	"github.com/agentstation/utc"

	"github.com/g-node/odml-go/pkg/logging"
)

// Container is the contract a property requires from its parent. The
// section tree implementing it is an external collaborator; ownership
// flows strictly container -> property -> value.
type Container interface {
	// Path returns the absolute path of the container.
	Path() string
	// ContainsProperty reports whether a property of that name exists.
	ContainsProperty(name string) bool
	// Property returns the property of that name, or nil.
	Property(name string) *Property
	// SetName renames the container. Invoked on value-driven self-rename.
	SetName(name string)
}

// Warning describes a single validation discrepancy.
type Warning struct {
	Property string
	Path     string
	Field    string // "definition", "dependency", "dependencyValue", "type", "unit"
	Message  string
}

// Report collects the discrepancies found when validating a property
// against its terminology definition.
type Report struct {
	Property  string
	CheckedAt utc.Time
	Warnings  []Warning
}

// OK reports whether validation found no discrepancies.
func (r *Report) OK() bool {
	return len(r.Warnings) == 0
}

// Validate checks this property against the definition drawn from a
// terminology. All discrepancies surface as warnings in the returned
// report; the property is never modified and validation never aborts
// early.
func (p *Property) Validate(reference *Property) *Report {
	report := &Report{Property: p.name, CheckedAt: utc.Now()}
	if reference == nil {
		return report
	}

	path := ""
	if p.container != nil {
		path = p.container.Path()
	}

	if p.definition != "" && !strings.EqualFold(p.definition, reference.Definition()) {
		report.add(p, path, "definition",
			"definition differs from terminology, original definition kept")
	}

	if dep := reference.Dependency(); dep != "" {
		if p.container == nil || !p.container.ContainsProperty(dep) {
			report.add(p, path, "dependency",
				fmt.Sprintf("terminology requests a sibling property named %q which was not found", dep))
		} else if want := reference.DependencyValue(); want != "" {
			sibling := p.container.Property(dep)
			matched := false
			for _, content := range sibling.Values() {
				if strings.EqualFold(fmt.Sprint(content), want) {
					matched = true
					break
				}
			}
			if !matched {
				report.add(p, path, "dependencyValue",
					fmt.Sprintf("terminology requests sibling property %q to contain the value %q, no match was found", dep, want))
			}
		}
	}

	for _, v := range p.values {
		for _, w := range v.Validate(reference) {
			w.Property = p.name
			w.Path = path
			report.Warnings = append(report.Warnings, w)
			logging.Warn().Str("property", p.name).Str("path", path).
				Str("field", w.Field).Msg(w.Message)
		}
	}
	return report
}

func (r *Report) add(p *Property, path, field, message string) {
	r.Warnings = append(r.Warnings, Warning{
		Property: p.name,
		Path:     path,
		Field:    field,
		Message:  message,
	})
	logging.Warn().Str("property", p.name).Str("path", path).
		Str("field", field).Msg(message)
}
