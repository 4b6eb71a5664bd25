// Package match provides a heuristic scorer for comparing typed scalars,
// with a specialized sub-algorithm for person names. It is used by the
// validation layer and by external callers that need to decide whether
// two free-text entries describe the same thing.
package match

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/g-node/odml-go/pkg/logging"
	"github.com/g-node/odml-go/pkg/odml"
)

// Level is the strength-ordered result of a comparison. Levels are
// comparable with < and >; a higher level is a stronger match.
type Level int

const (
	// Error indicates invalid arguments or a failed conversion.
	Error Level = iota
	// NoMatch indicates no correspondence at all.
	NoMatch
	// FirstConflictLastMatch indicates matching last names with
	// conflicting first names, possibly a misspelling.
	FirstConflictLastMatch
	// InitialsOnly indicates both components matching only by initials.
	InitialsOnly
	// FirstOrLastOnly indicates that one side carries a single name
	// component which matches either component of the other side.
	FirstOrLastOnly
	// FirstInitialLast indicates matching last names with one first
	// name being a prefix of the other, as with "J." vs "John".
	FirstInitialLast
	// FirstLast is the best score: first and last name both match.
	FirstLast
)

// Exact is the level reported for equal scalar content.
const Exact = FirstLast

// String returns the string representation of a Level.
func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case NoMatch:
		return "no-match"
	case FirstConflictLastMatch:
		return "first-conflict-last-match"
	case InitialsOnly:
		return "initials-only"
	case FirstOrLastOnly:
		return "first-or-last-only"
	case FirstInitialLast:
		return "first-initial-last"
	case FirstLast:
		return "first-last"
	default:
		return "unknown"
	}
}

// fold implements the Unicode case folding used for all comparisons.
var fold = cases.Fold()

func foldEqual(a, b string) bool {
	return fold.String(a) == fold.String(b)
}

func foldHasPrefix(s, prefix string) bool {
	return strings.HasPrefix(fold.String(s), fold.String(prefix))
}

// Match compares two scalars of the given type and returns the match
// level. Person-typed content is scored with the name heuristic; the
// other scalar types score direct equality as Exact or NoMatch. Invalid
// arguments or failed conversions yield Error; Match never panics.
func Match(a, b any, typ odml.Type) Level {
	if a == nil || b == nil {
		logging.Error().Msg("match returns error, one of the operands is nil")
		return Error
	}
	if typ == "" {
		logging.Error().Msg("match returns error, type is empty")
		return Error
	}

	switch {
	case typ.Equal(odml.TypePerson):
		return PersonNames(fmt.Sprint(a), fmt.Sprint(b))
	case typ.Equal(odml.TypeText):
		if foldEqual(fmt.Sprint(a), fmt.Sprint(b)) {
			return Exact
		}
		return NoMatch
	case typ.Equal(odml.TypeInt):
		ia, oka := asInt(a)
		ib, okb := asInt(b)
		if !oka || !okb {
			logging.Error().Msg("match returns error, operand is not an int")
			return Error
		}
		if ia == ib {
			return Exact
		}
		return NoMatch
	case typ.Equal(odml.TypeFloat):
		fa, oka := asFloat(a)
		fb, okb := asFloat(b)
		if !oka || !okb {
			logging.Error().Msg("match returns error, operand is not a float")
			return Error
		}
		if fa == fb {
			return Exact
		}
		return NoMatch
	case typ.Equal(odml.TypeBoolean):
		ba, oka := a.(bool)
		bb, okb := b.(bool)
		if !oka || !okb {
			logging.Error().Msg("match returns error, operand is not a boolean")
			return Error
		}
		if ba == bb {
			return Exact
		}
		return NoMatch
	case typ.Equal(odml.TypeDate), typ.Equal(odml.TypeTime), typ.Equal(odml.TypeDatetime):
		layout := layoutFor(typ)
		ta, oka := asTime(a, layout)
		tb, okb := asTime(b, layout)
		if !oka || !okb {
			logging.Error().Str("type", typ.String()).
				Msg("match returns error, operand has no date or time interpretation")
			return Error
		}
		if ta.Equal(tb) {
			return Exact
		}
		return NoMatch
	}
	logging.Error().Str("type", typ.String()).Msg("match returns error, unsupported type")
	return Error
}

// PersonNames scores two strings representing person names. The names
// are broken down into first and last name components; middle initials
// and second names are ignored. Single-word names are assumed to be
// last names. Empty input yields Error; the heuristic never panics.
func PersonNames(name1, name2 string) Level {
	if strings.TrimSpace(name1) == "" || strings.TrimSpace(name2) == "" {
		logging.Error().Msg("name match returns error, one of the names is empty")
		return Error
	}
	name1 = strings.TrimSpace(name1)
	name2 = strings.TrimSpace(name2)

	first1 := firstName(name1)
	first2 := firstName(name2)
	last1 := lastName(name1)
	last2 := lastName(name2)

	if first1 != "" && first2 != "" {
		switch {
		case foldEqual(first1, first2) && foldEqual(last1, last2):
			return FirstLast
		case !foldEqual(first1, first2) &&
			(foldHasPrefix(first1, first2) || foldHasPrefix(first2, first1)) &&
			foldEqual(last1, last2):
			return FirstInitialLast
		case (foldHasPrefix(first1, first2) && foldHasPrefix(last1, last2)) ||
			(foldHasPrefix(first2, first1) && foldHasPrefix(last2, last1)):
			return InitialsOnly
		case !foldEqual(first1, first2) && foldEqual(last1, last2):
			return FirstConflictLastMatch
		default:
			return NoMatch
		}
	}

	// At least one side carries no first name component.
	if first1 == "" && first2 == "" {
		if foldEqual(last1, last2) {
			return FirstOrLastOnly
		}
		return NoMatch
	}
	if first1 == "" && (foldEqual(last1, last2) || foldEqual(last1, first2)) {
		return FirstOrLastOnly
	}
	if first2 == "" && (foldEqual(last2, last1) || foldEqual(last2, first1)) {
		return FirstOrLastOnly
	}
	return NoMatch
}

// lastName extracts the last name component of a full name. Comma form
// puts the last name first; a dotted initial without blanks puts it
// behind the dot; otherwise the last blank-separated word is taken, or
// the whole single-word input.
func lastName(fullName string) string {
	switch {
	case strings.Contains(fullName, ","):
		return fullName[:strings.Index(fullName, ",")]
	case !strings.Contains(fullName, ".") && strings.Contains(fullName, " "):
		return fullName[strings.LastIndex(fullName, " ")+1:]
	case strings.Contains(fullName, ".") && !strings.Contains(fullName, " "):
		return fullName[strings.LastIndex(fullName, ".")+1:]
	case !strings.Contains(fullName, ",") && !strings.Contains(fullName, " "):
		return fullName
	default:
		return fullName[strings.LastIndex(fullName, " ")+1:]
	}
}

// firstName extracts the first name component of a full name, reduced
// to the first given name or its initial without the dot. A single-word
// input has no first name component.
func firstName(fullName string) string {
	switch {
	case strings.Contains(fullName, ","):
		first := strings.TrimSpace(fullName[strings.Index(fullName, ",")+1:])
		if i := strings.Index(first, " "); i >= 0 {
			first = first[:i]
		}
		if i := strings.Index(first, "."); i >= 0 {
			first = first[:i]
		}
		return first
	case strings.Contains(fullName, ".") && !strings.Contains(fullName, " "):
		return fullName[:strings.Index(fullName, ".")]
	case !strings.Contains(fullName, ".") && strings.Contains(fullName, " "):
		return fullName[:strings.Index(fullName, " ")]
	case !strings.Contains(fullName, ",") && !strings.Contains(fullName, " "):
		return ""
	default:
		first := fullName
		if i := strings.Index(first, "."); i >= 0 {
			first = strings.TrimSpace(first[:i])
		}
		if i := strings.Index(first, " "); i >= 0 {
			first = first[:i]
		}
		if i := strings.Index(first, "."); i >= 0 {
			first = first[:i]
		}
		return first
	}
}
