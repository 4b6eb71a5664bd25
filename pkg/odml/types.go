package odml

import (
	"strings"
	"time"
)

// Type identifies the data type shared by all values of a property.
// It is fixed at value construction time; typed accessors replace
// best-effort parsing at the call sites.
type Type string

// Value data types.
const (
	TypeText     Type = "text"
	TypeInt      Type = "int"
	TypeFloat    Type = "float"
	TypeDate     Type = "date"
	TypeTime     Type = "time"
	TypeDatetime Type = "datetime"
	TypeBoolean  Type = "boolean"
	TypePerson   Type = "person"
	TypeBinary   Type = "binary"
	TypeURL      Type = "url"
)

// Layouts for date and time valued content.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// String returns the string representation of a Type.
func (t Type) String() string {
	return string(t)
}

// Valid reports whether t is one of the known value types.
func (t Type) Valid() bool {
	switch t {
	case TypeText, TypeInt, TypeFloat, TypeDate, TypeTime, TypeDatetime,
		TypeBoolean, TypePerson, TypeBinary, TypeURL:
		return true
	}
	return false
}

// Equal compares two types case-insensitively. Empty types are
// considered undeclared and never equal to a declared type.
func (t Type) Equal(other Type) bool {
	return strings.EqualFold(string(t), string(other))
}

// ParseType normalizes a type string to a known Type. The legacy
// alias "string" maps to text. The boolean result reports whether
// the input named a known type.
func ParseType(s string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "string":
		return TypeText, true
	case "int", "integer":
		return TypeInt, true
	case "float":
		return TypeFloat, true
	case "date":
		return TypeDate, true
	case "time":
		return TypeTime, true
	case "datetime":
		return TypeDatetime, true
	case "boolean", "bool":
		return TypeBoolean, true
	case "person":
		return TypePerson, true
	case "binary":
		return TypeBinary, true
	case "url":
		return TypeURL, true
	}
	return "", false
}

// InferType derives a value type from the dynamic type of content.
// Unrecognized content falls back to text.
func InferType(content any) Type {
	switch content.(type) {
	case string:
		return TypeText
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TypeInt
	case float32, float64:
		return TypeFloat
	case bool:
		return TypeBoolean
	case time.Time:
		return TypeDatetime
	case []byte:
		return TypeBinary
	default:
		return TypeText
	}
}
