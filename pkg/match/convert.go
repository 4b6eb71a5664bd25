package match

import (
	"time"

	"github.com/g-node/odml-go/pkg/odml"
)

// asInt converts supported operand types to int64.
func asInt(v any) (int64, bool) {
	switch c := v.(type) {
	case int:
		return int64(c), true
	case int8:
		return int64(c), true
	case int16:
		return int64(c), true
	case int32:
		return int64(c), true
	case int64:
		return c, true
	}
	return 0, false
}

// asFloat converts supported operand types to float64.
func asFloat(v any) (float64, bool) {
	switch c := v.(type) {
	case float32:
		return float64(c), true
	case float64:
		return c, true
	case int:
		return float64(c), true
	case int64:
		return float64(c), true
	}
	return 0, false
}

// asTime converts a time.Time or a string in the given layout.
func asTime(v any, layout string) (time.Time, bool) {
	switch c := v.(type) {
	case time.Time:
		return c, true
	case string:
		t, err := time.Parse(layout, c)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// layoutFor maps a value type to its parse layout.
func layoutFor(t odml.Type) string {
	switch {
	case t.Equal(odml.TypeDate):
		return odml.DateLayout
	case t.Equal(odml.TypeTime):
		return odml.TimeLayout
	default:
		return time.RFC3339
	}
}
