package configure

import (
	"strconv"
)

// DebugKey is the top-level key whose writes toggle the display flag.
const DebugKey = "debug"

// DisplayToggle switches error display on or off when the debug key changes.
type DisplayToggle interface {
	SetErrorDisplay(enabled bool)
}

// DisplayToggleFunc adapts a function to the DisplayToggle interface.
type DisplayToggleFunc func(enabled bool)

// SetErrorDisplay calls f(enabled).
func (f DisplayToggleFunc) SetErrorDisplay(enabled bool) {
	f(enabled)
}

// Truthy reports whether a configuration value counts as enabled.
// Zero numbers, empty strings, "0", strings parsing as false, empty mappings and
// empty sequences are false.
// This intentionally departs from plain truthiness, where any non-empty string is
// true: "false", "FALSE" and "f" are false here.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(v)
		if err == nil {
			return parsed
		}

		return v != ""
	case int:
		return v != 0
	case int8:
		return v != 0
	case int16:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case uint:
		return v != 0
	case uint8:
		return v != 0
	case uint16:
		return v != 0
	case uint32:
		return v != 0
	case uint64:
		return v != 0
	case float32:
		return v != 0
	case float64:
		return v != 0
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}
