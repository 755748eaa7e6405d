package utils

import (
	"fmt"
	"strconv"
)

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// NumberString converts a loosely-typed JSON value into a decimal string, or
// "" when the value is absent or not numeric. Agency APIs return observation
// values inconsistently as JSON numbers or quoted strings; the canonical
// model stores decimals as strings, so both shapes funnel through here.
func NumberString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case string:
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return ""
		}
		return v
	default:
		return ""
	}
}
