package base

import "math"

// ConvertFloat coerces a custom setting value to float64. Decoded
// configuration may deliver numbers as any numeric type
func ConvertFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// ConvertInt coerces a custom setting value to int64, rejecting fractional
// floats
func ConvertInt(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}
