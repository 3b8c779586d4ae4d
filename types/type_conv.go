package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToInt64 converts a caller-supplied value to an int64. Strings are parsed as
// base-10; floats are accepted only when they hold a whole number in range.
func ToInt64(v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint:
		if uint64(x) > math.MaxInt64 {
			return 0, fmt.Errorf("%d is out of int64 range", x)
		}
		return int64(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return 0, fmt.Errorf("%d is out of int64 range", x)
		}
		return int64(x), nil
	case float64:
		if x != math.Trunc(x) || x < math.MinInt64 || x >= math.MaxInt64 {
			return 0, fmt.Errorf("%g is not an int64", x)
		}
		return int64(x), nil
	case float32:
		return ToInt64(float64(x))
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
				return 0, fmt.Errorf("%q is out of int64 range", x)
			}
			return 0, fmt.Errorf("cannot convert %q to int", x)
		}
		return i, nil
	case []byte:
		return ToInt64(string(x))
	default:
		return 0, fmt.Errorf("expected int, got %T", v)
	}
}

// ToString returns the text form of a caller-supplied value.
func ToString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", x), nil
	case float32, float64:
		return fmt.Sprintf("%g", x), nil
	case bool:
		return strconv.FormatBool(x), nil
	case fmt.Stringer:
		return x.String(), nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}
