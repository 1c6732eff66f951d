package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToInt converts a loosely typed JSON value to int.
// It accepts integer and integral float types, json.Number and numeric strings.
func ToInt(val any) (int, error) {
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case int32:
		return int(v), nil
	case uint:
		return int(v), nil
	case uint64:
		return int(v), nil
	case uint32:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsNaN(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, fmt.Errorf("not an integer: %v", v)
		}
		return int(v), nil
	case float32:
		return ToInt(float64(v))
	case json.Number:
		return ToInt(string(v))
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", v)
		}
		return i, nil
	case []byte:
		return ToInt(string(v))
	default:
		return 0, fmt.Errorf("not an integer: %T", val)
	}
}

// ToString converts a loosely typed JSON value to string. nil is "".
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
