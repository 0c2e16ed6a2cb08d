package suggestion

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NormalizeConfidence converts a classifier confidence into an integer
// percentage in [0,100].
//
// Numbers and numeric strings (optionally suffixed with "%") are accepted.
// Anything else, or a non-finite value, yields 0. Values in [0,1] are read
// as fractions after the percent sign is stripped, so 1, "1" and "1%" all
// become 100 while 0.01 becomes 1.
func NormalizeConfidence(raw interface{}) int {
	v, ok := toFloat(raw)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v >= 0 && v <= 1 {
		v *= 100
	}
	v = math.Round(v)
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return int(v)
	}
}

func toFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(v)
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
