package engine

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CoerceQuantity turns loosely typed form input into a usable quantity.
// Missing or unparseable values become 0 and negatives are clamped to 0,
// matching how the stock form treats blank inputs.
func CoerceQuantity(value any) int {
	f := coerceNumber(value)
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

// CoercePrice turns loosely typed form input into a non-negative price.
func CoercePrice(value any) float64 {
	f := coerceNumber(value)
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func coerceNumber(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	case bool:
		return 0
	default:
		return 0
	}
}
