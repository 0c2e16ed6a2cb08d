package suggestion

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeConfidence(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
		want int
	}{
		{"fraction", 0.42, 42},
		{"percent string", "87%", 87},
		{"percent string with spaces", " 64 % ", 64},
		{"plain numeric string", "55", 55},
		{"fraction string", "0.9", 90},
		{"exactly one is a fraction", 1, 100},
		{"exactly one float", 1.0, 100},
		{"one percent string", "1%", 100},
		{"small fraction", 0.01, 1},
		{"zero", 0, 0},
		{"percentage", 93, 93},
		{"rounds", 72.5, 73},
		{"clamps high", 150, 100},
		{"clamps negative", -20, 0},
		{"negative fraction", -0.5, 0},
		{"nil", nil, 0},
		{"empty string", "", 0},
		{"garbage", "high", 0},
		{"bool", true, 0},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 0},
		{"json number", json.Number("0.75"), 75},
		{"int64", int64(88), 88},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeConfidence(tt.raw))
		})
	}
}

func TestNormalizeConfidence_Range(t *testing.T) {
	for v := -300.0; v <= 300.0; v += 0.37 {
		got := NormalizeConfidence(v)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
	}
}
