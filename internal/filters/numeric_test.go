package filters

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type pricedItem struct {
	price, cost decimal.Decimal
}

func (p pricedItem) Price() decimal.Decimal     { return p.price }
func (p pricedItem) CostPrice() decimal.Decimal { return p.cost }

type panickyItem struct{}

func (panickyItem) Price() decimal.Decimal     { panic("price table unavailable") }
func (panickyItem) CostPrice() decimal.Decimal { return decimal.Zero }

func TestDiv(t *testing.T) {
	tests := []struct {
		name  string
		value any
		arg   any
		want  float64
	}{
		{"integers", 10, 2, 5.0},
		{"division by zero", 10, 0, 0},
		{"division by float zero", 10, 0.0, 0},
		{"numeric strings", "9", " 3 ", 3.0},
		{"decimal", decimal.RequireFromString("7.5"), 2.5, 3.0},
		{"json number", json.Number("8"), 4, 2.0},
		{"nil value", nil, 2, 0},
		{"nil arg", 10, nil, 0},
		{"non numeric", "ten", 2, 0},
		{"slice", []int{1}, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Div(tt.value, tt.arg))
		})
	}
}

func TestMul(t *testing.T) {
	tests := []struct {
		name  string
		value any
		arg   any
		want  float64
	}{
		{"int and string", 3, "4", 12.0},
		{"floats", 1.5, 2.0, 3.0},
		{"negative", -2, 3, -6.0},
		{"nil", nil, 3, 0},
		{"garbage", 3, "four", 0},
		{"typed nil pointer", (*int)(nil), 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Mul(tt.value, tt.arg))
		})
	}
}

func TestAbs(t *testing.T) {
	assert.Equal(t, 5.5, Abs(-5.5))
	assert.Equal(t, 3.0, Abs("-3"))
	assert.Equal(t, 0.0, Abs(0))

	// unreadable input comes back untouched rather than as zero
	assert.Equal(t, "n/a", Abs("n/a"))
	assert.Nil(t, Abs(nil))
	items := []string{"a"}
	assert.Equal(t, items, Abs(items))
}

func TestMarginPercentage(t *testing.T) {
	tests := []struct {
		name  string
		price any
		cost  []any
		want  any
	}{
		{"two values", 100, []any{60}, 40.0},
		{"string values", "80", []any{"20"}, 75.0},
		{"rounds to two places", 3, []any{2}, 33.33},
		{"zero price", 0, []any{60}, 0.0},
		{"zero cost", 100, []any{0}, 0.0},
		{"negative cost", 100, []any{-5}, 0.0},
		{"cost above price", 50, []any{75}, -50.0},
		{"unreadable price", "lots", []any{10}, 0.0},
		{"map record", map[string]any{"price": 100, "cost_price": 50}, nil, 50.0},
		{"map missing cost", map[string]any{"price": 100}, nil, 0.0},
		{"map with nil price", map[string]any{"price": nil, "cost_price": 5}, nil, 0.0},
		{"priced item", pricedItem{decimal.NewFromInt(200), decimal.NewFromInt(150)}, nil, 25.0},
		{"nil cost argument reads record", map[string]any{"price": "10", "cost_price": "9"}, []any{nil}, 10.0},
		{"single number has no cost", 100, nil, 0.0},
		{"nil", nil, nil, 0.0},
		{"unexpected failure", panickyItem{}, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MarginPercentage(tt.price, tt.cost...))
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"hours and minutes", 90, "1h 30m"},
		{"whole hour", 60, "1h"},
		{"minutes only", 5, "5m"},
		{"zero", 0, "0m"},
		{"negative clamps", -5, "0m"},
		{"fraction truncates", 61.9, "1h 1m"},
		{"numeric string", "125", "2h 5m"},
		{"many hours", 24 * 60, "24h"},
		{"bad", "bad", ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMinutes(tt.input))
		})
	}
}

func TestFormatQty(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"whole float", 4.00, "4"},
		{"one decimal", 4.50, "4.5"},
		{"two decimals", 4.05, "4.05"},
		{"string with zeros", "4.00", "4"},
		{"integer", 12, "12"},
		{"rounds half to even", "2.345", "2.34"},
		{"rounds up", "2.346", "2.35"},
		{"tiny value", "0.001", "0"},
		{"negative", "-1.50", "-1.5"},
		{"decimal", decimal.RequireFromString("3.10"), "3.1"},
		{"nil", nil, "0"},
		{"empty string", "", "0"},
		{"unreadable", "a dozen", "a dozen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatQty(tt.input))
		})
	}
}

func TestNumericFiltersNeverPanic(t *testing.T) {
	inputs := []any{nil, "", "x", struct{}{}, []any{}, map[string]int{}, (*float64)(nil), true, complex(1, 2)}

	for _, in := range inputs {
		assert.NotPanics(t, func() {
			Div(in, in)
			Mul(in, in)
			Abs(in)
			MarginPercentage(in, in)
			MarginPercentage(in)
			FormatMinutes(in)
			FormatQty(in)
		})
	}
}
