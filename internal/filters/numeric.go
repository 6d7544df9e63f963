package filters

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

var errNotNumeric = errors.New("value is not numeric")

// toFloat coerces numbers, numeric strings and decimals. nil is rejected.
func toFloat(value any) (float64, error) {
	if isNil(value) {
		return 0, errNotNumeric
	}

	switch v := value.(type) {
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	case decimal.Decimal:
		return v.InexactFloat64(), nil
	case *decimal.Decimal:
		return v.InexactFloat64(), nil
	}

	f, err := cast.ToFloat64E(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errNotNumeric, err)
	}
	return f, nil
}

// toDecimal coerces like toFloat but keeps string and decimal input exact.
func toDecimal(value any) (decimal.Decimal, error) {
	if isNil(value) {
		return decimal.Zero, errNotNumeric
	}

	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case *decimal.Decimal:
		return *v, nil
	case string:
		return decimal.NewFromString(strings.TrimSpace(v))
	}

	f, err := toFloat(value)
	if err != nil {
		return decimal.Zero, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, errNotNumeric
	}
	return decimal.NewFromFloat(f), nil
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

// Div returns value/arg, or 0 when either side is not numeric or arg is zero.
func Div(value, arg any) float64 {
	v, err := toFloat(value)
	if err != nil {
		return 0
	}
	d, err := toFloat(arg)
	if err != nil || d == 0 {
		return 0
	}
	return v / d
}

// Mul returns value*arg, or 0 when either side is not numeric.
func Mul(value, arg any) float64 {
	v, err := toFloat(value)
	if err != nil {
		return 0
	}
	m, err := toFloat(arg)
	if err != nil {
		return 0
	}
	return v * m
}

// Abs returns the absolute value as a float64. Input that cannot be read as a
// number is returned unchanged rather than zeroed; any other failure yields "".
func Abs(value any) (result any) {
	defer func() {
		if recover() != nil {
			result = ""
		}
	}()

	f, err := toFloat(value)
	if err != nil {
		return value
	}
	return math.Abs(f)
}

// MarginPercentage computes (price-cost)/price*100 rounded to two places.
//
// Called with one argument it reads price and cost from a PricedItem, a map or
// a Getter (keys "price" and "cost_price"). It returns 0 when either figure is
// not positive or cannot be read, and "" on any other failure.
func MarginPercentage(price any, cost ...any) (result any) {
	defer func() {
		if recover() != nil {
			result = ""
		}
	}()

	var priceVal, costVal decimal.Decimal
	if len(cost) == 0 || cost[0] == nil {
		var ok bool
		priceVal, costVal, ok = pricedFigures(price)
		if !ok {
			return float64(0)
		}
	} else {
		var err error
		if priceVal, err = toDecimal(price); err != nil {
			return float64(0)
		}
		if costVal, err = toDecimal(cost[0]); err != nil {
			return float64(0)
		}
	}

	if !priceVal.IsPositive() || !costVal.IsPositive() {
		return float64(0)
	}

	margin := priceVal.Sub(costVal).Div(priceVal).Mul(decimal.NewFromInt(100))
	return margin.Round(2).InexactFloat64()
}

// pricedFigures reads price and cost from a single record-like value. A plain
// number has no cost, which callers treat as a zero margin.
func pricedFigures(item any) (decimal.Decimal, decimal.Decimal, bool) {
	if p, ok := item.(PricedItem); ok {
		return p.Price(), p.CostPrice(), true
	}

	if isLookup(item) {
		priceVal, err := toDecimal(lookupOr(item, "price", 0))
		if err != nil {
			return decimal.Zero, decimal.Zero, false
		}
		costVal, err := toDecimal(lookupOr(item, "cost_price", 0))
		if err != nil {
			return decimal.Zero, decimal.Zero, false
		}
		return priceVal, costVal, true
	}

	priceVal, err := toDecimal(item)
	if err != nil {
		return decimal.Zero, decimal.Zero, false
	}
	return priceVal, decimal.Zero, true
}

// FormatMinutes renders a minute count compactly: 90 -> "1h 30m", 60 -> "1h",
// 5 -> "5m". Negative values clamp to "0m"; non-numeric input yields "".
func FormatMinutes(value any) string {
	f, err := toFloat(value)
	if err != nil || math.IsInf(f, 0) || f >= math.MaxInt64 {
		return ""
	}
	if math.IsNaN(f) || f < 0 {
		f = 0
	}

	total := int64(f)
	hours, mins := total/60, total%60
	switch {
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

// FormatQty drops meaningless decimals: 4.00 -> "4", 4.50 -> "4.5",
// 4.05 -> "4.05". Non-integral values are rounded half-to-even to two places.
// Unreadable input is echoed back as text; nil and "" render as "0".
func FormatQty(value any) string {
	if value == nil {
		return "0"
	}
	if s, ok := value.(string); ok && s == "" {
		return "0"
	}

	num, err := toDecimal(value)
	if err != nil {
		return fmt.Sprint(value)
	}

	var result string
	if num.IsInteger() {
		result = num.Truncate(0).String()
	} else {
		result = num.RoundBank(2).StringFixed(2)
	}

	if strings.Contains(result, ".") {
		result = strings.TrimRight(strings.TrimRight(result, "0"), ".")
	}
	return result
}
