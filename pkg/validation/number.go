package validation

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ToNumber coerces numbers and numeric strings to float64.
// Blank strings, nil and non-finite values are rejected.
func ToNumber(v any) (float64, bool) {
	if isNil(v) {
		return 0, false
	}

	var f float64
	switch t := v.(type) {
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		n, err := strconv.ParseFloat(Stringify(t), 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		s := strings.TrimSpace(Stringify(v))
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = n
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToInt is ToNumber restricted to integral values.
func ToInt(v any) (int, bool) {
	f, ok := ToNumber(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// NormalizePage clamps paging input: page defaults to 1, size to 10 and is capped at 100.
func NormalizePage(page, size any) (int, int) {
	p, ok := ToInt(page)
	if !ok || p <= 0 {
		p = DefaultPage
	}
	s, ok := ToInt(size)
	if !ok || s <= 0 {
		s = DefaultPageSize
	} else if s > MaxPageSize {
		s = MaxPageSize
	}
	return p, s
}
