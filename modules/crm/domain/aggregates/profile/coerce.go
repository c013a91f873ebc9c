package profile

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// CoerceInt parses a numeric field into an integer. Returns nil when the
// value is empty, not a number, or not representable as int64: a failed
// coercion means the field is absent from the write, never zero.
func CoerceInt(v string) *int64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	// Spreadsheets hand over decimals like "1200.0" for integer columns.
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	// ParseFloat also accepts "inf" and "NaN", and values beyond int64
	// range would wrap to MinInt64 on conversion.
	if math.IsNaN(f) || math.IsInf(f, 0) || f < math.MinInt64 || f >= math.MaxInt64 {
		return nil
	}
	n := int64(f)
	return &n
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// NormalizeDate reduces a date value to YYYY-MM-DD. A non-empty value that
// matches no known layout is an InvalidFieldError: the caller must surface
// it rather than substitute a fabricated date.
func NormalizeDate(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", &InvalidFieldError{Field: field, Value: v}
}
