// Package locale converts Spanish-formatted spreadsheet values into numbers
// and formats numbers back for display.
//
// The published sheets mix comma decimals ("45,7"), period thousands
// separators ("150.000") and percent suffixes ("87,5%"). Parsing never fails:
// callers pass the value to use when the input is not a number.
package locale

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// thousandsGrouped matches integers written with period thousands separators.
var thousandsGrouped = regexp.MustCompile(`^[+-]?\d{1,3}(\.\d{3})+$`)

// leadingInt matches the integer prefix of a string, the way spreadsheet
// cells like "30 " or "2*" are read as 30 and 2.
var leadingInt = regexp.MustCompile(`^[+-]?\d+`)

// ParseFloat converts v into a float64.
//
// Numeric kinds pass through. Strings have "%" and whitespace removed; when a
// comma is present it is the decimal separator and every period is a
// thousands separator. Without a comma, periods are thousands separators only
// if they group digits in threes. Anything unparsable, NaN or infinite yields
// def.
func ParseFloat(v any, def float64) float64 {
	switch n := v.(type) {
	case nil:
		return def
	case float64:
		return finiteOr(n, def)
	case float32:
		return finiteOr(float64(n), def)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint64:
		return float64(n)
	case string:
		return parseFloatString(n, def)
	default:
		return def
	}
}

func parseFloatString(s string, def float64) float64 {
	s = clean(s)
	if s == "" {
		return def
	}

	switch {
	case strings.Contains(s, ","):
		if strings.Count(s, ",") > 1 {
			return def
		}
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case thousandsGrouped.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return finiteOr(f, def)
}

// ParseInt converts v into an int using a strict parse: period thousands
// separators are allowed, fractions and trailing text are not. Failures
// yield 0.
func ParseInt(v any) int {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0
		}
		return int(n)
	case string:
		s := strings.ReplaceAll(clean(n), ".", "")
		i, err := strconv.Atoi(s)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// ParseLeadingInt reads the integer prefix of v, ignoring whatever follows
// it. Failures yield 0.
func ParseLeadingInt(v any) int {
	switch n := v.(type) {
	case string:
		m := leadingInt.FindString(strings.TrimSpace(n))
		if m == "" {
			return 0
		}
		i, err := strconv.Atoi(m)
		if err != nil {
			return 0
		}
		return i
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return int(n)
	default:
		return ParseInt(v)
	}
}

// clean drops percent signs and every kind of whitespace, including the
// non-breaking spaces some exports put between digit groups.
func clean(s string) string {
	s = strings.ReplaceAll(s, "%", "")
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\u00a0', '\u202f':
			return -1
		}
		return r
	}, s)
}

func finiteOr(f, def float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}
