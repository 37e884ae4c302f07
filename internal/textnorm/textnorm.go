// Package textnorm builds comparison keys from free-text labels.
//
// Keys are lowercase, accent-stripped and trimmed. They are only ever used for
// lookups and equality checks, never shown to users.
package textnorm

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// KeySeparator joins the two halves of a municipality key.
const KeySeparator = "|"

// Normalize returns the lookup form of v. nil becomes "", strings are used
// as-is and anything else goes through fmt first.
func Normalize(v any) string {
	s := toString(v)
	if s == "" {
		return ""
	}
	// A fresh chain per call; transform.Chain values carry state and are not
	// safe for concurrent use.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.TrimSpace(strings.ToLower(out))
}

// MunicipalityKey returns the index key for a (name, province) pair. The
// order of the arguments is significant.
func MunicipalityKey(name, province any) string {
	return Normalize(name) + KeySeparator + Normalize(province)
}

// Equal reports whether a and b normalize to the same key.
func Equal(a, b any) bool {
	return Normalize(a) == Normalize(b)
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
