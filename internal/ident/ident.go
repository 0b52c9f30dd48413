// Package ident converts arbitrary column headers into SQL-safe
// identifiers for the optional database sink. Survey headers like "Q49"
// or dotted flattened names like "estate.map.lat" become plain lowercase
// names a CREATE TABLE can carry.
package ident

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxLen matches the Postgres NAMEDATALEN-1 limit; names past it would
// be truncated server-side, after the uniqueness check instead of before.
const maxLen = 63

// Normalize converts header text into a lowercase ASCII identifier:
//  1. lowercase
//  2. strip accents (NFD, remove Mn, NFC)
//  3. keep [a-z0-9_]; convert space/dash/dot to underscore; drop others
//  4. fallback to "col" if empty
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	ascii, _, _ := transform.String(t, s)

	var b strings.Builder
	prevUnderscore := false
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			prevUnderscore = false
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			prevUnderscore = false
		case r == '_' || r == ' ' || r == '-' || r == '.':
			if !prevUnderscore {
				b.WriteRune('_')
				prevUnderscore = true
			}
		default:
			// drop anything else
		}
	}
	name := strings.Trim(b.String(), "_")
	if len(name) > maxLen {
		name = strings.Trim(name[:maxLen], "_")
	}
	if name == "" {
		return "col"
	}
	return name
}

// Columns normalizes every header in order and suffixes repeats with a
// counter so the result can serve as a column list.
func Columns(headers []string) []string {
	out := make([]string, len(headers))
	seen := make(map[string]struct{}, len(headers))
	for i, h := range headers {
		base := Normalize(h)
		name := base
		for n := 2; ; n++ {
			if _, taken := seen[name]; !taken {
				break
			}
			name = fmt.Sprintf("%s_%d", base, n)
		}
		seen[name] = struct{}{}
		out[i] = name
	}
	return out
}
