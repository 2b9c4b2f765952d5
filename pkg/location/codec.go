// Package location canonicalizes free-form Thai administrative-unit
// identifiers and names into lookup keys.
//
// Normalization is for matching only: two records referring to the same
// administrative unit normalize to the same key, but record identity stays
// with the raw location id.
package location

import "strings"

// countryPrefix is the ISO 3166-2 country prefix carried by some id schemes.
const countryPrefix = "th-"

// Normalize folds a raw identifier or name into its canonical key.
//
// It lower-cases, trims surrounding whitespace, strips "th-" country
// prefixes, and strips leading zeros from a trailing numeric run, so that
// "TH-010", "th-10", and "010" all map to "10". Normalize is idempotent and
// never panics. Input that carries no letters or digits normalizes to the
// empty string, which callers treat as unmatched.
func Normalize(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))

	for strings.HasPrefix(key, countryPrefix) {
		key = strings.TrimPrefix(key, countryPrefix)
	}

	key = stripLeadingZeros(key)

	if !hasAlphanumeric(key) {
		return ""
	}

	return key
}

// stripLeadingZeros removes leading zeros from the trailing numeric run of
// key, keeping at least one digit. Non-numeric keys pass through untouched.
func stripLeadingZeros(key string) string {
	runStart := len(key)
	for runStart > 0 && isDigit(key[runStart-1]) {
		runStart--
	}

	if runStart == len(key) {
		return key
	}

	run := key[runStart:]

	trimmed := strings.TrimLeft(run, "0")
	if trimmed == "" {
		trimmed = "0"
	}

	return key[:runStart] + trimmed
}

func hasAlphanumeric(key string) bool {
	for _, r := range key {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r > 127 {
			return true
		}
	}

	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
