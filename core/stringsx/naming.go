// Package stringsx holds the small naming helpers used when deriving
// dispatch names, property names and paired-setter names from declared Go
// identifiers.
package stringsx

import (
	"strings"
	"unicode/utf8"
)

// LowerFirstChar returns s with its first character converted to lowercase.
func LowerFirstChar(s string) string {
	if s == "" {
		return ""
	}

	firstRune, size := utf8.DecodeRuneInString(s)

	return strings.ToLower(string(firstRune)) + s[size:]
}

// HasPrefix reports whether s starts with any of the given prefixes.
func HasPrefix(s string, prefixes ...string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// TrimFirstPrefix removes the first matching non-empty prefix from s. With
// no match, s is returned unchanged.
func TrimFirstPrefix(s string, prefixes ...string) string {
	for _, prefix := range prefixes {
		if prefix == "" {
			continue
		}
		if strings.HasPrefix(s, prefix) {
			return s[len(prefix):]
		}
	}
	return s
}

// OneOf reports whether s is present in ss.
func OneOf(s string, ss ...string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
