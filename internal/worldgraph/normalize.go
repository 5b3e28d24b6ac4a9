// Package worldgraph reconciles narrator-produced location descriptions into
// a single deduplicated world graph and answers navigation queries over it.
// The package is pure: it performs no I/O and holds no state of its own.
package worldgraph

import "strings"

// Normalize lowercases text and trims surrounding whitespace so that
// user- or narrator-supplied strings compare case- and whitespace-insensitively.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// firstNonEmpty returns the first candidate with non-whitespace content,
// trimmed, or "".
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
