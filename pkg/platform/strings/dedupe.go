// Package strings provides helpers for identifier lists.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
//	DedupeAndTrim([]string{" URN:UVCI:A ", "URN:UVCI:B", "URN:UVCI:A", ""})
//	// []string{"URN:UVCI:A", "URN:UVCI:B"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}
	return result
}

// SplitList splits a sep-delimited list and applies DedupeAndTrim.
func SplitList(s, sep string) []string {
	if s == "" {
		return nil
	}
	return DedupeAndTrim(strings.Split(s, sep))
}
