// Package strings provides string slice utilities shared across services.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice, trimming
// whitespace from each element. Order is preserved, keeping the first
// occurrence. Risk-factor accumulation relies on this to guarantee a factor
// name appears at most once.
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

// FilterNotContaining returns values without the elements whose lowercase form
// contains the lowercase of substr. Used to retract previously recorded risk
// factors once stronger evidence arrives.
func FilterNotContaining(values []string, substr string) []string {
	if len(values) == 0 {
		return values
	}
	needle := strings.ToLower(substr)
	result := make([]string, 0, len(values))
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			continue
		}
		result = append(result, v)
	}
	return result
}
