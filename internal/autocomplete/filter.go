package autocomplete

import (
	"strings"
	"unicode/utf8"
)

// DefaultThreshold is the minimum input length, in runes, before the
// list is shown and a search is requested
const DefaultThreshold = 3

// Filter returns the suggestions that start with value, ignoring case,
// in their original order. Values shorter than threshold match nothing.
func Filter(value string, suggestions []string, threshold int) []string {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if utf8.RuneCountInString(value) < threshold {
		return nil
	}

	prefix := strings.ToLower(value)
	var matches []string
	for _, s := range suggestions {
		if strings.HasPrefix(strings.ToLower(s), prefix) {
			matches = append(matches, s)
		}
	}
	return matches
}
