package ui

import (
	"sort"
	"strings"
)

const (
	// maxSuggestionDistance is the largest edit distance still considered
	// a plausible misspelling of a class name.
	maxSuggestionDistance = 3
	maxSuggestions        = 3
)

// SuggestSymbols returns up to three registered type names that look like
// misspellings of target, closest first. Matching is case-insensitive so
// "product" still suggests "Product".
func SuggestSymbols(target string, candidates []string) []string {
	type match struct {
		name     string
		distance int
	}

	lower := strings.ToLower(target)
	var matches []match
	for _, candidate := range candidates {
		d := editDistance(lower, strings.ToLower(candidate))
		if d <= maxSuggestionDistance {
			matches = append(matches, match{name: candidate, distance: d})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].name < matches[j].name
	})

	names := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(names) == maxSuggestions {
			break
		}
		names = append(names, m.name)
	}
	return names
}

// editDistance is the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
