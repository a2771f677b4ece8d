// Package strings provides identifier casing and inflection helpers used by
// the scaffolding pipeline when deriving member and file names.
package strings

import (
	"strings"
	"unicode"
)

// ToSnakeCase converts CamelCase to snake_case.
// Handles acronyms properly (HTTPRequest -> http_request).
func ToSnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(s)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				// Add underscore before uppercase letter if:
				// 1. Previous char is lowercase
				// 2. Next char is lowercase (for acronyms like HTTPRequest -> http_request)
				if unicode.IsLower(prev) {
					result.WriteRune('_')
				} else if i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
					result.WriteRune('_')
				}
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// ToPascalCase converts snake_case or kebab-case identifiers to PascalCase.
// Database column names pass through here on their way to property names.
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	upperNext := true
	for _, r := range s {
		if r == '_' || r == '-' || r == ' ' {
			upperNext = true
			continue
		}
		if upperNext {
			result.WriteRune(unicode.ToUpper(r))
			upperNext = false
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// Pluralize returns the plural form of a type name using the conventions
// entity-set members follow. Irregular nouns that matter for scaffolding are
// listed, everything else gets suffix rules.
func Pluralize(s string) string {
	if s == "" {
		return ""
	}

	irregular := map[string]string{
		"person": "people",
		"child":  "children",
		"man":    "men",
		"woman":  "women",
		"mouse":  "mice",
		"datum":  "data",
	}
	if plural, ok := irregular[strings.ToLower(s)]; ok {
		return matchCase(s, plural)
	}

	lower := strings.ToLower(s)
	switch {
	case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "x"),
		strings.HasSuffix(lower, "z"), strings.HasSuffix(lower, "ch"),
		strings.HasSuffix(lower, "sh"):
		return s + "es"
	case strings.HasSuffix(lower, "y") && len(s) > 1 && !isVowel(rune(lower[len(lower)-2])):
		return s[:len(s)-1] + "ies"
	default:
		return s + "s"
	}
}

// matchCase copies the leading-capital style of src onto plural.
func matchCase(src, plural string) string {
	if src == "" || plural == "" {
		return plural
	}
	if unicode.IsUpper(rune(src[0])) {
		return strings.ToUpper(plural[:1]) + plural[1:]
	}
	return plural
}

func isVowel(r rune) bool {
	return strings.ContainsRune("aeiou", r)
}
