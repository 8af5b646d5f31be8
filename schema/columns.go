package schema

import (
	"fmt"
	"strings"
	"unicode"
)

// ============================================================================
// COLUMN RESOLUTION — Header names → schema keys
// ============================================================================
// Headers are compared in snake_case, so "Title", " title " and "TITLE"
// all resolve to the title column. Aliases cover common exports
// ("Runtime", "IMDb Rating", "Vote Count"). Unknown headers are ignored.
// ============================================================================

// MissingColumnsError lists schema keys no header resolved to.
type MissingColumnsError struct {
	Keys []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Keys, ", "))
}

// ResolveColumns maps every schema key to the header that carries it.
// The first matching header wins. Returns *MissingColumnsError when a key
// has no header.
func (c Config) ResolveColumns(headers []string) (map[string]string, error) {
	byName := make(map[string]string, len(headers))
	for _, h := range headers {
		key := toSnakeCase(strings.TrimSpace(h))
		if _, exists := byName[key]; !exists {
			byName[key] = h
		}
	}

	resolved := make(map[string]string)
	var missing []string

	lookup := func(key string, aliases []string) {
		for _, name := range append([]string{key}, aliases...) {
			if h, ok := byName[name]; ok {
				resolved[key] = h
				return
			}
		}
		missing = append(missing, key)
	}

	for _, d := range c.Dimensions {
		lookup(d.Key, d.Aliases)
	}
	for _, m := range c.Measures {
		lookup(m.Key, m.Aliases)
	}

	if len(missing) > 0 {
		return resolved, &MissingColumnsError{Keys: missing}
	}
	return resolved, nil
}

// ============================================================================
// STRING UTILITIES
// ============================================================================

// toSnakeCase converts "Column Name" or "columnName" → "column_name".
func toSnakeCase(s string) string {
	// Handle camelCase: insert underscore before uppercase letters
	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			prev := rune(s[i-1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				result.WriteRune('_')
			}
		}
		result.WriteRune(r)
	}

	s = result.String()
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "__", "_")
	s = strings.Trim(s, "_")
	return s
}

// ToDisplayName cleans a header for human display.
// "num_votes" → "Num Votes", "rating" → "Rating"
func ToDisplayName(s string) string {
	// If already has spaces/mixed case, just trim
	if strings.Contains(s, " ") {
		return strings.TrimSpace(s)
	}

	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
		}
	}
	return strings.Join(words, " ")
}
