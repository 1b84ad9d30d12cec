package api

import (
	"regexp"
	"strings"
)

// PrettifyName converts file stems such as "no_open-flame" to "No Open Flame"
func PrettifyName(name string) string {
	var result strings.Builder

	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})

	for i, word := range words {
		if i > 0 {
			result.WriteString(" ")
		}
		result.WriteString(strings.Title(strings.ToLower(word)))
	}

	return result.String()
}

// KeyFromStem converts a file stem to a catalog key: lower case, dashes become underscores
func KeyFromStem(stem string) string {
	return strings.ReplaceAll(strings.ToLower(stem), "-", "_")
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// SanitizeFileName replaces every run of characters outside [A-Za-z0-9_-]
// with a single underscore and trims underscores from both ends.
func SanitizeFileName(s string) string {
	return strings.Trim(unsafeFileChars.ReplaceAllString(s, "_"), "_")
}
