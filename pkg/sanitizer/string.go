package sanitizer

import (
	"strings"
	"unicode"
)

func collapseSpaces(s string) string {
	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeName trims a display name and collapses runs of whitespace,
// including tabs and newlines, into one space.
func NormalizeName(name string) string {
	return Pipeline{Trim, collapseSpaces}.Apply(name)
}
