package dictionary

import (
	"regexp"
	"strconv"
)

// Positional placeholders in the form {0}, {1}, ...
var positionalRegex = regexp.MustCompile(`\{(\d+)\}`)

// Format substitutes positional placeholders with params. Placeholders whose
// index is out of range are kept as is.
//
//	Format("Hello {0}, you have {1} items", "Alice", "3")
//	// "Hello Alice, you have 3 items"
func Format(tmpl string, params ...string) string {
	if len(params) == 0 {
		return tmpl
	}
	return positionalRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		idx, err := strconv.Atoi(match[1 : len(match)-1])
		if err != nil || idx < 0 || idx >= len(params) {
			return match
		}
		return params[idx]
	})
}
