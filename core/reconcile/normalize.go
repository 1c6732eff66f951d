package reconcile

import (
	"strings"

	"golang.org/x/text/cases"
)

// Normalize returns the join key of a name: surrounding whitespace trimmed, then
// Unicode case folded. ok is false for names that are empty after trimming; such
// names are unkeyable and never match anything.
func Normalize(name string) (key string, ok bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", false
	}
	// A Caser keeps state between calls, so each call gets its own.
	return strings.TrimSpace(cases.Fold().String(trimmed)), true
}
