// Package slug derives deterministic filesystem-safe names from display
// names. The slug is the storage key for profile documents.
package slug

import (
	"regexp"
	"strings"
)

var (
	dropRe     = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	collapseRe = regexp.MustCompile(`[-\s]+`)
)

// Make converts a display name to a lowercase hyphen-joined slug: characters
// outside letters, digits, underscore, whitespace and hyphen are dropped,
// runs of whitespace and hyphens collapse to a single hyphen, and leading or
// trailing hyphens are trimmed. Make is idempotent: Make(Make(x)) == Make(x).
func Make(name string) string {
	s := dropRe.ReplaceAllString(name, "")
	s = collapseRe.ReplaceAllString(s, "-")
	return strings.Trim(strings.ToLower(s), "-")
}
