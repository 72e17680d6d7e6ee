package document

import "strings"

// ExtractList returns the bullet items under the heading line that matches
// heading exactly (after trimming). Capture ends at the next "## " heading
// or end of body. Bullet lines contribute one item each with the marker
// stripped; placeholder lines (starting "No " or an emphasis marker) are
// excluded. Items are returned verbatim otherwise, trailing inline
// annotations included — stripping those is the caller's job. An absent
// heading yields an empty list, not an error.
func ExtractList(body, heading string) []string {
	var items []string
	inSection := false
	for _, raw := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == heading {
			inSection = true
			continue
		}
		if inSection && strings.HasPrefix(raw, "## ") {
			break
		}
		if !inSection || !strings.HasPrefix(trimmed, "- ") {
			continue
		}
		item := strings.TrimSpace(trimmed[2:])
		if item == "" || strings.HasPrefix(item, "No ") || strings.HasPrefix(item, "*") {
			continue
		}
		items = append(items, item)
	}
	return items
}

// RenderList renders the heading followed by one bullet line per item, in
// given order, or by a single placeholder bullet when items is empty. The
// result carries no trailing newline so callers control section spacing.
func RenderList(heading string, items []string, placeholder string) string {
	lines := make([]string, 0, len(items)+1)
	lines = append(lines, heading)
	if len(items) == 0 {
		lines = append(lines, "- "+placeholder)
	} else {
		for _, item := range items {
			lines = append(lines, "- "+item)
		}
	}
	return strings.Join(lines, "\n")
}
