// Package pageid normalizes user-supplied page identifiers. The CLI accepts
// either a bare ID or a notion.so URL; both resolve to the canonical dashed
// UUID shape the API expects.
package pageid

import (
	"regexp"
	"strings"
)

var idRe = regexp.MustCompile(`[a-f0-9]{32}|[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}`)

// Normalize extracts a page ID from a notion.so URL, inserting dashes when
// the URL carries the compact 32-hex form. Anything that is not a notion.so
// URL passes through unchanged.
func Normalize(input string) string {
	if !strings.Contains(input, "notion.so") {
		return input
	}
	id := idRe.FindString(input)
	if id == "" {
		return input
	}
	if !strings.Contains(id, "-") {
		id = strings.Join([]string{id[:8], id[8:12], id[12:16], id[16:20], id[20:]}, "-")
	}
	return id
}
