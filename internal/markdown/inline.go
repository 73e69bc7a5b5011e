package markdown

import (
	"regexp"
	"strings"

	"github.com/takak2166/notionsync/internal/blocks"
)

// Resolver maps a relative link destination to a resolved remote URL. A miss
// means the destination has no known remote counterpart.
type Resolver interface {
	Lookup(dest string) (string, bool)
}

var (
	codeSpanRe = regexp.MustCompile("`[^`]+`")
	linkRe     = regexp.MustCompile(`^\[([^\]]+)\]\(([^)]+)\)`)
	boldRe     = regexp.MustCompile(`^\*\*([^*]+)\*\*`)
	italicRe   = regexp.MustCompile(`^\*([^*]+)\*`)
	strikeRe   = regexp.MustCompile(`^~~([^~]+)~~`)

	styleStripper = strings.NewReplacer("**", "", "*", "", "~~", "")
)

// FormatText parses a single line of markdown into styled runs. It never
// fails: anything unparseable degrades to plain text. Code spans are isolated
// first so their contents are never reinterpreted; the remaining segments are
// scanned left to right for links, bold, italic, and strikethrough in that
// order. Run contents longer than maxLen are truncated.
func FormatText(text string, res Resolver, maxLen int) []blocks.TextRun {
	var runs []blocks.TextRun
	for _, seg := range splitCodeSpans(text) {
		if seg.code {
			runs = append(runs, blocks.TextRun{
				Content: truncate(seg.text, maxLen),
				Code:    true,
			})
			continue
		}
		runs = append(runs, formatSegment(seg.text, res, maxLen)...)
	}
	if len(runs) == 0 {
		runs = []blocks.TextRun{{}}
	}
	return runs
}

type segment struct {
	text string
	code bool
}

func splitCodeSpans(text string) []segment {
	var segs []segment
	last := 0
	for _, span := range codeSpanRe.FindAllStringIndex(text, -1) {
		if span[0] > last {
			segs = append(segs, segment{text: text[last:span[0]]})
		}
		segs = append(segs, segment{text: text[span[0]+1 : span[1]-1], code: true})
		last = span[1]
	}
	if last < len(text) {
		segs = append(segs, segment{text: text[last:]})
	}
	return segs
}

func formatSegment(seg string, res Resolver, maxLen int) []blocks.TextRun {
	var runs []blocks.TextRun
	pos := 0
	for pos < len(seg) {
		rest := seg[pos:]

		if m := linkRe.FindStringSubmatch(rest); m != nil {
			runs = append(runs, linkRun(m[1], m[2], res, maxLen))
			pos += len(m[0])
			continue
		}
		if m := boldRe.FindStringSubmatch(rest); m != nil {
			runs = append(runs, blocks.TextRun{Content: truncate(m[1], maxLen), Bold: true})
			pos += len(m[0])
			continue
		}
		if m := italicRe.FindStringSubmatch(rest); m != nil {
			runs = append(runs, blocks.TextRun{Content: truncate(m[1], maxLen), Italic: true})
			pos += len(m[0])
			continue
		}
		if m := strikeRe.FindStringSubmatch(rest); m != nil {
			runs = append(runs, blocks.TextRun{Content: truncate(m[1], maxLen), Strikethrough: true})
			pos += len(m[0])
			continue
		}

		// Plain text up to the next marker character. When the character at
		// pos is itself a marker that matched nothing, it is consumed as
		// plain text rather than dropped.
		next := len(seg)
		if idx := strings.IndexAny(seg[pos+1:], "[*~"); idx >= 0 {
			next = pos + 1 + idx
		}
		runs = append(runs, blocks.TextRun{Content: truncate(seg[pos:next], maxLen)})
		pos = next
	}
	return runs
}

// linkRun builds a single styled run from link text and destination. Styling
// inside the link text is detected by marker presence and stripped, not
// nested. An unresolvable document-relative destination yields a plain run:
// a broken link is worse than no link.
func linkRun(text, dest string, res Resolver, maxLen int) blocks.TextRun {
	run := blocks.TextRun{
		Bold:          strings.Contains(text, "**"),
		Italic:        strings.Contains(text, "*") && !strings.Contains(text, "**"),
		Strikethrough: strings.Contains(text, "~~"),
	}
	run.Content = truncate(styleStripper.Replace(text), maxLen)
	if url, ok := resolveDestination(dest, res); ok {
		run.Link = url
	}
	return run
}

func resolveDestination(dest string, res Resolver) (string, bool) {
	if strings.HasPrefix(dest, "http://") ||
		strings.HasPrefix(dest, "https://") ||
		strings.HasPrefix(dest, "mailto:") {
		return dest, true
	}

	// Anchor fragments are dropped for lookup purposes.
	base, _, _ := strings.Cut(dest, "#")
	if res != nil {
		if url, ok := res.Lookup(base); ok {
			return url, true
		}
	}
	if strings.HasSuffix(base, ".md") {
		return "", false
	}
	return dest, true
}

func truncate(s string, max int) string {
	if max > 0 && len(s) > max {
		return s[:max]
	}
	return s
}
