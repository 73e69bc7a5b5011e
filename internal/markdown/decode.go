package markdown

import (
	"fmt"
	"strings"

	"github.com/takak2166/notionsync/internal/blocks"
)

// Decode renders a sequence of typed blocks back into markdown text. Child
// page titles are collected first so that later link-to-page blocks resolve
// to a readable title instead of an opaque identifier. Unrecognized block
// types render as an inert placeholder comment; partial output is always
// preferred over total failure.
func Decode(bs []blocks.Block) string {
	pageTitles := make(map[string]string)
	for _, b := range bs {
		if cp, ok := b.(blocks.ChildPage); ok {
			pageTitles[cp.ID] = cp.Title
		}
	}

	var parts []string
	for _, b := range bs {
		if s := renderBlock(b, pageTitles); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func renderBlock(b blocks.Block, pageTitles map[string]string) string {
	switch v := b.(type) {
	case blocks.Heading:
		return strings.Repeat("#", v.Level) + " " + renderRuns(v.Runs)
	case blocks.Paragraph:
		return renderRuns(v.Runs)
	case blocks.Bullet:
		return "- " + renderRuns(v.Runs)
	case blocks.Numbered:
		return "1. " + renderRuns(v.Runs)
	case blocks.Todo:
		mark := " "
		if v.Checked {
			mark = "x"
		}
		return "- [" + mark + "] " + renderRuns(v.Runs)
	case blocks.Quote:
		return "> " + renderRuns(v.Runs)
	case blocks.Divider:
		return "---"
	case blocks.Code:
		return fmt.Sprintf("```%s\n%s\n```", v.Language, v.Text)
	case blocks.Table:
		return renderTable(v)
	case blocks.ChildPage:
		return fmt.Sprintf("→ [[%s]]", v.Title)
	case blocks.PageLink:
		if title, ok := pageTitles[v.ID]; ok {
			return fmt.Sprintf("→ [[%s]]", title)
		}
		return fmt.Sprintf("→ [Linked Page](%s)", v.ID)
	case blocks.Callout:
		emoji := v.Emoji
		if emoji == "" {
			emoji = "💡"
		}
		return "> " + emoji + " " + renderRuns(v.Runs)
	case blocks.Toggle:
		return fmt.Sprintf("<details><summary>%s</summary>\n\n</details>", renderRuns(v.Runs))
	case blocks.Unknown:
		return fmt.Sprintf("<!-- Unsupported block type: %s -->", v.Type)
	default:
		return ""
	}
}

// renderTable writes pipe-delimited rows with a synthesized all-dash
// separator after the header row. Remote tables carry no separator row, so
// it is always generated here.
func renderTable(t blocks.Table) string {
	if len(t.Rows) == 0 {
		return ""
	}
	width := t.Width
	if width == 0 {
		width = len(t.Rows[0])
	}

	var lines []string
	for i, row := range t.Rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, renderRuns(cell))
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
		if i == 0 {
			sep := make([]string, width)
			for k := range sep {
				sep[k] = "---"
			}
			lines = append(lines, "| "+strings.Join(sep, " | ")+" |")
		}
	}
	return strings.Join(lines, "\n")
}

func renderRuns(runs []blocks.TextRun) string {
	var b strings.Builder
	for _, run := range runs {
		content := run.Content
		if run.Code {
			content = "`" + content + "`"
		}
		if run.Bold {
			content = "**" + content + "**"
		}
		if run.Italic {
			content = "*" + content + "*"
		}
		if run.Strikethrough {
			content = "~~" + content + "~~"
		}
		if run.Link != "" {
			content = "[" + content + "](" + run.Link + ")"
		}
		b.WriteString(content)
	}
	return b.String()
}
