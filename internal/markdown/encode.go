package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/takak2166/notionsync/internal/blocks"
)

// EncodeOptions carries the service-imposed caps the encoder must respect.
type EncodeOptions struct {
	// MaxTextLength truncates individual run contents. Defaults to 2000.
	MaxTextLength int
	// MaxTableRows is the row cap per table block. Tables beyond it are
	// re-emitted in chunks. Defaults to 100.
	MaxTableRows int
}

const (
	defaultMaxTextLength = 2000
	defaultMaxTableRows  = 100
)

var (
	fenceRe      = regexp.MustCompile("^```([a-zA-Z0-9 +#]+)?")
	numberedRe   = regexp.MustCompile(`^\d+\. `)
	todoMarkerRe = regexp.MustCompile(`^- \[[xX ]\] `)
)

// Encode partitions a markdown body into a flat sequence of typed blocks.
// Lines are classified in a fixed precedence: heading, code fence, divider,
// quote, checklist, bullet, numbered, table, paragraph. Blank lines separate
// blocks and never produce one. Encoding cannot fail: malformed constructs
// degrade to paragraphs.
func Encode(body string, res Resolver, opts EncodeOptions) []blocks.Block {
	if opts.MaxTextLength == 0 {
		opts.MaxTextLength = defaultMaxTextLength
	}
	if opts.MaxTableRows == 0 {
		opts.MaxTableRows = defaultMaxTableRows
	}
	maxLen := opts.MaxTextLength

	var out []blocks.Block
	lines := strings.Split(body, "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], " \t")

		switch {
		case line == "":

		case strings.HasPrefix(line, "# "):
			out = append(out, blocks.Heading{Level: 1, Runs: FormatText(line[2:], res, maxLen)})
		case strings.HasPrefix(line, "## "):
			out = append(out, blocks.Heading{Level: 2, Runs: FormatText(line[3:], res, maxLen)})
		case strings.HasPrefix(line, "### "):
			out = append(out, blocks.Heading{Level: 3, Runs: FormatText(line[4:], res, maxLen)})

		case strings.HasPrefix(line, "```"):
			var code blocks.Code
			code, i = scanFence(lines, i, maxLen)
			out = append(out, code)

		case strings.TrimSpace(line) == "---":
			out = append(out, blocks.Divider{})

		case strings.HasPrefix(line, "> "):
			out = append(out, blocks.Quote{Runs: FormatText(line[2:], res, maxLen)})

		case todoMarkerRe.MatchString(line):
			marker := todoMarkerRe.FindString(line)
			out = append(out, blocks.Todo{
				Runs:    FormatText(line[len(marker):], res, maxLen),
				Checked: strings.ContainsAny(marker, "xX"),
			})

		case strings.HasPrefix(line, "- "):
			out = append(out, blocks.Bullet{Runs: FormatText(line[2:], res, maxLen)})

		case numberedRe.MatchString(line):
			marker := numberedRe.FindString(line)
			out = append(out, blocks.Numbered{Runs: FormatText(line[len(marker):], res, maxLen)})

		case isTableStart(lines, i):
			var tableBlocks []blocks.Block
			tableBlocks, i = scanTable(lines, i, res, opts)
			out = append(out, tableBlocks...)

		default:
			out = append(out, blocks.Paragraph{Runs: FormatText(line, res, maxLen)})
		}
	}
	return out
}

// scanFence captures raw lines between code fences verbatim. An unterminated
// fence runs to the end of the input. Returns the index of the closing fence.
func scanFence(lines []string, i, maxLen int) (blocks.Code, int) {
	language := "plain text"
	if m := fenceRe.FindStringSubmatch(lines[i]); m != nil && strings.TrimSpace(m[1]) != "" {
		language = strings.TrimSpace(m[1])
	}

	var content []string
	j := i + 1
	for j < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[j]), "```") {
		content = append(content, strings.TrimRight(lines[j], " \t"))
		j++
	}
	return blocks.Code{
		Language: language,
		Text:     truncate(strings.Join(content, "\n"), maxLen),
	}, j
}

// isTableStart reports whether this and the next line both carry the column
// separator, the minimum shape for a table.
func isTableStart(lines []string, i int) bool {
	return strings.Contains(lines[i], "|") &&
		i+1 < len(lines) &&
		strings.Contains(lines[i+1], "|")
}

// scanTable consumes all contiguous separator-bearing lines as one table and
// emits it, chunked under the row cap when needed. A group that yields no
// usable rows degrades to one paragraph per line. Returns the index of the
// last consumed line.
func scanTable(lines []string, i int, res Resolver, opts EncodeOptions) ([]blocks.Block, int) {
	j := i
	var tableLines []string
	for j < len(lines) && strings.Contains(lines[j], "|") {
		tableLines = append(tableLines, strings.TrimSpace(lines[j]))
		j++
	}
	last := j - 1

	var raw [][]string
	for _, tl := range tableLines {
		if isSeparatorRow(tl) {
			continue
		}
		var cells []string
		for _, cell := range strings.Split(tl, "|") {
			cell = strings.TrimSpace(cell)
			if cell != "" {
				cells = append(cells, cell)
			}
		}
		if len(cells) > 0 {
			raw = append(raw, cells)
		}
	}

	if len(raw) == 0 {
		var out []blocks.Block
		for _, tl := range tableLines {
			if tl == "" {
				continue
			}
			out = append(out, blocks.Paragraph{Runs: FormatText(tl, res, opts.MaxTextLength)})
		}
		return out, last
	}

	// Width is fixed by the first row; every row is padded or truncated.
	width := len(raw[0])
	rows := make([]blocks.Row, 0, len(raw))
	for _, cells := range raw {
		for len(cells) < width {
			cells = append(cells, "")
		}
		row := make(blocks.Row, 0, width)
		for _, cell := range cells[:width] {
			row = append(row, FormatText(cell, res, opts.MaxTextLength))
		}
		rows = append(rows, row)
	}

	return chunkTable(width, rows, opts.MaxTableRows), last
}

// isSeparatorRow matches header-divider rows like |---|---| or | --- | --- |.
func isSeparatorRow(line string) bool {
	if !strings.Contains(line, "-") && line != "|" {
		return false
	}
	return strings.Trim(line, "-|: \t") == ""
}

// chunkTable re-emits an oversized table as multiple table blocks, each
// reusing the header row, with a continuation marker paragraph between
// chunks.
func chunkTable(width int, rows []blocks.Row, maxRows int) []blocks.Block {
	if len(rows) <= maxRows {
		return []blocks.Block{blocks.Table{Width: width, Rows: rows}}
	}

	header := rows[0]
	data := rows[1:]
	chunkSize := maxRows - 1

	var out []blocks.Block
	for start := 0; start < len(data); start += chunkSize {
		end := min(start+chunkSize, len(data))
		chunk := append([]blocks.Row{header}, data[start:end]...)
		out = append(out, blocks.Table{Width: width, Rows: chunk})
		if end < len(data) {
			marker := fmt.Sprintf("(Table continued - part %d)", start/chunkSize+2)
			out = append(out, blocks.Paragraph{Runs: blocks.Plain(marker)})
		}
	}
	return out
}
