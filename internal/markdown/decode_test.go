package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/takak2166/notionsync/internal/blocks"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   []blocks.Block
		want string
	}{
		{
			name: "Headings",
			in: []blocks.Block{
				blocks.Heading{Level: 1, Runs: blocks.Plain("One")},
				blocks.Heading{Level: 3, Runs: blocks.Plain("Three")},
			},
			want: "# One\n\n### Three",
		},
		{
			name: "Lists",
			in: []blocks.Block{
				blocks.Bullet{Runs: blocks.Plain("item")},
				blocks.Numbered{Runs: blocks.Plain("step")},
				blocks.Todo{Runs: blocks.Plain("open")},
				blocks.Todo{Runs: blocks.Plain("done"), Checked: true},
			},
			want: "- item\n\n1. step\n\n- [ ] open\n\n- [x] done",
		},
		{
			name: "Quote and divider",
			in: []blocks.Block{
				blocks.Quote{Runs: blocks.Plain("wise words")},
				blocks.Divider{},
			},
			want: "> wise words\n\n---",
		},
		{
			name: "Code block",
			in: []blocks.Block{
				blocks.Code{Language: "go", Text: "func main() {}"},
			},
			want: "```go\nfunc main() {}\n```",
		},
		{
			name: "Styled runs",
			in: []blocks.Block{
				blocks.Paragraph{Runs: []blocks.TextRun{
					{Content: "see "},
					{Content: "bold", Bold: true},
					{Content: " and "},
					{Content: "docs", Link: "https://example.com"},
				}},
			},
			want: "see **bold** and [docs](https://example.com)",
		},
		{
			name: "Table gets a synthesized separator",
			in: []blocks.Block{
				blocks.Table{Width: 2, Rows: []blocks.Row{
					{blocks.Plain("Name"), blocks.Plain("Age")},
					{blocks.Plain("Ann"), blocks.Plain("30")},
				}},
			},
			want: "| Name | Age |\n| --- | --- |\n| Ann | 30 |",
		},
		{
			name: "Child page reference",
			in: []blocks.Block{
				blocks.ChildPage{ID: "p1", Title: "Sub Page"},
			},
			want: "→ [[Sub Page]]",
		},
		{
			name: "Page link resolves sibling child page title",
			in: []blocks.Block{
				blocks.ChildPage{ID: "p1", Title: "Sub Page"},
				blocks.PageLink{ID: "p1"},
			},
			want: "→ [[Sub Page]]\n\n→ [[Sub Page]]",
		},
		{
			name: "Page link without known title",
			in: []blocks.Block{
				blocks.PageLink{ID: "deadbeef"},
			},
			want: "→ [Linked Page](deadbeef)",
		},
		{
			name: "Callout with default emoji",
			in: []blocks.Block{
				blocks.Callout{Runs: blocks.Plain("note this")},
			},
			want: "> 💡 note this",
		},
		{
			name: "Unknown type renders a placeholder",
			in: []blocks.Block{
				blocks.Unknown{Type: "embed"},
			},
			want: "<!-- Unsupported block type: embed -->",
		},
		{
			name: "Empty input",
			in:   nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.in))
		})
	}
}

// Encoding then decoding a body built only from supported constructs must
// reproduce it, modulo blank-line normalization.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	body := "# Title\n\n" +
		"A paragraph with **bold** and *italic* text.\n\n" +
		"- first\n\n- second\n\n" +
		"1. step one\n\n" +
		"- [x] finished\n\n" +
		"> a quote\n\n" +
		"---\n\n" +
		"```go\nfmt.Println(\"hi\")\n```\n\n" +
		"| A | B |\n| --- | --- |\n| 1 | 2 |"

	decoded := Decode(Encode(body, nil, EncodeOptions{}))
	assert.Equal(t, body, decoded)
}
