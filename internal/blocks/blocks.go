// Package blocks defines the typed block model shared by the markdown
// mappers and the Notion transport. The wire representation (notionapi
// blocks) appears only at the conversion boundary in convert.go.
package blocks

// TextRun is a span of text with uniform formatting and an optional link
// destination. A run with Code set carries no other styling.
type TextRun struct {
	Content       string
	Bold          bool
	Italic        bool
	Strikethrough bool
	Code          bool
	Link          string
}

// Row is one table row: an ordered sequence of cells, each cell an ordered
// sequence of runs.
type Row [][]TextRun

// Block is one structural unit of a document. Exactly one concrete type
// implements it per block kind.
type Block interface {
	isBlock()
}

// Heading is a level 1-3 heading.
type Heading struct {
	Level int
	Runs  []TextRun
}

// Paragraph is a plain text block.
type Paragraph struct {
	Runs []TextRun
}

// Bullet is a bulleted list item.
type Bullet struct {
	Runs []TextRun
}

// Numbered is a numbered list item.
type Numbered struct {
	Runs []TextRun
}

// Todo is a checklist item.
type Todo struct {
	Runs    []TextRun
	Checked bool
}

// Quote is a block quote.
type Quote struct {
	Runs []TextRun
}

// Divider is a horizontal rule.
type Divider struct{}

// Code is a fenced code block. Text is raw, never reinterpreted.
type Code struct {
	Language string
	Text     string
}

// Table is a table block. Width is fixed at creation from the first row;
// every row is padded or truncated to it.
type Table struct {
	Width int
	Rows  []Row
}

// ChildPage references a nested page by its remote identifier. Decode only.
type ChildPage struct {
	ID    string
	Title string
}

// PageLink is a link-to-page reference. Decode only.
type PageLink struct {
	ID string
}

// Callout is a highlighted note with an optional emoji icon. Decode only.
type Callout struct {
	Emoji string
	Runs  []TextRun
}

// Toggle is a collapsible block. Decode only; children are not modeled.
type Toggle struct {
	Runs []TextRun
}

// Unknown stands in for a remote block type the mapper does not recognize.
type Unknown struct {
	Type string
}

func (Heading) isBlock()   {}
func (Paragraph) isBlock() {}
func (Bullet) isBlock()    {}
func (Numbered) isBlock()  {}
func (Todo) isBlock()      {}
func (Quote) isBlock()     {}
func (Divider) isBlock()   {}
func (Code) isBlock()      {}
func (Table) isBlock()     {}
func (ChildPage) isBlock() {}
func (PageLink) isBlock()  {}
func (Callout) isBlock()   {}
func (Toggle) isBlock()    {}
func (Unknown) isBlock()   {}

// Plain builds a single unstyled run, the common case for marker text.
func Plain(content string) []TextRun {
	return []TextRun{{Content: content}}
}
