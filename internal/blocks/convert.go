package blocks

import (
	"github.com/jomei/notionapi"
)

// ToAPI converts typed blocks to their notionapi wire form, preserving order.
func ToAPI(bs []Block) []notionapi.Block {
	out := make([]notionapi.Block, 0, len(bs))
	for _, b := range bs {
		if api := toAPIBlock(b); api != nil {
			out = append(out, api)
		}
	}
	return out
}

func toAPIBlock(b Block) notionapi.Block {
	switch v := b.(type) {
	case Heading:
		return headingToAPI(v)
	case Paragraph:
		return &notionapi.ParagraphBlock{
			BasicBlock: basic(notionapi.BlockTypeParagraph),
			Paragraph: notionapi.Paragraph{
				RichText: runsToAPI(v.Runs),
			},
		}
	case Bullet:
		return &notionapi.BulletedListItemBlock{
			BasicBlock: basic(notionapi.BlockTypeBulletedListItem),
			BulletedListItem: notionapi.ListItem{
				RichText: runsToAPI(v.Runs),
			},
		}
	case Numbered:
		return &notionapi.NumberedListItemBlock{
			BasicBlock: basic(notionapi.BlockTypeNumberedListItem),
			NumberedListItem: notionapi.ListItem{
				RichText: runsToAPI(v.Runs),
			},
		}
	case Todo:
		return &notionapi.ToDoBlock{
			BasicBlock: basic(notionapi.BlockTypeToDo),
			ToDo: notionapi.ToDo{
				RichText: runsToAPI(v.Runs),
				Checked:  v.Checked,
			},
		}
	case Quote:
		return &notionapi.QuoteBlock{
			BasicBlock: basic(notionapi.BlockTypeQuote),
			Quote: notionapi.Quote{
				RichText: runsToAPI(v.Runs),
			},
		}
	case Divider:
		return &notionapi.DividerBlock{
			BasicBlock: basic(notionapi.BlockTypeDivider),
			Divider:    notionapi.Divider{},
		}
	case Code:
		return &notionapi.CodeBlock{
			BasicBlock: basic(notionapi.BlockTypeCode),
			Code: notionapi.Code{
				RichText: []notionapi.RichText{{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{Content: v.Text},
				}},
				Language: v.Language,
			},
		}
	case Table:
		return tableToAPI(v)
	default:
		// Decode-only variants have no wire form on the write path.
		return nil
	}
}

func basic(t notionapi.BlockType) notionapi.BasicBlock {
	return notionapi.BasicBlock{
		Object: notionapi.ObjectTypeBlock,
		Type:   t,
	}
}

func headingToAPI(h Heading) notionapi.Block {
	heading := notionapi.Heading{RichText: runsToAPI(h.Runs)}
	switch h.Level {
	case 1:
		return &notionapi.Heading1Block{
			BasicBlock: basic(notionapi.BlockTypeHeading1),
			Heading1:   heading,
		}
	case 2:
		return &notionapi.Heading2Block{
			BasicBlock: basic(notionapi.BlockTypeHeading2),
			Heading2:   heading,
		}
	default:
		return &notionapi.Heading3Block{
			BasicBlock: basic(notionapi.BlockTypeHeading3),
			Heading3:   heading,
		}
	}
}

func tableToAPI(t Table) notionapi.Block {
	children := make(notionapi.Blocks, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([][]notionapi.RichText, 0, len(row))
		for _, cell := range row {
			cells = append(cells, runsToAPI(cell))
		}
		children = append(children, &notionapi.TableRowBlock{
			BasicBlock: basic(notionapi.BlockTypeTableRowBlock),
			TableRow:   notionapi.TableRow{Cells: cells},
		})
	}
	return &notionapi.TableBlock{
		BasicBlock: basic(notionapi.BlockTypeTableBlock),
		Table: notionapi.Table{
			TableWidth:      t.Width,
			HasColumnHeader: true,
			Children:        children,
		},
	}
}

func runsToAPI(runs []TextRun) []notionapi.RichText {
	out := make([]notionapi.RichText, 0, len(runs))
	for _, r := range runs {
		rt := notionapi.RichText{
			Type: notionapi.ObjectTypeText,
			Text: &notionapi.Text{Content: r.Content},
		}
		if r.Link != "" {
			rt.Text.Link = &notionapi.Link{Url: r.Link}
		}
		if r.Bold || r.Italic || r.Strikethrough || r.Code {
			rt.Annotations = &notionapi.Annotations{
				Bold:          r.Bold,
				Italic:        r.Italic,
				Strikethrough: r.Strikethrough,
				Code:          r.Code,
			}
		}
		out = append(out, rt)
	}
	return out
}

// FromAPI converts notionapi wire blocks to the typed model. Unrecognized
// block types map to Unknown rather than failing the conversion.
func FromAPI(api notionapi.Blocks) []Block {
	out := make([]Block, 0, len(api))
	for _, b := range api {
		out = append(out, fromAPIBlock(b))
	}
	return out
}

func fromAPIBlock(b notionapi.Block) Block {
	switch v := b.(type) {
	case *notionapi.ParagraphBlock:
		return Paragraph{Runs: runsFromAPI(v.Paragraph.RichText)}
	case *notionapi.Heading1Block:
		return Heading{Level: 1, Runs: runsFromAPI(v.Heading1.RichText)}
	case *notionapi.Heading2Block:
		return Heading{Level: 2, Runs: runsFromAPI(v.Heading2.RichText)}
	case *notionapi.Heading3Block:
		return Heading{Level: 3, Runs: runsFromAPI(v.Heading3.RichText)}
	case *notionapi.BulletedListItemBlock:
		return Bullet{Runs: runsFromAPI(v.BulletedListItem.RichText)}
	case *notionapi.NumberedListItemBlock:
		return Numbered{Runs: runsFromAPI(v.NumberedListItem.RichText)}
	case *notionapi.ToDoBlock:
		return Todo{Runs: runsFromAPI(v.ToDo.RichText), Checked: v.ToDo.Checked}
	case *notionapi.CodeBlock:
		return Code{
			Language: v.Code.Language,
			Text:     plainText(v.Code.RichText),
		}
	case *notionapi.QuoteBlock:
		return Quote{Runs: runsFromAPI(v.Quote.RichText)}
	case *notionapi.DividerBlock:
		return Divider{}
	case *notionapi.TableBlock:
		return tableFromAPI(v)
	case *notionapi.ChildPageBlock:
		return ChildPage{ID: string(v.ID), Title: v.ChildPage.Title}
	case *notionapi.LinkToPageBlock:
		return PageLink{ID: string(v.LinkToPage.PageID)}
	case *notionapi.CalloutBlock:
		return Callout{
			Emoji: calloutEmoji(v.Callout.Icon),
			Runs:  runsFromAPI(v.Callout.RichText),
		}
	case *notionapi.ToggleBlock:
		return Toggle{Runs: runsFromAPI(v.Toggle.RichText)}
	default:
		return Unknown{Type: string(b.GetType())}
	}
}

func tableFromAPI(v *notionapi.TableBlock) Block {
	t := Table{Width: v.Table.TableWidth}
	for _, child := range v.Table.Children {
		rowBlock, ok := child.(*notionapi.TableRowBlock)
		if !ok {
			continue
		}
		row := make(Row, 0, len(rowBlock.TableRow.Cells))
		for _, cell := range rowBlock.TableRow.Cells {
			row = append(row, runsFromAPI(cell))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func calloutEmoji(icon *notionapi.Icon) string {
	if icon != nil && icon.Type == "emoji" && icon.Emoji != nil {
		return string(*icon.Emoji)
	}
	return ""
}

func runsFromAPI(rich []notionapi.RichText) []TextRun {
	out := make([]TextRun, 0, len(rich))
	for _, rt := range rich {
		run := TextRun{Content: richContent(rt)}
		if rt.Text != nil && rt.Text.Link != nil {
			run.Link = rt.Text.Link.Url
		}
		if a := rt.Annotations; a != nil {
			run.Bold = a.Bold
			run.Italic = a.Italic
			run.Strikethrough = a.Strikethrough
			run.Code = a.Code
		}
		out = append(out, run)
	}
	return out
}

// richContent prefers the text payload; mentions and equations only carry
// plain text.
func richContent(rt notionapi.RichText) string {
	if rt.Text != nil {
		return rt.Text.Content
	}
	return rt.PlainText
}

func plainText(rich []notionapi.RichText) string {
	var s string
	for _, rt := range rich {
		s += richContent(rt)
	}
	return s
}
