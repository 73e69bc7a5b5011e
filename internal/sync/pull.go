package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/jomei/notionapi"
	"github.com/takak2166/notionsync/internal/blocks"
	"github.com/takak2166/notionsync/internal/logger"
	"github.com/takak2166/notionsync/internal/markdown"
	"github.com/takak2166/notionsync/internal/pageid"
)

// PullResult summarizes one page download.
type PullResult struct {
	PageID string
	Title  string
	Blocks int
	Path   string
}

// Pull downloads a Notion page and writes it as a markdown document with a
// metadata envelope, so a later push can target the same page.
func (s *Syncer) Pull(ctx context.Context, pageID, outPath string) (*PullResult, error) {
	pageID = pageid.Normalize(pageID)

	page, err := s.client.GetPage(ctx, pageID)
	if err != nil {
		return nil, err
	}

	children, err := s.client.ListChildren(ctx, page.ID)
	if err != nil {
		return nil, err
	}
	if err := s.fetchTableRows(ctx, children); err != nil {
		return nil, err
	}

	decoded := blocks.FromAPI(children)
	body := markdown.Decode(decoded)

	fm := markdown.NewFrontmatter()
	fm.Set(markdown.KeyPageID, page.ID)
	fm.Set(markdown.KeyURL, page.URL)
	fm.Set(markdown.KeyTitle, page.Title)
	fm.Set(markdown.KeyCreated, page.Created.Format(time.RFC3339))
	fm.Set(markdown.KeyUpdated, page.Updated.Format(time.RFC3339))
	fm.Set(markdown.KeyDownloaded, time.Now().Format(time.RFC3339))

	if err := writeFileAtomic(outPath, []byte(fm.Join(body))); err != nil {
		return nil, fmt.Errorf("failed to write markdown file: %w", err)
	}

	logger.Info("Downloaded Notion page", map[string]interface{}{
		"page_id": page.ID,
		"title":   page.Title,
		"blocks":  len(decoded),
		"path":    outPath,
	})
	return &PullResult{
		PageID: page.ID,
		Title:  page.Title,
		Blocks: len(decoded),
		Path:   outPath,
	}, nil
}

// fetchTableRows fills in table rows, which the listing returns one level
// below the table block itself.
func (s *Syncer) fetchTableRows(ctx context.Context, children notionapi.Blocks) error {
	for _, block := range children {
		tb, ok := block.(*notionapi.TableBlock)
		if !ok || !tb.HasChildren {
			continue
		}
		rows, err := s.client.ListChildren(ctx, string(tb.ID))
		if err != nil {
			return fmt.Errorf("failed to fetch table rows: %w", err)
		}
		tb.Table.Children = rows
	}
	return nil
}
