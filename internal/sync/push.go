package sync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jomei/notionapi"
	"github.com/takak2166/notionsync/internal/blocks"
	"github.com/takak2166/notionsync/internal/logger"
	"github.com/takak2166/notionsync/internal/markdown"
	"github.com/takak2166/notionsync/internal/pageid"
)

// PushOptions selects between creating a new page and updating the one
// recorded in the document's envelope.
type PushOptions struct {
	// ParentID is the parent page for create mode. The envelope's
	// notion_parent_id is used when empty.
	ParentID string
	// Update reuses the envelope's notion_page_id instead of creating.
	Update bool
	// Force, with Update, deletes protected child blocks too.
	Force bool
}

// PushResult summarizes one document upload.
type PushResult struct {
	PageID    string
	PageURL   string
	Title     string
	Blocks    int
	Deleted   int
	Preserved int
	Created   bool
}

// Push uploads one markdown file to Notion. In create mode the assigned
// identity is written back into the file's envelope before blocks are
// uploaded, so a re-run never creates a duplicate.
func (s *Syncer) Push(ctx context.Context, path string, opts PushOptions) (*PushResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	fm, body := markdown.Split(string(data))
	title := documentTitle(fm, path)

	table := BuildLinkTable(path)
	encoded := markdown.Encode(body, table, markdown.EncodeOptions{
		MaxTextLength: s.cfg.API.MaxTextLength,
	})
	children := blocks.ToAPI(encoded)
	logger.Info("Converted markdown to blocks", map[string]interface{}{
		"file":   path,
		"blocks": len(children),
	})

	if opts.Update {
		return s.pushUpdate(ctx, fm, title, children, opts.Force)
	}
	return s.pushCreate(ctx, fm, body, path, title, children, opts.ParentID)
}

func (s *Syncer) pushUpdate(ctx context.Context, fm *markdown.Frontmatter, title string, children []notionapi.Block, force bool) (*PushResult, error) {
	pageID := fm.Get(markdown.KeyPageID)
	if pageID == "" {
		return nil, fmt.Errorf("update requires %s in frontmatter", markdown.KeyPageID)
	}

	deleted, preserved, err := s.client.DeleteChildren(ctx, pageID, !force)
	if err != nil {
		return nil, err
	}
	logger.Info("Deleted existing blocks", map[string]interface{}{
		"deleted":   deleted,
		"preserved": preserved,
	})

	uploaded, err := s.client.AppendChildren(ctx, pageID, children)
	if err != nil {
		return nil, err
	}

	url := fm.Get(markdown.KeyURL)
	if url == "" {
		url = "https://notion.so/" + pageID
	}
	return &PushResult{
		PageID:    pageID,
		PageURL:   url,
		Title:     title,
		Blocks:    uploaded,
		Deleted:   deleted,
		Preserved: preserved,
	}, nil
}

func (s *Syncer) pushCreate(ctx context.Context, fm *markdown.Frontmatter, body, path, title string, children []notionapi.Block, parentID string) (*PushResult, error) {
	if parentID == "" {
		parentID = fm.Get(markdown.KeyParentID)
	}
	if parentID == "" {
		return nil, fmt.Errorf("parent page ID is required to create a page")
	}
	parentID = pageid.Normalize(parentID)

	page, err := s.client.CreatePage(ctx, parentID, title)
	if err != nil {
		return nil, err
	}

	// Record the identity before uploading blocks: a failure past this point
	// must not lead to a duplicate page on the next run.
	fm.Set(markdown.KeyPageID, page.ID)
	fm.Set(markdown.KeyURL, page.URL)
	fm.Set(markdown.KeyTitle, title)
	fm.Set(markdown.KeyUploaded, time.Now().Format(time.RFC3339))
	if err := writeFileAtomic(path, []byte(fm.Join(body))); err != nil {
		return nil, fmt.Errorf("failed to record page identity: %w", err)
	}

	uploaded, err := s.client.AppendChildren(ctx, page.ID, children)
	if err != nil {
		return nil, err
	}
	return &PushResult{
		PageID:  page.ID,
		PageURL: page.URL,
		Title:   title,
		Blocks:  uploaded,
		Created: true,
	}, nil
}

// commonStems are filenames so generic that the parent directory is folded
// into the page title for uniqueness.
var commonStems = map[string]bool{
	"README": true, "readme": true,
	"INDEX": true, "index": true,
	"todos": true, "TODOS": true,
}

func documentTitle(fm *markdown.Frontmatter, path string) string {
	if t := fm.Get(markdown.KeyTitle); t != "" {
		return t
	}
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if commonStems[stem] {
		return filepath.Base(filepath.Dir(path)) + "/" + stem
	}
	return stem
}
