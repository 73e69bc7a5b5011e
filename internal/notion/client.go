package notion

import (
	"context"
	"fmt"
	"time"

	"github.com/jomei/notionapi"
	"github.com/takak2166/notionsync/internal/config"
	"github.com/takak2166/notionsync/internal/logger"
)

// listPageSize is the page size used when draining paginated listings.
const listPageSize = 100

// protectedBlockTypes are structural blocks that a destructive rewrite must
// not take out: they anchor attached sub-trees.
var protectedBlockTypes = map[notionapi.BlockType]struct{}{
	notionapi.BlockTypeChildPage:     {},
	notionapi.BlockTypeChildDatabase: {},
	notionapi.BlockTypeSyncedBlock:   {},
}

// Client wraps the Notion API client with retries, pagination, batching, and
// inter-request pacing.
type Client struct {
	client    NotionClient
	retry     RetryPolicy
	batchSize int
	pacing    time.Duration
	sleep     func(time.Duration)
}

// PageMeta is the remote identity and metadata of a page.
type PageMeta struct {
	ID      string
	URL     string
	Title   string
	Created time.Time
	Updated time.Time
}

// New creates a Notion client from resolved configuration.
func New(cfg *config.Config) (*Client, error) {
	if cfg.Notion.Token == "" {
		return nil, fmt.Errorf("notion token is not configured")
	}

	api := notionapi.NewClient(
		notionapi.Token(cfg.Notion.Token),
		notionapi.WithVersion(cfg.Notion.APIVersion),
	)
	return &Client{
		client: newNotionClientAdapter(api),
		retry: RetryPolicy{
			MaxAttempts: cfg.API.RetryAttempts,
			Delay:       cfg.API.RetryDelay(),
		},
		batchSize: cfg.API.MaxBlocksPerRequest,
		pacing:    cfg.API.RateLimitDelay(),
		sleep:     time.Sleep,
	}, nil
}

// CreatePage creates a new page under the given parent and returns its
// assigned identity.
func (c *Client) CreatePage(ctx context.Context, parentID, title string) (*PageMeta, error) {
	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:   notionapi.ParentTypePageID,
			PageID: notionapi.PageID(parentID),
		},
		Properties: notionapi.Properties{
			"title": notionapi.TitleProperty{
				Title: []notionapi.RichText{
					{
						Text: &notionapi.Text{
							Content: title,
						},
					},
				},
			},
		},
	}

	var page *notionapi.Page
	err := c.retry.Do("create page", func() error {
		var err error
		page, err = c.client.Page().Create(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Created Notion page", map[string]interface{}{
		"page_id": string(page.ID),
		"title":   title,
	})
	return pageMeta(page), nil
}

// GetPage fetches a page's metadata.
func (c *Client) GetPage(ctx context.Context, pageID string) (*PageMeta, error) {
	var page *notionapi.Page
	err := c.retry.Do("get page", func() error {
		var err error
		page, err = c.client.Page().Get(ctx, notionapi.PageID(pageID))
		return err
	})
	if err != nil {
		return nil, err
	}
	return pageMeta(page), nil
}

// ListChildren drains a block's child listing by following the continuation
// cursor, pacing between pages.
func (c *Client) ListChildren(ctx context.Context, blockID string) (notionapi.Blocks, error) {
	var all notionapi.Blocks
	var cursor notionapi.Cursor

	for {
		pagination := &notionapi.Pagination{
			StartCursor: cursor,
			PageSize:    listPageSize,
		}
		var resp *notionapi.GetChildrenResponse
		err := c.retry.Do("list blocks", func() error {
			var err error
			resp, err = c.client.Block().GetChildren(ctx, notionapi.BlockID(blockID), pagination)
			return err
		})
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Results...)
		if !resp.HasMore {
			break
		}
		cursor = notionapi.Cursor(resp.NextCursor)
		c.pause()
	}
	return all, nil
}

// AppendChildren uploads blocks in order, split into sequential batches
// under the per-request cap, pacing between batches but not after the last.
// Returns the number of blocks the service confirmed.
func (c *Client) AppendChildren(ctx context.Context, pageID string, children []notionapi.Block) (int, error) {
	batchSize := c.batchSize
	if batchSize < 1 {
		batchSize = 100
	}

	total := 0
	for start := 0; start < len(children); start += batchSize {
		end := min(start+batchSize, len(children))
		batch := children[start:end]

		var resp *notionapi.AppendBlockChildrenResponse
		err := c.retry.Do("append blocks", func() error {
			var err error
			resp, err = c.client.Block().AppendChildren(ctx, notionapi.BlockID(pageID), &notionapi.AppendBlockChildrenRequest{
				Children: batch,
			})
			return err
		})
		if err != nil {
			return total, err
		}
		total += len(resp.Results)
		logger.Info("Uploaded block batch", map[string]interface{}{
			"batch":  start/batchSize + 1,
			"blocks": len(resp.Results),
		})

		if end < len(children) {
			c.pause()
		}
	}
	return total, nil
}

// DeleteChildren removes a page's existing child blocks one by one. With
// preserve set, protected structural types are skipped and counted instead
// of deleted. A block the service refuses to delete is logged and skipped.
func (c *Client) DeleteChildren(ctx context.Context, pageID string, preserve bool) (int, int, error) {
	existing, err := c.ListChildren(ctx, pageID)
	if err != nil {
		return 0, 0, err
	}

	deleted, preserved := 0, 0
	for _, block := range existing {
		blockType := block.GetType()
		if preserve {
			if _, ok := protectedBlockTypes[blockType]; ok {
				logger.Info("Preserving protected block", map[string]interface{}{
					"type": string(blockType),
				})
				preserved++
				continue
			}
		}

		id := block.GetID()
		err := c.retry.Do("delete block", func() error {
			_, err := c.client.Block().Delete(ctx, id)
			return err
		})
		if err != nil {
			logger.Warn("Could not delete block", map[string]interface{}{
				"block_id": string(id),
				"error":    err.Error(),
			})
			continue
		}
		deleted++
		c.pause()
	}
	return deleted, preserved, nil
}

func (c *Client) pause() {
	if c.pacing > 0 && c.sleep != nil {
		c.sleep(c.pacing)
	}
}

func pageMeta(page *notionapi.Page) *PageMeta {
	return &PageMeta{
		ID:      string(page.ID),
		URL:     page.URL,
		Title:   pageTitle(page),
		Created: page.CreatedTime,
		Updated: page.LastEditedTime,
	}
}

// pageTitle extracts the title property. Pages decoded from the wire carry
// pointer property values; hand-built ones in tests may not.
func pageTitle(page *notionapi.Page) string {
	for _, prop := range page.Properties {
		switch p := prop.(type) {
		case *notionapi.TitleProperty:
			return richPlain(p.Title)
		case notionapi.TitleProperty:
			return richPlain(p.Title)
		}
	}
	return "Untitled"
}

func richPlain(rich []notionapi.RichText) string {
	var s string
	for _, rt := range rich {
		if rt.Text != nil {
			s += rt.Text.Content
		} else {
			s += rt.PlainText
		}
	}
	return s
}
