// Package sync orchestrates document-level operations: pushing markdown
// files to Notion, pulling pages back to markdown, and bulk directory runs.
// Each document operation runs to completion before the next begins.
package sync

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/jomei/notionapi"
	"github.com/takak2166/notionsync/internal/config"
	"github.com/takak2166/notionsync/internal/notion"
)

// Transport is the slice of the Notion client the sync layer depends on.
type Transport interface {
	CreatePage(ctx context.Context, parentID, title string) (*notion.PageMeta, error)
	GetPage(ctx context.Context, pageID string) (*notion.PageMeta, error)
	ListChildren(ctx context.Context, blockID string) (notionapi.Blocks, error)
	AppendChildren(ctx context.Context, pageID string, children []notionapi.Block) (int, error)
	DeleteChildren(ctx context.Context, pageID string, preserve bool) (deleted, preserved int, err error)
}

// Syncer drives push/pull/bulk operations against a Transport.
type Syncer struct {
	client Transport
	cfg    *config.Config
	sleep  func(time.Duration)
}

// New creates a Syncer.
func New(client Transport, cfg *config.Config) *Syncer {
	return &Syncer{
		client: client,
		cfg:    cfg,
		sleep:  time.Sleep,
	}
}

// writeFileAtomic writes via a temp file and rename so a document is never
// observed partially written.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".notionsync-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
