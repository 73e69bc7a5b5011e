package sync

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/takak2166/notionsync/internal/logger"
	"github.com/takak2166/notionsync/internal/markdown"
)

// BulkResult aggregates a directory run.
type BulkResult struct {
	Uploaded int
	Skipped  int
	Failed   int
}

// BulkPush uploads every markdown file under dir that has not already been
// uploaded, creating each as a new page under parentID. Files whose envelope
// already carries a page ID are skipped, and one file's failure does not stop
// the run.
func (s *Syncer) BulkPush(ctx context.Context, parentID, dir string) (*BulkResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	files, err := s.findMarkdownFiles(dir)
	if err != nil {
		return nil, err
	}
	logger.Info("Starting bulk upload", map[string]interface{}{
		"directory": dir,
		"files":     len(files),
	})

	result := &BulkResult{}
	for i, path := range files {
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		logger.Info(fmt.Sprintf("[%d/%d] %s", i+1, len(files), rel))

		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error("Could not read file", err, map[string]interface{}{
				"file": rel,
			})
			result.Failed++
			continue
		}
		fm, _ := markdown.Split(string(data))
		if fm.Has(markdown.KeyPageID) {
			logger.Info("Already uploaded, skipping", map[string]interface{}{
				"file": rel,
			})
			result.Skipped++
			continue
		}

		if _, err := s.Push(ctx, path, PushOptions{ParentID: parentID}); err != nil {
			logger.Error("Upload failed", err, map[string]interface{}{
				"file": rel,
			})
			result.Failed++
			continue
		}
		result.Uploaded++

		if i < len(files)-1 && s.sleep != nil {
			s.sleep(s.cfg.API.RateLimitDelay())
		}
	}

	logger.Info("Bulk upload finished", map[string]interface{}{
		"uploaded": result.Uploaded,
		"skipped":  result.Skipped,
		"failed":   result.Failed,
	})
	return result, nil
}

// findMarkdownFiles walks dir for non-empty .md files, pruning excluded
// directories, and returns them in a stable sorted order.
func (s *Syncer) findMarkdownFiles(dir string) ([]string, error) {
	excluded := map[string]bool{}
	for _, pattern := range s.cfg.Bulk.ExcludePatterns {
		excluded[pattern] = true
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && excluded[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		if info, err := d.Info(); err == nil && info.Size() == 0 {
			logger.Debug("Skipping empty file", map[string]interface{}{
				"file": path,
			})
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}
	sort.Strings(files)
	return files, nil
}
