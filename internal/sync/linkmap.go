package sync

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/takak2166/notionsync/internal/logger"
	"github.com/takak2166/notionsync/internal/markdown"
)

// LinkTable maps relative markdown paths, and their bare filenames, to
// resolved Notion URLs. It is built once per push and consulted by the
// inline formatter when resolving relative links.
type LinkTable map[string]string

// Lookup implements markdown.Resolver.
func (t LinkTable) Lookup(dest string) (string, bool) {
	url, ok := t[dest]
	return url, ok
}

// BuildLinkTable scans the source file's directory tree for markdown files
// whose envelope carries a page ID. Both the path relative to the source
// directory and the bare filename are stored, so links like
// `reference/GLOSSARY.md` and `GLOSSARY.md` resolve alike. Unreadable files
// are skipped.
func BuildLinkTable(sourcePath string) LinkTable {
	table := LinkTable{}
	root := filepath.Dir(sourcePath)

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		fm, _ := markdown.Split(string(data))
		id := fm.Get(markdown.KeyPageID)
		if id == "" {
			return nil
		}

		url := "https://www.notion.so/" + strings.ReplaceAll(id, "-", "")
		if rel, err := filepath.Rel(root, path); err == nil {
			table[filepath.ToSlash(rel)] = url
		}
		table[d.Name()] = url
		return nil
	})

	if len(table) > 0 {
		logger.Debug("Built link table", map[string]interface{}{
			"entries": len(table),
			"root":    root,
		})
	}
	return table
}
