package sync

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkPush(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "one.md", "# One\n")
	writeDoc(t, dir, "two.md", "# Two\n")
	writeDoc(t, dir, "sub/three.md", "# Three\n")
	// Already uploaded: skipped.
	writeDoc(t, dir, "done.md", "---\nnotion_page_id: existing\n---\n\ndone\n")
	// Excluded directory: never visited.
	writeDoc(t, dir, "node_modules/dep.md", "# Dep\n")
	// Not markdown, and empty: both ignored.
	writeDoc(t, dir, "notes.txt", "text\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.md"), nil, 0644))

	fake := newFakeTransport()
	syncer := newTestSyncer(fake)

	result, err := syncer.BulkPush(context.Background(), "parent-1", dir)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Uploaded)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Failed)
	assert.ElementsMatch(t, []string{"one", "two", "three"}, fake.created)
}

func TestBulkPushIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "good.md", "# Good\n")
	writeDoc(t, dir, "bad.md", "# Bad\n")

	fake := newFakeTransport()
	fake.failTitles["bad"] = true
	syncer := newTestSyncer(fake)

	result, err := syncer.BulkPush(context.Background(), "parent-1", dir)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Uploaded)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []string{"good"}, fake.created)
}

func TestBulkPushRejectsNonDirectory(t *testing.T) {
	dir := t.TempDir()
	file := writeDoc(t, dir, "file.md", "x\n")

	syncer := newTestSyncer(newFakeTransport())

	_, err := syncer.BulkPush(context.Background(), "parent-1", file)
	assert.Error(t, err)

	_, err = syncer.BulkPush(context.Background(), "parent-1", filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
