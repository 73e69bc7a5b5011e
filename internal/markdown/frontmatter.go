package markdown

import (
	"strings"
)

const envelopeMarker = "---\n"

// Frontmatter keys written by the sync layer.
const (
	KeyPageID     = "notion_page_id"
	KeyURL        = "notion_url"
	KeyTitle      = "title"
	KeyCreated    = "created"
	KeyUpdated    = "updated"
	KeyUploaded   = "uploaded"
	KeyDownloaded = "downloaded"
	KeyParentID   = "notion_parent_id"
)

// Frontmatter is the metadata envelope at the head of a document: key-value
// pairs between two marker lines. Write order follows first insertion so
// repeated syncs produce minimal diffs.
type Frontmatter struct {
	keys   []string
	values map[string]string
}

// NewFrontmatter returns an empty envelope.
func NewFrontmatter() *Frontmatter {
	return &Frontmatter{values: make(map[string]string)}
}

// Split separates the metadata envelope from the document body. The envelope
// is recognized only at the very start of the document; otherwise the whole
// document is body and the returned envelope is empty.
func Split(content string) (*Frontmatter, string) {
	fm := NewFrontmatter()
	if !strings.HasPrefix(content, envelopeMarker) {
		return fm, content
	}
	parts := strings.SplitN(content, envelopeMarker, 3)
	if len(parts) < 3 {
		return fm, content
	}
	for _, line := range strings.Split(parts[1], "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fm.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return fm, strings.TrimLeft(parts[2], "\n")
}

// Get returns the value for key, or the empty string.
func (f *Frontmatter) Get(key string) string {
	return f.values[key]
}

// Has reports whether key is present.
func (f *Frontmatter) Has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// Set stores a value. A new key is appended; an existing key keeps its
// original position.
func (f *Frontmatter) Set(key, value string) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Len returns the number of keys.
func (f *Frontmatter) Len() int {
	return len(f.keys)
}

// Join renders the envelope followed by the body. An empty envelope returns
// the body unchanged, making Join the exact inverse of Split for values free
// of colons and newlines.
func (f *Frontmatter) Join(body string) string {
	if len(f.keys) == 0 {
		return body
	}
	var b strings.Builder
	b.WriteString(envelopeMarker)
	for _, key := range f.keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(f.values[key])
		b.WriteString("\n")
	}
	b.WriteString(envelopeMarker)
	b.WriteString("\n")
	b.WriteString(body)
	return b.String()
}
