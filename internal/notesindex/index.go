// Package notesindex builds and reads the recency index: a JSON object
// mapping each note slug to its last modification time in epoch
// milliseconds.
package notesindex

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/goliatone/go-notes/internal/fsutil"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

// DefaultPath is where the site build historically writes the index,
// relative to the project root.
const DefaultPath = "src/content/notes.index.json"

// Entry is the value stored per slug.
type Entry struct {
	MtimeMs float64 `json:"mtimeMs"`
	Title   string  `json:"title,omitempty"`
}

// Index maps slugs to entries. The zero value is an empty index.
type Index map[string]Entry

// Row is one flattened index entry.
type Row struct {
	Slug    string
	MtimeMs float64
	Title   string
}

var noteExtensions = map[string]struct{}{".md": {}, ".mdx": {}}

// IsNoteFile reports whether name carries a .md or .mdx extension, ignoring
// case.
func IsNoteFile(name string) bool {
	_, ok := noteExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// SlugFromFile turns a path relative to the content root into a slug.
func SlugFromFile(rel string) string {
	rel = filepath.ToSlash(rel)
	return rel[:len(rel)-len(filepath.Ext(rel))]
}

// Build walks root on fs and records every note file.
func Build(ctx context.Context, fs afero.Fs, root string) (Index, error) {
	idx := Index{}
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() || !IsNoteFile(info.Name()) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("notesindex: relative path for %s: %w", path, err)
		}
		idx[SlugFromFile(rel)] = Entry{MtimeMs: toMillis(info.ModTime())}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("notesindex: walk %s: %w", root, err)
	}
	return idx, nil
}

// FromNotes derives an index from loaded notes, keeping frontmatter titles.
func FromNotes(notes []*interfaces.Note) Index {
	idx := make(Index, len(notes))
	for _, note := range notes {
		if note == nil {
			continue
		}
		idx[note.Slug] = Entry{MtimeMs: toMillis(note.LastModified), Title: note.Title()}
	}
	return idx
}

// Load reads an index file. A missing file yields an empty index.
func Load(fs afero.Fs, path string) (Index, error) {
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return Index{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("notesindex: read %s: %w", path, err)
	}
	idx := Index{}
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("notesindex: decode %s: %w", path, err)
	}
	return idx, nil
}

// Save writes idx as indented JSON. Keys are sorted.
func Save(fs afero.Fs, path string, idx Index) error {
	if idx == nil {
		idx = Index{}
	}
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("notesindex: encode: %w", err)
	}
	if err := fsutil.WriteFileAtomic(fs, path, append(data, '\n')); err != nil {
		return fmt.Errorf("notesindex: write %s: %w", path, err)
	}
	return nil
}

// MtimeFor returns the modification time recorded for slug, or 0.
func (idx Index) MtimeFor(slug string) float64 {
	return idx[slug].MtimeMs
}

// Rows returns every entry, most recent first.
func (idx Index) Rows() []Row {
	rows := make([]Row, 0, len(idx))
	for slug, entry := range idx {
		rows = append(rows, Row{Slug: slug, MtimeMs: entry.MtimeMs, Title: entry.Title})
	}
	slices.SortFunc(rows, CompareRecent)
	return rows
}

// CompareRecent orders rows by descending modification time, then by slug.
func CompareRecent(a, b Row) int {
	if c := cmp.Compare(b.MtimeMs, a.MtimeMs); c != 0 {
		return c
	}
	return strings.Compare(a.Slug, b.Slug)
}

// Fingerprint lists slug:mtime pairs in slug order, for version hashing.
func (idx Index) Fingerprint() []string {
	slugs := make([]string, 0, len(idx))
	for slug := range idx {
		slugs = append(slugs, slug)
	}
	slices.Sort(slugs)
	parts := make([]string, len(slugs))
	for i, slug := range slugs {
		parts[i] = slug + ":" + strconv.FormatFloat(idx[slug].MtimeMs, 'f', -1, 64)
	}
	return parts
}

func toMillis(t time.Time) float64 {
	if t.IsZero() {
		return 0
	}
	return float64(t.UnixNano()) / float64(time.Millisecond)
}
