package distill

import (
	"context"
	"strings"

	"github.com/goliatone/go-notes/internal/notesindex"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

// NormalizePrefix trims surrounding whitespace and trailing slashes.
func NormalizePrefix(prefix string) string {
	return strings.TrimRight(strings.TrimSpace(prefix), "/")
}

// MatchesPrefix reports whether slug is prefix itself or lives below it. The
// empty prefix matches every slug.
func MatchesPrefix(slug, prefix string) bool {
	if prefix == "" {
		return true
	}
	return slug == prefix || strings.HasPrefix(slug, prefix+"/")
}

// SelectRows returns the index rows under prefix, most recent first.
func SelectRows(index notesindex.Index, prefix string) []notesindex.Row {
	prefix = NormalizePrefix(prefix)
	var rows []notesindex.Row
	for _, row := range index.Rows() {
		if MatchesPrefix(row.Slug, prefix) {
			rows = append(rows, row)
		}
	}
	return rows
}

// Collect builds a recency-ordered bundle of the notes under prefix. Index
// rows without a matching note in source, and notes with an empty body, are
// skipped. Titles fall back from
// frontmatter to the index title, the last slug segment and "Untitled".
func Collect(ctx context.Context, index notesindex.Index, source interfaces.NoteSource, prefix string) (Bundle, error) {
	rows := SelectRows(index, prefix)

	bundle := Bundle{Sections: make([]Section, 0, len(rows))}
	if source == nil {
		return bundle, nil
	}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return Bundle{}, err
		}
		note, ok := source.Get(row.Slug)
		if !ok || note == nil || note.Body == "" {
			continue
		}
		section := extractSection(note.Slug, resolveTitle(note, row.Title), note.Body)
		bundle.Sections = append(bundle.Sections, section)
		bundle.TotalClips += len(section.Clips)
	}
	bundle.TotalNotes = len(bundle.Sections)
	return bundle, nil
}

func resolveTitle(note *interfaces.Note, indexTitle string) string {
	if title := strings.TrimSpace(note.Title()); title != "" {
		return title
	}
	if title := strings.TrimSpace(indexTitle); title != "" {
		return title
	}
	return LastSegmentTitle(note.Slug)
}
