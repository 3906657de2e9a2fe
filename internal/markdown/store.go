package markdown

import (
	"encoding/hex"
	"sort"

	"github.com/goliatone/go-notes/internal/identity"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

// Store is an immutable set of notes keyed by slug. It satisfies
// interfaces.NoteSource.
type Store struct {
	bySlug  map[string]*interfaces.Note
	ordered []*interfaces.Note
	version string
}

var _ interfaces.NoteSource = (*Store)(nil)

// NewStore indexes notes by slug. Later duplicates replace earlier ones.
func NewStore(notes []*interfaces.Note) *Store {
	bySlug := make(map[string]*interfaces.Note, len(notes))
	for _, note := range notes {
		if note == nil {
			continue
		}
		bySlug[note.Slug] = note
	}

	ordered := make([]*interfaces.Note, 0, len(bySlug))
	for _, note := range bySlug {
		ordered = append(ordered, note)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Slug < ordered[j].Slug
	})

	parts := make([]string, 0, len(ordered))
	for _, note := range ordered {
		parts = append(parts, note.Slug+":"+hex.EncodeToString(note.Checksum))
	}

	return &Store{
		bySlug:  bySlug,
		ordered: ordered,
		version: identity.VersionUUID("store", parts).String(),
	}
}

// Get returns the note stored under slug.
func (s *Store) Get(slug string) (*interfaces.Note, bool) {
	if s == nil {
		return nil, false
	}
	note, ok := s.bySlug[slug]
	return note, ok
}

// All returns the notes ordered by slug. The slice is a copy.
func (s *Store) All() []*interfaces.Note {
	if s == nil {
		return nil
	}
	return append([]*interfaces.Note(nil), s.ordered...)
}

// Slugs returns every slug in ascending order.
func (s *Store) Slugs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.ordered))
	for i, note := range s.ordered {
		out[i] = note.Slug
	}
	return out
}

// Len reports the number of notes.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ordered)
}

// Version fingerprints the slug and checksum of every note.
func (s *Store) Version() string {
	if s == nil {
		return ""
	}
	return s.version
}
