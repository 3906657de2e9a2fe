package distill

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-notes/internal/clips"
)

// Section groups the clips extracted from one note.
type Section struct {
	SourceSlug  string       `json:"sourceSlug"`
	SourceTitle string       `json:"sourceTitle"`
	Clips       []clips.Clip `json:"clips"`
}

// Bundle aggregates clips across notes, one Section per note in input order.
// Notes without clips keep their Section.
type Bundle struct {
	TotalNotes int       `json:"totalNotes"`
	TotalClips int       `json:"totalClips"`
	Sections   []Section `json:"sections"`
}

// Clips flattens the bundle into a single clip stream.
func (b Bundle) Clips() []clips.Clip {
	out := make([]clips.Clip, 0, b.TotalClips)
	for _, section := range b.Sections {
		out = append(out, section.Clips...)
	}
	return out
}

// BodyFunc returns the Markdown body of a note. An empty body is valid and
// yields no clips.
type BodyFunc func(ctx context.Context, slug string) (string, error)

// TitleFunc returns the display title of a note.
type TitleFunc func(slug string) string

// BuildBundle extracts clips from every slug in order. A nil title func
// falls back to the last slug segment. Body errors abort the build and are
// returned wrapped with the slug.
func BuildBundle(ctx context.Context, slugs []string, body BodyFunc, title TitleFunc) (Bundle, error) {
	if title == nil {
		title = LastSegmentTitle
	}

	bundle := Bundle{
		TotalNotes: len(slugs),
		Sections:   make([]Section, 0, len(slugs)),
	}
	for _, slug := range slugs {
		if err := ctx.Err(); err != nil {
			return Bundle{}, err
		}

		var text string
		if body != nil {
			var err error
			text, err = body(ctx, slug)
			if err != nil {
				return Bundle{}, fmt.Errorf("distill: body for %s: %w", slug, err)
			}
		}

		bundle.Sections = append(bundle.Sections, extractSection(slug, title(slug), text))
		bundle.TotalClips += len(bundle.Sections[len(bundle.Sections)-1].Clips)
	}
	return bundle, nil
}

func extractSection(slug, title, body string) Section {
	found := clips.Extract(clips.Source{Body: body, Slug: slug, Title: title})
	if found == nil {
		found = []clips.Clip{}
	}
	return Section{SourceSlug: slug, SourceTitle: title, Clips: found}
}

// LastSegmentTitle returns the final path segment of slug, or "Untitled".
func LastSegmentTitle(slug string) string {
	slug = strings.TrimRight(slug, "/")
	if i := strings.LastIndexByte(slug, '/'); i >= 0 {
		slug = slug[i+1:]
	}
	if slug == "" {
		return "Untitled"
	}
	return slug
}
