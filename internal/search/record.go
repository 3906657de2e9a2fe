package search

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-notes/pkg/interfaces"
)

// Record is one entry of the search index.
type Record struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

var titleSeparators = regexp.MustCompile(`[-_]+`)

// TitleFromSlug humanises the last slug segment and capitalises its first
// letter.
func TitleFromSlug(slug string) string {
	last := slug
	if i := strings.LastIndexByte(slug, '/'); i >= 0 {
		last = slug[i+1:]
	}
	withSpaces := titleSeparators.ReplaceAllString(last, " ")
	if withSpaces == "" {
		return withSpaces
	}
	first, size := utf8.DecodeRuneInString(withSpaces)
	return string(unicode.ToUpper(first)) + withSpaces[size:]
}

// BuildRecords converts notes into records in the order given. maxChars <= 0
// uses DefaultMaxContentChars.
func BuildRecords(notes []*interfaces.Note, maxChars int) []Record {
	if maxChars <= 0 {
		maxChars = DefaultMaxContentChars
	}
	records := make([]Record, 0, len(notes))
	for _, note := range notes {
		if note == nil {
			continue
		}
		title := strings.TrimSpace(note.Title())
		if title == "" {
			title = TitleFromSlug(note.Slug)
		}
		records = append(records, Record{
			Slug:    note.Slug,
			Title:   title,
			Content: truncate(StripMarkdown(note.Body), maxChars),
		})
	}
	return records
}
