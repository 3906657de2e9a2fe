package clips

import "strings"

// Source describes one document handed to the extractor.
type Source struct {
	Body  string
	Slug  string
	Title string
}

type scanState int

const (
	stateDefault scanState = iota
	stateInQuote
)

// Extract scans a Markdown body and returns its clips in document order.
// Clip IDs are numbered from 1 per call. The same input always yields the
// same output.
func Extract(src Source) []Clip {
	lines := strings.Split(NormalizeLineEndings(src.Body), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, isSpace)
	}

	var (
		clips    []Clip
		headings tracker
		state    = stateDefault
		cursor   int
		count    int
	)

	for cursor < len(lines) {
		switch state {
		case stateDefault:
			line := lines[cursor]
			if headings.observe(line) {
				cursor++
				continue
			}
			if IsBlockquoteLine(line) {
				state = stateInQuote
				continue
			}
			cursor++

		case stateInQuote:
			buffer, next := scanBlockquote(lines, cursor)
			state = stateDefault
			if next == cursor {
				cursor++
				continue
			}
			cursor = next

			typ, text := classify(buffer)
			if text == "" {
				continue
			}
			count++
			clips = append(clips, Clip{
				ID:          MakeID(src.Slug, count),
				Text:        text,
				Type:        typ,
				SourceSlug:  src.Slug,
				SourceTitle: src.Title,
				Section:     headings.section(),
			})
		}
	}

	return clips
}

// classify detects the callout type from the first buffered line and
// returns the normalised clip body.
func classify(buffer []string) (Type, string) {
	if len(buffer) == 0 {
		return TypeQuote, ""
	}
	lines := make([]string, len(buffer))
	copy(lines, buffer)

	typ, cleaned := DetectCallout(lines[0])
	lines[0] = cleaned
	return typ, joinParagraphs(lines)
}
