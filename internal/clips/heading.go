package clips

import (
	"regexp"
	"strings"
)

var headingPattern = regexp.MustCompile(`^(#{1,6})` + SpaceClass + `+(.*)$`)

// IsHeadingLine reports whether the line opens with 1-6 '#' characters
// followed by whitespace.
func IsHeadingLine(line string) bool {
	return headingPattern.MatchString(line)
}

// ParseHeading extracts the section described by a heading line. It returns
// false for non-heading lines and for headings whose text is empty.
func ParseHeading(line string) (Section, bool) {
	m := headingPattern.FindStringSubmatch(line)
	if m == nil {
		return Section{}, false
	}
	text := trimSpace(m[2])
	if text == "" {
		return Section{}, false
	}
	return Section{
		Text:  text,
		Slug:  SlugifyHeading(text),
		Depth: len(m[1]),
	}, true
}

// SlugifyHeading derives the anchor slug of a heading: lowercase, trimmed,
// apostrophes dropped, anything outside [A-Za-z0-9_], whitespace and '-'
// removed, whitespace runs turned into a single hyphen and hyphen runs
// collapsed.
func SlugifyHeading(text string) string {
	text = trimSpace(strings.ToLower(text))

	var b strings.Builder
	b.Grow(len(text))

	pendingSpace := false
	lastHyphen := false
	writeHyphen := func() {
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	for _, r := range text {
		switch {
		case isApostrophe(r):
			continue
		case isSpace(r):
			pendingSpace = true
			continue
		case r == '-':
			pendingSpace = false
			writeHyphen()
			continue
		case isWordRune(r):
			if pendingSpace {
				writeHyphen()
				pendingSpace = false
			}
			b.WriteRune(r)
			lastHyphen = false
		default:
			// dropped; a whitespace run on either side still counts as one run
		}
	}
	if pendingSpace {
		writeHyphen()
	}
	return b.String()
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’' || r == '‘'
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// tracker holds the current section while the extractor scans forward.
type tracker struct {
	current *Section
}

// observe updates the tracked section when line is a valid heading. It
// reports whether the line was a heading line at all, valid or not.
func (t *tracker) observe(line string) bool {
	if !IsHeadingLine(line) {
		return false
	}
	if section, ok := ParseHeading(line); ok {
		t.current = &section
	}
	return true
}

// section returns a copy of the tracked section, or nil before any heading.
func (t *tracker) section() *Section {
	if t.current == nil {
		return nil
	}
	copied := *t.current
	return &copied
}
