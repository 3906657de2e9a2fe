package distill

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-notes/internal/clips"
)

// ErrUnknownMode is returned by Render and ParseMode for unsupported modes.
var ErrUnknownMode = errors.New("distill: unknown mode")

// Mode selects a projection of a clip stream.
type Mode string

const (
	ModeStream Mode = "stream"
	ModeScript Mode = "script"
	ModeSlides Mode = "slides"
	ModeEssay  Mode = "essay"
)

// Modes lists every supported mode.
func Modes() []Mode {
	return []Mode{ModeStream, ModeScript, ModeSlides, ModeEssay}
}

// ParseMode maps a case-insensitive name onto a Mode. The empty string is
// the stream mode.
func ParseMode(value string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(value)))
	switch mode {
	case "":
		return ModeStream, nil
	case ModeStream, ModeScript, ModeSlides, ModeEssay:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, value)
	}
}

const (
	// Beat separates script paragraphs and is the title of continuation
	// slides.
	Beat = "—"

	slideMaxChars   = 220
	slideTitleChars = 48
	defaultSlide    = "Slide"
)

// ScriptKind tags a script block.
type ScriptKind string

const (
	ScriptLine    ScriptKind = "line"
	ScriptBeat    ScriptKind = "beat"
	ScriptCallout ScriptKind = "callout"
)

// EssayKind tags an essay block.
type EssayKind string

const (
	EssayParagraph EssayKind = "p"
	EssayAside     EssayKind = "aside"
)

// Meta carries the origin of a rendered block.
type Meta struct {
	Type        clips.Type `json:"type"`
	SourceTitle string     `json:"sourceTitle"`
	SourceSlug  string     `json:"sourceSlug"`
}

// ScriptBlock is one teleprompter line, callout or beat.
type ScriptBlock struct {
	Kind ScriptKind `json:"kind"`
	Text string     `json:"text"`
	Meta *Meta      `json:"meta,omitempty"`
}

// Slide is one chunk of a clip sized for a slide.
type Slide struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Meta  *Meta  `json:"meta,omitempty"`
}

// EssayBlock is one paragraph of an essay draft.
type EssayBlock struct {
	Kind EssayKind `json:"kind"`
	Text string    `json:"text"`
}

// Projection is the result of Render. Only the field matching Mode is set.
type Projection struct {
	Mode   Mode          `json:"mode"`
	Clips  []clips.Clip  `json:"clips,omitempty"`
	Script []ScriptBlock `json:"script,omitempty"`
	Slides []Slide       `json:"slides,omitempty"`
	Essay  []EssayBlock  `json:"essay,omitempty"`
}

// Render projects items into mode.
func Render(mode Mode, items []clips.Clip) (Projection, error) {
	switch mode {
	case ModeStream:
		return Projection{Mode: mode, Clips: items}, nil
	case ModeScript:
		return Projection{Mode: mode, Script: ToScript(items)}, nil
	case ModeSlides:
		return Projection{Mode: mode, Slides: ToSlides(items)}, nil
	case ModeEssay:
		return Projection{Mode: mode, Essay: ToEssay(items)}, nil
	default:
		return Projection{}, fmt.Errorf("%w: %q", ErrUnknownMode, string(mode))
	}
}

func scriptKind(t clips.Type) ScriptKind {
	if t.IsCallout() {
		return ScriptCallout
	}
	return ScriptLine
}

func essayKind(t clips.Type) EssayKind {
	if t.IsCallout() {
		return EssayAside
	}
	return EssayParagraph
}

func metaOf(c clips.Clip) *Meta {
	return &Meta{Type: c.Type, SourceTitle: c.SourceTitle, SourceSlug: c.SourceSlug}
}

// ToScript emits one block per paragraph followed by a beat. Trailing beats
// are dropped.
func ToScript(items []clips.Clip) []ScriptBlock {
	var blocks []ScriptBlock
	for _, c := range items {
		kind := scriptKind(c.Type)
		for _, p := range paragraphs(cleanText(c.Text)) {
			blocks = append(blocks,
				ScriptBlock{Kind: kind, Text: p, Meta: metaOf(c)},
				ScriptBlock{Kind: ScriptBeat, Text: Beat},
			)
		}
	}
	for len(blocks) > 0 && blocks[len(blocks)-1].Kind == ScriptBeat {
		blocks = blocks[:len(blocks)-1]
	}
	return blocks
}

// ToSlides splits every clip into chunks of at most 220 characters. Only
// the first chunk of a clip gets a derived title.
func ToSlides(items []clips.Clip) []Slide {
	var slides []Slide
	for _, c := range items {
		for i, chunk := range splitForSlides(c.Text, slideMaxChars) {
			title := Beat
			if i == 0 {
				title = softTitle(c.Text)
			}
			slides = append(slides, Slide{Title: title, Body: chunk, Meta: metaOf(c)})
		}
	}
	return slides
}

// ToEssay emits one block per paragraph: quotes become paragraphs and
// callouts become asides.
func ToEssay(items []clips.Clip) []EssayBlock {
	var blocks []EssayBlock
	for _, c := range items {
		kind := essayKind(c.Type)
		for _, p := range paragraphs(cleanText(c.Text)) {
			blocks = append(blocks, EssayBlock{Kind: kind, Text: p})
		}
	}
	return blocks
}

var paragraphBreak = regexp.MustCompile(`\n{2,}`)

func cleanText(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
}

func paragraphs(text string) []string {
	var out []string
	for _, p := range paragraphBreak.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func splitForSlides(text string, maxChars int) []string {
	s := cleanText(text)

	var out []string
	for _, p := range paragraphs(s) {
		if runeLen(p) <= maxChars {
			out = append(out, p)
			continue
		}
		var buf string
		for _, sentence := range splitSentences(p) {
			next := sentence
			if buf != "" {
				next = buf + " " + sentence
			}
			if runeLen(next) > maxChars && buf != "" {
				out = append(out, buf)
				buf = sentence
				continue
			}
			buf = next
		}
		if buf != "" {
			out = append(out, buf)
		}
	}
	if len(out) == 0 {
		return []string{s}
	}
	return out
}

// splitSentences cuts p at every whitespace run that directly follows '.',
// '!' or '?'.
func splitSentences(p string) []string {
	var out []string
	start := 0
	var prev rune
	for i := 0; i < len(p); {
		r, size := utf8.DecodeRuneInString(p[i:])
		if unicode.IsSpace(r) && isSentenceEnd(prev) {
			if sentence := strings.TrimSpace(p[start:i]); sentence != "" {
				out = append(out, sentence)
			}
			for i < len(p) {
				r, size = utf8.DecodeRuneInString(p[i:])
				if !unicode.IsSpace(r) {
					break
				}
				i += size
			}
			start, prev = i, 0
			continue
		}
		prev = r
		i += size
	}
	if sentence := strings.TrimSpace(p[start:]); sentence != "" {
		out = append(out, sentence)
	}
	return out
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

var leadingMarker = regexp.MustCompile(`^[\[\(\{].*?[\]\)\}]` + clips.SpaceClass + `*`)

func softTitle(text string) string {
	var first string
	for _, line := range strings.Split(cleanText(text), "\n") {
		if line != "" {
			first = line
			break
		}
	}
	title := strings.TrimSpace(leadingMarker.ReplaceAllString(first, ""))
	if title == "" {
		return defaultSlide
	}
	if runeLen(title) > slideTitleChars {
		return strings.TrimSpace(string([]rune(title)[:slideTitleChars])) + "…"
	}
	return title
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
