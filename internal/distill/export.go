package distill

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-notes/internal/clips"
	"github.com/goliatone/go-notes/internal/validation"
)

// ErrUnknownFormat is returned for unsupported export formats.
var ErrUnknownFormat = errors.New("distill: unknown export format")

// Format selects an export encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat maps a case-insensitive name (or a common file extension) onto
// a Format.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "text", "txt", "script":
		return FormatText, nil
	case "markdown", "md", "essay":
		return FormatMarkdown, nil
	case "json", "slides":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, value)
	}
}

// ContentType is the HTTP media type of the encoded export.
func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension is the file extension used when writing the export.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

const scriptSeparator = "\n\n" + Beat + "\n\n"

// ToScriptText joins the cleaned clip texts with beat separators. Empty texts
// are skipped.
func ToScriptText(items []clips.Clip) string {
	parts := make([]string, 0, len(items))
	for _, c := range items {
		if text := cleanText(c.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, scriptSeparator)
}

// ToEssayMarkdown renders quotes as plain paragraphs and every other clip as
// a Markdown blockquote.
func ToEssayMarkdown(items []clips.Clip) string {
	parts := make([]string, 0, len(items))
	for _, c := range items {
		text := cleanText(c.Text)
		if text == "" {
			continue
		}
		if c.Type.IsCallout() {
			text = "> " + strings.ReplaceAll(text, "\n", "\n> ")
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n")
}

// SlideSource identifies the note a slide payload came from.
type SlideSource struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// SlidePayload is one entry of the slides JSON export. Section encodes as
// null when absent.
type SlidePayload struct {
	Title   string         `json:"title"`
	Body    string         `json:"body"`
	Type    clips.Type     `json:"type"`
	Source  SlideSource    `json:"source"`
	Section *clips.Section `json:"section"`
}

// ToSlidesJSON maps every clip with a non-empty body to a payload titled
// after its note slug.
func ToSlidesJSON(items []clips.Clip) []SlidePayload {
	out := make([]SlidePayload, 0, len(items))
	for _, c := range items {
		body := cleanText(c.Text)
		if body == "" {
			continue
		}
		out = append(out, SlidePayload{
			Title:   titleFromSlug(c.SourceSlug),
			Body:    body,
			Type:    c.Type,
			Source:  SlideSource{Slug: c.SourceSlug, Title: c.SourceTitle},
			Section: c.Section,
		})
	}
	return out
}

func titleFromSlug(slug string) string {
	last := slug
	if i := strings.LastIndexByte(slug, '/'); i >= 0 {
		last = slug[i+1:]
	}
	return strings.ReplaceAll(last, "-", " ")
}

// MarshalSlidesJSON encodes payloads as indented JSON. A nil slice encodes
// as an empty array.
func MarshalSlidesJSON(payloads []SlidePayload) ([]byte, error) {
	if payloads == nil {
		payloads = []SlidePayload{}
	}
	data, err := json.MarshalIndent(payloads, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("distill: encode slides: %w", err)
	}
	return data, nil
}

//go:embed slides.schema.json
var slidesSchemaDocument []byte

var slidesSchema = validation.MustCompile("slides.schema.json", slidesSchemaDocument)

// ValidateSlidesPayload checks payloads against the slides JSON schema.
func ValidateSlidesPayload(payloads []SlidePayload) error {
	if payloads == nil {
		payloads = []SlidePayload{}
	}
	return slidesSchema.ValidateDocument(payloads)
}

// Export encodes items in format. JSON exports are schema-validated when
// validate is set.
func Export(format Format, items []clips.Clip, validate bool) ([]byte, error) {
	switch format {
	case FormatText:
		return []byte(ToScriptText(items)), nil
	case FormatMarkdown:
		return []byte(ToEssayMarkdown(items)), nil
	case FormatJSON:
		payloads := ToSlidesJSON(items)
		if validate {
			if err := ValidateSlidesPayload(payloads); err != nil {
				return nil, fmt.Errorf("distill: slides payload: %w", err)
			}
		}
		return MarshalSlidesJSON(payloads)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}
