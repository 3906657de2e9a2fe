package distill

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/goliatone/go-notes/internal/clips"
)

func clip(slug string, typ clips.Type, text string) clips.Clip {
	return clips.Clip{ID: clips.MakeID(slug, 1), Text: text, Type: typ, SourceSlug: slug, SourceTitle: strings.ToUpper(slug)}
}

func TestToSlidesLongParagraphWithoutPunctuation(t *testing.T) {
	text := strings.Repeat("a", 500)
	slides := ToSlides([]clips.Clip{clip("n", clips.TypeQuote, text)})

	if len(slides) != 1 {
		t.Fatalf("expected a single fallback slide, got %d", len(slides))
	}
	if slides[0].Body != text {
		t.Fatalf("expected whole text as the chunk")
	}
	if !strings.HasSuffix(slides[0].Title, "…") || utf8.RuneCountInString(slides[0].Title) != 49 {
		t.Fatalf("expected truncated title, got %q", slides[0].Title)
	}
}

func TestToSlidesSplitsSentences(t *testing.T) {
	sentence := strings.Repeat("word ", 20) + "end."
	text := sentence + " " + sentence + "  " + sentence
	slides := ToSlides([]clips.Clip{clip("n", clips.TypeTip, text)})

	if len(slides) != 2 {
		t.Fatalf("expected 2 slides, got %d: %#v", len(slides), slides)
	}
	if slides[0].Body != sentence+" "+sentence {
		t.Fatalf("unexpected first chunk %q", slides[0].Body)
	}
	if slides[1].Body != sentence || slides[1].Title != Beat {
		t.Fatalf("unexpected second slide %#v", slides[1])
	}
	for _, slide := range slides {
		if utf8.RuneCountInString(slide.Body) > slideMaxChars {
			t.Fatalf("chunk exceeds limit: %d", utf8.RuneCountInString(slide.Body))
		}
		if slide.Meta == nil || slide.Meta.Type != clips.TypeTip {
			t.Fatalf("expected meta on every slide")
		}
	}
}

func TestToSlidesPrefersParagraphs(t *testing.T) {
	slides := ToSlides([]clips.Clip{clip("n", clips.TypeQuote, "[Note] First para\n\nSecond para")})
	if len(slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(slides))
	}
	if slides[0].Title != "First para" {
		t.Fatalf("expected bracket prefix removed, got %q", slides[0].Title)
	}
	if slides[0].Body != "[Note] First para" {
		t.Fatalf("expected body untouched, got %q", slides[0].Body)
	}
}

func TestSoftTitleDefaults(t *testing.T) {
	cases := map[string]string{
		"(aside)":              defaultSlide,
		"{x} Curly":            "Curly",
		"Plain\nsecond":        "Plain",
		"":                     defaultSlide,
		"ééééé":                "ééééé",
	}
	for input, want := range cases {
		if got := softTitle(input); got != want {
			t.Fatalf("softTitle(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestToScriptBeatsBetweenParagraphs(t *testing.T) {
	blocks := ToScript([]clips.Clip{
		clip("a", clips.TypeQuote, "one\n\ntwo"),
		clip("b", clips.TypeWarning, "three"),
	})

	var kinds []string
	for _, block := range blocks {
		kinds = append(kinds, string(block.Kind))
	}
	want := "line,beat,line,beat,callout"
	if got := strings.Join(kinds, ","); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if blocks[len(blocks)-1].Kind == ScriptBeat {
		t.Fatalf("expected no trailing beat")
	}
	if blocks[1].Text != Beat || blocks[1].Meta != nil {
		t.Fatalf("unexpected beat block %#v", blocks[1])
	}
	if blocks[4].Meta.SourceSlug != "b" || blocks[4].Meta.Type != clips.TypeWarning {
		t.Fatalf("unexpected meta %#v", blocks[4].Meta)
	}
}

func TestToScriptEmpty(t *testing.T) {
	if blocks := ToScript(nil); len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %#v", blocks)
	}
}

func TestToEssayKinds(t *testing.T) {
	blocks := ToEssay([]clips.Clip{
		clip("a", clips.TypeQuote, "p1\n\n\n\np2"),
		clip("b", clips.TypeCallout, "side"),
		clip("c", clips.Type("future"), "unknown"),
	})
	if len(blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(blocks))
	}
	want := []EssayKind{EssayParagraph, EssayParagraph, EssayAside, EssayAside}
	for i, kind := range want {
		if blocks[i].Kind != kind {
			t.Fatalf("block %d: expected %s, got %s", i, kind, blocks[i].Kind)
		}
	}
}

func TestRenderDispatch(t *testing.T) {
	items := []clips.Clip{clip("a", clips.TypeQuote, "x")}
	for _, mode := range Modes() {
		projection, err := Render(mode, items)
		if err != nil {
			t.Fatalf("Render(%s): %v", mode, err)
		}
		if projection.Mode != mode {
			t.Fatalf("expected mode %s, got %s", mode, projection.Mode)
		}
	}

	if _, err := Render(Mode("deck"), items); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestParseMode(t *testing.T) {
	if mode, err := ParseMode(" Slides "); err != nil || mode != ModeSlides {
		t.Fatalf("expected slides, got %q %v", mode, err)
	}
	if mode, err := ParseMode(""); err != nil || mode != ModeStream {
		t.Fatalf("expected stream default, got %q %v", mode, err)
	}
	if _, err := ParseMode("deck"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("Hi! How are you?  Fine.Thanks. e.g. this")
	want := []string{"Hi!", "How are you?", "Fine.Thanks.", "e.g.", "this"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
