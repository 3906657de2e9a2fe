package search

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-notes/internal/clips"
)

// DefaultMaxContentChars caps the stripped content of a record.
const DefaultMaxContentChars = 20_000

var stripRules = []struct {
	pattern *regexp.Regexp
	replace string
}{
	{regexp.MustCompile("```[\\s\\S]*?```"), " "},
	{regexp.MustCompile("`[^`]*`"), " "},
	{regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`), " "},
	{regexp.MustCompile(`\[[^\]]*\]\([^)]+\)`), " "},
	{regexp.MustCompile(`(?m)^#{1,6}` + clips.SpaceClass + `+`), " "},
	{regexp.MustCompile(`>` + clips.SpaceClass + `+`), " "},
	{regexp.MustCompile(`[*_~]`), " "},
	{regexp.MustCompile(clips.SpaceClass + `+`), " "},
}

// StripMarkdown reduces Markdown to searchable plain text. Code fences,
// inline code, images and links are removed entirely; heading, blockquote
// and emphasis markers are dropped; whitespace is collapsed.
func StripMarkdown(md string) string {
	for _, rule := range stripRules {
		md = rule.pattern.ReplaceAllString(md, rule.replace)
	}
	return strings.TrimSpace(md)
}

// truncate keeps at most max runes of s.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
