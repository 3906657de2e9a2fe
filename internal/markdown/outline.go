package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-notes/internal/clips"
)

var outlineEngine = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Outline lists every heading of body in document order. Slugs use the same
// rules as clip sections so outline anchors and clip sections agree. Headings
// inside code blocks and blockquotes are ignored.
func Outline(body string) []clips.Section {
	source := []byte(body)
	doc := outlineEngine.Parser().Parse(text.NewReader(source))

	var sections []clips.Section
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Blockquote:
			return ast.WalkSkipChildren, nil
		case *ast.Heading:
			label := strings.TrimSpace(string(n.Text(source)))
			if label != "" {
				sections = append(sections, clips.Section{
					Text:  label,
					Slug:  clips.SlugifyHeading(label),
					Depth: n.Level,
				})
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return sections
}
