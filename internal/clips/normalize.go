package clips

import (
	"regexp"
	"strings"
)

var (
	blankRunPattern    = regexp.MustCompile(`\n{3,}`)
	lineEndingReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")
)

// NormalizeLineEndings converts CRLF and lone CR line endings to LF.
func NormalizeLineEndings(text string) string {
	if !strings.ContainsRune(text, '\r') {
		return text
	}
	return lineEndingReplacer.Replace(text)
}

// CollapseBlankLines joins lines so that runs of blank (or whitespace only)
// lines become a single empty line, then trims the result. Applying it to its
// own output is a no-op.
func CollapseBlankLines(text string) string {
	return joinParagraphs(strings.Split(NormalizeLineEndings(text), "\n"))
}

func joinParagraphs(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimSpace(line) == "" {
			if len(parts) == 0 || parts[len(parts)-1] == "" {
				continue
			}
			parts = append(parts, "")
			continue
		}
		parts = append(parts, line)
	}
	joined := blankRunPattern.ReplaceAllString(strings.Join(parts, "\n"), "\n\n")
	return trimSpace(joined)
}
