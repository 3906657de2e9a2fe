package clips

import "regexp"

var (
	blockquoteLinePattern   = regexp.MustCompile(`^` + SpaceClass + `*>`)
	blockquotePrefixPattern = regexp.MustCompile(`^` + SpaceClass + `*>` + SpaceClass + `?`)
)

// IsBlockquoteLine reports whether the line starts with optional whitespace
// followed by '>'.
func IsBlockquoteLine(line string) bool {
	return blockquoteLinePattern.MatchString(line)
}

// StripBlockquotePrefix removes the first '>' marker (with any indentation
// before it) and at most one whitespace character after it.
func StripBlockquotePrefix(line string) string {
	loc := blockquotePrefixPattern.FindStringIndex(line)
	if loc == nil {
		return line
	}
	return line[loc[1]:]
}

// scanBlockquote consumes the contiguous run of quote lines starting at
// start. It returns the stripped lines and the index of the first line after
// the run.
func scanBlockquote(lines []string, start int) ([]string, int) {
	end := start
	for end < len(lines) && IsBlockquoteLine(lines[end]) {
		end++
	}
	if end == start {
		return nil, start
	}
	buffer := make([]string, 0, end-start)
	for _, line := range lines[start:end] {
		buffer = append(buffer, StripBlockquotePrefix(line))
	}
	return buffer, end
}
