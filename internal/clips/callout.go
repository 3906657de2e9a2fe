package clips

import (
	"regexp"
	"strings"
)

var calloutMarkerPattern = regexp.MustCompile(`(?i)^\[!(TIP|IMPORTANT|WARNING|CAUTION|CALLOUT)\]` + SpaceClass + `*`)

// DetectCallout classifies the first line of a stripped blockquote. When the
// line opens with one of the known [!TYPE] markers the marker and the
// whitespace after it are removed and the lowercased keyword is returned as
// the type. Any other line, including unknown markers, is a quote and is
// returned unchanged.
func DetectCallout(firstLine string) (Type, string) {
	loc := calloutMarkerPattern.FindStringSubmatchIndex(firstLine)
	if loc == nil {
		return TypeQuote, firstLine
	}
	keyword := strings.ToLower(firstLine[loc[2]:loc[3]])
	return Type(keyword), firstLine[loc[1]:]
}
