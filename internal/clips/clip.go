package clips

import "strconv"

// Type classifies a clip. The set is closed; see AllTypes.
type Type string

const (
	TypeQuote     Type = "quote"
	TypeTip       Type = "tip"
	TypeImportant Type = "important"
	TypeWarning   Type = "warning"
	TypeCaution   Type = "caution"
	TypeCallout   Type = "callout"
)

// AllTypes lists every clip type in declaration order.
func AllTypes() []Type {
	return []Type{TypeQuote, TypeTip, TypeImportant, TypeWarning, TypeCaution, TypeCallout}
}

// Valid reports whether t is one of the known clip types.
func (t Type) Valid() bool {
	switch t {
	case TypeQuote, TypeTip, TypeImportant, TypeWarning, TypeCaution, TypeCallout:
		return true
	default:
		return false
	}
}

// IsCallout reports whether the clip should be presented apart from the
// surrounding prose. Unknown types are treated as callouts so they are never
// silently merged into quotes.
func (t Type) IsCallout() bool {
	switch t {
	case TypeQuote:
		return false
	case TypeTip, TypeImportant, TypeWarning, TypeCaution, TypeCallout:
		return true
	default:
		return true
	}
}

func (t Type) String() string { return string(t) }

// Section is the heading context attached to a clip.
type Section struct {
	Text  string `json:"text"`
	Slug  string `json:"slug"`
	Depth int    `json:"depth"`
}

// Clip is a single extracted annotation. Clips are values: they are rebuilt
// on every extraction and never mutated afterwards.
type Clip struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Type        Type     `json:"type"`
	SourceSlug  string   `json:"sourceSlug"`
	SourceTitle string   `json:"sourceTitle"`
	Section     *Section `json:"section,omitempty"`
}

const idSeparator = "::clip::"

// MakeID builds the identifier for the n-th clip (1-based) of a document.
func MakeID(sourceSlug string, n int) string {
	return sourceSlug + idSeparator + strconv.Itoa(n)
}

// Sequence returns the per-document counter encoded in a clip ID, or 0 when
// the ID was not produced by MakeID.
func Sequence(id string) int {
	for i := len(id) - len(idSeparator); i >= 0; i-- {
		if id[i:i+len(idSeparator)] != idSeparator {
			continue
		}
		n, err := strconv.Atoi(id[i+len(idSeparator):])
		if err != nil || n < 1 {
			return 0
		}
		return n
	}
	return 0
}
