package interfaces

import (
	"time"

	"github.com/google/uuid"
)

// Note is a Markdown note addressed by its slug: the forward-slash path of the
// source file relative to the content root, without extension.
type Note struct {
	ID           uuid.UUID
	Slug         string
	FilePath     string
	FrontMatter  FrontMatter
	Body         string
	LastModified time.Time
	// Checksum is the SHA-256 digest of the raw file content.
	Checksum []byte
}

// Title returns the frontmatter title, or an empty string.
func (n *Note) Title() string {
	if n == nil {
		return ""
	}
	return n.FrontMatter.Title
}

// FrontMatter models the YAML header of a note. Unknown keys land in Custom.
type FrontMatter struct {
	Title   string         `yaml:"title" json:"title"`
	Summary string         `yaml:"summary" json:"summary"`
	Tags    []string       `yaml:"tags" json:"tags"`
	Date    time.Time      `yaml:"date" json:"date"`
	Draft   bool           `yaml:"draft" json:"draft"`
	Custom  map[string]any `yaml:",inline" json:"custom,omitempty"`
	Raw     map[string]any `yaml:"-" json:"raw,omitempty"`
}

// NoteSource is the read side of a note collection.
type NoteSource interface {
	// Get returns the note stored under slug and whether it exists.
	Get(slug string) (*Note, bool)
	// All returns every note ordered by slug.
	All() []*Note
	// Version identifies the current contents. It changes whenever a note is
	// added, removed or edited.
	Version() string
}
