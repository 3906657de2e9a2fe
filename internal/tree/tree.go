// Package tree arranges note slugs into a navigable folder tree and groups
// them into workspaces. Slugs are the structural source of truth; titles are
// display-only.
package tree

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/goliatone/go-notes/pkg/interfaces"
)

// RootName is the display name of the tree root.
const RootName = "Notes"

// Kind distinguishes folders from notes.
type Kind string

const (
	KindFolder Kind = "folder"
	KindNote   Kind = "note"
)

// Entry is the slug and optional frontmatter title of one note.
type Entry struct {
	Slug  string `json:"slug"`
	Title string `json:"title,omitempty"`
}

// EntriesFromNotes converts loaded notes into entries.
func EntriesFromNotes(notes []*interfaces.Note) []Entry {
	entries := make([]Entry, 0, len(notes))
	for _, note := range notes {
		if note == nil {
			continue
		}
		entries = append(entries, Entry{Slug: note.Slug, Title: note.Title()})
	}
	return entries
}

// Node is a folder or a note. Folder slugs are the path prefix shared by
// their children; the root folder has an empty slug.
type Node struct {
	Kind     Kind    `json:"kind"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	Children []*Node `json:"children,omitempty"`
}

// NormalizeSlug prepares a slug for matching: trimmed, without leading or
// trailing slashes, lowercased.
func NormalizeSlug(input string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(input), "/"))
}

var (
	fileExtension = regexp.MustCompile(`\.mdx?$`)
	nonAlnumRun   = regexp.MustCompile(`[^a-z0-9]+`)
)

// NormalizeFileSlug turns a file name into a flat URL slug: extension and
// apostrophes dropped, every other run of non [a-z0-9] characters replaced
// by a single hyphen.
func NormalizeFileSlug(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = fileExtension.ReplaceAllString(s, "")
	s = strings.NewReplacer("'", "", "’", "").Replace(s)
	s = nonAlnumRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

var separatorRun = regexp.MustCompile(`[-_]+`)

// HumanizeSegment turns a slug segment into a label. Hyphens and
// underscores become spaces; all-lowercase input gets its first letter
// capitalised, anything else keeps its casing.
func HumanizeSegment(segment string) string {
	s := strings.TrimSpace(segment)
	if s == "" {
		return s
	}
	withSpaces := separatorRun.ReplaceAllString(s, " ")
	if withSpaces != strings.ToLower(withSpaces) {
		return withSpaces
	}
	first, size := utf8.DecodeRuneInString(withSpaces)
	return string(unicode.ToUpper(first)) + withSpaces[size:]
}

// DisplayTitle prefers the frontmatter title and falls back to the
// humanised last slug segment.
func DisplayTitle(entry Entry) string {
	if title := strings.TrimSpace(entry.Title); title != "" {
		return title
	}
	parts := splitSlug(entry.Slug)
	if len(parts) == 0 {
		return HumanizeSegment(entry.Slug)
	}
	return HumanizeSegment(parts[len(parts)-1])
}

// Build inserts every entry into a folder tree rooted at "Notes". Children
// are sorted folders first, then by display name ignoring case and
// diacritics.
func Build(entries []Entry) *Node {
	root := &Node{Kind: KindFolder, Name: RootName, Slug: ""}
	folders := map[string]*Node{"": root}

	for _, entry := range entries {
		parts := splitSlug(entry.Slug)
		if len(parts) == 0 {
			continue
		}

		parent := root
		folderSlug := ""
		for _, segment := range parts[:len(parts)-1] {
			if folderSlug == "" {
				folderSlug = segment
			} else {
				folderSlug += "/" + segment
			}
			folder, ok := folders[folderSlug]
			if !ok {
				folder = &Node{Kind: KindFolder, Name: HumanizeSegment(segment), Slug: folderSlug}
				parent.Children = append(parent.Children, folder)
				folders[folderSlug] = folder
			}
			parent = folder
		}
		parent.Children = append(parent.Children, &Node{
			Kind: KindNote,
			Name: DisplayTitle(entry),
			Slug: strings.Join(parts, "/"),
		})
	}

	sortChildren(root, collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics))
	return root
}

func sortChildren(node *Node, collator *collate.Collator) {
	slices.SortStableFunc(node.Children, func(a, b *Node) int {
		if a.Kind != b.Kind {
			if a.Kind == KindFolder {
				return -1
			}
			return 1
		}
		return collator.CompareString(a.Name, b.Name)
	})
	for _, child := range node.Children {
		if child.Kind == KindFolder {
			sortChildren(child, collator)
		}
	}
}

// Find returns the folder or note with the given slug, or nil.
func (n *Node) Find(slug string) *Node {
	if n == nil {
		return nil
	}
	if n.Slug == slug {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(slug); found != nil {
			return found
		}
	}
	return nil
}

// CountNotes returns the number of note nodes below n.
func (n *Node) CountNotes() int {
	if n == nil {
		return 0
	}
	if n.Kind == KindNote {
		return 1
	}
	total := 0
	for _, child := range n.Children {
		total += child.CountNotes()
	}
	return total
}

func splitSlug(slug string) []string {
	raw := strings.Split(strings.Trim(slug, "/"), "/")
	parts := raw[:0]
	for _, part := range raw {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
