package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-notes/pkg/interfaces"
)

func names(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, node.Name)
	}
	return out
}

func TestBuildNestsFoldersAndSorts(t *testing.T) {
	root := Build([]Entry{
		{Slug: "projects/irrigation/pump-design"},
		{Slug: "projects/irrigation/valves", Title: "Valves & Fittings"},
		{Slug: "/projects/zeta-note/"},
		{Slug: "projects/Écoles"},
		{Slug: "projects/alpha"},
		{Slug: "daily/2026-02-14"},
		{Slug: ""},
		{Slug: "readme"},
	})

	require.Equal(t, KindFolder, root.Kind)
	assert.Equal(t, RootName, root.Name)
	assert.Equal(t, []string{"Daily", "Projects", "Readme"}, names(root.Children))

	projects := root.Find("projects")
	require.NotNil(t, projects)
	assert.Equal(t, []string{"Irrigation", "Alpha", "Écoles", "Zeta note"}, names(projects.Children))

	irrigation := root.Find("projects/irrigation")
	require.NotNil(t, irrigation)
	assert.Equal(t, []string{"Pump design", "Valves & Fittings"}, names(irrigation.Children))
	assert.Equal(t, "projects/irrigation/pump-design", irrigation.Children[0].Slug)

	assert.Equal(t, "projects/zeta-note", projects.Children[3].Slug)
	assert.Equal(t, 7, root.CountNotes())
	assert.Nil(t, root.Find("nope"))
}

func TestHumanizeSegment(t *testing.T) {
	cases := map[string]string{
		"pump-design":                  "Pump design",
		"How to Improve pump efficacy": "How to Improve pump efficacy",
		"2026-02-14":                   "2026 02 14",
		"snake__case":                  "Snake case",
		"Mixed-Case":                   "Mixed Case",
		"  ":                           "",
		"élan":                         "Élan",
	}
	for input, want := range cases {
		assert.Equal(t, want, HumanizeSegment(input), "input %q", input)
	}
}

func TestDisplayTitle(t *testing.T) {
	assert.Equal(t, "Custom", DisplayTitle(Entry{Slug: "a/b", Title: "  Custom "}))
	assert.Equal(t, "Last part", DisplayTitle(Entry{Slug: "a/last-part/"}))
}

func TestNormalizeSlugs(t *testing.T) {
	assert.Equal(t, "a/b", NormalizeSlug("  /A/B/ "))
	assert.Equal(t, "dont-panic-now", NormalizeFileSlug("Don't Panic -- Now.md"))
	assert.Equal(t, "note", NormalizeFileSlug("--Note--.mdx"))
}

func TestFolderHelpers(t *testing.T) {
	assert.Equal(t, []string{"a", "a/b"}, FolderPrefixes("a/b/c-note"))
	assert.Empty(t, FolderPrefixes("single"))

	entries := []Entry{{Slug: "a/b/c"}, {Slug: "a/d"}, {Slug: "x/y"}, {Slug: "top"}}
	assert.Equal(t, []string{"a", "a/b", "x"}, AllFolderSlugs(entries))

	recursive := EntriesUnderFolder(entries, "a", true)
	assert.Equal(t, []Entry{{Slug: "a/b/c"}, {Slug: "a/d"}}, recursive)

	direct := EntriesUnderFolder(entries, "a/", false)
	assert.Equal(t, []Entry{{Slug: "a/d"}}, direct)

	rootDirect := EntriesUnderFolder(entries, "", false)
	assert.Equal(t, []Entry{{Slug: "top"}}, rootDirect)
}

func TestEntriesFromNotes(t *testing.T) {
	entries := EntriesFromNotes([]*interfaces.Note{
		{Slug: "a", FrontMatter: interfaces.FrontMatter{Title: "A"}},
		nil,
	})
	assert.Equal(t, []Entry{{Slug: "a", Title: "A"}}, entries)
}
