package tree

import (
	"slices"
	"strings"
)

// FolderPrefixes lists the folder slugs containing slug, outermost first:
// "a/b/c" yields ["a", "a/b"].
func FolderPrefixes(slug string) []string {
	parts := splitSlug(slug)
	prefixes := make([]string, 0, len(parts))
	for i := 1; i < len(parts); i++ {
		prefixes = append(prefixes, strings.Join(parts[:i], "/"))
	}
	return prefixes
}

// AllFolderSlugs returns every folder slug implied by entries, sorted.
func AllFolderSlugs(entries []Entry) []string {
	seen := map[string]struct{}{}
	for _, entry := range entries {
		for _, prefix := range FolderPrefixes(entry.Slug) {
			seen[prefix] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for prefix := range seen {
		out = append(out, prefix)
	}
	slices.Sort(out)
	return out
}

// EntriesUnderFolder returns the entries below folder sorted by slug. When
// recursive is false only direct children are returned. The empty folder is
// the root.
func EntriesUnderFolder(entries []Entry, folder string, recursive bool) []Entry {
	folder = strings.Trim(folder, "/")
	prefix := ""
	if folder != "" {
		prefix = folder + "/"
	}
	depth := len(splitSlug(folder))

	var out []Entry
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Slug, prefix) {
			continue
		}
		if !recursive && len(splitSlug(entry.Slug)) != depth+1 {
			continue
		}
		out = append(out, entry)
	}
	sortBySlug(out)
	return out
}

func sortBySlug(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Slug, b.Slug)
	})
}
