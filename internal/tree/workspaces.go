package tree

import (
	"cmp"
	"slices"
	"strings"

	"github.com/goliatone/go-slug"
)

// WorkspaceConfig describes a configured top-level workspace.
type WorkspaceConfig struct {
	Key         string `json:"key" yaml:"key"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description,omitempty" yaml:"description"`
	Order       int    `json:"order,omitempty" yaml:"order"`
}

// Subfolder is a direct child folder of a workspace with its note count.
type Subfolder struct {
	FolderSlug string `json:"folderSlug"`
	Count      int    `json:"count"`
}

// Workspace summarises one top-level folder.
type Workspace struct {
	Key         string      `json:"key"`
	Label       string      `json:"label"`
	Description string      `json:"description,omitempty"`
	Order       int         `json:"order"`
	Configured  bool        `json:"configured"`
	Notes       int         `json:"notes"`
	Subfolders  []Subfolder `json:"subfolders"`
}

// unconfiguredOrder sorts workspaces without configuration after configured
// ones.
const unconfiguredOrder = 1 << 20

// ValidWorkspaceKey reports whether key is a well-formed slug.
func ValidWorkspaceKey(key string) bool {
	return slug.IsValid(key)
}

// WorkspaceKey returns the first segment of slug.
func WorkspaceKey(s string) string {
	key, _, _ := strings.Cut(s, "/")
	return key
}

// EntriesInWorkspace returns the entries that are the workspace note itself
// or live below it, sorted by slug.
func EntriesInWorkspace(entries []Entry, key string) []Entry {
	prefix := key + "/"
	var out []Entry
	for _, entry := range entries {
		if entry.Slug == key || strings.HasPrefix(entry.Slug, prefix) {
			out = append(out, entry)
		}
	}
	sortBySlug(out)
	return out
}

// DirectSubfolders counts entries by the segment right below the workspace.
// A note directly inside the workspace counts as its own subfolder entry.
func DirectSubfolders(entries []Entry, key string) []Subfolder {
	prefix := key + "/"
	counts := map[string]int{}
	for _, entry := range entries {
		rest, ok := strings.CutPrefix(entry.Slug, prefix)
		if !ok {
			continue
		}
		segment, _, _ := strings.Cut(rest, "/")
		if segment == "" {
			continue
		}
		counts[prefix+segment]++
	}

	out := make([]Subfolder, 0, len(counts))
	for folder, count := range counts {
		out = append(out, Subfolder{FolderSlug: folder, Count: count})
	}
	slices.SortFunc(out, func(a, b Subfolder) int {
		return strings.Compare(a.FolderSlug, b.FolderSlug)
	})
	return out
}

// Workspaces summarises every workspace present in entries. Configured
// workspaces use their label and order; others get a humanised label and
// sort after them. Ties order by key.
func Workspaces(entries []Entry, configs []WorkspaceConfig) []Workspace {
	byKey := make(map[string]WorkspaceConfig, len(configs))
	for _, cfg := range configs {
		byKey[cfg.Key] = cfg
	}

	keys := map[string]struct{}{}
	for _, entry := range entries {
		if key := WorkspaceKey(strings.Trim(entry.Slug, "/")); key != "" {
			keys[key] = struct{}{}
		}
	}

	out := make([]Workspace, 0, len(keys))
	for key := range keys {
		ws := Workspace{
			Key:        key,
			Label:      HumanizeSegment(key),
			Order:      unconfiguredOrder,
			Notes:      len(EntriesInWorkspace(entries, key)),
			Subfolders: DirectSubfolders(entries, key),
		}
		if cfg, ok := byKey[key]; ok {
			ws.Configured = true
			ws.Order = cfg.Order
			ws.Description = cfg.Description
			if label := strings.TrimSpace(cfg.Label); label != "" {
				ws.Label = label
			}
		}
		out = append(out, ws)
	}

	slices.SortFunc(out, func(a, b Workspace) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	})
	return out
}
