package http

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-notes/internal/clips"
	"github.com/goliatone/go-notes/internal/distill"
	"github.com/goliatone/go-notes/internal/markdown"
	"github.com/goliatone/go-notes/internal/search"
	"github.com/goliatone/go-notes/internal/tree"
)

type searchResponse struct {
	Query   string          `json:"query"`
	Version string          `json:"version"`
	Results []search.Result `json:"results"`
}

type folderResponse struct {
	Folder    string       `json:"folder"`
	Recursive bool         `json:"recursive"`
	Entries   []tree.Entry `json:"entries"`
}

type workspaceResponse struct {
	tree.Workspace
	Entries []tree.Entry `json:"entries"`
}

type outlineResponse struct {
	ID       string          `json:"id"`
	Slug     string          `json:"slug"`
	Title    string          `json:"title"`
	Sections []clips.Section `json:"sections"`
}

func (api *NotesAPI) currentSnapshot() (*search.Snapshot, error) {
	snapshot := api.search.Current()
	if snapshot == nil {
		return nil, errSearchNotLoaded
	}
	return snapshot, nil
}

func (api *NotesAPI) handleSearchIndex(w http.ResponseWriter, r *http.Request) {
	snapshot, err := api.currentSnapshot()
	if err != nil {
		writeError(w, err)
		return
	}
	if api.cacheMaxAge > 0 {
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(api.cacheMaxAge.Seconds())))
	} else {
		w.Header().Set("Cache-Control", "no-cache")
	}
	w.Header().Set("ETag", `"`+snapshot.Version+`"`)
	records := snapshot.Records
	if records == nil {
		records = []search.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *NotesAPI) handleSearchQuery(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, fmt.Errorf("%w: query parameter q is required", errBadRequest))
		return
	}
	snapshot, err := api.currentSnapshot()
	if err != nil {
		writeError(w, err)
		return
	}
	limit := parseIntQuery(r.URL.Query().Get("limit"), defaultSearchLimit, maxSearchLimit)
	results := search.Query(snapshot, q, limit)
	if results == nil {
		results = []search.Result{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: q, Version: snapshot.Version, Results: results})
}

func (api *NotesAPI) handleDistill(w http.ResponseWriter, r *http.Request) {
	mode := distill.Mode("")
	if raw := r.URL.Query().Get("mode"); strings.TrimSpace(raw) != "" {
		parsed, err := distill.ParseMode(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		mode = parsed
	}
	projection, err := api.distill.Render(r.Context(), r.URL.Query().Get("prefix"), mode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projection)
}

func (api *NotesAPI) handleDistillExport(w http.ResponseWriter, r *http.Request) {
	format, err := distill.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := api.distill.Export(r.Context(), r.URL.Query().Get("prefix"), format)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", "distill"+format.Extension()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (api *NotesAPI) handleTree(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, tree.Build(api.entries()))
}

func (api *NotesAPI) handleFolder(w http.ResponseWriter, r *http.Request) {
	folder := trimSlug(r.URL.Query().Get("folder"))
	recursive := parseBoolQuery(r.URL.Query().Get("recursive"), false)
	all := api.entries()
	if folder != "" {
		if _, found := slices.BinarySearch(tree.AllFolderSlugs(all), folder); !found {
			writeError(w, fmt.Errorf("folder %q: %w", folder, errNotFound))
			return
		}
	}
	entries := tree.EntriesUnderFolder(all, folder, recursive)
	if entries == nil {
		entries = []tree.Entry{}
	}
	writeJSON(w, http.StatusOK, folderResponse{Folder: folder, Recursive: recursive, Entries: entries})
}

func (api *NotesAPI) handleWorkspaces(w http.ResponseWriter, r *http.Request) {
	workspaces := tree.Workspaces(api.entries(), api.workspaces)
	if workspaces == nil {
		workspaces = []tree.Workspace{}
	}
	writeJSON(w, http.StatusOK, workspaces)
}

func (api *NotesAPI) handleWorkspace(w http.ResponseWriter, r *http.Request) {
	key := trimSlug(chi.URLParam(r, "key"))
	entries := api.entries()
	for _, ws := range tree.Workspaces(entries, api.workspaces) {
		if ws.Key == key {
			writeJSON(w, http.StatusOK, workspaceResponse{
				Workspace: ws,
				Entries:   tree.EntriesInWorkspace(entries, key),
			})
			return
		}
	}
	writeError(w, fmt.Errorf("workspace %q: %w", key, errNotFound))
}

func (api *NotesAPI) handleOutline(w http.ResponseWriter, r *http.Request) {
	slug := trimSlug(r.URL.Query().Get("slug"))
	if slug == "" {
		writeError(w, fmt.Errorf("%w: query parameter slug is required", errBadRequest))
		return
	}
	source := api.notes()
	if source == nil {
		writeError(w, fmt.Errorf("note %q: %w", slug, errNotFound))
		return
	}
	note, ok := source.Get(slug)
	if !ok || note == nil {
		writeError(w, fmt.Errorf("note %q: %w", slug, errNotFound))
		return
	}
	sections := markdown.Outline(note.Body)
	if sections == nil {
		sections = []clips.Section{}
	}
	writeJSON(w, http.StatusOK, outlineResponse{
		ID:       note.ID.String(),
		Slug:     note.Slug,
		Title:    tree.DisplayTitle(tree.Entry{Slug: note.Slug, Title: note.Title()}),
		Sections: sections,
	})
}
