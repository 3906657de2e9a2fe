package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-notes/internal/identity"
	"github.com/goliatone/go-notes/pkg/interfaces"
)

// DefaultExtensions are the note file extensions discovered when
// LoaderConfig.Extensions is empty. Matching is case-insensitive.
var DefaultExtensions = []string{".md", ".mdx"}

// LoaderConfig configures how notes are discovered under the filesystem root.
type LoaderConfig struct {
	// Extensions lists accepted file extensions, including the dot.
	Extensions []string
	// Pattern optionally restricts discovery to files whose base name (or
	// slash path, when the pattern contains '/') matches the glob.
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	// SkipDrafts drops notes whose frontmatter sets draft: true.
	SkipDrafts bool
}

// Loader turns files of an fs.FS into notes.
type Loader struct {
	fs         fs.FS
	extensions []string
	pattern    string
	recursive  bool
	skipDrafts bool
}

// NewLoader constructs a Loader for filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	extensions := cfg.Extensions
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}

	return &Loader{
		fs:         filesystem,
		extensions: normalized,
		pattern:    strings.TrimSpace(cfg.Pattern),
		recursive:  cfg.Recursive,
		skipDrafts: cfg.SkipDrafts,
	}
}

// SlugFromPath derives a note slug from a slash-separated relative path by
// dropping the extension.
func SlugFromPath(rel string) string {
	rel = strings.TrimPrefix(path.Clean(strings.ReplaceAll(rel, "\\", "/")), "./")
	return strings.TrimSuffix(rel, path.Ext(rel))
}

// LoadFile reads and parses the note at rel.
func (l *Loader) LoadFile(ctx context.Context, rel string) (*interfaces.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel = strings.TrimPrefix(path.Clean(rel), "/")

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}
	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", rel, err)
	}

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("markdown loader %s: %w", rel, err)
	}
	sum := sha256.Sum256(data)

	slug := SlugFromPath(rel)
	return &interfaces.Note{
		ID:           identity.NoteUUID(slug),
		Slug:         slug,
		FilePath:     rel,
		FrontMatter:  meta,
		Body:         string(body),
		LastModified: info.ModTime(),
		Checksum:     sum[:],
	}, nil
}

// LoadAll discovers every note under dir ("." for the root) and returns them
// ordered by slug.
func (l *Loader) LoadAll(ctx context.Context, dir string) ([]*interfaces.Note, error) {
	root := path.Clean(strings.TrimSpace(dir))
	if root == "" || root == "/" {
		root = "."
	}

	var notes []*interfaces.Note
	walkErr := fs.WalkDir(l.fs, root, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if current != root && (!l.recursive || strings.HasPrefix(d.Name(), ".")) {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !l.accepts(current) {
			return nil
		}

		note, err := l.LoadFile(ctx, current)
		if err != nil {
			return err
		}
		if l.skipDrafts && note.FrontMatter.Draft {
			return nil
		}
		notes = append(notes, note)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].Slug < notes[j].Slug
	})
	return notes, nil
}

func (l *Loader) accepts(rel string) bool {
	ext := strings.ToLower(path.Ext(rel))
	found := false
	for _, candidate := range l.extensions {
		if candidate == ext {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	if l.pattern == "" {
		return true
	}

	pattern := strings.ReplaceAll(l.pattern, "**/", "")
	target := path.Base(rel)
	if strings.Contains(pattern, "/") {
		target = rel
	}
	match, err := path.Match(pattern, target)
	return err == nil && match
}
