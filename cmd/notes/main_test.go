package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/goliatone/go-notes/cmd/notes/internal/bootstrap"
	"github.com/goliatone/go-notes/internal/distill"
	"github.com/goliatone/go-notes/internal/notesindex"
)

func withMemFS(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	notes := []struct {
		path string
		body string
		age  time.Duration
	}{
		{"notes/guides/setup.md", "---\ntitle: Setup Guide\n---\n# Install\n\n> [!tip] Pin your versions\n\n## Run\n\nText.\n", 0},
		{"notes/guides/old.md", "> An older quote\n", 2 * time.Hour},
		{"notes/daily/today.md", "Nothing to clip.\n", time.Hour},
	}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for _, n := range notes {
		if err := afero.WriteFile(fs, n.path, []byte(n.body), 0o644); err != nil {
			t.Fatalf("write %s: %v", n.path, err)
		}
		ts := now.Add(-n.age)
		if err := fs.Chtimes(n.path, ts, ts); err != nil {
			t.Fatalf("chtimes %s: %v", n.path, err)
		}
	}

	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })
	moduleBuilder = func(opts bootstrap.Options) (*bootstrap.Module, error) {
		opts.FS = fs
		if opts.ContentDir == "" {
			opts.ContentDir = "notes"
		}
		if opts.IndexPath == "" {
			opts.IndexPath = "data/index.json"
		}
		return bootstrap.BuildModule(opts)
	}
	return fs
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestIndexCommandWritesIndex(t *testing.T) {
	fs := withMemFS(t)

	out, err := runCLI(t, "index")
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if !strings.Contains(out, "data/index.json (3 notes)") {
		t.Fatalf("unexpected output %q", out)
	}
	index, err := notesindex.Load(fs, "data/index.json")
	if err != nil {
		t.Fatalf("load index: %v", err)
	}
	if len(index) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(index))
	}
}

func TestDistillCommandRendersMode(t *testing.T) {
	withMemFS(t)

	out, err := runCLI(t, "distill", "--prefix", "guides", "--mode", "stream")
	if err != nil {
		t.Fatalf("distill: %v", err)
	}
	var projection distill.Projection
	if err := json.Unmarshal([]byte(out), &projection); err != nil {
		t.Fatalf("decode projection: %v\n%s", err, out)
	}
	if len(projection.Clips) != 2 {
		t.Fatalf("expected 2 clips, got %d", len(projection.Clips))
	}
	if projection.Clips[0].Text != "Pin your versions" {
		t.Fatalf("expected most recent note first, got %+v", projection.Clips[0])
	}
}

func TestDistillCommandExportsToFile(t *testing.T) {
	fs := withMemFS(t)

	if _, err := runCLI(t, "distill", "--format", "md", "--out", "exports/guides.md"); err != nil {
		t.Fatalf("distill export: %v", err)
	}
	data, err := afero.ReadFile(fs, "exports/guides.md")
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "An older quote") {
		t.Fatalf("unexpected export %q", data)
	}
}

func TestDistillCommandRejectsOutWithoutFormat(t *testing.T) {
	withMemFS(t)
	if _, err := runCLI(t, "distill", "--out", "x.txt"); err == nil {
		t.Fatalf("expected error for --out without --format")
	}
}

func TestSearchCommand(t *testing.T) {
	withMemFS(t)

	out, err := runCLI(t, "search", "setup")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if strings.TrimSpace(out) != "guides/setup\tSetup Guide" {
		t.Fatalf("unexpected output %q", out)
	}

	out, err = runCLI(t, "search", "nothing-like-this")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if strings.TrimSpace(out) != "no matches" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestTreeCommand(t *testing.T) {
	withMemFS(t)

	out, err := runCLI(t, "tree")
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	want := "Notes/\n  Daily/\n    Today\n  Guides/\n    Old\n    Setup Guide\n"
	if out != want {
		t.Fatalf("unexpected tree:\n%s\nwant:\n%s", out, want)
	}
}

func TestOutlineCommand(t *testing.T) {
	withMemFS(t)

	out, err := runCLI(t, "outline", "/guides/setup")
	if err != nil {
		t.Fatalf("outline: %v", err)
	}
	want := "Install (#install)\n  Run (#run)\n"
	if out != want {
		t.Fatalf("unexpected outline %q", out)
	}

	if _, err := runCLI(t, "outline", "guides/missing"); err == nil {
		t.Fatalf("expected missing note error")
	}
}
