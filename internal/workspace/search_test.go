package workspace

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func write(t *testing.T, dir, rel, data string) string {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func fixtureRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, rel := range []string{
		"readme.md",
		"package.json",
		"docs/readme.md",
		"src/app.ts",
		"src/App.css",
		"src/components/Button.tsx",
		"src/components/Button.css",
		"src/utils/helpers.ts",
		"assets/logo.png",
		"node_modules/pkg/index.js",
		".git/config",
		"dist/bundle.js",
	} {
		write(t, dir, rel, "x")
	}
	return dir
}

func relPaths(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.RelPath
	}
	return out
}

func TestFindCandidatesPatternOrder(t *testing.T) {
	ws, err := New(fixtureRoot(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := relPaths(ws.FindCandidates(context.Background(), "readme.md", DefaultPatternLimit))
	want := []string{
		"readme.md",                   // exact relative path
		"docs/readme.md", "readme.md", // exact filename
		"docs/readme.md", "readme.md", // filename substring
		"docs/readme.md", "readme.md", // stem with any extension
		"docs/readme.md", "readme.md", // stem substring with extension
	}
	if !slices.Equal(got, want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}
}

func TestFindCandidatesSkipsExcludedDirs(t *testing.T) {
	ws, err := New(fixtureRoot(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, query := range []string{"index.js", "bundle.js", "config"} {
		if got := ws.FindCandidates(context.Background(), query, DefaultPatternLimit); len(got) != 0 {
			t.Fatalf("query %q matched excluded tree: %v", query, relPaths(got))
		}
	}
}

func TestFindCandidatesRootOrder(t *testing.T) {
	second := t.TempDir()
	write(t, second, "src/app.ts", "x")
	write(t, second, "lib/app.js", "x")

	ws, err := New(fixtureRoot(t), second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	roots := ws.Roots()

	got := ws.FindCandidates(context.Background(), "app.ts", DefaultPatternLimit)
	if len(got) < 2 {
		t.Fatalf("got %d candidates, want at least 2", len(got))
	}
	if got[0].RelPath != "src/app.ts" || !strings.HasPrefix(got[0].AbsPath, roots[0].Abs()) {
		t.Fatalf("first hit = %+v, want src/app.ts from first root", got[0])
	}
	if got[1].RelPath != "src/app.ts" || !strings.HasPrefix(got[1].AbsPath, roots[1].Abs()) {
		t.Fatalf("second hit = %+v, want src/app.ts from second root", got[1])
	}
}

func TestFindCandidatesEmptyWorkspace(t *testing.T) {
	ws := FromRoots()
	if got := ws.FindCandidates(context.Background(), "app.ts", DefaultPatternLimit); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}

func TestFindCandidatesBlankQuery(t *testing.T) {
	ws, err := New(fixtureRoot(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, query := range []string{"", "   "} {
		if got := ws.FindCandidates(context.Background(), query, DefaultPatternLimit); got != nil {
			t.Fatalf("query %q = %v, want nil", query, relPaths(got))
		}
	}
}

func TestFindCandidatesPerPatternLimit(t *testing.T) {
	ws, err := New(fixtureRoot(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := relPaths(ws.FindCandidates(context.Background(), "readme.md", 1))
	want := []string{
		"readme.md",
		"docs/readme.md",
		"docs/readme.md",
		"docs/readme.md",
		"docs/readme.md",
	}
	if !slices.Equal(got, want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}
}

func TestFindCandidatesCaseFolds(t *testing.T) {
	ws, err := New(fixtureRoot(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := ws.FindCandidates(context.Background(), "BUTTON.TSX", DefaultPatternLimit)
	if len(got) == 0 {
		t.Fatal("no candidates for upper-cased query")
	}
	if got[0].RelPath != "src/components/Button.tsx" {
		t.Fatalf("first hit = %q, want src/components/Button.tsx", got[0].RelPath)
	}
}

func TestFindCandidatesFields(t *testing.T) {
	ws, err := New(fixtureRoot(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := ws.FindCandidates(context.Background(), "logo.png", DefaultPatternLimit)
	if len(got) == 0 {
		t.Fatal("no candidates")
	}
	c := got[0]
	if c.Name != "logo.png" || c.Dir != "assets" || c.Ext != ".png" || !c.IsImage {
		t.Fatalf("candidate fields = %+v", c)
	}
	if !filepath.IsAbs(c.AbsPath) {
		t.Fatalf("AbsPath %q is not absolute", c.AbsPath)
	}
}
