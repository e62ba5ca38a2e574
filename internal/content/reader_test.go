package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func write(t *testing.T, root, rel string, b []byte) string {
	t.Helper()
	p := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, b, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestRead_Text(t *testing.T) {
	root := t.TempDir()
	p := write(t, root, "notes.md", []byte("# hello\nworld\n"))

	got, err := Read(p)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != "# hello\nworld\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRead_ImageSummary(t *testing.T) {
	root := t.TempDir()
	// Raw PNG header bytes; the summary must never echo them back.
	p := write(t, root, "logo.png", []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a})

	got, err := Read(p)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !strings.Contains(got, "Image: logo.png") {
		t.Fatalf("summary missing Image line: %q", got)
	}
	if !strings.Contains(got, "Extension: PNG") {
		t.Fatalf("summary missing upper-case extension: %q", got)
	}
	if !strings.Contains(got, "Size: 8 bytes") {
		t.Fatalf("summary missing size: %q", got)
	}
	if !strings.Contains(got, "Path: "+p) {
		t.Fatalf("summary missing path: %q", got)
	}
	if !strings.Contains(got, "Modified: ") {
		t.Fatalf("summary missing modified date: %q", got)
	}
	if strings.Contains(got, "\x89PNG") {
		t.Fatalf("summary leaked raw bytes: %q", got)
	}
}

func TestRead_ImageStatFailure(t *testing.T) {
	p := filepath.Join(t.TempDir(), "missing.jpg")

	got, err := Read(p)
	if err != nil {
		t.Fatalf("image read should fall back to reduced summary, got %v", err)
	}
	if !strings.Contains(got, "Image: missing.jpg") || !strings.Contains(got, "Extension: JPG") {
		t.Fatalf("unexpected reduced summary: %q", got)
	}
	if strings.Contains(got, "Size:") || strings.Contains(got, "Modified:") {
		t.Fatalf("reduced summary should omit size and date: %q", got)
	}
}

func TestRead_MissingTextFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "gone.txt")

	_, err := Read(p)
	var re *ReadError
	if !errors.As(err, &re) {
		t.Fatalf("want *ReadError, got %v", err)
	}
	if re.Path != p {
		t.Fatalf("error path = %q, want %q", re.Path, p)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("should wrap the underlying cause, got %v", err)
	}
}

func TestIsImagePath(t *testing.T) {
	if !IsImagePath("/a/b/photo.JPG") {
		t.Fatal("upper-case image extension should match")
	}
	if IsImagePath("/a/b/app.ts") {
		t.Fatal("source file flagged as image")
	}
}

func TestHumanSize(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "0 bytes"},
		{512, "512 bytes"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
	}
	for _, tc := range cases {
		if got := HumanSize(tc.n); got != tc.want {
			t.Fatalf("HumanSize(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}
