package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"contextify/internal/utils"
)

// Root is one open workspace directory. The absolute path is resolved
// through symlinks at construction so later prefix checks are reliable.
type Root struct {
	name string
	abs  string
}

// NewRoot validates dir and returns a Root for it.
func NewRoot(dir string) (Root, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return Root{}, fmt.Errorf("workspace root is empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Root{}, fmt.Errorf("resolve workspace root %q: %w", dir, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return Root{}, fmt.Errorf("stat workspace root %q: %w", dir, err)
	}
	if !fi.IsDir() {
		return Root{}, fmt.Errorf("workspace root %q is not a directory", dir)
	}
	return Root{name: filepath.Base(abs), abs: abs}, nil
}

// Name returns the root's last path element, used for logs and labels.
func (r Root) Name() string { return r.name }

// Abs returns the root's absolute path.
func (r Root) Abs() string { return r.abs }

// join maps a normalized relative path into the root, rejecting paths that
// would escape it via traversal segments.
func (r Root) join(rel string) (string, bool) {
	if r.abs == "" {
		return "", false
	}
	joined := filepath.Join(r.abs, filepath.FromSlash(rel))
	if joined != r.abs && !strings.HasPrefix(joined, r.abs+string(filepath.Separator)) {
		return "", false
	}
	return joined, true
}

// probe reports the absolute path of rel inside the root when the entry
// exists on disk.
func (r Root) probe(rel string) (string, bool) {
	rel = utils.NormalizeRel(rel)
	if rel == "" {
		return "", false
	}
	abs, ok := r.join(rel)
	if !ok {
		return "", false
	}
	if _, err := os.Stat(abs); err != nil {
		return "", false
	}
	return abs, true
}

// relOf returns abs relative to the root in slash form, when abs is inside
// the root.
func (r Root) relOf(abs string) (string, bool) {
	if r.abs == "" || abs == "" {
		return "", false
	}
	if abs == r.abs {
		return ".", true
	}
	prefix := r.abs + string(filepath.Separator)
	if !strings.HasPrefix(abs, prefix) {
		return "", false
	}
	return filepath.ToSlash(strings.TrimPrefix(abs, prefix)), true
}
