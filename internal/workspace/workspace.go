// Package workspace turns mention tokens and search queries into concrete
// files across a set of open root directories. Searching walks the roots
// fresh on every call; nothing is cached between invocations.
package workspace

import (
	"errors"
	"fmt"
	"log"
)

// ErrNoWorkspace reports that no workspace root is open. Search-style
// operations short-circuit to empty results instead; only explicit
// resolution surfaces this error.
var ErrNoWorkspace = errors.New("no workspace folder is open")

// NotFoundError reports that a mention token matched nothing, including the
// fallback search.
type NotFoundError struct {
	Token string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found in workspace: %q", e.Token)
}

// Workspace is an ordered, immutable set of open roots. The zero value
// behaves as an empty workspace.
type Workspace struct {
	roots []Root
}

// New builds a Workspace from directory paths, failing on the first invalid
// entry.
func New(dirs ...string) (*Workspace, error) {
	roots := make([]Root, 0, len(dirs))
	for _, dir := range dirs {
		r, err := NewRoot(dir)
		if err != nil {
			return nil, err
		}
		roots = append(roots, r)
	}
	return &Workspace{roots: roots}, nil
}

// NewLenient builds a Workspace from directory paths, logging and skipping
// entries that cannot be opened. Server startup uses this so one stale
// configured root does not take the whole gateway down.
func NewLenient(dirs ...string) *Workspace {
	roots := make([]Root, 0, len(dirs))
	for _, dir := range dirs {
		r, err := NewRoot(dir)
		if err != nil {
			log.Printf("workspace: skipping root: %v", err)
			continue
		}
		roots = append(roots, r)
	}
	return &Workspace{roots: roots}
}

// FromRoots wraps already-validated roots in configuration order.
func FromRoots(roots ...Root) *Workspace {
	return &Workspace{roots: append([]Root(nil), roots...)}
}

// Roots returns a copy of the open roots in configuration order.
func (w *Workspace) Roots() []Root {
	if w == nil {
		return nil
	}
	return append([]Root(nil), w.roots...)
}

// Empty reports whether no root is open.
func (w *Workspace) Empty() bool {
	return w == nil || len(w.roots) == 0
}

// Rel returns the display path for abs: relative to the first containing
// root when abs is inside one, otherwise abs unchanged.
func (w *Workspace) Rel(abs string) string {
	if w == nil {
		return abs
	}
	for _, r := range w.roots {
		if rel, ok := r.relOf(abs); ok {
			return rel
		}
	}
	return abs
}
