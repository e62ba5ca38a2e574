package workspace

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"contextify/internal/utils"
)

// Resolve turns one mention token into an absolute file path.
//
// Absolute tokens pass through untouched; whether they exist is the
// reader's concern. Relative tokens are probed against each root in
// configuration order, and on a miss the token's basename is searched
// across the workspace, accepting a hit whose relative path equals the
// full token case-insensitively. A token without an extension also
// matches on the extension-stripped path, so "readme" resolves
// README.md. Anything less specific stays a suggestion, never a
// resolution.
func (w *Workspace) Resolve(ctx context.Context, token string) (string, error) {
	tok := strings.TrimSpace(token)
	if tok == "" {
		return "", &NotFoundError{Token: token}
	}
	if filepath.IsAbs(tok) {
		return tok, nil
	}
	if w.Empty() {
		return "", ErrNoWorkspace
	}
	rel := utils.NormalizeRel(tok)
	for _, r := range w.roots {
		if abs, ok := r.probe(rel); ok {
			return abs, nil
		}
	}
	cands := w.FindCandidates(ctx, path.Base(rel), DefaultPatternLimit)
	for _, c := range cands {
		if strings.EqualFold(c.RelPath, rel) {
			return c.AbsPath, nil
		}
	}
	if !utils.HasExt(rel) {
		for _, c := range cands {
			if strings.EqualFold(utils.Stem(c.RelPath), rel) {
				return c.AbsPath, nil
			}
		}
	}
	return "", &NotFoundError{Token: token}
}
