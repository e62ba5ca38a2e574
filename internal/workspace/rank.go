package workspace

import (
	"context"
	"path"
	"sort"
	"strings"

	"contextify/internal/utils"
)

// Score weights form the observable ranking contract. A hit can earn
// several lines at once, so an exact relative-path match also collects the
// substring and filename weights and ends up far above any partial hit.
const (
	scoreExactRelPath = 1000
	scorePathContains = 500
	scoreDirContains  = 300
	scoreNameExact    = 200
	scoreNamePrefix   = 100
	scoreNameContains = 50
	scoreSourceExt    = 20
)

// sourceExts earn the commonly-edited bonus so source files beat lockfiles
// and assets with otherwise identical scores.
var sourceExts = map[string]struct{}{
	".js":   {},
	".jsx":  {},
	".ts":   {},
	".tsx":  {},
	".css":  {},
	".scss": {},
	".json": {},
	".html": {},
	".md":   {},
	".go":   {},
	".py":   {},
	".rb":   {},
	".rs":   {},
	".java": {},
	".c":    {},
	".h":    {},
	".cpp":  {},
	".sh":   {},
	".yml":  {},
	".yaml": {},
}

// SuggestionLimit bounds ranked results surfaced for live @-completion.
const SuggestionLimit = 20

// Rank collapses duplicate hits by absolute path, keeping the first
// occurrence, scores each survivor against query, and orders them by score
// descending. Equal scores fall back to shorter relative path, then
// lexicographic relative and absolute path, so the order is total and
// independent of input interleaving.
func Rank(cands []Candidate, query string) []Candidate {
	if len(cands) == 0 {
		return nil
	}
	q := strings.ToLower(utils.NormalizeRel(query))
	qBase := strings.ToLower(path.Base(q))

	seen := make(map[string]struct{}, len(cands))
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if _, dup := seen[c.AbsPath]; dup {
			continue
		}
		seen[c.AbsPath] = struct{}{}
		c.Score = score(c, q, qBase)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if len(out[i].RelPath) != len(out[j].RelPath) {
			return len(out[i].RelPath) < len(out[j].RelPath)
		}
		if out[i].RelPath != out[j].RelPath {
			return out[i].RelPath < out[j].RelPath
		}
		return out[i].AbsPath < out[j].AbsPath
	})
	return out
}

func score(c Candidate, q, qBase string) int {
	rel := strings.ToLower(c.RelPath)
	name := strings.ToLower(c.Name)
	dir := strings.ToLower(c.Dir)

	s := 0
	if q != "" {
		if rel == q {
			s += scoreExactRelPath
		}
		if strings.Contains(rel, q) {
			s += scorePathContains
		}
		if dir != "" && strings.Contains(dir, q) {
			s += scoreDirContains
		}
	}
	if qBase != "" && qBase != "." {
		if name == qBase {
			s += scoreNameExact
		}
		if strings.HasPrefix(name, qBase) {
			s += scoreNamePrefix
		}
		if strings.Contains(name, qBase) {
			s += scoreNameContains
		}
	}
	if _, ok := sourceExts[c.Ext]; ok {
		s += scoreSourceExt
	}
	return s
}

// Suggest searches and ranks query across the workspace and truncates the
// result to SuggestionLimit. Truncation happens after ranking so the cap
// never biases which hits win.
func (w *Workspace) Suggest(ctx context.Context, query string) []Candidate {
	ranked := Rank(w.FindCandidates(ctx, query, DefaultPatternLimit), query)
	if len(ranked) > SuggestionLimit {
		ranked = ranked[:SuggestionLimit]
	}
	return ranked
}
