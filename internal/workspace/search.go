package workspace

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"contextify/internal/content"
	"contextify/internal/utils"
)

// Candidate is one unverified search hit. AbsPath is the identity key used
// by ranking and assembly; Score is filled in by Rank.
type Candidate struct {
	RelPath string
	AbsPath string
	Name    string
	Dir     string
	Ext     string
	IsImage bool
	Score   int
}

// Dependency and build-artifact trees are pruned from every walk.
var skipDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"vendor":       {},
	"dist":         {},
	"build":        {},
	"target":       {},
	".next":        {},
	".cache":       {},
}

// DefaultPatternLimit caps each search pattern's hit list per call.
const DefaultPatternLimit = 50

// errWalkDone stops a root walk early once every pattern bucket is full.
var errWalkDone = errors.New("walk done")

// matchFunc tests one search pattern against a candidate's relative path
// and basename, both lowercased.
type matchFunc func(rel, name string) bool

// patternsFor expands query into the fixed pattern family, in contract
// order: exact relative path, bare filename, filename substring, stem with
// any extension, stem substring with any extension. Expressing the family
// as a list keeps the aggregation loop free of per-pattern duplication.
func patternsFor(query string) []matchFunc {
	q := strings.ToLower(utils.NormalizeRel(query))
	stem := strings.ToLower(utils.Stem(path.Base(q)))
	stemDot := stem + "."
	return []matchFunc{
		func(rel, _ string) bool { return rel == q },
		func(_, name string) bool { return name == q },
		func(_, name string) bool { return strings.Contains(name, q) },
		func(_, name string) bool { return strings.HasPrefix(name, stemDot) },
		func(_, name string) bool { return strings.Contains(name, stem) && utils.HasExt(name) },
	}
}

// FindCandidates runs the pattern family against every root and returns the
// concatenated hits in pattern-major order, roots in configuration order
// within each pattern. Hits are not deduplicated here; Rank owns that.
// Roots are walked concurrently, but the merged order never depends on
// scheduling. Zero roots or a blank query yield an empty result without
// error.
func (w *Workspace) FindCandidates(ctx context.Context, query string, perPatternLimit int) []Candidate {
	if w.Empty() || strings.TrimSpace(query) == "" {
		return nil
	}
	if perPatternLimit <= 0 {
		perPatternLimit = DefaultPatternLimit
	}
	patterns := patternsFor(query)

	buckets := make([][][]Candidate, len(w.roots))
	g, gctx := errgroup.WithContext(ctx)
	for i, root := range w.roots {
		g.Go(func() error {
			b, err := root.collect(gctx, patterns, perPatternLimit)
			if err != nil {
				return err
			}
			buckets[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil
	}

	var out []Candidate
	for p := range patterns {
		n := 0
		for i := range buckets {
			for _, c := range buckets[i][p] {
				if n >= perPatternLimit {
					break
				}
				out = append(out, c)
				n++
			}
		}
	}
	return out
}

// collect walks the root once in lexical order, filling one bucket per
// pattern until each holds limit entries.
func (r Root) collect(ctx context.Context, patterns []matchFunc, limit int) ([][]Candidate, error) {
	buckets := make([][]Candidate, len(patterns))
	visited := 0
	err := filepath.WalkDir(r.abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip && p != r.abs {
				return filepath.SkipDir
			}
			return nil
		}
		visited++
		if visited%512 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		rel, ok := r.relOf(p)
		if !ok {
			return nil
		}
		relFold := strings.ToLower(rel)
		nameFold := strings.ToLower(d.Name())

		matched := false
		var cand Candidate
		for i, match := range patterns {
			if len(buckets[i]) >= limit || !match(relFold, nameFold) {
				continue
			}
			if !matched {
				ext := strings.ToLower(path.Ext(rel))
				cand = Candidate{
					RelPath: rel,
					AbsPath: p,
					Name:    d.Name(),
					Dir:     dirOf(rel),
					Ext:     ext,
					IsImage: content.IsImageExt(ext),
				}
				matched = true
			}
			buckets[i] = append(buckets[i], cand)
		}
		for i := range buckets {
			if len(buckets[i]) < limit {
				return nil
			}
		}
		return errWalkDone
	})
	if err != nil && !errors.Is(err, errWalkDone) {
		return nil, err
	}
	return buckets, nil
}

func dirOf(rel string) string {
	dir := path.Dir(rel)
	if dir == "." {
		return ""
	}
	return dir
}
