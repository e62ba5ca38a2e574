// Package mention extracts @-style file references from free-form chat text.
package mention

import (
	"regexp"
	"strings"
)

// tokenRe captures an @-reference: "@" followed by path-safe characters.
// Recognized extension suffixes fall inside the same character set, so a
// single class covers both bare names and "name.ext" forms.
var tokenRe = regexp.MustCompile(`@([A-Za-z0-9./_-]+)`)

// trailingPunct is stripped from the end of a captured token so that
// sentence punctuation ("look at @utils.js?") never leaks into the token.
const trailingPunct = ".,;!?"

// Extract returns the file-reference tokens found in text, in first-occurrence
// order with duplicates collapsed. It never fails; text without mentions
// yields nil.
func Extract(text string) []string {
	if !strings.Contains(text, "@") {
		return nil
	}
	matches := tokenRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		tok := strings.TrimRight(m[1], trailingPunct)
		if tok == "" {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
