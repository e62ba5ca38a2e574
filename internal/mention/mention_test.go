package mention

import (
	"slices"
	"testing"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"no mention", "refactor this function", nil},
		{"single", "look at @app.ts please", []string{"app.ts"}},
		{"duplicate collapses", "fix @a.ts and @a.ts again", []string{"a.ts"}},
		{"trailing question mark", "what does @utils.js? do", []string{"utils.js"}},
		{"trailing period", "see @README.md.", []string{"README.md"}},
		{"relative path", "open @src/components/Button.tsx now", []string{"src/components/Button.tsx"}},
		{"order preserved", "@b.ts then @a.ts", []string{"b.ts", "a.ts"}},
		{"underscore and dash", "check @my_file-v2.scss", []string{"my_file-v2.scss"}},
		{"bare at sign", "just an @ sign", nil},
		{"punctuation only", "weird @... case", nil},
		{"mid-word at", "mail me@example.com", []string{"example.com"}},
		{"empty text", "", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Extract(tc.text)
			if !slices.Equal(got, tc.want) {
				t.Fatalf("Extract(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestExtractNoDuplicatesEver(t *testing.T) {
	got := Extract("@x @y @x @z @y @x")
	want := []string{"x", "y", "z"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
