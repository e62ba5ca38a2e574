package utils

import "testing"

func TestNormalizeRel(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"  src/app.ts  ", "src/app.ts"},
		{"./src/app.ts", "src/app.ts"},
		{"././a.txt", "a.txt"},
		{"dir/", "dir"},
		{`src\app.ts`, "src/app.ts"},
	}
	for _, tc := range cases {
		if got := NormalizeRel(tc.in); got != tc.want {
			t.Fatalf("NormalizeRel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStem(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"app.ts", "app"},
		{"README", "README"},
		{".env", ".env"},
		{"archive.tar.gz", "archive.tar"},
	}
	for _, tc := range cases {
		if got := Stem(tc.in); got != tc.want {
			t.Fatalf("Stem(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestHasExt(t *testing.T) {
	if !HasExt("app.ts") {
		t.Fatal("app.ts should have an extension")
	}
	if HasExt("README") {
		t.Fatal("README should not have an extension")
	}
	if HasExt(".env") {
		t.Fatal(".env should not count as extended")
	}
}
