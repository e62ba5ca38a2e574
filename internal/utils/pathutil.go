package utils

import (
	"path"
	"strings"
)

// NormalizeRel trims whitespace, converts separators to forward slashes,
// and strips leading "./" and trailing "/" so relative paths compare
// consistently across platforms and input styles. Backslashes are folded
// unconditionally since tokens may be typed in Windows style on any host.
func NormalizeRel(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, `\`, "/")
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	p = strings.TrimRight(p, "/")
	return p
}

// Stem returns name without its extension. Dotfiles such as ".env" keep
// their full name, matching how editors treat them as extensionless.
func Stem(name string) string {
	ext := path.Ext(name)
	if ext == "" || ext == name {
		return name
	}
	return strings.TrimSuffix(name, ext)
}

// HasExt reports whether name carries a real extension. A leading-dot-only
// name (".env") does not count.
func HasExt(name string) bool {
	ext := path.Ext(name)
	return ext != "" && ext != name
}
