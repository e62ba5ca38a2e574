package assemble

import (
	"path"
	"strings"
)

// langTags maps file extensions to fence language tags. Unknown extensions
// fall back to plain text, which also covers image summaries.
var langTags = map[string]string{
	".js":   "javascript",
	".jsx":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
	".css":  "css",
	".scss": "scss",
	".json": "json",
	".html": "html",
	".md":   "markdown",
	".go":   "go",
	".py":   "python",
	".rb":   "ruby",
	".rs":   "rust",
	".java": "java",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".sh":   "bash",
	".yml":  "yaml",
	".yaml": "yaml",
}

// LanguageTag returns the fence tag for p's extension.
func LanguageTag(p string) string {
	if tag, ok := langTags[strings.ToLower(path.Ext(p))]; ok {
		return tag
	}
	return "text"
}
