// Package content loads resolved workspace files for context assembly,
// substituting a metadata summary for binary image formats.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var imageExts = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".webp": {},
	".ico":  {},
	".bmp":  {},
	".tiff": {},
	".svg":  {},
}

// IsImageExt reports whether ext (lowercased, dot included) is a recognized
// image format.
func IsImageExt(ext string) bool {
	_, ok := imageExts[ext]
	return ok
}

// IsImagePath reports whether the path's extension is a recognized image
// format.
func IsImagePath(p string) bool {
	return IsImageExt(strings.ToLower(filepath.Ext(p)))
}

// ReadError reports a failed read or stat of an otherwise-resolved path.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string { return fmt.Sprintf("read %s: %v", e.Path, e.Err) }
func (e *ReadError) Unwrap() error { return e.Err }

// Read returns the file's full text content, or a metadata summary when the
// extension is a recognized image format. Image content is never returned
// raw. A failed read of a non-image path fails with *ReadError.
func Read(absPath string) (string, error) {
	if IsImagePath(absPath) {
		return imageSummary(absPath), nil
	}
	b, err := os.ReadFile(absPath)
	if err != nil {
		return "", &ReadError{Path: absPath, Err: err}
	}
	return string(b), nil
}

// imageSummary renders the fixed-format description used in place of image
// bytes. When stat fails the size and modification lines are omitted.
func imageSummary(absPath string) string {
	name := filepath.Base(absPath)
	ext := strings.ToUpper(strings.TrimPrefix(filepath.Ext(absPath), "."))
	fi, err := os.Stat(absPath)
	if err != nil {
		return fmt.Sprintf("Image: %s\nExtension: %s\nPath: %s", name, ext, absPath)
	}
	return fmt.Sprintf("Image: %s\nExtension: %s\nSize: %s\nPath: %s\nModified: %s",
		name, ext, HumanSize(fi.Size()), absPath, fi.ModTime().Format("2006-01-02 15:04:05"))
}

// HumanSize formats a byte count with binary-prefix units and two-decimal
// rounding above the byte range.
func HumanSize(n int64) string {
	const unit = 1024
	switch {
	case n < unit:
		return fmt.Sprintf("%d bytes", n)
	case n < unit*unit:
		return fmt.Sprintf("%.2f KB", float64(n)/unit)
	case n < unit*unit*unit:
		return fmt.Sprintf("%.2f MB", float64(n)/(unit*unit))
	default:
		return fmt.Sprintf("%.2f GB", float64(n)/(unit*unit*unit))
	}
}
