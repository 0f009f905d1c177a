// Package tagging writes and reads audio file metadata, dispatching on file
// extension to the container-specific library.
package tagging

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"stylus/internal/services"
)

// Tags carries the fields stylus writes. Zero values mean "do not write this
// field"; Artist and Title are always written.
type Tags struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`
	Year   int    `json:"year"`
	Genre  string `json:"genre"`
	Label  string `json:"label"`
}

var supportedExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".m4a":  true,
	".mp4":  true,
}

// IsSupported reports whether files with the given extension can be written.
// The extension may be passed with or without the leading dot.
func IsSupported(ext string) bool {
	return supportedExtensions[normalizeExt(ext)]
}

// SupportedExtensions returns the writable extensions in sorted order.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Write stores the tags in the file at path. Unsupported extensions yield an
// error marked services.ErrUnsupportedFormat, which callers classify as a
// skip.
func Write(path string, tags Tags) error {
	ext := normalizeExt(filepath.Ext(path))
	switch ext {
	case ".mp3":
		return writeMP3(path, tags)
	case ".flac":
		return writeFLAC(path, tags)
	case ".m4a", ".mp4":
		return writeMP4(path, tags)
	default:
		return services.Wrap(services.ErrUnsupportedFormat, "tagging", "write", fmt.Sprintf("unsupported extension %q", ext), nil)
	}
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
