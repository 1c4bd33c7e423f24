// Package fileutil provides small filesystem helpers shared across the
// library and CLI.
package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// FileExists returns true if path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// IsFilePath returns true if the string looks like a file path rather
// than a bare name.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// ToFileURL converts an absolute path to a file:// URL Chrome accepts.
func ToFileURL(abs string) string {
	return "file://" + filepath.ToSlash(abs)
}
