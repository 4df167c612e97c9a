package ioutils

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	invalidChars  = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots  = regexp.MustCompile(`\.+$`)
	repeatedSpace = regexp.MustCompile(`\s+`)
)

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing. A cancelled ctx aborts before writing.
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SanitizeFileName removes or replaces characters that are invalid in file names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Leading and trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("Party: 80s/90s")   // Returns "Party_ 80s_90s"
//	SanitizeFileName("Mix...")           // Returns "Mix"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// DeckFileName returns the default output file name for a playlist,
// e.g. "Hitster_Party Mix.pdf". An empty name gives "Hitster_cards.pdf".
func DeckFileName(playlistName string) string {
	name := SanitizeFileName(playlistName)
	if name == "" {
		name = "cards"
	}
	return "Hitster_" + name + ".pdf"
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// RemovalFailure is a file that could not be removed.
type RemovalFailure struct {
	Path string
	Err  error
}

// RemoveFiles deletes every path, continuing past failures. Files that are
// already gone count as removed. The failures are returned in input order.
func RemoveFiles(paths []string) []RemovalFailure {
	var failures []RemovalFailure
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			failures = append(failures, RemovalFailure{Path: p, Err: err})
		}
	}
	return failures
}

// RemoveDirIfEmpty removes dir when nothing is left in it.
func RemoveDirIfEmpty(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(entries) > 0 {
		return nil
	}
	return os.Remove(filepath.Clean(dir))
}
