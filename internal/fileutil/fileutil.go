// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/multierr"
)

// MaxManuscriptSize limits manuscript input to keep a whole book in memory (32MB).
const MaxManuscriptSize = 32 << 20

// Sentinel errors for file utility operations.
var (
	ErrManuscriptTooLarge = errors.New("manuscript exceeds maximum size")
	ErrNotUTF8            = errors.New("manuscript is not valid UTF-8")
	ErrIsDirectory        = errors.New("path is a directory")
)

// ReadManuscript reads a whole manuscript file. The content must be UTF-8;
// a leading byte order mark is removed.
func ReadManuscript(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxManuscriptSize+1))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if len(data) > MaxManuscriptSize {
		return "", fmt.Errorf("%w: %s (max %d bytes)", ErrManuscriptTooLarge, path, MaxManuscriptSize)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s", ErrNotUTF8, path)
	}
	return strings.TrimPrefix(string(data), "\uFEFF"), nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".md2kdp-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			err = multierr.Append(err, removeIfExists(tmpPath))
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return multierr.Append(fmt.Errorf("writing temp file: %w", err), tmp.Close())
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "classic" -> false (name)
//   - "./book.yaml" -> true (relative path)
//   - "/absolute/theme.yaml" -> true (absolute)
//   - "C:\themes\novel.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
