// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Permission bits used for generated artifacts.
const (
	DirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	FilePermissions = 0o644 // rw-r--r--: artifacts are meant to be shared
)

// Sentinel errors for file utility operations.
var (
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrNilWriterFunc = errors.New("write function cannot be nil")
)

// AtomicWrite writes a file by streaming into a temp file in the target
// directory and renaming it over path once write succeeds.
// Readers never observe a half-written artifact, and concurrent writers of
// the same path each publish a complete file.
func AtomicWrite(path string, write func(w io.Writer) error) (err error) {
	if write == nil {
		return ErrNilWriterFunc
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if writeErr := write(tmp); writeErr != nil {
		_ = tmp.Close()
		return writeErr
	}
	if closeErr := tmp.Close(); closeErr != nil {
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if chmodErr := os.Chmod(tmpPath, FilePermissions); chmodErr != nil {
		return fmt.Errorf("setting permissions: %w", chmodErr)
	}
	if renameErr := os.Rename(tmpPath, path); renameErr != nil {
		return fmt.Errorf("publishing %s: %w", path, renameErr)
	}
	return nil
}

// EnsureDir creates dir and any missing parents. An empty dir is the
// working directory.
func EnsureDir(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// SafeName maps an identifier to a string usable as a single path element.
// Letters, digits, '-', '_' and '.' are kept; everything else becomes '_'.
// A leading dot is replaced so the result is never hidden or a traversal.
//
// Examples:
//   - "1001" -> "1001"
//   - "AB/12" -> "AB_12"
//   - "../x" -> "_._x"
func SafeName(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrEmptyName
	}

	var b strings.Builder
	b.Grow(len(name))
	for i, r := range name {
		switch {
		case r == '.' && i == 0:
			b.WriteByte('_')
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String(), nil
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
//   - "default" -> false (name)
//   - "./back.png" -> true (relative path)
//   - "/absolute/back.png" -> true (absolute)
//   - "C:\designs\back.png" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// ReplaceExt swaps the extension of path for ext (given without a dot).
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}
