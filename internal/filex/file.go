// Package filex holds filesystem helpers for local database files.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IsFilePath reports whether a SQLite DSN names a plain file on disk rather
// than an in-memory database or a "file:" URI.
func IsFilePath(dsn string) bool {
	dsn = strings.TrimSpace(dsn)
	return dsn != "" && dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}

// EnsureParentDir creates the directory that will hold path. Relative paths
// are resolved against the working directory.
func EnsureParentDir(path string) (string, error) {
	dir := filepath.Dir(path)
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
