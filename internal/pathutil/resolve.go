// Package pathutil resolves operator-supplied paths.
package pathutil

import (
	"os"
	"path/filepath"
)

// Resolve converts an operator-supplied path to an absolute one,
// expanding a leading ~ to the home directory. An empty path resolves
// to the working directory. Symlinks are left in place: a symlinked
// library root is a stable name worth preserving in rendered scripts.
func Resolve(path string) (string, error) {
	if path == "" {
		return os.Getwd()
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = home + path[1:]
	}
	return filepath.Abs(path)
}
