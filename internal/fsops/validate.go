package fsops

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrPathTraversal indicates a path containing ".." or "~".
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrAbsolutePath indicates an absolute path where only relative paths are allowed.
	ErrAbsolutePath = errors.New("absolute paths not allowed")
)

// PathError records a rejected path together with what it was meant for.
type PathError struct {
	// Kind is ErrPathTraversal or ErrAbsolutePath.
	Kind error

	// Path is the offending path string as supplied.
	Path string

	// Purpose labels the argument, e.g. "routes file" or "output file".
	Purpose string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s in %s: %s", e.Kind, e.Purpose, e.Path)
}

func (e *PathError) Unwrap() error {
	return e.Kind
}

// ValidatePath rejects path strings that contain ".." or "~" anywhere, or
// that are absolute on the current platform. It never touches the
// filesystem and does not resolve symlinks; only the literal patterns are
// blocked. On success the path is returned unchanged.
func ValidatePath(path, purpose string) (string, error) {
	if strings.Contains(path, "..") || strings.Contains(path, "~") {
		return "", &PathError{Kind: ErrPathTraversal, Path: path, Purpose: purpose}
	}

	if filepath.IsAbs(path) {
		return "", &PathError{Kind: ErrAbsolutePath, Path: path, Purpose: purpose}
	}

	return path, nil
}
