// Package files holds small filesystem predicates shared by the resolver and
// the scanner. Trimmed from the teacher's pkg/util/files down to the
// entries this module actually exercises.
package files

import (
	"errors"
	"fmt"
	"os"
)

// Exists reports whether path exists on disk, without distinguishing file
// from directory.
func Exists(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return true, nil
	} else if os.IsNotExist(err) {
		return false, nil
	} else {
		return false, fmt.Errorf("failed to determine if %s exists: %w", path, err)
	}
}

// IsDir reports whether path exists and is a directory. A missing path is
// not an error here: it simply reports false, matching the scanner's
// "missing publish directory is not fatal" contract.
func IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// WriteIfDifferent writes content to file only if the file doesn't already
// hold that exact content, avoiding spurious mtime churn on files whose
// content hasn't actually changed.
func WriteIfDifferent(file string, content []byte) error {
	if existing, err := os.ReadFile(file); err == nil {
		if string(existing) == string(content) {
			return nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.WriteFile(file, content, 0o644)
}
