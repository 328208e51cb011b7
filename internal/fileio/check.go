// Package fileio validates input file paths and prepares output locations
// before the pipeline touches a solver.
package fileio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var validExts = map[string]bool{
	".csv": true,
}

// InputFileError reports a missing input file or a non-tabular file type.
// Client fault: the caller supplied a bad path.
type InputFileError struct {
	Path   string
	Reason string
}

func (e *InputFileError) Error() string {
	return fmt.Sprintf("input file %s: %s", e.Path, e.Reason)
}

// OutputPathError reports an output location that cannot be prepared.
type OutputPathError struct {
	Reason string
}

func (e *OutputPathError) Error() string {
	return "cannot prepare output path: " + e.Reason
}

// ValidateInputFile resolves path, ensures it exists, is a regular file, and
// carries a supported tabular extension.
func ValidateInputFile(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &InputFileError{Path: path, Reason: err.Error()}
	}
	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return "", &InputFileError{Path: abs, Reason: "file not found"}
	}
	if !validExts[strings.ToLower(filepath.Ext(abs))] {
		return "", &InputFileError{Path: abs, Reason: "invalid file type, expected .csv"}
	}
	return abs, nil
}

// PrepareOutputPath resolves path and creates its parent directory.
func PrepareOutputPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &OutputPathError{Reason: err.Error()}
	}
	parent := filepath.Dir(abs)
	if info, err := os.Stat(parent); err == nil && !info.IsDir() {
		return "", &OutputPathError{Reason: "parent exists and is not a directory: " + parent}
	}
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return "", &OutputPathError{Reason: err.Error()}
	}
	return abs, nil
}
