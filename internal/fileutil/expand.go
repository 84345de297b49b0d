package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Reason classifies why a pattern contributed no files.
type Reason int

const (
	// ReasonMissingFile means a literal path does not exist.
	ReasonMissingFile Reason = iota
	// ReasonNotRegular means a literal path exists but is not a regular file.
	ReasonNotRegular
	// ReasonMissingDir means the directory part of a glob does not exist or is not a directory.
	ReasonMissingDir
	// ReasonListFailed means the directory could not be listed.
	ReasonListFailed
	// ReasonNoMatches means the glob matched no regular files.
	ReasonNoMatches
)

// String returns the string representation of Reason.
func (r Reason) String() string {
	switch r {
	case ReasonMissingFile:
		return "missing file"
	case ReasonNotRegular:
		return "not a regular file"
	case ReasonMissingDir:
		return "missing directory"
	case ReasonListFailed:
		return "list failed"
	case ReasonNoMatches:
		return "no matches"
	default:
		return "unknown"
	}
}

// PatternError is a non-fatal problem encountered while expanding one pattern.
type PatternError struct {
	Pattern string // Pattern as supplied by the caller
	Path    string // File or directory the problem refers to
	Reason  Reason
	Err     error // Underlying filesystem error (optional)
}

// Error implements the error interface for PatternError.
func (e *PatternError) Error() string {
	var msg string
	switch e.Reason {
	case ReasonMissingFile, ReasonNotRegular:
		msg = fmt.Sprintf("file not found or not a regular file: %s", e.Path)
	case ReasonMissingDir:
		msg = fmt.Sprintf("directory not found for pattern: %s", e.Pattern)
	case ReasonListFailed:
		msg = fmt.Sprintf("error processing pattern '%s'", e.Pattern)
	case ReasonNoMatches:
		msg = fmt.Sprintf("no files match pattern: %s", e.Pattern)
	default:
		msg = fmt.Sprintf("pattern %s: %s", e.Pattern, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error for error wrapping support.
func (e *PatternError) Unwrap() error {
	return e.Err
}

// DirLister is the directory access needed by ExpandPatterns.
// Stat must follow symbolic links.
type DirLister interface {
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
}

// OSLister implements DirLister on the local filesystem.
type OSLister struct{}

// Stat calls os.Stat.
func (OSLister) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

// ReadDir calls os.ReadDir, which lists entries in name order.
func (OSLister) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }

// ExpandOptions configures pattern expansion.
type ExpandOptions struct {
	// Lister provides directory access (nil = OSLister)
	Lister DirLister
}

// ExpandResult contains the resolved files and the non-fatal problems met on the way.
type ExpandResult struct {
	// Files are the resolved paths in pattern order
	Files []string
	// Warnings are *PatternError values, one per skipped pattern or path
	Warnings []error
}

// ExpandPatterns resolves literal paths and '*'/'?' globs into existing regular files.
//
// Patterns are processed in order. A literal is kept only if it names a
// regular file. A glob is split into a directory and a filename pattern; the
// directory's immediate entries are matched with Match. Problems never abort
// expansion, they are collected in Warnings and the pattern contributes
// nothing more. An empty Files slice is for the caller to treat as fatal.
func ExpandPatterns(patterns []string, opts ExpandOptions) *ExpandResult {
	lister := opts.Lister
	if lister == nil {
		lister = OSLister{}
	}

	result := &ExpandResult{
		Files:    make([]string, 0, len(patterns)),
		Warnings: make([]error, 0),
	}

	for _, pattern := range patterns {
		if HasWildcard(pattern) {
			expandGlob(lister, pattern, result)
		} else {
			expandLiteral(lister, pattern, result)
		}
	}

	return result
}

func expandLiteral(lister DirLister, path string, result *ExpandResult) {
	info, err := lister.Stat(path)
	if err != nil {
		result.Warnings = append(result.Warnings, &PatternError{
			Pattern: path,
			Path:    path,
			Reason:  ReasonMissingFile,
			Err:     unlessNotExist(err),
		})
		return
	}
	if !info.Mode().IsRegular() {
		result.Warnings = append(result.Warnings, &PatternError{
			Pattern: path,
			Path:    path,
			Reason:  ReasonNotRegular,
		})
		return
	}
	result.Files = append(result.Files, path)
}

func expandGlob(lister DirLister, pattern string, result *ExpandResult) {
	dir, name := filepath.Split(pattern)
	if dir == "" {
		dir = "."
	} else {
		dir = filepath.Clean(dir)
	}

	info, err := lister.Stat(dir)
	if err != nil || !info.IsDir() {
		reason := ReasonMissingDir
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			reason = ReasonListFailed
		}
		result.Warnings = append(result.Warnings, &PatternError{
			Pattern: pattern,
			Path:    dir,
			Reason:  reason,
			Err:     unlessNotExist(err),
		})
		return
	}

	entries, err := lister.ReadDir(dir)
	if err != nil {
		result.Warnings = append(result.Warnings, &PatternError{
			Pattern: pattern,
			Path:    dir,
			Reason:  ReasonListFailed,
			Err:     err,
		})
		return
	}

	matched := 0
	for _, entry := range entries {
		if entry.IsDir() || !Match(entry.Name(), name) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if !isRegularEntry(lister, path, entry) {
			continue
		}

		result.Files = append(result.Files, path)
		matched++
	}

	if matched == 0 {
		result.Warnings = append(result.Warnings, &PatternError{
			Pattern: pattern,
			Path:    dir,
			Reason:  ReasonNoMatches,
		})
	}
}

// isRegularEntry reports whether entry is a regular file, following symlinks.
// Dangling links are not regular files.
func isRegularEntry(lister DirLister, path string, entry fs.DirEntry) bool {
	mode := entry.Type()
	if mode.IsRegular() {
		return true
	}
	if mode&fs.ModeSymlink == 0 {
		return false
	}
	info, err := lister.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// unlessNotExist drops plain not-exist errors, whose message adds nothing to the warning.
func unlessNotExist(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
