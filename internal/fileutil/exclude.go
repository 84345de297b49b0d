package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
)

// ErrInvalidExclude indicates an exclude pattern could not be compiled.
var ErrInvalidExclude = errors.New("invalid exclude pattern")

// Excluder drops resolved files that match any of its patterns.
// A file matches when either its slash-separated path or its base name does.
type Excluder struct {
	matchers []glob.Glob
}

// NewExcluder compiles exclude patterns. Unlike the input patterns, these use
// full glob syntax ('**', character classes, alternation).
func NewExcluder(patterns []string) (*Excluder, error) {
	matchers := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		matcher, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidExclude, pattern, err)
		}
		matchers = append(matchers, matcher)
	}
	return &Excluder{matchers: matchers}, nil
}

// Excluded reports whether path matches an exclude pattern.
func (e *Excluder) Excluded(path string) bool {
	if e == nil {
		return false
	}
	slashed := filepath.ToSlash(path)
	name := filepath.Base(path)
	for _, m := range e.matchers {
		if m.Match(slashed) || m.Match(name) {
			return true
		}
	}
	return false
}

// Filter returns files without the excluded ones, preserving order.
func (e *Excluder) Filter(files []string) (kept, excluded []string) {
	kept = make([]string, 0, len(files))
	for _, f := range files {
		if e.Excluded(f) {
			excluded = append(excluded, f)
			continue
		}
		kept = append(kept, f)
	}
	return kept, excluded
}

// WithoutPath removes every entry of files that refers to the same file as target.
// Entries are compared by os.SameFile when target exists, and by cleaned
// absolute path otherwise.
func WithoutPath(files []string, target string) (kept, removed []string) {
	targetInfo, statErr := os.Stat(target)
	targetAbs, absErr := filepath.Abs(target)

	kept = make([]string, 0, len(files))
	for _, f := range files {
		same := false
		if statErr == nil {
			if info, err := os.Stat(f); err == nil && os.SameFile(info, targetInfo) {
				same = true
			}
		} else if absErr == nil {
			if abs, err := filepath.Abs(f); err == nil && abs == targetAbs {
				same = true
			}
		}

		if same {
			removed = append(removed, f)
			continue
		}
		kept = append(kept, f)
	}
	return kept, removed
}
