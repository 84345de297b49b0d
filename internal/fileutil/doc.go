// Package fileutil resolves user-supplied path patterns into input files.
//
// Patterns are either literal paths or globs using '*' (any run of bytes)
// and '?' (exactly one byte). A glob only applies to the final path element:
// its directory part is listed non-recursively and each entry name must be
// fully matched by the filename part.
//
// # Main Components
//
// Match - pure wildcard matcher, independent of the filesystem.
//
// ExpandPatterns - resolves patterns through a DirLister and returns an
// ExpandResult holding the files found and a *PatternError per problem.
// Problems are never fatal here:
//
//	result := fileutil.ExpandPatterns([]string{"lists/*.txt", "extra.txt"}, fileutil.ExpandOptions{})
//	for _, w := range result.Warnings {
//	    log.Printf("warning: %v", w)
//	}
//	if len(result.Files) == 0 {
//	    // nothing to merge
//	}
//
// Excluder - drops resolved files matching gobwas/glob exclude patterns.
//
// WithoutPath - drops resolved files that are the same file as a target,
// used to keep the merge output out of its own inputs.
package fileutil
