package fileutil

import "strings"

// wildcards are the only metacharacters Match understands.
const wildcards = "*?"

// HasWildcard reports whether pattern contains '*' or '?'.
func HasWildcard(pattern string) bool {
	return strings.ContainsAny(pattern, wildcards)
}

// Match reports whether candidate is fully matched by pattern.
//
// '*' matches any run of bytes (including none) and '?' matches exactly one
// byte. Every other byte matches itself. There are no character classes and
// no escapes. On a mismatch the scan resumes just after the most recent '*',
// with the candidate advanced one byte past where that '*' started matching.
func Match(candidate, pattern string) bool {
	c, p := 0, 0
	star, mark := -1, 0

	for c < len(candidate) {
		switch {
		case p < len(pattern) && pattern[p] == '*':
			star = p
			mark = c
			p++
		case p < len(pattern) && (pattern[p] == '?' || pattern[p] == candidate[c]):
			c++
			p++
		case star >= 0:
			p = star + 1
			mark++
			c = mark
		default:
			return false
		}
	}

	// Trailing stars match the empty remainder
	for p < len(pattern) && pattern[p] == '*' {
		p++
	}

	return p == len(pattern)
}
