package gitrepo

import (
	"path/filepath"
	"strings"
)

// matchGlob matches a slash-normalized relative path against a glob pattern.
// Supported syntax:
//   - *    any sequence of non-separator characters
//   - **   any sequence including separators (any depth)
//   - ?    a single non-separator character
//   - [..] character classes, as in path.Match
//
// A pattern without a slash matches the basename at any depth, so "*.min.js"
// excludes minified files wherever they sit.
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	// dir/** matches the directory itself and everything below it.
	if strings.HasSuffix(pattern, "/**") {
		prefix := strings.TrimSuffix(pattern, "/**")
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}

	// **/name matches name at the root or at any depth.
	if strings.HasPrefix(pattern, "**/") {
		suffix := strings.TrimPrefix(pattern, "**/")
		if matchGlob(path, suffix) {
			return true
		}
		parts := strings.Split(path, "/")
		for i := 1; i < len(parts); i++ {
			if matchGlob(strings.Join(parts[i:], "/"), suffix) {
				return true
			}
		}
		return false
	}

	// Basename-only patterns match at any depth.
	if !strings.Contains(pattern, "/") {
		base := path
		if idx := strings.LastIndex(path, "/"); idx >= 0 {
			base = path[idx+1:]
		}
		ok, err := filepath.Match(pattern, base)
		return err == nil && ok
	}

	// Patterns with an interior ** are expanded segment-wise.
	if strings.Contains(pattern, "**") {
		return matchSegments(strings.Split(path, "/"), strings.Split(pattern, "/"))
	}

	ok, err := filepath.Match(pattern, path)
	return err == nil && ok
}

// matchSegments matches path segments against pattern segments where a "**"
// segment may consume zero or more path segments.
func matchSegments(path, pattern []string) bool {
	if len(pattern) == 0 {
		return len(path) == 0
	}
	if pattern[0] == "**" {
		for skip := 0; skip <= len(path); skip++ {
			if matchSegments(path[skip:], pattern[1:]) {
				return true
			}
		}
		return false
	}
	if len(path) == 0 {
		return false
	}
	ok, err := filepath.Match(pattern[0], path[0])
	if err != nil || !ok {
		return false
	}
	return matchSegments(path[1:], pattern[1:])
}

// matchAny reports whether path matches any of the patterns.
func matchAny(path string, patterns []string) bool {
	for _, p := range patterns {
		if matchGlob(path, p) {
			return true
		}
	}
	return false
}
