// Package discover walks directory trees and returns candidate file paths
// filtered by extension allow-list and a fixed directory ignore-list.
package discover

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxDepth bounds how far the walk descends below the root.
const DefaultMaxDepth = 10

// DefaultIgnoreDirs lists directory names that are never descended into:
// version-control metadata, dependency caches, and virtual environments.
func DefaultIgnoreDirs() []string {
	return []string{
		".git", ".hg", ".svn",
		"node_modules", "bower_components",
		"vendor", "target", "build", "dist",
		"__pycache__", ".venv", "venv", "env",
		".idea", ".vscode", ".cache",
	}
}

// Options configures a walk.
type Options struct {
	// AllowedExtensions filters files; entries are lowercase with a leading
	// dot. An empty list matches nothing.
	AllowedExtensions []string
	// Recursive controls whether subdirectories are entered at all.
	Recursive bool
	// MaxDepth bounds descent below the root; zero means DefaultMaxDepth.
	MaxDepth int
	// IgnoreDirs overrides the default ignore list when non-nil.
	IgnoreDirs []string
	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Walk traverses the tree rooted at dirPath depth-first and returns the
// matching file paths. Hidden entries and ignored directories are skipped.
// Exceeding MaxDepth stops descent with a log line, and permission errors on
// a subdirectory skip that subtree rather than failing the walk.
func Walk(dirPath string, opts Options) ([]string, error) {
	info, err := os.Stat(dirPath)
	if err != nil {
		return nil, fmt.Errorf("stat folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dirPath)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	ignore := opts.IgnoreDirs
	if ignore == nil {
		ignore = DefaultIgnoreDirs()
	}
	ignoreSet := make(map[string]struct{}, len(ignore))
	for _, name := range ignore {
		ignoreSet[name] = struct{}{}
	}
	allowed := make(map[string]struct{}, len(opts.AllowedExtensions))
	for _, ext := range opts.AllowedExtensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	root := filepath.Clean(dirPath)
	var files []string

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Permission problems on a subtree are a warning, not a failure.
			logger.Warn("folder.walk.skip", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == root {
			return nil
		}

		name := d.Name()
		hidden := strings.HasPrefix(name, ".")

		if d.IsDir() {
			if hidden {
				return filepath.SkipDir
			}
			if _, ok := ignoreSet[name]; ok {
				return filepath.SkipDir
			}
			if !opts.Recursive {
				return filepath.SkipDir
			}
			if depthOf(root, path) > maxDepth {
				logger.Info("folder.walk.max_depth", "path", path, "max_depth", maxDepth)
				return filepath.SkipDir
			}
			return nil
		}

		if hidden {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(name))
		if _, ok := allowed[ext]; !ok {
			return nil
		}
		files = append(files, path)
		return nil
	}

	if err := filepath.WalkDir(root, walkFn); err != nil {
		return nil, fmt.Errorf("scan directory: %w", err)
	}
	return files, nil
}

// depthOf returns how many levels path sits below root.
func depthOf(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return len(strings.Split(filepath.ToSlash(rel), "/"))
}
