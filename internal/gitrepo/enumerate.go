package gitrepo

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/quarrylabs/quarry/internal/discover"
	"github.com/quarrylabs/quarry/internal/validate"
)

// File is one enumerated file of a working copy.
type File struct {
	Path     string // relative to the copy root, slash-separated
	FullPath string
	Name     string
	Size     int64
	Category validate.Category
}

// EnumerateOptions controls which files of a working copy are returned.
type EnumerateOptions struct {
	// Include limits enumeration to matching paths when non-empty.
	Include []string
	// Exclude drops matching paths; applied after Include.
	Exclude []string
	// MaxFileSize skips larger files; zero means no ceiling.
	MaxFileSize int64
	// Formats categorizes files; files without a category are skipped.
	Formats validate.Table
	// DocsOnly keeps only documentation categories (documents, markup).
	DocsOnly bool
	// ExcludeCode drops the code category.
	ExcludeCode bool
	// IgnoreDirs overrides the default ignored directory names when non-nil.
	IgnoreDirs []string
}

// Enumerate walks the working copy applying the ignore-pattern philosophy of
// folder discovery plus the caller's include/exclude globs and size ceiling.
func (p *Processor) Enumerate(copy *WorkingCopy, opts EnumerateOptions) ([]File, error) {
	if copy == nil || copy.Root == "" {
		return nil, fmt.Errorf("nil working copy")
	}
	table := opts.Formats
	if table == nil {
		table = validate.DefaultTable()
	}
	ignore := opts.IgnoreDirs
	if ignore == nil {
		ignore = discover.DefaultIgnoreDirs()
	}
	ignoreSet := make(map[string]struct{}, len(ignore))
	for _, name := range ignore {
		ignoreSet[name] = struct{}{}
	}

	var files []File
	skipped := map[string]int{}

	err := filepath.WalkDir(copy.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			p.logger.Warn("repo.enumerate.skip", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == copy.Root {
			return nil
		}

		name := d.Name()
		rel, relErr := filepath.Rel(copy.Root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if _, ok := ignoreSet[name]; ok {
				skipped["ignored_dir"]++
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}
		if len(opts.Include) > 0 && !matchAny(rel, opts.Include) {
			skipped["not_included"]++
			return nil
		}
		if matchAny(rel, opts.Exclude) {
			skipped["excluded"]++
			return nil
		}

		ext := strings.ToLower(filepath.Ext(name))
		category, ok := table[ext]
		if !ok {
			skipped["unsupported"]++
			return nil
		}
		if opts.DocsOnly && category != validate.CategoryDocuments && category != validate.CategoryMarkup {
			skipped["not_docs"]++
			return nil
		}
		if opts.ExcludeCode && category == validate.CategoryCode {
			skipped["code"]++
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}
		if opts.MaxFileSize > 0 && info.Size() > opts.MaxFileSize {
			skipped["too_large"]++
			p.logger.Warn("repo.enumerate.too_large", "path", rel, "size", info.Size(), "limit", opts.MaxFileSize)
			return nil
		}

		files = append(files, File{
			Path:     rel,
			FullPath: path,
			Name:     name,
			Size:     info.Size(),
			Category: category,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk working copy: %w", err)
	}

	p.logger.Info("repo.enumerate.ok", "root", copy.Root, "files", len(files), "skipped", skipped)
	return files, nil
}
