// Package validate inspects a single candidate input and accepts or rejects
// it based on declared size and extension. It is a pure function of its
// inputs and never touches storage or network.
package validate

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Item is the minimal view of a candidate input the validator needs.
type Item struct {
	Name string // file name or item reference, extension derived from it
	Size int64  // declared size in bytes
}

// Result is the structured accept/reject outcome.
type Result struct {
	Accepted  bool
	Reason    string // human-readable rejection reason, empty when accepted
	Extension string // normalized (lowercase) extension
	Size      int64
	Category  Category
}

// Validate checks item against maxSize and the format table.
func Validate(item Item, maxSize int64, table Table) Result {
	ext := strings.ToLower(filepath.Ext(item.Name))

	if maxSize > 0 && item.Size > maxSize {
		return Result{
			Accepted:  false,
			Reason:    fmt.Sprintf("oversized: %d bytes exceeds limit of %d bytes", item.Size, maxSize),
			Extension: ext,
			Size:      item.Size,
		}
	}

	category, ok := table[ext]
	if !ok {
		return Result{
			Accepted:  false,
			Reason:    fmt.Sprintf("unsupported type: %q", ext),
			Extension: ext,
			Size:      item.Size,
		}
	}

	return Result{
		Accepted:  true,
		Extension: ext,
		Size:      item.Size,
		Category:  category,
	}
}
