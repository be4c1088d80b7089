// Package vector defines the vector index capability consumed by ingestion:
// normalized chunks plus metadata go in, a document identifier and indexed
// chunk count come out.
package vector

import (
	"context"
	"time"

	"github.com/quarrylabs/quarry/internal/extract"
)

// Metadata describes the document a set of chunks belongs to.
type Metadata struct {
	Submitter   string
	Category    string
	ContentType string
	Size        int64
	IngestedAt  time.Time
	Extra       map[string]string
}

// Index stores normalized chunks for later similarity search.
type Index interface {
	// Index stores the chunks under a new document and returns its
	// identifier and the number of chunks indexed.
	Index(ctx context.Context, name string, chunks []extract.Chunk, meta Metadata) (docID string, count int, err error)
}
