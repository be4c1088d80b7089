package vector

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"

	"github.com/quarrylabs/quarry/internal/extract"
)

// chunkClass is the Weaviate class holding indexed chunks. Vectorization is
// delegated to the server-side vectorizer module configured on the class.
const chunkClass = "QuarryChunk"

// WeaviateIndex implements Index against a Weaviate instance.
type WeaviateIndex struct {
	client *weaviate.Client
}

// NewWeaviateIndex creates an index backed by host/scheme.
func NewWeaviateIndex(host, scheme string) (*WeaviateIndex, error) {
	client, err := weaviate.NewClient(weaviate.Config{Host: host, Scheme: scheme})
	if err != nil {
		return nil, fmt.Errorf("weaviate client: %w", err)
	}
	return &WeaviateIndex{client: client}, nil
}

// NewWeaviateIndexWithClient wraps an existing client (used in tests).
func NewWeaviateIndexWithClient(client *weaviate.Client) *WeaviateIndex {
	return &WeaviateIndex{client: client}
}

// Index implements Index. Each chunk is stored as one object carrying the
// shared document id, so a partial write can be cleaned up by document.
func (w *WeaviateIndex) Index(ctx context.Context, name string, chunks []extract.Chunk, meta Metadata) (string, int, error) {
	docID := uuid.NewString()

	for _, chunk := range chunks {
		props := map[string]interface{}{
			"content":     chunk.Text,
			"chunkIndex":  chunk.Index,
			"documentId":  docID,
			"itemName":    name,
			"submitter":   meta.Submitter,
			"category":    meta.Category,
			"contentType": meta.ContentType,
			"sizeBytes":   meta.Size,
			"ingestedAt":  meta.IngestedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
		for k, v := range meta.Extra {
			props["meta_"+k] = v
		}

		_, err := w.client.Data().Creator().
			WithClassName(chunkClass).
			WithProperties(props).
			Do(ctx)
		if err != nil {
			return "", 0, fmt.Errorf("store chunk %d of %s: %w", chunk.Index, name, err)
		}
	}

	return docID, len(chunks), nil
}
