package vector

import (
	"context"
	"fmt"
	"sync"

	"github.com/quarrylabs/quarry/internal/extract"
)

// MemoryIndex is an in-process Index used in tests and when no vector
// backend is configured. Safe for concurrent use.
type MemoryIndex struct {
	// FailFor makes indexing fail for the named documents.
	FailFor map[string]error

	mu   sync.Mutex
	seq  int
	docs map[string]StoredDocument
}

// StoredDocument is a document retained by MemoryIndex.
type StoredDocument struct {
	Name   string
	Chunks []extract.Chunk
	Meta   Metadata
}

// NewMemoryIndex creates an empty in-memory index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{docs: make(map[string]StoredDocument)}
}

// Index implements Index.
func (m *MemoryIndex) Index(ctx context.Context, name string, chunks []extract.Chunk, meta Metadata) (string, int, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	if err, ok := m.FailFor[name]; ok {
		return "", 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	docID := fmt.Sprintf("doc-%04d", m.seq)
	m.docs[docID] = StoredDocument{Name: name, Chunks: chunks, Meta: meta}
	return docID, len(chunks), nil
}

// Document returns a stored document by id.
func (m *MemoryIndex) Document(docID string) (StoredDocument, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[docID]
	return doc, ok
}

// Len returns the number of stored documents.
func (m *MemoryIndex) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}
