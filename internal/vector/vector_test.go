package vector

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"

	"github.com/quarrylabs/quarry/internal/extract"
)

func testChunks() []extract.Chunk {
	return []extract.Chunk{
		{Text: "first chunk", Index: 0},
		{Text: "second chunk", Index: 1},
	}
}

func TestMemoryIndex(t *testing.T) {
	idx := NewMemoryIndex()

	docID, count, err := idx.Index(context.Background(), "notes.md", testChunks(), Metadata{
		Submitter: "alice",
		Category:  "markup",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	doc, ok := idx.Document(docID)
	require.True(t, ok)
	assert.Equal(t, "notes.md", doc.Name)
	assert.Equal(t, "alice", doc.Meta.Submitter)
	assert.Len(t, doc.Chunks, 2)
	assert.Equal(t, 1, idx.Len())
}

func TestMemoryIndex_FailFor(t *testing.T) {
	idx := NewMemoryIndex()
	idx.FailFor = map[string]error{"bad.md": errors.New("boom")}

	_, _, err := idx.Index(context.Background(), "bad.md", testChunks(), Metadata{})
	assert.Error(t, err)
	assert.Equal(t, 0, idx.Len())
}

func TestWeaviateIndex_StoresOneObjectPerChunk(t *testing.T) {
	var posts atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/v1/objects") {
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			props, _ := body["properties"].(map[string]any)
			assert.Equal(t, "QuarryChunk", body["class"])
			assert.Equal(t, "alice", props["submitter"])
			assert.NotEmpty(t, props["documentId"])
			posts.Add(1)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(body)
			return
		}
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client, err := weaviate.NewClient(weaviate.Config{
		Host:   strings.TrimPrefix(server.URL, "http://"),
		Scheme: "http",
	})
	require.NoError(t, err)

	idx := NewWeaviateIndexWithClient(client)
	docID, count, err := idx.Index(context.Background(), "notes.md", testChunks(), Metadata{
		Submitter:  "alice",
		Category:   "markup",
		IngestedAt: time.Now(),
		Extra:      map[string]string{"origin": "test"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NotEmpty(t, docID)
	assert.Equal(t, int64(2), posts.Load())
}
