package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/quarrylabs/quarry/internal/validate"
)

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 100
)

// TextAgent extracts text-like categories (documents stored as plain text,
// markup, code) by reading the bytes as UTF-8 and chunking them with a
// recursive character splitter.
type TextAgent struct {
	splitter textsplitter.RecursiveCharacter
}

// NewTextAgent creates a text agent with the default chunking parameters.
func NewTextAgent() *TextAgent {
	return &TextAgent{
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(defaultChunkSize),
			textsplitter.WithChunkOverlap(defaultChunkOverlap),
		),
	}
}

// Categories implements Agent.
func (a *TextAgent) Categories() []validate.Category {
	return []validate.Category{
		validate.CategoryDocuments,
		validate.CategoryMarkup,
		validate.CategoryCode,
	}
}

// Extract implements Agent.
func (a *TextAgent) Extract(ctx context.Context, item Item) ([]Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := item.Data
	if data == nil {
		var err error
		data, err = os.ReadFile(item.Path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", item.Name, err)
		}
	}

	if !utf8.Valid(data) || bytes.IndexByte(data, 0x00) >= 0 {
		return nil, fmt.Errorf("%s: content is not valid text", item.Name)
	}

	parts, err := a.splitter.SplitText(string(data))
	if err != nil {
		return nil, fmt.Errorf("split %s: %w", item.Name, err)
	}

	chunks := make([]Chunk, 0, len(parts))
	for i, part := range parts {
		chunks = append(chunks, Chunk{Text: part, Index: i})
	}
	return chunks, nil
}
