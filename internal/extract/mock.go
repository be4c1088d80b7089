package extract

import (
	"context"
	"sync"

	"github.com/quarrylabs/quarry/internal/validate"
)

// StaticAgent is a configurable fake used in tests: it claims a fixed set of
// categories and returns canned chunks or a canned error. Safe for
// concurrent use.
type StaticAgent struct {
	Cats   []validate.Category
	Chunks []Chunk
	Err    error

	mu    sync.Mutex
	calls []string
}

// Categories implements Agent.
func (a *StaticAgent) Categories() []validate.Category {
	return a.Cats
}

// Extract implements Agent.
func (a *StaticAgent) Extract(ctx context.Context, item Item) ([]Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	a.calls = append(a.calls, item.Name)
	a.mu.Unlock()
	if a.Err != nil {
		return nil, a.Err
	}
	return a.Chunks, nil
}

// Calls returns the names of extracted items, in call order.
func (a *StaticAgent) Calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.calls...)
}
