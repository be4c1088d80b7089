// Package extract defines the content-extraction capability: format-specific
// agents that turn raw item bytes into normalized text chunks, selected per
// content category through a registry.
package extract

import (
	"context"
	"errors"
	"fmt"

	"github.com/quarrylabs/quarry/internal/validate"
)

// ErrNoAgent is returned when no agent is registered for a category.
var ErrNoAgent = errors.New("no extraction agent registered for category")

// Item is one unit of input handed to an agent. Exactly one of Path or Data
// is the content locator; Data wins when both are set.
type Item struct {
	Name        string
	Path        string
	Data        []byte
	Category    validate.Category
	ContentType string // normalized extension, e.g. ".md"
}

// Chunk is one normalized text chunk produced by an agent.
type Chunk struct {
	Text  string
	Index int
}

// Agent converts raw bytes of its categories into normalized text chunks.
type Agent interface {
	// Categories lists the content categories the agent handles.
	Categories() []validate.Category
	// Extract produces the item's chunks or a typed failure.
	Extract(ctx context.Context, item Item) ([]Chunk, error)
}

// Registry selects an agent by category.
type Registry struct {
	agents map[validate.Category]Agent
}

// NewRegistry creates a registry holding the given agents. Later agents win
// when two claim the same category.
func NewRegistry(agents ...Agent) *Registry {
	r := &Registry{agents: make(map[validate.Category]Agent)}
	for _, a := range agents {
		r.Register(a)
	}
	return r
}

// Register adds an agent for every category it claims.
func (r *Registry) Register(agent Agent) {
	for _, cat := range agent.Categories() {
		r.agents[cat] = agent
	}
}

// ForCategory returns the agent handling cat.
func (r *Registry) ForCategory(cat validate.Category) (Agent, error) {
	agent, ok := r.agents[cat]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoAgent, cat)
	}
	return agent, nil
}

// Categories lists the categories with a registered agent.
func (r *Registry) Categories() []validate.Category {
	cats := make([]validate.Category, 0, len(r.agents))
	for cat := range r.agents {
		cats = append(cats, cat)
	}
	return cats
}
