// Package gitrepo resolves remote source-code repositories: pre-flight
// analysis through the hosting provider's API, shallow fetch into
// process-managed temporary storage, and enumeration of the fetched tree.
package gitrepo

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Reference identifies a repository on the hosting provider.
type Reference struct {
	Owner string
	Name  string
}

// String returns the owner/name form.
func (r Reference) String() string {
	return r.Owner + "/" + r.Name
}

// CloneURL returns the HTTPS clone URL.
func (r Reference) CloneURL() string {
	return fmt.Sprintf("https://github.com/%s/%s.git", r.Owner, r.Name)
}

var refPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ParseReference accepts "owner/name" or a full repository URL.
func ParseReference(s string) (Reference, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Reference{}, fmt.Errorf("empty repository reference")
	}

	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		u, err := url.Parse(s)
		if err != nil {
			return Reference{}, fmt.Errorf("parse repository url: %w", err)
		}
		s = strings.Trim(u.Path, "/")
	}
	s = strings.TrimSuffix(s, ".git")

	parts := strings.Split(s, "/")
	if len(parts) != 2 || !refPattern.MatchString(parts[0]) || !refPattern.MatchString(parts[1]) {
		return Reference{}, fmt.Errorf("invalid repository reference %q: want owner/name", s)
	}
	return Reference{Owner: parts[0], Name: parts[1]}, nil
}

// Processor talks to the hosting provider and manages working copies.
type Processor struct {
	apiBase      string
	http         *http.Client
	cloneTimeout time.Duration
	logger       *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithAPIBase overrides the provider API base URL (used in tests).
func WithAPIBase(base string) Option {
	return func(p *Processor) { p.apiBase = strings.TrimRight(base, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Processor) { p.http = c }
}

// WithCloneTimeout bounds how long a fetch may run.
func WithCloneTimeout(d time.Duration) Option {
	return func(p *Processor) { p.cloneTimeout = d }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProcessor creates a repository processor with defaults for the public
// GitHub API.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		apiBase:      "https://api.github.com",
		http:         &http.Client{Timeout: 30 * time.Second},
		cloneTimeout: 5 * time.Minute,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
