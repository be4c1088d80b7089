package gitrepo

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// dangerousChars would allow command injection through a crafted URL.
var dangerousChars = regexp.MustCompile("[;&|$`\n\r\\\\]")

// WorkingCopy is a shallow local copy of a repository in temporary storage.
// Cleanup must be invoked exactly once per fetch, on both success and
// failure paths; it is idempotent so deferred calls are safe.
type WorkingCopy struct {
	ID   string
	Root string

	once    sync.Once
	cleanup error
}

// Cleanup removes the temporary copy. Subsequent calls return the first
// result.
func (w *WorkingCopy) Cleanup() error {
	w.once.Do(func() {
		w.cleanup = os.RemoveAll(w.Root)
	})
	return w.cleanup
}

// validateCloneURL rejects URLs that could smuggle arguments into git.
func validateCloneURL(cloneURL string) error {
	if cloneURL == "" {
		return fmt.Errorf("clone url is empty")
	}
	if dangerousChars.MatchString(cloneURL) {
		return fmt.Errorf("clone url contains dangerous characters")
	}
	if !strings.HasPrefix(cloneURL, "https://") && !strings.HasPrefix(cloneURL, "http://") && !strings.HasPrefix(cloneURL, "file://") {
		return fmt.Errorf("unsupported clone url scheme: %s", cloneURL)
	}
	return nil
}

// Fetch performs a shallow clone (depth 1) of ref at branch into a
// process-managed temporary directory and returns its handle.
func (p *Processor) Fetch(ctx context.Context, ref Reference, branch string) (*WorkingCopy, error) {
	cloneURL := ref.CloneURL()
	if err := validateCloneURL(cloneURL); err != nil {
		return nil, fmt.Errorf("invalid clone url: %w", err)
	}

	id := uuid.NewString()
	dir, err := os.MkdirTemp("", "quarry-repo-"+id[:8]+"-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	args := []string{"clone", "--depth", "1", "--quiet"}
	if branch != "" {
		args = append(args, "--branch", branch, "--single-branch")
	}
	args = append(args, cloneURL, dir)

	cloneCtx := ctx
	if p.cloneTimeout > 0 {
		var cancel context.CancelFunc
		cloneCtx, cancel = context.WithTimeout(ctx, p.cloneTimeout)
		defer cancel()
	}

	p.logger.Info("repo.fetch.start", "repo", ref.String(), "branch", branch, "dir", dir)

	cmd := exec.CommandContext(cloneCtx, "git", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("git clone %s: %w: %s", ref.String(), err, strings.TrimSpace(string(out)))
	}

	p.logger.Info("repo.fetch.ok", "repo", ref.String(), "dir", dir)
	return &WorkingCopy{ID: id, Root: dir}, nil
}
