package gitrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Analysis is the pre-flight view of a repository. When the repository
// cannot be analyzed, Valid is false and Reason explains why; Analyze never
// returns an error because it is explicitly a pre-flight check.
type Analysis struct {
	Owner         string           `json:"owner"`
	Name          string           `json:"name"`
	Branch        string           `json:"branch"`
	SizeBytes     int64            `json:"size_bytes"`
	FileCount     int              `json:"file_count"`
	DirCount      int              `json:"dir_count"`
	Languages     map[string]int64 `json:"languages"` // language -> bytes
	TopLevelFiles []string         `json:"top_level_files"`
	Valid         bool             `json:"valid"`
	Reason        string           `json:"reason,omitempty"`
}

// repoResponse is the subset of the provider's repository endpoint we read.
type repoResponse struct {
	FullName      string `json:"full_name"`
	Size          int64  `json:"size"` // KiB
	DefaultBranch string `json:"default_branch"`
	Private       bool   `json:"private"`
}

// contentEntry is one entry of the provider's contents listing.
type contentEntry struct {
	Name string `json:"name"`
	Type string `json:"type"` // "file" or "dir"
}

// notableFiles are top-level files worth surfacing in an analysis.
var notableFiles = []string{
	"readme", "license", "contributing", "changelog",
	"go.mod", "package.json", "pyproject.toml", "setup.py",
	"cargo.toml", "pom.xml", "build.gradle", "makefile", "dockerfile",
}

// Analyze queries the provider's metadata, language-breakdown, and
// top-level-listing endpoints for the repository.
func (p *Processor) Analyze(ctx context.Context, owner, name, branch string) Analysis {
	analysis := Analysis{Owner: owner, Name: name, Branch: branch}

	var meta repoResponse
	if err := p.getJSON(ctx, fmt.Sprintf("/repos/%s/%s", owner, name), &meta); err != nil {
		analysis.Reason = fmt.Sprintf("repository lookup failed: %v", err)
		p.logger.Warn("repo.analyze.invalid", "repo", owner+"/"+name, "reason", analysis.Reason)
		return analysis
	}

	if analysis.Branch == "" {
		analysis.Branch = meta.DefaultBranch
	}
	analysis.SizeBytes = meta.Size << 10 // provider reports KiB

	// Languages and listing are best-effort: their absence degrades the
	// analysis but does not invalidate the repository.
	var langs map[string]int64
	if err := p.getJSON(ctx, fmt.Sprintf("/repos/%s/%s/languages", owner, name), &langs); err != nil {
		p.logger.Warn("repo.analyze.languages_failed", "repo", owner+"/"+name, "error", err)
	} else {
		analysis.Languages = langs
	}

	var entries []contentEntry
	path := fmt.Sprintf("/repos/%s/%s/contents?ref=%s", owner, name, analysis.Branch)
	if err := p.getJSON(ctx, path, &entries); err != nil {
		p.logger.Warn("repo.analyze.listing_failed", "repo", owner+"/"+name, "error", err)
	} else {
		for _, e := range entries {
			switch e.Type {
			case "dir":
				analysis.DirCount++
			case "file":
				analysis.FileCount++
				if isNotable(e.Name) {
					analysis.TopLevelFiles = append(analysis.TopLevelFiles, e.Name)
				}
			}
		}
	}

	analysis.Valid = true
	p.logger.Info("repo.analyze.ok",
		"repo", owner+"/"+name,
		"branch", analysis.Branch,
		"size_bytes", analysis.SizeBytes,
		"files", analysis.FileCount,
	)
	return analysis
}

func isNotable(name string) bool {
	lower := strings.ToLower(name)
	stem := lower
	if idx := strings.LastIndex(lower, "."); idx > 0 {
		stem = lower[:idx]
	}
	for _, n := range notableFiles {
		if lower == n || stem == n {
			return true
		}
	}
	return false
}

// getJSON performs a GET against the provider API and decodes the body.
func (p *Processor) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiBase+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := p.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("not found")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
