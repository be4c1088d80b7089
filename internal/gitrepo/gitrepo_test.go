package gitrepo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Reference
		wantErr bool
	}{
		{"owner slash name", "golang/go", Reference{Owner: "golang", Name: "go"}, false},
		{"https url", "https://github.com/golang/go", Reference{Owner: "golang", Name: "go"}, false},
		{"https url with .git", "https://github.com/golang/go.git", Reference{Owner: "golang", Name: "go"}, false},
		{"empty", "", Reference{}, true},
		{"missing name", "golang", Reference{}, true},
		{"too many parts", "a/b/c", Reference{}, true},
		{"invalid characters", "own er/repo", Reference{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReference(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReferenceCloneURL(t *testing.T) {
	ref := Reference{Owner: "golang", Name: "go"}
	assert.Equal(t, "https://github.com/golang/go.git", ref.CloneURL())
}

// newProviderStub serves the three provider endpoints Analyze hits.
func newProviderStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/project", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"full_name":"octo/project","size":2048,"default_branch":"main"}`))
	})
	mux.HandleFunc("/repos/octo/project/languages", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Go":12345,"Shell":678}`))
	})
	mux.HandleFunc("/repos/octo/project/contents", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"name":"README.md","type":"file"},
			{"name":"main.go","type":"file"},
			{"name":"internal","type":"dir"},
			{"name":"go.mod","type":"file"}
		]`))
	})
	return httptest.NewServer(mux)
}

func TestAnalyze(t *testing.T) {
	server := newProviderStub(t)
	defer server.Close()

	p := NewProcessor(WithAPIBase(server.URL))
	analysis := p.Analyze(context.Background(), "octo", "project", "")

	assert.True(t, analysis.Valid)
	assert.Empty(t, analysis.Reason)
	assert.Equal(t, "main", analysis.Branch)
	assert.Equal(t, int64(2048<<10), analysis.SizeBytes)
	assert.Equal(t, 3, analysis.FileCount)
	assert.Equal(t, 1, analysis.DirCount)
	assert.Equal(t, int64(12345), analysis.Languages["Go"])
	assert.ElementsMatch(t, []string{"README.md", "go.mod"}, analysis.TopLevelFiles)
}

func TestAnalyze_NotFoundIsSoftFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	p := NewProcessor(WithAPIBase(server.URL))
	analysis := p.Analyze(context.Background(), "octo", "gone", "main")

	assert.False(t, analysis.Valid)
	assert.Contains(t, analysis.Reason, "repository lookup failed")
}

func TestAnalyze_UnreachableProviderIsSoftFailure(t *testing.T) {
	p := NewProcessor(WithAPIBase("http://127.0.0.1:0"))
	analysis := p.Analyze(context.Background(), "octo", "project", "main")
	assert.False(t, analysis.Valid)
	assert.NotEmpty(t, analysis.Reason)
}

func TestValidateCloneURL(t *testing.T) {
	assert.NoError(t, validateCloneURL("https://github.com/octo/project.git"))
	assert.Error(t, validateCloneURL(""))
	assert.Error(t, validateCloneURL("https://example.com/x;rm -rf /"))
	assert.Error(t, validateCloneURL("git@github.com:octo/project.git"))
}

func TestFetch_RejectsDangerousURL(t *testing.T) {
	p := NewProcessor()
	_, err := p.Fetch(context.Background(), Reference{Owner: "octo", Name: "x;rm"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid clone url")
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestEnumerate(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"README.md":          "docs",
		"main.go":            "package main",
		"docs/guide.md":      "guide",
		"data.csv":           "a,b",
		"image.png":          "not really",
		"binary.exe":         "skip",
		".github/ci.yml":     "hidden dir",
		"vendor/lib/x.go":    "ignored dir",
		"node_modules/m.js":  "ignored dir",
		"big.txt":            "0123456789",
		"generated.min.js":   "exclude me",
		"sub/dir/notes.txt":  "notes",
		"sub/dir/.hidden.md": "hidden file",
	})
	copyHandle := &WorkingCopy{ID: "t", Root: root}
	p := NewProcessor()

	t.Run("default filters", func(t *testing.T) {
		files, err := p.Enumerate(copyHandle, EnumerateOptions{
			Exclude: []string{"*.min.js"},
		})
		require.NoError(t, err)
		paths := relPaths(files)
		assert.ElementsMatch(t, []string{
			"README.md", "main.go", "docs/guide.md", "data.csv",
			"image.png", "big.txt", "sub/dir/notes.txt",
		}, paths)
	})

	t.Run("size ceiling", func(t *testing.T) {
		files, err := p.Enumerate(copyHandle, EnumerateOptions{MaxFileSize: 5})
		require.NoError(t, err)
		assert.NotContains(t, relPaths(files), "big.txt")
	})

	t.Run("docs only", func(t *testing.T) {
		files, err := p.Enumerate(copyHandle, EnumerateOptions{DocsOnly: true})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			"README.md", "docs/guide.md", "big.txt", "sub/dir/notes.txt",
		}, relPaths(files))
	})

	t.Run("exclude code", func(t *testing.T) {
		files, err := p.Enumerate(copyHandle, EnumerateOptions{ExcludeCode: true})
		require.NoError(t, err)
		assert.NotContains(t, relPaths(files), "main.go")
	})

	t.Run("include globs", func(t *testing.T) {
		files, err := p.Enumerate(copyHandle, EnumerateOptions{Include: []string{"docs/**", "*.md"}})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"README.md", "docs/guide.md"}, relPaths(files))
	})

	t.Run("nil copy", func(t *testing.T) {
		_, err := p.Enumerate(nil, EnumerateOptions{})
		assert.Error(t, err)
	})
}

func relPaths(files []File) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}

func TestWorkingCopyCleanup_ExactlyOnce(t *testing.T) {
	dir, err := os.MkdirTemp("", "quarry-test-*")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0o644))

	copyHandle := &WorkingCopy{ID: "t", Root: dir}
	require.NoError(t, copyHandle.Cleanup())
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))

	// Second call is a no-op returning the first result.
	assert.NoError(t, copyHandle.Cleanup())
}
