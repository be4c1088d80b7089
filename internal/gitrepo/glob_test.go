package gitrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		pattern string
		want    bool
	}{
		{"exact", "README.md", "README.md", true},
		{"star extension", "notes.txt", "*.txt", true},
		{"star extension basename at depth", "docs/deep/notes.txt", "*.txt", true},
		{"star extension no match", "notes.md", "*.txt", false},
		{"question mark", "a.md", "?.md", true},
		{"char class", "v1.md", "v[0-9].md", true},
		{"dir doublestar", "vendor/pkg/errors/errors.go", "vendor/**", true},
		{"dir doublestar self", "vendor", "vendor/**", true},
		{"dir doublestar no match", "cmd/main.go", "vendor/**", false},
		{"prefix doublestar root", "main_test.go", "**/*_test.go", true},
		{"prefix doublestar nested", "a/b/c/x_test.go", "**/*_test.go", true},
		{"interior doublestar", "src/a/b/helper.go", "src/**/helper.go", true},
		{"interior doublestar zero segments", "src/helper.go", "src/**/helper.go", true},
		{"interior doublestar no match", "lib/helper.go", "src/**/helper.go", false},
		{"path pattern", "docs/guide.md", "docs/*.md", true},
		{"path pattern too deep", "docs/sub/guide.md", "docs/*.md", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchGlob(tt.path, tt.pattern),
				"matchGlob(%q, %q)", tt.path, tt.pattern)
		})
	}
}

func TestMatchAny(t *testing.T) {
	patterns := []string{"vendor/**", "*.min.js"}
	assert.True(t, matchAny("vendor/lib/x.go", patterns))
	assert.True(t, matchAny("static/app.min.js", patterns))
	assert.False(t, matchAny("cmd/main.go", patterns))
	assert.False(t, matchAny("cmd/main.go", nil))
}
