package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshpreet931/autoMarkdown/internal/core/config"
	"github.com/harshpreet931/autoMarkdown/internal/engine/parser"
	"github.com/harshpreet931/autoMarkdown/internal/ui/report"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func paths(files []*parser.SourceFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

func newTestApp(t *testing.T, mutate func(*config.Config)) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Scan.Concurrency = 2
	if mutate != nil {
		mutate(cfg)
	}
	a, err := New(cfg)
	require.NoError(t, err)
	return a
}

func TestPattern(t *testing.T) {
	tests := []struct {
		pattern string
		rel     string
		isDir   bool
		want    bool
	}{
		{"**/*", "README.md", false, true},
		{"**/*", "src/app.ts", false, true},
		{"*.log", "logs/debug.log", false, true},
		{"*.log", "debug.txt", false, false},
		{"node_modules/**", "node_modules", true, true},
		{"node_modules/**", "packages/a/node_modules", true, true},
		{"node_modules/**", "src", true, false},
		{"src/**/*.ts", "src/index.ts", false, true},
		{"src/**/*.ts", "src/a/b/index.ts", false, true},
		{"src/**/*.ts", "lib/index.ts", false, false},
		{"**/*.test.js", "a.test.js", false, true},
	}
	for _, tt := range tests {
		p, err := compilePattern(tt.pattern)
		require.NoError(t, err)
		assert.Equal(t, tt.want, p.match(tt.rel, tt.isDir), "%s vs %s", tt.pattern, tt.rel)
	}
}

func TestCompilePattern_Invalid(t *testing.T) {
	_, err := compilePattern("[abc")
	assert.Error(t, err)
}

func TestIsBinaryContent(t *testing.T) {
	assert.False(t, IsBinaryContent(""))
	assert.False(t, IsBinaryContent("plain text\nwith lines\n"))
	assert.True(t, IsBinaryContent("abc\x00def"))
	assert.True(t, IsBinaryContent("\x01\x02\x03\x04abc"))
	assert.False(t, IsBinaryContent("café au lait, naïve résumé"))
}

func TestIsBinaryPath(t *testing.T) {
	assert.True(t, IsBinaryPath("assets/logo.PNG"))
	assert.True(t, IsBinaryPath("data/app.sqlite3"))
	assert.False(t, IsBinaryPath("src/index.ts"))
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"README.md":               "# demo",
		"src/index.ts":            "export const a = 1",
		"src/util.js":             "module.exports = {}",
		"node_modules/x/index.js": "ignored",
		".env":                    "SECRET=1",
		"debug.log":               "noise",
		"build/out.js":            "ignored",
		"generated/skip.js":       "ignored by gitignore",
		".gitignore":              "generated/\n",
		"blob.txt":                "a\x00b",
	})
	require.NoError(t, os.WriteFile(filepath.Join(root, "latin1.txt"), []byte{0xff, 0xfe, 0x41}, 0o644))

	a := newTestApp(t, nil)
	files, tree, err := a.Scan(context.Background(), root)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"README.md", "src/index.ts", "src/util.js"}, paths(files))
	for _, f := range files {
		if f.Path == "src/index.ts" {
			assert.Equal(t, parser.LangTypeScript, f.Language)
			assert.Equal(t, int64(len("export const a = 1")), f.Size)
		}
	}

	require.NotNil(t, tree)
	assert.Equal(t, report.NodeDirectory, tree.Type)
	var names []string
	for _, child := range tree.Children {
		names = append(names, child.Name)
	}
	// Directories first; excluded, ignored and hidden entries are omitted.
	assert.Equal(t, []string{"src", "blob.txt", "latin1.txt", "README.md"}, names)
}

func TestScan_IncludeHiddenAndSize(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".config/settings.json": `{"a": 1}`,
		"big.js":                strings.Repeat("x", 2048),
		"small.js":              "x",
	})

	a := newTestApp(t, func(cfg *config.Config) {
		cfg.Scan.IncludeHidden = true
		cfg.Scan.MaxFileSize = 1024
	})
	files, _, err := a.Scan(context.Background(), root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{".config/settings.json", "small.js"}, paths(files))
}

func TestScan_IncludePatterns(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/a.ts":    "",
		"src/b.py":    "",
		"docs/c.md":   "",
		"src/x/d.ts":  "",
		"src/e.ts.md": "",
	})

	a := newTestApp(t, func(cfg *config.Config) {
		cfg.Scan.Include = []string{"src/**/*.ts"}
	})
	files, _, err := a.Scan(context.Background(), root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"src/a.ts", "src/x/d.ts"}, paths(files))
}

func TestScan_GitignoreDisabled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore": "*.gen.js\n",
		"a.gen.js":   "x",
	})

	a := newTestApp(t, func(cfg *config.Config) { cfg.Scan.RespectGitignore = false })
	files, _, err := a.Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.gen.js"}, paths(files))
}

func TestScan_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.js": "x"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := newTestApp(t, nil)
	_, _, err := a.Scan(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}
