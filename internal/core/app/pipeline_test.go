package app

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshpreet931/autoMarkdown/internal/core/config"
	apperrors "github.com/harshpreet931/autoMarkdown/internal/core/errors"
	"github.com/harshpreet931/autoMarkdown/internal/engine/graph"
	"github.com/harshpreet931/autoMarkdown/internal/engine/parser"
)

func TestConvert_Heuristic(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"package.json":         `{"name": "demo"}`,
		"src/helpers.js":       "const a = 1\n",
		"test/helpers.test.js": "it('works', () => {})\n",
	})

	a := newTestApp(t, nil)
	project, err := a.Convert(context.Background(), root)
	require.NoError(t, err)

	assert.NotEmpty(t, project.RunID)
	assert.Equal(t, filepath.Base(root), project.Name)
	assert.Nil(t, project.Graph)
	require.Len(t, project.Files, 3)
	assert.Equal(t, "package.json", project.Files[0].Path)
	assert.Equal(t, "test/helpers.test.js", project.Files[2].Path)
	for _, f := range project.Files {
		assert.Nil(t, f.Metrics)
		assert.GreaterOrEqual(t, f.Importance, 0.0)
	}
	assert.Contains(t, project.Summary, "Project contains 3 files in 2 different languages (json, javascript)")
	assert.NotContains(t, project.Summary, "AST Analysis")
}

func TestConvert_WithAnalysis(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/index.ts":  "import { helper } from './util'\nimport { Config } from './config'\nexport function main() { return helper(Config) }\n",
		"src/util.ts":   "export function helper(x: unknown) { return x }\n",
		"src/config.ts": "export const Config = { debug: false }\n",
	})

	a := newTestApp(t, func(cfg *config.Config) { cfg.Analysis.UseAST = true })
	project, err := a.Convert(context.Background(), root)
	require.NoError(t, err)

	require.NotNil(t, project.Graph)
	assert.Equal(t, 3, project.Graph.Len())
	assert.Equal(t, 2, project.Graph.EdgeCount())

	byPath := map[string]*parser.SourceFile{}
	for _, f := range project.Files {
		require.NotNil(t, f.Metrics, f.Path)
		byPath[f.Path] = f
	}
	assert.InDelta(t, 0.15, byPath["src/index.ts"].Centrality, 1e-9)
	assert.Greater(t, byPath["src/util.ts"].Centrality, byPath["src/index.ts"].Centrality)
	assert.Equal(t, 2, byPath["src/index.ts"].Metrics.ImportCount)

	for i := 1; i < len(project.Files); i++ {
		assert.GreaterOrEqual(t, project.Files[i-1].Importance, project.Files[i].Importance)
	}
	assert.Contains(t, project.Summary, "across 3 analyzed files")

	// A second run over unchanged content is served from the cache.
	cached := a.Analyzer().CacheLen()
	_, err = a.Convert(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, cached, a.Analyzer().CacheLen())
}

func TestConvert_LegacyPolicy(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.ts": "export interface A { x: number }\nexport class B {}\n",
	})

	a := newTestApp(t, func(cfg *config.Config) {
		cfg.Analysis.UseAST = true
		cfg.Scoring.Policy = string(graph.PolicyLegacy)
	})
	project, err := a.Convert(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, project.Files, 1)

	f := project.Files[0]
	heuristic := graph.CalculateHeuristicImportance(f.Path, f.Content, a.Config.Analysis.PrioritizeFiles)
	want := graph.BlendImportance(heuristic, graph.CalculateLegacyImportance(f.Metrics, f.Centrality))
	assert.InDelta(t, want, f.Importance, 1e-9)
}

func TestConvert_MissingRoot(t *testing.T) {
	a := newTestApp(t, nil)
	_, err := a.Convert(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestConvert_EmptyProject(t *testing.T) {
	a := newTestApp(t, func(cfg *config.Config) { cfg.Analysis.UseAST = true })
	project, err := a.Convert(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, project.Files)
	assert.Equal(t, 0, project.Graph.Len())
	assert.Equal(t, "Project contains 0 files in 0 different languages (). Total size: 0.00 KB.", project.Summary)
}

func TestConvert_ZeroConcurrency(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/a.ts": "import { b } from './b'\nexport const a = b\n",
		"src/b.ts": "export const b = 1\n",
	})

	cfg := config.DefaultConfig()
	cfg.Analysis.UseAST = true
	cfg.Scan.Concurrency = 0
	require.NoError(t, config.Validate(cfg))
	a, err := New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		_, err := a.Convert(ctx, root)
		done <- err
	}()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("Convert did not finish with scan.concurrency = 0")
	}
	assert.Equal(t, runtime.GOMAXPROCS(0), workers(cfg))
}

func TestSortByImportance_TiesByPath(t *testing.T) {
	files := []*parser.SourceFile{
		{Path: "b", Importance: 1},
		{Path: "a", Importance: 1},
		{Path: "c", Importance: 2},
	}
	SortByImportance(files)
	assert.Equal(t, []string{"c", "a", "b"}, paths(files))
}

func TestSummarize(t *testing.T) {
	files := []*parser.SourceFile{
		{Path: "a.ts", Language: "typescript", Size: 1024, Metrics: &parser.StructuralMetrics{ExportCount: 2, FunctionCount: 3, ClassCount: 1}},
		{Path: "b.py", Language: "python", Size: 512, Metrics: &parser.StructuralMetrics{FunctionCount: 1}},
		{Path: "c.ts", Language: "typescript", Size: 0},
	}
	got := Summarize(files, true)
	assert.Equal(t, "Project contains 3 files in 2 different languages (typescript, python). Total size: 1.50 KB."+
		" AST Analysis: 2 exports, 4 functions, 1 classes across 2 analyzed files.", got)
}
