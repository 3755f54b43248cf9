// # internal/engine/graph/importance_test.go
package graph

import (
	"strings"
	"testing"

	"github.com/harshpreet931/autoMarkdown/internal/engine/parser"
	"github.com/stretchr/testify/assert"
)

func TestCalculateASTImportance(t *testing.T) {
	tests := []struct {
		name       string
		metrics    parser.StructuralMetrics
		centrality float64
		want       float64
	}{
		{
			name:       "generated file is scaled down",
			metrics:    parser.StructuralMetrics{},
			centrality: 0.15,
			// 0.15*10 = 1.5, then *0.1
			want: 0.15,
		},
		{
			name: "entry point",
			metrics: parser.StructuralMetrics{
				IsEntryPoint: true, ExportCount: 2, FunctionCount: 2, Complexity: 10, ImportCount: 1,
			},
			centrality: 0.15,
			// 20 + 6 + 2 + 1.5
			want: 29.5,
		},
		{
			name: "test file",
			metrics: parser.StructuralMetrics{
				IsEntryPoint: true, IsTestFile: true, ExportCount: 2, FunctionCount: 2, Complexity: 10, ImportCount: 1,
			},
			centrality: 0.15,
			want:       29.5 * 0.3,
		},
		{
			name: "main logic",
			metrics: parser.StructuralMetrics{
				ExportCount: 4, FunctionCount: 6, Complexity: 10, ImportCount: 1,
			},
			// 15 + 12 + 2
			want: 29,
		},
		{
			name: "frameworks",
			metrics: parser.StructuralMetrics{
				Frameworks: []string{"react", "express", "jest"}, ExportCount: 1, FunctionCount: 1, Complexity: 5, ImportCount: 2,
			},
			// 3 + 10 core + 5 + 6 + 1
			want: 25,
		},
		{
			name: "config and public methods",
			metrics: parser.StructuralMetrics{
				IsConfigFile: true, PublicMethods: 2, ExportCount: 1, ImportCount: 1,
			},
			// 8 + 4 + 3
			want: 15,
		},
		{
			name: "utility without imports",
			metrics: parser.StructuralMetrics{
				ExportCount: 1, FunctionCount: 1, Complexity: 1,
			},
			// 3 + 0.2 + 5
			want: 8.2,
		},
		{
			name: "complexity bonus is capped",
			metrics: parser.StructuralMetrics{
				FunctionCount: 1, Complexity: 500, ImportCount: 1,
			},
			want: 5,
		},
		{
			name: "import penalty clamps at zero",
			metrics: parser.StructuralMetrics{
				FunctionCount: 1, Complexity: 1, ImportCount: 20,
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.metrics
			assert.InDelta(t, tt.want, CalculateASTImportance(&m, tt.centrality), 1e-9)
		})
	}
}

func TestCalculateASTImportance_Nil(t *testing.T) {
	assert.Zero(t, CalculateASTImportance(nil, 1))
	assert.Zero(t, CalculateLegacyImportance(nil, 1))
}

func TestCalculateLegacyImportance(t *testing.T) {
	m := &parser.StructuralMetrics{ExportCount: 2, ClassCount: 1, InterfaceCount: 1, TypeCount: 1, Complexity: 12}
	// 4 + 3 + 2 + 1 + 5 band + 5 centrality
	assert.InDelta(t, 20, CalculateLegacyImportance(m, 0.5), 1e-9)

	m.Complexity = 7
	assert.InDelta(t, 17, CalculateLegacyImportance(m, 0.5), 1e-9)

	m.IsEntryPoint = true
	m.IsTestFile = true
	assert.InDelta(t, 37*0.3, CalculateLegacyImportance(m, 0.5), 1e-9)
}

func TestPolicy(t *testing.T) {
	m := &parser.StructuralMetrics{ExportCount: 2, ClassCount: 1, Complexity: 12, ImportCount: 1, FunctionCount: 1}

	assert.True(t, Policy("").Valid())
	assert.True(t, PolicyLegacy.Valid())
	assert.False(t, Policy("fancy").Valid())

	assert.Equal(t, CalculateASTImportance(m, 0.2), PolicyDefault.Score(m, 0.2))
	assert.Equal(t, CalculateASTImportance(m, 0.2), Policy("").Score(m, 0.2))
	assert.Equal(t, CalculateLegacyImportance(m, 0.2), PolicyLegacy.Score(m, 0.2))
}

func TestCalculateHeuristicImportance(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    float64
	}{
		{"readme", "README.md", "# Title\n", 1 + 10 + 6 + 2},
		{"manifest", "src/package.json", "{}", 1 + 10 + 8 + 2},
		{"entry with keywords", "src/index.js", "import a from 'a'\nexport function f() {}\n", 1 + 10 + 7 + 2 + 0.3},
		{"test path", "test/helper.py", "", 1 - 2 + 2},
		{"large file", "src/data.txt", strings.Repeat("x", 10001), 0},
		{"clamped", "spec/big.txt", strings.Repeat("x", 10001), 0},
		{"keyword cap", "src/x.txt", strings.Repeat("class ", 40), 1 + 2 + 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateHeuristicImportance(tt.path, tt.content, DefaultPrioritizedFiles)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCalculateHeuristicImportance_CustomPriority(t *testing.T) {
	got := CalculateHeuristicImportance("src/Router.go", "", []string{"router"})
	assert.InDelta(t, 1+10+2, got, 1e-9)
}

func TestBlendImportance(t *testing.T) {
	assert.InDelta(t, 17, BlendImportance(10, 20), 1e-9)
	assert.Zero(t, BlendImportance(0, 0))
}
