// # internal/engine/graph/importance.go
package graph

import (
	"math"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/harshpreet931/autoMarkdown/internal/engine/parser"
)

// Policy selects the structural scoring formula.
type Policy string

const (
	PolicyDefault Policy = "default"
	// PolicyLegacy is the earlier export/class weighted formula, kept for
	// comparison runs.
	PolicyLegacy Policy = "legacy"
)

// Valid reports whether p names a known policy. The empty policy means
// PolicyDefault.
func (p Policy) Valid() bool {
	switch p {
	case "", PolicyDefault, PolicyLegacy:
		return true
	}
	return false
}

// Score applies the policy to one file's metrics.
func (p Policy) Score(m *parser.StructuralMetrics, centrality float64) float64 {
	if p == PolicyLegacy {
		return CalculateLegacyImportance(m, centrality)
	}
	return CalculateASTImportance(m, centrality)
}

const (
	heuristicWeight = 0.3
	astWeight       = 0.7
)

// CalculateASTImportance ranks a file from its structural metrics and
// centrality:
//
//	entry point                                  +20
//	main logic (exports>3, functions>5, 5<cx<50) +15
//	exports*3 + publicMethods*2
//	framework core                               +10
//	config file                                  +8
//	react/vue/angular +5, express/fastify/nestjs +6 (each)
//	min(complexity/5, 5) + centrality*10
//	no imports but exports                       +5
//
// Test files are scaled by 0.3 and generated-looking files by 0.1, then
// files with more than 10 imports lose 0.2 per extra import. Never negative.
func CalculateASTImportance(m *parser.StructuralMetrics, centrality float64) float64 {
	if m == nil {
		return 0
	}
	score := 0.0

	if m.IsEntryPoint {
		score += 20
	}
	if isMainLogic(m) {
		score += 15
	}

	score += float64(m.ExportCount * 3)
	score += float64(m.PublicMethods * 2)

	if isFrameworkCore(m) {
		score += 10
	}
	if m.IsConfigFile {
		score += 8
	}

	for _, fw := range m.Frameworks {
		switch fw {
		case "react", "vue", "angular":
			score += 5
		case "express", "fastify", "nestjs":
			score += 6
		}
	}

	score += math.Min(float64(m.Complexity)/5, 5)
	score += centrality * 10

	if m.ImportCount == 0 && m.ExportCount > 0 {
		score += 5
	}

	if m.IsTestFile {
		score *= 0.3
	}
	if m.IsGenerated() {
		score *= 0.1
	}
	if m.ImportCount > 10 {
		score -= float64(m.ImportCount-10) * 0.2
	}

	return math.Max(score, 0)
}

func isMainLogic(m *parser.StructuralMetrics) bool {
	return m.ExportCount > 3 &&
		m.FunctionCount > 5 &&
		m.Complexity > 5 &&
		m.Complexity < 50
}

func isFrameworkCore(m *parser.StructuralMetrics) bool {
	return len(m.Frameworks) > 0 && (m.ExportCount > 0 || m.FunctionCount > 3)
}

// CalculateLegacyImportance is the earlier formula: declaration counts, a
// complexity band bonus, centrality and the entry point bonus.
func CalculateLegacyImportance(m *parser.StructuralMetrics, centrality float64) float64 {
	if m == nil {
		return 0
	}
	score := float64(m.ExportCount*2 + m.ClassCount*3 + m.InterfaceCount*2 + m.TypeCount)

	switch {
	case m.Complexity >= 10 && m.Complexity <= 30:
		score += 5
	case m.Complexity >= 5 && m.Complexity < 10:
		score += 2
	}

	score += centrality * 10
	if m.IsEntryPoint {
		score += 20
	}
	if m.IsTestFile {
		score *= 0.3
	}
	return math.Max(score, 0)
}

// DefaultPrioritizedFiles are basename substrings that earn the priority bonus.
var DefaultPrioritizedFiles = []string{"README.md", "package.json", "requirements.txt", "main.py", "index.js"}

var manifestNames = map[string]bool{
	"package.json": true, "requirements.txt": true, "cargo.toml": true,
	"pom.xml": true, "build.gradle": true,
}

var entryNames = map[string]bool{
	"main.py": true, "index.js": true, "app.py": true,
	"server.js": true, "main.js": true,
}

var keywordPatterns = func() []*regexp.Regexp {
	words := []string{"class", "function", "def", "interface", "type", "export", "import"}
	out := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		out = append(out, regexp.MustCompile(`\b`+w+`\b`))
	}
	return out
}()

// CalculateHeuristicImportance scores a file from its name and content
// alone. It is the whole score when structural analysis is off.
func CalculateHeuristicImportance(filePath, content string, prioritized []string) float64 {
	score := 1.0
	base := strings.ToLower(path.Base(filePath))

	for _, pf := range prioritized {
		if strings.Contains(base, strings.ToLower(pf)) {
			score += 10
			break
		}
	}
	if manifestNames[base] {
		score += 8
	}
	if entryNames[base] {
		score += 7
	}
	if strings.Contains(base, "readme") || strings.Contains(base, "doc") {
		score += 6
	}
	if strings.Contains(filePath, "test") || strings.Contains(filePath, "spec") {
		score -= 2
	}

	switch length := utf8.RuneCountInString(content); {
	case length < 1000:
		score += 2
	case length > 10000:
		score--
	}

	keywords := 0
	for _, re := range keywordPatterns {
		keywords += len(re.FindAllStringIndex(content, -1))
	}
	score += math.Min(float64(keywords)/10, 3)

	return math.Max(score, 0)
}

// BlendImportance mixes the heuristic and structural scores 30/70.
func BlendImportance(heuristic, ast float64) float64 {
	return heuristic*heuristicWeight + ast*astWeight
}
