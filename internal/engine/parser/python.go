package parser

import "regexp"

var (
	pyImportRe     = regexp.MustCompile(`(?m)^(import\s+\w+|from\s+\w+\s+import)`)
	pyFromDepRe    = regexp.MustCompile(`(?m)^from\s+(\w+(?:\.\w+)*)\s+import`)
	pyImportDepRe  = regexp.MustCompile(`(?m)^import\s+(\w+(?:\.\w+)*)`)
	pyFunctionRe   = regexp.MustCompile(`(?m)^def\s+\w+\s*\(`)
	pyClassRe      = regexp.MustCompile(`(?m)^class\s+\w+`)
	pyComplexityRe = regexp.MustCompile(`\b(if|elif|else|for|while|try|except|and|or)\b`)
)

// pythonStrategy counts Python structure with line-anchored patterns. Only
// top-level definitions are seen; indented methods do not count as functions.
type pythonStrategy struct{}

func (pythonStrategy) Name() string { return "python" }

func (pythonStrategy) Analyze(content []byte, m *StructuralMetrics) error {
	m.ImportCount += len(pyImportRe.FindAllIndex(content, -1))
	for _, re := range []*regexp.Regexp{pyFromDepRe, pyImportDepRe} {
		for _, match := range re.FindAllSubmatch(content, -1) {
			m.Dependencies = append(m.Dependencies, string(match[1]))
		}
	}
	m.FunctionCount += len(pyFunctionRe.FindAllIndex(content, -1))
	m.ClassCount += len(pyClassRe.FindAllIndex(content, -1))
	m.Complexity += len(pyComplexityRe.FindAllIndex(content, -1))
	return nil
}
