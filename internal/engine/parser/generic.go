package parser

import "regexp"

var genericImportPatterns = compileAll(
	`(?m)^#include\s+`,
	`(?m)^import\s+`,
	`(?m)^from\s+\w+\s+import`,
	`(?m)^use\s+`,
	`(?m)^require\s*\(`,
	`(?m)^\s*@import`,
)

var genericFunctionPatterns = compileAll(
	`\bfunction\s+\w+`,
	`\bdef\s+\w+`,
	`\bfn\s+\w+`,
	`\w+\s*\([^)]*\)\s*\{`,
	`\bpublic\s+\w+\s+\w+\s*\(`,
)

var genericClassPatterns = compileAll(
	`\bclass\s+\w+`,
	`\bstruct\s+\w+`,
	`\binterface\s+\w+`,
	`\btrait\s+\w+`,
)

var genericComplexityPatterns = compileAll(
	`\bif\b`,
	`\belse\b`,
	`\belseif\b`,
	`\belif\b`,
	`\bfor\b`,
	`\bwhile\b`,
	`\bdo\b`,
	`\bswitch\b`,
	`\bmatch\b`,
	`\btry\b`,
	`\bcatch\b`,
	`\bexcept\b`,
	`\?.*:`,
	`&&|\|\|`,
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}

// countAll sums matches of every pattern. Overlapping patterns are counted
// once per pattern, so the totals are approximate by construction.
func countAll(patterns []*regexp.Regexp, content []byte) int {
	total := 0
	for _, re := range patterns {
		total += len(re.FindAllIndex(content, -1))
	}
	return total
}

// genericStrategy is the last link of every chain and never fails.
type genericStrategy struct{}

func (genericStrategy) Name() string { return "generic" }

func (genericStrategy) Analyze(content []byte, m *StructuralMetrics) error {
	m.ImportCount += countAll(genericImportPatterns, content)
	m.FunctionCount += countAll(genericFunctionPatterns, content)
	m.ClassCount += countAll(genericClassPatterns, content)
	m.Complexity += countAll(genericComplexityPatterns, content)
	return nil
}
