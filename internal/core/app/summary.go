package app

import (
	"fmt"
	"strings"

	"github.com/harshpreet931/autoMarkdown/internal/engine/parser"
)

// Summarize describes the converted file set. Languages are listed in order
// of first appearance. With analysis enabled the structural totals of the
// analyzed files are appended.
func Summarize(files []*parser.SourceFile, analyzed bool) string {
	var languages []string
	seen := make(map[string]bool)
	var totalSize int64
	for _, f := range files {
		if !seen[f.Language] {
			seen[f.Language] = true
			languages = append(languages, f.Language)
		}
		totalSize += f.Size
	}

	summary := fmt.Sprintf("Project contains %d files in %d different languages (%s). Total size: %.2f KB.",
		len(files), len(languages), strings.Join(languages, ", "), float64(totalSize)/1024)

	if !analyzed {
		return summary
	}
	var withMetrics, exports, functions, classes int
	for _, f := range files {
		if f.Metrics == nil {
			continue
		}
		withMetrics++
		exports += f.Metrics.ExportCount
		functions += f.Metrics.FunctionCount
		classes += f.Metrics.ClassCount
	}
	if withMetrics > 0 {
		summary += fmt.Sprintf(" AST Analysis: %d exports, %d functions, %d classes across %d analyzed files.",
			exports, functions, classes, withMetrics)
	}
	return summary
}
