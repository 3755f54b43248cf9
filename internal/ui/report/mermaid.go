package report

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/harshpreet931/autoMarkdown/internal/engine/graph"
	"github.com/harshpreet931/autoMarkdown/internal/engine/parser"
)

// mermaidNodeLimit caps the diagram to the most important files.
const mermaidNodeLimit = 40

// MermaidGraph renders the resolved imports between the most important
// files as a flowchart. It returns "" when there is nothing to draw.
func MermaidGraph(g *graph.DependencyGraph, files []*parser.SourceFile) string {
	if g == nil || g.EdgeCount() == 0 {
		return ""
	}

	selected := make([]string, 0, mermaidNodeLimit)
	inDiagram := make(map[string]bool, mermaidNodeLimit)
	for _, f := range files {
		if len(selected) == mermaidNodeLimit {
			break
		}
		if g.Node(f.Path) == nil {
			continue
		}
		selected = append(selected, f.Path)
		inDiagram[f.Path] = true
	}

	type edge struct{ from, to string }
	var edges []edge
	seen := make(map[edge]bool)
	for _, p := range selected {
		for _, dep := range g.Node(p).Dependencies {
			e := edge{p, dep}
			if !inDiagram[dep] || seen[e] {
				continue
			}
			seen[e] = true
			edges = append(edges, e)
		}
	}
	if len(edges) == 0 {
		return ""
	}

	ids := makeIDs(selected)
	var b strings.Builder
	b.WriteString("flowchart LR\n")
	for _, p := range selected {
		b.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", ids[p], escapeLabel(p)))
	}
	for _, e := range edges {
		b.WriteString(fmt.Sprintf("  %s --> %s\n", ids[e.from], ids[e.to]))
	}
	return b.String()
}

func sanitizeID(name string) string {
	if name == "" {
		return "f"
	}
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	out := b.String()
	if unicode.IsDigit(rune(out[0])) {
		return "f_" + out
	}
	return out
}

// makeIDs assigns unique node ids; names that sanitize to the same id get
// numeric suffixes in input order.
func makeIDs(names []string) map[string]string {
	ids := make(map[string]string, len(names))
	used := make(map[string]int, len(names))
	for _, name := range names {
		base := sanitizeID(name)
		idx := used[base]
		used[base] = idx + 1
		if idx == 0 {
			ids[name] = base
			continue
		}
		ids[name] = fmt.Sprintf("%s_%d", base, idx+1)
	}
	return ids
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
