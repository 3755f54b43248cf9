// # internal/engine/graph/graph.go
package graph

import (
	"path"
	"strings"

	"github.com/harshpreet931/autoMarkdown/internal/engine/parser"
	"github.com/harshpreet931/autoMarkdown/internal/shared/observability"
)

// resolveExtensions is the suffix order tried after the bare resolved path.
// The empty suffix retries the bare path; index files skip it.
var resolveExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".py", ""}

// FileMetrics is the graph builder's view of one analyzed file.
type FileMetrics struct {
	Path    string
	Metrics *parser.StructuralMetrics
}

// DependencyNode links files by path only. Dependents is derived from the
// Dependencies of other nodes at build time.
type DependencyNode struct {
	Path         string
	Dependencies []string
	Dependents   []string
	Centrality   float64
}

// DependencyGraph indexes nodes by path and remembers insertion order so
// iteration is deterministic.
type DependencyGraph struct {
	nodes map[string]*DependencyNode
	order []string
	edges int
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{nodes: make(map[string]*DependencyNode)}
}

// Build creates one node per file and one edge per resolvable relative
// import. Repeated imports of the same target produce repeated edges.
func Build(files []FileMetrics) *DependencyGraph {
	g := NewDependencyGraph()
	for _, f := range files {
		g.AddNode(f.Path)
	}

	for _, f := range files {
		if f.Metrics == nil {
			continue
		}
		from := g.nodes[f.Path]
		for _, dep := range f.Metrics.Dependencies {
			target, ok := g.Resolve(f.Path, dep)
			if !ok {
				continue
			}
			from.Dependencies = append(from.Dependencies, target)
			g.nodes[target].Dependents = append(g.nodes[target].Dependents, f.Path)
			g.edges++
		}
	}

	observability.GraphNodes.Set(float64(len(g.order)))
	observability.GraphEdges.Set(float64(g.edges))
	return g
}

// AddNode registers a path. Adding a known path is a no-op.
func (g *DependencyGraph) AddNode(filePath string) *DependencyNode {
	if n, ok := g.nodes[filePath]; ok {
		return n
	}
	n := &DependencyNode{Path: filePath}
	g.nodes[filePath] = n
	g.order = append(g.order, filePath)
	return n
}

// Resolve maps a raw import string to a path in the graph. Only ./ and ../
// imports are considered; the result depends only on graph membership.
func (g *DependencyGraph) Resolve(from, dep string) (string, bool) {
	if !strings.HasPrefix(dep, "./") && !strings.HasPrefix(dep, "../") {
		return "", false
	}
	base := path.Join(path.Dir(from), dep)

	if _, ok := g.nodes[base]; ok {
		return base, true
	}
	for _, ext := range resolveExtensions {
		if candidate := base + ext; g.has(candidate) {
			return candidate, true
		}
	}
	for _, ext := range resolveExtensions {
		if ext == "" {
			continue
		}
		if candidate := path.Join(base, "index"+ext); g.has(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (g *DependencyGraph) has(p string) bool {
	_, ok := g.nodes[p]
	return ok
}

// Node returns the node for a path, or nil.
func (g *DependencyGraph) Node(filePath string) *DependencyNode {
	return g.nodes[filePath]
}

// Paths returns node paths in insertion order.
func (g *DependencyGraph) Paths() []string {
	return append([]string(nil), g.order...)
}

func (g *DependencyGraph) Len() int {
	return len(g.order)
}

func (g *DependencyGraph) EdgeCount() int {
	return g.edges
}

// Centrality returns the computed score for a path, or 0 when unknown.
func (g *DependencyGraph) Centrality(filePath string) float64 {
	if n, ok := g.nodes[filePath]; ok {
		return n.Centrality
	}
	return 0
}
