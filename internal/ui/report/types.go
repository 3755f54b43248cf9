package report

import (
	"sort"
	"strings"
	"time"

	"github.com/harshpreet931/autoMarkdown/internal/engine/graph"
	"github.com/harshpreet931/autoMarkdown/internal/engine/parser"
)

const (
	NodeFile      = "file"
	NodeDirectory = "directory"
)

// TreeNode is one entry of the project structure. Path is relative to the
// project root; the root itself has an empty Path.
type TreeNode struct {
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Path     string      `json:"path"`
	Children []*TreeNode `json:"children,omitempty"`
}

func (n *TreeNode) IsDir() bool {
	return n != nil && n.Type == NodeDirectory
}

// SortChildren orders directories before files, then by name ignoring case.
func (n *TreeNode) SortChildren() {
	sort.SliceStable(n.Children, func(i, j int) bool {
		a, b := n.Children[i], n.Children[j]
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
}

// Document is everything a renderer needs. Files are expected in
// descending importance order.
type Document struct {
	Name        string
	RunID       string
	GeneratedAt time.Time
	Summary     string
	Structure   *TreeNode
	Files       []*parser.SourceFile
	// Graph is nil when structural analysis did not run.
	Graph *graph.DependencyGraph
}

type Options struct {
	IncludeMetadata bool
	// MaxTokens caps the estimated size of the output; 0 means no cap.
	MaxTokens int
}
