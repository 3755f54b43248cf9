package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/harshpreet931/autoMarkdown/internal/shared/util"
)

// NodeHandler processes a node for a language-specific walker.
// Returns true if the walker should skip the node's children.
type NodeHandler func(ctx *ExtractionContext, node *sitter.Node) bool

// ExtractionContext carries the state shared by all handlers of one walk.
type ExtractionContext struct {
	Source  []byte
	Metrics *StructuralMetrics
	// Typed enables the TypeScript-only captures (export names, interfaces,
	// type aliases).
	Typed bool

	exportSeen map[string]bool
}

// ExtractorEngine walks the syntax tree and dispatches node handlers by kind.
// Kinds without a handler are a no-op; the walk continues into their children.
// Only child edges are followed, so parent back-references are never visited.
type ExtractorEngine struct {
	handlers map[string]NodeHandler
}

func NewExtractorEngine(handlers map[string]NodeHandler) *ExtractorEngine {
	return &ExtractorEngine{handlers: handlers}
}

func (e *ExtractorEngine) Walk(ctx *ExtractionContext, node *sitter.Node) {
	if node == nil {
		return
	}

	if handler, ok := e.handlers[node.Kind()]; ok {
		if handler(ctx, node) {
			return
		}
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		e.Walk(ctx, node.Child(i))
	}
}

func (c *ExtractionContext) Text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if start >= end || end > uint(len(c.Source)) {
		return ""
	}
	return string(c.Source[start:end])
}

// FieldText returns the text of a named field child, or "".
func (c *ExtractionContext) FieldText(node *sitter.Node, field string) string {
	if node == nil {
		return ""
	}
	return strings.TrimSpace(c.Text(node.ChildByFieldName(field)))
}

// AddExport records an exported symbol name once.
func (c *ExtractionContext) AddExport(name string) {
	if c.exportSeen == nil {
		c.exportSeen = make(map[string]bool)
	}
	c.Metrics.Exports = util.AppendUnique(c.Metrics.Exports, c.exportSeen, name)
}

func trimQuoted(value string) string {
	value = strings.TrimSpace(value)
	return strings.Trim(value, "\"'`")
}
