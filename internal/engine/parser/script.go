package parser

import (
	"errors"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// functionBaseComplexity is the flat contribution of every function-like
// node. Decision points inside the body are counted by the walk itself, so
// the body is not re-walked per function.
const functionBaseComplexity = 1

const (
	branchWeight = 1
	loopWeight   = 2
)

var logicalOperators = map[string]bool{"&&": true, "||": true, "??": true}

// scriptStrategy analyzes JavaScript-family sources through a tree-sitter
// grammar. The typed variant adds the TypeScript-only captures.
type scriptStrategy struct {
	name   string
	pool   *ParserPool
	typed  bool
	engine *ExtractorEngine
}

func newScriptStrategy(name string, pool *ParserPool, typed bool) *scriptStrategy {
	return &scriptStrategy{
		name:   name,
		pool:   pool,
		typed:  typed,
		engine: NewExtractorEngine(scriptHandlers(typed)),
	}
}

func (s *scriptStrategy) Name() string { return s.name }

func (s *scriptStrategy) Analyze(content []byte, m *StructuralMetrics) error {
	if s.pool == nil {
		return errors.New("grammar not loaded: " + s.name)
	}
	tree, err := s.pool.Parse(content)
	if err != nil {
		return err
	}
	defer tree.Close()

	ctx := &ExtractionContext{Source: content, Metrics: m, Typed: s.typed}
	s.engine.Walk(ctx, tree.RootNode())
	return nil
}

func scriptHandlers(typed bool) map[string]NodeHandler {
	h := map[string]NodeHandler{
		"import_statement": handleImport,
		"export_statement": handleExport,

		"function_declaration":           handleFunction,
		"function_expression":            handleFunction,
		"function":                       handleFunction,
		"generator_function_declaration": handleFunction,
		"generator_function":             handleFunction,
		"arrow_function":                 handleFunction,
		"method_definition":              handleMethod,

		"class_declaration":          handleClass,
		"abstract_class_declaration": handleClass,
		"class":                      handleClass,

		"if_statement":       weighted(branchWeight),
		"switch_statement":   weighted(branchWeight),
		"ternary_expression": weighted(branchWeight),
		"binary_expression":  handleBinary,

		"for_statement":    weighted(loopWeight),
		"for_in_statement": weighted(loopWeight),
		"while_statement":  weighted(loopWeight),
		"do_statement":     weighted(loopWeight),

		"try_statement": handleTry,
	}
	if typed {
		h["interface_declaration"] = handleInterface
		h["type_alias_declaration"] = handleTypeAlias
	}
	return h
}

func weighted(n int) NodeHandler {
	return func(ctx *ExtractionContext, _ *sitter.Node) bool {
		ctx.Metrics.Complexity += n
		return false
	}
}

func handleImport(ctx *ExtractionContext, node *sitter.Node) bool {
	ctx.Metrics.ImportCount++

	source := node.ChildByFieldName("source")
	if source == nil {
		// import x = require("y")
		for i := uint(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(i)
			if child != nil && child.Kind() == "import_require_clause" {
				source = child.ChildByFieldName("source")
				break
			}
		}
	}
	if dep := trimQuoted(ctx.Text(source)); dep != "" {
		ctx.Metrics.Dependencies = append(ctx.Metrics.Dependencies, dep)
	}
	return false
}

func handleExport(ctx *ExtractionContext, node *sitter.Node) bool {
	ctx.Metrics.ExportCount++
	if ctx.Typed {
		extractExportNames(ctx, node.ChildByFieldName("declaration"))
	}
	return false
}

func extractExportNames(ctx *ExtractionContext, decl *sitter.Node) {
	if decl == nil {
		return
	}
	switch decl.Kind() {
	case "function_declaration", "generator_function_declaration",
		"class_declaration", "abstract_class_declaration":
		ctx.AddExport(ctx.FieldText(decl, "name"))
	case "lexical_declaration", "variable_declaration":
		for i := uint(0); i < decl.NamedChildCount(); i++ {
			declarator := decl.NamedChild(i)
			if declarator == nil || declarator.Kind() != "variable_declarator" {
				continue
			}
			// Destructuring patterns have no single name.
			if name := declarator.ChildByFieldName("name"); name != nil && name.Kind() == "identifier" {
				ctx.AddExport(ctx.Text(name))
			}
		}
	}
}

func handleFunction(ctx *ExtractionContext, _ *sitter.Node) bool {
	ctx.Metrics.FunctionCount++
	ctx.Metrics.Complexity += functionBaseComplexity
	return false
}

func handleMethod(ctx *ExtractionContext, node *sitter.Node) bool {
	handleFunction(ctx, node)
	if ctx.Typed && hasAccessibility(ctx, node, "public") {
		ctx.Metrics.PublicMethods++
	}
	return false
}

func hasAccessibility(ctx *ExtractionContext, node *sitter.Node, modifier string) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == "accessibility_modifier" && ctx.Text(child) == modifier {
			return true
		}
	}
	return false
}

func handleClass(ctx *ExtractionContext, node *sitter.Node) bool {
	ctx.Metrics.ClassCount++
	if ctx.Typed {
		ctx.AddExport(ctx.FieldText(node, "name"))
	}
	return false
}

func handleInterface(ctx *ExtractionContext, node *sitter.Node) bool {
	ctx.Metrics.InterfaceCount++
	ctx.AddExport(ctx.FieldText(node, "name"))
	return false
}

func handleTypeAlias(ctx *ExtractionContext, node *sitter.Node) bool {
	ctx.Metrics.TypeCount++
	ctx.AddExport(ctx.FieldText(node, "name"))
	return false
}

func handleBinary(ctx *ExtractionContext, node *sitter.Node) bool {
	if logicalOperators[ctx.FieldText(node, "operator")] {
		ctx.Metrics.Complexity += branchWeight
	}
	return false
}

func handleTry(ctx *ExtractionContext, node *sitter.Node) bool {
	ctx.Metrics.Complexity += branchWeight
	if node.ChildByFieldName("handler") != nil {
		ctx.Metrics.Complexity += branchWeight
	}
	return false
}
