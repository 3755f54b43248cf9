// # internal/engine/parser/loader.go
package parser

import (
	"fmt"
	"sort"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Grammar identifiers. "typescript" and "tsx" are separate grammars in the
// typescript binding; JSX is part of the javascript grammar.
const (
	GrammarJavaScript = "javascript"
	GrammarTypeScript = "typescript"
	GrammarTSX        = "tsx"
)

// GrammarLoader owns the statically linked tree-sitter grammars and one
// parser pool per grammar.
type GrammarLoader struct {
	languages map[string]*sitter.Language
	pools     map[string]*ParserPool
}

func NewGrammarLoader() (*GrammarLoader, error) {
	gl := &GrammarLoader{
		languages: make(map[string]*sitter.Language),
		pools:     make(map[string]*ParserPool),
	}

	gl.languages[GrammarJavaScript] = sitter.NewLanguage(tree_sitter_javascript.Language())
	gl.languages[GrammarTypeScript] = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	gl.languages[GrammarTSX] = sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())

	for id, lang := range gl.languages {
		if lang == nil {
			return nil, fmt.Errorf("grammar %q failed to load", id)
		}
		gl.pools[id] = NewParserPool(lang)
	}
	return gl, nil
}

// Pool returns the parser pool for a grammar, or nil when it is not loaded.
func (gl *GrammarLoader) Pool(grammar string) *ParserPool {
	return gl.pools[grammar]
}

// Grammars lists the loaded grammar identifiers in sorted order.
func (gl *GrammarLoader) Grammars() []string {
	out := make([]string, 0, len(gl.languages))
	for id := range gl.languages {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
