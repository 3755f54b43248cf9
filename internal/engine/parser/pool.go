// # internal/engine/parser/pool.go
package parser

import (
	"errors"
	"sync"
	"sync/atomic"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ErrSyntax is returned by ParserPool.Parse when the tree contains error
// nodes. tree-sitter never aborts a parse, so this is the failure signal
// the strategy chain falls back on.
var ErrSyntax = errors.New("source contains syntax errors")

// ParserPool recycles tree-sitter parsers for one grammar. Analysis of
// different files runs concurrently, each goroutine leasing its own parser.
//
//	tree, err := pool.Parse(source)
//	if err != nil { ... }
//	defer tree.Close()
type ParserPool struct {
	lang   *sitter.Language
	pool   sync.Pool
	leased atomic.Int64
}

// NewParserPool creates a pool for the given language grammar.
// The language must remain valid for the lifetime of the pool.
func NewParserPool(lang *sitter.Language) *ParserPool {
	p := &ParserPool{lang: lang}
	p.pool = sync.Pool{
		New: func() any {
			sp := sitter.NewParser()
			_ = sp.SetLanguage(lang)
			return sp
		},
	}
	return p
}

// Get leases a parser configured for the pool's language.
func (p *ParserPool) Get() *sitter.Parser {
	sp := p.pool.Get().(*sitter.Parser)
	_ = sp.SetLanguage(p.lang)
	p.leased.Add(1)
	return sp
}

// Put resets sp and returns it to the pool. Callers must not use sp after.
func (p *ParserPool) Put(sp *sitter.Parser) {
	if sp == nil {
		return
	}
	p.leased.Add(-1)
	sp.Reset()
	p.pool.Put(sp)
}

// Leased returns the number of parsers currently checked out.
func (p *ParserPool) Leased() int {
	return int(p.leased.Load())
}

// Parse parses source with a pooled parser. On success the caller owns the
// returned tree and must Close it. A tree with error nodes is closed here
// and reported as ErrSyntax.
func (p *ParserPool) Parse(source []byte) (*sitter.Tree, error) {
	sp := p.Get()
	defer p.Put(sp)

	tree := sp.Parse(source, nil)
	if tree == nil {
		return nil, errors.New("parse failed")
	}
	if tree.RootNode().HasError() {
		tree.Close()
		return nil, ErrSyntax
	}
	return tree, nil
}
