// # internal/engine/parser/pool_test.go
package parser

import (
	"errors"
	"sync"
	"testing"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

func jsLanguage() *sitter.Language {
	return sitter.NewLanguage(tree_sitter_javascript.Language())
}

func TestParserPool_GetPut(t *testing.T) {
	pool := NewParserPool(jsLanguage())

	sp := pool.Get()
	if sp == nil {
		t.Fatal("expected non-nil parser from pool")
	}
	if pool.Leased() != 1 {
		t.Fatalf("expected 1 leased parser, got %d", pool.Leased())
	}
	pool.Put(sp)
	if pool.Leased() != 0 {
		t.Fatalf("expected 0 leased parsers, got %d", pool.Leased())
	}
}

func TestParserPool_PutNil(t *testing.T) {
	pool := NewParserPool(jsLanguage())
	pool.Put(nil)
	if pool.Leased() != 0 {
		t.Fatalf("Put(nil) changed lease count to %d", pool.Leased())
	}
}

func TestParserPool_ParseValid(t *testing.T) {
	pool := NewParserPool(jsLanguage())

	tree, err := pool.Parse([]byte("const x = 1;\nfunction run() { return x; }\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer tree.Close()

	if tree.RootNode().Kind() != "program" {
		t.Fatalf("expected program root, got %q", tree.RootNode().Kind())
	}
	if pool.Leased() != 0 {
		t.Fatalf("parser not returned after Parse")
	}
}

func TestParserPool_ParseSyntaxError(t *testing.T) {
	pool := NewParserPool(jsLanguage())

	tree, err := pool.Parse([]byte("function (((\n"))
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", err)
	}
	if tree != nil {
		t.Fatal("expected nil tree on syntax error")
	}
}

func TestParserPool_ConcurrentAccess(t *testing.T) {
	pool := NewParserPool(jsLanguage())

	const goroutines = 20
	const iters = 50

	var wg sync.WaitGroup
	wg.Add(goroutines)

	src := []byte("export function run() { return 1; }\n")

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iters; j++ {
				tree, err := pool.Parse(src)
				if err != nil {
					t.Errorf("parse: %v", err)
					return
				}
				tree.Close()
			}
		}()
	}

	wg.Wait()
	if pool.Leased() != 0 {
		t.Fatalf("expected all parsers returned, %d still leased", pool.Leased())
	}
}

func TestParserPool_LanguageSetAfterReset(t *testing.T) {
	pool := NewParserPool(jsLanguage())

	sp := pool.Get()
	sp.Reset()
	pool.Put(sp)

	tree, err := pool.Parse([]byte("let ok = true;\n"))
	if err != nil {
		t.Fatalf("parser should still parse after reset: %v", err)
	}
	tree.Close()
}
