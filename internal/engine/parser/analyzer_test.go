package parser

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	loader, err := NewGrammarLoader()
	require.NoError(t, err)
	return NewAnalyzer(loader)
}

func TestAnalyze_TypeScriptModule(t *testing.T) {
	a := newTestAnalyzer(t)

	src := `import { Injectable } from './di';
import * as path from 'path';

export interface Options {
  root: string;
}

export class Service {
  run(opts: Options): string {
    if (opts.root) {
      return path.join(opts.root, 'x');
    }
    return '';
  }
}
`
	m := a.Analyze("src/service.ts", []byte(src), LangTypeScript)

	assert.Equal(t, "typescript", m.Strategy)
	assert.Equal(t, 2, m.ImportCount)
	assert.Equal(t, 2, m.ExportCount)
	assert.Equal(t, 1, m.ClassCount)
	assert.Equal(t, 1, m.InterfaceCount)
	assert.Equal(t, 1, m.FunctionCount)
	assert.Greater(t, m.Complexity, 0)
	assert.Equal(t, []string{"./di", "path"}, m.Dependencies)
	assert.ElementsMatch(t, []string{"Options", "Service"}, m.Exports)
}

func TestAnalyze_TypeScriptExportNames(t *testing.T) {
	a := newTestAnalyzer(t)

	src := `export const a = 1, b = 2;
export const { c } = obj;
export function build() {}
export type ID = string;
export abstract class Base {}
`
	m := a.Analyze("src/names.ts", []byte(src), LangTypeScript)

	assert.Equal(t, 5, m.ExportCount)
	assert.Equal(t, 1, m.TypeCount)
	assert.Equal(t, 1, m.ClassCount)
	assert.ElementsMatch(t, []string{"a", "b", "build", "ID", "Base"}, m.Exports)
}

func TestAnalyze_JavaScriptBranch(t *testing.T) {
	a := newTestAnalyzer(t)

	src := `function check(x) {
  if (x > 1) {
    return 'big';
  } else {
    return 'small';
  }
}
`
	m := a.Analyze("src/check.js", []byte(src), LangJavaScript)

	assert.Equal(t, "javascript", m.Strategy)
	assert.Equal(t, 1, m.FunctionCount)
	assert.GreaterOrEqual(t, m.Complexity, 2)
	assert.Empty(t, m.Exports, "untyped walk does not capture export names")
}

func TestAnalyze_JavaScriptComplexityWeights(t *testing.T) {
	a := newTestAnalyzer(t)

	src := `for (let i = 0; i < n; i++) {}
while (ok) {}
const v = a && b ? c : d ?? e;
try { run(); } catch (err) { log(err); }
`
	m := a.Analyze("src/weights.js", []byte(src), LangJavaScript)

	// for 2, while 2, && 1, ternary 1, ?? 1, try 1, catch 1
	assert.Equal(t, 9, m.Complexity)
	assert.Equal(t, 0, m.FunctionCount)
}

func TestAnalyze_ReactFramework(t *testing.T) {
	a := newTestAnalyzer(t)

	src := `import React from 'react';

export default function App() {
  return null;
}
`
	m := a.Analyze("src/App.jsx", []byte(src), LangJSX)

	assert.Contains(t, m.Frameworks, "react")
	assert.Equal(t, 1, m.ImportCount)
	assert.Equal(t, 1, m.ExportCount)
}

func TestAnalyze_SyntaxErrorFallsBackToGeneric(t *testing.T) {
	a := newTestAnalyzer(t)

	src := "function broken( {\n  if (x) {\n"
	m := a.Analyze("src/broken.js", []byte(src), LangJavaScript)

	assert.Equal(t, "generic", m.Strategy)
	assert.Greater(t, m.FunctionCount, 0)
	assert.Greater(t, m.Complexity, 0)
}

func TestAnalyze_TypeScriptWithJSXUsesTSXGrammar(t *testing.T) {
	a := newTestAnalyzer(t)

	src := `export const App = () => <div className="a">{x}</div>;
`
	m := a.Analyze("src/app.ts", []byte(src), LangTypeScript)

	assert.Equal(t, "tsx", m.Strategy)
	assert.Equal(t, 1, m.ExportCount)
	assert.Equal(t, 1, m.FunctionCount)
}

func TestAnalyze_DeepNesting(t *testing.T) {
	a := newTestAnalyzer(t)

	const depth = 500
	var b strings.Builder
	for i := 0; i < depth; i++ {
		b.WriteString("if (a) {\n")
	}
	for i := 0; i < depth; i++ {
		b.WriteString("}\n")
	}

	m := a.Analyze("src/deep.js", []byte(b.String()), LangJavaScript)
	assert.Equal(t, "javascript", m.Strategy)
	assert.Equal(t, depth, m.Complexity)
}

func TestAnalyze_EmptyUnknownFile(t *testing.T) {
	a := newTestAnalyzer(t)

	m := a.Analyze("blob.xyz", nil, LangText)

	require.NotNil(t, m)
	assert.Equal(t, "generic", m.Strategy)
	assert.Zero(t, m.ImportCount)
	assert.Zero(t, m.ExportCount)
	assert.Zero(t, m.FunctionCount)
	assert.Zero(t, m.ClassCount)
	assert.Zero(t, m.Complexity)
	assert.True(t, m.IsGenerated())
}

func TestAnalyze_NilLoaderUsesGeneric(t *testing.T) {
	a := NewAnalyzer(nil)

	m := a.Analyze("src/a.ts", []byte("import x from './x';\nclass A {}\n"), LangTypeScript)

	assert.Equal(t, "generic", m.Strategy)
	assert.Equal(t, 1, m.ImportCount)
	assert.Equal(t, 1, m.ClassCount)
}

func TestAnalyze_Python(t *testing.T) {
	a := NewAnalyzer(nil)

	src := `import os
from collections import OrderedDict
from pkg.sub import thing

def main():
    if os.environ and True:
        pass

class Foo:
    def method(self):
        pass
`
	m := a.Analyze("tool/script.py", []byte(src), LangPython)

	assert.Equal(t, "python", m.Strategy)
	// Dotted "from" imports are not counted, only captured as dependencies.
	assert.Equal(t, 2, m.ImportCount)
	assert.Equal(t, []string{"collections", "pkg.sub", "os"}, m.Dependencies)
	assert.Equal(t, 1, m.FunctionCount)
	assert.Equal(t, 1, m.ClassCount)
	assert.Equal(t, 2, m.Complexity)
}

func TestAnalyze_CacheByContent(t *testing.T) {
	a := newTestAnalyzer(t)
	src := []byte("export function a() {}\n")

	first := a.Analyze("src/a.js", src, LangJavaScript)
	first.FunctionCount = 99

	second := a.Analyze("src/a.js", src, LangJavaScript)
	assert.Equal(t, 1, second.FunctionCount, "cached result must not alias caller copies")
	assert.Equal(t, 1, a.CacheLen())

	a.Analyze("src/a.js", []byte("export function b() {}\n"), LangJavaScript)
	assert.Equal(t, 2, a.CacheLen())

	a.ClearCache()
	assert.Equal(t, 0, a.CacheLen())
}

func TestAnalyze_Concurrent(t *testing.T) {
	a := newTestAnalyzer(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			src := fmt.Sprintf("export function f%d() { if (x) {} }\n", i)
			m := a.Analyze(fmt.Sprintf("src/f%d.ts", i), []byte(src), LangTypeScript)
			assert.Equal(t, 1, m.FunctionCount)
			assert.Equal(t, 2, m.Complexity)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 16, a.CacheLen())
}
