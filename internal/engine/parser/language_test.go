package parser

import "testing"

func TestDetectLanguage(t *testing.T) {
	tests := map[string]string{
		"src/app.ts":       LangTypeScript,
		"src/App.TSX":      LangTSX,
		"src/index.js":     LangJavaScript,
		"src/lib.mjs":      LangJavaScript,
		"src/view.jsx":     LangJSX,
		"tool/run.py":      LangPython,
		"cmd/main.go":      "go",
		"docs/README.md":   "markdown",
		"notes.unknownext": LangText,
	}
	for path, want := range tests {
		if got := DetectLanguage(path); got != want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestGrammarLoader(t *testing.T) {
	loader, err := NewGrammarLoader()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{GrammarJavaScript, GrammarTSX, GrammarTypeScript}
	got := loader.Grammars()
	if len(got) != len(want) {
		t.Fatalf("Grammars() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Grammars() = %v, want %v", got, want)
		}
	}
	if loader.Pool("rust") != nil {
		t.Error("expected nil pool for an unloaded grammar")
	}
}
