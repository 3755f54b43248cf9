package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizePatternPath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Empty", input: "", expected: ""},
		{name: "Dot", input: ".", expected: ""},
		{name: "Trim", input: "  ./src/app.ts  ", expected: "src/app.ts"},
		{name: "Relative", input: "src/../lib/index.js", expected: "lib/index.js"},
		{name: "WindowsSeparators", input: `src\utils\fmt.ts`, expected: "src/utils/fmt.ts"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizePatternPath(tc.input); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestPathSegments(t *testing.T) {
	t.Parallel()

	got := PathSegments("./src/__tests__/a.test.ts")
	expected := []string{"src", "__tests__", "a.test.ts"}
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, got)
		}
	}
	if PathSegments(".") != nil {
		t.Fatal("expected nil segments for the root path")
	}
}

func TestSortedStringKeys(t *testing.T) {
	t.Parallel()

	m := map[string]int{"b": 2, "a": 1, "c": 3}
	keys := SortedStringKeys(m)
	expected := []string{"a", "b", "c"}
	if len(keys) != len(expected) {
		t.Fatalf("expected %d keys, got %d", len(expected), len(keys))
	}
	for i, key := range expected {
		if keys[i] != key {
			t.Fatalf("expected %q at %d, got %q", key, i, keys[i])
		}
	}
}

func TestAppendUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	var values []string
	for _, v := range []string{"Props", " Props ", "", "MyComponent", "Props"} {
		values = AppendUnique(values, seen, v)
	}
	if len(values) != 2 || values[0] != "Props" || values[1] != "MyComponent" {
		t.Fatalf("unexpected values %v", values)
	}
}

func TestWriteFileWithDirs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.md")
	content := []byte("# project")

	if err := WriteFileWithDirs(path, content, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(got) != string(content) {
		t.Fatalf("expected %q, got %q", string(content), string(got))
	}
}
