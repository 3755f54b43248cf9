package report

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/harshpreet931/autoMarkdown/internal/engine/parser"
)

func RenderMarkdown(doc *Document, opts Options) string {
	if doc.GeneratedAt.IsZero() {
		doc.GeneratedAt = time.Now().UTC()
	}

	var b strings.Builder
	if opts.IncludeMetadata {
		b.WriteString("---\n")
		b.WriteString("title: " + nonEmpty(doc.Name, "project") + "\n")
		b.WriteString("generated_at: " + doc.GeneratedAt.UTC().Format(time.RFC3339) + "\n")
		if doc.RunID != "" {
			b.WriteString("run_id: " + doc.RunID + "\n")
		}
		b.WriteString(fmt.Sprintf("files: %d\n", len(doc.Files)))
		b.WriteString("---\n\n")
	}

	b.WriteString("# " + nonEmpty(doc.Name, "project") + "\n\n")
	if doc.Summary != "" {
		b.WriteString("## Summary\n\n")
		b.WriteString(doc.Summary + "\n\n")
	}

	if doc.Structure != nil {
		b.WriteString("## Project Structure\n\n")
		b.WriteString("```\n")
		b.WriteString(RenderTree(doc.Structure))
		b.WriteString("```\n\n")
	}

	if diagram := MermaidGraph(doc.Graph, doc.Files); diagram != "" {
		b.WriteString("## Dependency Graph\n\n")
		b.WriteString("```mermaid\n")
		b.WriteString(diagram)
		b.WriteString("```\n\n")
	}

	b.WriteString("## Files\n\n")
	for _, f := range doc.Files {
		writeFile(&b, f, opts.IncludeMetadata)
	}
	return b.String()
}

func writeFile(b *strings.Builder, f *parser.SourceFile, metadata bool) {
	b.WriteString("### " + f.Path + "\n\n")
	if metadata {
		b.WriteString(fmt.Sprintf("- Language: %s\n", f.Language))
		b.WriteString(fmt.Sprintf("- Size: %.2f KB\n", float64(f.Size)/1024))
		b.WriteString(fmt.Sprintf("- Importance: %.2f\n", f.Importance))
		if m := f.Metrics; m != nil {
			b.WriteString(fmt.Sprintf("- Structure: %d imports, %d exports, %d functions, %d classes, complexity %d\n",
				m.ImportCount, m.ExportCount, m.FunctionCount, m.ClassCount, m.Complexity))
			b.WriteString(fmt.Sprintf("- Centrality: %.3f\n", f.Centrality))
			if len(m.Frameworks) > 0 {
				b.WriteString("- Frameworks: " + strings.Join(m.Frameworks, ", ") + "\n")
			}
		}
		b.WriteString("\n")
	}

	fence := codeFence(f.Content)
	b.WriteString(fence + fenceLanguage(f.Language) + "\n")
	b.WriteString(f.Content)
	if !strings.HasSuffix(f.Content, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(fence + "\n\n")
}

func fenceLanguage(lang string) string {
	if lang == parser.LangText {
		return ""
	}
	return lang
}

// codeFence returns a backtick fence longer than any backtick run in content.
func codeFence(content string) string {
	longest, run := 0, 0
	for _, r := range content {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}

// RenderTree draws the structure with box-drawing connectors. The root line
// carries a trailing slash.
func RenderTree(root *TreeNode) string {
	var b strings.Builder
	b.WriteString(root.Name + "/\n")
	writeTree(&b, root.Children, "")
	return b.String()
}

func writeTree(b *strings.Builder, nodes []*TreeNode, prefix string) {
	for i, n := range nodes {
		last := i == len(nodes)-1
		connector, childPrefix := "├── ", "│   "
		if last {
			connector, childPrefix = "└── ", "    "
		}
		name := n.Name
		if n.IsDir() {
			name += "/"
		}
		b.WriteString(prefix + connector + name + "\n")
		if n.IsDir() {
			writeTree(b, n.Children, prefix+childPrefix)
		}
	}
}

// WriteOutput replaces path atomically: the content goes to a temp file in
// the same directory which is then renamed over the target.
func WriteOutput(filePath, content string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+path.Base(filepath.ToSlash(filePath))+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %q: %w", filePath, err)
	}
	tmpName := tmp.Name()

	writeErr := error(nil)
	if _, err := tmp.WriteString(content); err != nil {
		writeErr = fmt.Errorf("write temp file %q: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil && writeErr == nil {
		writeErr = fmt.Errorf("close temp file %q: %w", tmpName, err)
	}
	if writeErr != nil {
		_ = os.Remove(tmpName)
		return writeErr
	}

	if err := os.Rename(tmpName, filePath); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace output file %q: %w", filePath, err)
	}
	return nil
}

func nonEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
