package app

import (
	"bytes"
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-enry/go-enry/v2"
	"golang.org/x/sync/errgroup"

	"github.com/harshpreet931/autoMarkdown/internal/engine/parser"
	"github.com/harshpreet931/autoMarkdown/internal/shared/observability"
	"github.com/harshpreet931/autoMarkdown/internal/ui/report"
)

var binaryExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true, ".tiff": true, ".webp": true, ".svg": true, ".ico": true,
	".mp4": true, ".avi": true, ".mov": true, ".wmv": true, ".flv": true, ".webm": true, ".mkv": true,
	".mp3": true, ".wav": true, ".ogg": true, ".flac": true, ".aac": true, ".m4a": true,
	".zip": true, ".tar": true, ".gz": true, ".rar": true, ".7z": true, ".bz2": true, ".xz": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true, ".ppt": true, ".pptx": true,
	".exe": true, ".dmg": true, ".app": true, ".deb": true, ".rpm": true, ".msi": true,
	".ttf": true, ".woff": true, ".woff2": true, ".eot": true, ".otf": true,
	".bin": true, ".dat": true, ".db": true, ".sqlite": true, ".sqlite3": true,
}

const binaryRuneRatio = 0.3

var utf8BOM = []byte("\uFEFF")

// IsBinaryPath reports whether the extension marks a file as binary.
func IsBinaryPath(filePath string) bool {
	return binaryExtensions[strings.ToLower(path.Ext(filePath))]
}

// IsBinaryContent reports a NUL byte or a high share of control and
// high-latin runes. Empty content is text.
func IsBinaryContent(content string) bool {
	if content == "" {
		return false
	}
	if strings.IndexByte(content, 0) >= 0 {
		return true
	}
	total, suspicious := 0, 0
	for _, r := range content {
		total++
		if r <= 0x08 || (r >= 0x0E && r <= 0x1F) || (r >= 0x7F && r <= 0xFF) {
			suspicious++
		}
	}
	return float64(suspicious)/float64(total) > binaryRuneRatio
}

type candidate struct {
	rel  string
	abs  string
	size int64
}

// Scan walks root and returns the discovered files in walk order together
// with the project structure tree.
func (a *App) Scan(ctx context.Context, root string) ([]*parser.SourceFile, *report.TreeNode, error) {
	cfg := a.Config
	matcher, err := NewMatcher(root, cfg.Scan.Include, cfg.Excludes(), cfg.Scan.IncludeHidden, cfg.Scan.RespectGitignore)
	if err != nil {
		return nil, nil, err
	}

	tree := &report.TreeNode{Name: filepath.Base(root), Type: report.NodeDirectory}
	dirs := map[string]*report.TreeNode{"": tree}
	var candidates []candidate

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			slog.Debug("skipping unreadable entry", "path", p, "error", err)
			return nil
		}
		if p == root {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		relOS, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel := filepath.ToSlash(relOS)

		if reason := matcher.skipReason(rel, d.IsDir()); reason != "" {
			if d.IsDir() {
				return filepath.SkipDir
			}
			observability.FilesSkippedTotal.WithLabelValues(reason).Inc()
			return nil
		}

		parent := dirs[parentKey(rel)]
		if parent == nil {
			parent = tree
		}
		node := &report.TreeNode{Name: d.Name(), Path: rel, Type: report.NodeFile}
		if d.IsDir() {
			node.Type = report.NodeDirectory
			dirs[rel] = node
		}
		parent.Children = append(parent.Children, node)

		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !matcher.Included(rel) {
			observability.FilesSkippedTotal.WithLabelValues("not_included").Inc()
			return nil
		}
		if IsBinaryPath(rel) {
			observability.FilesSkippedTotal.WithLabelValues("binary").Inc()
			return nil
		}
		info, err := d.Info()
		if err != nil {
			slog.Debug("skipping unreadable file", "path", rel, "error", err)
			observability.FilesSkippedTotal.WithLabelValues("unreadable").Inc()
			return nil
		}
		if info.Size() > cfg.Scan.MaxFileSize {
			slog.Debug("skipping large file", "path", rel, "size", info.Size())
			observability.FilesSkippedTotal.WithLabelValues("size").Inc()
			return nil
		}
		candidates = append(candidates, candidate{rel: rel, abs: p, size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	sortTree(tree)

	results := make([]*parser.SourceFile, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers(cfg))
	for i, c := range candidates {
		g.Go(func() error {
			if err := a.limiter.Wait(gctx, 1); err != nil {
				return err
			}
			results[i] = readCandidate(c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	files := make([]*parser.SourceFile, 0, len(results))
	for _, f := range results {
		if f != nil {
			files = append(files, f)
		}
	}
	observability.FilesScannedTotal.Add(float64(len(files)))
	return files, tree, nil
}

// readCandidate returns nil for files that cannot be used as text.
func readCandidate(c candidate) *parser.SourceFile {
	data, err := os.ReadFile(c.abs)
	if err != nil {
		slog.Debug("skipping unreadable file", "path", c.rel, "error", err)
		observability.FilesSkippedTotal.WithLabelValues("unreadable").Inc()
		return nil
	}
	if !utf8.Valid(data) {
		slog.Debug("skipping non-utf8 file", "path", c.rel)
		observability.FilesSkippedTotal.WithLabelValues("encoding").Inc()
		return nil
	}
	content := string(bytes.TrimPrefix(data, utf8BOM))
	if enry.IsBinary(data) || IsBinaryContent(content) {
		slog.Debug("skipping binary file", "path", c.rel)
		observability.FilesSkippedTotal.WithLabelValues("binary").Inc()
		return nil
	}

	return &parser.SourceFile{
		Path:     c.rel,
		Content:  content,
		Language: parser.DetectLanguage(c.rel),
		Size:     c.size,
	}
}

func parentKey(rel string) string {
	dir := path.Dir(rel)
	if dir == "." {
		return ""
	}
	return dir
}

func sortTree(n *report.TreeNode) {
	if n == nil || !n.IsDir() {
		return
	}
	n.SortChildren()
	for _, child := range n.Children {
		sortTree(child)
	}
}
