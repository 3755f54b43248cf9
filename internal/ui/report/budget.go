package report

import (
	"fmt"

	"github.com/harshpreet931/autoMarkdown/internal/engine/parser"
)

// Renderer turns a document into output text.
type Renderer func(doc *Document) (string, error)

// Render produces the output in format and applies the token budget.
// It returns the text and the number of files dropped to fit.
func Render(doc *Document, format string, opts Options) (string, int, error) {
	var render Renderer
	switch format {
	case "", "markdown":
		render = func(d *Document) (string, error) { return RenderMarkdown(d, opts), nil }
	case "json":
		render = func(d *Document) (string, error) {
			data, err := RenderJSON(d, opts)
			return string(data), err
		}
	default:
		return "", 0, fmt.Errorf("unsupported output format %q", format)
	}
	return FitToBudget(doc, opts.MaxTokens, render)
}

// FitToBudget renders doc and, when the estimate exceeds maxTokens, binary
// searches for the longest prefix of doc.Files whose rendering fits. The
// files cut are the least important ones, so doc.Files must be sorted by
// descending importance; doc itself is not modified. The int result is the
// number of files dropped. When even the empty file list does not fit, that
// rendering is returned.
func FitToBudget(doc *Document, maxTokens int, render Renderer) (string, int, error) {
	out, err := render(doc)
	if err != nil || maxTokens <= 0 || EstimateTokens(out) <= maxTokens {
		return out, 0, err
	}

	trimmed := *doc
	files := append([]*parser.SourceFile(nil), doc.Files...)

	// Binary search for the longest prefix of files that fits.
	lo, hi := 0, len(files)-1
	best := ""
	bestLen := -1
	for lo <= hi {
		mid := (lo + hi) / 2
		trimmed.Files = files[:mid]
		candidate, err := render(&trimmed)
		if err != nil {
			return "", 0, err
		}
		if EstimateTokens(candidate) <= maxTokens {
			best, bestLen = candidate, mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	if bestLen < 0 {
		trimmed.Files = nil
		best, err = render(&trimmed)
		if err != nil {
			return "", 0, err
		}
		bestLen = 0
	}
	return best, len(files) - bestLen, nil
}
