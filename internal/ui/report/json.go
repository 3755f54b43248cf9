package report

import (
	"encoding/json"
	"time"
)

type jsonMetrics struct {
	ImportCount    int      `json:"importCount"`
	ExportCount    int      `json:"exportCount"`
	FunctionCount  int      `json:"functionCount"`
	ClassCount     int      `json:"classCount"`
	InterfaceCount int      `json:"interfaceCount"`
	TypeCount      int      `json:"typeCount"`
	Complexity     int      `json:"complexity"`
	Centrality     float64  `json:"centrality"`
	Exports        []string `json:"exports,omitempty"`
	Frameworks     []string `json:"frameworks,omitempty"`
	IsEntryPoint   bool     `json:"isEntryPoint"`
	IsTestFile     bool     `json:"isTestFile"`
	IsConfigFile   bool     `json:"isConfigFile"`
	Strategy       string   `json:"strategy"`
}

type jsonFile struct {
	Path       string       `json:"path"`
	Content    string       `json:"content"`
	Language   string       `json:"language"`
	Size       *int64       `json:"size,omitempty"`
	Importance *float64     `json:"importance,omitempty"`
	ASTMetrics *jsonMetrics `json:"astMetrics,omitempty"`
}

type jsonDocument struct {
	Name        string     `json:"name"`
	RunID       string     `json:"runId,omitempty"`
	GeneratedAt string     `json:"generatedAt"`
	Summary     string     `json:"summary"`
	Structure   *TreeNode  `json:"structure,omitempty"`
	Files       []jsonFile `json:"files"`
}

// RenderJSON encodes the document with two-space indentation. Without
// metadata, sizes, scores and metrics are omitted.
func RenderJSON(doc *Document, opts Options) ([]byte, error) {
	if doc.GeneratedAt.IsZero() {
		doc.GeneratedAt = time.Now().UTC()
	}
	out := jsonDocument{
		Name:        doc.Name,
		RunID:       doc.RunID,
		GeneratedAt: doc.GeneratedAt.UTC().Format(time.RFC3339),
		Summary:     doc.Summary,
		Structure:   doc.Structure,
		Files:       make([]jsonFile, 0, len(doc.Files)),
	}

	for _, f := range doc.Files {
		jf := jsonFile{Path: f.Path, Content: f.Content, Language: f.Language}
		if opts.IncludeMetadata {
			size, importance := f.Size, f.Importance
			jf.Size = &size
			jf.Importance = &importance
			if m := f.Metrics; m != nil {
				jf.ASTMetrics = &jsonMetrics{
					ImportCount:    m.ImportCount,
					ExportCount:    m.ExportCount,
					FunctionCount:  m.FunctionCount,
					ClassCount:     m.ClassCount,
					InterfaceCount: m.InterfaceCount,
					TypeCount:      m.TypeCount,
					Complexity:     m.Complexity,
					Centrality:     f.Centrality,
					Exports:        m.Exports,
					Frameworks:     m.Frameworks,
					IsEntryPoint:   m.IsEntryPoint,
					IsTestFile:     m.IsTestFile,
					IsConfigFile:   m.IsConfigFile,
					Strategy:       m.Strategy,
				}
			}
		}
		out.Files = append(out.Files, jf)
	}

	return json.MarshalIndent(out, "", "  ")
}
