// # internal/engine/parser/types.go
package parser

// SourceFile is one discovered file. Path is the project-relative,
// slash-separated key; Content never changes after discovery.
type SourceFile struct {
	Path       string
	Content    string
	Language   string
	Size       int64
	Importance float64
	Centrality float64
	// Metrics is nil when structural analysis is disabled for the run.
	Metrics *StructuralMetrics
}

// StructuralMetrics is owned by exactly one SourceFile. Counts are never
// negative and Complexity only grows while a strategy runs.
type StructuralMetrics struct {
	ImportCount    int
	ExportCount    int
	FunctionCount  int
	ClassCount     int
	InterfaceCount int
	TypeCount      int
	PublicMethods  int
	Complexity     int

	Dependencies []string // raw import strings, unresolved
	Exports      []string
	Frameworks   []string

	IsEntryPoint bool
	IsTestFile   bool
	IsConfigFile bool

	// Strategy names the analysis strategy that produced the counts.
	Strategy string
}

// Clone returns a deep copy so cached results cannot be mutated by callers.
func (m *StructuralMetrics) Clone() *StructuralMetrics {
	if m == nil {
		return nil
	}
	out := *m
	out.Dependencies = append([]string(nil), m.Dependencies...)
	out.Exports = append([]string(nil), m.Exports...)
	out.Frameworks = append([]string(nil), m.Frameworks...)
	return &out
}

// resetCounts clears everything a strategy writes, keeping the file
// characteristics detected up front.
func (m *StructuralMetrics) resetCounts() {
	m.ImportCount = 0
	m.ExportCount = 0
	m.FunctionCount = 0
	m.ClassCount = 0
	m.InterfaceCount = 0
	m.TypeCount = 0
	m.PublicMethods = 0
	m.Complexity = 0
	m.Dependencies = nil
	m.Exports = nil
	m.Strategy = ""
}

// IsGenerated reports the "generated or empty" shape: no functions, classes,
// exports or complexity at all.
func (m *StructuralMetrics) IsGenerated() bool {
	return m.FunctionCount == 0 &&
		m.ClassCount == 0 &&
		m.ExportCount == 0 &&
		m.Complexity == 0
}
