package app

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/harshpreet931/autoMarkdown/internal/core/config"
	"github.com/harshpreet931/autoMarkdown/internal/engine/graph"
	"github.com/harshpreet931/autoMarkdown/internal/engine/parser"
	"github.com/harshpreet931/autoMarkdown/internal/shared/util"
	"github.com/harshpreet931/autoMarkdown/internal/ui/report"
)

// App converts projects according to one configuration. The analyzer and
// its cache live as long as the App, so watch-mode reruns only re-analyze
// files whose content changed.
type App struct {
	Config  *config.Config
	limiter *util.Limiter

	// statusMu guards the fields health checks read while a run or a
	// config reload is in flight.
	statusMu sync.RWMutex
	analyzer *parser.Analyzer
	lastRun  RunStatus
}

// Project is the result of one conversion run.
type Project struct {
	RunID       string
	Name        string
	Root        string
	GeneratedAt time.Time
	// Files are sorted by descending importance, ties by path.
	Files     []*parser.SourceFile
	Structure *report.TreeNode
	Summary   string
	// Graph is nil when structural analysis is disabled.
	Graph *graph.DependencyGraph
}

func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	var analyzer *parser.Analyzer
	if cfg.Analysis.UseAST {
		loader, err := parser.NewGrammarLoader()
		if err != nil {
			return nil, fmt.Errorf("load grammars: %w", err)
		}
		slog.Debug("grammars loaded", "grammars", loader.Grammars())
		analyzer = parser.NewAnalyzer(loader)
	}

	return &App{
		Config:   cfg,
		analyzer: analyzer,
		limiter:  util.NewLimiter(cfg.Scan.ReadsPerSecond, workers(cfg)),
	}, nil
}

// workers is the bound for concurrent reads and analyses. A zero
// scan.concurrency means one worker per CPU.
func workers(cfg *config.Config) int {
	if n := cfg.Scan.Concurrency; n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// Analyzer returns the structural analyzer, or nil when AST analysis is off.
func (a *App) Analyzer() *parser.Analyzer {
	a.statusMu.RLock()
	defer a.statusMu.RUnlock()
	return a.analyzer
}

func (a *App) setAnalyzer(analyzer *parser.Analyzer) {
	a.statusMu.Lock()
	a.analyzer = analyzer
	a.statusMu.Unlock()
}

// Document adapts the project for the renderers.
func (p *Project) Document() *report.Document {
	return &report.Document{
		Name:        p.Name,
		RunID:       p.RunID,
		GeneratedAt: p.GeneratedAt,
		Summary:     p.Summary,
		Structure:   p.Structure,
		Files:       p.Files,
		Graph:       p.Graph,
	}
}
