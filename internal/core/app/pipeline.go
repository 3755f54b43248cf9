package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/harshpreet931/autoMarkdown/internal/core/errors"
	"github.com/harshpreet931/autoMarkdown/internal/engine/graph"
	"github.com/harshpreet931/autoMarkdown/internal/engine/parser"
	"github.com/harshpreet931/autoMarkdown/internal/shared/observability"
)

const (
	phaseScan    = "scan"
	phaseAnalyze = "analyze"
	phaseGraph   = "graph"
	phaseScore   = "score"
)

func observePhase(phase string, start time.Time) {
	observability.PhaseDuration.WithLabelValues(phase).Observe(time.Since(start).Seconds())
}

// Convert discovers, analyzes and ranks every file under root.
func (a *App) Convert(ctx context.Context, root string) (*Project, error) {
	started := time.Now()
	project, err := a.convert(ctx, root)
	a.recordRun(project, err, time.Since(started))
	return project, err
}

func (a *App) convert(ctx context.Context, root string) (*Project, error) {
	ctx, span := observability.Tracer.Start(ctx, "convert")
	defer span.End()

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeIO, "resolve project path")
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.AddContext(apperrors.Wrap(err, apperrors.CodeNotFound, "project path does not exist"), apperrors.CtxPath, root)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeIO, "stat project path")
	}
	if !info.IsDir() {
		return nil, apperrors.AddContext(apperrors.New(apperrors.CodeValidationError, "project path is not a directory"), apperrors.CtxPath, root)
	}

	project := &Project{
		RunID:       uuid.NewString(),
		Name:        filepath.Base(abs),
		Root:        abs,
		GeneratedAt: time.Now(),
	}
	span.SetAttributes(attribute.String("run_id", project.RunID), attribute.String("root", abs))

	start := time.Now()
	files, tree, err := a.Scan(ctx, abs)
	observePhase(phaseScan, start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scan failed")
		return nil, apperrors.AddContext(apperrors.Wrap(err, apperrors.CodeIO, "scan project"), apperrors.CtxPath, abs)
	}
	project.Files = files
	project.Structure = tree
	span.SetAttributes(attribute.Int("files", len(files)))

	heuristic := make([]float64, len(files))
	for i, f := range files {
		heuristic[i] = graph.CalculateHeuristicImportance(f.Path, f.Content, a.Config.Analysis.PrioritizeFiles)
		f.Importance = heuristic[i]
	}

	analyzer := a.Analyzer()
	if analyzer != nil {
		g, err := a.analyzeAndScore(ctx, analyzer, files, heuristic)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		project.Graph = g
	}

	SortByImportance(files)
	project.Summary = Summarize(files, analyzer != nil)
	slog.Debug("conversion finished", "run_id", project.RunID, "files", len(files))
	return project, nil
}

// analyzeAndScore runs the structural analysis on every file, then builds
// the dependency graph once all metrics are in.
func (a *App) analyzeAndScore(ctx context.Context, analyzer *parser.Analyzer, files []*parser.SourceFile, heuristic []float64) (*graph.DependencyGraph, error) {
	ctx, span := observability.Tracer.Start(ctx, "analyze")
	defer span.End()

	start := time.Now()
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers(a.Config))
	for _, f := range files {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			f.Metrics = analyzer.Analyze(f.Path, []byte(f.Content), f.Language)
			return nil
		})
	}
	err := eg.Wait()
	observePhase(phaseAnalyze, start)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	metrics := make([]graph.FileMetrics, len(files))
	for i, f := range files {
		metrics[i] = graph.FileMetrics{Path: f.Path, Metrics: f.Metrics}
	}
	dg := graph.Build(metrics)
	graph.CalculateCentrality(dg)
	observePhase(phaseGraph, start)
	span.SetAttributes(attribute.Int("graph.nodes", dg.Len()), attribute.Int("graph.edges", dg.EdgeCount()))

	start = time.Now()
	policy := graph.Policy(strings.ToLower(strings.TrimSpace(a.Config.Scoring.Policy)))
	for i, f := range files {
		f.Centrality = dg.Centrality(f.Path)
		f.Importance = graph.BlendImportance(heuristic[i], policy.Score(f.Metrics, f.Centrality))
	}
	observePhase(phaseScore, start)
	return dg, nil
}

// SortByImportance orders files by descending importance, then path.
func SortByImportance(files []*parser.SourceFile) {
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Importance != files[j].Importance {
			return files[i].Importance > files[j].Importance
		}
		return files[i].Path < files[j].Path
	})
}
