// # internal/engine/parser/analyzer.go
package parser

import (
	"log/slog"
	"time"

	"github.com/harshpreet931/autoMarkdown/internal/shared/observability"
)

// Strategy extracts structural metrics from one file's content. A strategy
// either succeeds, leaving its counts in m, or returns an error; partial
// counts of a failed strategy are discarded by the Analyzer.
type Strategy interface {
	Name() string
	Analyze(content []byte, m *StructuralMetrics) error
}

// Analyzer runs the per-language strategy chain and memoizes results.
// Safe for concurrent use.
type Analyzer struct {
	chains map[string][]Strategy
	cache  *AnalysisCache
}

// NewAnalyzer builds the strategy chains. loader may be nil, in which case
// the script strategies always fail over to the generic counter.
func NewAnalyzer(loader *GrammarLoader) *Analyzer {
	pool := func(grammar string) *ParserPool {
		if loader == nil {
			return nil
		}
		return loader.Pool(grammar)
	}

	ts := newScriptStrategy("typescript", pool(GrammarTypeScript), true)
	tsx := newScriptStrategy("tsx", pool(GrammarTSX), true)
	js := newScriptStrategy("javascript", pool(GrammarJavaScript), false)
	generic := genericStrategy{}

	return &Analyzer{
		chains: map[string][]Strategy{
			// Plain .ts files may still hold JSX; the tsx grammar accepts it.
			LangTypeScript: {ts, tsx, generic},
			LangTSX:        {tsx, generic},
			LangJavaScript: {js, generic},
			LangJSX:        {js, generic},
			LangPython:     {pythonStrategy{}},
		},
		cache: NewAnalysisCache(),
	}
}

func (a *Analyzer) chainFor(language string) []Strategy {
	if chain, ok := a.chains[language]; ok {
		return chain
	}
	return []Strategy{genericStrategy{}}
}

// Analyze never fails: the last strategy of every chain always succeeds.
// filePath is used for characteristics detection and as the cache key.
func (a *Analyzer) Analyze(filePath string, content []byte, language string) *StructuralMetrics {
	if cached, ok := a.cache.Get(filePath, content); ok {
		observability.AnalysisCacheHitsTotal.Inc()
		return cached
	}

	m := &StructuralMetrics{}
	DetectCharacteristics(filePath, content, m)

	for _, strategy := range a.chainFor(language) {
		scratch := m.Clone()
		scratch.resetCounts()

		start := time.Now()
		err := strategy.Analyze(content, scratch)
		observability.AnalysisDuration.WithLabelValues(strategy.Name()).Observe(time.Since(start).Seconds())
		if err != nil {
			observability.AnalysisFallbacksTotal.WithLabelValues(language, strategy.Name()).Inc()
			slog.Debug("analysis strategy failed, falling back", "path", filePath, "strategy", strategy.Name(), "error", err)
			continue
		}

		scratch.Strategy = strategy.Name()
		m = scratch
		break
	}

	a.cache.Put(filePath, content, m)
	return m
}

// CacheLen reports the number of memoized results.
func (a *Analyzer) CacheLen() int {
	return a.cache.Len()
}

func (a *Analyzer) ClearCache() {
	a.cache.Clear()
}
