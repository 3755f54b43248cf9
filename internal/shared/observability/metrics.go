package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "automarkdown_analysis_seconds",
		Help:    "Time spent on structural analysis of a single file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"strategy"})

	AnalysisFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "automarkdown_analysis_fallbacks_total",
		Help: "Number of times a structural analysis strategy failed and the next one was tried.",
	}, []string{"language", "strategy"})

	AnalysisCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "automarkdown_analysis_cache_hits_total",
		Help: "Structural analysis results served from the per-run cache.",
	})

	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "automarkdown_graph_nodes_total",
		Help: "Total number of nodes in the dependency graph.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "automarkdown_graph_edges_total",
		Help: "Total number of resolved edges in the dependency graph.",
	})

	FilesScannedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "automarkdown_files_scanned_total",
		Help: "Files accepted by discovery and handed to the scoring pipeline.",
	})

	FilesSkippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "automarkdown_files_skipped_total",
		Help: "Files rejected by discovery, by reason.",
	}, []string{"reason"})

	PhaseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "automarkdown_phase_seconds",
		Help:    "Time spent in each conversion phase.",
		Buckets: prometheus.DefBuckets,
	}, []string{"phase"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "automarkdown_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
