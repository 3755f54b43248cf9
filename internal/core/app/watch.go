package app

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/harshpreet931/autoMarkdown/internal/core/config"
	"github.com/harshpreet931/autoMarkdown/internal/core/watcher"
)

// WatchOptions configures Watch.
type WatchOptions struct {
	// ConfigPath, when set, is reloaded on change and triggers a rerun.
	ConfigPath string
	// Reconfigure is applied to every reloaded configuration before use,
	// typically to re-apply command-line overrides.
	Reconfigure func(*config.Config)
	// OnRun receives the result of every conversion, including the first.
	OnRun func(*Project, error)
}

// Watch converts root once, then again after every debounced batch of file
// changes, until ctx is done. Runs never overlap.
func (a *App) Watch(ctx context.Context, root string, opts WatchOptions) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	var runMu sync.Mutex
	run := func(reason string, changed []string) {
		runMu.Lock()
		defer runMu.Unlock()
		if ctx.Err() != nil {
			return
		}
		slog.Debug("running conversion", "reason", reason, "changed", len(changed))
		project, err := a.Convert(ctx, abs)
		if opts.OnRun != nil {
			opts.OnRun(project, err)
		}
	}

	run("initial", nil)

	matcher, err := NewMatcher(abs, a.Config.Scan.Include, a.Config.Excludes(), a.Config.Scan.IncludeHidden, a.Config.Scan.RespectGitignore)
	if err != nil {
		return err
	}

	w, err := watcher.NewWatcher(a.Config.Watch.Debounce, nil, nil, func(paths []string) {
		run("change", paths)
	})
	if err != nil {
		return err
	}
	defer w.Close()

	w.SetWatchHidden(a.Config.Scan.IncludeHidden)
	w.SetFilter(func(p string, isDir bool) bool {
		rel, err := filepath.Rel(abs, p)
		if err != nil {
			return true
		}
		rel = filepath.ToSlash(rel)
		if isDir {
			return !matcher.Visible(rel, true)
		}
		return !matcher.Included(rel)
	})
	if err := w.Watch([]string{abs}); err != nil {
		return err
	}

	if opts.ConfigPath != "" {
		cw := config.NewWatcher(opts.ConfigPath, func(cfg *config.Config) {
			if opts.Reconfigure != nil {
				opts.Reconfigure(cfg)
			}
			runMu.Lock()
			err := a.reconfigure(cfg)
			runMu.Unlock()
			if err != nil {
				slog.Warn("configuration rejected", "path", opts.ConfigPath, "error", err)
				return
			}
			w.SetDebounce(cfg.Watch.Debounce)
			run("config", []string{opts.ConfigPath})
		})
		if err := cw.Start(ctx); err != nil {
			slog.Warn("configuration watch unavailable", "path", opts.ConfigPath, "error", err)
		} else {
			defer cw.Stop()
		}
	}

	slog.Info("watching for changes", "root", abs)
	<-ctx.Done()
	return nil
}

// reconfigure swaps the configuration. The analyzer is kept when analysis
// stays enabled so its cache survives.
func (a *App) reconfigure(cfg *config.Config) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}
	next, err := New(cfg)
	if err != nil {
		return err
	}
	if !cfg.Analysis.UseAST || a.Analyzer() == nil {
		a.setAnalyzer(next.analyzer)
	}
	a.Config = next.Config
	a.limiter = next.limiter
	return nil
}
