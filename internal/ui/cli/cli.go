package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/harshpreet931/autoMarkdown/internal/core/app"
	"github.com/harshpreet931/autoMarkdown/internal/core/config"
	apperrors "github.com/harshpreet931/autoMarkdown/internal/core/errors"
	"github.com/harshpreet931/autoMarkdown/internal/engine/graph"
	"github.com/harshpreet931/autoMarkdown/internal/shared/observability"
	"github.com/harshpreet931/autoMarkdown/internal/ui/report"
)

const versionString = "1.0.2"

type cliOptions struct {
	output        string
	format        string
	includeHidden bool
	maxSize       int64
	exclude       []string
	include       []string
	noMetadata    bool
	ast           bool
	policy        string
	maxTokens     int
	configPath    string
	watch         bool
	metricsAddr   string
	tokenReport   bool
	verbose       bool
}

// Run executes the command line and returns the process exit code.
func Run(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		console{w: stderr}.Error("Error: %v", err)
		if apperrors.IsCode(err, apperrors.CodeValidationError) {
			return 2
		}
		return 1
	}
	return 0
}

func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	cmd, _ := newRootCommand(stdout, stderr)
	return cmd
}

func newRootCommand(stdout, stderr io.Writer) (*cobra.Command, *cliOptions) {
	var opts cliOptions

	cmd := &cobra.Command{
		Use:           "automarkdown <path>",
		Short:         "Intelligently convert codebases into markdown for LLMs",
		Long:          "automarkdown scans a project, ranks its files by importance and renders them as one markdown or JSON document.",
		Version:       versionString,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args[0], &opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "Output file path (default: stdout)")
	flags.StringVarP(&opts.format, "format", "f", config.FormatMarkdown, "Output format: markdown or json")
	flags.BoolVar(&opts.includeHidden, "include-hidden", false, "Include hidden files and directories")
	flags.Int64Var(&opts.maxSize, "max-size", 1<<20, "Maximum file size in bytes")
	flags.StringSliceVar(&opts.exclude, "exclude", nil, "Comma-separated exclude patterns, added to the built-in excludes")
	flags.StringSliceVar(&opts.include, "include", []string{"**/*"}, "Comma-separated include patterns")
	flags.BoolVar(&opts.noMetadata, "no-metadata", false, "Exclude file metadata from output")
	flags.BoolVar(&opts.ast, "ast", false, "Enable structural analysis and dependency-graph ranking")
	flags.StringVar(&opts.policy, "policy", string(graph.PolicyDefault), "Structural scoring policy: default or legacy")
	flags.IntVar(&opts.maxTokens, "max-tokens", 0, "Drop the least important files until the estimated token count fits (0 disables)")
	flags.StringVar(&opts.configPath, "config", "", "Path to config file (default: <path>/"+config.FileName+")")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "Re-run the conversion whenever files change")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve /metrics and /health on this address")
	flags.BoolVar(&opts.tokenReport, "token-report", false, "Print LLM compatibility analysis for the output")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newInitCommand(stderr), newExamplesCommand(stdout))
	return cmd, &opts
}

// applyFlags copies explicitly set flags over cfg, so file and environment
// values survive unless overridden on the command line.
func applyFlags(cmd *cobra.Command, opts *cliOptions, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("output") {
		cfg.Output.Path = opts.output
	}
	if changed("format") {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(opts.format))
	}
	if changed("include-hidden") {
		cfg.Scan.IncludeHidden = opts.includeHidden
	}
	if changed("max-size") {
		cfg.Scan.MaxFileSize = opts.maxSize
	}
	if changed("exclude") {
		cfg.Scan.Exclude = append(cfg.Scan.Exclude, trimAll(opts.exclude)...)
	}
	if changed("include") {
		cfg.Scan.Include = trimAll(opts.include)
	}
	if changed("no-metadata") {
		cfg.Output.IncludeMetadata = !opts.noMetadata
	}
	if changed("ast") {
		cfg.Analysis.UseAST = opts.ast
	}
	if changed("policy") {
		cfg.Scoring.Policy = opts.policy
	}
	if changed("max-tokens") {
		cfg.Output.MaxTokens = opts.maxTokens
	}
	if changed("metrics-addr") {
		cfg.Observability.MetricsAddr = opts.metricsAddr
	}
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func runConvert(cmd *cobra.Command, root string, opts *cliOptions, stdout, stderr io.Writer) error {
	configureLogging(stderr, opts.verbose)
	out := console{w: stderr}

	info, err := os.Stat(root)
	if err != nil {
		return apperrors.AddContext(apperrors.Wrap(err, apperrors.CodeNotFound, fmt.Sprintf("path %q does not exist", root)), apperrors.CtxPath, root)
	}
	if !info.IsDir() {
		return apperrors.AddContext(apperrors.New(apperrors.CodeValidationError, fmt.Sprintf("path %q is not a directory", root)), apperrors.CtxPath, root)
	}

	if err := config.LoadDotEnv(root); err != nil {
		slog.Warn("failed to load .env", "dir", root, "error", err)
	}
	cfg, cfgPath, err := config.Resolve(opts.configPath, root)
	if err != nil {
		return apperrors.AddContext(apperrors.Wrap(err, apperrors.CodeValidationError, "invalid configuration"), apperrors.CtxPath, cfgPath)
	}
	applyFlags(cmd, opts, cfg)
	if err := config.Validate(cfg); err != nil {
		return apperrors.Wrap(err, apperrors.CodeValidationError, "invalid options")
	}
	if cfgPath != "" {
		slog.Debug("configuration loaded", "path", cfgPath)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Observability.EnableTracing {
		shutdown, err := observability.SetupTracing(ctx, observability.TracingConfig{
			Endpoint: cfg.Observability.OTLPEndpoint,
			Insecure: true,
		})
		if err != nil {
			slog.Warn("tracing disabled", "error", err)
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(shutdownCtx)
			}()
		}
	}

	a, err := app.New(cfg)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "initialize")
	}

	if addr := cfg.Observability.MetricsAddr; addr != "" {
		server := NewObservabilityServer(addr, app.NewHealthService(a))
		if err := server.Start(ctx); err != nil {
			return apperrors.AddContext(apperrors.Wrap(err, apperrors.CodeIO, "start observability server"), "addr", addr)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Stop(shutdownCtx)
		}()
	}

	if opts.watch {
		return a.Watch(ctx, root, app.WatchOptions{
			ConfigPath:  cfgPath,
			Reconfigure: func(next *config.Config) { applyFlags(cmd, opts, next) },
			OnRun: func(p *app.Project, err error) {
				if err != nil {
					out.Error("Conversion failed: %v", err)
					return
				}
				if err := emit(p, a.Config, opts, stdout, out); err != nil {
					out.Error("Output failed: %v", err)
				}
			},
		})
	}

	out.Info("Analyzing codebase...")
	project, err := a.Convert(ctx, root)
	if err != nil {
		return err
	}
	out.Info("Converting to %s...", cfg.Output.Format)
	return emit(project, cfg, opts, stdout, out)
}

// emit renders the project and writes it to the configured destination.
func emit(p *app.Project, cfg *config.Config, opts *cliOptions, stdout io.Writer, out console) error {
	rendered, dropped, err := report.Render(p.Document(), cfg.Output.Format, report.Options{
		IncludeMetadata: cfg.Output.IncludeMetadata,
		MaxTokens:       cfg.Output.MaxTokens,
	})
	if err != nil {
		return apperrors.AddContext(apperrors.Wrap(err, apperrors.CodeValidationError, "render output"), apperrors.CtxFormat, cfg.Output.Format)
	}
	if dropped > 0 {
		out.Warn("Dropped %d least important files to fit %s tokens", dropped, humanize.Comma(int64(cfg.Output.MaxTokens)))
	}

	if cfg.Output.Path != "" {
		if err := report.WriteOutput(cfg.Output.Path, rendered); err != nil {
			return apperrors.AddContext(apperrors.Wrap(err, apperrors.CodeIO, "write output"), apperrors.CtxPath, cfg.Output.Path)
		}
		out.Success("Output saved to: %s", cfg.Output.Path)
	} else {
		if _, err := io.WriteString(stdout, rendered); err != nil {
			return apperrors.Wrap(err, apperrors.CodeIO, "write output")
		}
		if !strings.HasSuffix(rendered, "\n") {
			fmt.Fprintln(stdout)
		}
	}

	lines := strings.Count(rendered, "\n") + 1
	out.Info("Generated %s lines (%s, ~%s tokens)",
		humanize.Comma(int64(lines)), humanize.Bytes(uint64(len(rendered))), humanize.Comma(int64(report.EstimateTokens(rendered))))
	if opts.tokenReport {
		out.Muted("%s", strings.TrimRight(report.FormatTokenAnalysis(report.AnalyzeTokenUsage(rendered)), "\n"))
	}
	return nil
}

func configureLogging(w io.Writer, verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}
