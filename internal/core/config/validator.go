package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/harshpreet931/autoMarkdown/internal/engine/graph"
)

// Validate reports every problem found, joined into one error.
func Validate(cfg *Config) error {
	var errs []error
	errs = append(errs, validateScan(cfg)...)
	errs = append(errs, validateScoring(cfg)...)
	errs = append(errs, validateOutput(cfg)...)
	errs = append(errs, validateObservability(cfg)...)
	return errors.Join(errs...)
}

func validateScan(cfg *Config) []error {
	var errs []error
	for i, pattern := range cfg.Scan.Include {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("scan.include[%d] %q: %w", i, pattern, err))
		}
	}
	for i, pattern := range cfg.Scan.Exclude {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("scan.exclude[%d] %q: %w", i, pattern, err))
		}
	}
	if cfg.Scan.MaxFileSize < 0 {
		errs = append(errs, fmt.Errorf("scan.max_file_size must be >= 0, got %d", cfg.Scan.MaxFileSize))
	}
	if cfg.Scan.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("scan.concurrency must be >= 0, got %d", cfg.Scan.Concurrency))
	}
	if cfg.Scan.ReadsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("scan.reads_per_second must be >= 0, got %v", cfg.Scan.ReadsPerSecond))
	}
	return errs
}

func validateScoring(cfg *Config) []error {
	policy := strings.ToLower(strings.TrimSpace(cfg.Scoring.Policy))
	if !graph.Policy(policy).Valid() {
		return []error{fmt.Errorf("scoring.policy must be one of: default, legacy; got %q", cfg.Scoring.Policy)}
	}
	return nil
}

func validateOutput(cfg *Config) []error {
	var errs []error
	switch strings.ToLower(strings.TrimSpace(cfg.Output.Format)) {
	case "", FormatMarkdown, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("output.format must be one of: markdown, json; got %q", cfg.Output.Format))
	}
	if cfg.Output.MaxTokens < 0 {
		errs = append(errs, fmt.Errorf("output.max_tokens must be >= 0, got %d", cfg.Output.MaxTokens))
	}
	return errs
}

func validateObservability(cfg *Config) []error {
	if cfg.Observability.EnableTracing && strings.TrimSpace(cfg.Observability.OTLPEndpoint) == "" {
		return []error{fmt.Errorf("observability.otlp_endpoint is required when enable_tracing is set")}
	}
	return nil
}
