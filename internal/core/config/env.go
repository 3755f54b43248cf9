package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "AUTOMARKDOWN_"

// LoadDotEnv loads .env from dir into the process environment. Variables
// already set win. A missing file is not an error.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return godotenv.Load(path)
}

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: AUTOMARKDOWN_[SECTION]_[KEY] (e.g., AUTOMARKDOWN_OUTPUT_MAX_TOKENS).
// List values are comma separated.
func ApplyEnvOverrides(cfg *Config) {
	// Scan
	setEnvList(&cfg.Scan.Include, envPrefix+"SCAN_INCLUDE")
	setEnvList(&cfg.Scan.Exclude, envPrefix+"SCAN_EXCLUDE")
	setEnvBool(&cfg.Scan.IncludeHidden, envPrefix+"SCAN_INCLUDE_HIDDEN")
	setEnvInt64(&cfg.Scan.MaxFileSize, envPrefix+"SCAN_MAX_FILE_SIZE")
	setEnvBool(&cfg.Scan.RespectGitignore, envPrefix+"SCAN_RESPECT_GITIGNORE")
	setEnvInt(&cfg.Scan.Concurrency, envPrefix+"SCAN_CONCURRENCY")
	setEnvFloat64(&cfg.Scan.ReadsPerSecond, envPrefix+"SCAN_READS_PER_SECOND")

	// Analysis
	setEnvBool(&cfg.Analysis.UseAST, envPrefix+"ANALYSIS_USE_AST")
	setEnvList(&cfg.Analysis.PrioritizeFiles, envPrefix+"ANALYSIS_PRIORITIZE_FILES")

	// Scoring
	setEnvString(&cfg.Scoring.Policy, envPrefix+"SCORING_POLICY")

	// Output
	setEnvString(&cfg.Output.Format, envPrefix+"OUTPUT_FORMAT")
	setEnvString(&cfg.Output.Path, envPrefix+"OUTPUT_PATH")
	setEnvBool(&cfg.Output.IncludeMetadata, envPrefix+"OUTPUT_INCLUDE_METADATA")
	setEnvInt(&cfg.Output.MaxTokens, envPrefix+"OUTPUT_MAX_TOKENS")

	// Watch
	setEnvDuration(&cfg.Watch.Debounce, envPrefix+"WATCH_DEBOUNCE")

	// Observability
	setEnvString(&cfg.Observability.MetricsAddr, envPrefix+"OBSERVABILITY_METRICS_ADDR")
	setEnvString(&cfg.Observability.OTLPEndpoint, envPrefix+"OBSERVABILITY_OTLP_ENDPOINT")
	setEnvBool(&cfg.Observability.EnableTracing, envPrefix+"OBSERVABILITY_ENABLE_TRACING")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = val
	}
}

func setEnvList(target *[]string, key string) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	slog.Debug("applying env override", "key", key, "value", val)
	*target = out
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = i
		}
	}
}

func setEnvInt64(target *int64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = b
		}
	}
}

func setEnvFloat64(target *float64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = f
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = d
		}
	}
}
