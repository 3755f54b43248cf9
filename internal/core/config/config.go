package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/harshpreet931/autoMarkdown/internal/engine/graph"
	"github.com/harshpreet931/autoMarkdown/internal/shared/util"
)

// FileName is the configuration file looked up in the project root.
const FileName = "automarkdown.toml"

const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

const (
	defaultMaxFileSize = 1 << 20
	defaultDebounce    = 500 * time.Millisecond
)

type Config struct {
	Scan          Scan          `toml:"scan"`
	Analysis      Analysis      `toml:"analysis"`
	Scoring       Scoring       `toml:"scoring"`
	Output        Output        `toml:"output"`
	Watch         Watch         `toml:"watch"`
	Observability Observability `toml:"observability"`
}

type Scan struct {
	Include          []string `toml:"include"`
	Exclude          []string `toml:"exclude"` // merged with the built-in excludes
	IncludeHidden    bool     `toml:"include_hidden"`
	MaxFileSize      int64    `toml:"max_file_size"`
	RespectGitignore bool     `toml:"respect_gitignore"`
	Concurrency      int      `toml:"concurrency"`
	// ReadsPerSecond throttles file reads; 0 means unlimited.
	ReadsPerSecond float64 `toml:"reads_per_second"`
}

type Analysis struct {
	UseAST          bool     `toml:"use_ast"`
	PrioritizeFiles []string `toml:"prioritize_files"`
}

type Scoring struct {
	Policy string `toml:"policy"`
}

type Output struct {
	Format          string `toml:"format"`
	Path            string `toml:"path"` // empty writes to stdout
	IncludeMetadata bool   `toml:"include_metadata"`
	// MaxTokens drops the least important files until the estimate fits;
	// 0 disables the budget.
	MaxTokens int `toml:"max_tokens"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

type Observability struct {
	MetricsAddr   string `toml:"metrics_addr"`
	OTLPEndpoint  string `toml:"otlp_endpoint"`
	EnableTracing bool   `toml:"enable_tracing"`
}

// DefaultExcludes are always applied in addition to user excludes.
var DefaultExcludes = []string{
	"node_modules/**", ".git/**", "dist/**", "build/**", "automarkdown/**", "*.log",
	"package-lock.json", "yarn.lock", "pnpm-lock.yaml", "bun.lockb",
	"Pipfile.lock", "poetry.lock", "Cargo.lock", "composer.lock",
	"Gemfile.lock", "go.sum", "mix.lock",
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.bmp", "*.tiff", "*.webp", "*.svg",
	"*.mp4", "*.avi", "*.mov", "*.wmv", "*.flv", "*.webm",
	"*.mp3", "*.wav", "*.ogg", "*.flac", "*.aac",
	"*.pdf", "*.doc", "*.docx", "*.xls", "*.xlsx", "*.ppt", "*.pptx",
	"*.zip", "*.tar", "*.gz", "*.rar", "*.7z",
	"*.exe", "*.dmg", "*.app", "*.deb", "*.rpm",
	"*.ico", "*.ttf", "*.woff", "*.woff2", "*.eot",
}

func defaultConcurrency() int {
	return runtime.NumCPU()
}

func DefaultConfig() *Config {
	return &Config{
		Scan: Scan{
			Include:          []string{"**/*"},
			MaxFileSize:      defaultMaxFileSize,
			RespectGitignore: true,
			Concurrency:      defaultConcurrency(),
		},
		Analysis: Analysis{
			PrioritizeFiles: append([]string(nil), graph.DefaultPrioritizedFiles...),
		},
		Scoring: Scoring{Policy: string(graph.PolicyDefault)},
		Output: Output{
			Format:          FormatMarkdown,
			IncludeMetadata: true,
		},
		Watch: Watch{Debounce: defaultDebounce},
	}
}

// Load decodes path over DefaultConfig, so keys missing from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve picks the configuration for a run: the explicit path when given,
// otherwise FileName in projectRoot when present, otherwise the defaults.
// Environment overrides are applied last.
func Resolve(explicitPath, projectRoot string) (*Config, string, error) {
	path := strings.TrimSpace(explicitPath)
	if path == "" {
		candidate := filepath.Join(projectRoot, FileName)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}

	cfg := DefaultConfig()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, path, err
		}
		cfg = loaded
	}

	ApplyEnvOverrides(cfg)
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func applyDefaults(cfg *Config) {
	if len(cfg.Scan.Include) == 0 {
		cfg.Scan.Include = []string{"**/*"}
	}
	if cfg.Scan.MaxFileSize <= 0 {
		cfg.Scan.MaxFileSize = defaultMaxFileSize
	}
	if cfg.Scan.Concurrency <= 0 {
		cfg.Scan.Concurrency = defaultConcurrency()
	}
	if len(cfg.Analysis.PrioritizeFiles) == 0 {
		cfg.Analysis.PrioritizeFiles = append([]string(nil), graph.DefaultPrioritizedFiles...)
	}
	if strings.TrimSpace(cfg.Scoring.Policy) == "" {
		cfg.Scoring.Policy = string(graph.PolicyDefault)
	}
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	if cfg.Output.Format == "" {
		cfg.Output.Format = FormatMarkdown
	}
	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = defaultDebounce
	}
}

// Excludes returns the built-in excludes followed by the configured ones.
func (c *Config) Excludes() []string {
	out := make([]string, 0, len(DefaultExcludes)+len(c.Scan.Exclude))
	out = append(out, DefaultExcludes...)
	return append(out, c.Scan.Exclude...)
}

// Encode renders cfg as TOML.
func Encode(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDefault writes the default configuration to path. An existing file is
// left untouched unless overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	data, err := Encode(DefaultConfig())
	if err != nil {
		return err
	}
	return util.WriteFileWithDirs(path, data, 0o644)
}
