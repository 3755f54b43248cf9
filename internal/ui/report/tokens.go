package report

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// LLMInfo is one model's context window.
type LLMInfo struct {
	Name      string `json:"name"`
	MaxTokens int    `json:"maxTokens"`
	Provider  string `json:"provider"`
}

var llmLimits = []LLMInfo{
	{"GPT-5", 400000, "OpenAI"},
	{"Gemini 2.5 Pro", 1000000, "Google"},
	{"Claude Opus 4.1", 200000, "Anthropic"},
	{"Claude Sonnet 4", 200000, "Anthropic"},
	{"Grok-4", 200000, "xAI"},
	{"Llama 3.1", 128000, "Meta"},
	{"Mistral Large 2", 128000, "Mistral"},
	{"Command R+", 128000, "Cohere"},
	{"Phi-3 Medium", 128000, "Microsoft"},
	{"GPT-4o", 128000, "OpenAI"},
	{"Claude Haiku", 200000, "Anthropic"},
}

// LLMLimits returns a copy of the known context windows.
func LLMLimits() []LLMInfo {
	return append([]LLMInfo(nil), llmLimits...)
}

type TokenAnalysis struct {
	EstimatedTokens int       `json:"estimatedTokens"`
	Compatible      []LLMInfo `json:"compatibleLLMs"`
	Incompatible    []LLMInfo `json:"incompatibleLLMs"`
	Recommendations []string  `json:"recommendations"`
}

var whitespaceRe = regexp.MustCompile(`\s+`)

const (
	charsPerToken      = 3.5
	markdownMultiplier = 1.1
)

// EstimateTokens approximates a token count: whitespace runs collapse to one
// space, then one token per 3.5 characters, plus 10% when the text contains
// code fences. This is not a tokenizer.
func EstimateTokens(text string) int {
	normalized := strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	base := math.Ceil(float64(len([]rune(normalized))) / charsPerToken)
	if strings.Contains(text, "```") {
		base *= markdownMultiplier
	}
	return int(math.Ceil(base))
}

// AnalyzeTokenUsage sorts the known models into those whose window fits the
// estimate and those it exceeds, largest window first.
func AnalyzeTokenUsage(text string) TokenAnalysis {
	tokens := EstimateTokens(text)

	var compatible, incompatible []LLMInfo
	for _, llm := range llmLimits {
		if tokens <= llm.MaxTokens {
			compatible = append(compatible, llm)
		} else {
			incompatible = append(incompatible, llm)
		}
	}
	byWindow := func(list []LLMInfo) {
		sort.SliceStable(list, func(i, j int) bool { return list[i].MaxTokens > list[j].MaxTokens })
	}
	byWindow(compatible)
	byWindow(incompatible)

	return TokenAnalysis{
		EstimatedTokens: tokens,
		Compatible:      compatible,
		Incompatible:    incompatible,
		Recommendations: recommendations(tokens, compatible, incompatible),
	}
}

func recommendations(tokens int, compatible, incompatible []LLMInfo) []string {
	var out []string

	switch {
	case len(compatible) == 0:
		out = append(out,
			"Output too large for all popular LLMs. Consider using filters to reduce size.",
			"Try: --exclude '**/*.test.*,**/*.spec.*,coverage/**'",
			"Or set a smaller file size limit: --max-size 51200 (50KB)",
			"Or cap the output: --max-tokens 128000",
		)
	case len(compatible) <= 3:
		out = append(out, "Limited LLM compatibility. Consider reducing output size for broader support.")
		if len(incompatible) > 0 {
			smallest := incompatible[len(incompatible)-1]
			reduction := int(math.Ceil(float64(tokens-smallest.MaxTokens) / float64(tokens) * 100))
			out = append(out, fmt.Sprintf("Reduce by ~%d%% to support %s", reduction, smallest.Name))
		}
	default:
		out = append(out, "Good compatibility with most popular LLMs.")
		if tokens > 50000 {
			out = append(out, "For faster processing, consider splitting into smaller chunks")
		}
	}

	switch {
	case tokens > 500000:
		out = append(out, "Ultra-large codebase: consider using project filtering")
	case tokens > 200000:
		out = append(out, "Large codebase: suited to long-context LLMs")
	case tokens > 50000:
		out = append(out, "Medium codebase: fits most LLMs comfortably")
	default:
		out = append(out, "Small codebase: fits every listed LLM")
	}
	return out
}

// FormatTokenAnalysis renders the analysis for a terminal.
func FormatTokenAnalysis(a TokenAnalysis) string {
	var b strings.Builder
	b.WriteString("Token Analysis:\n")
	b.WriteString(fmt.Sprintf("   Estimated tokens: %s\n\n", humanize.Comma(int64(a.EstimatedTokens))))

	if n := len(a.Compatible); n > 0 {
		b.WriteString(fmt.Sprintf("Compatible LLMs (%d):\n", n))
		for _, llm := range a.Compatible[:min(n, 5)] {
			pct := int(math.Round(float64(a.EstimatedTokens) / float64(llm.MaxTokens) * 100))
			b.WriteString(fmt.Sprintf("   • %s (%s) - %d%% of limit\n", llm.Name, llm.Provider, pct))
		}
		if n > 5 {
			b.WriteString(fmt.Sprintf("   • ...and %d more\n", n-5))
		}
		b.WriteString("\n")
	}

	if n := len(a.Incompatible); n > 0 {
		b.WriteString(fmt.Sprintf("Too large for (%d):\n", n))
		for _, llm := range a.Incompatible[:min(n, 3)] {
			overflow := int64(a.EstimatedTokens - llm.MaxTokens)
			b.WriteString(fmt.Sprintf("   • %s (%s) - exceeds by %s tokens\n", llm.Name, llm.Provider, humanize.Comma(overflow)))
		}
		if n > 3 {
			b.WriteString(fmt.Sprintf("   • ...and %d more\n", n-3))
		}
		b.WriteString("\n")
	}

	if len(a.Recommendations) > 0 {
		b.WriteString("Recommendations:\n")
		for _, rec := range a.Recommendations {
			b.WriteString("   " + rec + "\n")
		}
	}
	return b.String()
}
