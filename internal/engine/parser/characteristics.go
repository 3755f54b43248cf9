package parser

import (
	"path"
	"strings"

	"github.com/harshpreet931/autoMarkdown/internal/shared/util"
)

type frameworkMarker struct {
	name     string
	variants []string
}

// Order is the reporting order of Frameworks.
var frameworkMarkers = []frameworkMarker{
	{"react", []string{"react", "React", "jsx"}},
	{"vue", []string{"vue", "Vue"}},
	{"angular", []string{"angular", "Angular", "@angular"}},
	{"svelte", []string{"svelte", "Svelte"}},
	{"express", []string{"express", "Express"}},
	{"fastify", []string{"fastify", "Fastify"}},
	{"koa", []string{"koa", "Koa"}},
	{"nestjs", []string{"nestjs", "@nestjs"}},
	{"jest", []string{"jest", "Jest"}},
	{"mocha", []string{"mocha", "Mocha"}},
	{"cypress", []string{"cypress", "Cypress"}},
	{"webpack", []string{"webpack", "Webpack"}},
	{"vite", []string{"vite", "Vite"}},
	{"mongoose", []string{"mongoose", "Mongoose"}},
	{"prisma", []string{"prisma", "Prisma"}},
	{"typeorm", []string{"typeorm", "TypeORM"}},
}

var entryPointNames = map[string]bool{
	"main.js": true, "main.ts": true,
	"index.js": true, "index.ts": true,
	"app.js": true, "app.ts": true,
	"server.js": true, "server.ts": true,
}

var entryPointMarkers = []string{
	"function main(",
	"const main =",
	"app.listen(",
	"server.listen(",
	`if __name__ == "__main__"`,
}

var testDirs = map[string]bool{"test": true, "tests": true, "__tests__": true}

// testCallMarkers match as plain substrings, so emit( and split( count too.
var testCallMarkers = []string{"describe(", "it(", "test(", "expect(", "assert(", "beforeEach(", "afterEach("}

var configNamePatterns = compileAll(
	`\.(config|rc)\.(js|ts|json|yml|yaml)$`,
	`^(webpack|babel|eslint|prettier|jest|tsconfig|vite|rollup|tailwind)\.config\.`,
	`^\..*rc(\.|$)`,
	`^(package|composer|cargo|requirements)\.json$`,
	`^requirements\.txt$`,
	`^dockerfile$`,
	`^docker-compose\.`,
	`^\.env`,
)

var configToolNames = []string{"webpack", "babel", "eslint", "prettier", "jest", "tsconfig", "vite", "rollup"}

// DetectCharacteristics fills the language-independent flags of m. It runs
// before any strategy and its results survive strategy fallback.
func DetectCharacteristics(filePath string, content []byte, m *StructuralMetrics) {
	text := string(content)
	m.Frameworks = DetectFrameworks(text)
	m.IsEntryPoint = IsEntryPoint(filePath, text)
	m.IsTestFile = IsTestFile(filePath, text)
	m.IsConfigFile = IsConfigFile(filePath)
}

// DetectFrameworks reports every framework whose marker substring occurs in
// content. Substring matching over-reports; "vite" also matches "invite".
func DetectFrameworks(content string) []string {
	var out []string
	for _, fw := range frameworkMarkers {
		for _, v := range fw.variants {
			if strings.Contains(content, v) {
				out = append(out, fw.name)
				break
			}
		}
	}
	return out
}

func IsEntryPoint(filePath, content string) bool {
	if entryPointNames[strings.ToLower(path.Base(filePath))] {
		return true
	}
	for _, marker := range entryPointMarkers {
		if strings.Contains(content, marker) {
			return true
		}
	}
	return false
}

func IsTestFile(filePath, content string) bool {
	base := strings.ToLower(path.Base(filePath))
	if strings.Contains(base, "test") || strings.Contains(base, "spec") {
		return true
	}
	for _, segment := range util.PathSegments(path.Dir(filePath)) {
		if testDirs[segment] {
			return true
		}
	}
	for _, marker := range testCallMarkers {
		if strings.Contains(content, marker) {
			return true
		}
	}
	return false
}

func IsConfigFile(filePath string) bool {
	base := strings.ToLower(path.Base(filePath))
	for _, re := range configNamePatterns {
		if re.MatchString(base) {
			return true
		}
	}
	for _, tool := range configToolNames {
		if strings.Contains(base, tool) {
			return true
		}
	}
	return false
}
