package parser

import (
	"path"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language tags with dedicated analysis strategies.
const (
	LangTypeScript = "typescript"
	LangTSX        = "tsx"
	LangJavaScript = "javascript"
	LangJSX        = "jsx"
	LangPython     = "python"
	LangText       = "text"
)

var extensionLanguages = map[string]string{
	".js":         LangJavaScript,
	".mjs":        LangJavaScript,
	".cjs":        LangJavaScript,
	".jsx":        LangJSX,
	".ts":         LangTypeScript,
	".mts":        LangTypeScript,
	".cts":        LangTypeScript,
	".tsx":        LangTSX,
	".py":         LangPython,
	".java":       "java",
	".c":          "c",
	".h":          "c",
	".cpp":        "cpp",
	".cc":         "cpp",
	".cxx":        "cpp",
	".hpp":        "cpp",
	".cs":         "csharp",
	".php":        "php",
	".rb":         "ruby",
	".go":         "go",
	".rs":         "rust",
	".swift":      "swift",
	".kt":         "kotlin",
	".scala":      "scala",
	".sh":         "bash",
	".bash":       "bash",
	".zsh":        "zsh",
	".fish":       "fish",
	".ps1":        "powershell",
	".sql":        "sql",
	".html":       "html",
	".css":        "css",
	".scss":       "scss",
	".sass":       "sass",
	".less":       "less",
	".xml":        "xml",
	".json":       "json",
	".yaml":       "yaml",
	".yml":        "yaml",
	".toml":       "toml",
	".ini":        "ini",
	".cfg":        "ini",
	".conf":       "ini",
	".md":         "markdown",
	".markdown":   "markdown",
	".txt":        LangText,
	".dockerfile": "dockerfile",
	".vue":        "vue",
	".svelte":     "svelte",
}

// DetectLanguage maps a path to a language tag. The extension table wins;
// enry's filename and extension tables fill the gaps; everything else is text.
func DetectLanguage(filePath string) string {
	ext := strings.ToLower(path.Ext(filePath))
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	base := path.Base(filePath)
	if lang, safe := enry.GetLanguageByFilename(base); safe && lang != "" {
		return strings.ToLower(lang)
	}
	if lang, safe := enry.GetLanguageByExtension(base); safe && lang != "" {
		return strings.ToLower(lang)
	}
	return LangText
}
