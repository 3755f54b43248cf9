package app

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/harshpreet931/autoMarkdown/internal/shared/util"
)

// pattern is one include/exclude glob. Patterns without a slash match the
// basename; "**/" prefixes also match at the root.
type pattern struct {
	raw      string
	basename bool
	globs    []glob.Glob
	// dirPrefix is set for "name/**" patterns and prunes any directory
	// called name.
	dirPrefix glob.Glob
}

func compilePattern(raw string) (*pattern, error) {
	raw = util.NormalizePatternPath(raw)
	p := &pattern{raw: raw, basename: !strings.Contains(raw, "/")}

	variants := []string{raw}
	if trimmed := strings.TrimPrefix(raw, "**/"); trimmed != raw {
		variants = append(variants, trimmed)
	}
	if collapsed := strings.ReplaceAll(raw, "/**/", "/"); collapsed != raw {
		variants = append(variants, collapsed)
	}
	for _, v := range variants {
		g, err := glob.Compile(v, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", raw, err)
		}
		p.globs = append(p.globs, g)
	}

	if prefix, ok := strings.CutSuffix(raw, "/**"); ok && prefix != "" && !strings.Contains(prefix, "/") {
		g, err := glob.Compile(prefix, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", raw, err)
		}
		p.dirPrefix = g
	}
	return p, nil
}

// match tests a slash-separated project-relative path.
func (p *pattern) match(rel string, isDir bool) bool {
	if p.basename {
		base := path.Base(rel)
		for _, g := range p.globs {
			if g.Match(base) {
				return true
			}
		}
		return false
	}
	for _, g := range p.globs {
		if g.Match(rel) || (isDir && g.Match(rel+"/")) {
			return true
		}
	}
	return isDir && p.dirPrefix != nil && p.dirPrefix.Match(path.Base(rel))
}

// Matcher decides which project entries are discovered. It combines the
// include and exclude globs, the root .gitignore and the hidden-file rule.
type Matcher struct {
	includes      []*pattern
	excludes      []*pattern
	ignore        *gitignore.GitIgnore
	includeHidden bool
}

// NewMatcher compiles the patterns. When respectGitignore is set and
// root/.gitignore exists, its rules apply as additional excludes.
func NewMatcher(root string, includes, excludes []string, includeHidden, respectGitignore bool) (*Matcher, error) {
	m := &Matcher{includeHidden: includeHidden}

	for _, raw := range includes {
		p, err := compilePattern(raw)
		if err != nil {
			return nil, err
		}
		m.includes = append(m.includes, p)
	}
	for _, raw := range excludes {
		p, err := compilePattern(raw)
		if err != nil {
			return nil, err
		}
		m.excludes = append(m.excludes, p)
	}

	if respectGitignore {
		gi, err := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
		switch {
		case err == nil:
			m.ignore = gi
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read .gitignore: %w", err)
		}
	}
	return m, nil
}

func isHiddenName(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".")
}

// skipReason reports why rel is excluded from the project, or "" when it is
// kept. Directories are only checked against exclusions; includes apply to
// files.
func (m *Matcher) skipReason(rel string, isDir bool) string {
	if !m.includeHidden && isHiddenName(path.Base(rel)) {
		return "hidden"
	}
	for _, p := range m.excludes {
		if p.match(rel, isDir) {
			return "excluded"
		}
	}
	if m.ignore != nil {
		if m.ignore.MatchesPath(rel) || (isDir && m.ignore.MatchesPath(rel+"/")) {
			return "gitignore"
		}
	}
	return ""
}

// Visible reports whether rel shows up in the project structure.
func (m *Matcher) Visible(rel string, isDir bool) bool {
	return m.skipReason(rel, isDir) == ""
}

// Included reports whether the file at rel is part of the converted set,
// ignoring size and content checks.
func (m *Matcher) Included(rel string) bool {
	if !m.Visible(rel, false) {
		return false
	}
	for _, p := range m.includes {
		if p.match(rel, false) {
			return true
		}
	}
	return false
}
