package adapter

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultInclude selects every Python file below a root.
const DefaultInclude = "**/*.py"

// skippedDirs are never descended into.
var skippedDirs = map[string]struct{}{
	".git":          {},
	"__pycache__":   {},
	".venv":         {},
	"venv":          {},
	"node_modules":  {},
	".mypy_cache":   {},
	".pytest_cache": {},
}

type includePattern struct {
	pattern string
	glob    glob.Glob
	// atRoot matches files directly under the root for "**/" patterns.
	atRoot glob.Glob
}

// PathFilter decides which files below a root are scanned. Paths are
// slash-separated and relative to the root.
type PathFilter struct {
	include []includePattern
	exclude []*regexp.Regexp
}

// NewPathFilter compiles include globs and exclude regular expressions. With
// no include pattern, DefaultInclude applies.
func NewPathFilter(include, exclude []string) (*PathFilter, error) {
	if len(include) == 0 {
		include = []string{DefaultInclude}
	}

	filter := &PathFilter{}

	for _, pattern := range include {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}

		compiled := includePattern{pattern: pattern, glob: g}

		if simplified, ok := strings.CutPrefix(pattern, "**/"); ok {
			if compiled.atRoot, err = glob.Compile(simplified, '/'); err != nil {
				return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
			}
		}

		filter.include = append(filter.include, compiled)
	}

	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		filter.exclude = append(filter.exclude, re)
	}

	return filter, nil
}

// Match reports whether the file at rel is scanned.
func (f *PathFilter) Match(rel string) bool {
	if f == nil {
		return path.Ext(rel) == ".py"
	}

	if f.excluded(rel) {
		return false
	}

	for _, p := range f.include {
		if p.glob.Match(rel) {
			return true
		}

		if p.atRoot != nil && !strings.Contains(rel, "/") && p.atRoot.Match(rel) {
			return true
		}
	}

	return false
}

// SkipDir reports whether the directory at rel is pruned from the walk.
func (f *PathFilter) SkipDir(rel string) bool {
	if _, ok := skippedDirs[path.Base(rel)]; ok {
		return true
	}

	if f == nil {
		return false
	}

	return f.excluded(rel) || f.excluded(rel+"/")
}

func (f *PathFilter) excluded(rel string) bool {
	for _, re := range f.exclude {
		if re.MatchString(rel) {
			return true
		}
	}

	return false
}
