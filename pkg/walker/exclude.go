package walker

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Excluder matches root-relative paths against exclusion glob patterns.
// Patterns support:
//   - Name patterns: *.tmp, Thumbs.db (matched against the entry name at
//     any depth)
//   - Path patterns: build/*, sub/**/*.bak (matched against the whole
//     root-relative path)
//   - Directory patterns: .git/, node_modules/ (prune the subtree at any
//     depth)
//
// A matched directory is neither renamed nor descended into.
type Excluder struct {
	namePatterns []string
	pathPatterns []string
	dirPatterns  []string
}

// NewExcluder compiles the exclusion pattern list
func NewExcluder(patterns []string) *Excluder {
	e := &Excluder{}
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		p := filepath.ToSlash(pattern)
		switch {
		case strings.HasSuffix(p, "/"):
			e.dirPatterns = append(e.dirPatterns, strings.TrimSuffix(p, "/"))
		case strings.Contains(p, "/"):
			e.pathPatterns = append(e.pathPatterns, p)
		default:
			e.namePatterns = append(e.namePatterns, p)
		}
	}
	return e
}

// Match reports whether the root-relative path is excluded
func (e *Excluder) Match(relativePath string) bool {
	if e == nil {
		return false
	}

	rel := filepath.ToSlash(relativePath)
	base := path.Base(rel)

	for _, pattern := range e.namePatterns {
		if matched, _ := doublestar.Match(pattern, base); matched {
			return true
		}
	}

	for _, pattern := range e.pathPatterns {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}

	for _, dir := range e.dirPatterns {
		// The directory itself, at any depth
		if matched, _ := doublestar.Match("**/"+dir, rel); matched {
			return true
		}
		// Anything below it
		if matched, _ := doublestar.Match("**/"+dir+"/**", rel); matched {
			return true
		}
	}

	return false
}
