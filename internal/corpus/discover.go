// Package corpus reads skill documents from a directory tree and keeps a
// search.Catalog in sync with it.
package corpus

import (
	"context"
	"io/fs"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"

	"github.com/kamusis/skillscope/internal/logger"
	"github.com/kamusis/skillscope/internal/search"
)

// Patterns maps each document kind to the glob patterns (relative to the
// corpus root, slash separated, ** allowed) that select its files.
type Patterns map[search.Kind][]string

// DefaultPatterns follows the usual skills/commands/workflows layout.
func DefaultPatterns() Patterns {
	return Patterns{
		search.KindSkill:    {"skills/**/SKILL.md"},
		search.KindCommand:  {"commands/**/*.md"},
		search.KindWorkflow: {"workflows/**/*.md"},
	}
}

var kindOrder = []search.Kind{search.KindSkill, search.KindCommand, search.KindWorkflow}

// orderedKinds returns the kinds present in p: built-in kinds first, then any
// others alphabetically.
func (p Patterns) orderedKinds() []search.Kind {
	var out []search.Kind
	seen := map[search.Kind]bool{}
	for _, k := range kindOrder {
		if _, ok := p[k]; ok {
			out = append(out, k)
			seen[k] = true
		}
	}
	var rest []search.Kind
	for k := range p {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(out, rest...)
}

// Validate checks every pattern for glob syntax errors.
func (p Patterns) Validate() error {
	for kind, pats := range p {
		for _, pat := range pats {
			if !doublestar.ValidatePattern(pat) {
				return errors.Errorf("invalid %s pattern %q", kind, pat)
			}
		}
	}
	return nil
}

// Discover reads every file under root matched by patterns. Sources come back
// grouped by kind and sorted by path within a kind; a file matched by several
// patterns is returned once, under the first kind that matched it. A kind whose
// directory does not exist contributes nothing.
func Discover(ctx context.Context, root string, patterns Patterns) ([]search.Source, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot stat corpus root %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("corpus root is not a directory: %s", root)
	}
	if err := patterns.Validate(); err != nil {
		return nil, err
	}

	fsys := os.DirFS(root)
	seen := make(map[string]struct{})
	var out []search.Source
	for _, kind := range patterns.orderedKinds() {
		var matches []string
		for _, pat := range patterns[kind] {
			m, err := doublestar.Glob(fsys, pat, doublestar.WithFilesOnly())
			if err != nil {
				return nil, errors.Wrapf(err, "cannot glob %q", pat)
			}
			matches = append(matches, m...)
		}
		sort.Strings(matches)

		for _, path := range matches {
			if _, dup := seen[path]; dup {
				continue
			}
			seen[path] = struct{}{}

			content, err := fs.ReadFile(fsys, path)
			if err != nil {
				return nil, errors.Wrapf(err, "cannot read %s", path)
			}
			out = append(out, search.Source{ID: path, Kind: kind, Content: content})
		}
	}

	logger.G(ctx).WithField("root", root).WithField("sources", len(out)).Debug("corpus discovered")
	return out, nil
}
