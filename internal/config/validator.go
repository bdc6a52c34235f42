package config

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/kamusis/skillscope/internal/search"
)

// ValidationError names one invalid config field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate reports every invalid field; an empty result means the config is usable.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if c.CorpusPath == "" {
		errs = append(errs, ValidationError{Field: "corpus_path", Message: "corpus path is required"})
	}
	if c.MinScore < 0 || c.MinScore > 1+search.CategoryBonus {
		errs = append(errs, ValidationError{
			Field:   "min_score",
			Message: fmt.Sprintf("min_score must be between 0 and %.2f", 1+search.CategoryBonus),
		})
	}
	if c.MaxResults == 0 {
		errs = append(errs, ValidationError{Field: "max_results", Message: "max_results must be positive, or -1 for no cap"})
	}
	if len(c.Patterns) == 0 {
		errs = append(errs, ValidationError{Field: "patterns", Message: "at least one kind pattern is required"})
	}
	for kind, pats := range c.Patterns {
		field := "patterns." + kind
		if _, ok := search.ParseKind(kind); !ok {
			errs = append(errs, ValidationError{Field: field, Message: "unknown document kind"})
			continue
		}
		for _, p := range pats {
			if !doublestar.ValidatePattern(p) {
				errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("invalid glob %q", p)})
			}
		}
	}
	switch c.LogFormat {
	case "", "text", "fmt", "json":
	default:
		errs = append(errs, ValidationError{Field: "log_format", Message: "log_format must be text or json"})
	}
	return errs
}

// KindPatterns converts Patterns to kind-keyed globs. Unknown kinds are
// dropped; Validate reports them.
func (c *Config) KindPatterns() map[search.Kind][]string {
	out := make(map[search.Kind][]string, len(c.Patterns))
	for k, pats := range c.Patterns {
		kind, ok := search.ParseKind(k)
		if !ok {
			continue
		}
		out[kind] = append(out[kind], pats...)
	}
	return out
}
