package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/kamusis/skillscope/internal/config"
	"github.com/kamusis/skillscope/internal/corpus"
	"github.com/kamusis/skillscope/internal/search"
)

// discoverSources walks the configured corpus.
func discoverSources(ctx context.Context, cfg *config.Config) ([]search.Source, error) {
	sources, err := corpus.Discover(ctx, cfg.CorpusPath, corpus.Patterns(cfg.KindPatterns()))
	if err != nil {
		return nil, fmt.Errorf("cannot read corpus: %w", err)
	}
	return sources, nil
}

// loadSnapshot discovers and parses the corpus. Invalid documents are
// skipped and summarized; details go to the log.
func loadSnapshot(ctx context.Context, cfg *config.Config) (*search.Snapshot, error) {
	sources, err := discoverSources(ctx, cfg)
	if err != nil {
		return nil, err
	}
	snap, warns := search.Load(ctx, sources)
	reportWarnings(warns)
	return snap, nil
}

func reportWarnings(warns []*search.ParseError) {
	if len(warns) == 0 {
		return
	}
	printWarn("", fmt.Sprintf("skipped %d invalid document(s); see log for details", len(warns)))
}

// parseKinds converts --kind values. An empty list means every kind.
func parseKinds(values []string) ([]search.Kind, error) {
	var kinds []search.Kind
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			k, ok := search.ParseKind(part)
			if !ok {
				return nil, fmt.Errorf("unknown kind %q (want skill, command or workflow)", part)
			}
			kinds = append(kinds, k)
		}
	}
	return kinds, nil
}

// kindGroups is the display order of result groups.
var kindGroups = []struct {
	kind  search.Kind
	label string
}{
	{search.KindSkill, "skills"},
	{search.KindWorkflow, "workflows"},
	{search.KindCommand, "commands"},
}
