package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamusis/skillscope/internal/corpus"
	"github.com/kamusis/skillscope/internal/search"
)

var (
	flagWatchQuery    string
	flagWatchKinds    []string
	flagWatchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the corpus on change and re-run a query",
	Long: `Watch the corpus directory and reload it whenever a document changes.

With --query, the selection is recomputed against every new snapshot.
Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&flagWatchQuery, "query", "q", "", "Task description to re-rank after each reload")
	watchCmd.Flags().StringSliceVar(&flagWatchKinds, "kind", nil, "Only match these kinds (skill, command, workflow)")
	watchCmd.Flags().DurationVar(&flagWatchDebounce, "debounce", corpus.DefaultDebounce, "Quiet period before reloading")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := validConfig()
	if err != nil {
		return err
	}
	kinds, err := parseKinds(flagWatchKinds)
	if err != nil {
		return err
	}
	opts := search.RankOptions{MinScore: cfg.MinScore, MaxResults: cfg.MaxResults}
	query := strings.TrimSpace(flagWatchQuery)
	out := cmd.OutOrStdout()

	onReload := func(_ context.Context, snap *search.Snapshot, warns []*search.ParseError) {
		reportWarnings(warns)
		printInfo("", fmt.Sprintf("corpus loaded: %d document(s)", snap.Len()))
		if query == "" {
			return
		}
		results := search.Select(snap, search.NewQuery(query, kinds...), opts)
		if len(results) == 0 {
			fmt.Fprintln(out, "no matching skill")
			return
		}
		printSearchResults(out, snap, query, results)
	}

	catalog := search.NewCatalog(nil)
	w := corpus.NewWatcher(cfg.CorpusPath, corpus.Patterns(cfg.KindPatterns()), catalog,
		corpus.WithDebounce(flagWatchDebounce),
		corpus.WithOnReload(onReload),
	)
	ctx := cmd.Context()
	if err := w.Reload(ctx); err != nil {
		return fmt.Errorf("cannot read corpus: %w", err)
	}
	return w.Run(ctx)
}
