package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kamusis/skillscope/internal/config"
	"github.com/kamusis/skillscope/internal/logger"
	"github.com/kamusis/skillscope/internal/search"
	"github.com/kamusis/skillscope/internal/search/index"
)

var (
	flagSearchKinds     []string
	flagSearchShow      bool
	flagSearchFromIndex bool
)

var searchCmd = &cobra.Command{
	Use:   "search <task description>",
	Short: "Rank skills against a task description",
	Long: `Score every document in the corpus against the task description and
print the best matches, best first.

A keyword counts when all of its words appear consecutively in the task.
Mentioning a document's category adds a fixed bonus.

Examples:
  skillscope search "prevent sql injection in the login form"
  skillscope search --kind command --k 3 review this pull request
  skillscope search --show fix flaky deploy pipeline`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("k", 5, "Maximum number of results (-1 for no cap; default from config)")
	searchCmd.Flags().Float64("min-score", 0, "Minimum score to include (inclusive; default from config)")
	searchCmd.Flags().StringSliceVar(&flagSearchKinds, "kind", nil, "Only match these kinds (skill, command, workflow)")
	searchCmd.Flags().BoolVar(&flagSearchShow, "show", false, "Print the bodies of the selected documents")
	searchCmd.Flags().BoolVar(&flagSearchFromIndex, "from-index", false, "Search the persisted index instead of parsing the corpus")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := validConfig()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cmd.Help()
	}
	query := strings.Join(args, " ")

	kinds, err := parseKinds(flagSearchKinds)
	if err != nil {
		return err
	}
	opts := rankOptions(cmd, cfg)

	ctx := cmd.Context()
	var snap *search.Snapshot
	if flagSearchFromIndex {
		snap, err = indexSnapshot(ctx, cfg)
	} else {
		snap, err = loadSnapshot(ctx, cfg)
	}
	if err != nil {
		return err
	}

	results := search.Select(snap, search.NewQuery(query, kinds...), opts)
	logger.G(ctx).WithField("query", query).WithField("results", len(results)).Debug("search complete")

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		if opts.MaxResults == 0 {
			fmt.Fprintln(out, "no matching skill")
			return nil
		}
		return printNoMatch(out, snap, cfg.Fallback, flagSearchShow)
	}

	printSearchResults(out, snap, query, results)
	if flagSearchShow {
		materials, err := search.Materialize(snap, search.IDs(results))
		if err != nil {
			return err
		}
		printMaterials(out, materials)
	}
	return nil
}

// rankOptions starts from the config and applies --k / --min-score when set.
func rankOptions(cmd *cobra.Command, cfg *config.Config) search.RankOptions {
	opts := search.RankOptions{MinScore: cfg.MinScore, MaxResults: cfg.MaxResults}
	if cmd.Flags().Changed("k") {
		opts.MaxResults, _ = cmd.Flags().GetInt("k")
		if opts.MaxResults < 0 {
			opts.MaxResults = search.Unbounded
		}
	}
	if cmd.Flags().Changed("min-score") {
		opts.MinScore, _ = cmd.Flags().GetFloat64("min-score")
	}
	return opts
}

// indexSnapshot loads the persisted index and warns when the corpus moved on.
func indexSnapshot(ctx context.Context, cfg *config.Config) (*search.Snapshot, error) {
	idx, err := index.Load(ctx, cfg.IndexDir)
	if err != nil {
		return nil, fmt.Errorf("cannot load index %s: %w\nRun 'skillscope index' first.", cfg.IndexDir, err)
	}
	if sources, err := discoverSources(ctx, cfg); err != nil {
		logger.G(ctx).WithError(err).Debug("skipping index staleness check")
	} else if idx.Stale(sources) {
		printWarn("", "index is stale; run 'skillscope index' to refresh it")
	}
	return idx.Snapshot()
}

// printNoMatch resolves the configured fallback documents, if any.
func printNoMatch(w io.Writer, snap *search.Snapshot, fallback []string, show bool) error {
	if len(fallback) == 0 {
		fmt.Fprintln(w, "no matching skill")
		return nil
	}
	materials, err := search.Materialize(snap, fallback)
	if err != nil {
		return fmt.Errorf("cannot resolve fallback: %w", err)
	}
	fmt.Fprintf(w, "no matching skill; falling back to %s\n", strings.Join(fallback, ", "))
	if show {
		printMaterials(w, materials)
	}
	return nil
}

func printSearchResults(w io.Writer, snap *search.Snapshot, query string, results []search.MatchResult) {
	fmt.Fprintf(w, "\nskillscope search %q\n\n", query)
	fmt.Fprintf(w, "Results (%d found):\n", len(results))

	type ranked struct {
		rank int
		res  search.MatchResult
		doc  *search.Document
	}
	grouped := make(map[search.Kind][]ranked)
	for i, r := range results {
		d, err := snap.Get(r.DocumentID)
		if err != nil {
			continue
		}
		grouped[d.Kind()] = append(grouped[d.Kind()], ranked{rank: i + 1, res: r, doc: d})
	}

	for _, g := range kindGroups {
		items := grouped[g.kind]
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s (%d):\n", g.label, len(items))

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, it := range items {
			fmt.Fprintf(tw, "  %d.\t[%.3f]\t%s\t%s\n", it.rank, it.res.Score, it.doc.ID(), strings.Join(it.res.MatchedKeywords, ", "))
			if desc := strings.TrimSpace(it.doc.Description()); desc != "" {
				fmt.Fprintf(tw, "  - %s\n", desc)
			}
		}
		_ = tw.Flush()
	}
}

func printMaterials(w io.Writer, materials []search.Material) {
	for _, m := range materials {
		fmt.Fprintf(w, "\n=== %s (%s) ===\n\n", m.ID, m.Kind)
		fmt.Fprintln(w, strings.TrimSpace(m.Body))
	}
}
