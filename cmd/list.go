package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kamusis/skillscope/internal/search"
)

var flagListKinds []string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every document in the corpus",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringSliceVar(&flagListKinds, "kind", nil, "Only list these kinds (skill, command, workflow)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := validConfig()
	if err != nil {
		return err
	}
	kinds, err := parseKinds(flagListKinds)
	if err != nil {
		return err
	}
	snap, err := loadSnapshot(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	printDocumentList(cmd.OutOrStdout(), snap, kinds)
	return nil
}

func printDocumentList(w io.Writer, snap *search.Snapshot, kinds []search.Kind) {
	want := make(map[search.Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}

	total := 0
	for _, g := range kindGroups {
		if len(want) > 0 && !want[g.kind] {
			continue
		}
		docs := snap.Kind(g.kind)
		if len(docs) == 0 {
			continue
		}
		total += len(docs)
		fmt.Fprintf(w, "\n%s (%d):\n", g.label, len(docs))

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, d := range docs {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", d.ID(), d.Category(), strings.Join(d.Keywords(), ", "))
		}
		_ = tw.Flush()
	}
	if total == 0 {
		fmt.Fprintln(w, "no documents found")
	}
}
