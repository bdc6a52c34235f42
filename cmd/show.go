package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kamusis/skillscope/internal/search"
)

var flagShowBodyOnly bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the metadata and body of one document",
	Long: `Display a document's header fields followed by its body.

Use --body to print only the body, e.g. to pipe it into an agent prompt.

Example:
  skillscope show sec-1
  skillscope show --body deploy-checklist`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&flagShowBodyOnly, "body", false, "Print only the document body")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := validConfig()
	if err != nil {
		return err
	}
	snap, err := loadSnapshot(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	materials, err := search.Materialize(snap, args)
	if err != nil {
		if errors.Is(err, search.ErrNotFound) {
			return fmt.Errorf("%w\nRun 'skillscope list' to see available ids.", err)
		}
		return err
	}
	out := cmd.OutOrStdout()
	if flagShowBodyOnly {
		fmt.Fprintln(out, strings.TrimSpace(materials[0].Body))
		return nil
	}
	d, _ := snap.Get(args[0])
	printDocument(out, d)
	return nil
}

func printDocument(w io.Writer, d *search.Document) {
	fmt.Fprintf(w, "\n=== %s ===\n\n", d.Name())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  ID:\t%s\n", d.ID())
	fmt.Fprintf(tw, "  Kind:\t%s\n", d.Kind())
	fmt.Fprintf(tw, "  Category:\t%s\n", d.Category())
	fmt.Fprintf(tw, "  Keywords:\t%s\n", strings.Join(d.Keywords(), ", "))
	if pp := d.PainPoints(); len(pp) > 0 {
		refs := make([]string, len(pp))
		for i, p := range pp {
			refs[i] = "#" + strconv.Itoa(p)
		}
		fmt.Fprintf(tw, "  Pain points:\t%s\n", strings.Join(refs, " "))
	}
	if d.Source() != "" {
		fmt.Fprintf(tw, "  Source:\t%s\n", d.Source())
	}
	if d.Description() != "" {
		fmt.Fprintf(tw, "  Description:\t%s\n", d.Description())
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\n%s\n", strings.TrimSpace(d.Body()))
}
