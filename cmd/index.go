package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamusis/skillscope/internal/config"
	"github.com/kamusis/skillscope/internal/search/index"
)

var flagIndexForce bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Parse the corpus and persist it as an index",
	Long: `Build the persisted index used by 'skillscope search --from-index'.

The index is written to a temporary directory and then swapped into
index_dir, so concurrent readers never see a half-written index.
An index whose corpus hash still matches is left alone unless --force is set.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&flagIndexForce, "force", false, "Rebuild even if the index is up to date")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	cfg, err := validConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	sources, err := discoverSources(ctx, cfg)
	if err != nil {
		return err
	}
	if !flagIndexForce {
		if idx, err := index.Load(ctx, cfg.IndexDir); err == nil && !idx.Stale(sources) {
			printSkip("", fmt.Sprintf("index is up to date: %s", cfg.IndexDir))
			return nil
		}
	}

	scopeDir, err := config.ScopeDir()
	if err != nil {
		return err
	}
	tmpBase := filepath.Join(scopeDir, "tmp")
	if err := os.MkdirAll(tmpBase, 0o755); err != nil {
		return fmt.Errorf("cannot create temp dir %s: %w", tmpBase, err)
	}
	tmpDir, err := os.MkdirTemp(tmpBase, "index-*")
	if err != nil {
		return fmt.Errorf("cannot create temp index dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	// Build one level down so the build lock file is cleaned up with tmpDir.
	outDir := filepath.Join(tmpDir, "index")
	idx, warns, err := index.Build(ctx, sources, outDir)
	reportWarnings(warns)
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	if err := index.Install(ctx, outDir, cfg.IndexDir); err != nil {
		return fmt.Errorf("cannot install index: %w", err)
	}
	printOK("", fmt.Sprintf("indexed %d document(s): %s", idx.Manifest.DocumentCount, cfg.IndexDir))
	return nil
}
