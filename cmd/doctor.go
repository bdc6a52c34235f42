package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamusis/skillscope/internal/config"
	"github.com/kamusis/skillscope/internal/search"
	"github.com/kamusis/skillscope/internal/search/index"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check config, corpus and index health",
	Long: `Check that skillscope's config, corpus and index are usable.
Every document that fails to parse is listed with the reason.
Run this command when a skill never gets selected.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}
	ctx := cmd.Context()
	cfg := appConfig

	printSection("skillscope doctor")
	fmt.Println()

	// ── Check 1: config ───────────────────────────────────────────────────────
	fmt.Println("[ config ]")
	cfgPath := flagConfigPath
	if cfgPath == "" {
		cfgPath, _ = config.ConfigPath()
	}
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		printWarn("", fmt.Sprintf("%s not found; using defaults (run 'skillscope init')", cfgPath))
	} else {
		printOK("", fmt.Sprintf("config loaded: %s", cfgPath))
	}
	errs := cfg.Validate()
	for _, e := range errs {
		failD("[%s] %s", e.Field, e.Message)
	}
	fmt.Println()

	// ── Check 2: corpus ───────────────────────────────────────────────────────
	fmt.Println("[ corpus ]")
	var sources []search.Source
	if len(errs) > 0 {
		printWarn("", "skipped (config invalid)")
	} else if s, err := discoverSources(ctx, cfg); err != nil {
		failD("%v", err)
	} else {
		sources = s
		printOK("", fmt.Sprintf("%d file(s) matched in %s", len(sources), cfg.CorpusPath))
	}
	fmt.Println()

	// ── Check 3: documents ────────────────────────────────────────────────────
	fmt.Println("[ documents ]")
	if sources == nil {
		printWarn("", "skipped (corpus not loaded)")
	} else {
		snap, warns := search.Load(ctx, sources)
		for _, w := range warns {
			printWarn("", w.Error())
		}
		for _, g := range kindGroups {
			if n := len(snap.Kind(g.kind)); n > 0 {
				printOK("", fmt.Sprintf("%d %s", n, g.label))
			}
		}
		if snap.Len() == 0 {
			failD("no valid documents; every search will come back empty")
		}
		if len(warns) > 0 {
			fmt.Printf("\n  ⚠  %d document(s) skipped. Fix their frontmatter headers.\n", len(warns))
			allOK = false
		}
		for _, id := range cfg.Fallback {
			if _, err := snap.Get(id); err != nil {
				failD("fallback %v", err)
			}
		}
	}
	fmt.Println()

	// ── Check 4: index ────────────────────────────────────────────────────────
	fmt.Println("[ index ]")
	if len(errs) > 0 {
		printWarn("", "skipped (config invalid)")
	} else if _, err := os.Stat(cfg.IndexDir); os.IsNotExist(err) {
		printSkip("", fmt.Sprintf("no index at %s (optional; run 'skillscope index')", cfg.IndexDir))
	} else if idx, err := index.Load(ctx, cfg.IndexDir); err != nil {
		failD("cannot load index: %v", err)
	} else if sources != nil && idx.Stale(sources) {
		printWarn("", "index is stale; run 'skillscope index'")
	} else {
		printOK("", fmt.Sprintf("%d document(s) indexed at %s", idx.Manifest.DocumentCount, idx.Manifest.CreatedAt))
	}
	fmt.Println()

	// ── Summary ───────────────────────────────────────────────────────────────
	fmt.Println("===================")
	if allOK {
		fmt.Println("✓  All checks passed.")
		return nil
	}
	fmt.Fprintln(os.Stderr, "✗  One or more checks failed. See details above.")
	return fmt.Errorf("doctor found issues")
}
