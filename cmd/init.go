package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamusis/skillscope/internal/config"
)

var flagInitCorpus string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config and .env template",
	Long: `Create ~/.skillscope/ with skillscope.yaml and a .env template.

An existing config is never overwritten.

Example:
  skillscope init
  skillscope init --corpus ~/work/agent-skills`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&flagInitCorpus, "corpus", "", "Corpus directory to record as corpus_path")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	printSection("Init")

	cfgPath := flagConfigPath
	if cfgPath == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return err
		}
		cfgPath = p
	}

	cfg := appConfig
	if _, err := os.Stat(cfgPath); err == nil {
		printSkip("", fmt.Sprintf("config already exists: %s", cfgPath))
	} else {
		def, err := config.DefaultConfig()
		if err != nil {
			return err
		}
		if flagInitCorpus != "" {
			p, err := config.ExpandPath(flagInitCorpus)
			if err != nil {
				return err
			}
			if def.CorpusPath, err = filepath.Abs(p); err != nil {
				return err
			}
		}
		if err := config.Save(def, cfgPath); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("config written: %s", cfgPath))
		cfg = def
	}

	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}
	printOK("", ".env template ready")

	if cfg == nil {
		return nil
	}
	if _, err := os.Stat(cfg.CorpusPath); err != nil {
		printMiss("", fmt.Sprintf("corpus not found: %s (set corpus_path in %s)", cfg.CorpusPath, cfgPath))
		return nil
	}
	sources, err := discoverSources(cmd.Context(), cfg)
	if err != nil {
		printWarn("", err.Error())
		return nil
	}
	printInfo("", fmt.Sprintf("%d document(s) found in %s", len(sources), cfg.CorpusPath))
	return nil
}
