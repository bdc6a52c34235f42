package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/kamusis/skillscope/internal/config"
)

// Set via -ldflags at release time.
var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

var flagVersionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show skillscope version and build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&flagVersionShort, "short", false, "Print only the version number")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if flagVersionShort {
		fmt.Fprintln(out, version)
		return nil
	}
	cfgPath := flagConfigPath
	if cfgPath == "" {
		cfgPath, _ = config.ConfigPath()
	}
	fmt.Fprintf(out, "skillscope %s\n", version)
	fmt.Fprintf(out, "  Commit:     %s\n", orNA(commit))
	fmt.Fprintf(out, "  Built:      %s\n", orNA(buildDate))
	fmt.Fprintf(out, "  Go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "  Config:     %s\n", orNA(cfgPath))
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
