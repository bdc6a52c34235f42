package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// ── Unified output helpers ────────────────────────────────────────────────────
// All commands use these functions to ensure consistent icon usage and
// indentation throughout skillscope's CLI output. Command results that tests
// capture are written to cmd.OutOrStdout() instead.
//
// Icon semantics:
//   ✓  success / healthy
//   ✗  error / failure          (written to stderr)
//   ⚠  warning
//   ○  skipped / not applicable
//   -  not found / missing
//   ~  neutral info / state change
//
// Icons are colored when the output is a terminal (color.NoColor otherwise).

var (
	iconOK   = color.New(color.FgGreen, color.Bold).Sprint("✓")
	iconErr  = color.New(color.FgRed, color.Bold).Sprint("✗")
	iconWarn = color.New(color.FgYellow, color.Bold).Sprint("⚠")
	iconSkip = color.New(color.Faint).Sprint("○")
	iconMiss = color.New(color.Faint).Sprint("-")
	iconInfo = color.New(color.FgCyan).Sprint("~")

	sectionColor = color.New(color.Bold)
)

// printSection prints a top-level section header, e.g. "=== Init ===".
func printSection(title string) {
	fmt.Println()
	sectionColor.Printf("=== %s ===\n", title)
}

// printLine writes one indented status line.
//   name = "" → "  ✓  msg"
//   name set  → "  ✓  [name] msg"
func printLine(w io.Writer, icon, name, msg string) {
	if name == "" {
		fmt.Fprintf(w, "  %s  %s\n", icon, msg)
	} else {
		fmt.Fprintf(w, "  %s  [%s] %s\n", icon, name, msg)
	}
}

// printOK prints a success line.
func printOK(name, msg string) { printLine(os.Stdout, iconOK, name, msg) }

// printErr prints an error line to stderr.
func printErr(name, msg string) { printLine(os.Stderr, iconErr, name, msg) }

// printWarn prints a warning line.
func printWarn(name, msg string) { printLine(os.Stdout, iconWarn, name, msg) }

// printSkip prints a skipped / not-applicable line.
func printSkip(name, msg string) { printLine(os.Stdout, iconSkip, name, msg) }

// printMiss prints a not-found / missing line.
func printMiss(name, msg string) { printLine(os.Stdout, iconMiss, name, msg) }

// printInfo prints a neutral informational / state-change line.
func printInfo(name, msg string) { printLine(os.Stdout, iconInfo, name, msg) }
