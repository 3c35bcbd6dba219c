package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tycho/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "tycho",
	Short:         "Tycho type engine and query toolchain",
	Long:          `Tycho parses annotation type expressions and answers casting, subtyping and overlap queries about them`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(overlapCmd)
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("namespace", "", "enclosing namespace for relative class names")
	rootCmd.PersistentFlags().StringArray("template", nil, "template parameter name in scope (repeatable)")
	rootCmd.PersistentFlags().StringArray("alias", nil, "class alias as Alias=\\Fully\\Qualified (repeatable)")

	if err := rootCmd.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			os.Stderr.WriteString("tycho: " + msg + "\n")
		}
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
