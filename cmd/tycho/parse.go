package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <type-expr>",
	Short: "Parse a type expression and print its canonical spelling",
	Long: `Parse one type expression and print the canonical form the engine
stores, for example "integer | boolean" becomes "int|bool" and
"?(float)[]" becomes "?float[]". Malformed input fails with a
diagnostic; unknown class names only warn.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		u, ok := s.parseArg(cmd, "<parse>", args[0])
		if !ok {
			return fmt.Errorf("invalid type expression")
		}
		fmt.Fprintln(cmd.OutOrStdout(), u.String())
		return nil
	},
}
