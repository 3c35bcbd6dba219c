package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <type-expr>",
	Short: "Print a type with its shapes flattened to plain containers",
	Long: `Parse a type expression and print it with every shape literal replaced
by the equivalent keyed container, the representation comparison and
hashing layers work with.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		u, ok := s.parseArg(cmd, "<normalize>", args[0])
		if !ok {
			return fmt.Errorf("invalid type expression")
		}
		fmt.Fprintln(cmd.OutOrStdout(), u.WithFlattenedShapes().String())
		return nil
	},
}
