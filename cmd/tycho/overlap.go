package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tycho/internal/cast"
)

var overlapCmd = &cobra.Command{
	Use:   "overlap <a> <b>",
	Short: "Check whether two types can ever hold the same value",
	Long: `Check whether two types share at least one value. Disjoint types make
every comparison between them constant, which is almost always a bug in
the annotated code.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		a, okA := s.parseArg(cmd, "<a>", args[0])
		b, okB := s.parseArg(cmd, "<b>", args[1])
		if !okA || !okB {
			return fmt.Errorf("invalid type expression")
		}
		if !cast.UnionWeaklyOverlaps(a, b) {
			return fmt.Errorf("%s and %s share no value", a.String(), b.String())
		}
		if !s.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s ~ %s\n", a.String(), b.String())
		}
		return nil
	},
}
