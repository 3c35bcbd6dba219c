package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tycho/internal/cast"
)

var (
	checkDeclared      bool
	checkStrict        bool
	checkImplicitCasts bool
)

func init() {
	checkCmd.Flags().BoolVar(&checkDeclared, "declared", false, "use declared-type rules (no scalar coercion)")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "require a strict subtype relation, no widening")
	checkCmd.Flags().BoolVar(&checkImplicitCasts, "implicit-casts", false, "allow loose scalar coercions regardless of the manifest")
}

var checkCmd = &cobra.Command{
	Use:   "check <from> <to>",
	Short: "Check whether one type can be used where another is expected",
	Long: `Check whether a value of the first type can flow into a slot of the
second. The default applies the assignment rules with widening; --strict
demands a subtype relation and --declared uses the rules for declared
native types.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if checkDeclared && checkStrict {
			return fmt.Errorf("--declared and --strict are mutually exclusive")
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		a, okA := s.parseArg(cmd, "<from>", args[0])
		b, okB := s.parseArg(cmd, "<to>", args[1])
		if !okA || !okB {
			return fmt.Errorf("invalid type expression")
		}

		var allowed bool
		switch {
		case checkStrict:
			allowed = cast.UnionIsSubtype(a, b)
		case checkDeclared:
			allowed = cast.UnionCanCastDeclared(a, b)
		default:
			cfg := s.cfg.CastConfig()
			if checkImplicitCasts {
				cfg.AllowImplicitScalarCast = true
			}
			allowed = cast.UnionCanCast(a, b, cfg)
		}

		if !allowed {
			return fmt.Errorf("%s cannot be used as %s", a.String(), b.String())
		}
		if !s.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s => %s\n", a.String(), b.String())
		}
		return nil
	},
}
