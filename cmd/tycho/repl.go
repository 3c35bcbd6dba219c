package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tycho/internal/diag"
	"tycho/internal/diagfmt"
	"tycho/internal/typeexpr"
	"tycho/internal/ui"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive query console",
	Long: `Start an interactive console. Every entered line is evaluated as a
batch query: parse, cast, nocast or overlap.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
			return fmt.Errorf("repl needs a terminal; pipe queries through 'tycho batch' instead")
		}

		r := s.runner(nil)
		opts := s.prettyOpts()
		opts.ShowPreview = false

		eval := func(line string) string {
			res := r.RunVirtual("<repl>", []byte(line))
			var b strings.Builder
			if res.Bag.Len() > 0 {
				diagfmt.Pretty(&b, res.Bag, res.FS, opts)
			}
			if res.Failed == 0 && !res.Bag.HasErrors() {
				if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "parse "); ok {
					if u, parsed := typeexpr.ParseString(rest, s.ctx, s.interner, diag.NopReporter{}); parsed {
						fmt.Fprintln(&b, u.String())
					}
				} else {
					fmt.Fprintln(&b, "ok")
				}
			}
			return strings.TrimRight(b.String(), "\n")
		}

		prog := tea.NewProgram(ui.NewReplModel(eval))
		_, err = prog.Run()
		return err
	},
}
