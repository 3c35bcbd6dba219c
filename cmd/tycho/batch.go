package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tycho/internal/diagfmt"
	"tycho/internal/observ"
	"tycho/internal/version"
)

var (
	batchJobs          int
	batchFormat        string
	batchImplicitCasts bool
)

func init() {
	batchCmd.Flags().IntVar(&batchJobs, "jobs", 0, "query files evaluated in parallel (0 = number of CPUs)")
	batchCmd.Flags().StringVar(&batchFormat, "format", "pretty", "output format (pretty|json|sarif)")
	batchCmd.Flags().BoolVar(&batchImplicitCasts, "implicit-casts", false, "allow loose scalar coercions regardless of the manifest")
}

// batchFileJSON is one evaluated query file in --format json output.
type batchFileJSON struct {
	Path    string `json:"path"`
	Queries int    `json:"queries"`
	Failed  int    `json:"failed"`
	diagfmt.DiagnosticsOutput
}

var batchCmd = &cobra.Command{
	Use:   "batch [paths...]",
	Short: "Evaluate .tyq query files and report failed expectations",
	Long: `Evaluate every .tyq query file under the given paths. Without
arguments the [analysis].paths of the nearest tycho.toml are used.
Each line of a query file is one expectation: parse, cast, nocast or
overlap.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch batchFormat {
		case "pretty", "json", "sarif":
		default:
			return fmt.Errorf("unsupported format %q (must be pretty, json or sarif)", batchFormat)
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		paths := args
		if len(paths) == 0 {
			if s.manifest == nil || len(s.cfg.Analysis.Paths) == 0 {
				return fmt.Errorf("no paths given and no [analysis].paths in tycho.toml")
			}
			for _, p := range s.cfg.Analysis.Paths {
				paths = append(paths, filepath.Join(s.manifest.Root, p))
			}
		}

		var timer *observ.Timer
		if s.timings {
			timer = observ.NewTimer()
		}
		r := s.runner(timer)
		if batchImplicitCasts {
			r.Cfg.AllowImplicitScalarCast = true
		}

		results, err := r.RunPaths(cmd.Context(), paths, batchJobs)
		if err != nil {
			return err
		}

		failed := 0
		for _, res := range results {
			failed += res.Failed
		}

		out := cmd.OutOrStdout()
		switch batchFormat {
		case "pretty":
			for _, res := range results {
				if res.Bag.Len() > 0 {
					diagfmt.Pretty(out, res.Bag, res.FS, s.prettyOpts())
				}
			}
			if !s.quiet {
				queries := 0
				for _, res := range results {
					queries += res.Queries
				}
				fmt.Fprintf(out, "%d files, %d queries, %d failed\n", len(results), queries, failed)
			}
		case "json":
			docs := make([]batchFileJSON, 0, len(results))
			for _, res := range results {
				docs = append(docs, batchFileJSON{
					Path:    res.Path,
					Queries: res.Queries,
					Failed:  res.Failed,
					DiagnosticsOutput: diagfmt.BuildJSON(res.Bag, res.FS, diagfmt.JSONOpts{
						IncludePositions: true,
						IncludeNotes:     true,
					}),
				})
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(docs); err != nil {
				return err
			}
		case "sarif":
			files := make([]diagfmt.SarifFile, 0, len(results))
			for _, res := range results {
				files = append(files, diagfmt.SarifFile{Bag: res.Bag, FS: res.FS})
			}
			meta := diagfmt.SarifRunMeta{
				ToolName:       "tycho",
				ToolVersion:    version.Version,
				InvocationArgs: os.Args,
			}
			if err := diagfmt.WriteSarifAll(out, files, meta); err != nil {
				return err
			}
		}

		if timer != nil {
			fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
		}
		if failed > 0 {
			return fmt.Errorf("%d queries failed", failed)
		}
		return nil
	},
}
