package main

import (
	"fmt"
	"os"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tycho/internal/diag"
	"tycho/internal/diagfmt"
	"tycho/internal/driver"
	"tycho/internal/observ"
	"tycho/internal/project"
	"tycho/internal/source"
	"tycho/internal/typeexpr"
	"tycho/internal/types"
)

// session carries the per-invocation state every subcommand needs: the
// manifest merged with the persistent flags, the resolution context and
// one shared interner.
type session struct {
	manifest *project.Manifest
	cfg      project.Config
	ctx      *typeexpr.Context
	interner *types.Interner
	colorOn  bool
	quiet    bool
	timings  bool
	maxDiags int
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg := project.DefaultConfig()
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	manifest, found, err := project.LoadManifest(wd)
	if err != nil {
		return nil, err
	}
	if found {
		cfg = manifest.Config
	}

	flags := cmd.Flags()
	colorValue := cfg.Output.Color
	if flags.Changed("color") {
		colorValue, _ = flags.GetString("color")
	}
	mode, err := readColorMode(colorValue)
	if err != nil {
		return nil, err
	}

	maxDiags := cfg.Output.MaxDiagnostics
	if flags.Changed("max-diagnostics") {
		maxDiags, _ = flags.GetInt("max-diagnostics")
		if maxDiags <= 0 {
			return nil, fmt.Errorf("--max-diagnostics must be positive")
		}
	}

	quiet, _ := flags.GetBool("quiet")
	timings, _ := flags.GetBool("timings")

	ctx, err := contextFromFlags(cmd)
	if err != nil {
		return nil, err
	}

	s := &session{
		manifest: manifest,
		cfg:      cfg,
		ctx:      ctx,
		interner: types.NewInterner(),
		colorOn:  shouldColor(mode),
		quiet:    quiet,
		timings:  timings,
		maxDiags: maxDiags,
	}
	color.NoColor = !s.colorOn
	return s, nil
}

// contextFromFlags builds the name-resolution context from --namespace,
// --template and --alias. Every class name is trusted; the CLI has no
// symbol table to check against.
func contextFromFlags(cmd *cobra.Command) (*typeexpr.Context, error) {
	flags := cmd.Flags()
	ns, _ := flags.GetString("namespace")
	templates, _ := flags.GetStringArray("template")
	aliases, _ := flags.GetStringArray("alias")
	if ns == "" && len(templates) == 0 && len(aliases) == 0 {
		return nil, nil
	}

	ctx := &typeexpr.Context{Namespace: ns}
	if len(templates) > 0 {
		ctx.Templates = make(map[string]struct{}, len(templates))
		for _, t := range templates {
			ctx.Templates[t] = struct{}{}
		}
	}
	if len(aliases) > 0 {
		ctx.Aliases = make(map[string]string, len(aliases))
		for _, a := range aliases {
			name, fqn, ok := strings.Cut(a, "=")
			if !ok || name == "" || fqn == "" {
				return nil, fmt.Errorf("invalid --alias %q (expected Alias=\\Fully\\Qualified)", a)
			}
			ctx.Aliases[name] = fqn
		}
	}
	return ctx, nil
}

func (s *session) runner(timer *observ.Timer) *driver.Runner {
	return &driver.Runner{
		Interner: s.interner,
		Ctx:      s.ctx,
		Cfg:      s.cfg.CastConfig(),
		MaxDiags: s.maxDiags,
		Timer:    timer,
	}
}

func (s *session) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:       s.colorOn,
		ShowNotes:   !s.quiet,
		ShowPreview: !s.quiet,
	}
}

// parseArg parses one command-line type expression, printing any
// diagnostics it produced to stderr.
func (s *session) parseArg(cmd *cobra.Command, label, text string) (types.Union, bool) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(label, []byte(text))
	f := fs.Get(id)
	bag := diag.NewBag(s.maxDiags)

	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		end = 0
	}
	u, ok := typeexpr.Parse(f, 0, end, s.ctx, s.interner, diag.BagReporter{Bag: bag})
	bag.Sort()
	bag.Dedup()
	if bag.Len() > 0 {
		diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, s.prettyOpts())
	}
	return u, ok
}
