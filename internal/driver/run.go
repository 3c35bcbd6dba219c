package driver

import (
	"fmt"

	"tycho/internal/cast"
	"tycho/internal/diag"
	"tycho/internal/observ"
	"tycho/internal/source"
	"tycho/internal/typeexpr"
	"tycho/internal/types"
)

// Runner evaluates batch query files against one shared interner and
// resolution context. Safe for concurrent use: the interner synchronizes
// itself and everything else is read-only.
type Runner struct {
	Interner *types.Interner
	Ctx      *typeexpr.Context
	Cfg      cast.Config
	MaxDiags int
	Timer    *observ.Timer
}

// FileResult is the outcome of one query file.
type FileResult struct {
	Path    string
	FS      *source.FileSet
	Bag     *diag.Bag
	Queries int
	Failed  int
}

func (r *Runner) maxDiags() int {
	if r.MaxDiags > 0 {
		return r.MaxDiags
	}
	return 100
}

func (r *Runner) interner() *types.Interner {
	if r.Interner == nil {
		r.Interner = types.NewInterner()
	}
	return r.Interner
}

// RunFile loads and evaluates one query file from disk.
func (r *Runner) RunFile(path string) (*FileResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return r.runLoaded(fs, id, path), nil
}

// RunVirtual evaluates query text that never touched the disk (repl, tests).
func (r *Runner) RunVirtual(name string, content []byte) *FileResult {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, content)
	return r.runLoaded(fs, id, name)
}

func (r *Runner) runLoaded(fs *source.FileSet, id source.FileID, path string) *FileResult {
	f := fs.Get(id)
	bag := diag.NewBag(r.maxDiags())
	rep := diag.BagReporter{Bag: bag}

	queries := ParseQueries(f, rep)
	failed := 0
	for _, q := range queries {
		if !r.eval(f, q, rep) {
			failed++
		}
	}
	bag.Sort()
	bag.Dedup()
	return &FileResult{Path: path, FS: fs, Bag: bag, Queries: len(queries), Failed: failed}
}

func (r *Runner) eval(f *source.File, q Query, rep diag.Reporter) bool {
	switch q.Verb {
	case VerbParse:
		_, ok := r.parseRegion(f, q.Left, rep)
		return ok

	case VerbCast:
		a, b, ok := r.parseBoth(f, q, rep)
		if !ok {
			return false
		}
		if a.Equal(b) {
			diag.ReportInfo(rep, diag.TypeRedundantCast, q.Span,
				fmt.Sprintf("cast of %s to itself is redundant", a.String())).Emit()
			return true
		}
		if !cast.UnionCanCast(a, b, r.Cfg) {
			diag.ReportError(rep, diag.TypeMismatch, q.Left,
				fmt.Sprintf("%s cannot be used as %s", a.String(), b.String())).
				WithNote(q.Right, "expected type written here").Emit()
			return false
		}
		return true

	case VerbNoCast:
		a, b, ok := r.parseBoth(f, q, rep)
		if !ok {
			return false
		}
		if cast.UnionCanCast(a, b, r.Cfg) {
			diag.ReportError(rep, diag.TypeUnexpectedCastSuccess, q.Left,
				fmt.Sprintf("%s casts to %s but was expected not to", a.String(), b.String())).Emit()
			return false
		}
		return true

	case VerbOverlap:
		a, b, ok := r.parseBoth(f, q, rep)
		if !ok {
			return false
		}
		if !cast.UnionWeaklyOverlaps(a, b) {
			diag.ReportWarning(rep, diag.TypeImpossibleComparison, q.Span,
				fmt.Sprintf("%s and %s share no value; the comparison is always false",
					a.String(), b.String())).Emit()
			return false
		}
		return true
	}
	return false
}

func (r *Runner) parseBoth(f *source.File, q Query, rep diag.Reporter) (a, b types.Union, ok bool) {
	a, okA := r.parseRegion(f, q.Left, rep)
	b, okB := r.parseRegion(f, q.Right, rep)
	return a, b, okA && okB
}

func (r *Runner) parseRegion(f *source.File, region source.Span, rep diag.Reporter) (types.Union, bool) {
	return typeexpr.Parse(f, region.Start, region.End, r.Ctx, r.interner(), rep)
}
