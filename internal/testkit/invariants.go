package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"tycho/internal/diag"
	"tycho/internal/source"
	"tycho/internal/typeexpr"
	"tycho/internal/types"
)

// CheckUnionInvariants runs the structural invariants every union must hold:
// 1) no nil members
// 2) members are unique by value equality
// 3) the real set obeys the same two rules
func CheckUnionInvariants(u types.Union) error {
	if err := checkMemberSet(u.Types()); err != nil {
		return err
	}
	if err := checkMemberSet(u.RealTypes()); err != nil {
		return fmt.Errorf("real set: %w", err)
	}
	return nil
}

func checkMemberSet(members []*types.Type) error {
	for i, m := range members {
		if m == nil {
			return fmt.Errorf("nil member at index %d", i)
		}
		for j := i + 1; j < len(members); j++ {
			if m.Equal(members[j]) {
				return fmt.Errorf("duplicate member %s at indexes %d and %d", m, i, j)
			}
		}
	}
	return nil
}

// CheckPrintParseRoundTrip verifies that reparsing u.String() under ctx
// yields an equal union. Unions containing template references need a ctx
// that declares those templates.
func CheckPrintParseRoundTrip(u types.Union, ctx *typeexpr.Context, in *types.Interner) error {
	if u.IsEmpty() {
		return nil
	}
	printed := u.String()
	bag := diag.NewBag(8)
	got, ok := typeexpr.ParseString(printed, ctx, in, diag.BagReporter{Bag: bag})
	if !ok || bag.HasErrors() {
		return fmt.Errorf("reparse of %q failed: %+v", printed, bag.Items())
	}
	if !got.Equal(u) {
		return fmt.Errorf("round trip changed the union: %q -> %q", printed, got.String())
	}
	return nil
}

// CheckSpanInvariants runs a minimal set of span invariants against a file:
// the span must reference the file, be well-formed, and stay inside the
// file's content bounds.
func CheckSpanInvariants(sp source.Span, f *source.File) error {
	if f == nil {
		return fmt.Errorf("nil file")
	}
	if sp.File != f.ID {
		return fmt.Errorf("span points to file id %d, want %d", sp.File, f.ID)
	}
	if sp.End < sp.Start {
		return fmt.Errorf("inverted span: %v", sp)
	}
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if sp.End > lenContent {
		return fmt.Errorf("span end beyond content: %d > %d", sp.End, lenContent)
	}
	return nil
}
