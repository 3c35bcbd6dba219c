package diag

import (
	"testing"

	"tycho/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewError(TypeMismatch, span(0, 0, 1), "a")) {
		t.Fatalf("first add must succeed")
	}
	if !b.Add(NewError(TypeMismatch, span(0, 1, 2), "b")) {
		t.Fatalf("second add must succeed")
	}
	if b.Add(NewError(TypeMismatch, span(0, 2, 3), "c")) {
		t.Fatalf("third add must be rejected by the limit")
	}
	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
}

func TestBagSortIsDeterministic(t *testing.T) {
	b := NewBag(8)
	b.Add(New(SevWarning, TypeRedundantCast, span(1, 5, 9), "later file"))
	b.Add(NewError(TypeMismatch, span(0, 10, 12), "late span"))
	b.Add(NewError(TypeSynExpectType, span(0, 2, 4), "early span"))
	b.Sort()

	items := b.Items()
	if items[0].Code != TypeSynExpectType {
		t.Fatalf("expected TY2002 first, got %v", items[0].Code)
	}
	if items[2].Primary.File != 1 {
		t.Fatalf("expected file 1 last, got %v", items[2].Primary)
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(8)
	d := NewError(TypeUnresolvedName, span(0, 3, 8), "unknown class \\App\\Missing")
	b.Add(d)
	b.Add(d)
	b.Dedup()
	if b.Len() != 1 {
		t.Fatalf("dedup kept %d items, want 1", b.Len())
	}
}

func TestCodeFamilies(t *testing.T) {
	if !TypeLexBadEscape.IsMalformedType() {
		t.Fatalf("lex codes are malformed-type codes")
	}
	if !TypeSynUnclosedBrace.IsMalformedType() {
		t.Fatalf("grammar codes are malformed-type codes")
	}
	if TypeUnresolvedName.IsMalformedType() {
		t.Fatalf("unresolved name is recoverable, not malformed")
	}
	if !TypeUnresolvedTemplate.IsUnresolvedReference() {
		t.Fatalf("unresolved template is a resolution failure")
	}
	if got := TypeMismatch.String(); got != "TY3001" {
		t.Fatalf("code string = %q", got)
	}
}
