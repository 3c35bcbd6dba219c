package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 9}
	b := Span{File: 1, Start: 2, End: 6}
	got := a.Cover(b)
	if got.Start != 2 || got.End != 9 {
		t.Fatalf("cover = %v, want 1:2-9", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got = a.Cover(other); got != a {
		t.Fatalf("cover across files must be a no-op, got %v", got)
	}
}

func TestSpanShiftRight(t *testing.T) {
	s := Span{File: 0, Start: 3, End: 7}
	got := s.ShiftRight(10)
	if got.Start != 13 || got.End != 17 {
		t.Fatalf("shifted span = %v, want 0:13-17", got)
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("query.tyq", []byte("cast int => float\ncast ?int[] => mixed\n"))
	start, _ := fs.Resolve(Span{File: id, Start: 23, End: 29})
	if start.Line != 2 {
		t.Fatalf("expected line 2, got %d", start.Line)
	}
	if line := fs.Get(id).GetLine(2); line != "cast ?int[] => mixed" {
		t.Fatalf("unexpected line content %q", line)
	}
}

func TestFileSetNormalizesCRLF(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("win.tyq", []byte("a\nb"), 0)
	f := fs.Get(id)
	if f.Path != "win.tyq" {
		t.Fatalf("unexpected path %q", f.Path)
	}
	if got := f.GetLine(1); got != "a" {
		t.Fatalf("line 1 = %q", got)
	}
}
