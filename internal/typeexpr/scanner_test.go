package typeexpr

import (
	"testing"

	"tycho/internal/diag"
	"tycho/internal/source"
)

func scanAll(t *testing.T, text string) ([]Token, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(16)
	f := &source.File{Content: []byte(text), Flags: source.FileVirtual}
	sc := NewScanner(f, 0, uint32(len(text)), diag.BagReporter{Bag: bag})
	var toks []Token
	for {
		tok := sc.Next()
		toks = append(toks, tok)
		if tok.Kind == TokEOF || tok.Kind == TokInvalid {
			return toks, bag
		}
	}
}

func TestScanPunctuationAndIdents(t *testing.T) {
	toks, bag := scanAll(t, "?int[]|array<string, non-zero-int>")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	want := []TokKind{
		TokQuestion, TokIdent, TokLBracket, TokRBracket, TokPipe,
		TokIdent, TokLAngle, TokIdent, TokComma, TokIdent, TokRAngle, TokEOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d = %v, want %v", i, toks[i].Kind, k)
		}
	}
	if toks[9].Text != "non-zero-int" {
		t.Fatalf("hyphenated identifier split: %q", toks[9].Text)
	}
}

func TestScanNumbers(t *testing.T) {
	toks, bag := scanAll(t, "-12 3.5 +7 1e3")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	kinds := []TokKind{TokIntLit, TokFloatLit, TokIntLit, TokFloatLit}
	for i, k := range kinds {
		if toks[i].Kind != k {
			t.Fatalf("token %d (%q) = %v, want %v", i, toks[i].Text, toks[i].Kind, k)
		}
	}
}

func TestScanRejectsHexLikeNumbers(t *testing.T) {
	_, bag := scanAll(t, "0x1A")
	if !bag.HasErrors() {
		t.Fatalf("hex-like literal must be rejected")
	}
	if bag.Items()[0].Code != diag.TypeLexBadNumber {
		t.Fatalf("code = %v, want TypeLexBadNumber", bag.Items()[0].Code)
	}
}

func TestScanStringEscapes(t *testing.T) {
	toks, bag := scanAll(t, `'a\'b\\c\x41'`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if toks[0].Kind != TokStrLit || toks[0].Value != `a'b\cA` {
		t.Fatalf("decoded = %q", toks[0].Value)
	}
}

func TestScanStringErrors(t *testing.T) {
	cases := []struct {
		text string
		code diag.Code
	}{
		{`'unterminated`, diag.TypeLexUnterminatedStr},
		{`'bad\qescape'`, diag.TypeLexBadEscape},
		{`'bad\x0'`, diag.TypeLexBadEscape},
		{"'raw\x01byte'", diag.TypeLexControlCharInStr},
	}
	for _, c := range cases {
		_, bag := scanAll(t, c.text)
		if !bag.HasErrors() {
			t.Fatalf("%q must be rejected", c.text)
		}
		if got := bag.Items()[0].Code; got != c.code {
			t.Fatalf("%q: code = %v, want %v", c.text, got, c.code)
		}
	}
}

func TestScanVarNameAndEllipsis(t *testing.T) {
	toks, bag := scanAll(t, "int... $value")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if toks[1].Kind != TokEllipsis {
		t.Fatalf("token 1 = %v, want ellipsis", toks[1].Kind)
	}
	if toks[2].Kind != TokVarName || toks[2].Value != "value" {
		t.Fatalf("token 2 = %v %q", toks[2].Kind, toks[2].Value)
	}
}

func TestScanSpansPointIntoRegion(t *testing.T) {
	bag := diag.NewBag(4)
	content := []byte("cast int => float")
	f := &source.File{ID: 3, Content: content}
	sc := NewScanner(f, 5, 8, diag.BagReporter{Bag: bag})
	tok := sc.Next()
	if tok.Kind != TokIdent || tok.Text != "int" {
		t.Fatalf("token = %v %q", tok.Kind, tok.Text)
	}
	if tok.Span.File != 3 || tok.Span.Start != 5 || tok.Span.End != 8 {
		t.Fatalf("span = %v, want 3:5-8", tok.Span)
	}
	if next := sc.Next(); next.Kind != TokEOF {
		t.Fatalf("region must end after 'int', got %v", next.Kind)
	}
}
