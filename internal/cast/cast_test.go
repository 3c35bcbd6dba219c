package cast

import (
	"testing"

	"tycho/internal/diag"
	"tycho/internal/typeexpr"
	"tycho/internal/types"
)

func parseUnion(t *testing.T, text string) types.Union {
	t.Helper()
	u, ok := typeexpr.ParseString(text, nil, types.NewInterner(), diag.NopReporter{})
	if !ok {
		t.Fatalf("parse(%q) failed", text)
	}
	return u
}

func parseType(t *testing.T, text string) *types.Type {
	t.Helper()
	u := parseUnion(t, text)
	if u.Len() != 1 {
		t.Fatalf("parse(%q) is not a single type: %q", text, u.String())
	}
	return u.Types()[0]
}

func TestSubtypeReflexivity(t *testing.T) {
	exprs := []string{
		"int", "?int", "string", "bool", "true", "null", "never", "mixed",
		"non-zero-int", "non-empty-string", "1", "1.5", "'x'",
		"int[]", "list<string>", "array<string,int>",
		"array{name:string,age?:int}", "iterable<string,int>",
		"Closure(int):int", "callable", "\\App\\Repo<int>", "object", "static",
	}
	for _, text := range exprs {
		a := parseType(t, text)
		if !IsSubtype(a, a) {
			t.Fatalf("%s must be a subtype of itself", a)
		}
		if !IsSubtype(a, a.WithNullable(true)) {
			t.Fatalf("%s must be a subtype of its nullable form", a)
		}
	}
}

func TestSubtypeAntisymmetry(t *testing.T) {
	pairs := [][2]string{
		{"1", "non-zero-int"},
		{"non-zero-int", "int"},
		{"true", "bool"},
		{"'x'", "string"},
		{"'x'", "non-empty-string"},
		{"non-empty-string", "string"},
		{"class-string", "string"},
		{"never", "int"},
		{"int", "mixed"},
		{"non-null-mixed", "mixed"},
		{"non-empty-mixed", "non-null-mixed"},
		{"int[]", "array"},
		{"int[]", "iterable"},
		{"list<int>", "array<int,int>"},
		{"array<int,int>", "int[]"},
		{"array{0:int}", "list<int>"},
		{"array{name:string}", "array<string,string>"},
		{"\\App\\Repo", "object"},
		{"static", "object"},
		{"Closure(int):int", "Closure"},
		{"Closure(int):int", "callable"},
		{"int", "?int"},
		{"null", "?int"},
	}
	for _, p := range pairs {
		sub, super := parseType(t, p[0]), parseType(t, p[1])
		if !IsSubtype(sub, super) {
			t.Fatalf("%s must be a subtype of %s", sub, super)
		}
		if IsSubtype(super, sub) {
			t.Fatalf("antisymmetry violated: %s and %s are mutual subtypes", sub, super)
		}
	}
}

func TestSubtypeNullability(t *testing.T) {
	if IsSubtype(parseType(t, "?int"), parseType(t, "int")) {
		t.Fatalf("?int must not be a subtype of int")
	}
	if !IsSubtype(parseType(t, "?int"), parseType(t, "mixed")) {
		t.Fatalf("mixed includes null")
	}
	if IsSubtype(parseType(t, "?int"), parseType(t, "non-null-mixed")) {
		t.Fatalf("non-null-mixed excludes null")
	}
	if IsSubtype(parseType(t, "?int"), parseType(t, "?float")) {
		t.Fatalf("?int must not be a subtype of ?float")
	}
}

func TestMixedRefinements(t *testing.T) {
	if IsSubtype(parseType(t, "mixed"), parseType(t, "non-null-mixed")) {
		t.Fatalf("mixed includes null, non-null-mixed does not")
	}
	if IsSubtype(parseType(t, "int"), parseType(t, "non-empty-mixed")) {
		t.Fatalf("int includes 0, non-empty-mixed does not")
	}
	if !IsSubtype(parseType(t, "non-zero-int"), parseType(t, "non-empty-mixed")) {
		t.Fatalf("non-zero-int values are never empty")
	}
	if IsSubtype(parseType(t, "0"), parseType(t, "non-empty-mixed")) {
		t.Fatalf("literal 0 is an empty value")
	}
	if !IsSubtype(parseType(t, "array{k:int}"), parseType(t, "non-empty-mixed")) {
		t.Fatalf("a shape with a required field is never empty")
	}
	if IsSubtype(parseType(t, "array{k?:int}"), parseType(t, "non-empty-mixed")) {
		t.Fatalf("an all-optional shape may be empty")
	}
}

func TestLiteralToRefinement(t *testing.T) {
	cfg := Config{}
	if !CanCast(parseType(t, "1"), parseType(t, "non-zero-int"), cfg) {
		t.Fatalf("literal 1 satisfies non-zero-int")
	}
	if CanCast(parseType(t, "0"), parseType(t, "non-zero-int"), cfg) {
		t.Fatalf("literal 0 does not satisfy non-zero-int")
	}
	if !CanCast(parseType(t, "'x'"), parseType(t, "non-empty-string"), cfg) {
		t.Fatalf("literal 'x' satisfies non-empty-string")
	}
	if CanCast(parseType(t, "''"), parseType(t, "non-empty-string"), cfg) {
		t.Fatalf("the empty string does not satisfy non-empty-string")
	}
}

func TestScalarCoercionConfig(t *testing.T) {
	off := Config{}
	on := Config{AllowImplicitScalarCast: true}
	intT := parseType(t, "int")
	floatT := parseType(t, "float")

	numeric := parseType(t, "'1234567890'")
	if CanCast(numeric, intT, off) {
		t.Fatalf("numeric string must not cast to int with coercion off")
	}
	if !CanCast(numeric, intT, on) {
		t.Fatalf("numeric string must cast to int with coercion on")
	}

	if CanCast(parseType(t, "'0x1A'"), intT, on) {
		t.Fatalf("hex-like strings are never numeric")
	}
	if CanCast(parseType(t, "'1e3'"), floatT, on) {
		t.Fatalf("exponent forms are never numeric")
	}

	fraction := parseType(t, "'1.5'")
	if !CanCast(fraction, floatT, on) {
		t.Fatalf("decimal-with-fraction string must cast to float")
	}
	if CanCast(fraction, intT, on) {
		t.Fatalf("a fractional string is not an int")
	}

	if !CanCast(parseType(t, "''"), parseType(t, "false"), on) {
		t.Fatalf("the empty string converts to false")
	}
	if CanCast(parseType(t, "''"), parseType(t, "true"), on) {
		t.Fatalf("the empty string never converts to true")
	}
	if !CanCast(parseType(t, "'0'"), parseType(t, "false"), on) {
		t.Fatalf("'0' converts to false")
	}
	if !CanCast(parseType(t, "'x'"), parseType(t, "true"), on) {
		t.Fatalf("a non-falsy string converts to true")
	}
	if !CanCast(parseType(t, "'x'"), parseType(t, "bool"), on) {
		t.Fatalf("every string converts to bool")
	}
	if CanCast(parseType(t, "'x'"), parseType(t, "bool"), off) {
		t.Fatalf("string-to-bool needs the coercion toggle")
	}
}

func TestIntWidening(t *testing.T) {
	intT := parseType(t, "int")
	floatT := parseType(t, "float")
	if IsSubtype(intT, floatT) {
		t.Fatalf("int is not a strict subtype of float")
	}
	if !CanCastDeclared(intT, floatT) {
		t.Fatalf("int widens to float on declared targets")
	}
	if !CanCast(parseType(t, "3"), floatT, Config{}) {
		t.Fatalf("literal int widens to float")
	}
	if CanCastDeclared(floatT, intT) {
		t.Fatalf("float never narrows to int implicitly")
	}
}

func TestClosureRules(t *testing.T) {
	if !IsSubtype(parseType(t, "Closure(int):int"), parseType(t, "Closure")) {
		t.Fatalf("a specific closure satisfies the bare Closure")
	}
	if IsSubtype(parseType(t, "Closure(int):int"), parseType(t, "Closure(string):int")) {
		t.Fatalf("parameter types are not interchangeable")
	}
	if !IsSubtype(parseType(t, "Closure(mixed):int"), parseType(t, "Closure(int):int")) {
		t.Fatalf("parameters are contravariant")
	}
	if IsSubtype(parseType(t, "Closure():int"), parseType(t, "Closure():float")) {
		t.Fatalf("returns are not interchangeable")
	}
	if !IsSubtype(parseType(t, "Closure():int"), parseType(t, "Closure():mixed")) {
		t.Fatalf("returns are covariant")
	}
	if !IsSubtype(parseType(t, "Closure"), parseType(t, "callable")) {
		t.Fatalf("a Closure is always callable")
	}
	if IsSubtype(parseType(t, "callable"), parseType(t, "Closure")) {
		t.Fatalf("a callable is not necessarily a Closure")
	}
	if !IsSubtype(parseType(t, "Closure(int...)"), parseType(t, "Closure(int,int)")) {
		t.Fatalf("a variadic source absorbs fixed target parameters")
	}
	if IsSubtype(parseType(t, "Closure(int,int)"), parseType(t, "Closure(int...)")) {
		t.Fatalf("a fixed source cannot satisfy a variadic target")
	}
	if IsSubtype(parseType(t, "Closure(int&)"), parseType(t, "Closure(int)")) {
		t.Fatalf("by-reference parameters must match")
	}
	if IsSubtype(parseType(t, "Closure(int):int"), parseType(t, "Closure(int,int):int")) {
		t.Fatalf("a source offering fewer fixed parameters cannot satisfy the target")
	}
	if !IsSubtype(parseType(t, "Closure(int,int=):int"), parseType(t, "Closure(int,int):int")) {
		t.Fatalf("an optional source parameter still accepts the argument")
	}
	if !IsSubtype(parseType(t, "Closure(int,int...):int"), parseType(t, "Closure(int,int,int):int")) {
		t.Fatalf("a trailing variadic covers the missing fixed parameters")
	}
}

func TestShapeToList(t *testing.T) {
	listStr := parseType(t, "list<string>")
	if !IsSubtype(parseType(t, "array{0:string,1?:string}"), listStr) {
		t.Fatalf("contiguous keys with a trailing optional form a list")
	}
	if IsSubtype(parseType(t, "array{1:string}"), listStr) {
		t.Fatalf("keys not starting at 0 are not a list")
	}
	if IsSubtype(parseType(t, "array{0:string,2:string}"), listStr) {
		t.Fatalf("gapped keys are not a list")
	}
	if IsSubtype(parseType(t, "array{0?:string,1:string}"), listStr) {
		t.Fatalf("an optional key before a required one breaks contiguity")
	}
	if IsSubtype(parseType(t, "array{0:int}"), listStr) {
		t.Fatalf("element types still matter")
	}
}

func TestFlattenedShapesPreserveCastAnswers(t *testing.T) {
	shapes := []string{
		"array{0:int}",
		"array{0:string,1?:string}",
		"array{1:int}",
		"array{0:int,2:int}",
		"array{0?:int,1:int}",
		"array{0:int,1:string}",
		"array{k:int}",
		"array{k:int|string}",
		"array{0:int,k:string}",
	}
	targets := []string{
		"list<int>",
		"list<string>",
		"list<int|string>",
		"array<int,int>",
		"array<int,int|string>",
		"array<string,int>",
		"int[]",
		"(int|string)[]",
		"array",
		"iterable",
		"iterable<int,int|string>",
		"mixed",
		"non-null-mixed",
		"?array",
		"callable",
		"never",
		"int",
	}
	for _, s := range shapes {
		src := parseUnion(t, s)
		flat := src.WithFlattenedShapes()
		for _, tgt := range targets {
			dst := parseUnion(t, tgt)
			if got, want := UnionIsSubtype(flat, dst), UnionIsSubtype(src, dst); got != want {
				t.Fatalf("IsSubtype(%s => %s) flipped after flattening: %v -> %v (flat = %q)",
					s, tgt, want, got, flat.String())
			}
			if got, want := UnionCanCast(flat, dst, Config{}), UnionCanCast(src, dst, Config{}); got != want {
				t.Fatalf("CanCast(%s => %s) flipped after flattening: %v -> %v (flat = %q)",
					s, tgt, want, got, flat.String())
			}
		}
	}
}

func TestFlattenedShapesLoseNonEmptiness(t *testing.T) {
	src := parseUnion(t, "array{0:int}")
	nonEmpty := parseUnion(t, "non-empty-mixed")
	if !UnionIsSubtype(src, nonEmpty) {
		t.Fatalf("a shape with a required field is never empty")
	}
	// the generic-array form cannot record non-emptiness; the answer weakens
	// to false, it must never strengthen to true
	if UnionIsSubtype(src.WithFlattenedShapes(), nonEmpty) {
		t.Fatalf("flattening cannot preserve non-emptiness")
	}
	optional := parseUnion(t, "array{0?:int}")
	if UnionIsSubtype(optional.WithFlattenedShapes(), nonEmpty) {
		t.Fatalf("flattening must not invent non-emptiness")
	}
}

func TestShapeToShape(t *testing.T) {
	src := parseType(t, "array{name:string,age:int,extra:bool}")
	if !IsSubtype(src, parseType(t, "array{name:string}")) {
		t.Fatalf("extra source fields are fine")
	}
	if !IsSubtype(src, parseType(t, "array{name:string,note?:string}")) {
		t.Fatalf("absent optional target fields are compatible")
	}
	if IsSubtype(src, parseType(t, "array{name:string,note:string}")) {
		t.Fatalf("a required target field must exist in the source")
	}
	if IsSubtype(parseType(t, "array{name?:string}"), parseType(t, "array{name:string}")) {
		t.Fatalf("an optional source field cannot satisfy a required target field")
	}
	if IsSubtype(src, parseType(t, "array{age:string}")) {
		t.Fatalf("field values must be subtypes")
	}
}

func TestShapeToGenericArray(t *testing.T) {
	shape := parseType(t, "array{name:string,title:string}")
	if !IsSubtype(shape, parseType(t, "array<string,string>")) {
		t.Fatalf("string-keyed shape fits a string-keyed array")
	}
	if IsSubtype(shape, parseType(t, "array<int,string>")) {
		t.Fatalf("string keys do not fit an int-keyed array")
	}
	if IsSubtype(shape, parseType(t, "array<string,int>")) {
		t.Fatalf("field values must fit the element type")
	}
	if !IsSubtype(shape, parseType(t, "string[]")) {
		t.Fatalf("mixed keys absorb string keys")
	}
	if !IsSubtype(parseType(t, "array{k:int}"), parseType(t, "iterable<string,int>")) {
		t.Fatalf("a shape iterates as key/value pairs")
	}
}

func TestContainerCovariance(t *testing.T) {
	if !IsSubtype(parseType(t, "int[]"), parseType(t, "(int|string)[]")) {
		t.Fatalf("arrays are covariant in their element")
	}
	if IsSubtype(parseType(t, "(int|string)[]"), parseType(t, "int[]")) {
		t.Fatalf("covariance does not reverse")
	}
	if !IsSubtype(parseType(t, "list<int>"), parseType(t, "int[]")) {
		t.Fatalf("a list is an int-keyed array")
	}
	if !IsSubtype(parseType(t, "array<int,string>"), parseType(t, "iterable<int,string>")) {
		t.Fatalf("arrays iterate")
	}
	if IsSubtype(parseType(t, "array<string,int>"), parseType(t, "iterable<int,int>")) {
		t.Fatalf("string keys do not iterate as int")
	}
}

func TestUnionCanCast(t *testing.T) {
	cfg := Config{}
	if !UnionCanCast(parseUnion(t, "int|string"), parseUnion(t, "mixed"), cfg) {
		t.Fatalf("everything casts to mixed")
	}
	if UnionCanCast(parseUnion(t, "int|string"), parseUnion(t, "int"), cfg) {
		t.Fatalf("the string member has no target")
	}
	if !UnionCanCast(parseUnion(t, "int|string"), parseUnion(t, "int|string|null"), cfg) {
		t.Fatalf("a wider target accepts every member")
	}
	if !UnionCanCast(types.Union{}, parseUnion(t, "int"), cfg) {
		t.Fatalf("the empty union carries no information")
	}
	if !UnionCanCast(parseUnion(t, "int"), types.Union{}, cfg) {
		t.Fatalf("an empty target is permissive")
	}
	if !UnionIsSubtype(parseUnion(t, "1|2"), parseUnion(t, "int")) {
		t.Fatalf("every literal member is an int")
	}
}
