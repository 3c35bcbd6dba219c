package types

import "testing"

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.Mixed == nil || b.Int == nil || b.Never == nil {
		t.Fatalf("builtins not initialized")
	}
	if b.Int.Kind() != KindInt {
		t.Fatalf("expected int kind, got %v", b.Int.Kind())
	}
}

func TestInternerDeduplicatesDescriptors(t *testing.T) {
	in := NewInterner()
	elem := NewUnion(in.Builtins().String)
	arr1 := in.Intern(NewGenericArray(elem, KeyMixed))
	arr2 := in.Intern(NewGenericArray(elem, KeyMixed))
	if arr1 != arr2 {
		t.Fatalf("array descriptors should be deduplicated")
	}
}

func TestInternerKeyKindAffectsIdentity(t *testing.T) {
	in := NewInterner()
	elem := NewUnion(in.Builtins().Int)
	list := in.Intern(NewGenericArray(elem, KeyList))
	plain := in.Intern(NewGenericArray(elem, KeyMixed))
	if list == plain {
		t.Fatalf("list and mixed-key arrays must differ")
	}
}

func TestInternerNullabilityAffectsIdentity(t *testing.T) {
	in := NewInterner()
	plain := in.Builtins().Int
	nullable := in.Intern(plain.WithNullable(true))
	if plain == nullable {
		t.Fatalf("?int and int must be distinct instances")
	}
	again := in.Intern(New(KindInt).WithNullable(true))
	if again != nullable {
		t.Fatalf("equal nullable descriptors must share one instance")
	}
}

func TestInternerIsolatedInstances(t *testing.T) {
	a := NewInterner()
	b := NewInterner()
	ta := a.Intern(NewLitInt(42))
	tb := b.Intern(NewLitInt(42))
	if ta == tb {
		t.Fatalf("separate interners must not share storage")
	}
	if !ta.Equal(tb) {
		t.Fatalf("interning must not change value equality")
	}
}

func TestInternerLookupHit(t *testing.T) {
	in := NewInterner()
	size := in.Size()
	lit := in.Intern(NewLitString("x"))
	if in.Size() != size+1 {
		t.Fatalf("intern of a new shape must grow the cache")
	}
	got, ok := in.Lookup(NewLitString("x"))
	if !ok || got != lit {
		t.Fatalf("lookup after intern must hit the canonical instance")
	}
	in.Intern(NewLitString("x"))
	if in.Size() != size+1 {
		t.Fatalf("re-interning an equal shape must not grow the cache")
	}
}
