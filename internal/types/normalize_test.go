package types

import "testing"

func TestFlattenShapeGroupsByValueType(t *testing.T) {
	// array{field:int|string} -> array<string,int>|array<string,string>
	shape := NewShape([]ShapeField{
		{Key: ShapeKey{Str: "field"}, Value: NewUnion(New(KindInt), New(KindString))},
	})
	got := NewUnion(shape).WithFlattenedShapes()

	want := NewUnion(
		NewGenericArray(NewUnion(New(KindInt)), KeyString),
		NewGenericArray(NewUnion(New(KindString)), KeyString),
	)
	if !got.Equal(want) {
		t.Fatalf("flattened = %q, want %q", got.String(), want.String())
	}
}

func TestFlattenShapeMergesKeyKinds(t *testing.T) {
	// int and string keys sharing a value type collapse into one mixed-key member
	shape := NewShape([]ShapeField{
		{Key: ShapeKey{IsInt: true, Int: 0}, Value: NewUnion(New(KindFloat))},
		{Key: ShapeKey{Str: "ratio"}, Value: NewUnion(New(KindFloat))},
	})
	got := NewUnion(shape).WithFlattenedShapes()

	want := NewUnion(NewGenericArray(NewUnion(New(KindFloat)), KeyMixed))
	if !got.Equal(want) {
		t.Fatalf("flattened = %q, want %q", got.String(), want.String())
	}
}

func TestFlattenContiguousIntKeysKeepList(t *testing.T) {
	shape := NewShape([]ShapeField{
		{Key: ShapeKey{IsInt: true, Int: 0}, Value: NewUnion(New(KindInt))},
		{Key: ShapeKey{IsInt: true, Int: 1}, Value: NewUnion(New(KindInt)), Optional: true},
	})
	got := NewUnion(shape).WithFlattenedShapes()

	want := NewUnion(NewGenericArray(NewUnion(New(KindInt)), KeyList))
	if !got.Equal(want) {
		t.Fatalf("flattened = %q, want %q", got.String(), want.String())
	}
}

func TestFlattenNonContiguousIntKeysStayInt(t *testing.T) {
	cases := []struct {
		name   string
		fields []ShapeField
	}{
		{"keys not starting at 0", []ShapeField{
			{Key: ShapeKey{IsInt: true, Int: 1}, Value: NewUnion(New(KindInt))},
		}},
		{"gapped keys", []ShapeField{
			{Key: ShapeKey{IsInt: true, Int: 0}, Value: NewUnion(New(KindInt))},
			{Key: ShapeKey{IsInt: true, Int: 2}, Value: NewUnion(New(KindInt))},
		}},
		{"optional before required", []ShapeField{
			{Key: ShapeKey{IsInt: true, Int: 0}, Value: NewUnion(New(KindInt)), Optional: true},
			{Key: ShapeKey{IsInt: true, Int: 1}, Value: NewUnion(New(KindInt))},
		}},
	}
	want := NewUnion(NewGenericArray(NewUnion(New(KindInt)), KeyInt))
	for _, tc := range cases {
		got := NewUnion(NewShape(tc.fields)).WithFlattenedShapes()
		if !got.Equal(want) {
			t.Fatalf("%s: flattened = %q, want %q", tc.name, got.String(), want.String())
		}
	}
}

func TestFlattenEmptyShape(t *testing.T) {
	got := NewUnion(NewShape(nil)).WithFlattenedShapes()
	if !got.Equal(NewUnion(New(KindArray))) {
		t.Fatalf("array{} must flatten to plain array, got %q", got.String())
	}
}

func TestFlattenPreservesNullability(t *testing.T) {
	shape := NewShape([]ShapeField{
		{Key: ShapeKey{Str: "id"}, Value: NewUnion(New(KindInt))},
	}).WithNullable(true)
	got := NewUnion(shape).WithFlattenedShapes()

	want := NewUnion(NewGenericArray(NewUnion(New(KindInt)), KeyString).WithNullable(true))
	if !got.Equal(want) {
		t.Fatalf("flattened = %q, want %q", got.String(), want.String())
	}
}

func TestFlattenIsIdempotent(t *testing.T) {
	unions := []Union{
		NewUnion(NewShape([]ShapeField{
			{Key: ShapeKey{IsInt: true, Int: 0}, Value: NewUnion(New(KindString))},
			{Key: ShapeKey{IsInt: true, Int: 1}, Value: NewUnion(New(KindInt), New(KindNull)), Optional: true},
		})),
		NewUnion(NewShape(nil)),
		NewUnion(New(KindInt), New(KindString)),
		Union{},
	}
	for _, u := range unions {
		once := u.WithFlattenedShapes()
		twice := once.WithFlattenedShapes()
		if !once.Equal(twice) {
			t.Fatalf("normalization not idempotent for %q: %q vs %q", u.String(), once.String(), twice.String())
		}
	}
}

func TestFlattenLeavesNonShapesAlone(t *testing.T) {
	u := NewUnion(New(KindInt), NewClass("\\Foo", nil))
	if got := u.WithFlattenedShapes(); !got.Equal(u) {
		t.Fatalf("non-shape unions must pass through unchanged: %q", got.String())
	}
}
