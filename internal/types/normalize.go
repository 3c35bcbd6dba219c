package types

import "sort"

// WithFlattenedShapes rewrites the union into an equivalent form with no
// array-shape members, so that the casting engine only needs generic-array
// rules after one normalization pass.
//
// Each shape becomes a union of generic arrays grouped by field value type:
// fields sharing an identical value type collapse into one generic-array
// member whose key kind is the union of their keys' kinds. A shape whose int
// keys cover a contiguous run from 0 with the optional fields trailing keeps
// the list key kind. An empty shape normalizes to the plain "array" (empty
// array) type.
//
// The rewrite is idempotent and must not change the answer of any
// subtyping/casting query against a shape-agnostic target, with two known
// precision losses, both one-directional (true may weaken to false, never
// the reverse): a generic array cannot record that a required field makes
// the value non-empty, so queries against non-empty-mixed may weaken, and
// the plain "array" an empty shape becomes holds no key or element
// guarantees, so queries against generic-array targets may weaken.
func (u Union) WithFlattenedShapes() Union {
	changed := false
	for _, m := range u.types {
		if m.kind == KindShape {
			changed = true
			break
		}
	}
	if !changed && !hasShape(u.real) {
		return u
	}

	out := make([]*Type, 0, len(u.types))
	for _, m := range u.types {
		if m.kind == KindShape {
			out = append(out, flattenShape(m)...)
		} else {
			out = append(out, m)
		}
	}
	result := Union{types: dedupTypes(out)}
	if len(u.real) > 0 {
		real := make([]*Type, 0, len(u.real))
		for _, m := range u.real {
			if m.kind == KindShape {
				real = append(real, flattenShape(m)...)
			} else {
				real = append(real, m)
			}
		}
		result.real = dedupTypes(real)
	}
	return result
}

type shapeBucket struct {
	value  *Type
	hasInt bool
	hasStr bool
}

// shapeListLike reports whether every key is an int and the keys cover
// exactly 0..n-1 with the optional fields trailing the required ones, the
// same contiguity rule the casting engine applies to shape-to-list queries.
func shapeListLike(fields []ShapeField) bool {
	sorted := make([]*ShapeField, 0, len(fields))
	for i := range fields {
		if !fields[i].Key.IsInt {
			return false
		}
		sorted = append(sorted, &fields[i])
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key.Int < sorted[j].Key.Int })
	seenOptional := false
	for i, f := range sorted {
		if f.Key.Int != int64(i) {
			return false
		}
		if f.Optional {
			seenOptional = true
		} else if seenOptional {
			return false
		}
	}
	return true
}

func flattenShape(t *Type) []*Type {
	if len(t.fields) == 0 {
		return []*Type{New(KindArray).WithNullable(t.nullable)}
	}
	asList := shapeListLike(t.fields)

	order := make([]string, 0, len(t.fields))
	buckets := make(map[string]*shapeBucket, len(t.fields))
	for i := range t.fields {
		f := &t.fields[i]
		for _, member := range f.Value.Types() {
			key := member.structuralKey()
			b, ok := buckets[key]
			if !ok {
				b = &shapeBucket{value: member}
				buckets[key] = b
				order = append(order, key)
			}
			if f.Key.IsInt {
				b.hasInt = true
			} else {
				b.hasStr = true
			}
		}
	}

	out := make([]*Type, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		var kk KeyKind
		switch {
		case b.hasInt && b.hasStr:
			kk = KeyMixed
		case b.hasInt && asList:
			kk = KeyList
		case b.hasInt:
			kk = KeyInt
		default:
			kk = KeyString
		}
		out = append(out, NewGenericArray(NewUnion(b.value), kk).WithNullable(t.nullable))
	}
	return out
}

func hasShape(ts []*Type) bool {
	for _, t := range ts {
		if t.kind == KindShape {
			return true
		}
	}
	return false
}
