package cast

import "tycho/internal/types"

// WeaklyOverlaps reports whether a and b could describe at least one common
// value. Symmetric and independent of the coercion config; used to flag
// comparisons that are always true or always false.
func WeaklyOverlaps(a, b *types.Type) bool {
	if a == nil || b == nil {
		return false
	}
	if emptyDomain(a) || emptyDomain(b) {
		return false
	}
	if a.Nullable() && b.Nullable() {
		// both include null
		return true
	}
	m := mode{}
	return m.check(a, b) || m.check(b, a)
}

// emptyDomain reports a type with no values at all. ?never still holds null.
func emptyDomain(t *types.Type) bool {
	return t.Kind() == types.KindNever && !t.Nullable()
}

// UnionWeaklyOverlaps reports whether any member pair of the two unions
// overlaps. Empty unions carry no information and overlap everything.
func UnionWeaklyOverlaps(a, b types.Union) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return true
	}
	for _, s := range a.Types() {
		for _, d := range b.Types() {
			if WeaklyOverlaps(s, d) {
				return true
			}
		}
	}
	return false
}
