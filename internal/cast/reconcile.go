package cast

import "tycho/internal/types"

// Reconcile merges a declared/documented pair into the union the analysis
// should use. The declared side is authoritative about runtime values, so
// everything it allows must be acceptable to the documented side; when that
// holds the documented union (the more precise one) wins, carrying the
// declared set as its real companion. Otherwise the declared union is
// returned unchanged and ok is false so the caller can report the annotation
// as narrower than the signature.
func Reconcile(a types.Annotated) (types.Union, bool) {
	if !a.HasDeclared() {
		return a.Documented(), true
	}
	if a.Documented().IsEmpty() {
		return a.Declared(), true
	}
	if !UnionCanCastDeclared(a.Declared(), a.Documented()) {
		return a.Declared(), false
	}
	return a.Effective(), true
}
