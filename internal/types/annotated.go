package types

// Annotated is the pair of unions every typed element (property, parameter,
// return, constant) carries: the declared type from the language-checked
// signature and the documented type from free-form annotation text.
//
// Invariant: the declared type is authoritative when present. The documented
// type may refine it with literals, templates and generics the signature
// cannot express, but must still accept everything the declared type allows;
// the casting engine's Reconcile enforces that at its single call
// site, not the constructor.
type Annotated struct {
	declared   Union
	documented Union
}

// NewAnnotated pairs a declared (signature) union with a documented
// (annotation) union. Either side may be empty.
func NewAnnotated(declared, documented Union) Annotated {
	return Annotated{declared: declared, documented: documented}
}

// Declared returns the signature-derived union, trusted as exact.
func (a Annotated) Declared() Union { return a.declared }

// Documented returns the annotation-derived union.
func (a Annotated) Documented() Union { return a.documented }

// HasDeclared reports whether a signature type was present at all.
func (a Annotated) HasDeclared() bool { return !a.declared.IsEmpty() }

// Effective returns the view the analyzer should reason with: the
// documented union enriched with the declared set as its real companion
// when both exist, the non-empty side otherwise.
func (a Annotated) Effective() Union {
	switch {
	case a.declared.IsEmpty():
		return a.documented
	case a.documented.IsEmpty():
		return a.declared
	default:
		return a.documented.WithRealTypes(a.declared.Types())
	}
}
