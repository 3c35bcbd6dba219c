package types

import "strings"

// Union is an ordered, duplicate-free set of types: "this expression may
// have any of these types". Order is preserved for display determinism.
//
// A union carries a second, parallel set: the "real" types derived from a
// language-checked signature, as opposed to the looser annotation-derived
// set. The real set is authoritative about what can exist at runtime; the
// annotation set may refine it with literals, templates and generics.
//
// The zero value is the empty union ("no information known"). Unions are
// immutable: every operation returns a new value.
type Union struct {
	types []*Type
	real  []*Type
}

// NewUnion builds a deduplicated union from the given members.
func NewUnion(members ...*Type) Union {
	return Union{types: dedupTypes(members)}
}

// NewUnionWithReal builds a union carrying a separate real (signature) set.
func NewUnionWithReal(members, real []*Type) Union {
	return Union{types: dedupTypes(members), real: dedupTypes(real)}
}

// Types returns the members in order. Do not modify the returned slice.
func (u Union) Types() []*Type { return u.types }

// RealTypes returns the declared/signature companion set.
func (u Union) RealTypes() []*Type { return u.real }

// WithRealTypes returns a union with the given real set attached.
func (u Union) WithRealTypes(real []*Type) Union {
	return Union{types: u.types, real: dedupTypes(real)}
}

func (u Union) IsEmpty() bool { return len(u.types) == 0 }

func (u Union) Len() int { return len(u.types) }

// Contains reports membership by value equality.
func (u Union) Contains(t *Type) bool {
	for _, m := range u.types {
		if m.Equal(t) {
			return true
		}
	}
	return false
}

// WithType returns a union extended by t; a no-op when t is already a member.
func (u Union) WithType(t *Type) Union {
	if u.Contains(t) {
		return u
	}
	out := make([]*Type, 0, len(u.types)+1)
	out = append(out, u.types...)
	out = append(out, t)
	return Union{types: out, real: u.real}
}

// WithoutType returns a union with every member equal to t removed.
func (u Union) WithoutType(t *Type) Union {
	if !u.Contains(t) {
		return u
	}
	out := make([]*Type, 0, len(u.types))
	for _, m := range u.types {
		if !m.Equal(t) {
			out = append(out, m)
		}
	}
	return Union{types: out, real: u.real}
}

// Union merges two unions, deduplicating while preserving first-seen order.
// Real sets merge the same way.
func (u Union) Union(other Union) Union {
	merged := make([]*Type, 0, len(u.types)+len(other.types))
	merged = append(merged, u.types...)
	merged = append(merged, other.types...)
	out := Union{types: dedupTypes(merged)}
	if len(u.real) > 0 || len(other.real) > 0 {
		mergedReal := make([]*Type, 0, len(u.real)+len(other.real))
		mergedReal = append(mergedReal, u.real...)
		mergedReal = append(mergedReal, other.real...)
		out.real = dedupTypes(mergedReal)
	}
	return out
}

// HasLiterals reports whether any member denotes one exact value.
func (u Union) HasLiterals() bool {
	for _, m := range u.types {
		if m.Kind().IsLiteral() {
			return true
		}
	}
	return false
}

// AsNonLiteralType widens every literal member to its base scalar kind,
// preserving nullability. Used wherever exact values must not leak into
// inferred defaults.
func (u Union) AsNonLiteralType() Union {
	if !u.HasLiterals() {
		return u
	}
	out := make([]*Type, 0, len(u.types))
	for _, m := range u.types {
		out = append(out, m.WidenLiteral())
	}
	return Union{types: dedupTypes(out), real: u.real}
}

// Equal reports set equality of the annotation members (real sets are not
// compared). Order is irrelevant.
func (u Union) Equal(other Union) bool {
	if len(u.types) != len(other.types) {
		return false
	}
	for _, m := range u.types {
		if !other.Contains(m) {
			return false
		}
	}
	return true
}

// String prints the members joined by '|'. The empty union prints as "".
func (u Union) String() string {
	if len(u.types) == 0 {
		return ""
	}
	var b strings.Builder
	for i, m := range u.types {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(m.String())
	}
	return b.String()
}

func dedupTypes(in []*Type) []*Type {
	if len(in) == 0 {
		return nil
	}
	out := make([]*Type, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		if t == nil {
			continue
		}
		key := t.structuralKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
