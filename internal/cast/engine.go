package cast

import (
	"sort"
	"strconv"

	"tycho/internal/types"
)

// mode selects how permissive one compatibility query is. strict answers the
// pure subtype question. Otherwise int-to-float widening and a lenient mixed
// source are allowed, and coerce additionally activates the scalar coercion
// rules gated by Config.
type mode struct {
	strict bool
	coerce bool
}

// IsSubtype reports whether every value describable by a is also describable
// by b. Independent of configuration; total for well-formed inputs.
func IsSubtype(a, b *types.Type) bool {
	return mode{strict: true}.check(a, b)
}

// CanCast reports whether a value of type a may be used where b is expected.
func CanCast(a, b *types.Type, cfg Config) bool {
	return mode{coerce: cfg.AllowImplicitScalarCast}.check(a, b)
}

// CanCastDeclared is the stricter variant used when b comes from a declared
// signature: scalar coercion never applies, widening still does.
func CanCastDeclared(a, b *types.Type) bool {
	return mode{}.check(a, b)
}

// UnionIsSubtype reports whether every member of a is a subtype of some
// member of b. Empty unions carry no information and are permissive.
func UnionIsSubtype(a, b types.Union) bool {
	return mode{strict: true}.union(a, b)
}

// UnionCanCast reports whether every member of a casts to some member of b.
func UnionCanCast(a, b types.Union, cfg Config) bool {
	return mode{coerce: cfg.AllowImplicitScalarCast}.union(a, b)
}

// UnionCanCastDeclared is the declared-target variant of UnionCanCast.
func UnionCanCastDeclared(a, b types.Union) bool {
	return mode{}.union(a, b)
}

func (m mode) union(src, dst types.Union) bool {
	if src.IsEmpty() || dst.IsEmpty() {
		return true
	}
	for _, s := range src.Types() {
		if !m.typeToUnion(s, dst) {
			return false
		}
	}
	return true
}

func (m mode) typeToUnion(s *types.Type, dst types.Union) bool {
	for _, d := range dst.Types() {
		if m.check(s, d) {
			return true
		}
	}
	return false
}

func (m mode) check(a, b *types.Type) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Equal(b) {
		return true
	}
	if a.Kind() == types.KindNever && !a.Nullable() {
		// bottom type: no values, so every target vacuously accepts it
		return true
	}
	if !m.strict && a.Kind().IsMixedFamily() {
		// the analyzed runtime lets a mixed value flow anywhere; only the
		// pure subtype question says no
		return true
	}
	if a.Kind() == types.KindNull {
		return acceptsNull(b)
	}
	if a.Nullable() {
		if !acceptsNull(b) {
			return false
		}
		return m.check(a.WithNullable(false), b.WithNullable(false))
	}
	return m.body(a, b.WithNullable(false))
}

func acceptsNull(b *types.Type) bool {
	if b.Nullable() {
		return true
	}
	switch b.Kind() {
	case types.KindNull, types.KindMixed:
		return true
	default:
		return false
	}
}

// body is the kind-by-kind compatibility matrix. Both sides are non-nullable
// here and the trivial cases (equality, bottom, null) are already resolved.
func (m mode) body(a, b *types.Type) bool {
	if a.Equal(b) {
		return true
	}

	switch b.Kind() {
	case types.KindMixed:
		return true
	case types.KindNonNullMixed:
		return a.Kind() != types.KindMixed && a.Kind() != types.KindVoid
	case types.KindNonEmptyMixed:
		return satisfiesNonEmpty(a)
	}

	switch a.Kind() {
	case types.KindMixed, types.KindNonNullMixed, types.KindNonEmptyMixed:
		// refinements fold upward within the family, never into a concrete kind
		return false

	case types.KindTrue, types.KindFalse:
		return b.Kind() == types.KindBool

	case types.KindLitInt:
		switch b.Kind() {
		case types.KindInt:
			return true
		case types.KindNonZeroInt:
			return a.LitInt() != 0
		case types.KindFloat:
			return !m.strict
		case types.KindLitFloat:
			return !m.strict && float64(a.LitInt()) == b.LitFloat()
		}
		return false

	case types.KindNonZeroInt:
		switch b.Kind() {
		case types.KindInt:
			return true
		case types.KindFloat:
			return !m.strict
		}
		return false

	case types.KindInt:
		return !m.strict && b.Kind() == types.KindFloat

	case types.KindLitFloat:
		return b.Kind() == types.KindFloat

	case types.KindLitString:
		switch b.Kind() {
		case types.KindString:
			return true
		case types.KindNonEmptyString:
			return a.LitString() != ""
		}
		if m.coerce {
			return m.coerceLitString(a, b)
		}
		return false

	case types.KindNonEmptyString, types.KindClassString:
		return b.Kind() == types.KindString

	case types.KindStatic:
		return b.Kind() == types.KindObject

	case types.KindClass:
		return m.classTo(a, b)

	case types.KindArray:
		return b.Kind() == types.KindIterable

	case types.KindGenericArray:
		return m.genericArrayTo(a, b)

	case types.KindShape:
		return m.shapeTo(a, b)

	case types.KindIterableOf:
		return m.iterableTo(a, b)

	case types.KindClosure:
		return m.closureTo(a, b)
	}

	// bool, string, void, object, resource, callable, iterable, template:
	// only identity and the mixed family above apply
	return false
}

// satisfiesNonEmpty reports whether no value of a is one of the empty-ish
// values: null, false, zero, the empty string, an empty container.
func satisfiesNonEmpty(a *types.Type) bool {
	switch a.Kind() {
	case types.KindTrue, types.KindNonZeroInt, types.KindNonEmptyString, types.KindNonEmptyMixed:
		return true
	case types.KindLitInt:
		return a.LitInt() != 0
	case types.KindLitFloat:
		return a.LitFloat() != 0
	case types.KindLitString:
		s := a.LitString()
		return s != "" && s != "0"
	case types.KindClass, types.KindObject, types.KindStatic, types.KindResource, types.KindClosure:
		return true
	case types.KindShape:
		for _, f := range a.Fields() {
			if !f.Optional {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (m mode) classTo(a, b *types.Type) bool {
	switch b.Kind() {
	case types.KindObject:
		return true
	case types.KindClass:
	default:
		return false
	}
	if a.Name() != b.Name() {
		// class hierarchies live in the caller's symbol table; here two
		// distinct names are simply distinct types
		return false
	}
	// an instantiation may stand in for the erased form
	if len(b.TypeArgs()) == 0 {
		return true
	}
	if len(a.TypeArgs()) != len(b.TypeArgs()) {
		return false
	}
	for i := range a.TypeArgs() {
		if !m.union(a.TypeArgs()[i], b.TypeArgs()[i]) {
			return false
		}
	}
	return true
}

func (m mode) genericArrayTo(a, b *types.Type) bool {
	switch b.Kind() {
	case types.KindArray, types.KindIterable:
		return true
	case types.KindGenericArray:
		return keyKindCompatible(a.KeyKind(), b.KeyKind()) && m.union(a.Elem(), b.Elem())
	case types.KindIterableOf:
		return m.keyKindToUnion(a.KeyKind(), b.IterKey()) && m.union(a.Elem(), b.Elem())
	default:
		return false
	}
}

// keyKindCompatible reports whether keys of kind a are acceptable where keys
// of kind b are expected. Mixed absorbs either concrete kind; a list is the
// int-keyed refinement with contiguous zero-based keys.
func keyKindCompatible(a, b types.KeyKind) bool {
	if a == b || b == types.KeyMixed {
		return true
	}
	return a == types.KeyList && b == types.KeyInt
}

func (m mode) keyKindToUnion(k types.KeyKind, dst types.Union) bool {
	if dst.IsEmpty() {
		return true
	}
	var keys []*types.Type
	switch k {
	case types.KeyInt, types.KeyList:
		keys = []*types.Type{types.New(types.KindInt)}
	case types.KeyString:
		keys = []*types.Type{types.New(types.KindString)}
	default:
		keys = []*types.Type{types.New(types.KindInt), types.New(types.KindString)}
	}
	for _, kt := range keys {
		if !m.typeToUnion(kt, dst) {
			return false
		}
	}
	return true
}

func (m mode) shapeTo(a, b *types.Type) bool {
	switch b.Kind() {
	case types.KindArray, types.KindIterable:
		return true

	case types.KindGenericArray:
		if !shapeKeysFit(a.Fields(), b.KeyKind()) {
			return false
		}
		for _, f := range a.Fields() {
			if !m.union(f.Value, b.Elem()) {
				return false
			}
		}
		return true

	case types.KindIterableOf:
		dstKey := b.IterKey()
		for _, f := range a.Fields() {
			if !dstKey.IsEmpty() {
				var kt *types.Type
				if f.Key.IsInt {
					kt = types.NewLitInt(f.Key.Int)
				} else {
					kt = types.NewLitString(f.Key.Str)
				}
				if !m.typeToUnion(kt, dstKey) {
					return false
				}
			}
			if !m.union(f.Value, b.Elem()) {
				return false
			}
		}
		return true

	case types.KindShape:
		return m.shapeToShape(a, b)

	default:
		return false
	}
}

// shapeKeysFit checks field keys against a key kind. For a list the int keys
// must be exactly 0..n-1, with any optional fields forming a suffix of the
// run: once a key may be absent, no required key can follow it.
func shapeKeysFit(fields []types.ShapeField, k types.KeyKind) bool {
	switch k {
	case types.KeyMixed:
		return true

	case types.KeyInt:
		for _, f := range fields {
			if !f.Key.IsInt {
				return false
			}
		}
		return true

	case types.KeyString:
		for _, f := range fields {
			if f.Key.IsInt {
				return false
			}
		}
		return true

	case types.KeyList:
		keys := make([]int64, 0, len(fields))
		optional := make(map[int64]bool, len(fields))
		for _, f := range fields {
			if !f.Key.IsInt {
				return false
			}
			keys = append(keys, f.Key.Int)
			optional[f.Key.Int] = f.Optional
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		sawOptional := false
		for i, key := range keys {
			if key != int64(i) {
				return false
			}
			if optional[key] {
				sawOptional = true
			} else if sawOptional {
				return false
			}
		}
		return true
	}
	return false
}

func (m mode) shapeToShape(a, b *types.Type) bool {
	src := make(map[string]types.ShapeField, len(a.Fields()))
	for _, f := range a.Fields() {
		src[shapeKeyID(f.Key)] = f
	}
	for _, want := range b.Fields() {
		got, ok := src[shapeKeyID(want.Key)]
		if !ok {
			if want.Optional {
				continue
			}
			return false
		}
		if !want.Optional && got.Optional {
			// the source may omit the field, the target may not
			return false
		}
		if !m.union(got.Value, want.Value) {
			return false
		}
	}
	return true
}

func shapeKeyID(key types.ShapeKey) string {
	if key.IsInt {
		return strconv.FormatInt(key.Int, 10)
	}
	return key.Str
}

func (m mode) iterableTo(a, b *types.Type) bool {
	switch b.Kind() {
	case types.KindIterable:
		return true
	case types.KindIterableOf:
		return m.union(a.IterKey(), b.IterKey()) && m.union(a.Elem(), b.Elem())
	default:
		return false
	}
}

func (m mode) closureTo(a, b *types.Type) bool {
	switch b.Kind() {
	case types.KindCallable:
		return true
	case types.KindClosure:
	default:
		return false
	}
	// a Closure is always a callable; the reverse does not hold
	if a.FnStyle() == types.FnCallable && b.FnStyle() == types.FnClosure {
		return false
	}
	if b.Fn() == nil {
		return true
	}
	if a.Fn() == nil {
		// an unknown signature cannot promise a specific one
		return false
	}
	return m.signature(a.Fn(), b.Fn())
}

// signature checks that a closure declared as src may be used where dst is
// expected: parameters are contravariant, the return is covariant. Callers
// follow dst's shape, so src must accept every argument pattern dst permits
// and must not require arguments dst does not guarantee.
func (m mode) signature(src, dst *types.Signature) bool {
	if requiredParams(src) > requiredParams(dst) {
		return false
	}
	for i := range dst.Params {
		want := &dst.Params[i]
		got := paramAt(src, i)
		if got == nil {
			if !want.Variadic {
				// a fixed parameter the source cannot accept
				return false
			}
			continue
		}
		if want.Variadic && !got.Variadic {
			return false
		}
		if got.ByRef != want.ByRef {
			return false
		}
		if !m.union(want.Type, got.Type) {
			return false
		}
	}
	if dst.Return.IsEmpty() {
		return true
	}
	if src.Return.IsEmpty() {
		return !m.strict
	}
	return m.union(src.Return, dst.Return)
}

func requiredParams(sig *types.Signature) int {
	n := 0
	for i := range sig.Params {
		if !sig.Params[i].Optional && !sig.Params[i].Variadic {
			n++
		}
	}
	return n
}

func paramAt(sig *types.Signature, i int) *types.Param {
	if i < len(sig.Params) {
		return &sig.Params[i]
	}
	if n := len(sig.Params); n > 0 && sig.Params[n-1].Variadic {
		return &sig.Params[n-1]
	}
	return nil
}
