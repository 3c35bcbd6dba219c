package types

// EraseRealTypeSetRecursively drops the declared/signature companion set
// from this union and from every union nested inside container members.
// Used when a value is no longer provably exact and only the looser
// annotation view may be trusted.
func (u Union) EraseRealTypeSetRecursively() Union {
	out := make([]*Type, 0, len(u.types))
	for _, m := range u.types {
		out = append(out, eraseRealInType(m))
	}
	return Union{types: dedupTypes(out)}
}

func eraseRealInType(t *Type) *Type {
	switch t.kind {
	case KindClass:
		if len(t.args) == 0 {
			return t
		}
		args := make([]Union, len(t.args))
		for i := range t.args {
			args[i] = t.args[i].EraseRealTypeSetRecursively()
		}
		return NewClass(t.name, args).WithNullable(t.nullable)

	case KindGenericArray:
		return NewGenericArray(t.Elem().EraseRealTypeSetRecursively(), t.key).WithNullable(t.nullable)

	case KindIterableOf:
		return NewIterableOf(
			t.IterKey().EraseRealTypeSetRecursively(),
			t.Elem().EraseRealTypeSetRecursively(),
		).WithNullable(t.nullable)

	case KindShape:
		fields := make([]ShapeField, len(t.fields))
		for i, f := range t.fields {
			fields[i] = ShapeField{
				Key:      f.Key,
				Value:    f.Value.EraseRealTypeSetRecursively(),
				Optional: f.Optional,
			}
		}
		return NewShape(fields).WithNullable(t.nullable)

	case KindClosure:
		if t.fn == nil {
			return t
		}
		params := make([]Param, len(t.fn.Params))
		for i, p := range t.fn.Params {
			params[i] = p
			params[i].Type = p.Type.EraseRealTypeSetRecursively()
		}
		fn := &Signature{
			Params: params,
			Return: t.fn.Return.EraseRealTypeSetRecursively(),
			Bound:  t.fn.Bound,
		}
		return NewClosure(fn, t.fnStyle).WithNullable(t.nullable)

	default:
		return t
	}
}

// WithStaticResolvedInContext rewrites every "static" placeholder, including
// placeholders nested in containers, to the concrete enclosing class. The
// placeholder is meaningless outside the declaration it appears in, so
// callers resolve it before handing the union anywhere else.
func (u Union) WithStaticResolvedInContext(class *Type) Union {
	if class == nil {
		return u
	}
	out := make([]*Type, 0, len(u.types))
	for _, m := range u.types {
		out = append(out, resolveStaticInType(m, class))
	}
	result := Union{types: dedupTypes(out)}
	if len(u.real) > 0 {
		real := make([]*Type, 0, len(u.real))
		for _, m := range u.real {
			real = append(real, resolveStaticInType(m, class))
		}
		result.real = dedupTypes(real)
	}
	return result
}

func resolveStaticInType(t *Type, class *Type) *Type {
	switch t.kind {
	case KindStatic:
		return class.WithNullable(t.nullable || class.nullable)

	case KindClass:
		if len(t.args) == 0 {
			return t
		}
		args := make([]Union, len(t.args))
		for i := range t.args {
			args[i] = t.args[i].WithStaticResolvedInContext(class)
		}
		return NewClass(t.name, args).WithNullable(t.nullable)

	case KindGenericArray:
		return NewGenericArray(t.Elem().WithStaticResolvedInContext(class), t.key).WithNullable(t.nullable)

	case KindIterableOf:
		return NewIterableOf(
			t.IterKey().WithStaticResolvedInContext(class),
			t.Elem().WithStaticResolvedInContext(class),
		).WithNullable(t.nullable)

	case KindShape:
		fields := make([]ShapeField, len(t.fields))
		for i, f := range t.fields {
			fields[i] = ShapeField{
				Key:      f.Key,
				Value:    f.Value.WithStaticResolvedInContext(class),
				Optional: f.Optional,
			}
		}
		return NewShape(fields).WithNullable(t.nullable)

	case KindClosure:
		if t.fn == nil {
			return t
		}
		params := make([]Param, len(t.fn.Params))
		for i, p := range t.fn.Params {
			params[i] = p
			params[i].Type = p.Type.WithStaticResolvedInContext(class)
		}
		fn := &Signature{
			Params: params,
			Return: t.fn.Return.WithStaticResolvedInContext(class),
			Bound:  t.fn.Bound,
		}
		return NewClosure(fn, t.fnStyle).WithNullable(t.nullable)

	default:
		return t
	}
}
