package types

// Type is an immutable descriptor for one concrete type shape plus a
// nullability flag. Two Types are equal iff their (kind, payload, nullable)
// tuples are equal; an Interner makes equal Types share one instance.
//
// All fields are unexported: a *Type handed out once may be referenced from
// the interner and from arbitrarily many unions, so it must never change.
// Derived values (nullable variant, widened literal) are new instances.
type Type struct {
	kind     Kind
	nullable bool

	// exact-value payloads (KindLitInt / KindLitFloat / KindLitString)
	litInt   int64
	litFloat float64
	litStr   string

	// KindClass: fully-qualified name; KindTemplate: template name
	name string
	// KindClass generic arguments, in declaration order
	args []Union

	// KindGenericArray: element union + key classification
	elem *Union
	key  KeyKind

	// KindIterableOf: key and value unions
	iterKey *Union

	// KindShape: ordered fields
	fields []ShapeField

	// KindClosure: nil means "any signature" (a bare Closure / callable)
	fn      *Signature
	fnStyle FnStyle
}

// ShapeKey is either an int or a string key of an array shape.
type ShapeKey struct {
	IsInt bool
	Int   int64
	Str   string
}

// ShapeField is one entry of an array shape. Optional fields may be absent
// at runtime.
type ShapeField struct {
	Key      ShapeKey
	Value    Union
	Optional bool
}

// FnStyle distinguishes the two spellings of a function-capability type.
// A Closure is always a callable; the reverse does not hold.
type FnStyle uint8

const (
	FnClosure FnStyle = iota
	FnCallable
)

// Param is one closure parameter. Order matters; a variadic parameter must
// be last.
type Param struct {
	Name     string // without the leading '$', may be empty
	Type     Union
	ByRef    bool
	Variadic bool
	Optional bool
}

// Signature is the parameter/return shape of a closure declaration.
type Signature struct {
	Params []Param
	Return Union // empty union means the permissive default
	// Bound marks signatures that keep a static binding to the scope they
	// were declared in.
	Bound bool
}

// New constructs a simple (payload-free) type of the given kind.
func New(kind Kind) *Type {
	return &Type{kind: kind}
}

// NewLitInt constructs the type of one exact integer value.
func NewLitInt(v int64) *Type {
	return &Type{kind: KindLitInt, litInt: v}
}

// NewLitFloat constructs the type of one exact float value.
func NewLitFloat(v float64) *Type {
	return &Type{kind: KindLitFloat, litFloat: v}
}

// NewLitString constructs the type of one exact string value.
func NewLitString(v string) *Type {
	return &Type{kind: KindLitString, litStr: v}
}

// NewClass constructs a class reference with optional generic arguments.
// The name must already be fully qualified.
func NewClass(fqn string, args []Union) *Type {
	return &Type{kind: KindClass, name: fqn, args: cloneUnions(args)}
}

// NewTemplate constructs a reference to a template parameter of the
// surrounding generic context.
func NewTemplate(name string) *Type {
	return &Type{kind: KindTemplate, name: name}
}

// NewGenericArray constructs array<K,V> (or T[] / list<T> depending on key).
func NewGenericArray(elem Union, key KeyKind) *Type {
	e := elem
	return &Type{kind: KindGenericArray, elem: &e, key: key}
}

// NewShape constructs a fixed-field array shape. Field order is preserved.
func NewShape(fields []ShapeField) *Type {
	out := make([]ShapeField, len(fields))
	copy(out, fields)
	return &Type{kind: KindShape, fields: out}
}

// NewIterableOf constructs iterable<K,V>.
func NewIterableOf(key, value Union) *Type {
	k, v := key, value
	return &Type{kind: KindIterableOf, iterKey: &k, elem: &v}
}

// NewClosure constructs a function-capability type. A nil signature means
// the bare form with no declared parameters or return.
func NewClosure(fn *Signature, style FnStyle) *Type {
	return &Type{kind: KindClosure, fn: fn, fnStyle: style}
}

// Accessors -----------------------------------------------------------------

func (t *Type) Kind() Kind     { return t.kind }
func (t *Type) Nullable() bool { return t.nullable }

// Name returns the FQN of a class or the name of a template.
func (t *Type) Name() string { return t.name }

// TypeArgs returns the generic arguments of a class reference.
func (t *Type) TypeArgs() []Union { return t.args }

// Elem returns the value union of a generic array or iterable.
func (t *Type) Elem() Union {
	if t.elem == nil {
		return Union{}
	}
	return *t.elem
}

// KeyKind returns the key classification of a generic array.
func (t *Type) KeyKind() KeyKind { return t.key }

// IterKey returns the key union of iterable<K,V>.
func (t *Type) IterKey() Union {
	if t.iterKey == nil {
		return Union{}
	}
	return *t.iterKey
}

// Fields returns the ordered fields of an array shape.
func (t *Type) Fields() []ShapeField { return t.fields }

// Fn returns the closure signature, nil for the bare form.
func (t *Type) Fn() *Signature { return t.fn }

// FnStyle returns the spelling family of a closure type.
func (t *Type) FnStyle() FnStyle { return t.fnStyle }

func (t *Type) LitInt() int64     { return t.litInt }
func (t *Type) LitFloat() float64 { return t.litFloat }
func (t *Type) LitString() string { return t.litStr }

// Derivations ---------------------------------------------------------------

// WithNullable returns a copy with the nullability flag set as requested.
// Returns the receiver when nothing changes.
func (t *Type) WithNullable(nullable bool) *Type {
	if t.nullable == nullable {
		return t
	}
	clone := *t
	clone.nullable = nullable
	return &clone
}

// WidenLiteral returns the base scalar kind of a literal type, preserving
// nullability. Non-literals are returned unchanged.
func (t *Type) WidenLiteral() *Type {
	var base Kind
	switch t.kind {
	case KindLitInt:
		base = KindInt
	case KindLitFloat:
		base = KindFloat
	case KindLitString:
		base = KindString
	case KindTrue, KindFalse:
		base = KindBool
	default:
		return t
	}
	return &Type{kind: base, nullable: t.nullable}
}

// Equal reports value equality of two type descriptors.
func (t *Type) Equal(other *Type) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	return t.structuralKey() == other.structuralKey()
}

func cloneUnions(in []Union) []Union {
	if len(in) == 0 {
		return nil
	}
	out := make([]Union, len(in))
	copy(out, in)
	return out
}
