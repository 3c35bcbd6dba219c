package types

import "sync"

// Builtins stores shared instances for the payload-free kinds.
type Builtins struct {
	Mixed          *Type
	NonNullMixed   *Type
	NonEmptyMixed  *Type
	Null           *Type
	Void           *Type
	Never          *Type
	Bool           *Type
	True           *Type
	False          *Type
	Int            *Type
	NonZeroInt     *Type
	Float          *Type
	String         *Type
	NonEmptyString *Type
	Object         *Type
	Resource       *Type
	Callable       *Type
	Iterable       *Type
	Array          *Type
	Static         *Type
	ClassString    *Type
	Closure        *Type
}

// Interner hands out shared instances for structurally-equal descriptors.
// It is an explicit, injectable cache: tests construct isolated instances
// and assert hit behavior deterministically, nothing hides in package state.
//
// Reads and inserts are safe from concurrent analysis workers. Losing a race
// would only cost memory, never correctness, but the lock keeps the
// "equal types are the same object" invariant exact.
type Interner struct {
	mu       sync.RWMutex
	index    map[string]*Type
	builtins Builtins
}

// NewInterner constructs an interner seeded with the payload-free kinds.
func NewInterner() *Interner {
	in := &Interner{index: make(map[string]*Type, 64)}
	b := &in.builtins
	b.Mixed = in.Intern(New(KindMixed))
	b.NonNullMixed = in.Intern(New(KindNonNullMixed))
	b.NonEmptyMixed = in.Intern(New(KindNonEmptyMixed))
	b.Null = in.Intern(New(KindNull))
	b.Void = in.Intern(New(KindVoid))
	b.Never = in.Intern(New(KindNever))
	b.Bool = in.Intern(New(KindBool))
	b.True = in.Intern(New(KindTrue))
	b.False = in.Intern(New(KindFalse))
	b.Int = in.Intern(New(KindInt))
	b.NonZeroInt = in.Intern(New(KindNonZeroInt))
	b.Float = in.Intern(New(KindFloat))
	b.String = in.Intern(New(KindString))
	b.NonEmptyString = in.Intern(New(KindNonEmptyString))
	b.Object = in.Intern(New(KindObject))
	b.Resource = in.Intern(New(KindResource))
	b.Callable = in.Intern(New(KindCallable))
	b.Iterable = in.Intern(New(KindIterable))
	b.Array = in.Intern(New(KindArray))
	b.Static = in.Intern(New(KindStatic))
	b.ClassString = in.Intern(New(KindClassString))
	b.Closure = in.Intern(NewClosure(nil, FnClosure))
	return in
}

// Builtins returns the shared instances for primitive kinds.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern returns the canonical instance for the descriptor, storing t when
// it is the first of its shape.
func (in *Interner) Intern(t *Type) *Type {
	if t == nil {
		return nil
	}
	key := t.structuralKey()

	in.mu.RLock()
	canonical, ok := in.index[key]
	in.mu.RUnlock()
	if ok {
		return canonical
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if canonical, ok = in.index[key]; ok {
		return canonical
	}
	in.index[key] = t
	return t
}

// Lookup returns the canonical instance for an equal descriptor, if one was
// interned before.
func (in *Interner) Lookup(t *Type) (*Type, bool) {
	if t == nil {
		return nil, false
	}
	in.mu.RLock()
	defer in.mu.RUnlock()
	canonical, ok := in.index[t.structuralKey()]
	return canonical, ok
}

// Size returns the number of distinct interned descriptors.
func (in *Interner) Size() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.index)
}
