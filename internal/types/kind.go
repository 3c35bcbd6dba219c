package types

import "fmt"

// Kind enumerates every type shape the annotation grammar can express.
// The enumeration is closed: the casting engine and the printer switch over
// it exhaustively, so adding a kind is a compile-time-visible change.
type Kind uint8

const (
	KindInvalid Kind = iota

	// top types and refinements
	KindMixed
	KindNonNullMixed
	KindNonEmptyMixed

	// scalars
	KindNull
	KindVoid
	KindNever
	KindBool
	KindTrue
	KindFalse
	KindInt
	KindNonZeroInt
	KindFloat
	KindString
	KindNonEmptyString
	KindObject
	KindResource
	KindCallable
	KindIterable
	KindArray
	KindStatic
	KindClassString

	// exact-value scalars
	KindLitInt
	KindLitFloat
	KindLitString

	// structured shapes
	KindClass
	KindGenericArray
	KindShape
	KindIterableOf
	KindClosure
	KindTemplate
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindMixed:
		return "mixed"
	case KindNonNullMixed:
		return "non-null-mixed"
	case KindNonEmptyMixed:
		return "non-empty-mixed"
	case KindNull:
		return "null"
	case KindVoid:
		return "void"
	case KindNever:
		return "never"
	case KindBool:
		return "bool"
	case KindTrue:
		return "true"
	case KindFalse:
		return "false"
	case KindInt:
		return "int"
	case KindNonZeroInt:
		return "non-zero-int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindNonEmptyString:
		return "non-empty-string"
	case KindObject:
		return "object"
	case KindResource:
		return "resource"
	case KindCallable:
		return "callable"
	case KindIterable:
		return "iterable"
	case KindArray:
		return "array"
	case KindStatic:
		return "static"
	case KindClassString:
		return "class-string"
	case KindLitInt:
		return "literal-int"
	case KindLitFloat:
		return "literal-float"
	case KindLitString:
		return "literal-string"
	case KindClass:
		return "class"
	case KindGenericArray:
		return "generic-array"
	case KindShape:
		return "array-shape"
	case KindIterableOf:
		return "iterable-of"
	case KindClosure:
		return "closure"
	case KindTemplate:
		return "template"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsLiteral reports whether the kind denotes one exact scalar value.
func (k Kind) IsLiteral() bool {
	switch k {
	case KindLitInt, KindLitFloat, KindLitString, KindTrue, KindFalse:
		return true
	default:
		return false
	}
}

// IsArrayLike reports whether values of the kind are arrays.
func (k Kind) IsArrayLike() bool {
	switch k {
	case KindArray, KindGenericArray, KindShape:
		return true
	default:
		return false
	}
}

// IsMixedFamily reports whether the kind is mixed or one of its refinements.
func (k Kind) IsMixedFamily() bool {
	switch k {
	case KindMixed, KindNonNullMixed, KindNonEmptyMixed:
		return true
	default:
		return false
	}
}

// KeyKind classifies the key dimension of a generic array.
type KeyKind uint8

const (
	// KeyMixed accepts both int and string keys.
	KeyMixed KeyKind = iota
	KeyInt
	KeyString
	// KeyList means int keys forming a contiguous run 0..n-1.
	KeyList
)

func (k KeyKind) String() string {
	switch k {
	case KeyMixed:
		return "mixed"
	case KeyInt:
		return "int"
	case KeyString:
		return "string"
	case KeyList:
		return "list"
	default:
		return fmt.Sprintf("KeyKind(%d)", k)
	}
}
