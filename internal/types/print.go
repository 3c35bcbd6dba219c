package types

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders the canonical spelling of the type. The result reparses to
// an equal type: parse(t.String()) == {t} for every grammar-constructible t.
func (t *Type) String() string {
	var b strings.Builder
	if t.nullable {
		b.WriteByte('?')
	}
	t.printBody(&b)
	return b.String()
}

func (t *Type) printBody(b *strings.Builder) {
	switch t.kind {
	case KindInvalid,
		KindMixed, KindNonNullMixed, KindNonEmptyMixed,
		KindNull, KindVoid, KindNever,
		KindBool, KindTrue, KindFalse,
		KindInt, KindNonZeroInt, KindFloat,
		KindString, KindNonEmptyString,
		KindObject, KindResource, KindCallable, KindIterable,
		KindArray, KindStatic, KindClassString:
		b.WriteString(t.kind.String())

	case KindLitInt:
		b.WriteString(strconv.FormatInt(t.litInt, 10))

	case KindLitFloat:
		b.WriteString(formatFloatLiteral(t.litFloat))

	case KindLitString:
		b.WriteString(quoteStringLiteral(t.litStr))

	case KindClass:
		b.WriteString(t.name)
		printTypeArgs(b, t.args)

	case KindTemplate:
		b.WriteString(t.name)

	case KindGenericArray:
		t.printGenericArray(b)

	case KindShape:
		t.printShape(b)

	case KindIterableOf:
		b.WriteString("iterable<")
		if key := t.IterKey(); !key.IsEmpty() {
			b.WriteString(key.String())
			b.WriteByte(',')
		}
		b.WriteString(t.Elem().String())
		b.WriteByte('>')

	case KindClosure:
		t.printClosure(b)

	default:
		fmt.Fprintf(b, "Kind(%d)", t.kind)
	}
}

func (t *Type) printGenericArray(b *strings.Builder) {
	elem := t.Elem()
	switch t.key {
	case KeyMixed:
		// T[] sugar when the element prints unambiguously; otherwise group.
		if elem.Len() == 1 && !elem.Types()[0].Nullable() {
			b.WriteString(elem.Types()[0].String())
			b.WriteString("[]")
			return
		}
		b.WriteByte('(')
		b.WriteString(elem.String())
		b.WriteString(")[]")
	case KeyList:
		b.WriteString("list<")
		b.WriteString(elem.String())
		b.WriteByte('>')
	case KeyInt, KeyString:
		b.WriteString("array<")
		b.WriteString(t.key.String())
		b.WriteByte(',')
		b.WriteString(elem.String())
		b.WriteByte('>')
	}
}

func (t *Type) printShape(b *strings.Builder) {
	b.WriteString("array{")
	for i := range t.fields {
		f := &t.fields[i]
		if i > 0 {
			b.WriteByte(',')
		}
		if f.Key.IsInt {
			b.WriteString(strconv.FormatInt(f.Key.Int, 10))
		} else if isBareShapeKey(f.Key.Str) {
			b.WriteString(f.Key.Str)
		} else {
			b.WriteString(quoteStringLiteral(f.Key.Str))
		}
		if f.Optional {
			b.WriteByte('?')
		}
		b.WriteByte(':')
		b.WriteString(f.Value.String())
	}
	b.WriteByte('}')
}

func (t *Type) printClosure(b *strings.Builder) {
	if t.fnStyle == FnCallable {
		b.WriteString("callable")
	} else {
		b.WriteString("Closure")
	}
	if t.fn == nil {
		return
	}
	b.WriteByte('(')
	for i := range t.fn.Params {
		p := &t.fn.Params[i]
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.Type.String())
		if p.ByRef {
			b.WriteByte('&')
		}
		if p.Variadic {
			b.WriteString("...")
		}
		if p.Name != "" {
			b.WriteString(" $")
			b.WriteString(p.Name)
		}
		if p.Optional {
			b.WriteByte('=')
		}
	}
	b.WriteByte(')')
	if !t.fn.Return.IsEmpty() {
		b.WriteByte(':')
		b.WriteString(t.fn.Return.String())
	}
}

func printTypeArgs(b *strings.Builder, args []Union) {
	if len(args) == 0 {
		return
	}
	b.WriteByte('<')
	for i := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(args[i].String())
	}
	b.WriteByte('>')
}

// structuralKey is the canonical identity of the descriptor, used for value
// equality and interning. Class names are fully qualified (leading '\'), so
// the printed form plus a kind tag is collision-free.
func (t *Type) structuralKey() string {
	return strconv.Itoa(int(t.kind)) + ":" + t.String()
}

func formatFloatLiteral(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") || strings.HasPrefix(s, "0x") {
		s += ".0"
	}
	return s
}

// quoteStringLiteral renders a single-quoted literal. Only hex escapes may
// represent non-printable bytes.
func quoteStringLiteral(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' || c == '\'':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c < 0x20 || c == 0x7f:
			fmt.Fprintf(&b, "\\x%02X", c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

func isBareShapeKey(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '_' || c == '-':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
