package typeexpr

import (
	"fmt"
	"strconv"

	"tycho/internal/diag"
	"tycho/internal/source"
	"tycho/internal/types"
)

// Parser implements the type-expression grammar, precedence low to high:
// union '|', nullable prefix '?', postfix '[]', generic argument lists,
// parenthesization, and the structured array{...} / Closure(...) forms.
//
// Malformed input stops the parse and is reported as an error diagnostic;
// unresolved class names are reported as warnings and do not stop it, since
// the caller may re-parse once more symbols are known.
type Parser struct {
	sc       *Scanner
	tok      Token
	ctx      *Context
	interner *types.Interner
	reporter diag.Reporter
	bad      bool
}

// New constructs a parser over a region of a file.
func New(f *source.File, start, end uint32, ctx *Context, in *types.Interner, reporter diag.Reporter) *Parser {
	p := &Parser{
		sc:       NewScanner(f, start, end, reporter),
		ctx:      ctx,
		interner: in,
		reporter: reporter,
	}
	p.next()
	return p
}

// Parse consumes the whole region as one type expression.
// ok is false when the input was malformed.
func Parse(f *source.File, start, end uint32, ctx *Context, in *types.Interner, reporter diag.Reporter) (types.Union, bool) {
	p := New(f, start, end, ctx, in, reporter)
	u := p.parseUnion()
	if !p.bad && p.tok.Kind != TokEOF {
		p.fail(diag.TypeSynTrailingInput, p.tok.Span, fmt.Sprintf("unexpected %s after type expression", p.tok.Kind))
	}
	return u, !p.bad
}

// ParseString parses a standalone annotation string. The returned union
// carries spans of a synthetic file whose content is exactly text.
func ParseString(text string, ctx *Context, in *types.Interner, reporter diag.Reporter) (types.Union, bool) {
	f := &source.File{Content: []byte(text), Flags: source.FileVirtual}
	end := uint32(len(text)) // #nosec G115 -- annotation strings are short
	return Parse(f, 0, end, ctx, in, reporter)
}

func (p *Parser) next() {
	if p.bad {
		p.tok = Token{Kind: TokEOF, Span: p.tok.Span}
		return
	}
	p.tok = p.sc.Next()
	if p.tok.Kind == TokInvalid {
		// scanner already reported; unwind without cascading
		p.bad = true
		p.tok.Kind = TokEOF
	}
}

func (p *Parser) fail(code diag.Code, sp source.Span, msg string) {
	if !p.bad && p.reporter != nil {
		p.reporter.Report(code, diag.SevError, sp, msg, nil)
	}
	p.bad = true
	p.tok.Kind = TokEOF
}

func (p *Parser) warn(code diag.Code, sp source.Span, msg string) {
	if p.reporter != nil {
		p.reporter.Report(code, diag.SevWarning, sp, msg, nil)
	}
}

func (p *Parser) expect(kind TokKind, code diag.Code) bool {
	if p.tok.Kind != kind {
		p.fail(code, p.tok.Span, fmt.Sprintf("expected %s, found %s", kind, p.tok.Kind))
		return false
	}
	p.next()
	return true
}

func (p *Parser) intern(t *types.Type) *types.Type {
	if p.interner == nil {
		return t
	}
	return p.interner.Intern(t)
}

// parseUnion: single ('|' single)*
func (p *Parser) parseUnion() types.Union {
	u := p.parseSingle()
	for p.tok.Kind == TokPipe {
		p.next()
		u = u.Union(p.parseSingle())
	}
	return u
}

// parseSingle: ('?')? atom ('[]')*
//
// Nullability binds to the outermost array suffix: ?int[] is a nullable
// array of int, not an array of nullable int.
func (p *Parser) parseSingle() types.Union {
	nullable := false
	if p.tok.Kind == TokQuestion {
		nullable = true
		p.next()
	}

	u := p.parseAtom()

	for p.tok.Kind == TokLBracket {
		p.next()
		if !p.expect(TokRBracket, diag.TypeSynUnclosedBracket) {
			return u
		}
		u = types.NewUnion(p.intern(types.NewGenericArray(u, types.KeyMixed)))
	}

	if nullable {
		members := make([]*types.Type, 0, u.Len())
		for _, m := range u.Types() {
			members = append(members, p.intern(m.WithNullable(true)))
		}
		u = types.NewUnion(members...)
	}
	return u
}

func (p *Parser) parseAtom() types.Union {
	switch p.tok.Kind {
	case TokLParen:
		p.next()
		u := p.parseUnion()
		p.expect(TokRParen, diag.TypeSynUnclosedParen)
		return u

	case TokStrLit:
		t := p.intern(types.NewLitString(p.tok.Value))
		p.next()
		return types.NewUnion(t)

	case TokIntLit:
		text := p.tok.Text
		p.next()
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			return types.NewUnion(p.intern(types.NewLitInt(v)))
		}
		// out of int range: the runtime would hold it as a float
		f, _ := strconv.ParseFloat(text, 64)
		return types.NewUnion(p.intern(types.NewLitFloat(f)))

	case TokFloatLit:
		f, err := strconv.ParseFloat(p.tok.Text, 64)
		if err != nil {
			p.fail(diag.TypeLexBadNumber, p.tok.Span, fmt.Sprintf("malformed number literal %q", p.tok.Text))
			return types.Union{}
		}
		p.next()
		return types.NewUnion(p.intern(types.NewLitFloat(f)))

	case TokIdent:
		name := p.tok.Text
		sp := p.tok.Span
		p.next()
		return p.parseNamed(name, sp)

	default:
		p.fail(diag.TypeSynExpectType, p.tok.Span, fmt.Sprintf("expected a type, found %s", p.tok.Kind))
		return types.Union{}
	}
}

func (p *Parser) parseNamed(name string, sp source.Span) types.Union {
	if t := p.builtinType(name); t != nil {
		return types.NewUnion(t)
	}

	switch name {
	case "array":
		switch p.tok.Kind {
		case TokLBrace:
			return p.parseShape()
		case TokLAngle:
			return p.parseArrayGenerics(sp)
		default:
			return types.NewUnion(p.intern(types.New(types.KindArray)))
		}

	case "list":
		if p.tok.Kind == TokLAngle {
			args := p.parseGenericArgs()
			if p.bad {
				return types.Union{}
			}
			if len(args) != 1 {
				p.fail(diag.TypeSynUnexpectedToken, sp, "list takes exactly one type argument")
				return types.Union{}
			}
			return types.NewUnion(p.intern(types.NewGenericArray(args[0], types.KeyList)))
		}
		mixed := types.NewUnion(p.intern(types.New(types.KindMixed)))
		return types.NewUnion(p.intern(types.NewGenericArray(mixed, types.KeyList)))

	case "iterable":
		if p.tok.Kind != TokLAngle {
			return types.NewUnion(p.intern(types.New(types.KindIterable)))
		}
		args := p.parseGenericArgs()
		if p.bad {
			return types.Union{}
		}
		switch len(args) {
		case 1:
			return types.NewUnion(p.intern(types.NewIterableOf(types.Union{}, args[0])))
		case 2:
			return types.NewUnion(p.intern(types.NewIterableOf(args[0], args[1])))
		default:
			p.fail(diag.TypeSynUnexpectedToken, sp, "iterable takes one or two type arguments")
			return types.Union{}
		}

	case "Closure":
		if p.tok.Kind == TokLParen {
			return p.parseClosure(types.FnClosure)
		}
		return types.NewUnion(p.intern(types.NewClosure(nil, types.FnClosure)))

	case "callable":
		if p.tok.Kind == TokLParen {
			return p.parseClosure(types.FnCallable)
		}
		return types.NewUnion(p.intern(types.New(types.KindCallable)))
	}

	if p.ctx.IsTemplate(name) {
		return types.NewUnion(p.intern(types.NewTemplate(name)))
	}

	fqn := p.ctx.ResolveClass(name)
	if !p.ctx.IsKnown(fqn) {
		p.warn(diag.TypeUnresolvedName, sp, fmt.Sprintf("unknown class %s", fqn))
	}
	var args []types.Union
	if p.tok.Kind == TokLAngle {
		args = p.parseGenericArgs()
		if p.bad {
			return types.Union{}
		}
	}
	return types.NewUnion(p.intern(types.NewClass(fqn, args)))
}

// builtinType maps keyword spellings onto shared instances. Alternate
// spellings (integer, boolean, double, self) collapse onto the canonical
// kind.
func (p *Parser) builtinType(name string) *types.Type {
	var kind types.Kind
	switch name {
	case "int", "integer":
		kind = types.KindInt
	case "float", "double":
		kind = types.KindFloat
	case "string":
		kind = types.KindString
	case "bool", "boolean":
		kind = types.KindBool
	case "true":
		kind = types.KindTrue
	case "false":
		kind = types.KindFalse
	case "null":
		kind = types.KindNull
	case "void":
		kind = types.KindVoid
	case "never", "no-return":
		kind = types.KindNever
	case "mixed":
		kind = types.KindMixed
	case "non-null-mixed":
		kind = types.KindNonNullMixed
	case "non-empty-mixed":
		kind = types.KindNonEmptyMixed
	case "non-zero-int":
		kind = types.KindNonZeroInt
	case "non-empty-string":
		kind = types.KindNonEmptyString
	case "object":
		kind = types.KindObject
	case "resource":
		kind = types.KindResource
	case "static", "self":
		kind = types.KindStatic
	case "class-string":
		kind = types.KindClassString
	default:
		return nil
	}
	return p.intern(types.New(kind))
}

// parseGenericArgs: '<' union (',' union)* '>'
func (p *Parser) parseGenericArgs() []types.Union {
	p.next() // '<'
	args := []types.Union{p.parseUnion()}
	for p.tok.Kind == TokComma {
		p.next()
		args = append(args, p.parseUnion())
	}
	if !p.expect(TokRAngle, diag.TypeSynUnclosedAngle) {
		return nil
	}
	return args
}

// parseArrayGenerics: array<V> or array<K,V> where K is int, string or mixed.
func (p *Parser) parseArrayGenerics(sp source.Span) types.Union {
	args := p.parseGenericArgs()
	if p.bad {
		return types.Union{}
	}
	switch len(args) {
	case 1:
		return types.NewUnion(p.intern(types.NewGenericArray(args[0], types.KeyMixed)))
	case 2:
		key, ok := arrayKeyKind(args[0])
		if !ok {
			p.fail(diag.TypeSynExpectType, sp, "array key must be int, string or mixed")
			return types.Union{}
		}
		return types.NewUnion(p.intern(types.NewGenericArray(args[1], key)))
	default:
		p.fail(diag.TypeSynUnexpectedToken, sp, "array takes one or two type arguments")
		return types.Union{}
	}
}

func arrayKeyKind(u types.Union) (types.KeyKind, bool) {
	if u.Len() != 1 {
		return types.KeyMixed, false
	}
	switch u.Types()[0].Kind() {
	case types.KindInt:
		return types.KeyInt, true
	case types.KindString:
		return types.KeyString, true
	case types.KindMixed:
		return types.KeyMixed, true
	default:
		return types.KeyMixed, false
	}
}

// parseShape: '{' (field (',' field)*)? '}'
// field: key '?'? ':' union '='?
func (p *Parser) parseShape() types.Union {
	p.next() // '{'
	var fields []types.ShapeField
	seen := make(map[string]struct{})

	if p.tok.Kind != TokRBrace {
		for {
			field, ok := p.parseShapeField(seen)
			if !ok {
				return types.Union{}
			}
			fields = append(fields, field)
			if p.tok.Kind != TokComma {
				break
			}
			p.next()
		}
	}
	if !p.expect(TokRBrace, diag.TypeSynUnclosedBrace) {
		return types.Union{}
	}
	return types.NewUnion(p.intern(types.NewShape(fields)))
}

func (p *Parser) parseShapeField(seen map[string]struct{}) (types.ShapeField, bool) {
	var key types.ShapeKey
	keySpan := p.tok.Span
	switch p.tok.Kind {
	case TokIntLit:
		v, err := strconv.ParseInt(p.tok.Text, 10, 64)
		if err != nil {
			p.fail(diag.TypeLexBadNumber, p.tok.Span, fmt.Sprintf("shape key out of range: %s", p.tok.Text))
			return types.ShapeField{}, false
		}
		key = types.ShapeKey{IsInt: true, Int: v}
	case TokIdent:
		key = types.ShapeKey{Str: p.tok.Text}
	case TokStrLit:
		key = types.ShapeKey{Str: p.tok.Value}
	default:
		p.fail(diag.TypeSynExpectShapeKey, p.tok.Span, fmt.Sprintf("expected a shape key, found %s", p.tok.Kind))
		return types.ShapeField{}, false
	}
	p.next()

	optional := false
	if p.tok.Kind == TokQuestion {
		optional = true
		p.next()
	}
	if !p.expect(TokColon, diag.TypeSynExpectColon) {
		return types.ShapeField{}, false
	}

	value := p.parseUnion()
	if p.bad {
		return types.ShapeField{}, false
	}
	// trailing '=' is the alternate optional marker
	if p.tok.Kind == TokEquals {
		optional = true
		p.next()
	}

	id := shapeKeyID(key)
	if _, dup := seen[id]; dup {
		p.fail(diag.TypeSynDuplicateShapeKey, keySpan, fmt.Sprintf("duplicate shape key %s", id))
		return types.ShapeField{}, false
	}
	seen[id] = struct{}{}

	return types.ShapeField{Key: key, Value: value, Optional: optional}, true
}

func shapeKeyID(key types.ShapeKey) string {
	if key.IsInt {
		return strconv.FormatInt(key.Int, 10)
	}
	return key.Str
}

// parseClosure: '(' (param (',' param)*)? ')' (':' single)?
// param: union ('&' | '...' | '=' | $name)*
func (p *Parser) parseClosure(style types.FnStyle) types.Union {
	p.next() // '('
	var params []types.Param
	sawVariadic := false

	if p.tok.Kind != TokRParen {
		for {
			if sawVariadic {
				p.fail(diag.TypeSynVariadicNotLast, p.tok.Span, "variadic parameter must be last")
				return types.Union{}
			}
			param, ok := p.parseClosureParam()
			if !ok {
				return types.Union{}
			}
			params = append(params, param)
			sawVariadic = param.Variadic
			if p.tok.Kind != TokComma {
				break
			}
			p.next()
		}
	}
	if !p.expect(TokRParen, diag.TypeSynExpectParamOrClose) {
		return types.Union{}
	}

	var ret types.Union
	if p.tok.Kind == TokColon {
		p.next()
		ret = p.parseSingle()
		if p.bad {
			return types.Union{}
		}
	}

	sig := &types.Signature{Params: params, Return: ret}
	return types.NewUnion(p.intern(types.NewClosure(sig, style)))
}

func (p *Parser) parseClosureParam() (types.Param, bool) {
	var param types.Param

	// the untyped variadic form: callable(...)
	if p.tok.Kind == TokEllipsis {
		p.next()
		param.Variadic = true
		param.Type = types.NewUnion(p.intern(types.New(types.KindMixed)))
		return param, true
	}

	param.Type = p.parseUnion()
	if p.bad {
		return types.Param{}, false
	}

	for {
		switch p.tok.Kind {
		case TokAmp:
			param.ByRef = true
			p.next()
		case TokEllipsis:
			param.Variadic = true
			p.next()
		case TokEquals:
			param.Optional = true
			p.next()
		case TokVarName:
			param.Name = p.tok.Value
			p.next()
		default:
			return param, true
		}
	}
}
