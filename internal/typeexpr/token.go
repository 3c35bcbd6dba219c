package typeexpr

import (
	"fmt"

	"tycho/internal/source"
)

// TokKind enumerates the tokens of the type-expression grammar.
type TokKind uint8

const (
	TokInvalid TokKind = iota
	TokEOF
	TokIdent    // int, array, \App\Foo, non-zero-int
	TokVarName  // $name (closure parameter names)
	TokIntLit   // signed decimal integer
	TokFloatLit // signed decimal with fraction and/or exponent
	TokStrLit   // quoted literal, Value holds the decoded bytes
	TokQuestion // ?
	TokPipe     // |
	TokAmp      // &
	TokEquals   // =
	TokColon    // :
	TokComma    // ,
	TokEllipsis // ...
	TokLParen   // (
	TokRParen   // )
	TokLBracket // [
	TokRBracket // ]
	TokLBrace   // {
	TokRBrace   // }
	TokLAngle   // <
	TokRAngle   // >
)

func (k TokKind) String() string {
	switch k {
	case TokInvalid:
		return "invalid"
	case TokEOF:
		return "end of input"
	case TokIdent:
		return "identifier"
	case TokVarName:
		return "parameter name"
	case TokIntLit:
		return "integer literal"
	case TokFloatLit:
		return "float literal"
	case TokStrLit:
		return "string literal"
	case TokQuestion:
		return "'?'"
	case TokPipe:
		return "'|'"
	case TokAmp:
		return "'&'"
	case TokEquals:
		return "'='"
	case TokColon:
		return "':'"
	case TokComma:
		return "','"
	case TokEllipsis:
		return "'...'"
	case TokLParen:
		return "'('"
	case TokRParen:
		return "')'"
	case TokLBracket:
		return "'['"
	case TokRBracket:
		return "']'"
	case TokLBrace:
		return "'{'"
	case TokRBrace:
		return "'}'"
	case TokLAngle:
		return "'<'"
	case TokRAngle:
		return "'>'"
	default:
		return fmt.Sprintf("TokKind(%d)", k)
	}
}

// Token is one lexeme of a type expression.
type Token struct {
	Kind  TokKind
	Span  source.Span
	Text  string // raw text as written
	Value string // decoded payload for TokStrLit and TokVarName
}
