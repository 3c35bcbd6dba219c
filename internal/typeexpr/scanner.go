package typeexpr

import (
	"fmt"

	"tycho/internal/diag"
	"tycho/internal/source"
)

// Scanner turns the bytes of one type expression into tokens. Errors are
// emitted through the Reporter and surface as TokInvalid, which makes the
// parser stop: malformed input is never silently recovered.
type Scanner struct {
	cursor   Cursor
	reporter diag.Reporter
}

// NewScanner creates a scanner over a region of a file.
func NewScanner(f *source.File, start, end uint32, reporter diag.Reporter) *Scanner {
	return &Scanner{
		cursor:   NewRegionCursor(f, start, end),
		reporter: reporter,
	}
}

// Next returns the next token, TokEOF at the end of the region.
func (s *Scanner) Next() Token {
	s.skipSpaces()
	if s.cursor.EOF() {
		return Token{Kind: TokEOF, Span: s.cursor.SpanHere()}
	}

	start := s.cursor.Mark()
	b := s.cursor.Peek()
	switch {
	case b == '\'' || b == '"':
		return s.scanString()
	case isDigit(b):
		return s.scanNumber()
	case b == '+' || b == '-':
		if isDigit(s.cursor.PeekAt(1)) {
			return s.scanNumber()
		}
		s.cursor.Bump()
		return s.errToken(diag.TypeLexUnknownChar, start, fmt.Sprintf("unexpected character %q", string(b)))
	case isIdentStart(b):
		return s.scanIdent()
	case b == '$':
		return s.scanVarName()
	case b == '.':
		if s.cursor.PeekAt(1) == '.' && s.cursor.PeekAt(2) == '.' {
			s.cursor.Bump()
			s.cursor.Bump()
			s.cursor.Bump()
			return s.token(TokEllipsis, start)
		}
		s.cursor.Bump()
		return s.errToken(diag.TypeLexUnknownChar, start, "unexpected character '.'")
	}

	s.cursor.Bump()
	kind := TokInvalid
	switch b {
	case '?':
		kind = TokQuestion
	case '|':
		kind = TokPipe
	case '&':
		kind = TokAmp
	case '=':
		kind = TokEquals
	case ':':
		kind = TokColon
	case ',':
		kind = TokComma
	case '(':
		kind = TokLParen
	case ')':
		kind = TokRParen
	case '[':
		kind = TokLBracket
	case ']':
		kind = TokRBracket
	case '{':
		kind = TokLBrace
	case '}':
		kind = TokRBrace
	case '<':
		kind = TokLAngle
	case '>':
		kind = TokRAngle
	default:
		return s.errToken(diag.TypeLexUnknownChar, start, fmt.Sprintf("unexpected character %q", string(b)))
	}
	return s.token(kind, start)
}

func (s *Scanner) skipSpaces() {
	for !s.cursor.EOF() {
		switch s.cursor.Peek() {
		case ' ', '\t':
			s.cursor.Bump()
		default:
			return
		}
	}
}

func (s *Scanner) scanIdent() Token {
	start := s.cursor.Mark()
	for !s.cursor.EOF() && isIdentContinue(s.cursor.Peek()) {
		s.cursor.Bump()
	}
	return s.token(TokIdent, start)
}

func (s *Scanner) scanVarName() Token {
	start := s.cursor.Mark()
	s.cursor.Bump() // '$'
	nameStart := s.cursor.Mark()
	for !s.cursor.EOF() && isNameContinue(s.cursor.Peek()) {
		s.cursor.Bump()
	}
	nameSpan := s.cursor.SpanFrom(nameStart)
	if nameSpan.Empty() {
		return s.errToken(diag.TypeLexUnknownChar, start, "'$' must be followed by a parameter name")
	}
	tok := s.token(TokVarName, start)
	tok.Value = s.cursor.Text(nameSpan)
	return tok
}

func (s *Scanner) scanNumber() Token {
	start := s.cursor.Mark()
	if b := s.cursor.Peek(); b == '+' || b == '-' {
		s.cursor.Bump()
	}
	s.bumpDigits()

	isFloat := false
	if s.cursor.Peek() == '.' && isDigit(s.cursor.PeekAt(1)) {
		isFloat = true
		s.cursor.Bump()
		s.bumpDigits()
	}
	if b := s.cursor.Peek(); b == 'e' || b == 'E' {
		next := s.cursor.PeekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(s.cursor.PeekAt(2))) {
			isFloat = true
			s.cursor.Bump() // e
			s.cursor.Bump() // sign or first digit
			s.bumpDigits()
		}
	}

	// A number glued to identifier characters is not a valid literal; this
	// also rejects hex-like forms such as 0x1A.
	if !s.cursor.EOF() && isIdentStart(s.cursor.Peek()) {
		for !s.cursor.EOF() && isIdentContinue(s.cursor.Peek()) {
			s.cursor.Bump()
		}
		sp := s.cursor.SpanFrom(start)
		s.report(diag.TypeLexBadNumber, sp, fmt.Sprintf("malformed number literal %q", s.cursor.Text(sp)))
		return Token{Kind: TokInvalid, Span: sp, Text: s.cursor.Text(sp)}
	}

	if isFloat {
		return s.token(TokFloatLit, start)
	}
	return s.token(TokIntLit, start)
}

func (s *Scanner) bumpDigits() {
	for !s.cursor.EOF() && isDigit(s.cursor.Peek()) {
		s.cursor.Bump()
	}
}

// scanString handles '...' and "..." with escape support for backslash,
// quotes and \xHH. Only hex escapes may represent non-printable bytes; a raw
// control character is rejected at scan time.
func (s *Scanner) scanString() Token {
	start := s.cursor.Mark()
	quote := s.cursor.Bump()
	var value []byte
	for !s.cursor.EOF() {
		b := s.cursor.Peek()
		if b == quote {
			s.cursor.Bump()
			tok := s.token(TokStrLit, start)
			tok.Value = string(value)
			return tok
		}
		if b == '\\' {
			s.cursor.Bump()
			esc := s.cursor.Bump()
			switch esc {
			case '\\', '\'', '"':
				value = append(value, esc)
			case 'x', 'X':
				hi := hexDigit(s.cursor.Peek())
				lo := hexDigit(s.cursor.PeekAt(1))
				if hi < 0 || lo < 0 {
					sp := s.cursor.SpanFrom(start)
					s.report(diag.TypeLexBadEscape, sp, "\\x escape requires two hex digits")
					return Token{Kind: TokInvalid, Span: sp, Text: s.cursor.Text(sp)}
				}
				s.cursor.Bump()
				s.cursor.Bump()
				value = append(value, byte(hi<<4|lo))
			default:
				sp := s.cursor.SpanFrom(start)
				s.report(diag.TypeLexBadEscape, sp, fmt.Sprintf("unsupported escape \\%s", string(esc)))
				return Token{Kind: TokInvalid, Span: sp, Text: s.cursor.Text(sp)}
			}
			continue
		}
		if b < 0x20 || b == 0x7f {
			sp := s.cursor.SpanFrom(start)
			s.report(diag.TypeLexControlCharInStr, sp, "raw control character in string literal; use a \\xHH escape")
			return Token{Kind: TokInvalid, Span: sp, Text: s.cursor.Text(sp)}
		}
		value = append(value, b)
		s.cursor.Bump()
	}
	sp := s.cursor.SpanFrom(start)
	s.report(diag.TypeLexUnterminatedStr, sp, "unterminated string literal")
	return Token{Kind: TokInvalid, Span: sp, Text: s.cursor.Text(sp)}
}

func (s *Scanner) token(kind TokKind, start Mark) Token {
	sp := s.cursor.SpanFrom(start)
	return Token{Kind: kind, Span: sp, Text: s.cursor.Text(sp)}
}

func (s *Scanner) errToken(code diag.Code, start Mark, msg string) Token {
	sp := s.cursor.SpanFrom(start)
	s.report(code, sp, msg)
	return Token{Kind: TokInvalid, Span: sp, Text: s.cursor.Text(sp)}
}

func (s *Scanner) report(code diag.Code, sp source.Span, msg string) {
	if s.reporter != nil {
		s.reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return b == '_' || b == '\\' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b) || b == '-'
}

func isNameContinue(b byte) bool {
	return b == '_' || isDigit(b) ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func hexDigit(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	default:
		return -1
	}
}
