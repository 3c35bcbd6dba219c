package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Type-expression scanning (1000-1099)
	TypeLexInfo             Code = 1000
	TypeLexUnknownChar      Code = 1001
	TypeLexUnterminatedStr  Code = 1002
	TypeLexBadEscape        Code = 1003
	TypeLexBadNumber        Code = 1004
	TypeLexControlCharInStr Code = 1005

	// Type-expression grammar (2000-2099)
	TypeSynInfo               Code = 2000
	TypeSynUnexpectedToken    Code = 2001
	TypeSynExpectType         Code = 2002
	TypeSynUnclosedParen      Code = 2003
	TypeSynUnclosedAngle      Code = 2004
	TypeSynUnclosedBrace      Code = 2005
	TypeSynUnclosedBracket    Code = 2006
	TypeSynExpectShapeKey     Code = 2007
	TypeSynExpectColon        Code = 2008
	TypeSynVariadicNotLast    Code = 2009
	TypeSynDuplicateShapeKey  Code = 2010
	TypeSynTrailingInput      Code = 2011
	TypeSynEmptyUnion         Code = 2012
	TypeSynExpectParamOrClose Code = 2013

	// Name resolution (2100-2199)
	TypeUnresolvedName     Code = 2100
	TypeUnresolvedTemplate Code = 2101

	// Casting / comparison checks (3000-3099)
	TypeCheckInfo              Code = 3000
	TypeMismatch               Code = 3001
	TypeMismatchDeclared       Code = 3002
	TypeImpossibleComparison   Code = 3003
	TypeRedundantCast          Code = 3004
	TypeDocNarrowerThanSig     Code = 3005
	TypeUnexpectedCastSuccess  Code = 3006

	// Batch query files (4000-4099)
	BatchBadQuery     Code = 4000
	BatchUnknownVerb  Code = 4001
	BatchMissingArrow Code = 4002
)

func (c Code) String() string {
	switch c {
	case UnknownCode:
		return "TY0000"
	case TypeLexInfo:
		return "TY1000"
	case TypeLexUnknownChar:
		return "TY1001"
	case TypeLexUnterminatedStr:
		return "TY1002"
	case TypeLexBadEscape:
		return "TY1003"
	case TypeLexBadNumber:
		return "TY1004"
	case TypeLexControlCharInStr:
		return "TY1005"
	case TypeSynInfo:
		return "TY2000"
	case TypeSynUnexpectedToken:
		return "TY2001"
	case TypeSynExpectType:
		return "TY2002"
	case TypeSynUnclosedParen:
		return "TY2003"
	case TypeSynUnclosedAngle:
		return "TY2004"
	case TypeSynUnclosedBrace:
		return "TY2005"
	case TypeSynUnclosedBracket:
		return "TY2006"
	case TypeSynExpectShapeKey:
		return "TY2007"
	case TypeSynExpectColon:
		return "TY2008"
	case TypeSynVariadicNotLast:
		return "TY2009"
	case TypeSynDuplicateShapeKey:
		return "TY2010"
	case TypeSynTrailingInput:
		return "TY2011"
	case TypeSynEmptyUnion:
		return "TY2012"
	case TypeSynExpectParamOrClose:
		return "TY2013"
	case TypeUnresolvedName:
		return "TY2100"
	case TypeUnresolvedTemplate:
		return "TY2101"
	case TypeCheckInfo:
		return "TY3000"
	case TypeMismatch:
		return "TY3001"
	case TypeMismatchDeclared:
		return "TY3002"
	case TypeImpossibleComparison:
		return "TY3003"
	case TypeRedundantCast:
		return "TY3004"
	case TypeDocNarrowerThanSig:
		return "TY3005"
	case TypeUnexpectedCastSuccess:
		return "TY3006"
	case BatchBadQuery:
		return "TY4000"
	case BatchUnknownVerb:
		return "TY4001"
	case BatchMissingArrow:
		return "TY4002"
	}
	return fmt.Sprintf("TY%04d", uint16(c))
}

// IsMalformedType reports whether the code belongs to the scanning or grammar
// family, i.e. the textual input did not match the type grammar at all.
func (c Code) IsMalformedType() bool {
	return c >= TypeLexInfo && c < TypeUnresolvedName
}

// IsUnresolvedReference reports whether the code marks a recoverable
// resolution failure: the caller may retry once more symbols become known.
func (c Code) IsUnresolvedReference() bool {
	return c == TypeUnresolvedName || c == TypeUnresolvedTemplate
}
