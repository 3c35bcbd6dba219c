package cast

import (
	"regexp"
	"strings"

	"tycho/internal/types"
)

// numericString matches the runtime's idea of a numeric literal: optionally
// signed decimal digits with an optional decimal fraction. Hex-like and
// exponent forms are deliberately excluded.
var numericString = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?$`)

func isNumericString(s string) bool { return numericString.MatchString(s) }

func isIntegerString(s string) bool {
	return isNumericString(s) && !strings.Contains(s, ".")
}

// isFalsyString reports the literal strings the runtime converts to false.
func isFalsyString(s string) bool { return s == "" || s == "0" }

func isZeroNumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '1' && s[i] <= '9' {
			return false
		}
	}
	return true
}

// coerceLitString applies the config-gated loose coercions for a literal
// string source. Only reached when Config.AllowImplicitScalarCast is set.
func (m mode) coerceLitString(a, b *types.Type) bool {
	s := a.LitString()
	switch b.Kind() {
	case types.KindInt:
		return isIntegerString(s)
	case types.KindNonZeroInt:
		return isIntegerString(s) && !isZeroNumeric(s)
	case types.KindFloat:
		return isNumericString(s)
	case types.KindBool:
		return true
	case types.KindFalse:
		return isFalsyString(s)
	case types.KindTrue:
		return !isFalsyString(s)
	default:
		return false
	}
}
