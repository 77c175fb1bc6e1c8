// FILE: lixenwraith/conftree/convert.go
package conftree

import (
	"errors"
	"strconv"
	"strings"
)

// Coercion is the three-way outcome of converting text to a scalar.
type Coercion int

const (
	OutOfRange  Coercion = -1 // recognized but does not fit in the target type
	NotThisType Coercion = 0
	Recognized  Coercion = 1
)

// boolTokens maps the accepted boolean spellings. Matching is exact and case sensitive.
var boolTokens = map[string]bool{
	"true":  true,
	"false": false,
	"yes":   true,
	"no":    false,
	"on":    true,
	"off":   false,
}

// StringToInteger parses s as a 64-bit integer. A "0x" prefix selects hex,
// a leading zero on a multi-digit literal selects octal, anything else is decimal.
// Trailing characters make s NotThisType.
func StringToInteger(s string) (int64, Coercion, error) {
	base, digits := 10, s
	switch {
	case strings.HasPrefix(s, "0x"):
		base, digits = 16, s[2:]
	case len(s) > 1 && s[0] == '0':
		base, digits = 8, s[1:]
	}

	// A sign is only meaningful ahead of the base prefix.
	if base != 10 && (strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+")) {
		return 0, NotThisType, nil
	}

	v, err := strconv.ParseInt(digits, base, 64)
	if err == nil {
		return v, Recognized, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		dir := "overflow"
		if strings.HasPrefix(digits, "-") {
			dir = "underflow"
		}
		return 0, OutOfRange, newError(KindNumeric, "integer %s while converting '%s'", dir, s)
	}
	return 0, NotThisType, nil
}

// StringToFloat parses s as a float64 in decimal or exponent notation.
func StringToFloat(s string) (float64, Coercion, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return v, Recognized, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		dir := "overflow"
		if v < 0 {
			dir = "underflow"
		}
		return 0, OutOfRange, newError(KindNumeric, "floating-point %s while converting '%s'", dir, s)
	}
	return 0, NotThisType, nil
}

// StringToBool recognizes true, false, yes, no, on and off.
func StringToBool(s string) (bool, Coercion) {
	if v, ok := boolTokens[s]; ok {
		return v, Recognized
	}
	return false, NotThisType
}

// InferScalar picks the type of a document scalar. Quoted and empty text is
// a string; otherwise integer, float and boolean are tried in that order and
// the first match wins.
func InferScalar(text string, quoted bool) (Type, any, error) {
	if quoted || text == "" {
		return TypeString, text, nil
	}

	if i, c, err := StringToInteger(text); c == Recognized {
		return TypeInt, i, nil
	} else if c == OutOfRange {
		return TypeUnknown, nil, err
	}

	if f, c, err := StringToFloat(text); c == Recognized {
		return TypeFloat, f, nil
	} else if c == OutOfRange {
		return TypeUnknown, nil, err
	}

	if b, c := StringToBool(text); c == Recognized {
		return TypeBool, b, nil
	}

	return TypeString, text, nil
}

// coerce converts text into a value of typ for the flag, env and default
// collaborators, where the target type is declared rather than inferred.
func coerce(typ Type, text string) (any, error) {
	switch typ {
	case TypeString, TypeDocument:
		return text, nil
	case TypeInt:
		v, c, err := StringToInteger(text)
		if c == OutOfRange {
			return nil, err
		}
		if c != Recognized {
			return nil, newError(KindParse, "'%s' is not an integer", text)
		}
		return v, nil
	case TypeFloat:
		v, c, err := StringToFloat(text)
		if c == OutOfRange {
			return nil, err
		}
		if c != Recognized {
			return nil, newError(KindParse, "'%s' is not a floating-point number", text)
		}
		return v, nil
	case TypeBool:
		v, c := StringToBool(text)
		if c != Recognized {
			return nil, newError(KindParse, "'%s' is not a boolean", text)
		}
		return v, nil
	default:
		return nil, newError(KindType, "cannot convert text to %s", typ)
	}
}
