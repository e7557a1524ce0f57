// Package object defines Bisaya++ runtime values and the flat variable
// environment, adapted from the teacher's tagged Object representation but
// stripped of class/method dispatch — Bisaya++ has five closed runtime
// kinds, no methods, no inheritance.
package object

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bisayapp/bisaya/token"
)

// Kind is the runtime type tag of a value, and doubles as the declared kind
// stored alongside every environment entry.
type Kind int

const (
	IntKind Kind = iota
	FloatKind
	CharKind
	BoolKind
	StringKind
)

func (k Kind) String() string {
	switch k {
	case IntKind:
		return "NUMERO"
	case FloatKind:
		return "TIPIK"
	case CharKind:
		return "LETRA"
	case BoolKind:
		return "TINUOD"
	case StringKind:
		return "PULONG"
	default:
		return "UNKNOWN"
	}
}

// KindFromToken maps a type-keyword token to its runtime Kind.
func KindFromToken(k token.Kind) (Kind, bool) {
	switch k {
	case token.INT_TYPE:
		return IntKind, true
	case token.FLOAT_TYPE:
		return FloatKind, true
	case token.CHAR_TYPE:
		return CharKind, true
	case token.BOOL_TYPE:
		return BoolKind, true
	case token.STRING_TYPE:
		return StringKind, true
	default:
		return 0, false
	}
}

// Value is a tagged Bisaya++ runtime value (§3.3: "a tagged sum").
type Value struct {
	Kind Kind

	Int    int32
	Float  float32
	Char   rune
	Bool   bool
	String string
}

// Int returns an Int-kinded value.
func Int(v int32) Value { return Value{Kind: IntKind, Int: v} }

// Float returns a Float-kinded value.
func Float(v float32) Value { return Value{Kind: FloatKind, Float: v} }

// Char returns a Char-kinded value.
func Char(v rune) Value { return Value{Kind: CharKind, Char: v} }

// Bool returns a Bool-kinded value.
func Bool(v bool) Value { return Value{Kind: BoolKind, Bool: v} }

// String returns a String-kinded value.
func String(v string) Value { return Value{Kind: StringKind, String: v} }

// Zero returns the per-kind default used for an uninitialized declaration
// (§4.3 "Assignment and declaration").
func Zero(k Kind) Value {
	switch k {
	case IntKind:
		return Int(0)
	case FloatKind:
		return Float(0)
	case CharKind:
		return Char(0)
	case BoolKind:
		return Bool(false)
	case StringKind:
		return String("")
	default:
		panic("object: Zero: unknown kind")
	}
}

// Display renders v using Bisaya++'s display rules (§4.3, GLOSSARY "Display
// form"): booleans as OO/DILI, integral floats with a trailing .0.
func (v Value) Display() string {
	switch v.Kind {
	case IntKind:
		return strconv.FormatInt(int64(v.Int), 10)
	case FloatKind:
		return displayFloat(v.Float)
	case CharKind:
		return string(v.Char)
	case BoolKind:
		if v.Bool {
			return "OO"
		}
		return "DILI"
	case StringKind:
		return v.String
	default:
		return ""
	}
}

func displayFloat(f float32) string {
	if f == float32(int64(f)) {
		return strconv.FormatFloat(float64(f), 'f', 1, 32)
	}
	s := strconv.FormatFloat(float64(f), 'f', -1, 32)
	return s
}

// IsTruthy implements loop truthiness (GLOSSARY "Truthy (for loops)"): a
// boolean true, the string "OO", or any non-null non-false value.
func (v Value) IsTruthy() bool {
	switch v.Kind {
	case BoolKind:
		return v.Bool
	case StringKind:
		if v.String == "OO" {
			return true
		}
		return v.String != ""
	case IntKind:
		return v.Int != 0
	case FloatKind:
		return v.Float != 0
	case CharKind:
		return v.Char != 0
	default:
		return false
	}
}

// AsFloat64 returns the numeric value as a float64; ok is false for
// non-numeric kinds.
func (v Value) AsFloat64() (float64, bool) {
	switch v.Kind {
	case IntKind:
		return float64(v.Int), true
	case FloatKind:
		return float64(v.Float), true
	default:
		return 0, false
	}
}

// ParseNumeric attempts to parse s as a number, per the "string that parses
// as a number" coercion rule (§4.3 "Arithmetic/relational").
func ParseNumeric(s string) (Value, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, false
	}
	if i, err := strconv.ParseInt(s, 10, 32); err == nil {
		return Int(int32(i)), true
	}
	if f, err := strconv.ParseFloat(s, 32); err == nil {
		return Float(float32(f)), true
	}
	return Value{}, false
}

// Inspect is a debug representation (kind name plus display form),
// distinct from the user-facing Display form.
func (v Value) Inspect() string {
	return fmt.Sprintf("%s(%s)", v.Kind, v.Display())
}
