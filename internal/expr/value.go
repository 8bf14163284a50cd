package expr

import (
	"fmt"
	"regexp"
	"strconv"
)

// Value is a literal operand of a condition: an integer, a float or a
// string.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// IntValue wraps an integer literal.
func IntValue(i int64) Value { return Value{kind: Integer, i: i} }

// FloatValue wraps a float literal.
func FloatValue(f float64) Value { return Value{kind: Float, f: f} }

// StringValue wraps a string literal.
func StringValue(s string) Value { return Value{kind: String, s: s} }

// Kind returns the literal class of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNumeric reports whether the value is an integer or a float.
func (v Value) IsNumeric() bool { return v.kind == Integer || v.kind == Float }

// Float returns the value as a float64. Strings yield 0.
func (v Value) Float() float64 {
	switch v.kind {
	case Integer:
		return float64(v.i)
	case Float:
		return v.f
	}
	return 0
}

// Int returns the value as an int64. Strings yield 0.
func (v Value) Int() int64 {
	switch v.kind {
	case Integer:
		return v.i
	case Float:
		return int64(v.f)
	}
	return 0
}

// Str returns the string payload of a string value.
func (v Value) Str() string { return v.s }

func (v Value) String() string {
	switch v.kind {
	case Integer:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case String:
		return strconv.Quote(v.s)
	}
	return fmt.Sprintf("<%s>", v.kind)
}

// CompareFloat tests a numeric object field against a literal.
// Integer literals promote to float. Comparing against a string
// literal is always false.
func CompareFloat(op Kind, field float64, against Value) bool {
	if !against.IsNumeric() {
		return false
	}
	rhs := against.Float()
	switch op {
	case Equals:
		return field == rhs
	case NotEquals:
		return field != rhs
	case Less:
		return field < rhs
	case LessOrEqual:
		return field <= rhs
	case Greater:
		return field > rhs
	case GreaterOrEqual:
		return field >= rhs
	}
	return false
}

// CompareInt tests an integer object field against a literal. If the
// literal is a float both sides are compared as floats.
func CompareInt(op Kind, field int64, against Value) bool {
	if against.kind == Float {
		return CompareFloat(op, float64(field), against)
	}
	if against.kind != Integer {
		return false
	}
	rhs := against.i
	switch op {
	case Equals:
		return field == rhs
	case NotEquals:
		return field != rhs
	case Less:
		return field < rhs
	case LessOrEqual:
		return field <= rhs
	case Greater:
		return field > rhs
	case GreaterOrEqual:
		return field >= rhs
	}
	return false
}

// CompareString tests a string object field against a literal.
// Matches and NotMatches treat the literal as a regular expression
// compiled at evaluation time; a pattern that fails to compile makes
// Matches false and NotMatches true. Comparing against a numeric
// literal is always false.
func CompareString(op Kind, field string, against Value) bool {
	if against.kind != String {
		return false
	}
	rhs := against.s
	switch op {
	case Equals:
		return field == rhs
	case NotEquals:
		return field != rhs
	case Matches, NotMatches:
		re, err := regexp.Compile(rhs)
		if err != nil {
			return op == NotMatches
		}
		matched := re.MatchString(field)
		if op == NotMatches {
			return !matched
		}
		return matched
	case Less:
		return field < rhs
	case LessOrEqual:
		return field <= rhs
	case Greater:
		return field > rhs
	case GreaterOrEqual:
		return field >= rhs
	}
	return false
}
