// Package expr implements the pilot filter language: a lexer, a
// parser producing a small expression tree, and a compiler that binds
// field identifiers to typed predicates over arbitrary objects.
//
// The grammar is
//
//	expr      := term ((AND | OR) term)*
//	term      := condition | "(" expr ")"
//	condition := IDENT OP value
//
// where chains of AND/OR bind to the right, so
// "a AND b OR c" evaluates as "a AND (b OR c)".
package expr

import "fmt"

// Kind identifies a lexical token class.
type Kind int

const (
	Illegal Kind = iota
	EOF
	Ident
	Integer
	Float
	String
	Equals
	NotEquals
	Matches
	NotMatches
	Less
	LessOrEqual
	Greater
	GreaterOrEqual
	LeftBrace
	RightBrace
	And
	Or
)

var kindNames = map[Kind]string{
	Illegal:        "Illegal",
	EOF:            "EOF",
	Ident:          "Ident",
	Integer:        "Integer",
	Float:          "Float",
	String:         "String",
	Equals:         "Equals",
	NotEquals:      "NotEquals",
	Matches:        "Matches",
	NotMatches:     "NotMatches",
	Less:           "Less",
	LessOrEqual:    "LessOrEqual",
	Greater:        "Greater",
	GreaterOrEqual: "GreaterOrEqual",
	LeftBrace:      "LeftBrace",
	RightBrace:     "RightBrace",
	And:            "And",
	Or:             "Or",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsComparison reports whether the kind is one of the condition
// operators.
func (k Kind) IsComparison() bool {
	switch k {
	case Equals, NotEquals, Matches, NotMatches, Less, LessOrEqual, Greater, GreaterOrEqual:
		return true
	}
	return false
}

// Token is a lexeme with its source text and position.
type Token struct {
	Kind Kind
	Src  string
	Line int
	Pos  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%s) at line=%d pos=%d", t.Kind, t.Src, t.Line, t.Pos)
}
