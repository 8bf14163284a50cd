package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// UnexpectedTokenError is returned when the parser meets a token that
// does not fit the grammar at its position.
type UnexpectedTokenError struct {
	Token    Token
	Expected []Kind
}

func (e *UnexpectedTokenError) Error() string {
	names := make([]string, len(e.Expected))
	for i, k := range e.Expected {
		names[i] = k.String()
	}
	return fmt.Sprintf(
		"unexpected token type %s(%s) at line=%d pos=%d, expected one of [%s]",
		e.Token.Kind, e.Token.Src, e.Token.Line, e.Token.Pos,
		strings.Join(names, ", "),
	)
}

// CompileError is returned when a syntactically valid condition
// cannot be bound to an object field.
type CompileError struct {
	Msg string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compilation error: %s", e.Msg)
}

// Condition is a single comparison leaf of an expression.
type Condition struct {
	Ident string
	Op    Kind
	Value Value
}

// Expression is a parsed filter. Leaves are conditions; inner nodes
// combine two subtrees with AND or OR.
type Expression struct {
	cond  *Condition
	op    Kind
	left  *Expression
	right *Expression
}

type parser struct {
	tokens []Token
	idx    int
}

// Parse lexes and parses a filter source string.
func Parse(src string) (*Expression, error) {
	p := &parser{tokens: Lex(src)}
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != EOF {
		return nil, &UnexpectedTokenError{Token: tok, Expected: []Kind{And, Or, EOF}}
	}
	return e, nil
}

func (p *parser) peek() Token {
	if p.idx >= len(p.tokens) {
		return Token{Kind: EOF}
	}
	return p.tokens[p.idx]
}

func (p *parser) advance() Token {
	tok := p.peek()
	if p.idx < len(p.tokens) {
		p.idx++
	}
	return tok
}

// parseExpression parses "term ((AND|OR) expression)?", making chains
// of logical operators right-associative.
func (p *parser) parseExpression() (*Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	tok := p.peek()
	if tok.Kind != And && tok.Kind != Or {
		return left, nil
	}
	p.advance()
	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &Expression{op: tok.Kind, left: left, right: right}, nil
}

func (p *parser) parseTerm() (*Expression, error) {
	tok := p.peek()
	switch tok.Kind {
	case LeftBrace:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		closing := p.advance()
		if closing.Kind != RightBrace {
			return nil, &UnexpectedTokenError{Token: closing, Expected: []Kind{RightBrace}}
		}
		return inner, nil
	case Ident:
		return p.parseCondition()
	}
	return nil, &UnexpectedTokenError{Token: tok, Expected: []Kind{LeftBrace, Ident}}
}

func (p *parser) parseCondition() (*Expression, error) {
	ident := p.advance()
	op := p.advance()
	if !op.Kind.IsComparison() {
		return nil, &UnexpectedTokenError{Token: op, Expected: []Kind{
			Equals, NotEquals, Matches, NotMatches, Less, LessOrEqual, Greater, GreaterOrEqual,
		}}
	}
	lit := p.advance()

	var value Value
	switch lit.Kind {
	case Integer:
		i, err := strconv.ParseInt(lit.Src, 10, 64)
		if err != nil {
			return nil, &UnexpectedTokenError{Token: lit, Expected: []Kind{Integer}}
		}
		value = IntValue(i)
	case Float:
		f, err := strconv.ParseFloat(lit.Src, 64)
		if err != nil {
			return nil, &UnexpectedTokenError{Token: lit, Expected: []Kind{Float}}
		}
		value = FloatValue(f)
	case String:
		value = StringValue(lit.Src)
	default:
		return nil, &UnexpectedTokenError{Token: lit, Expected: []Kind{Integer, Float, String}}
	}

	// Regex operators take strings, ordering operators take numbers.
	switch op.Kind {
	case Matches, NotMatches:
		if lit.Kind != String {
			return nil, &UnexpectedTokenError{Token: lit, Expected: []Kind{String}}
		}
	case Less, LessOrEqual, Greater, GreaterOrEqual:
		if lit.Kind != Integer && lit.Kind != Float {
			return nil, &UnexpectedTokenError{Token: lit, Expected: []Kind{Integer, Float}}
		}
	}

	return &Expression{cond: &Condition{Ident: ident.Src, Op: op.Kind, Value: value}}, nil
}
