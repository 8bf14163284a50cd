package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestLexOperators(t *testing.T) {
	tokens := Lex(`a = 1 and b == 2 OR c != 3 (d =~ "x") e !~ "y" f < 1 g <= 2 h > 3 i >= 4`)
	assert.Equal(t, []Kind{
		Ident, Equals, Integer, And,
		Ident, Equals, Integer, Or,
		Ident, NotEquals, Integer,
		LeftBrace, Ident, Matches, String, RightBrace,
		Ident, NotMatches, String,
		Ident, Less, Integer,
		Ident, LessOrEqual, Integer,
		Ident, Greater, Integer,
		Ident, GreaterOrEqual, Integer,
		EOF,
	}, kinds(tokens))
}

func TestLexNumbers(t *testing.T) {
	tokens := Lex("12 3.5")
	require.Len(t, tokens, 3)
	assert.Equal(t, Integer, tokens[0].Kind)
	assert.Equal(t, "12", tokens[0].Src)
	assert.Equal(t, Float, tokens[1].Kind)
	assert.Equal(t, "3.5", tokens[1].Src)

	tokens = Lex("1.2.3")
	assert.Equal(t, Illegal, tokens[0].Kind)
}

func TestLexStrings(t *testing.T) {
	tokens := Lex(`"hello \"world\"\n"`)
	require.GreaterOrEqual(t, len(tokens), 1)
	assert.Equal(t, String, tokens[0].Kind)
	assert.Equal(t, "hello \"world\"\n", tokens[0].Src)

	// literal newline inside a string is not allowed
	tokens = Lex("\"broken\nstring\"")
	assert.Equal(t, Illegal, tokens[0].Kind)

	// a backslash does not rescue a literal newline
	tokens = Lex("\"broken\\\nstring\"")
	assert.Equal(t, Illegal, tokens[0].Kind)

	// unterminated
	tokens = Lex(`"no end`)
	assert.Equal(t, Illegal, tokens[0].Kind)
}

func TestLexBareBang(t *testing.T) {
	tokens := Lex("!")
	assert.Equal(t, Illegal, tokens[0].Kind)
	assert.Equal(t, "!", tokens[0].Src)
}

func TestLexPositions(t *testing.T) {
	tokens := Lex("a\n  b")
	require.Len(t, tokens, 3)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 1, tokens[0].Pos)
	assert.Equal(t, 2, tokens[1].Line)
	assert.Equal(t, 3, tokens[1].Pos)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"missing value", "a ="},
		{"missing operator", "a 5"},
		{"regex with number", "a =~ 5"},
		{"ordering with string", `a < "x"`},
		{"unbalanced paren", "(a = 1"},
		{"trailing garbage", "a = 1 b = 2"},
		{"empty", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(c.src)
			require.Error(t, err)
			var ute *UnexpectedTokenError
			require.ErrorAs(t, err, &ute)
			assert.Contains(t, err.Error(), "unexpected token type")
			assert.Contains(t, err.Error(), "expected one of")
		})
	}
}

type sample struct {
	X        int64
	Y        float64
	Callsign string
}

func bindSample(ident string, op Kind, value Value) (Predicate[*sample], error) {
	switch ident {
	case "x":
		return func(s *sample) bool { return CompareInt(op, s.X, value) }, nil
	case "y":
		return func(s *sample) bool { return CompareFloat(op, s.Y, value) }, nil
	case "callsign":
		return func(s *sample) bool { return CompareString(op, s.Callsign, value) }, nil
	}
	return nil, &CompileError{Msg: "unknown field " + ident}
}

func compileSample(t *testing.T, src string) *Compiled[*sample] {
	t.Helper()
	e, err := Parse(src)
	require.NoError(t, err)
	c, err := Compile(e, bindSample)
	require.NoError(t, err)
	return c
}

func TestEvaluate(t *testing.T) {
	c := compileSample(t, `x > 5 AND y <= 7 AND callsign =~ "^AER"`)
	assert.True(t, c.Evaluate(&sample{X: 6, Y: 7, Callsign: "AERO123"}))
	assert.False(t, c.Evaluate(&sample{X: 5, Y: 7, Callsign: "AERO123"}))
	assert.False(t, c.Evaluate(&sample{X: 6, Y: 7.5, Callsign: "AERO123"}))
	assert.False(t, c.Evaluate(&sample{X: 6, Y: 7, Callsign: "BAW12"}))
}

func TestEvaluateRightAssociative(t *testing.T) {
	// a AND b OR c parses as a AND (b OR c)
	c := compileSample(t, "x = 1 AND y = 2 OR callsign = \"Q\"")
	assert.True(t, c.Evaluate(&sample{X: 1, Y: 0, Callsign: "Q"}))
	assert.False(t, c.Evaluate(&sample{X: 0, Y: 2, Callsign: "Q"}))
	assert.True(t, c.Evaluate(&sample{X: 1, Y: 2, Callsign: "Z"}))
}

func TestEvaluateParens(t *testing.T) {
	c := compileSample(t, `(x = 1 OR x = 2) AND y > 0`)
	assert.True(t, c.Evaluate(&sample{X: 2, Y: 1}))
	assert.False(t, c.Evaluate(&sample{X: 3, Y: 1}))
	assert.False(t, c.Evaluate(&sample{X: 1, Y: 0}))
}

func TestEvaluateNumericPromotion(t *testing.T) {
	c := compileSample(t, "x = 5.0")
	assert.True(t, c.Evaluate(&sample{X: 5}))

	c = compileSample(t, "y = 5")
	assert.True(t, c.Evaluate(&sample{Y: 5}))
}

func TestEvaluateTypeMismatch(t *testing.T) {
	// numeric field against string literal never matches
	c := compileSample(t, `x = "five"`)
	assert.False(t, c.Evaluate(&sample{X: 5}))

	// string field against numeric literal never matches
	c = compileSample(t, "callsign = 5")
	assert.False(t, c.Evaluate(&sample{Callsign: "5"}))
}

func TestEvaluateBadRegex(t *testing.T) {
	c := compileSample(t, `callsign =~ "["`)
	assert.False(t, c.Evaluate(&sample{Callsign: "ANY"}))

	c = compileSample(t, `callsign !~ "["`)
	assert.True(t, c.Evaluate(&sample{Callsign: "ANY"}))
}

func TestCompileUnknownField(t *testing.T) {
	e, err := Parse("nosuch = 1")
	require.NoError(t, err)
	_, err = Compile(e, bindSample)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compilation error")
}
