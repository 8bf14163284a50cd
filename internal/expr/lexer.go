package expr

import "strings"

type lexer struct {
	src  []rune
	idx  int
	line int
	pos  int
}

// Lex splits the source into tokens. Lexing never fails: anything
// unrecognisable becomes an Illegal token, and the resulting slice
// always ends with EOF.
func Lex(src string) []Token {
	l := &lexer{src: []rune(src), line: 1, pos: 1}
	var tokens []Token
	for {
		tok := l.next()
		tokens = append(tokens, tok)
		if tok.Kind == EOF || tok.Kind == Illegal {
			if tok.Kind == Illegal {
				tokens = append(tokens, Token{Kind: EOF, Line: l.line, Pos: l.pos})
			}
			return tokens
		}
	}
}

func (l *lexer) peek() (rune, bool) {
	if l.idx >= len(l.src) {
		return 0, false
	}
	return l.src[l.idx], true
}

func (l *lexer) advance() {
	if l.idx < len(l.src) {
		if l.src[l.idx] == '\n' {
			l.line++
			l.pos = 1
		} else {
			l.pos++
		}
		l.idx++
	}
}

func (l *lexer) skipSpace() {
	for {
		c, ok := l.peek()
		if !ok || !isSpace(c) {
			return
		}
		l.advance()
	}
}

func (l *lexer) next() Token {
	l.skipSpace()
	line, pos := l.line, l.pos
	c, ok := l.peek()
	if !ok {
		return Token{Kind: EOF, Line: line, Pos: pos}
	}

	switch {
	case isIdentStart(c):
		return l.lexIdent(line, pos)
	case isDigit(c):
		return l.lexNumber(line, pos)
	case c == '"':
		return l.lexString(line, pos)
	}

	l.advance()
	switch c {
	case '(':
		return Token{Kind: LeftBrace, Src: "(", Line: line, Pos: pos}
	case ')':
		return Token{Kind: RightBrace, Src: ")", Line: line, Pos: pos}
	case '<':
		if n, ok := l.peek(); ok && n == '=' {
			l.advance()
			return Token{Kind: LessOrEqual, Src: "<=", Line: line, Pos: pos}
		}
		return Token{Kind: Less, Src: "<", Line: line, Pos: pos}
	case '>':
		if n, ok := l.peek(); ok && n == '=' {
			l.advance()
			return Token{Kind: GreaterOrEqual, Src: ">=", Line: line, Pos: pos}
		}
		return Token{Kind: Greater, Src: ">", Line: line, Pos: pos}
	case '=':
		if n, ok := l.peek(); ok {
			switch n {
			case '=':
				l.advance()
				return Token{Kind: Equals, Src: "==", Line: line, Pos: pos}
			case '~':
				l.advance()
				return Token{Kind: Matches, Src: "=~", Line: line, Pos: pos}
			}
		}
		return Token{Kind: Equals, Src: "=", Line: line, Pos: pos}
	case '!':
		if n, ok := l.peek(); ok {
			switch n {
			case '=':
				l.advance()
				return Token{Kind: NotEquals, Src: "!=", Line: line, Pos: pos}
			case '~':
				l.advance()
				return Token{Kind: NotMatches, Src: "!~", Line: line, Pos: pos}
			}
		}
		return Token{Kind: Illegal, Src: "!", Line: line, Pos: pos}
	}
	return Token{Kind: Illegal, Src: string(c), Line: line, Pos: pos}
}

func (l *lexer) lexIdent(line, pos int) Token {
	var sb strings.Builder
	for {
		c, ok := l.peek()
		if !ok || !isIdentPart(c) {
			break
		}
		sb.WriteRune(c)
		l.advance()
	}
	src := sb.String()
	switch strings.ToLower(src) {
	case "and":
		return Token{Kind: And, Src: src, Line: line, Pos: pos}
	case "or":
		return Token{Kind: Or, Src: src, Line: line, Pos: pos}
	}
	return Token{Kind: Ident, Src: src, Line: line, Pos: pos}
}

func (l *lexer) lexNumber(line, pos int) Token {
	var sb strings.Builder
	float := false
	for {
		c, ok := l.peek()
		if !ok {
			break
		}
		if c == '.' {
			if float {
				return Token{Kind: Illegal, Src: sb.String() + ".", Line: line, Pos: pos}
			}
			float = true
			sb.WriteRune(c)
			l.advance()
			continue
		}
		if !isDigit(c) {
			break
		}
		sb.WriteRune(c)
		l.advance()
	}
	kind := Integer
	if float {
		kind = Float
	}
	return Token{Kind: kind, Src: sb.String(), Line: line, Pos: pos}
}

func (l *lexer) lexString(line, pos int) Token {
	l.advance() // opening quote
	var sb strings.Builder
	for {
		c, ok := l.peek()
		if !ok {
			// unterminated
			return Token{Kind: Illegal, Src: sb.String(), Line: line, Pos: pos}
		}
		l.advance()
		switch c {
		case '"':
			return Token{Kind: String, Src: sb.String(), Line: line, Pos: pos}
		case '\n', '\t', '\r':
			return Token{Kind: Illegal, Src: sb.String(), Line: line, Pos: pos}
		case '\\':
			n, ok := l.peek()
			if !ok {
				return Token{Kind: Illegal, Src: sb.String(), Line: line, Pos: pos}
			}
			l.advance()
			switch n {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '\n', '\t', '\r':
				// raw control characters stay illegal even after a
				// backslash
				return Token{Kind: Illegal, Src: sb.String(), Line: line, Pos: pos}
			default:
				sb.WriteRune(n)
			}
		default:
			sb.WriteRune(c)
		}
	}
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) || isDigit(c) || c == '.'
}
