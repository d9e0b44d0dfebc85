package formula

import (
	"fmt"
	"unicode"
)

// TokenType classifies a lexical token of the expression language.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIllegal

	TokenNumber     // 12, 12.5
	TokenIdentifier // length, wall_area

	TokenPlus  // +
	TokenMinus // -
	TokenStar  // *
	TokenSlash // /
	TokenCaret // ^

	TokenLeftParen  // (
	TokenRightParen // )
	TokenComma      // ,

	// TokenAssign is lexed but never accepted by the parser; keeping it as
	// its own token lets the parser report assignment attempts as unsafe
	// rather than as generic syntax noise.
	TokenAssign // = or :=
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of expression"
	case TokenNumber:
		return "number"
	case TokenIdentifier:
		return "identifier"
	case TokenPlus:
		return "'+'"
	case TokenMinus:
		return "'-'"
	case TokenStar:
		return "'*'"
	case TokenSlash:
		return "'/'"
	case TokenCaret:
		return "'^'"
	case TokenLeftParen:
		return "'('"
	case TokenRightParen:
		return "')'"
	case TokenComma:
		return "','"
	case TokenAssign:
		return "'='"
	default:
		return "illegal token"
	}
}

// Token is a lexical token with its source position (byte offset).
type Token struct {
	Type    TokenType
	Literal string
	Pos     int
}

type lexer struct {
	input []rune
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: []rune(input)}
}

func (l *lexer) next() Token {
	for l.pos < len(l.input) && unicode.IsSpace(l.input[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos}
	}

	start := l.pos
	ch := l.input[l.pos]

	switch {
	case unicode.IsDigit(ch) || (ch == '.' && l.peekIsDigit()):
		return l.lexNumber()
	case unicode.IsLetter(ch) || ch == '_':
		return l.lexIdentifier()
	}

	l.pos++
	switch ch {
	case '+':
		return Token{Type: TokenPlus, Literal: "+", Pos: start}
	case '-':
		return Token{Type: TokenMinus, Literal: "-", Pos: start}
	case '*':
		return Token{Type: TokenStar, Literal: "*", Pos: start}
	case '/':
		return Token{Type: TokenSlash, Literal: "/", Pos: start}
	case '^':
		return Token{Type: TokenCaret, Literal: "^", Pos: start}
	case '(':
		return Token{Type: TokenLeftParen, Literal: "(", Pos: start}
	case ')':
		return Token{Type: TokenRightParen, Literal: ")", Pos: start}
	case ',':
		return Token{Type: TokenComma, Literal: ",", Pos: start}
	case '=':
		return Token{Type: TokenAssign, Literal: "=", Pos: start}
	case ':':
		if l.pos < len(l.input) && l.input[l.pos] == '=' {
			l.pos++
			return Token{Type: TokenAssign, Literal: ":=", Pos: start}
		}
		return Token{Type: TokenIllegal, Literal: ":", Pos: start}
	default:
		return Token{Type: TokenIllegal, Literal: string(ch), Pos: start}
	}
}

func (l *lexer) peekIsDigit() bool {
	return l.pos+1 < len(l.input) && unicode.IsDigit(l.input[l.pos+1])
}

func (l *lexer) lexNumber() Token {
	start := l.pos
	seenDot := false
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '.' {
			if seenDot {
				break
			}
			seenDot = true
			l.pos++
			continue
		}
		if !unicode.IsDigit(ch) {
			break
		}
		l.pos++
	}
	lit := string(l.input[start:l.pos])
	if lit == "." {
		return Token{Type: TokenIllegal, Literal: lit, Pos: start}
	}
	return Token{Type: TokenNumber, Literal: lit, Pos: start}
}

func (l *lexer) lexIdentifier() Token {
	start := l.pos
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if !unicode.IsLetter(ch) && !unicode.IsDigit(ch) && ch != '_' {
			break
		}
		l.pos++
	}
	return Token{Type: TokenIdentifier, Literal: string(l.input[start:l.pos]), Pos: start}
}

// ParseError reports a syntax failure with its position. Unsafe is set when
// the expression attempted a construct the sandbox forbids outright
// (assignment) rather than being merely malformed.
type ParseError struct {
	Pos     int
	Message string
	Unsafe  bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("position %d: %s", e.Pos, e.Message)
}
