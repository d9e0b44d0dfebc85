package formula

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Parse parses a single expression of the restricted arithmetic grammar:
//
//	expr    = term { ("+" | "-") term }
//	term    = power { ("*" | "/") power }
//	power   = unary [ "^" power ]          (right-associative)
//	unary   = [ "+" | "-" ] primary
//	primary = number | identifier | identifier "(" args ")" | "(" expr ")"
//
// There is no assignment, no statement sequencing and no way to define a
// function; those constructs fail at parse time with an unsafe ParseError.
func Parse(input string) (Node, error) {
	p := &parser{lex: newLexer(input)}
	p.advance()
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.tok.Type == TokenAssign {
		return nil, &ParseError{Pos: p.tok.Pos, Message: "assignment is not allowed in expressions", Unsafe: true}
	}
	if p.tok.Type != TokenEOF {
		return nil, p.unexpected()
	}
	return node, nil
}

type parser struct {
	lex *lexer
	tok Token
}

func (p *parser) advance() {
	p.tok = p.lex.next()
}

func (p *parser) unexpected() *ParseError {
	if p.tok.Type == TokenAssign {
		return &ParseError{Pos: p.tok.Pos, Message: "assignment is not allowed in expressions", Unsafe: true}
	}
	if p.tok.Type == TokenIllegal {
		return &ParseError{Pos: p.tok.Pos, Message: fmt.Sprintf("illegal character %q", p.tok.Literal)}
	}
	return &ParseError{Pos: p.tok.Pos, Message: fmt.Sprintf("unexpected %s", p.tok.Type)}
}

func (p *parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.tok.Type == TokenPlus || p.tok.Type == TokenMinus {
		op := p.tok.Type
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (Node, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.tok.Type == TokenStar || p.tok.Type == TokenSlash {
		op := p.tok.Type
		p.advance()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parsePower() (Node, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.tok.Type == TokenCaret {
		p.advance()
		exp, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		return &BinaryNode{Op: TokenCaret, Left: base, Right: exp}, nil
	}
	return base, nil
}

func (p *parser) parseUnary() (Node, error) {
	if p.tok.Type == TokenPlus || p.tok.Type == TokenMinus {
		op := p.tok.Type
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op == TokenPlus {
			return operand, nil
		}
		return &UnaryNode{Op: op, Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, error) {
	switch p.tok.Type {
	case TokenNumber:
		val, err := decimal.NewFromString(p.tok.Literal)
		if err != nil {
			return nil, &ParseError{Pos: p.tok.Pos, Message: fmt.Sprintf("malformed number %q", p.tok.Literal)}
		}
		p.advance()
		return &NumberNode{Value: val}, nil

	case TokenIdentifier:
		name := p.tok.Literal
		p.advance()
		if p.tok.Type != TokenLeftParen {
			return &IdentNode{Name: name}, nil
		}
		p.advance()
		var args []Node
		if p.tok.Type != TokenRightParen {
			for {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.tok.Type != TokenComma {
					break
				}
				p.advance()
			}
		}
		if p.tok.Type != TokenRightParen {
			return nil, p.unexpected()
		}
		p.advance()
		return &CallNode{Name: name, Args: args}, nil

	case TokenLeftParen:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.tok.Type != TokenRightParen {
			return nil, p.unexpected()
		}
		p.advance()
		return inner, nil

	default:
		return nil, p.unexpected()
	}
}
