package formula

import "github.com/shopspring/decimal"

// Node is a node of the parsed expression tree. The grammar is deliberately
// small: numbers, identifiers, + - * / ^, unary sign, parentheses and calls
// to allow-listed functions. Assignment and function definition are not part
// of the grammar; the parser rejects them before any evaluation happens.
type Node interface {
	node()
}

// NumberNode is a decimal literal.
type NumberNode struct {
	Value decimal.Decimal
}

// IdentNode references an input or an earlier expression result.
type IdentNode struct {
	Name string
}

// UnaryNode is a prefix sign, e.g. -thickness.
type UnaryNode struct {
	Op      TokenType // TokenPlus or TokenMinus
	Operand Node
}

// BinaryNode is an infix arithmetic operation.
type BinaryNode struct {
	Op    TokenType // TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenCaret
	Left  Node
	Right Node
}

// CallNode is a call to an allow-listed function, e.g. ceil(bags).
type CallNode struct {
	Name string
	Args []Node
}

func (*NumberNode) node() {}
func (*IdentNode) node()  {}
func (*UnaryNode) node()  {}
func (*BinaryNode) node() {}
func (*CallNode) node()   {}

// Walk visits n and every descendant in depth-first order, stopping at the
// first visitor error.
func Walk(n Node, visit func(Node) error) error {
	if n == nil {
		return nil
	}
	if err := visit(n); err != nil {
		return err
	}
	switch t := n.(type) {
	case *UnaryNode:
		return Walk(t.Operand, visit)
	case *BinaryNode:
		if err := Walk(t.Left, visit); err != nil {
			return err
		}
		return Walk(t.Right, visit)
	case *CallNode:
		for _, arg := range t.Args {
			if err := Walk(arg, visit); err != nil {
				return err
			}
		}
	}
	return nil
}
