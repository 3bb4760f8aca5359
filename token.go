package symcalc

import (
	"math/big"
	"strconv"
	"strings"
)

// Token is a lexical token of an expression.
type Token struct {
	// Kind is the type of the token.
	Kind TokenKind
	// Text is the token's text in the source. For constants and operators,
	// it is the name or symbol.
	Text string
	// Value is the value of a constant, resolved when the token is scanned.
	// It is nil for other kinds of tokens.
	Value *big.Float
	// Op identifies the operator for operator tokens.
	Op OpKey
	// Pos is the 1-based rune column where the token starts.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenEOF indicates the end of the input.
	TokenEOF
	// TokenNumber is a numeric literal.
	TokenNumber
	// TokenConstant is a named constant.
	TokenConstant
	// TokenOperator is a prefix or infix operator, including functions.
	TokenOperator
	// TokenLeftParen is an open parenthesis.
	TokenLeftParen
	// TokenRightParen is a close parenthesis.
	TokenRightParen
	// TokenSep is a comma separating function arguments.
	TokenSep
)

var tokenKindNames = [...]string{
	TokenNone:       "None",
	TokenEOF:        "EOF",
	TokenNumber:     "Number",
	TokenConstant:   "Constant",
	TokenOperator:   "Operator",
	TokenLeftParen:  "LeftParen",
	TokenRightParen: "RightParen",
	TokenSep:        "Sep",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// RPN is an expression in Reverse Polish Notation. It holds only number,
// constant, and operator tokens, each operator following its operands.
type RPN []Token

// String formats the expression with tokens separated by spaces.
func (e RPN) String() string {
	var b strings.Builder
	for i, tok := range e {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}
