package symcalc

// StringToRPN parses an infix expression into Reverse Polish Notation using
// the operators and constants in reg. The result can be evaluated any number
// of times with CalculateRPN or an Evaluator.
//
// Parsing checks that operands and operators alternate and that parentheses
// match. It does not check operator arity; that is left to evaluation.
func StringToRPN(expr string, reg *Registry) (RPN, error) {
	return Shunt(NewLexer(expr, reg))
}

// shunted is an entry on the shunting-yard operator stack.
type shunted struct {
	tok Token
	// op is the operator's definition, for operator tokens.
	op OperatorInfo
	// call indicates a left paren that opens a function's argument list, so
	// commas may appear inside it. Functions are identifier prefix operators.
	call bool
}

// Shunt converts the tokens scanned by l into Reverse Polish Notation with the
// shunting-yard algorithm, using the precedences in the lexer's registry.
func Shunt(l *Lexer) (RPN, error) {
	reg := l.reg
	var (
		out   RPN
		stack []shunted
		// want indicates that the next token must begin an operand.
		want = true
		// fn indicates that the last token was an identifier prefix operator.
		fn bool
	)
	pop := func() shunted {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return s
	}
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		wasFn := fn
		fn = false
		switch tok.Kind {
		case TokenNumber, TokenConstant:
			if !want {
				return nil, &TokenError{Col: tok.Pos, Text: tok.Text, Want: "operator"}
			}
			out = append(out, tok)
			want = false

		case TokenOperator:
			op, ok := reg.ops[tok.Op]
			if !ok {
				// The lexer only produces registered operators.
				panic("symcalc: lexer produced unknown " + tok.Op.String())
			}
			if !op.Infix {
				// A prefix operator has no left operand yet, so nothing on
				// the stack can be complete.
				stack = append(stack, shunted{tok: tok, op: op})
				fn = isIdent(op.Symbol)
				continue
			}
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.tok.Kind != TokenOperator || !yields(op, top.op) {
					break
				}
				out = append(out, pop().tok)
			}
			stack = append(stack, shunted{tok: tok, op: op})
			want = true

		case TokenLeftParen:
			if !want {
				return nil, &TokenError{Col: tok.Pos, Text: tok.Text, Want: "operator"}
			}
			stack = append(stack, shunted{tok: tok, call: wasFn})

		case TokenRightParen:
			if want {
				return nil, &TokenError{Col: tok.Pos, Text: tok.Text, Want: "operand"}
			}
			for {
				if len(stack) == 0 {
					return nil, &BracketError{Col: tok.Pos, Right: tok.Text}
				}
				s := pop()
				if s.tok.Kind == TokenLeftParen {
					break
				}
				out = append(out, s.tok)
			}
			// A function applies to its parenthesized arguments before
			// anything that follows.
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.tok.Kind == TokenOperator && !top.op.Infix && isIdent(top.op.Symbol) {
					out = append(out, pop().tok)
				}
			}

		case TokenSep:
			if want {
				return nil, &TokenError{Col: tok.Pos, Text: tok.Text, Want: "operand"}
			}
			for {
				if len(stack) == 0 {
					return nil, &TokenError{Col: tok.Pos, Text: tok.Text, Want: "operator"}
				}
				top := stack[len(stack)-1]
				if top.tok.Kind == TokenLeftParen {
					if !top.call {
						return nil, &TokenError{Col: tok.Pos, Text: tok.Text, Want: "operator"}
					}
					break
				}
				out = append(out, pop().tok)
			}
			want = true

		case TokenEOF:
			if want {
				return nil, &TokenError{Col: tok.Pos, Want: "operand"}
			}
			for len(stack) > 0 {
				s := pop()
				if s.tok.Kind == TokenLeftParen {
					return nil, &BracketError{Col: s.tok.Pos, Left: s.tok.Text}
				}
				out = append(out, s.tok)
			}
			return out, nil

		default:
			panic("symcalc: unknown token: " + tok.String())
		}
	}
}

// yields reports whether the operator top, already on the stack, must be
// output before the incoming operator op is pushed.
func yields(op, top OperatorInfo) bool {
	if top.Precedence != op.Precedence {
		return top.Precedence > op.Precedence
	}
	return op.Assoc == Left
}
