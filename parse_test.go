package symcalc

import (
	"errors"
	"math/big"
	"strings"
	"testing"
)

// show formats an RPN expression with prefix punctuation operators marked by
// a leading u, so that negation and subtraction can be told apart.
func show(rpn RPN) string {
	var b strings.Builder
	for i, tok := range rpn {
		if i > 0 {
			b.WriteByte(' ')
		}
		if tok.Kind == TokenOperator && !tok.Op.Infix && !isIdent(tok.Op.Symbol) {
			b.WriteByte('u')
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}

func TestStringToRPN(t *testing.T) {
	cases := []struct {
		name string
		src  string
		rpn  string
	}{
		{"num", "1", "1"},
		{"const", "pi", "pi"},
		{"parens", "((1))", "1"},
		{"add", "1 + 2", "1 2 +"},
		{"prec", "2 + 3 * 4", "2 3 4 * +"},
		{"prec-paren", "(2 + 3) * 4", "2 3 + 4 *"},
		{"prec-desc", "2 * 3 + 4", "2 3 * 4 +"},
		{"left", "8 - 3 - 2", "8 3 - 2 -"},
		{"left-mixed", "8 / 2 * 4", "8 2 / 4 *"},
		{"right", "2 ^ 3 ^ 2", "2 3 2 ^ ^"},
		{"right-paren", "(2 ^ 3) ^ 2", "2 3 ^ 2 ^"},
		{"mod", "1 % 3 * 2", "1 3 % 2 *"},
		{"neg", "-1", "1 u-"},
		{"negneg", "--1", "1 u- u-"},
		{"tilde", "~5", "5 u~"},
		{"plus", "+5", "5 u+"},
		{"negsub", "-3 - -4", "3 u- 4 u- -"},
		{"negpow", "-2^2", "2 2 ^ u-"},
		{"negparenpow", "-(2)^2", "2 2 ^ u-"},
		{"powneg", "2^-1", "2 1 u- ^"},
		{"mulneg", "2*-3", "2 3 u- *"},
		{"negmul", "-2*3", "2 u- 3 *"},
		{"func", "sin(0) + 1", "0 sin 1 +"},
		{"func-bare", "sin 0 + 1", "0 sin 1 +"},
		{"func-nested", "2 * sin(pi / 2)", "2 pi 2 / sin *"},
		{"func-pow", "sqrt(4)^2", "4 sqrt 2 ^"},
		{"func-args", "max(1 + 2, 3) * 2", "1 2 + 3 max 2 *"},
		{"func-func", "max(min(1, 2), 3)", "1 2 min 3 max"},
		{"func-neg", "-abs(-1)", "1 u- abs u-"},
	}
	reg := NewStandardRegistry()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rpn, err := StringToRPN(c.src, reg)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if got := show(rpn); got != c.rpn {
				t.Errorf("%q: want %q, got %q", c.src, c.rpn, got)
			}
			for i, tok := range rpn {
				switch tok.Kind {
				case TokenNumber, TokenConstant, TokenOperator:
				default:
					t.Errorf("%q: token %d is %v", c.src, i, tok)
				}
			}
		})
	}
}

func TestStringToRPNErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
	}{
		{"empty", "", &TokenError{Col: 1, Want: "operand"}},
		{"blank", "   ", &TokenError{Col: 4, Want: "operand"}},
		{"unclosed", "(2 + 3", &BracketError{Col: 1, Left: "("}},
		{"unclosed-inner", "((2) + 3", &BracketError{Col: 1, Left: "("}},
		{"unopened", "2 + 3)", &BracketError{Col: 6, Right: ")"}},
		{"trailing-op", "2 + ", &TokenError{Col: 5, Want: "operand"}},
		{"trailing-neg", "2 - -", &TokenError{Col: 6, Want: "operand"}},
		{"empty-parens", "()", &TokenError{Col: 2, Text: ")", Want: "operand"}},
		{"op-paren", "(2 +)", &TokenError{Col: 5, Text: ")", Want: "operand"}},
		{"adjacent", "2 3", &TokenError{Col: 3, Text: "3", Want: "operator"}},
		{"adjacent-const", "pi pi", &TokenError{Col: 4, Text: "pi", Want: "operator"}},
		{"implicit-mul", "2 (3)", &TokenError{Col: 3, Text: "(", Want: "operator"}},
		{"bare-comma", "1, 2", &TokenError{Col: 2, Text: ",", Want: "operator"}},
		{"paren-comma", "(1, 2)", &TokenError{Col: 3, Text: ",", Want: "operator"}},
		{"neg-comma", "-(1, 2)", &TokenError{Col: 4, Text: ",", Want: "operator"}},
		{"tilde-comma", "max(~(1, 2))", &TokenError{Col: 8, Text: ",", Want: "operator"}},
		{"trailing-comma", "max(1,)", &TokenError{Col: 7, Text: ")", Want: "operand"}},
		{"leading-comma", "max(,1)", &TokenError{Col: 5, Text: ",", Want: "operand"}},
		{"ident", "2 + foo", &IdentError{Col: 5, Name: "foo"}},
		{"number", "2 + 3.3.3", &NumberError{Col: 5, Text: "3.3.3"}},
		{"infix-start", "* 2", &TokenError{Col: 1, Text: "*", Want: "operand or prefix operator"}},
	}
	reg := NewStandardRegistry()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rpn, err := StringToRPN(c.src, reg)
			if err == nil {
				t.Fatalf("%q parsed as %v", c.src, rpn)
			}
			if !sameError(err, c.err) {
				t.Errorf("%q: want error %#v, got %#v", c.src, c.err, err)
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("%q: %v is not a parse error", c.src, err)
			}
			var ie InputError
			if !errors.As(err, &ie) {
				t.Errorf("%q: %v is not an InputError", c.src, err)
			}
		})
	}
}

func TestStringToRPNPositions(t *testing.T) {
	rpn, err := StringToRPN("1 + sin(2) * 3", NewStandardRegistry())
	if err != nil {
		t.Fatal(err)
	}
	want := []lexed{
		{TokenNumber, "1", false, 1},
		{TokenNumber, "2", false, 9},
		{TokenOperator, "sin", false, 5},
		{TokenNumber, "3", false, 14},
		{TokenOperator, "*", true, 12},
		{TokenOperator, "+", true, 3},
	}
	if len(rpn) != len(want) {
		t.Fatalf("want %d tokens, got %v", len(want), rpn)
	}
	for i, tok := range rpn {
		if got := lexedOf(tok); got != want[i] {
			t.Errorf("token %d: want %+v, got %+v", i, want[i], got)
		}
	}
}

func TestStringToRPNCustomPrecedence(t *testing.T) {
	f := func(r *big.Float, args []*big.Float) error { return nil }
	reg := NewRegistry()
	ops := []OperatorInfo{
		// Addition binds tighter than multiplication here.
		{Symbol: "+", Arity: 2, Precedence: 2, Infix: true, Func: f},
		{Symbol: "*", Arity: 2, Precedence: 1, Infix: true, Func: f},
		// Right-associative subtraction.
		{Symbol: "-", Arity: 2, Precedence: 0, Assoc: Right, Infix: true, Func: f},
		// Three-operand prefix function.
		{Symbol: "clamp", Arity: 3, Precedence: 9, Assoc: Right, Func: f},
	}
	for _, op := range ops {
		if err := reg.AddOperator(op); err != nil {
			t.Fatal(err)
		}
	}
	cases := []struct {
		src, rpn string
	}{
		{"1 * 2 + 3", "1 2 3 + *"},
		{"1 + 2 * 3", "1 2 + 3 *"},
		{"1 - 2 - 3", "1 2 3 - -"},
		{"clamp(1, 2 * 3, 4) - 5", "1 2 3 * 4 clamp 5 -"},
	}
	for _, c := range cases {
		rpn, err := StringToRPN(c.src, reg)
		if err != nil {
			t.Errorf("%q failed to parse: %v", c.src, err)
			continue
		}
		if got := rpn.String(); got != c.rpn {
			t.Errorf("%q: want %q, got %q", c.src, c.rpn, got)
		}
	}
}
