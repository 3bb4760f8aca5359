package symcalc

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
)

// Evaluator evaluates RPN expressions. It keeps its value stack and parsed
// numbers between evaluations, so reusing one Evaluator for many evaluations
// of the same expression avoids most allocation. It is not safe to use an
// Evaluator concurrently.
type Evaluator struct {
	reg   *Registry
	stack []*big.Float
	nums  map[string]*big.Float
	// tmp receives operator results so that they never alias arguments.
	tmp  *big.Float
	prec uint
}

// EvalOption is an option used when creating an evaluator.
type EvalOption interface {
	evalOption()
}

type precopt uint

func (precopt) evalOption() {}

// Prec sets the precision of calculations in bits.
func Prec(prec uint) EvalOption {
	return precopt(prec)
}

// NewEvaluator creates an evaluator that looks up operators in reg. If no
// precision is given, the default is 64. The evaluator holds reg rather than a
// copy, so reg must not be modified during evaluation.
func NewEvaluator(reg *Registry, opts ...EvalOption) *Evaluator {
	ev := Evaluator{
		reg:  reg,
		nums: make(map[string]*big.Float),
		prec: 64,
	}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil:
			// do nothing
		case precopt:
			ev.prec = uint(opt)
		default:
			panic("symcalc: unknown option type")
		}
	}
	if ev.prec == 0 {
		ev.prec = 64
	}
	ev.tmp = new(big.Float).SetPrec(ev.prec)
	return &ev
}

// Prec returns the precision to which values are computed.
func (ev *Evaluator) Prec() uint {
	return ev.prec
}

// Eval evaluates an expression and returns its result, which the caller owns.
// Evaluation stops at the first error.
func (ev *Evaluator) Eval(rpn RPN) (*big.Float, error) {
	ev.stack = ev.stack[:0]
	for i, tok := range rpn {
		switch tok.Kind {
		case TokenNumber:
			x, err := ev.num(tok)
			if err != nil {
				return nil, err
			}
			ev.push().Set(x)
		case TokenConstant:
			v := tok.Value
			if v == nil {
				// Built by hand rather than scanned; use the current value.
				var err error
				if v, err = ev.reg.Const(tok.Text); err != nil {
					return nil, err
				}
			}
			ev.push().Set(v)
		case TokenOperator:
			if err := ev.apply(i, tok); err != nil {
				return nil, err
			}
		default:
			return nil, &MalformedExpressionError{Index: i, Token: &tok}
		}
	}
	if len(ev.stack) != 1 {
		return nil, &MalformedExpressionError{Index: len(rpn), Values: len(ev.stack)}
	}
	return new(big.Float).Copy(ev.stack[0]), nil
}

// apply evaluates the operator tok, the ith token of its expression.
func (ev *Evaluator) apply(i int, tok Token) error {
	op, err := ev.reg.Operator(tok.Op.Symbol, tok.Op.Infix)
	if err != nil {
		return err
	}
	if len(ev.stack) < op.Arity {
		return &StackUnderflowError{Index: i, Col: tok.Pos, Op: tok.Op, Want: op.Arity, Have: len(ev.stack)}
	}
	k := len(ev.stack) - op.Arity
	r := ev.tmp.SetPrec(ev.prec)
	if err := call(op, r, ev.stack[k:len(ev.stack):len(ev.stack)]); err != nil {
		var de *DomainError
		if errors.As(err, &de) && de.Func == "" {
			de.Func = op.Symbol
		}
		return &OpError{Index: i, Col: tok.Pos, Op: tok.Op, Err: err}
	}
	// The result replaces the first argument, and the old first argument
	// becomes the next result slot.
	ev.stack[k], ev.tmp = r, ev.stack[k]
	ev.stack = ev.stack[:k+1]
	return nil
}

// call calls an operator's function, converting big.ErrNaN panics into
// domain errors.
func call(op OperatorInfo, r *big.Float, args []*big.Float) (err error) {
	defer catchNaN(&err, args)
	return op.Func(r, args)
}

// push ensures a settable value on the stack.
func (ev *Evaluator) push() *big.Float {
	if len(ev.stack) < cap(ev.stack) {
		ev.stack = ev.stack[:len(ev.stack)+1]
		if ev.stack[len(ev.stack)-1] == nil {
			ev.stack[len(ev.stack)-1] = new(big.Float)
		}
	} else {
		ev.stack = append(ev.stack, new(big.Float))
	}
	return ev.stack[len(ev.stack)-1].SetPrec(ev.prec)
}

// num gets a possibly cached number from its token.
func (ev *Evaluator) num(tok Token) (*big.Float, error) {
	if r := ev.nums[tok.Text]; r != nil {
		return r, nil
	}
	r, _, err := new(big.Float).SetPrec(ev.prec).Parse(tok.Text, 10)
	switch {
	case err == nil: // do nothing
	case err.Error() == "exponent overflow",
		strings.HasSuffix(err.Error(), ": value out of range"):
		// There isn't realistically any better way to detect this error.
		// Literals are unsigned, so only the exponent's sign matters.
		if strings.Contains(tok.Text, "-") {
			r = new(big.Float).SetPrec(ev.prec)
		} else {
			r = new(big.Float).SetInf(false)
		}
	default:
		return nil, &NumberError{Col: tok.Pos, Text: tok.Text}
	}
	ev.nums[tok.Text] = r
	return r, nil
}

// Calculate parses and evaluates an expression. The first error from parsing
// or evaluation is returned unchanged.
func Calculate(expr string, reg *Registry, opts ...EvalOption) (*big.Float, error) {
	rpn, err := StringToRPN(expr, reg)
	if err != nil {
		return nil, err
	}
	return NewEvaluator(reg, opts...).Eval(rpn)
}

// CalculateRPN evaluates an expression that has already been parsed. To
// evaluate the same expression many times, prefer reusing an Evaluator.
func CalculateRPN(rpn RPN, reg *Registry, opts ...EvalOption) (*big.Float, error) {
	return NewEvaluator(reg, opts...).Eval(rpn)
}

// StackUnderflowError is an error indicating an operator with fewer operands
// than its arity. It implements InputError.
type StackUnderflowError struct {
	// Index is the position of the operator in the RPN expression.
	Index int
	// Col is the operator's position in the source.
	Col int
	// Op is the operator.
	Op OpKey
	// Want is the operator's arity.
	Want int
	// Have is the number of values that were available.
	Have int
}

func (err *StackUnderflowError) Error() string {
	return errpos(err.Col, err.Op.String()+" needs "+strconv.Itoa(err.Want)+" operands, have "+strconv.Itoa(err.Have))
}

func (err *StackUnderflowError) Pos() int {
	return err.Col
}

func (err *StackUnderflowError) Is(target error) bool {
	return target == ErrEval
}

// MalformedExpressionError is an error indicating an RPN expression that does
// not produce exactly one value, or that contains tokens other than numbers,
// constants, and operators.
type MalformedExpressionError struct {
	// Index is the position of the offending token in the RPN expression, or
	// its length if the problem is the number of values left.
	Index int
	// Token is the offending token, or nil if the problem is the number of
	// values left.
	Token *Token
	// Values is the number of values left after evaluating every token.
	Values int
}

func (err *MalformedExpressionError) Error() string {
	if err.Token != nil {
		return "malformed expression: unexpected " + err.Token.Kind.String() + " token at index " + strconv.Itoa(err.Index)
	}
	return "malformed expression: " + strconv.Itoa(err.Values) + " values left, want 1"
}

func (err *MalformedExpressionError) Is(target error) bool {
	return target == ErrEval
}

// OpError is an error returned by an operator's function. It implements
// InputError and unwraps to the function's error.
type OpError struct {
	// Index is the position of the operator in the RPN expression.
	Index int
	// Col is the operator's position in the source.
	Col int
	// Op is the operator.
	Op OpKey
	// Err is the error the operator returned.
	Err error
}

func (err *OpError) Error() string {
	return errpos(err.Col, err.Op.String()+": "+err.Err.Error())
}

func (err *OpError) Pos() int {
	return err.Col
}

func (err *OpError) Unwrap() error {
	return err.Err
}

func (err *OpError) Is(target error) bool {
	return target == ErrEval
}
