package symcalc

import (
	"errors"
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Precedences of the standard operators.
const (
	PrecAdd  = 1 // + -
	PrecMul  = 2 // * / %
	PrecNeg  = 3 // unary + - ~
	PrecPow  = 4 // ^
	PrecFunc = 5 // sin, sqrt, max, ...
)

// stdConstPrec is the precision of the standard constants. It only needs to
// exceed the precision of any reasonable evaluator.
const stdConstPrec = 256

// NewStandardRegistry creates a registry holding the standard arithmetic
// operators, functions, and constants.
func NewStandardRegistry() *Registry {
	reg := NewRegistry()
	for _, op := range stdops() {
		if err := reg.AddOperator(op); err != nil {
			panic("symcalc: bad standard operator: " + err.Error())
		}
	}
	pi := bigfloat.Pi(new(big.Float).SetPrec(stdConstPrec))
	one := new(big.Float).SetPrec(stdConstPrec).SetInt64(1)
	e := bigfloat.Exp(new(big.Float).SetPrec(stdConstPrec), one)
	reg.consts["pi"] = pi
	reg.consts["π"] = pi
	reg.consts["e"] = e
	return reg
}

func stdops() []OperatorInfo {
	infix := func(sym string, prec int, assoc Associativity, f OpFunc) OperatorInfo {
		return OperatorInfo{Symbol: sym, Arity: 2, Precedence: prec, Assoc: assoc, Infix: true, Func: f}
	}
	unary := func(sym string, prec int, f OpFunc) OperatorInfo {
		return OperatorInfo{Symbol: sym, Arity: 1, Precedence: prec, Assoc: Right, Func: f}
	}
	return []OperatorInfo{
		infix("+", PrecAdd, Left, Dyadic((*big.Float).Add)),
		infix("-", PrecAdd, Left, Dyadic((*big.Float).Sub)),
		infix("*", PrecMul, Left, Dyadic((*big.Float).Mul)),
		infix("/", PrecMul, Left, quo),
		infix("%", PrecMul, Left, mod),
		infix("^", PrecPow, Right, pow),

		unary("-", PrecNeg, Monadic((*big.Float).Neg)),
		unary("~", PrecNeg, Monadic((*big.Float).Neg)),
		unary("+", PrecNeg, Monadic((*big.Float).Set)),

		unary("sqrt", PrecFunc, sqrt),
		unary("abs", PrecFunc, Monadic((*big.Float).Abs)),
		unary("exp", PrecFunc, Monadic(bigfloat.Exp)),
		unary("ln", PrecFunc, ln),
		unary("log", PrecFunc, log10),
		unary("sin", PrecFunc, viaFloat64(math.Sin)),
		unary("cos", PrecFunc, viaFloat64(math.Cos)),
		unary("tan", PrecFunc, viaFloat64(math.Tan)),
		unary("asin", PrecFunc, viaFloat64(math.Asin)),
		unary("acos", PrecFunc, viaFloat64(math.Acos)),
		unary("atan", PrecFunc, viaFloat64(math.Atan)),
		{Symbol: "min", Arity: 2, Precedence: PrecFunc, Assoc: Right, Func: minmax(-1)},
		{Symbol: "max", Arity: 2, Precedence: PrecFunc, Assoc: Right, Func: minmax(1)},
	}
}

// Monadic wraps a function of one argument in the style of math/big into an
// OpFunc. The result is f's return value, which need not be out. If f
// panics with big.ErrNaN, the result is a *DomainError.
func Monadic(f func(out, in *big.Float) *big.Float) OpFunc {
	return func(r *big.Float, args []*big.Float) (err error) {
		defer catchNaN(&err, args)
		setResult(r, f(r, args[0]))
		return nil
	}
}

// Dyadic wraps a function of two arguments in the style of math/big into an
// OpFunc. The result is f's return value, which need not be out. If f
// panics with big.ErrNaN, the result is a *DomainError.
func Dyadic(f func(out, x, y *big.Float) *big.Float) OpFunc {
	return func(r *big.Float, args []*big.Float) (err error) {
		defer catchNaN(&err, args)
		setResult(r, f(r, args[0], args[1]))
		return nil
	}
}

func setResult(r, v *big.Float) {
	if v != r {
		r.Set(v)
	}
}

// catchNaN converts a big.ErrNaN panic into a *DomainError. Other panics
// continue.
func catchNaN(err *error, args []*big.Float) {
	r := recover()
	if r == nil {
		return
	}
	e, ok := r.(error)
	if !ok || !errors.As(e, new(big.ErrNaN)) {
		panic(r)
	}
	*err = nanDomain(args)
}

// nanDomain creates a DomainError for a NaN result without knowing which
// argument caused it. Single arguments are reported; otherwise X is nil.
func nanDomain(args []*big.Float) *DomainError {
	if len(args) == 1 {
		return &DomainError{X: new(big.Float).Copy(args[0]), Arg: 1}
	}
	return &DomainError{}
}

func domain(args []*big.Float, i int) *DomainError {
	return &DomainError{X: new(big.Float).Copy(args[i]), Arg: i + 1}
}

func quo(r *big.Float, args []*big.Float) error {
	x, y := args[0], args[1]
	if y.Sign() == 0 || x.IsInf() && y.IsInf() {
		return domain(args, 1)
	}
	r.Quo(x, y)
	return nil
}

// mod computes the remainder of truncated division, with the sign of the
// dividend.
func mod(r *big.Float, args []*big.Float) error {
	x, y := args[0], args[1]
	switch {
	case y.Sign() == 0, y.IsInf():
		return domain(args, 1)
	case x.IsInf():
		return domain(args, 0)
	}
	// The quotient needs enough precision to hold its integer part exactly.
	prec := r.Prec()
	if d := x.MantExp(nil) - y.MantExp(nil); d > 0 {
		prec += uint(d)
	}
	q := new(big.Float).SetPrec(prec)
	q.Quo(x, y)
	n, _ := q.Int(nil)
	q.SetInt(n)
	q.Mul(q, y)
	r.Sub(x, q)
	return nil
}

// maxIntPow is the largest exponent computed by repeated squaring.
const maxIntPow = 1 << 20

func pow(r *big.Float, args []*big.Float) error {
	x, y := args[0], args[1]
	if y.IsInt() {
		if n, acc := y.Int64(); acc == big.Exact && -maxIntPow <= n && n <= maxIntPow {
			return intpow(r, args, n)
		}
	}
	switch x.Sign() {
	case -1:
		if !y.IsInt() {
			return domain(args, 0)
		}
		// Huge integer exponent: |x|^y with the sign from y's parity.
		n, _ := y.Int(nil)
		realpow(r, new(big.Float).SetPrec(r.Prec()).Abs(x), y)
		if n.Bit(0) == 1 {
			r.Neg(r)
		}
		return nil
	case 0:
		if y.Sign() < 0 {
			return domain(args, 0)
		}
		r.SetInt64(0)
		return nil
	}
	if y.IsInf() {
		return domain(args, 1)
	}
	realpow(r, x, y)
	return nil
}

// realpow sets r to x^y for positive x, which may be infinite, and finite
// nonzero y.
func realpow(r, x, y *big.Float) {
	if x.IsInf() {
		if y.Sign() > 0 {
			r.SetInf(false)
		} else {
			r.SetInt64(0)
		}
		return
	}
	// bigfloat.Pow may return a different value than its first argument.
	r.Set(bigfloat.Pow(new(big.Float).SetPrec(r.Prec()), x, y))
}

// intpow computes x^n by repeated squaring.
func intpow(r *big.Float, args []*big.Float, n int64) error {
	x := args[0]
	if x.Sign() == 0 && n < 0 {
		return domain(args, 0)
	}
	neg := n < 0
	if neg {
		n = -n
	}
	b := new(big.Float).SetPrec(r.Prec()).Set(x)
	r.SetInt64(1)
	for n > 0 {
		if n&1 != 0 {
			r.Mul(r, b)
		}
		n >>= 1
		if n > 0 {
			b.Mul(b, b)
		}
	}
	if neg {
		r.Quo(b.SetInt64(1), r)
	}
	return nil
}

func sqrt(r *big.Float, args []*big.Float) error {
	if args[0].Sign() < 0 {
		return domain(args, 0)
	}
	r.Sqrt(args[0])
	return nil
}

func ln(r *big.Float, args []*big.Float) error {
	if args[0].Sign() <= 0 {
		return domain(args, 0)
	}
	setResult(r, bigfloat.Log(r, args[0]))
	return nil
}

func log10(r *big.Float, args []*big.Float) error {
	if args[0].Sign() <= 0 {
		return domain(args, 0)
	}
	ten := new(big.Float).SetPrec(r.Prec()).SetInt64(10)
	ten = bigfloat.Log(ten, ten)
	setResult(r, bigfloat.Log(r, args[0]))
	r.Quo(r, ten)
	return nil
}

// viaFloat64 wraps a float64 function. bigfloat has no trigonometry, so these
// are only accurate to double precision.
func viaFloat64(f func(float64) float64) OpFunc {
	return func(r *big.Float, args []*big.Float) error {
		x, _ := args[0].Float64()
		y := f(x)
		if math.IsNaN(y) {
			return domain(args, 0)
		}
		r.SetFloat64(y)
		return nil
	}
}

// minmax selects the smaller argument when sign is -1 or the larger when it is
// 1.
func minmax(sign int) OpFunc {
	return func(r *big.Float, args []*big.Float) error {
		x, y := args[0], args[1]
		if x.Cmp(y) == sign {
			r.Set(x)
		} else {
			r.Set(y)
		}
		return nil
	}
}

// DomainError is an error returned when an operator is applied to arguments
// outside its domain. DomainError unwraps to big.ErrNaN.
type DomainError struct {
	// X is the out-of-domain argument, or nil if it is not known.
	X *big.Float
	// Arg is the 1-based index of the argument, or 0 if it is not known.
	Arg int
	// Func is the operator symbol.
	Func string
}

func (err *DomainError) Error() string {
	r := "argument outside domain"
	if err.X != nil {
		r = err.X.String() + " outside domain"
	}
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

func (err *DomainError) Unwrap() error {
	return big.ErrNaN{}
}

func (err *DomainError) Is(target error) bool {
	return target == ErrEval
}
