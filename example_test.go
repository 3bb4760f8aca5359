package symcalc_test

import (
	"fmt"
	"math/big"

	"github.com/zephyrtronium/symcalc"
)

func ExampleRegistry_AddOperator() {
	reg := symcalc.NewStandardRegistry()
	// hypot binds like the other functions and takes two arguments.
	hypot := symcalc.OperatorInfo{
		Symbol:     "hypot",
		Arity:      2,
		Precedence: symcalc.PrecFunc,
		Assoc:      symcalc.Right,
		Func: func(r *big.Float, args []*big.Float) error {
			x := new(big.Float).Mul(args[0], args[0])
			y := new(big.Float).Mul(args[1], args[1])
			r.Sqrt(x.Add(x, y))
			return nil
		},
	}
	if err := reg.AddOperator(hypot); err != nil {
		panic(err)
	}
	r, err := symcalc.Calculate("hypot(3, 4) * 2", reg)
	fmt.Println(r, err)

	// Output:
	// 10 <nil>
}

func ExampleRegistry_UpdateOperator() {
	reg := symcalc.NewStandardRegistry()
	rpn, _ := symcalc.StringToRPN("2 ^ 3 ^ 2", reg)
	fmt.Println(rpn)

	// Parsing with a left-associative ^ groups differently.
	op, _ := reg.Operator("^", true)
	op.Assoc = symcalc.Left
	reg.UpdateOperator(op)
	left, _ := symcalc.StringToRPN("2 ^ 3 ^ 2", reg)
	fmt.Println(left)

	a, _ := symcalc.CalculateRPN(rpn, reg)
	b, _ := symcalc.CalculateRPN(left, reg)
	fmt.Println(a, b)

	// Output:
	// 2 3 2 ^ ^
	// 2 3 ^ 2 ^
	// 512 64
}

func ExampleEvaluator() {
	reg := symcalc.NewStandardRegistry()
	rpn, err := symcalc.StringToRPN("1 / 3", reg)
	if err != nil {
		panic(err)
	}
	for _, prec := range []uint{8, 24, 53} {
		r, _ := symcalc.NewEvaluator(reg, symcalc.Prec(prec)).Eval(rpn)
		fmt.Println(r.Text('g', 20))
	}

	// Output:
	// 0.333984375
	// 0.3333333432674407959
	// 0.33333333333333331483
}

func ExampleCalculate_error() {
	reg := symcalc.NewStandardRegistry()
	_, err := symcalc.Calculate("1 + sqrt(2 - 3)", reg)
	fmt.Println(err)
	_, err = symcalc.Calculate("2 * (3 + 4", reg)
	fmt.Println(err)

	// Output:
	// 5: prefix "sqrt": -1 outside domain of sqrt (argument 1)
	// 5: open bracket ( with no close bracket
}
