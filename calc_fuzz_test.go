//go:build go1.18
// +build go1.18

package symcalc_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/symcalc"
)

func FuzzCalculate(f *testing.F) {
	f.Add("1 + 2 * 3")
	f.Add("-2^-2")
	f.Add("max(sin(pi), e) % 0")
	f.Add("1×2")
	reg := symcalc.NewStandardRegistry()
	f.Fuzz(func(t *testing.T, s string) {
		r, err := symcalc.Calculate(s, reg)
		if err == nil {
			if r == nil {
				t.Fatalf("%q gave no result and no error", s)
			}
			return
		}
		if !errors.Is(err, symcalc.ErrParse) && !errors.Is(err, symcalc.ErrEval) {
			t.Fatalf("%q gave uncategorized error %#v", s, err)
		}
	})
}

func FuzzStringToRPN(f *testing.F) {
	f.Add("x")
	f.Add("(1, 2)")
	f.Add("max(1 + 2, 3) * 2")
	f.Add("1×2")
	reg := symcalc.NewStandardRegistry()
	f.Fuzz(func(t *testing.T, s string) {
		rpn, err := symcalc.StringToRPN(s, reg)
		if err != nil {
			var ie symcalc.InputError
			if !errors.As(err, &ie) || !errors.Is(err, symcalc.ErrParse) {
				t.Fatalf("%q gave %#v", s, err)
			}
			return
		}
		for _, tok := range rpn {
			switch tok.Kind {
			case symcalc.TokenNumber, symcalc.TokenConstant, symcalc.TokenOperator:
			default:
				t.Fatalf("%q gave %v containing %v", s, rpn, tok)
			}
		}
	})
}
