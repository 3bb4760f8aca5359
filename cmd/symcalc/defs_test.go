package main

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/zephyrtronium/symcalc"
)

func TestLoadDefs(t *testing.T) {
	const src = `
constants:
  tau: 2*pi
  half_tau: tau / 2
  g: 9.80665
  pi: 3
aliases:
  - symbol: "**"
    for: "^"
    infix: true
  - symbol: mod
    for: "%"
    infix: true
  - symbol: neg
    for: "-"
`
	reg := symcalc.NewStandardRegistry()
	if err := loadDefs(strings.NewReader(src), reg, 64); err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		expr string
		r    float64
	}{
		{"tau", 2 * math.Pi},
		{"half_tau", math.Pi},
		{"g", 9.80665},
		{"pi", 3},
		{"2 ** 3 ** 2", 512},
		{"7 mod 3", 1},
		{"neg 2", -2},
	}
	for _, c := range cases {
		r, err := symcalc.Calculate(c.expr, reg)
		if err != nil {
			t.Errorf("%q failed: %v", c.expr, err)
			continue
		}
		if f, _ := r.Float64(); f != c.r {
			t.Errorf("%q: want %g, got %g", c.expr, c.r, r)
		}
	}
	op, err := reg.Operator("**", true)
	if err != nil {
		t.Fatal(err)
	}
	if op.Precedence != symcalc.PrecPow || op.Assoc != symcalc.Right {
		t.Errorf("alias ** does not bind like ^: %+v", op)
	}
}

func TestLoadDefsAliasFirst(t *testing.T) {
	const src = `
constants:
  x: 2 ** 4
aliases:
  - symbol: "**"
    for: "^"
    infix: true
`
	reg := symcalc.NewStandardRegistry()
	if err := loadDefs(strings.NewReader(src), reg, 64); err != nil {
		t.Fatal(err)
	}
	v, err := reg.Const("x")
	if err != nil {
		t.Fatal(err)
	}
	if f, _ := v.Float64(); f != 16 {
		t.Errorf("x is %g", v)
	}
}

func TestLoadDefsEmpty(t *testing.T) {
	for _, src := range []string{"", "aliases: []\n", "constants: {}\n"} {
		if err := loadDefs(strings.NewReader(src), symcalc.NewStandardRegistry(), 64); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestLoadDefsErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
	}{
		{"yaml", "constants: [", nil},
		{"not-mapping", "constants: [1, 2]\n", nil},
		{"nested", "constants:\n  x: {y: 1}\n", nil},
		{"parse", "constants:\n  x: 1 +\n", symcalc.ErrParse},
		{"eval", "constants:\n  x: 1/0\n", symcalc.ErrEval},
		{"name", "constants:\n  2x: 1\n", symcalc.ErrRegistry},
		{"alias-unknown", "aliases:\n  - {symbol: \"**\", for: \"#\", infix: true}\n", symcalc.ErrRegistry},
		{"alias-dup", "aliases:\n  - {symbol: \"*\", for: \"^\", infix: true}\n", symcalc.ErrRegistry},
		{"alias-placement", "aliases:\n  - {symbol: \"**\", for: \"^\"}\n", symcalc.ErrRegistry},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := loadDefs(strings.NewReader(c.src), symcalc.NewStandardRegistry(), 64)
			if err == nil {
				t.Fatal("no error")
			}
			if c.err != nil && !errors.Is(err, c.err) {
				t.Errorf("want %v, got %v", c.err, err)
			}
		})
	}
}

func TestDefine(t *testing.T) {
	reg := symcalc.NewStandardRegistry()
	if err := define(reg, "x", "1 + 1", 64); err != nil {
		t.Fatal(err)
	}
	// Redefining replaces, and may refer to the old value.
	if err := define(reg, "x", "x * 10", 64); err != nil {
		t.Fatal(err)
	}
	v, err := reg.Const("x")
	if err != nil {
		t.Fatal(err)
	}
	if f, _ := v.Float64(); f != 20 {
		t.Errorf("x is %g", v)
	}
}
