package main

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/symcalc"
)

// definitions is the format of a -defs file.
type definitions struct {
	// Constants maps names to expressions. It is kept as a node so that
	// constants are defined in file order, and later ones can use earlier.
	Constants yaml.Node `yaml:"constants"`
	Aliases   []alias   `yaml:"aliases"`
}

// alias registers an existing operator under another symbol.
type alias struct {
	Symbol string `yaml:"symbol"`
	For    string `yaml:"for"`
	Infix  bool   `yaml:"infix"`
}

// loadDefs reads definitions from r into reg. Aliases are added before
// constants, so constant expressions may use them.
func loadDefs(r io.Reader, reg *symcalc.Registry, prec uint) error {
	var d definitions
	if err := yaml.NewDecoder(r).Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading definitions: %w", err)
	}
	for _, a := range d.Aliases {
		op, err := reg.Operator(a.For, a.Infix)
		if err != nil {
			return fmt.Errorf("alias %q: %w", a.Symbol, err)
		}
		op.Symbol = a.Symbol
		if err := reg.AddOperator(op); err != nil {
			return fmt.Errorf("alias %q: %w", a.Symbol, err)
		}
	}
	switch d.Constants.Kind {
	case 0:
		return nil
	case yaml.MappingNode:
		// do nothing
	default:
		return fmt.Errorf("line %d: constants must be a mapping of names to expressions", d.Constants.Line)
	}
	c := d.Constants.Content
	for i := 0; i+1 < len(c); i += 2 {
		k, v := c[i], c[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: constant definitions must be scalars", k.Line)
		}
		if err := define(reg, k.Value, v.Value, prec); err != nil {
			return fmt.Errorf("line %d: %w", k.Line, err)
		}
	}
	return nil
}

// define evaluates expr and sets the constant name to its value, replacing
// any existing constant of that name.
func define(reg *symcalc.Registry, name, expr string, prec uint) error {
	r, err := symcalc.Calculate(expr, reg, symcalc.Prec(prec))
	if err != nil {
		return fmt.Errorf("defining %s: %w", name, err)
	}
	if reg.IsConst(name) {
		err = reg.UpdateConst(name, r)
	} else {
		err = reg.AddConst(name, r)
	}
	if err != nil {
		return fmt.Errorf("defining %s: %w", name, err)
	}
	return nil
}
