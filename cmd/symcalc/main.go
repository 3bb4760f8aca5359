package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/zephyrtronium/symcalc"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb, defs string
		with               [][2]string
		nl, rpn            bool
		prec               int
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`constant definitions must be "name=expr", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.StringVar(&defs, "defs", "", "YAML file of constants and operator aliases")
	flag.Func("given", "name=expr constant definition (any number of times)", addwith)
	flag.IntVar(&prec, "p", 64, "precision of calculations in bits")
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&rpn, "rpn", false, "print expressions in RPN before results")
	flag.Parse()
	if prec <= 0 {
		log.Fatalf("precision (%d) must be positive", prec)
	}

	reg := symcalc.NewStandardRegistry()
	if defs != "" {
		f, err := os.Open(defs)
		if err != nil {
			log.Fatal(err)
		}
		err = loadDefs(f, reg, uint(prec))
		f.Close()
		if err != nil {
			log.Fatalf("%s: %v", defs, err)
		}
	}
	for _, d := range with {
		if err := define(reg, d[0], d[1], uint(prec)); err != nil {
			log.Fatal(err)
		}
	}

	c := calc{
		out:  os.Stdout,
		ev:   symcalc.NewEvaluator(reg, symcalc.Prec(uint(prec))),
		reg:  reg,
		verb: verb + "\n",
		rpn:  rpn,
	}
	for _, arg := range flag.Args() {
		c.expr(arg)
	}
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f == nil {
		return
	}
	defer f.Close()
	if f == os.Stdin && term.IsTerminal(int(f.Fd())) {
		// Interactive: one expression per line, with prompts.
		c.prompt = "> "
		nl = true
	}
	if err := c.run(f, nl); err != nil {
		log.Fatal(err)
	}
}

// calc evaluates expressions and prints their results.
type calc struct {
	out    io.Writer
	ev     *symcalc.Evaluator
	reg    *symcalc.Registry
	verb   string
	prompt string
	rpn    bool
}

// run evaluates the expressions in r, either one per line or the entire input
// as one.
func (c *calc) run(r io.Reader, lines bool) error {
	if !lines {
		b, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		c.expr(string(b))
		return nil
	}
	sc := bufio.NewScanner(r)
	fmt.Fprint(c.out, c.prompt)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			c.expr(sc.Text())
		}
		fmt.Fprint(c.out, c.prompt)
	}
	if c.prompt != "" {
		fmt.Fprintln(c.out)
	}
	return sc.Err()
}

// expr evaluates a single expression. Errors are printed in place of the
// result.
func (c *calc) expr(s string) {
	p, err := symcalc.StringToRPN(s, c.reg)
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	if c.rpn {
		fmt.Fprintf(c.out, "%v : ", p)
	}
	r, err := c.ev.Eval(p)
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	fmt.Fprintf(c.out, c.verb, r)
}

func infile(inname string, std bool) (*os.File, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return os.Stdin, nil
	}
	return nil, nil
}
