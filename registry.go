package symcalc

import (
	"math/big"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Associativity decides how operators of equal precedence group.
type Associativity int8

const (
	// Left groups a-b-c as (a-b)-c.
	Left Associativity = iota
	// Right groups a^b^c as a^(b^c).
	Right
)

func (a Associativity) String() string {
	switch a {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "Associativity(" + strconv.Itoa(int(a)) + ")"
	}
}

// OpFunc evaluates an operator. args holds exactly Arity values in
// left-to-right operand order. The function must set r to its result and
// should not use the value of r otherwise. r has the evaluator's precision
// and never aliases an element of args. OpFunc may modify the elements of
// args.
//
// Functions should report arguments outside their domain with a
// *DomainError. A panic with big.ErrNaN, as math/big and bigfloat raise, is
// also reported as a *DomainError.
type OpFunc func(r *big.Float, args []*big.Float) error

// OperatorInfo describes one operator. A symbol may have two entries, one
// prefix and one infix, e.g. negation and subtraction.
type OperatorInfo struct {
	// Symbol is the operator's text. It is either an identifier, like sin,
	// or a run of punctuation, like ** or ~. Punctuation symbols cannot
	// contain brackets, commas, or periods.
	Symbol string
	// Arity is the number of operands.
	Arity int
	// Precedence orders operators. Higher binds tighter.
	Precedence int
	// Assoc groups operators of equal precedence.
	Assoc Associativity
	// Infix indicates that the operator is written between its first two
	// operands. Otherwise it is prefix and written before all of them, like
	// unary minus or a function such as max(a, b).
	Infix bool
	// Func computes the operator's value.
	Func OpFunc
}

// Key returns the key identifying the operator in a registry.
func (op OperatorInfo) Key() OpKey {
	return OpKey{Symbol: op.Symbol, Infix: op.Infix}
}

// OpKey identifies an operator by its symbol and placement.
type OpKey struct {
	Symbol string
	Infix  bool
}

func (k OpKey) String() string {
	if k.Infix {
		return "infix " + strconv.Quote(k.Symbol)
	}
	return "prefix " + strconv.Quote(k.Symbol)
}

// Registry holds operators and named constants. The zero value is not usable;
// create registries with NewRegistry or NewStandardRegistry.
//
// Lookups never modify a registry, so concurrent parsing and evaluation are
// safe as long as nothing adds or updates entries at the same time.
type Registry struct {
	ops    map[OpKey]OperatorInfo
	consts map[string]*big.Float
	// puncts is the set of punctuation operator symbols, longest first.
	puncts []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ops:    make(map[OpKey]OperatorInfo),
		consts: make(map[string]*big.Float),
	}
}

// Clone creates an independent copy of the registry. Changes to either do not
// affect the other.
func (reg *Registry) Clone() *Registry {
	n := Registry{
		ops:    make(map[OpKey]OperatorInfo, len(reg.ops)),
		consts: make(map[string]*big.Float, len(reg.consts)),
		puncts: append([]string(nil), reg.puncts...),
	}
	for k, v := range reg.ops {
		n.ops[k] = v
	}
	// Stored constants are never modified in place, so sharing is fine.
	for k, v := range reg.consts {
		n.consts[k] = v
	}
	return &n
}

// AddOperator adds a new operator. If the registry already has an operator
// with the same symbol and placement, the result is a *DuplicateOperatorError
// and the registry is unchanged.
func (reg *Registry) AddOperator(op OperatorInfo) error {
	if err := checkOperator(op); err != nil {
		return err
	}
	k := op.Key()
	if _, ok := reg.ops[k]; ok {
		return &DuplicateOperatorError{Symbol: op.Symbol, Infix: op.Infix}
	}
	if !isIdent(op.Symbol) && !reg.hasSymbol(op.Symbol) {
		reg.insertPunct(op.Symbol)
	}
	reg.ops[k] = op
	return nil
}

// UpdateOperator replaces the operator with the same symbol and placement as
// op. If there is no such operator, the result is an *UnknownOperatorError.
func (reg *Registry) UpdateOperator(op OperatorInfo) error {
	if err := checkOperator(op); err != nil {
		return err
	}
	k := op.Key()
	if _, ok := reg.ops[k]; !ok {
		return &UnknownOperatorError{Symbol: op.Symbol, Infix: op.Infix}
	}
	reg.ops[k] = op
	return nil
}

// Operator looks up an operator by symbol and placement.
func (reg *Registry) Operator(symbol string, infix bool) (OperatorInfo, error) {
	op, ok := reg.ops[OpKey{Symbol: symbol, Infix: infix}]
	if !ok {
		return OperatorInfo{}, &UnknownOperatorError{Symbol: symbol, Infix: infix}
	}
	return op, nil
}

// IsOperator reports whether symbol names a prefix or infix operator.
func (reg *Registry) IsOperator(symbol string) bool {
	return reg.hasSymbol(symbol)
}

// IsInfix reports whether symbol names an infix operator.
func (reg *Registry) IsInfix(symbol string) bool {
	_, ok := reg.ops[OpKey{Symbol: symbol, Infix: true}]
	return ok
}

// IsPrefix reports whether symbol names a prefix operator.
func (reg *Registry) IsPrefix(symbol string) bool {
	_, ok := reg.ops[OpKey{Symbol: symbol, Infix: false}]
	return ok
}

// AddConst adds a named constant. The name must be an identifier. If the
// constant already exists, the result is a *DuplicateConstantError and the
// registry is unchanged. If the name is also an identifier operator, the
// operator takes precedence wherever it can appear.
func (reg *Registry) AddConst(name string, value *big.Float) error {
	if err := checkConst(name, value); err != nil {
		return err
	}
	if _, ok := reg.consts[name]; ok {
		return &DuplicateConstantError{Name: name}
	}
	reg.consts[name] = new(big.Float).Copy(value)
	return nil
}

// UpdateConst replaces the value of a constant. If there is no such constant,
// the result is an *UnknownConstantError.
func (reg *Registry) UpdateConst(name string, value *big.Float) error {
	if err := checkConst(name, value); err != nil {
		return err
	}
	if _, ok := reg.consts[name]; !ok {
		return &UnknownConstantError{Name: name}
	}
	reg.consts[name] = new(big.Float).Copy(value)
	return nil
}

// Const returns a copy of the value of a constant.
func (reg *Registry) Const(name string) (*big.Float, error) {
	v, ok := reg.consts[name]
	if !ok {
		return nil, &UnknownConstantError{Name: name}
	}
	return new(big.Float).Copy(v), nil
}

// IsConst reports whether name is a constant.
func (reg *Registry) IsConst(name string) bool {
	_, ok := reg.consts[name]
	return ok
}

func (reg *Registry) hasSymbol(symbol string) bool {
	if _, ok := reg.ops[OpKey{Symbol: symbol, Infix: true}]; ok {
		return true
	}
	_, ok := reg.ops[OpKey{Symbol: symbol, Infix: false}]
	return ok
}

// insertPunct adds a punctuation symbol, keeping puncts ordered longest
// first.
func (reg *Registry) insertPunct(symbol string) {
	reg.puncts = append(reg.puncts, symbol)
	for i := len(reg.puncts) - 1; i > 0 && len(reg.puncts[i]) > len(reg.puncts[i-1]); i-- {
		reg.puncts[i], reg.puncts[i-1] = reg.puncts[i-1], reg.puncts[i]
	}
}

func checkOperator(op OperatorInfo) error {
	switch {
	case op.Symbol == "":
		return &DefinitionError{Symbol: op.Symbol, Reason: "empty symbol"}
	case !isIdent(op.Symbol) && !isPunct(op.Symbol):
		return &DefinitionError{Symbol: op.Symbol, Reason: "symbol is neither an identifier nor punctuation"}
	case op.Arity < 1:
		return &DefinitionError{Symbol: op.Symbol, Reason: "arity " + strconv.Itoa(op.Arity) + " is less than 1"}
	case op.Infix && op.Arity < 2:
		return &DefinitionError{Symbol: op.Symbol, Reason: "infix operator needs at least 2 operands"}
	case op.Assoc != Left && op.Assoc != Right:
		return &DefinitionError{Symbol: op.Symbol, Reason: "invalid associativity " + op.Assoc.String()}
	case op.Func == nil:
		return &DefinitionError{Symbol: op.Symbol, Reason: "nil function"}
	}
	return nil
}

func checkConst(name string, value *big.Float) error {
	switch {
	case !isIdent(name):
		return &DefinitionError{Symbol: name, Reason: "constant name is not an identifier"}
	case value == nil:
		return &DefinitionError{Symbol: name, Reason: "nil value"}
	}
	return nil
}

// isIdentStart and isIdentRune classify the runes of identifiers.
func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isPunctRune reports whether r can appear in a punctuation operator.
func isPunctRune(r rune) bool {
	switch {
	case r == utf8.RuneError, isIdentRune(r), unicode.IsSpace(r):
		return false
	case r == '(', r == ')', r == ',', r == '.':
		return false
	}
	return unicode.IsPrint(r)
}

func isIdent(s string) bool {
	for i, r := range s {
		if i == 0 && !isIdentStart(r) || !isIdentRune(r) {
			return false
		}
	}
	return s != ""
}

func isPunct(s string) bool {
	for _, r := range s {
		if !isPunctRune(r) {
			return false
		}
	}
	return s != ""
}

// DuplicateOperatorError is returned when adding an operator that already
// exists.
type DuplicateOperatorError struct {
	Symbol string
	Infix  bool
}

func (err *DuplicateOperatorError) Error() string {
	return "duplicate " + OpKey{err.Symbol, err.Infix}.String() + " operator"
}

func (err *DuplicateOperatorError) Is(target error) bool {
	return target == ErrRegistry
}

// UnknownOperatorError is returned when looking up or updating an operator
// that does not exist.
type UnknownOperatorError struct {
	Symbol string
	Infix  bool
}

func (err *UnknownOperatorError) Error() string {
	return "unknown " + OpKey{err.Symbol, err.Infix}.String() + " operator"
}

func (err *UnknownOperatorError) Is(target error) bool {
	return target == ErrRegistry
}

// DuplicateConstantError is returned when adding a constant that already
// exists.
type DuplicateConstantError struct {
	Name string
}

func (err *DuplicateConstantError) Error() string {
	return "duplicate constant " + strconv.Quote(err.Name)
}

func (err *DuplicateConstantError) Is(target error) bool {
	return target == ErrRegistry
}

// UnknownConstantError is returned when looking up or updating a constant that
// does not exist.
type UnknownConstantError struct {
	Name string
}

func (err *UnknownConstantError) Error() string {
	return "unknown constant " + strconv.Quote(err.Name)
}

func (err *UnknownConstantError) Is(target error) bool {
	return target == ErrRegistry
}

// DefinitionError is returned when adding or updating an operator or constant
// that could never be used.
type DefinitionError struct {
	// Symbol is the operator symbol or constant name.
	Symbol string
	// Reason describes the problem.
	Reason string
}

func (err *DefinitionError) Error() string {
	return "invalid definition of " + strconv.Quote(err.Symbol) + ": " + err.Reason
}

func (err *DefinitionError) Is(target error) bool {
	return target == ErrRegistry
}
