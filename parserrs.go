package symcalc

import (
	"errors"
	"strconv"
)

// Error categories. Every error this package creates matches one of these
// with errors.Is.
var (
	// ErrRegistry matches errors from adding, updating, or looking up
	// operators and constants.
	ErrRegistry = errors.New("symcalc: registry error")
	// ErrParse matches errors in the text of an expression.
	ErrParse = errors.New("symcalc: parse error")
	// ErrEval matches errors from evaluating an expression.
	ErrEval = errors.New("symcalc: evaluation error")
)

// NumberError is an error indicating a malformed numeric literal. It
// implements InputError.
type NumberError struct {
	// Col is the position of the start of the number.
	Col int
	// Text is the malformed number, up to the end of the word containing it.
	Text string
}

func (err *NumberError) Error() string {
	return errpos(err.Col, "malformed number "+strconv.Quote(err.Text))
}

func (err *NumberError) Pos() int {
	return err.Col
}

func (err *NumberError) Is(target error) bool {
	return target == ErrParse
}

// IdentError is an error indicating an identifier that is neither an operator
// nor a constant. It implements InputError.
type IdentError struct {
	// Col is the position of the identifier.
	Col int
	// Name is the identifier.
	Name string
}

func (err *IdentError) Error() string {
	return errpos(err.Col, "unknown identifier "+strconv.Quote(err.Name))
}

func (err *IdentError) Pos() int {
	return err.Col
}

func (err *IdentError) Is(target error) bool {
	return target == ErrParse
}

// BracketError is an error indicating unmatched parentheses in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the unmatched bracket.
	Col int
	// Left is the open bracket with no match, or empty if Right has none.
	Left string
	// Right is the close bracket with no match, or empty if Left has none.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Is(target error) bool {
	return target == ErrParse
}

// TokenError is an error indicating a token that cannot appear where it does,
// including runes that begin no token at all. It implements InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Text is the token. It is empty if the input ended unexpectedly.
	Text string
	// Want describes what the parser expected, if anything in particular.
	Want string
}

func (err *TokenError) Error() string {
	var msg string
	if err.Text == "" {
		msg = "unexpected end of expression"
	} else {
		msg = "unexpected " + strconv.Quote(err.Text)
	}
	if err.Want != "" {
		msg += ", want " + err.Want
	}
	return errpos(err.Col, msg)
}

func (err *TokenError) Pos() int {
	return err.Col
}

func (err *TokenError) Is(target error) bool {
	return target == ErrParse
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based rune column of the token that caused the error.
	// For errors during evaluation, this is the column the token had in the
	// source, or 0 for tokens that were not scanned from a source.
	Pos() int
}

var (
	_ InputError = (*NumberError)(nil)
	_ InputError = (*IdentError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*StackUnderflowError)(nil)
	_ InputError = (*OpError)(nil)
)
