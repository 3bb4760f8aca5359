package symcalc

import (
	"io"
	"math/big"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer scans an expression into tokens using the operators and constants of
// a registry. Scanning stops at the first error; after that, Next returns the
// same error every time.
type Lexer struct {
	src string
	reg *Registry
	// off is the byte offset of the next rune.
	off int
	// col is the number of runes scanned.
	col int
	// prev is the kind of the last token returned, which decides whether an
	// operator is prefix or infix.
	prev TokenKind
	eof  bool
	err  error
}

// NewLexer creates a lexer over src. The lexer holds reg rather than a copy,
// so reg must not be modified while the lexer is in use.
func NewLexer(src string, reg *Registry) *Lexer {
	return &Lexer{src: src, reg: reg}
}

// Reset restarts scanning from the beginning of the input.
func (l *Lexer) Reset() {
	*l = Lexer{src: l.src, reg: l.reg}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *Lexer) readRune() (rune, bool) {
	if l.off >= len(l.src) {
		return 0, false
	}
	r, sz := utf8.DecodeRuneInString(l.src[l.off:])
	l.off += sz
	l.col++
	return r, true
}

// unreadRune unreads the last rune read.
func (l *Lexer) unreadRune() {
	_, sz := utf8.DecodeLastRuneInString(l.src[:l.off])
	l.off -= sz
	l.col--
}

// Next scans the next token from the input. The first time the end of the
// input is reached, the result is a TokenEOF token with a nil error.
// Subsequent calls return io.EOF.
func (l *Lexer) Next() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}
	if l.eof {
		return Token{}, io.EOF
	}
	tok, err := l.next()
	if err != nil {
		l.err = err
		return Token{}, err
	}
	l.prev = tok.Kind
	return tok, nil
}

func (l *Lexer) next() (Token, error) {
	for {
		start := l.off
		tok := Token{Pos: l.col + 1}
		r, ok := l.readRune()
		if !ok {
			tok.Kind = TokenEOF
			l.eof = true
			return tok, nil
		}
		switch {
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.Kind = TokenNumber
			tok.Text = l.src[start:l.off]
			return tok, nil
		case isIdentStart(r):
			l.scanIdent()
			tok.Text = l.src[start:l.off]
			return l.ident(tok)
		case r == '(':
			tok.Kind, tok.Text = TokenLeftParen, "("
			return tok, nil
		case r == ')':
			tok.Kind, tok.Text = TokenRightParen, ")"
			return tok, nil
		case r == ',':
			tok.Kind, tok.Text = TokenSep, ","
			return tok, nil
		default:
			l.unreadRune()
			return l.punct(tok)
		}
	}
}

// infix reports whether an operator scanned now would be infix: it follows a
// complete operand.
func (l *Lexer) infix() bool {
	switch l.prev {
	case TokenNumber, TokenConstant, TokenRightParen:
		return true
	}
	return false
}

// scanNum scans a decimal number with an optional exponent. A number ends at
// the first rune that cannot continue an identifier; letters or underscores
// touching a number are an error.
func (l *Lexer) scanNum() error {
	start, col := l.off, l.col+1
	var dig, dot, e, le, ed bool
	for {
		r, ok := l.readRune()
		if !ok {
			break
		}
		if r == '+' || r == '-' {
			// + or - anywhere other than immediately following an exponent
			// marker means a new token, as it is an operator.
			if !le {
				l.unreadRune()
				break
			}
			le = false
			continue
		}
		if r != '.' && !isIdentRune(r) {
			l.unreadRune()
			break
		}
		switch r {
		case '.':
			if dot || e {
				return l.numError(start, col)
			}
			dot = true
			le = false
		case 'e', 'E':
			if !dig || e {
				return l.numError(start, col)
			}
			e = true
			le = true
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			if e {
				ed = true
			} else {
				dig = true
			}
			le = false
		default:
			return l.numError(start, col)
		}
	}
	if !dig || e && !ed {
		return l.numError(start, col)
	}
	return nil
}

// numError creates an error for a malformed number. The error text runs to
// the end of the offending word.
func (l *Lexer) numError(start, col int) error {
	for {
		r, ok := l.readRune()
		if !ok {
			break
		}
		if r != '.' && !isIdentRune(r) {
			l.unreadRune()
			break
		}
	}
	return &NumberError{Col: col, Text: l.src[start:l.off]}
}

// scanIdent scans the remainder of an identifier. The first rune is already
// read.
func (l *Lexer) scanIdent() {
	for {
		r, ok := l.readRune()
		if !ok {
			return
		}
		if !isIdentRune(r) {
			l.unreadRune()
			return
		}
	}
}

// ident classifies a scanned identifier. Operators in the position's role take
// precedence over constants.
func (l *Lexer) ident(tok Token) (Token, error) {
	infix := l.infix()
	if _, ok := l.reg.ops[OpKey{Symbol: tok.Text, Infix: infix}]; ok {
		tok.Kind = TokenOperator
		tok.Op = OpKey{Symbol: tok.Text, Infix: infix}
		return tok, nil
	}
	if v, ok := l.reg.consts[tok.Text]; ok {
		tok.Kind = TokenConstant
		tok.Value = new(big.Float).Copy(v)
		return tok, nil
	}
	if l.reg.hasSymbol(tok.Text) {
		return tok, &TokenError{Col: tok.Pos, Text: tok.Text, Want: wantFor(infix)}
	}
	return tok, &IdentError{Col: tok.Pos, Name: tok.Text}
}

// punct scans a punctuation operator. The longest symbol registered in the
// position's role wins.
func (l *Lexer) punct(tok Token) (Token, error) {
	infix := l.infix()
	rest := l.src[l.off:]
	longest := ""
	for _, sym := range l.reg.puncts {
		if !strings.HasPrefix(rest, sym) {
			continue
		}
		if longest == "" {
			longest = sym
		}
		if _, ok := l.reg.ops[OpKey{Symbol: sym, Infix: infix}]; ok {
			l.off += len(sym)
			l.col += utf8.RuneCountInString(sym)
			tok.Kind = TokenOperator
			tok.Text = sym
			tok.Op = OpKey{Symbol: sym, Infix: infix}
			return tok, nil
		}
	}
	if longest != "" {
		return tok, &TokenError{Col: tok.Pos, Text: longest, Want: wantFor(infix)}
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return tok, &TokenError{Col: tok.Pos, Text: string(r)}
}

// wantFor describes what the parser expects when an operator has the wrong
// role.
func wantFor(infix bool) string {
	if infix {
		return "infix operator"
	}
	return "operand or prefix operator"
}
