package formulex

import (
	"errors"
	"io"
	"strconv"
)

type token struct {
	text string
	kind tokenKind
	pos  int
}

func (t token) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is an integer or decimal literal.
	tokenNum
	// tokenIdent is a variable or function name.
	tokenIdent
	// tokenOp is an operator, symbolic or keyword.
	tokenOp
	// tokenLParen and tokenRParen group expressions and argument lists.
	tokenLParen
	tokenRParen
	// tokenComma separates function arguments.
	tokenComma
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenOp:
		return "Op"
	case tokenLParen:
		return "LParen"
	case tokenRParen:
		return "RParen"
	case tokenComma:
		return "Comma"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// wordOps are identifier-shaped tokens that lex as operators. is and in scan
// as operators but have no table entry, so the parser rejects them.
var wordOps = map[string]bool{
	"and": true,
	"or":  true,
	"not": true,
	"is":  true,
	"in":  true,
}

type lexer struct {
	src  io.RuneScanner
	buf  []rune
	rune int
	eof  bool
}

func newLexer(src io.RuneScanner) *lexer {
	return &lexer{
		src:  src,
		rune: 1,
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// pair reports whether the next rune is want, consuming it if so.
func (l *lexer) pair(want rune) bool {
	r, err := l.readRune()
	if err != nil {
		return false
	}
	if r == want {
		return true
	}
	l.unreadRune()
	return false
}

// next scans the next token from the input. Once EOF is encountered, the
// result is an EOF token with a nil error; subsequent calls return an empty
// token with io.EOF.
func (l *lexer) next() (token, error) {
	if l.eof {
		return token{}, io.EOF
	}
	l.buf = l.buf[:0]
	tok := token{pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			tok.pos++
			continue
		case '0' <= r && r <= '9':
			l.unreadRune()
			l.scanNum()
			tok.text = string(l.buf)
			tok.kind = tokenNum
			return tok, nil
		case r == '_' || isAlpha(r):
			l.unreadRune()
			l.scanIdent()
			tok.text = string(l.buf)
			// Keyword operators look like identifiers, so check here.
			if wordOps[tok.text] {
				tok.kind = tokenOp
			} else {
				tok.kind = tokenIdent
			}
			return tok, nil
		case r == ',':
			tok.text = ","
			tok.kind = tokenComma
			return tok, nil
		case r == '(':
			tok.text = "("
			tok.kind = tokenLParen
			return tok, nil
		case r == ')':
			tok.text = ")"
			tok.kind = tokenRParen
			return tok, nil
		case r == '*':
			tok.text = "*"
			if l.pair('*') {
				tok.text = "**"
			}
			tok.kind = tokenOp
			return tok, nil
		case r == '=' || r == '<' || r == '>':
			tok.text = string(r)
			if l.pair('=') {
				tok.text += "="
			}
			tok.kind = tokenOp
			return tok, nil
		case r == '!':
			// ! is only ever the start of !=.
			if !l.pair('=') {
				return tok, &LexError{Char: r, Col: tok.pos}
			}
			tok.text = "!="
			tok.kind = tokenOp
			return tok, nil
		case r == '+' || r == '-' || r == '/' || r == '%':
			tok.text = string(r)
			tok.kind = tokenOp
			return tok, nil
		default:
			return tok, &LexError{Char: r, Col: tok.pos}
		}
	}
}

// scanNum scans a run of digits with at most one decimal point into the
// buffer. The text is kept verbatim, so "1." is a complete literal.
func (l *lexer) scanNum() {
	dot := false
	for {
		r, err := l.readRune()
		if err != nil {
			return
		}
		switch {
		case '0' <= r && r <= '9':
			l.buf = append(l.buf, r)
		case r == '.' && !dot:
			dot = true
			l.buf = append(l.buf, r)
		default:
			l.unreadRune()
			return
		}
	}
}

func (l *lexer) scanIdent() {
	for {
		r, err := l.readRune()
		if err != nil {
			// next unreads the rune that decides ident scanning before
			// calling scanIdent, so we have scanned at least one rune.
			return
		}
		if r == '_' || isAlpha(r) || '0' <= r && r <= '9' {
			l.buf = append(l.buf, r)
			continue
		}
		l.unreadRune()
		return
	}
}

func isAlpha(r rune) bool {
	return 'A' <= r && r <= 'Z' || 'a' <= r && r <= 'z'
}

// LexError indicates a character that cannot start any token. It implements
// InputError.
type LexError struct {
	// Char is the offending rune.
	Char rune
	// Col is the 1-based rune position of Char in the input.
	Col int
}

func (err *LexError) Error() string {
	return errpos(err.Col, "invalid character "+strconv.QuoteRune(err.Char))
}

func (err *LexError) Pos() int {
	return err.Col
}
