package formulex

import "strconv"

// SyntaxError indicates that the parser could not continue at some token. It
// covers an unexpected token where a term was required, a missing or
// mismatched parenthesis, and input left over after a complete expression.
// It implements InputError.
type SyntaxError struct {
	// Col is the position of the token that stopped the parse.
	Col int
	// Expected describes what the parser required, e.g. `")"` or
	// "expression".
	Expected string
	// Found is the text of the offending token. It is empty when the parse
	// stopped at the end of the input.
	Found string
}

func (err *SyntaxError) Error() string {
	found := "end of input"
	if err.Found != "" {
		found = strconv.Quote(err.Found)
	}
	return errpos(err.Col, "expected "+err.Expected+", found "+found)
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// UnknownOperatorError indicates an operator symbol with no table entry. The
// parser only ever climbs operators it can look up, so this reaches callers
// through Op or through formatting a hand-built tree. It implements
// InputError.
type UnknownOperatorError struct {
	// Col is the position of the operator, or 0 when the symbol did not come
	// from parsed input.
	Col int
	// Symbol is the operator that has no table entry.
	Symbol string
}

func (err *UnknownOperatorError) Error() string {
	msg := "unknown operator " + strconv.Quote(err.Symbol)
	if err.Col == 0 {
		return msg
	}
	return errpos(err.Col, msg)
}

func (err *UnknownOperatorError) Pos() int {
	return err.Col
}

// NestingOverflowError indicates that parsing or formatting reached the
// configured depth limit before completing.
type NestingOverflowError struct {
	// Depth is the depth at which the recursion stopped.
	Depth int
}

func (err *NestingOverflowError) Error() string {
	return "expression nesting deeper than " + strconv.Itoa(err.Depth) + " levels"
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error caused by
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*UnknownOperatorError)(nil)
)
