package formulex

// Assoc is the associativity of an operator.
type Assoc int8

const (
	// AssocLeft groups equal-precedence chains left to right.
	AssocLeft Assoc = iota
	// AssocRight groups equal-precedence chains right to left.
	AssocRight
)

func (a Assoc) String() string {
	if a == AssocRight {
		return "Right"
	}
	return "Left"
}

// OpSpec describes a registered operator.
type OpSpec struct {
	// Symbol is the operator's source text.
	Symbol string
	// Prec is the binding strength. Higher binds tighter.
	Prec int8
	// Assoc resolves grouping for equal-precedence chains.
	Assoc Assoc
}

// optable registers every operator the parser and formatter understand.
// Comparisons share a rank with + and -, and the formatter's output depends
// on the exact ranks, so new operators must be slotted into this ladder.
// not has a rank but no parse rule.
var optable = map[string]OpSpec{
	"or":  {"or", 1, AssocLeft},
	"and": {"and", 2, AssocLeft},
	"not": {"not", 3, AssocRight},
	"==":  {"==", 4, AssocLeft},
	"!=":  {"!=", 4, AssocLeft},
	"<":   {"<", 5, AssocLeft},
	">":   {">", 5, AssocLeft},
	"<=":  {"<=", 5, AssocLeft},
	">=":  {">=", 5, AssocLeft},
	"+":   {"+", 5, AssocLeft},
	"-":   {"-", 5, AssocLeft},
	"*":   {"*", 6, AssocLeft},
	"/":   {"/", 6, AssocLeft},
	"%":   {"%", 6, AssocLeft},
	"**":  {"**", 7, AssocRight},
}

// Op returns the spec for a registered operator symbol. If the symbol has no
// table entry, the error is an *UnknownOperatorError.
func Op(symbol string) (OpSpec, error) {
	spec, ok := optable[symbol]
	if !ok {
		return OpSpec{}, &UnknownOperatorError{Symbol: symbol}
	}
	return spec, nil
}

// IsOp reports whether symbol is a registered operator.
func IsOp(symbol string) bool {
	_, ok := optable[symbol]
	return ok
}
