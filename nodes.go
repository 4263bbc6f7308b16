package formulex

// Node is a node in the abstract syntax tree of an expression. The node set
// is closed: a Node is a *Literal, *Ident, *Call, or *BinaryOp. The parser
// builds each node once and nothing modifies it afterward.
type Node interface {
	node()
}

// Literal is a numeric literal. The text is kept verbatim from the source;
// no numeric conversion happens at any point.
type Literal struct {
	Text string
}

// Ident is a reference to a variable.
type Ident struct {
	Name string
}

// Call is a function application. Unary minus is the call with Name "-" and
// one argument. Args may be empty, as in "f()".
type Call struct {
	Name string
	Args []Node
}

// BinaryOp applies a registered binary operator to two operands.
type BinaryOp struct {
	Left  Node
	Op    string
	Right Node
}

func (*Literal) node()  {}
func (*Ident) node()    {}
func (*Call) node()     {}
func (*BinaryOp) node() {}
