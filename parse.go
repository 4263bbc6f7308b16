package formulex

import (
	"io"
	"strings"
)

// Expr    = Binary
// Binary  = Primary { op Primary }           resolved by precedence climbing
// Primary = num | name | name '(' Args ')' | '(' Expr ')' | '-' Primary
// Args    = [ Expr { ',' Expr } ]

// Expr is a parsed expression.
type Expr struct {
	// n is the root node of the expression.
	n Node
	// names is the list of variable names used in the expression.
	names []string
}

// Parse parses one complete expression from src. The given options are
// applied in order.
func Parse(src io.RuneScanner, opts ...Option) (*Expr, error) {
	c := defaultConfig()
	for _, opt := range opts {
		c = opt.option(c)
	}
	p := &parser{
		scan:  newLexer(src),
		max:   c.maxDepth,
		names: make(map[string]bool),
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	n, err := p.expression(1)
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokenEOF {
		return nil, &SyntaxError{Col: p.cur.pos, Expected: "end of input", Found: p.cur.text}
	}
	ex := &Expr{
		n:     n,
		names: make([]string, 0, len(p.names)),
	}
	for k := range p.names {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return ex, nil
}

// ParseString parses one complete expression from s.
func ParseString(s string, opts ...Option) (*Expr, error) {
	return Parse(strings.NewReader(s), opts...)
}

// Root returns the root node of the expression.
func (e *Expr) Root() Node {
	return e.n
}

// Vars returns the variable names used in the expression, sorted and without
// duplicates. Function names are not variables.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// parser consumes the token stream with one token of lookahead in cur.
type parser struct {
	scan  *lexer
	cur   token
	depth int
	max   int
	names map[string]bool
}

// advance moves the cursor to the next token.
func (p *parser) advance() error {
	tok, err := p.scan.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// enter counts one level of recursion, failing once the parse is deeper than
// the configured bound.
func (p *parser) enter() error {
	p.depth++
	if p.max > 0 && p.depth > p.max {
		return &NestingOverflowError{Depth: p.depth}
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

// expression parses a primary term and climbs binary operators of at least
// min precedence.
func (p *parser) expression(min int8) (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	n, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokenOp {
		spec, ok := optable[p.cur.text]
		if !ok || spec.Prec < min {
			// Unregistered operators end the climb; the surrounding context
			// reports them.
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		next := spec.Prec + 1
		if spec.Assoc == AssocRight {
			// Allowing an equal-precedence operator to bind on the right is
			// what makes right-associative chains nest rightward.
			next = spec.Prec
		}
		rhs, err := p.expression(next)
		if err != nil {
			return nil, err
		}
		n = &BinaryOp{Left: n, Op: spec.Symbol, Right: rhs}
	}
	return n, nil
}

// primary parses a term with no binary structure at its top: a literal, a
// variable, a call, a parenthesized expression, or a negation.
func (p *parser) primary() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	switch tok := p.cur; tok.kind {
	case tokenNum:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Literal{Text: tok.text}, nil
	case tokenIdent:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.kind == tokenLParen {
			args, err := p.arguments()
			if err != nil {
				return nil, err
			}
			return &Call{Name: tok.text, Args: args}, nil
		}
		p.names[tok.text] = true
		return &Ident{Name: tok.text}, nil
	case tokenLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.expression(1)
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokenRParen {
			return nil, &SyntaxError{Col: p.cur.pos, Expected: `")"`, Found: p.cur.text}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		// Grouping parentheses only ever affect parsing; they never survive
		// into the tree.
		return n, nil
	case tokenOp:
		if tok.text != "-" {
			return nil, &SyntaxError{Col: tok.pos, Expected: "expression", Found: tok.text}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		// Unary minus binds one primary, not a full expression, so -a + b
		// negates only a.
		operand, err := p.primary()
		if err != nil {
			return nil, err
		}
		return &Call{Name: "-", Args: []Node{operand}}, nil
	default:
		return nil, &SyntaxError{Col: tok.pos, Expected: "expression", Found: tok.text}
	}
}

// arguments parses a parenthesized, comma-separated argument list with the
// cursor on the opening parenthesis. An empty list is allowed; a trailing
// comma is not.
func (p *parser) arguments() ([]Node, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	var args []Node
	if p.cur.kind != tokenRParen {
		for {
			a, err := p.expression(1)
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.cur.kind != tokenComma {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if p.cur.kind != tokenRParen {
		return nil, &SyntaxError{Col: p.cur.pos, Expected: `")"`, Found: p.cur.text}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return args, nil
}
