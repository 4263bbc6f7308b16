package formulex

import "strings"

// String renders the expression with every grouping made explicit by the
// fewest parentheses that reproduce the same tree on re-parse. It never
// fails: the parser only builds trees over registered operators.
func (e *Expr) String() string {
	var b strings.Builder
	if err := writeNode(&b, e.n, 0, 0); err != nil {
		// Unreachable for parsed trees.
		panic("formulex: " + err.Error())
	}
	return b.String()
}

// Format renders a tree the same way Expr.String does. Unlike Expr.String it
// accepts caller-built trees, so it reports an *UnknownOperatorError for a
// BinaryOp whose operator has no table entry and a *NestingOverflowError for
// a tree deeper than the configured bound.
func Format(n Node, opts ...Option) (string, error) {
	c := defaultConfig()
	for _, opt := range opts {
		c = opt.option(c)
	}
	var b strings.Builder
	if err := writeNode(&b, n, 0, c.maxDepth); err != nil {
		return "", err
	}
	return b.String(), nil
}

// writeNode renders n into b. max bounds the recursion depth when positive.
func writeNode(b *strings.Builder, n Node, depth, max int) error {
	depth++
	if max > 0 && depth > max {
		return &NestingOverflowError{Depth: depth}
	}
	switch n := n.(type) {
	case *Literal:
		b.WriteString(n.Text)
	case *Ident:
		b.WriteString(n.Name)
	case *Call:
		if n.Name == "-" && len(n.Args) == 1 {
			return writeNeg(b, n.Args[0], depth, max)
		}
		b.WriteString(n.Name)
		b.WriteByte('(')
		for i, a := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			// Each argument is a complete expression and never needs outer
			// parentheses.
			if err := writeNode(b, a, depth, max); err != nil {
				return err
			}
		}
		b.WriteByte(')')
	case *BinaryOp:
		spec, ok := optable[n.Op]
		if !ok {
			return &UnknownOperatorError{Symbol: n.Op}
		}
		if err := writeSide(b, n.Left, spec, false, depth, max); err != nil {
			return err
		}
		b.WriteByte(' ')
		b.WriteString(spec.Symbol)
		b.WriteByte(' ')
		if err := writeSide(b, n.Right, spec, true, depth, max); err != nil {
			return err
		}
	default:
		panic("formulex: unknown node type")
	}
	return nil
}

// writeSide renders one operand of a binary operator, parenthesized when the
// grouping would otherwise stay implicit.
func writeSide(b *strings.Builder, n Node, parent OpSpec, rightSide bool, depth, max int) error {
	if !needsParens(n, parent, rightSide) {
		return writeNode(b, n, depth, max)
	}
	b.WriteByte('(')
	if err := writeNode(b, n, depth, max); err != nil {
		return err
	}
	b.WriteByte(')')
	return nil
}

// needsParens reports whether a binary operand must be parenthesized. A
// binary child of a different precedence always is; at equal precedence only
// the left operand of a left-associative operator reads back unambiguously
// bare.
func needsParens(child Node, parent OpSpec, rightSide bool) bool {
	bin, ok := child.(*BinaryOp)
	if !ok {
		return false
	}
	spec, ok := optable[bin.Op]
	if !ok {
		// The recursion into the child reports the unknown operator.
		return false
	}
	if spec.Prec != parent.Prec {
		return true
	}
	return parent.Assoc == AssocRight || rightSide
}

// writeNeg renders unary minus. An atomic operand hugs the sign, as in (-a);
// any other operand is parenthesized after it, as in -(a + b).
func writeNeg(b *strings.Builder, operand Node, depth, max int) error {
	switch operand.(type) {
	case *Literal, *Ident:
		b.WriteString("(-")
		if err := writeNode(b, operand, depth, max); err != nil {
			return err
		}
		b.WriteByte(')')
		return nil
	}
	b.WriteString("-(")
	if err := writeNode(b, operand, depth, max); err != nil {
		return err
	}
	b.WriteByte(')')
	return nil
}
