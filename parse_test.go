package formulex

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// equalNodes reports whether two trees have the same structure.
func equalNodes(a, b Node) bool {
	switch a := a.(type) {
	case *Literal:
		b, ok := b.(*Literal)
		return ok && a.Text == b.Text
	case *Ident:
		b, ok := b.(*Ident)
		return ok && a.Name == b.Name
	case *Call:
		b, ok := b.(*Call)
		if !ok || a.Name != b.Name || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !equalNodes(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	case *BinaryOp:
		b, ok := b.(*BinaryOp)
		return ok && a.Op == b.Op && equalNodes(a.Left, b.Left) && equalNodes(a.Right, b.Right)
	default:
		return false
	}
}

func mustParse(t *testing.T, src string) *Expr {
	t.Helper()
	e, err := ParseString(src)
	if err != nil {
		t.Fatalf("failed to parse %q: %v", src, err)
	}
	return e
}

func TestParseTrees(t *testing.T) {
	// Each pair of sources must parse to the same tree.
	cases := []struct {
		name string
		a, b string
	}{
		{"paren", "(x)", "x"},
		{"multi", "(((x)))", "x"},
		{"spaces", "  a + b * c  ", "a+b*c"},

		{"left-sub", "a - b - c", "(a - b) - c"},
		{"left-div", "a / b / c", "(a / b) / c"},
		{"right-pow", "a ** b ** c", "a ** (b ** c)"},

		{"prec-asc", "a + b * c", "a + (b * c)"},
		{"prec-desc", "a * b + c", "(a * b) + c"},
		{"prec-pow", "a ** b * c", "(a ** b) * c"},
		{"prec-bool", "a and b or c", "(a and b) or c"},
		{"prec-eq", "a == b and c", "(a == b) and c"},
		{"prec-mod", "a % b * c", "(a % b) * c"},

		// + and the comparisons share a rank, so they chain left to right.
		{"quirk-cmp-add", "a < b + c", "(a < b) + c"},
		{"quirk-add-cmp", "a + b < c", "(a + b) < c"},

		{"neg", "-a + b", "(-a) + b"},
		{"neg-primary", "-a * b", "(-a) * b"},
		{"neg-pow", "-a ** b", "(-a) ** b"},
		{"neg-neg", "--a", "-(-a)"},
		{"neg-call", "-abs(a - b)", "-(abs(a - b))"},
		{"neg-group", "-(a + b) * c", "(-(a + b)) * c"},

		{"call-group", "abs(a + b * c)", "abs(a + (b * c))"},
		{"call-args", "round(a + b, 2)", "round((a + b), (2))"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := mustParse(t, c.a)
			b := mustParse(t, c.b)
			if !equalNodes(a.n, b.n) {
				t.Errorf("mismatched AST:\n\t%q parses %v\n\t%q parses %v", c.a, a, c.b, b)
			}
		})
	}
}

func TestParseExact(t *testing.T) {
	cases := []struct {
		name string
		src  string
		n    Node
	}{
		{
			name: "literal",
			src:  "42",
			n:    &Literal{Text: "42"},
		},
		{
			name: "literal-verbatim",
			src:  "007.250",
			n:    &Literal{Text: "007.250"},
		},
		{
			name: "ident",
			src:  "x",
			n:    &Ident{Name: "x"},
		},
		{
			name: "niladic",
			src:  "f()",
			n:    &Call{Name: "f"},
		},
		{
			name: "neg-num",
			src:  "-1",
			n:    &Call{Name: "-", Args: []Node{&Literal{Text: "1"}}},
		},
		{
			name: "call-multi",
			src:  "round(a + b, 2)",
			n: &Call{Name: "round", Args: []Node{
				&BinaryOp{Left: &Ident{Name: "a"}, Op: "+", Right: &Ident{Name: "b"}},
				&Literal{Text: "2"},
			}},
		},
		{
			name: "left-nest",
			src:  "a - b - c",
			n: &BinaryOp{
				Left: &BinaryOp{
					Left:  &Ident{Name: "a"},
					Op:    "-",
					Right: &Ident{Name: "b"},
				},
				Op:    "-",
				Right: &Ident{Name: "c"},
			},
		},
		{
			name: "right-nest",
			src:  "a ** b ** c",
			n: &BinaryOp{
				Left: &Ident{Name: "a"},
				Op:   "**",
				Right: &BinaryOp{
					Left:  &Ident{Name: "b"},
					Op:    "**",
					Right: &Ident{Name: "c"},
				},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := mustParse(t, c.src)
			if !equalNodes(e.n, c.n) {
				t.Errorf("mismatched AST for %q:\n\twant %#v\n\tgot  %#v", c.src, c.n, e.n)
			}
		})
	}
}

func TestParseVars(t *testing.T) {
	cases := []struct {
		src  string
		vars []string
	}{
		{"x", []string{"x"}},
		{"42", nil},
		{"b + a * b", []string{"a", "b"}},
		{"round(total, digits) + total", []string{"digits", "total"}},
		{"f()", nil},
	}
	for _, c := range cases {
		e := mustParse(t, c.src)
		got := e.Vars()
		if len(got) == 0 && len(c.vars) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, c.vars) {
			t.Errorf("vars of %q: want %v, got %v", c.src, c.vars, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	t.Run("lex", func(t *testing.T) {
		cases := []struct {
			src  string
			char rune
			col  int
		}{
			{"a # b", '#', 3},
			{"a ? b", '?', 3},
			{"a ! b", '!', 3},
		}
		for _, c := range cases {
			_, err := ParseString(c.src)
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("parsing %q: want *LexError, got %T: %v", c.src, err, err)
			}
			if lexErr.Char != c.char || lexErr.Col != c.col {
				t.Errorf("parsing %q: want %q at %d, got %q at %d", c.src, c.char, c.col, lexErr.Char, lexErr.Col)
			}
		}
	})
	t.Run("syntax", func(t *testing.T) {
		cases := []struct {
			src      string
			expected string
			found    string
		}{
			// missing or mismatched parentheses
			{"(a + b", `")"`, ""},
			{"round(a, 2", `")"`, ""},
			{")", "expression", ")"},
			// incomplete expressions
			{"a +", "expression", ""},
			{"", "expression", ""},
			{"a + * b", "expression", "*"},
			{"f(a,)", "expression", ")"},
			{"not a", "expression", "not"},
			// input left over after a complete expression
			{"a b", "end of input", "b"},
			{"a + b )", "end of input", ")"},
			{"a, b", "end of input", ","},
			{"a = b", "end of input", "="},
			{"a is b", "end of input", "is"},
		}
		for _, c := range cases {
			_, err := ParseString(c.src)
			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("parsing %q: want *SyntaxError, got %T: %v", c.src, err, err)
			}
			if synErr.Expected != c.expected || synErr.Found != c.found {
				t.Errorf("parsing %q: want expected=%q found=%q, got expected=%q found=%q",
					c.src, c.expected, c.found, synErr.Expected, synErr.Found)
			}
			if synErr.Pos() < 1 {
				t.Errorf("parsing %q: error position %d", c.src, synErr.Pos())
			}
		}
	})
}

func TestParseDepthLimit(t *testing.T) {
	deep := strings.Repeat("(", 40) + "x" + strings.Repeat(")", 40)
	if _, err := ParseString(deep); err != nil {
		t.Errorf("default limit rejected 40 levels of parentheses: %v", err)
	}
	_, err := ParseString(deep, MaxDepth(16))
	var overflow *NestingOverflowError
	if !errors.As(err, &overflow) {
		t.Fatalf("want *NestingOverflowError, got %T: %v", err, err)
	}
	if overflow.Depth != 17 {
		t.Errorf("overflow reported depth %d with limit 16", overflow.Depth)
	}

	// Unary chains recurse through primaries and count as well.
	if _, err := ParseString(strings.Repeat("-", 50)+"x", MaxDepth(16)); !errors.As(err, &overflow) {
		t.Errorf("unary chain: want *NestingOverflowError, got %v", err)
	}
}
