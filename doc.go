// Package formulex parses infix expressions and renders them back with
// every grouping made explicit by parentheses.
//
// The grammar covers numeric literals, identifiers, function calls like
// "round(a + b, 2)", unary minus, and the usual arithmetic, comparison, and
// keyword boolean operators. Parsing produces an immutable tree; formatting
// the tree spells out how the expression grouped, so "a + b * c" comes back
// as "a + (b * c)" while "a + b + c" stays as written.
//
// Parse an expression once and you can list its variables or re-render it
// any number of times. Parsed trees are read-only, so they are safe to
// format from any goroutine.
package formulex
