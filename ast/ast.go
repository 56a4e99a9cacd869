// Package ast defines the syntax trees of type expressions.
package ast

import "actorc/report"

// Node is implemented by every syntax tree node.
type Node interface {
	// Span returns the columns of the source text the node was parsed from.
	Span() *report.TextSpan
}

// Base is embedded in every node to store its span.
type Base struct {
	span *report.TextSpan
}

// At returns a base positioned on a single span.
func At(span *report.TextSpan) Base {
	return Base{span: span}
}

// Between returns a base covering two spans and everything between them.
func Between(start, end *report.TextSpan) Base {
	return Base{span: report.NewSpanOver(start, end)}
}

func (b Base) Span() *report.TextSpan {
	return b.span
}
