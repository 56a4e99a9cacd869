package syntax

import "actorc/report"

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The string value of the token.
	Value string

	// The text span over which the token exists.
	Span *report.TextSpan
}

// Enumeration of token kinds.
const (
	TOK_ISO = iota
	TOK_TRN
	TOK_REF
	TOK_VAL
	TOK_BOX
	TOK_TAG

	TOK_PIPE
	TOK_AMP

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACE
	TOK_RBRACE
	TOK_LBRACKET
	TOK_RBRACKET
	TOK_COMMA

	TOK_IDENT

	TOK_EOF
)

// isCapKind returns whether a token kind is a capability keyword.
func isCapKind(kind int) bool {
	return TOK_ISO <= kind && kind <= TOK_TAG
}
