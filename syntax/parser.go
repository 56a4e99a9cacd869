// Package syntax parses the textual notation of type expressions used by
// compilation unit files.
package syntax

import (
	"actorc/ast"
	"actorc/report"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.

// Parser is a recursive descent parser for type expressions.  All parsing
// functions assume that they begin with the parser centered on the first token
// of their production and must consume all tokens (including the last) of
// their production, leaving the parser on the next token.
type Parser struct {
	// lexer is the Lexer this parser is using to lex the input.
	lexer *Lexer

	// tok is the current token the parser is positioned on.
	tok *Token
}

// NewParser creates a new parser for the given type expression text.
func NewParser(text string) *Parser {
	return &Parser{lexer: NewLexer(text)}
}

// ParseTypeExpr parses a complete type expression from a string.  The returned
// error is always a *report.LocalCompileError.
func ParseTypeExpr(text string) (ast.TypeExpr, error) {
	return NewParser(text).Parse()
}

// Parse parses a complete type expression: all input must be consumed.
func (p *Parser) Parse() (ast.TypeExpr, error) {
	if err := p.next(); err != nil {
		return nil, err
	}

	expr, err := p.parseType()
	if err != nil {
		return nil, err
	}

	if !p.has(TOK_EOF) {
		return nil, p.reject()
	}

	return expr, nil
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() error {
	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}

	p.tok = tok
	return nil
}

// has returns true if the parser is on a token of a given kind.
func (p *Parser) has(kind int) bool {
	return p.tok.Kind == kind
}

// want asserts that the parser is on a token of the given kind and moves past
// it.  It returns the token it was positioned on.
func (p *Parser) want(kind int) (*Token, error) {
	if !p.has(kind) {
		return nil, p.reject()
	}

	tok := p.tok
	if err := p.next(); err != nil {
		return nil, err
	}

	return tok, nil
}

// reject returns an unexpected token error on the current token.
func (p *Parser) reject() error {
	if p.has(TOK_EOF) {
		return report.Raise(p.tok.Span, "unexpected end of type expression")
	}

	return report.Raise(p.tok.Span, "unexpected token: `%s`", p.tok.Value)
}
