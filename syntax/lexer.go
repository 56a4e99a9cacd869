package syntax

import (
	"unicode"

	"actorc/report"
)

// Lexer splits the text of a single type expression into tokens.  Columns are
// counted in runes from zero.
type Lexer struct {
	src []rune

	// pos is the index of the next rune to read.
	pos int

	// start is the index of the first rune of the token being lexed.
	start int
}

// NewLexer creates a new lexer over the given text.
func NewLexer(text string) *Lexer {
	return &Lexer{src: []rune(text)}
}

// punctKinds maps punctuation runes to their token kind.  All punctuation is
// a single rune long.
var punctKinds = map[rune]int{
	'|': TOK_PIPE,
	'&': TOK_AMP,
	'(': TOK_LPAREN,
	')': TOK_RPAREN,
	'{': TOK_LBRACE,
	'}': TOK_RBRACE,
	'[': TOK_LBRACKET,
	']': TOK_RBRACKET,
	',': TOK_COMMA,
}

// capKeywords maps capability keywords to their token kind.
var capKeywords = map[string]int{
	"iso": TOK_ISO,
	"trn": TOK_TRN,
	"ref": TOK_REF,
	"val": TOK_VAL,
	"box": TOK_BOX,
	"tag": TOK_TAG,
}

// NextToken returns the next token of the input.  Once the input is
// exhausted, every call returns an EOF token.  The returned error is always a
// *report.LocalCompileError.
func (l *Lexer) NextToken() (*Token, error) {
	for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
		l.pos++
	}

	l.start = l.pos
	if l.pos == len(l.src) {
		return l.token(TOK_EOF), nil
	}

	c := l.src[l.pos]
	l.pos++

	if isIdentStart(c) {
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.pos++
		}

		if kind, ok := capKeywords[string(l.src[l.start:l.pos])]; ok {
			return l.token(kind), nil
		}

		return l.token(TOK_IDENT), nil
	}

	if kind, ok := punctKinds[c]; ok {
		return l.token(kind), nil
	}

	return nil, report.Raise(l.span(), "unknown rune: `%c`", c)
}

// token creates a token of the given kind spanning the runes lexed since the
// last call to NextToken began.
func (l *Lexer) token(kind int) *Token {
	return &Token{
		Kind:  kind,
		Value: string(l.src[l.start:l.pos]),
		Span:  l.span(),
	}
}

func (l *Lexer) span() *report.TextSpan {
	return &report.TextSpan{StartCol: l.start, EndCol: l.pos}
}

func isIdentStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}
