package syntax

import (
	"actorc/ast"
	"actorc/report"
)

// type = isect {'|' isect}
func (p *Parser) parseType() (ast.TypeExpr, error) {
	members, err := p.parseSeparated(TOK_PIPE, p.parseIsect)
	if err != nil {
		return nil, err
	}

	if len(members) == 1 {
		return members[0], nil
	}

	return &ast.UnionTypeExpr{
		Base:    ast.Between(members[0].Span(), members[len(members)-1].Span()),
		Members: members,
	}, nil
}

// isect = postfix {'&' postfix}
func (p *Parser) parseIsect() (ast.TypeExpr, error) {
	members, err := p.parseSeparated(TOK_AMP, p.parsePostfix)
	if err != nil {
		return nil, err
	}

	if len(members) == 1 {
		return members[0], nil
	}

	return &ast.IsectTypeExpr{
		Base:    ast.Between(members[0].Span(), members[len(members)-1].Span()),
		Members: members,
	}, nil
}

// postfix = primary [cap]
// cap = 'iso' | 'trn' | 'ref' | 'val' | 'box' | 'tag'
func (p *Parser) parsePostfix() (ast.TypeExpr, error) {
	prim, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	if !isCapKind(p.tok.Kind) {
		return prim, nil
	}

	capTok := p.tok
	if err := p.next(); err != nil {
		return nil, err
	}

	return &ast.CapTypeExpr{
		Base: ast.Between(prim.Span(), capTok.Span),
		Elem: prim,
		Cap:  capTok.Value,
	}, nil
}

// primary = named_type | group | structural_type
func (p *Parser) parsePrimary() (ast.TypeExpr, error) {
	switch p.tok.Kind {
	case TOK_IDENT:
		return p.parseNamedType()
	case TOK_LPAREN:
		return p.parseGroup()
	case TOK_LBRACE:
		return p.parseStructuralType()
	}

	return nil, p.reject()
}

// named_type = 'IDENT' ['[' type_list ']']
func (p *Parser) parseNamedType() (ast.TypeExpr, error) {
	nameTok, err := p.want(TOK_IDENT)
	if err != nil {
		return nil, err
	}

	if !p.has(TOK_LBRACKET) {
		return &ast.NamedTypeExpr{Base: ast.At(nameTok.Span), Name: nameTok.Value}, nil
	}

	if err := p.next(); err != nil {
		return nil, err
	}

	args, err := p.parseSeparated(TOK_COMMA, p.parseType)
	if err != nil {
		return nil, err
	}

	endTok, err := p.want(TOK_RBRACKET)
	if err != nil {
		return nil, err
	}

	return &ast.NamedTypeExpr{
		Base:     ast.Between(nameTok.Span, endTok.Span),
		Name:     nameTok.Value,
		TypeArgs: args,
	}, nil
}

// group = '(' type_list ')'
//
// A group with one element is just a parenthesized type; otherwise, it is a
// tuple type.
func (p *Parser) parseGroup() (ast.TypeExpr, error) {
	startTok, err := p.want(TOK_LPAREN)
	if err != nil {
		return nil, err
	}

	elems, err := p.parseSeparated(TOK_COMMA, p.parseType)
	if err != nil {
		return nil, err
	}

	endTok, err := p.want(TOK_RPAREN)
	if err != nil {
		return nil, err
	}

	if len(elems) == 1 {
		return elems[0], nil
	}

	return &ast.TupleTypeExpr{
		Base:  ast.Between(startTok.Span, endTok.Span),
		Elems: elems,
	}, nil
}

// structural_type = '{' {'IDENT'} '}'
func (p *Parser) parseStructuralType() (ast.TypeExpr, error) {
	startTok, err := p.want(TOK_LBRACE)
	if err != nil {
		return nil, err
	}

	var methods []string
	seen := make(map[string]struct{})
	for p.has(TOK_IDENT) {
		if _, ok := seen[p.tok.Value]; ok {
			return nil, report.Raise(p.tok.Span, "method `%s` listed multiple times", p.tok.Value)
		}

		seen[p.tok.Value] = struct{}{}
		methods = append(methods, p.tok.Value)

		if err := p.next(); err != nil {
			return nil, err
		}
	}

	endTok, err := p.want(TOK_RBRACE)
	if err != nil {
		return nil, err
	}

	return &ast.StructuralTypeExpr{
		Base:    ast.Between(startTok.Span, endTok.Span),
		Methods: methods,
	}, nil
}

// -----------------------------------------------------------------------------

// parseSeparated parses one or more productions separated by a given token.
func (p *Parser) parseSeparated(sep int, parseFunc func() (ast.TypeExpr, error)) ([]ast.TypeExpr, error) {
	var exprs []ast.TypeExpr

	for {
		expr, err := parseFunc()
		if err != nil {
			return nil, err
		}

		exprs = append(exprs, expr)

		if !p.has(sep) {
			break
		}

		if err := p.next(); err != nil {
			return nil, err
		}
	}

	return exprs, nil
}
