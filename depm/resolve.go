package depm

import (
	"errors"
	"fmt"

	"actorc/ast"
	"actorc/report"
	"actorc/syntax"
	"actorc/types"
)

// resolveText parses and resolves the source text of a type expression.  The
// type parameters are those in scope for the expression.
func (u *Unit) resolveText(where, text string, params []*types.TypeParam) (types.Type, error) {
	expr, err := syntax.ParseTypeExpr(text)
	if err != nil {
		var lce *report.LocalCompileError
		if errors.As(err, &lce) {
			return nil, &ExprError{Where: where, Expr: text, Err: lce}
		}

		return nil, fmt.Errorf("%s: %w", where, err)
	}

	typ, lce := u.resolveTypeExpr(expr, params)
	if lce != nil {
		return nil, &ExprError{Where: where, Expr: text, Err: lce}
	}

	return typ, nil
}

// resolveTypeExpr converts a type expression into a type.
func (u *Unit) resolveTypeExpr(expr ast.TypeExpr, params []*types.TypeParam) (types.Type, *report.LocalCompileError) {
	switch v := expr.(type) {
	case *ast.NamedTypeExpr:
		return u.resolveNamed(v, params)
	case *ast.TupleTypeExpr:
		elems, err := u.resolveAll(v.Elems, params)
		if err != nil {
			return nil, err
		}

		return types.NewTuple(elems...), nil
	case *ast.UnionTypeExpr:
		members, err := u.resolveAll(v.Members, params)
		if err != nil {
			return nil, err
		}

		return types.NewUnion(members...), nil
	case *ast.IsectTypeExpr:
		members, err := u.resolveAll(v.Members, params)
		if err != nil {
			return nil, err
		}

		return types.NewIsect(members...), nil
	case *ast.StructuralTypeExpr:
		return types.NewStructural(types.CapRef, v.Methods...), nil
	case *ast.CapTypeExpr:
		elem, err := u.resolveTypeExpr(v.Elem, params)
		if err != nil {
			return nil, err
		}

		if _, ok := elem.(*types.TupleType); ok {
			return nil, report.Raise(v.Span(), "capabilities cannot be applied to tuples")
		}

		c, ok := types.ParseCap(v.Cap)
		if !ok {
			return nil, report.Raise(v.Span(), "unknown capability `%s`", v.Cap)
		}

		return types.ApplyCap(elem, c), nil
	}

	return nil, report.Raise(expr.Span(), "unsupported type expression")
}

// resolveNamed resolves a named type: a type parameter, a built-in alias or a
// definition.
func (u *Unit) resolveNamed(nte *ast.NamedTypeExpr, params []*types.TypeParam) (types.Type, *report.LocalCompileError) {
	for _, param := range params {
		if param.Name == nte.Name {
			if len(nte.TypeArgs) > 0 {
				return nil, report.Raise(nte.Span(), "type parameter `%s` does not accept type arguments", nte.Name)
			}

			return types.NewParamRef(param, types.CapNone), nil
		}
	}

	if alias, ok := u.universe.GetAlias(nte.Name); ok {
		if len(nte.TypeArgs) > 0 {
			return nil, report.Raise(nte.Span(), "type `%s` does not accept type arguments", nte.Name)
		}

		return alias, nil
	}

	def, ok := u.LookupDef(nte.Name)
	if !ok {
		return nil, report.Raise(nte.Span(), "undefined type `%s`", nte.Name)
	}

	if len(nte.TypeArgs) != len(def.TypeParams) {
		return nil, report.Raise(
			nte.Span(),
			"type `%s` expects %d type arguments but received %d",
			nte.Name,
			len(def.TypeParams),
			len(nte.TypeArgs),
		)
	}

	args, err := u.resolveAll(nte.TypeArgs, params)
	if err != nil {
		return nil, err
	}

	return types.NewNominal(def, def.Kind.DefaultCap(), args...), nil
}

// resolveAll resolves a list of type expressions.
func (u *Unit) resolveAll(exprs []ast.TypeExpr, params []*types.TypeParam) ([]types.Type, *report.LocalCompileError) {
	typs := make([]types.Type, len(exprs))
	for i, expr := range exprs {
		typ, err := u.resolveTypeExpr(expr, params)
		if err != nil {
			return nil, err
		}

		typs[i] = typ
	}

	return typs, nil
}
