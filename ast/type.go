package ast

import (
	"strings"

	"actorc/util"
)

// TypeExpr is a type expression.
type TypeExpr interface {
	Node

	// String returns the normalized source text of the expression.
	String() string

	typeExpr()
}

// NamedTypeExpr is a reference to a named type: a definition, an alias or a
// type parameter, optionally applied to type arguments.
type NamedTypeExpr struct {
	Base

	// The name of the type.
	Name string

	// The (optional) type arguments.
	TypeArgs []TypeExpr
}

func (*NamedTypeExpr) typeExpr() {}

func (nte *NamedTypeExpr) String() string {
	if len(nte.TypeArgs) == 0 {
		return nte.Name
	}

	return nte.Name + "[" + joinExprs(nte.TypeArgs, ", ") + "]"
}

// TupleTypeExpr is a tuple of at least two element types.
type TupleTypeExpr struct {
	Base

	// The element types.
	Elems []TypeExpr
}

func (*TupleTypeExpr) typeExpr() {}

func (tte *TupleTypeExpr) String() string {
	return "(" + joinExprs(tte.Elems, ", ") + ")"
}

// UnionTypeExpr is a union of at least two member types.
type UnionTypeExpr struct {
	Base

	// The member types.
	Members []TypeExpr
}

func (*UnionTypeExpr) typeExpr() {}

func (ute *UnionTypeExpr) String() string {
	return "(" + joinExprs(ute.Members, " | ") + ")"
}

// IsectTypeExpr is an intersection of at least two member types.
type IsectTypeExpr struct {
	Base

	// The member types.
	Members []TypeExpr
}

func (*IsectTypeExpr) typeExpr() {}

func (ite *IsectTypeExpr) String() string {
	return "(" + joinExprs(ite.Members, " & ") + ")"
}

// StructuralTypeExpr is a structural type listing the names of its methods.
type StructuralTypeExpr struct {
	Base

	// The names of the methods.
	Methods []string
}

func (*StructuralTypeExpr) typeExpr() {}

func (ste *StructuralTypeExpr) String() string {
	return "{" + strings.Join(ste.Methods, " ") + "}"
}

// CapTypeExpr is a type expression with an explicit capability.
type CapTypeExpr struct {
	Base

	// The type the capability is applied to.
	Elem TypeExpr

	// The name of the capability.
	Cap string
}

func (*CapTypeExpr) typeExpr() {}

func (cte *CapTypeExpr) String() string {
	return cte.Elem.String() + " " + cte.Cap
}

// -----------------------------------------------------------------------------

// joinExprs joins the strings of a list of type expressions with a separator.
func joinExprs(exprs []TypeExpr, sep string) string {
	return strings.Join(util.Map(exprs, TypeExpr.String), sep)
}
