// Package types defines the type-checked type expressions consumed by the
// backend.  Type is a closed sum: only the variants declared in this package
// implement it, so every switch over a Type can be checked for totality.
package types

import (
	"strings"
)

// Type represents a type-checked type expression.
type Type interface {
	// Repr returns the representative string for this type.
	Repr() string

	// isType seals the interface.
	isType()
}

// -----------------------------------------------------------------------------

// NominalType is a use of a named definition, possibly instantiated with type
// arguments.
type NominalType struct {
	Def      *Definition
	TypeArgs []Type
	Cap      Cap
}

// NewNominal creates a new nominal type use.
func NewNominal(def *Definition, cap Cap, typeArgs ...Type) *NominalType {
	return &NominalType{Def: def, TypeArgs: typeArgs, Cap: cap}
}

func (*NominalType) isType() {}

func (nt *NominalType) Repr() string {
	sb := strings.Builder{}

	if nt.Def == nil {
		sb.WriteString("<unresolved>")
	} else {
		sb.WriteString(nt.Def.Name)
	}

	if len(nt.TypeArgs) > 0 {
		sb.WriteRune('[')
		sb.WriteString(joinRepr(nt.TypeArgs, ", "))
		sb.WriteRune(']')
	}

	return withCap(sb.String(), nt.Cap)
}

// UnionType is a union of two or more types.
type UnionType struct {
	Members []Type
}

// NewUnion creates a new union type.
func NewUnion(members ...Type) *UnionType {
	return &UnionType{Members: members}
}

func (*UnionType) isType() {}

func (ut *UnionType) Repr() string {
	return "(" + joinRepr(ut.Members, " | ") + ")"
}

// IsectType is an intersection of two or more types.
type IsectType struct {
	Members []Type
}

// NewIsect creates a new intersection type.
func NewIsect(members ...Type) *IsectType {
	return &IsectType{Members: members}
}

func (*IsectType) isType() {}

func (it *IsectType) Repr() string {
	return "(" + joinRepr(it.Members, " & ") + ")"
}

// TupleType is an anonymous ordered product of types.
type TupleType struct {
	Elems []Type
}

// NewTuple creates a new tuple type.
func NewTuple(elems ...Type) *TupleType {
	return &TupleType{Elems: elems}
}

func (*TupleType) isType() {}

func (tt *TupleType) Repr() string {
	return "(" + joinRepr(tt.Elems, ", ") + ")"
}

// StructuralType is an anonymous interface described only by the methods it
// provides.
type StructuralType struct {
	Methods []string
	Cap     Cap
}

// NewStructural creates a new structural type.
func NewStructural(cap Cap, methods ...string) *StructuralType {
	return &StructuralType{Methods: methods, Cap: cap}
}

func (*StructuralType) isType() {}

func (st *StructuralType) Repr() string {
	return withCap("{"+strings.Join(st.Methods, " ")+"}", st.Cap)
}

// TypeParamRef is a reference to a generic type parameter.  These only appear
// inside generic definitions: reification replaces them before code generation.
type TypeParamRef struct {
	Param *TypeParam
	Cap   Cap
}

// NewParamRef creates a new reference to a type parameter.
func NewParamRef(param *TypeParam, cap Cap) *TypeParamRef {
	return &TypeParamRef{Param: param, Cap: cap}
}

func (*TypeParamRef) isType() {}

func (pr *TypeParamRef) Repr() string {
	return withCap(pr.Param.Name, pr.Cap)
}

// -----------------------------------------------------------------------------

func joinRepr(typs []Type, sep string) string {
	reprs := make([]string, len(typs))
	for i, t := range typs {
		reprs[i] = t.Repr()
	}

	return strings.Join(reprs, sep)
}

func withCap(s string, cap Cap) string {
	if cap == CapNone {
		return s
	}

	return s + " " + cap.String()
}
