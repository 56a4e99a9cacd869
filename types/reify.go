package types

// Reify substitutes the type arguments for the type parameters of a generic
// definition within a type.  The input type is never modified: every node on a
// path to a substituted parameter is copied.  Parameters are matched by
// identity; a parameter with no matching argument is left in place.
func Reify(t Type, params []*TypeParam, args []Type) Type {
	if len(params) == 0 {
		return t
	}

	switch v := t.(type) {
	case *TypeParamRef:
		for i, p := range params {
			if p == v.Param && i < len(args) {
				return ApplyCap(args[i], v.Cap)
			}
		}

		return v
	case *NominalType:
		if len(v.TypeArgs) == 0 {
			return v
		}

		return &NominalType{Def: v.Def, TypeArgs: reifyAll(v.TypeArgs, params, args), Cap: v.Cap}
	case *UnionType:
		return &UnionType{Members: reifyAll(v.Members, params, args)}
	case *IsectType:
		return &IsectType{Members: reifyAll(v.Members, params, args)}
	case *TupleType:
		return &TupleType{Elems: reifyAll(v.Elems, params, args)}
	}

	// structural types never mention type parameters
	return t
}

func reifyAll(typs []Type, params []*TypeParam, args []Type) []Type {
	out := make([]Type, len(typs))
	for i, t := range typs {
		out[i] = Reify(t, params, args)
	}

	return out
}

// ApplyCap returns a copy of a type with its capability replaced.  Capabilities
// distribute over the members of unions and intersections.  Tuples carry no
// capability and are returned unchanged, as is any type when cap is CapNone.
func ApplyCap(t Type, cap Cap) Type {
	if cap == CapNone {
		return t
	}

	switch v := t.(type) {
	case *NominalType:
		return &NominalType{Def: v.Def, TypeArgs: v.TypeArgs, Cap: cap}
	case *StructuralType:
		return &StructuralType{Methods: v.Methods, Cap: cap}
	case *TypeParamRef:
		return &TypeParamRef{Param: v.Param, Cap: cap}
	case *UnionType:
		members := make([]Type, len(v.Members))
		for i, m := range v.Members {
			members[i] = ApplyCap(m, cap)
		}

		return &UnionType{Members: members}
	case *IsectType:
		members := make([]Type, len(v.Members))
		for i, m := range v.Members {
			members[i] = ApplyCap(m, cap)
		}

		return &IsectType{Members: members}
	}

	return t
}
