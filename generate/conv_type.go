package generate

import (
	"actorc/types"

	lltypes "github.com/llir/llvm/ir/types"
)

// GenType returns the machine representation of a type-checked type.  Class
// and actor types are represented as pointers to their layouts; tuples and
// user-defined data types likewise.  Built-in data types are mapped directly
// to machine scalars.  All types without a statically known concrete layout
// are represented as opaque object pointers.
//
// The returned error is always a *GenError.  When it is non-nil, the
// generator's layout table is unchanged by the call.
func (g *Generator) GenType(t types.Type) (lltypes.Type, error) {
	switch v := t.(type) {
	case *types.UnionType:
		if types.IsBool(v) {
			return lltypes.I1, nil
		}

		return g.objectPtr, nil
	case *types.IsectType, *types.StructuralType:
		return g.objectPtr, nil
	case *types.TupleType:
		l, err := g.makeTuple(v)
		if err != nil {
			return nil, err
		}

		return l.Ptr, nil
	case *types.NominalType:
		return g.genNominal(v)
	}

	g.ice("unable to generate type `%s`", repr(t))
	return nil, nil
}

// genNominal generates a nominal type by dispatching on its definition kind.
func (g *Generator) genNominal(nt *types.NominalType) (lltypes.Type, error) {
	if nt.Def == nil {
		g.ice("nominal type `%s` has no definition", nt.Repr())
	}

	switch nt.Def.Kind {
	case types.DefTrait:
		return g.objectPtr, nil
	case types.DefData:
		if prim, ok := builtinType(nt.Def.Name); ok {
			return prim, nil
		}
		fallthrough
	case types.DefClass, types.DefActor:
		l, err := g.makeObject(nt)
		if err != nil {
			return nil, err
		}

		return l.Ptr, nil
	}

	g.ice("definition `%s` has invalid kind %d", nt.Def.Name, int(nt.Def.Kind))
	return nil, nil
}

// builtinTypes maps the names of the built-in value types to their machine
// scalars.
var builtinTypes = map[string]lltypes.Type{
	"True":  lltypes.I1,
	"False": lltypes.I1,
	"I8":    lltypes.I8,
	"U8":    lltypes.I8,
	"I16":   lltypes.I16,
	"U16":   lltypes.I16,
	"I32":   lltypes.I32,
	"U32":   lltypes.I32,
	"I64":   lltypes.I64,
	"U64":   lltypes.I64,
	"I128":  lltypes.I128,
	"U128":  lltypes.I128,
	"F16":   lltypes.Half,
	"F32":   lltypes.Float,
	"F64":   lltypes.Double,
}

// builtinType returns the machine scalar for a built-in data type name.  It
// never consults or modifies the layout table.
func builtinType(name string) (lltypes.Type, bool) {
	t, ok := builtinTypes[name]
	return t, ok
}
